package state

import (
	"context"

	"github.com/GoWeddingSite/GoWeddingSite/internal/docstore"
	"github.com/GoWeddingSite/GoWeddingSite/internal/model"
)

// AddMessage stores a message, stamping it with a new identity and the
// current time.
func (s *Store) AddMessage(ctx context.Context, m model.Message) (model.Message, error) {
	if err := s.checkOpen(); err != nil {
		return model.Message{}, err
	}

	m.ID = ""
	m.CreatedAt = s.now().UTC()

	id, err := s.backend.Create(ctx, docstore.CollectionMessages, m)
	if id == "" {
		return model.Message{}, err
	}

	m.ID = id

	_ = s.update(func(st *model.AppState) {
		if i := messageIndex(st.Messages, id); i >= 0 {
			st.Messages[i] = m
		} else {
			st.Messages = append(st.Messages, m)
		}

		sortMessages(st.Messages)
	})

	return m, s.persisted(err)
}

// DeleteMessage removes a message.
func (s *Store) DeleteMessage(ctx context.Context, id string) error {
	err := s.update(func(st *model.AppState) {
		if i := messageIndex(st.Messages, id); i >= 0 {
			st.Messages = append(st.Messages[:i:i], st.Messages[i+1:]...)
		}
	})
	if err != nil {
		return err
	}

	return s.persisted(s.backend.Delete(ctx, docstore.CollectionMessages, id))
}
