package state

import (
	"context"
	"slices"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/GoWeddingSite/GoWeddingSite/internal/docstore"
	"github.com/GoWeddingSite/GoWeddingSite/internal/model"
	"github.com/GoWeddingSite/GoWeddingSite/internal/seed"
)

// ResetStore puts the site back to its compiled-in content: default
// settings, the starter gifts under new identities, the system pages under
// their fixed identities and no messages. It also logs out.
//
// There is no undo. Every write is attempted; the first failure is returned.
func (s *Store) ResetStore(ctx context.Context) error {
	var (
		giftIDs, pageIDs, messageIDs []string
		settings                     = seed.DefaultSettings()
		gifts                        = seed.StarterGifts()
		pages                        = seed.StarterPages()
	)

	for i := range gifts {
		gifts[i].ID = s.newID()
	}

	err := s.update(func(st *model.AppState) {
		for _, g := range st.Gifts {
			giftIDs = append(giftIDs, g.ID)
		}

		for _, p := range st.Pages {
			pageIDs = append(pageIDs, p.ID)
		}

		for _, m := range st.Messages {
			messageIDs = append(messageIDs, m.ID)
		}

		st.Settings = settings
		st.Gifts = slices.Clone(gifts)
		st.Pages = clonePages(pages)
		st.Messages = []model.Message{}

		s.authenticated = false
	})
	if err != nil {
		return err
	}

	var first error

	step := func(err error) {
		if err = s.persisted(err); err != nil {
			log.Error().Err(err).Msg("reset step failed")

			if first == nil {
				first = err
			}
		}
	}

	step(s.backend.Set(ctx, docstore.CollectionSettings, docstore.SettingsID, settings))

	for _, id := range giftIDs {
		step(s.backend.Delete(ctx, docstore.CollectionGifts, id))
	}

	for _, g := range gifts {
		step(s.backend.Set(ctx, docstore.CollectionGifts, g.ID, g))
	}

	// system pages are overwritten before the others go, so the collection
	// is never observed empty
	keep := make(map[string]bool, len(pages))
	for _, p := range pages {
		keep[p.ID] = true
		step(s.backend.Set(ctx, docstore.CollectionPages, p.ID, p))
	}

	for _, id := range pageIDs {
		if !keep[id] {
			step(s.backend.Delete(ctx, docstore.CollectionPages, id))
		}
	}

	for _, id := range messageIDs {
		step(s.backend.Delete(ctx, docstore.CollectionMessages, id))
	}

	if first != nil {
		return pkgerrors.Wrap(first, "reset incomplete")
	}

	log.Warn().
		Int("gifts_removed", len(giftIDs)).
		Int("messages_removed", len(messageIDs)).
		Msg("site reset to defaults")

	return nil
}
