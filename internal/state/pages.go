package state

import (
	"context"

	"github.com/GoWeddingSite/GoWeddingSite/internal/docstore"
	"github.com/GoWeddingSite/GoWeddingSite/internal/model"
)

// AddPage stores a page. Pages with an identity (system pages, generated
// pages) keep it, others get a new one. Slug uniqueness is the caller's job.
func (s *Store) AddPage(ctx context.Context, p model.Page) (model.Page, error) {
	if err := s.checkOpen(); err != nil {
		return model.Page{}, err
	}

	if p.Sections == nil {
		p.Sections = []model.Section{}
	}

	var err error

	if p.ID != "" {
		err = s.backend.Set(ctx, docstore.CollectionPages, p.ID, p)
		if err = s.persisted(err); err != nil {
			return model.Page{}, err
		}
	} else {
		var id string

		id, err = s.backend.Create(ctx, docstore.CollectionPages, p)
		if id == "" {
			return model.Page{}, err
		}

		p.ID = id
	}

	stored := clonePage(p)

	_ = s.update(func(st *model.AppState) {
		if i := pageIndex(st.Pages, stored.ID); i >= 0 {
			st.Pages[i] = stored
		} else {
			st.Pages = append(st.Pages, stored)
		}
	})

	return p, s.persisted(err)
}

// UpdatePage merges patch into a page.
func (s *Store) UpdatePage(ctx context.Context, id string, patch model.PagePatch) error {
	fields, err := patch.Fields()
	if err != nil {
		return err
	}

	var applyErr error

	err = s.update(func(st *model.AppState) {
		if i := pageIndex(st.Pages, id); i >= 0 {
			applyErr = patch.ApplyTo(&st.Pages[i])
		}
	})
	if err != nil {
		return err
	}

	if applyErr != nil {
		return applyErr
	}

	return s.persisted(s.backend.Update(ctx, docstore.CollectionPages, id, fields))
}

// RemovePage deletes a page. System pages are not protected here: refusing
// to delete them is up to the caller.
func (s *Store) RemovePage(ctx context.Context, id string) error {
	err := s.update(func(st *model.AppState) {
		if i := pageIndex(st.Pages, id); i >= 0 {
			st.Pages = append(st.Pages[:i:i], st.Pages[i+1:]...)
		}
	})
	if err != nil {
		return err
	}

	return s.persisted(s.backend.Delete(ctx, docstore.CollectionPages, id))
}
