package state

import (
	"context"
	"errors"

	"github.com/GoWeddingSite/GoWeddingSite/internal/docstore"
	"github.com/GoWeddingSite/GoWeddingSite/internal/model"
)

// UpdateSettings merges patch into the settings singleton.
func (s *Store) UpdateSettings(ctx context.Context, patch model.SettingsPatch) error {
	fields, err := patch.Fields()
	if err != nil {
		return err
	}

	var (
		merged   model.Settings
		applyErr error
	)

	err = s.update(func(st *model.AppState) {
		applyErr = patch.ApplyTo(&st.Settings)
		merged = st.Settings
	})
	if err != nil {
		return err
	}

	if applyErr != nil {
		return applyErr
	}

	err = s.backend.Update(ctx, docstore.CollectionSettings, docstore.SettingsID, fields)
	if errors.Is(err, docstore.ErrNotFound) {
		// the singleton was never written: store the merged record instead
		err = s.backend.Set(ctx, docstore.CollectionSettings, docstore.SettingsID, merged)
	}

	return s.persisted(err)
}
