package jsonstore

import (
	"context"

	"lashdiary/internal/domain/studio"
)

type settingsRepo struct {
	tx *docTx
}

// Get returns the saved settings, or the configured defaults before the
// first save.
func (r *settingsRepo) Get(_ context.Context) (studio.Settings, error) {
	s, err := r.tx.loadSettings()
	if err != nil {
		return studio.Settings{}, err
	}
	return *s, nil
}

func (r *settingsRepo) Save(_ context.Context, s studio.Settings) error {
	if err := r.tx.markDirty(&r.tx.dirtySettings); err != nil {
		return err
	}
	s.UpdatedAt = r.tx.store.clock.Now().UTC()
	r.tx.settings = &s
	return nil
}
