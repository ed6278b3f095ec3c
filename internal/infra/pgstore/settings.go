package pgstore

import (
	"context"
	"encoding/json"
	"log/slog"

	"lashdiary/internal/domain/studio"
	"lashdiary/internal/infra"
	"lashdiary/internal/pkg/clock"
	"lashdiary/internal/pkg/pgconv"
)

type SettingsRepository struct {
	db       DBTX
	defaults studio.Settings
	clock    clock.Clock
	logger   *slog.Logger
}

func NewSettingsRepository(db DBTX, defaults studio.Settings, clock clock.Clock, logger *slog.Logger) *SettingsRepository {
	return &SettingsRepository{db: db, defaults: defaults, clock: clock, logger: logger}
}

// Get falls back to the configured defaults until the first save.
func (r *SettingsRepository) Get(ctx context.Context) (studio.Settings, error) {
	var doc []byte
	err := r.db.QueryRow(ctx, `SELECT document FROM studio_settings WHERE id = 1`).Scan(&doc)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return r.defaults, nil
		}
		return studio.Settings{}, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to read settings", err)
	}

	s := r.defaults
	if err := json.Unmarshal(doc, &s); err != nil {
		return studio.Settings{}, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to decode settings", err)
	}
	return s, nil
}

func (r *SettingsRepository) Save(ctx context.Context, s studio.Settings) error {
	s.UpdatedAt = r.clock.Now().UTC()
	doc, err := json.Marshal(s)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to encode settings", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO studio_settings (id, document, updated_at) VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET document = EXCLUDED.document, updated_at = EXCLUDED.updated_at`,
		doc, pgconv.TimeToPgtype(s.UpdatedAt))
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to save settings", err)
	}
	return nil
}
