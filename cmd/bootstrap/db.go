package bootstrap

import (
	"context"
	"log/slog"

	"lashdiary/internal/domain/studio"
	"lashdiary/internal/infra/db"
	"lashdiary/internal/infra/jsonstore"
	"lashdiary/internal/infra/pgstore"
	"lashdiary/internal/pkg/clock"
	"lashdiary/internal/pkg/config"
	"lashdiary/internal/usecase/shared"

	"go.uber.org/fx"
)

var StoreModule = fx.Module("store",
	fx.Provide(
		NewUnitOfWork,
	),
)

// NewUnitOfWork opens the store selected by STORE_DRIVER.
func NewUnitOfWork(
	lc fx.Lifecycle,
	cfg config.Config,
	defaults studio.Settings,
	clock clock.Clock,
	logger *slog.Logger,
) (shared.UnitOfWork, error) {
	if cfg.Store.Driver == config.StoreDriverJSON {
		logger.Info("using json document store", "dir", cfg.Store.DataDir)
		store, err := jsonstore.New(cfg.Store.DataDir, defaults, clock, logger)
		if err != nil {
			return nil, err
		}
		return store, nil
	}

	ctx := context.Background()
	pool, cleanup, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := db.ApplyMigrations(ctx, pool, cfg.Store.MigrationsFile); err != nil {
		cleanup()
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})

	logger.Info("using postgres store", "host", cfg.DB.Host, "database", cfg.DB.DBName)
	return pgstore.NewPostgresUoW(pool, defaults, clock, logger), nil
}
