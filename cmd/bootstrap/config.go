package bootstrap

import (
	"time"

	"lashdiary/internal/domain/schedule"
	"lashdiary/internal/domain/studio"
	"lashdiary/internal/pkg/clock"
	"lashdiary/internal/pkg/config"
	"lashdiary/internal/usecase/shared"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(config.LoadConfig),
)

// StudioModule derives the studio-wide values every layer shares.
var StudioModule = fx.Module("studio",
	fx.Provide(
		clock.NewRealClock,
		NewStudioLocation,
		NewStudioDefaults,
		NewLinks,
		schedule.NewGenerator,
	),
)

func NewStudioLocation(cfg config.Config) (*time.Location, error) {
	return cfg.Studio.Location()
}

// NewStudioDefaults seeds the settings document on first start.
func NewStudioDefaults(cfg config.Config) studio.Settings {
	return studio.Defaults(cfg.Studio.DefaultCancellationWindowHours, cfg.Studio.DefaultServiceDurationMin)
}

func NewLinks(cfg config.Config) shared.Links {
	return shared.Links{BaseURL: cfg.Server.PublicBaseURL}
}
