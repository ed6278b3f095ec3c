package bootstrap

import (
	"lashdiary/internal/pkg/clock"
	"lashdiary/internal/pkg/config"
	"lashdiary/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
	),
)

func NewJWTService(cfg config.Config, clock clock.Clock) *jwt.Service {
	return jwt.NewService(cfg.JWT.Secret, cfg.JWT.Duration, clock)
}
