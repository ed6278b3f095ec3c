package components

import (
	"context"
	"log/slog"

	"lashdiary/internal/handler/middleware"
	"lashdiary/internal/pkg/clock"
	"lashdiary/internal/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RateLimitModule = fx.Module("ratelimit",
	fx.Provide(
		NewLimiter,
	),
)

// NewLimiter shares buckets through Redis when REDIS_ADDR is set.
func NewLimiter(lc fx.Lifecycle, cfg config.Config, clock clock.Clock, logger *slog.Logger) middleware.Limiter {
	if cfg.Redis.Addr == "" {
		logger.Info("REDIS_ADDR not set, using in-process rate limiter")
		return middleware.NewLocalLimiter(cfg.RateLimit, clock)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rdb.Ping(ctx).Err(); err != nil {
				logger.Warn("redis unreachable, rate limiter will fail open", "error", err)
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			return rdb.Close()
		},
	})
	return middleware.NewRedisLimiter(rdb, cfg.RateLimit, clock)
}
