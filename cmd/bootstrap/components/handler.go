package components

import (
	"log/slog"

	"lashdiary/internal/handler"
	"lashdiary/internal/handler/api"
	"lashdiary/internal/handler/middleware"
	"lashdiary/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	RateLimitModule,
	fx.Provide(
		api.NewAuthHandler,
		api.NewAvailabilityHandler,
		api.NewBookingHandler,
		api.NewAdminBookingHandler,
		api.NewSettingsHandler,
		middleware.NewAuthMiddleware,
		NewEngine,
		NewHandlers,
		NewMiddlewares,
	),
	fx.Invoke(handler.NewRouter),
)

func NewEngine() *gin.Engine {
	return gin.New()
}

type HandlerParams struct {
	fx.In

	Auth         *api.AuthHandler
	Availability *api.AvailabilityHandler
	Booking      *api.BookingHandler
	AdminBooking *api.AdminBookingHandler
	Settings     *api.SettingsHandler
}

func NewHandlers(p HandlerParams) handler.Handlers {
	return handler.Handlers{
		Auth:         p.Auth,
		Availability: p.Availability,
		Booking:      p.Booking,
		AdminBooking: p.AdminBooking,
		Settings:     p.Settings,
	}
}

type MiddlewareParams struct {
	fx.In

	Config  config.Config
	Logger  *middleware.Logger
	Auth    *middleware.AuthMiddleware
	Limiter middleware.Limiter
	Slog    *slog.Logger
}

func NewMiddlewares(p MiddlewareParams) handler.Middlewares {
	return handler.Middlewares{
		Logger:    p.Logger,
		Auth:      p.Auth,
		RateLimit: middleware.NewRateLimitMiddleware(p.Config.RateLimit, p.Limiter, p.Slog),
	}
}
