package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"lashdiary/internal/domain/user"
	"lashdiary/internal/handler/api"
	"lashdiary/internal/handler/middleware"
	"lashdiary/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth         *api.AuthHandler
	Availability *api.AvailabilityHandler
	Booking      *api.BookingHandler
	AdminBooking *api.AdminBookingHandler
	Settings     *api.SettingsHandler
}

type Middlewares struct {
	Logger    *middleware.Logger
	Auth      *middleware.AuthMiddleware
	RateLimit gin.HandlerFunc
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, mw Middlewares) {
	setupMiddleware(engine, cfg, mw)
	setupRoutes(engine, h, mw)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, mw Middlewares) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS, cfg.Server.PublicBaseURL))
	engine.Use(mw.Logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, mw Middlewares) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		public := apiGroup.Group("")
		public.Use(mw.RateLimit)
		addRoutes(public, []route{
			{Method: http.MethodGet, Path: "/availability", Handler: h.Availability.Get},
			{Method: http.MethodGet, Path: "/availability/fully-booked", Handler: h.Availability.FullyBooked},
			{Method: http.MethodPost, Path: "/booking/create", Handler: h.Booking.Create},
			{Method: http.MethodGet, Path: "/booking/manage/:token", Handler: h.Booking.GetManage},
			{Method: http.MethodPost, Path: "/booking/manage/:token", Handler: h.Booking.Manage},
		})

		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login, Mw: []gin.HandlerFunc{mw.RateLimit}},
				{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
			})

			authRequired := auth.Group("")
			authRequired.Use(mw.Auth.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me},
			})
		}

		admin := apiGroup.Group("/admin")
		admin.Use(mw.Auth.RequireAuth(), mw.Auth.RequireRoleAtLeast(user.RoleStaff))
		{
			adminOnly := []gin.HandlerFunc{mw.Auth.RequireRoleAtLeast(user.RoleAdmin)}
			addRoutes(admin, []route{
				{Method: http.MethodGet, Path: "/bookings", Handler: h.AdminBooking.List},
				{Method: http.MethodGet, Path: "/bookings/:id", Handler: h.AdminBooking.Get},
				{Method: http.MethodPost, Path: "/bookings/:id/reschedule", Handler: h.AdminBooking.Reschedule},
				{Method: http.MethodPost, Path: "/bookings/:id/cancel", Handler: h.AdminBooking.Cancel, Mw: adminOnly},
				{Method: http.MethodPatch, Path: "/bookings/:id/manage-access", Handler: h.AdminBooking.SetManageAccess},
				{Method: http.MethodGet, Path: "/settings", Handler: h.Settings.Get},
				{Method: http.MethodPut, Path: "/settings", Handler: h.Settings.Update, Mw: adminOnly},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
