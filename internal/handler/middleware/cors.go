package middleware

import (
	"log/slog"
	"net/url"
	"slices"

	"lashdiary/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewCORSMiddleware allows the configured origins plus the origin of the
// public booking site, which hosts the self-service manage page.
func NewCORSMiddleware(cfg config.CORSConfig, publicBaseURL string) gin.HandlerFunc {
	origins := slices.Clone(cfg.AllowOrigins)
	if o := originOf(publicBaseURL); o != "" && !slices.Contains(origins, o) {
		origins = append(origins, o)
	}

	slog.Info("CORS middleware initialized", "allow_origins", origins)
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     cfg.AllowHeaders,
		ExposeHeaders:    cfg.ExposeHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})
}

func originOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
