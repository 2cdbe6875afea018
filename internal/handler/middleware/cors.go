package middleware

import (
	"log/slog"
	"slices"

	"dj-booking-engine/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewCORSMiddleware always exposes X-Request-ID so browser clients can quote it in reports.
func NewCORSMiddleware(cfg config.CORSConfig, logger *slog.Logger) gin.HandlerFunc {
	expose := cfg.ExposeHeaders
	if !slices.Contains(expose, HeaderRequestID) {
		expose = append(slices.Clone(expose), HeaderRequestID)
	}
	allow := cfg.AllowHeaders
	if !slices.Contains(allow, HeaderActorID) {
		allow = append(slices.Clone(allow), HeaderActorID)
	}

	logger.Debug("cors configured", "allow_origins", cfg.AllowOrigins)
	return cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     allow,
		ExposeHeaders:    expose,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})
}
