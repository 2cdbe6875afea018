package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"dj-booking-engine/internal/handler/api"
	"dj-booking-engine/internal/handler/middleware"
	"dj-booking-engine/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

type Handlers struct {
	Booking  *api.BookingHandler
	Recovery *api.RecoveryHandler
	DJ       *api.DJHandler
	Admin    *api.AdminHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *slog.Logger, h Handlers) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, h)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	// RequestLogger runs first so the request ID is set before anything can panic
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.CustomRecovery(logger))
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS, logger))
	engine.Use(middleware.ErrorHandler(logger))
}

func setupRoutes(engine *gin.Engine, h Handlers) {
	engine.GET("/health", healthCheck)

	apiGroup := engine.Group("/api")
	{
		addRoutes(apiGroup.Group("/bookings"), []route{
			{Method: http.MethodPost, Path: "", Handler: h.Booking.Create},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Booking.Get},
			{Method: http.MethodGet, Path: "/:id/recoveries", Handler: h.Booking.Recoveries},
			{Method: http.MethodPost, Path: "/:id/accept", Handler: h.Booking.Accept},
			{Method: http.MethodPost, Path: "/:id/confirm", Handler: h.Booking.Confirm},
			{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Booking.Cancel},
			{Method: http.MethodPost, Path: "/:id/reject", Handler: h.Booking.Reject},
		})

		addRoutes(apiGroup.Group("/recoveries"), []route{
			{Method: http.MethodPost, Path: "/:id/accept", Handler: h.Recovery.Accept},
			{Method: http.MethodPost, Path: "/:id/decline", Handler: h.Recovery.Decline},
		})

		addRoutes(apiGroup.Group("/djs"), []route{
			{Method: http.MethodGet, Path: "/available", Handler: h.DJ.Available},
			{Method: http.MethodGet, Path: "/:id/availability", Handler: h.DJ.Availability},
		})

		addRoutes(apiGroup.Group("/admin"), []route{
			{Method: http.MethodGet, Path: "/queue", Handler: h.Admin.Queue},
			{Method: http.MethodGet, Path: "/bookings/:id/candidates", Handler: h.Admin.Candidates},
			{Method: http.MethodPost, Path: "/bookings/:id/review", Handler: h.Admin.Review},
			{Method: http.MethodPost, Path: "/bookings/:id/release", Handler: h.Admin.Release},
			{Method: http.MethodPost, Path: "/bookings/:id/assign", Handler: h.Admin.Assign},
			{Method: http.MethodPost, Path: "/sweeps", Handler: h.Admin.Sweep},
		})
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
		g.Handle(r.Method, r.Path, r.Handler)
	}
}
