package api

import (
	"log/slog"

	"github.com/UnknownOlympus/heatmap/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig holds the dependencies of the HTTP router.
type RouterConfig struct {
	Handler  *Handler
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Registry *prometheus.Registry
	Limiter  *RateLimiter // Per-client limiter for /api/v1, nil disables limiting.
}

// NewRouter wires every route of the service.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(cfg.Logger, cfg.Metrics))

	router.GET("/healthz", cfg.Handler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{})))

	v1 := router.Group("/api/v1")
	if cfg.Limiter != nil {
		v1.Use(cfg.Limiter.Middleware())
	}
	{
		v1.GET("/map", cfg.Handler.MapOptions)
		v1.GET("/layer", cfg.Handler.Layer)

		v1.POST("/overlay", cfg.Handler.OverlayComplete)
		v1.DELETE("/overlay", cfg.Handler.OverlayCleared)

		v1.GET("/toggles", cfg.Handler.Toggles)
		v1.POST("/toggles/:flag", cfg.Handler.Toggle)
		v1.GET("/toggles/:flag/class", cfg.Handler.ButtonClass)

		v1.GET("/drawing", cfg.Handler.Drawing)
		v1.POST("/drawing/start", cfg.Handler.StartDrawing)
		v1.POST("/drawing/stop", cfg.Handler.StopDrawing)
	}

	return router
}
