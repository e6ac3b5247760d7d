package handler

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterConfig struct {
	AllowedOrigins []string
	RateLimit      gin.HandlerFunc // nil - без ограничения

	Redirect *RedirectHandler
	Heatmap  *HeatmapHandler
	Health   *HealthHandler
}

// NewRouter собирает gin.Engine со всеми маршрутами сервиса
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), Recovery(), AccessLog())

	if len(cfg.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.AllowedOrigins,
			AllowMethods:     []string{"GET", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", HeaderRequestID},
			ExposeHeaders:    []string{"Content-Length", HeaderRequestID},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/health", cfg.Health.Health)
	router.GET("/info", cfg.Health.Info)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	limited := router.Group("/")
	if cfg.RateLimit != nil {
		limited.Use(cfg.RateLimit)
	}

	api := limited.Group("/api")
	{
		api.GET("/analytics/heatmap", cfg.Heatmap.GetHeatmap)
	}

	limited.GET("/:shortCode", cfg.Redirect.Redirect)

	return router
}
