package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Checker - зависимость, которую проверяет /health
type Checker interface {
	HealthCheck(ctx context.Context) error
}

// CheckerFunc позволяет передать функцию как Checker
type CheckerFunc func(ctx context.Context) error

func (f CheckerFunc) HealthCheck(ctx context.Context) error {
	return f(ctx)
}

type HealthHandler struct {
	database Checker
	cache    Checker // nil - кэш отключен
	version  func(ctx context.Context) (string, error)
}

func NewHealthHandler(database, cache Checker, version func(ctx context.Context) (string, error)) *HealthHandler {
	return &HealthHandler{database: database, cache: cache, version: version}
}

// Health - GET /health, 503 если хотя бы одна зависимость недоступна
func (h *HealthHandler) Health(c *gin.Context) {
	ctx := c.Request.Context()
	status := "healthy"
	services := gin.H{}

	if err := h.database.HealthCheck(ctx); err != nil {
		services["database"] = "unhealthy"
		status = "degraded"
	} else {
		services["database"] = "healthy"
	}

	switch {
	case h.cache == nil:
		services["cache"] = "disabled"
	case h.cache.HealthCheck(ctx) != nil:
		services["cache"] = "unhealthy"
		status = "degraded"
	default:
		services["cache"] = "healthy"
	}

	statusCode := http.StatusOK
	if status == "degraded" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, gin.H{
		"status":   status,
		"services": services,
	})
}

// Info - GET /info
func (h *HealthHandler) Info(c *gin.Context) {
	info := gin.H{
		"service":         "linkpulse",
		"database_driver": "pgx",
		"cache_enabled":   h.cache != nil,
	}

	if h.version != nil {
		if version, err := h.version(c.Request.Context()); err == nil {
			info["database_version"] = version
		}
	}

	if h.cache != nil {
		info["cache_driver"] = "redis"
	}

	c.JSON(http.StatusOK, info)
}
