package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"solarops/internal/shared/logger"
	"solarops/internal/shared/version"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck pings one dependency.
type HealthCheck func(ctx context.Context) error

type HealthHandler struct {
	checks map[string]HealthCheck
	logger logger.Interface
}

func NewHealthHandler(checks map[string]HealthCheck, logger logger.Interface) *HealthHandler {
	return &HealthHandler{
		checks: checks,
		logger: logger,
	}
}

// Health handles GET /health. Any failing check turns the response into a 503.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	status := "healthy"
	code := http.StatusOK
	results := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.logger.Warnw("health check failed", "check", name, "error", err)
			results[name] = "down"
			status = "unhealthy"
			code = http.StatusServiceUnavailable
			continue
		}
		results[name] = "up"
	}

	c.JSON(code, gin.H{
		"status":  status,
		"service": "solarops",
		"checks":  results,
	})
}

// Version handles GET /version.
func (h *HealthHandler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, version.Get())
}
