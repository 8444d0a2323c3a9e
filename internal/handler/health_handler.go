package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/inkerrobotics/luckydraw-admin/prometheus"
)

var startTime = time.Now()

// HealthHandler answers the liveness probe.
type HealthHandler struct {
	environment string
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(environment string) *HealthHandler {
	return &HealthHandler{environment: environment}
}

// Check handles GET /api/health
func (h *HealthHandler) Check(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":      "healthy",
		"timestamp":   time.Now().Format(time.RFC3339),
		"uptime":      time.Since(startTime).Seconds(),
		"environment": h.environment,
	})
}

// Metrics handles GET /metrics
func (h *HealthHandler) Metrics(c echo.Context) error {
	handler := prometheus.GetPrometheusHandler()
	handler.ServeHTTP(c.Response(), c.Request())
	return nil
}
