package handler

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/inkerrobotics/luckydraw-admin/internal/middleware"
	"github.com/inkerrobotics/luckydraw-admin/internal/service"
)

// DashboardHandler serves the dashboard, analytics and data-cleaning
// endpoints.
type DashboardHandler struct {
	analytics *service.AnalyticsService
	cleaning  *service.CleaningService
	validator *validator.Validate
}

// NewDashboardHandler creates a DashboardHandler.
func NewDashboardHandler(analytics *service.AnalyticsService, cleaning *service.CleaningService) *DashboardHandler {
	return &DashboardHandler{analytics: analytics, cleaning: cleaning, validator: newValidator()}
}

// Stats handles GET /api/dashboard
func (h *DashboardHandler) Stats(c echo.Context) error {
	stats, err := h.analytics.Dashboard()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"stats": stats})
}

func daysParam(c echo.Context) int {
	days, _ := strconv.Atoi(c.QueryParam("days"))
	return days
}

// LoginTrend handles GET /api/analytics/login-trend
func (h *DashboardHandler) LoginTrend(c echo.Context) error {
	trend, err := h.analytics.LoginTrend(daysParam(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"trend": trend})
}

// TenantGrowth handles GET /api/analytics/tenant-growth
func (h *DashboardHandler) TenantGrowth(c echo.Context) error {
	growth, err := h.analytics.TenantGrowth(daysParam(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"growth": growth})
}

// CleaningStats handles GET /api/data-cleaning
func (h *DashboardHandler) CleaningStats(c echo.Context) error {
	stats, err := h.cleaning.GetStats()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"stats": stats})
}

type cleaningRequest struct {
	OlderThanDays int `json:"older_than_days" validate:"required,min=1"`
}

// RunCleaning handles POST /api/data-cleaning/run
func (h *DashboardHandler) RunCleaning(c echo.Context) error {
	claims, _ := middleware.ClaimsFrom(c)

	var req cleaningRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	result, err := h.cleaning.Run(req.OlderThanDays, claims.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"result": result})
}
