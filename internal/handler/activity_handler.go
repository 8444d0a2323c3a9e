package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/inkerrobotics/luckydraw-admin/internal/service"
)

// ActivityHandler serves the activity log endpoints.
type ActivityHandler struct {
	activity *service.ActivityService
}

// NewActivityHandler creates an ActivityHandler.
func NewActivityHandler(activity *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activity: activity}
}

func logFilterFrom(c echo.Context) service.LogFilter {
	f := service.LogFilter{
		Module: c.QueryParam("module"),
		Action: c.QueryParam("action"),
		Status: c.QueryParam("status"),
	}
	if from := c.QueryParam("from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			f.From = &t
		}
	}
	if to := c.QueryParam("to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			f.To = &t
		}
	}
	f.Page, f.Limit = pagination(c)
	return f
}

// List handles GET /api/activity-logs
func (h *ActivityHandler) List(c echo.Context) error {
	logs, total, err := h.activity.List(logFilterFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"logs": logs, "total": total})
}

// Export handles GET /api/activity-logs/export
func (h *ActivityHandler) Export(c echo.Context) error {
	data, err := h.activity.ExportCSV(logFilterFrom(c))
	if err != nil {
		return respondError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="activity-logs.csv"`)
	return c.Blob(http.StatusOK, "text/csv", data)
}
