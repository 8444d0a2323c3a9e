package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/inkerrobotics/luckydraw-admin/internal/middleware"
	"github.com/inkerrobotics/luckydraw-admin/internal/service"
)

// SettingHandler serves system settings endpoints.
type SettingHandler struct {
	settings  *service.SettingService
	validator *validator.Validate
}

// NewSettingHandler creates a SettingHandler.
func NewSettingHandler(settings *service.SettingService) *SettingHandler {
	return &SettingHandler{settings: settings, validator: newValidator()}
}

// List handles GET /api/settings
func (h *SettingHandler) List(c echo.Context) error {
	settings, err := h.settings.List(c.QueryParam("category"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"settings": settings})
}

type upsertSettingRequest struct {
	Category    string `json:"category" validate:"required"`
	Key         string `json:"key" validate:"required"`
	Value       string `json:"value"`
	ValueType   string `json:"value_type" validate:"omitempty,oneof=string number boolean json"`
	Description string `json:"description"`
}

// Upsert handles PUT /api/settings
func (h *SettingHandler) Upsert(c echo.Context) error {
	claims, _ := middleware.ClaimsFrom(c)

	var req upsertSettingRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	setting, err := h.settings.Upsert(req.Category, req.Key, req.Value, req.ValueType, req.Description, claims.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"setting": setting})
}

// History handles GET /api/settings/:id/history
func (h *SettingHandler) History(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	history, err := h.settings.History(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"history": history})
}
