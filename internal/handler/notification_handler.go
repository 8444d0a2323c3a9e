package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/inkerrobotics/luckydraw-admin/internal/middleware"
	"github.com/inkerrobotics/luckydraw-admin/internal/service"
)

// NotificationHandler serves notification endpoints.
type NotificationHandler struct {
	notifications *service.NotificationService
	validator     *validator.Validate
}

// NewNotificationHandler creates a NotificationHandler.
func NewNotificationHandler(notifications *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications, validator: newValidator()}
}

type notificationRequest struct {
	Title    string `json:"title" validate:"required"`
	Message  string `json:"message" validate:"required"`
	Type     string `json:"type" validate:"omitempty,oneof=info warning error success"`
	Audience string `json:"audience"`
}

// Create handles POST /api/notifications
func (h *NotificationHandler) Create(c echo.Context) error {
	claims, _ := middleware.ClaimsFrom(c)

	var req notificationRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	notification, err := h.notifications.Create(service.CreateNotificationInput{
		Title:    req.Title,
		Message:  req.Message,
		Type:     req.Type,
		Audience: req.Audience,
	}, claims.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"notification": notification})
}

// List handles GET /api/notifications
func (h *NotificationHandler) List(c echo.Context) error {
	page, limit := pagination(c)
	notifications, total, err := h.notifications.List(c.QueryParam("status"), page, limit)
	if err != nil {
		return respondError(c, err)
	}

	counts, err := h.notifications.Counts()
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"notifications": notifications,
		"total":         total,
		"counts":        counts,
	})
}

// Send handles POST /api/notifications/:id/send
func (h *NotificationHandler) Send(c echo.Context) error {
	claims, _ := middleware.ClaimsFrom(c)

	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	notification, err := h.notifications.Send(id, claims.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"notification": notification})
}

// Delete handles DELETE /api/notifications/:id
func (h *NotificationHandler) Delete(c echo.Context) error {
	claims, _ := middleware.ClaimsFrom(c)

	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.notifications.Delete(id, claims.UserID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "notification deleted"})
}

type notificationTemplateRequest struct {
	Name     string `json:"name" validate:"required"`
	Title    string `json:"title" validate:"required"`
	Message  string `json:"message" validate:"required"`
	Type     string `json:"type" validate:"omitempty,oneof=info warning error success"`
	IsActive bool   `json:"is_active"`
}

func (r *notificationTemplateRequest) toInput() service.NotificationTemplateInput {
	return service.NotificationTemplateInput{
		Name:     r.Name,
		Title:    r.Title,
		Message:  r.Message,
		Type:     r.Type,
		IsActive: r.IsActive,
	}
}

// CreateTemplate handles POST /api/notification-templates
func (h *NotificationHandler) CreateTemplate(c echo.Context) error {
	claims, _ := middleware.ClaimsFrom(c)

	var req notificationTemplateRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	template, err := h.notifications.CreateTemplate(req.toInput(), claims.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"template": template})
}

// ListTemplates handles GET /api/notification-templates
func (h *NotificationHandler) ListTemplates(c echo.Context) error {
	templates, err := h.notifications.ListTemplates()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"templates": templates})
}

// UpdateTemplate handles PUT /api/notification-templates/:id
func (h *NotificationHandler) UpdateTemplate(c echo.Context) error {
	claims, _ := middleware.ClaimsFrom(c)

	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req notificationTemplateRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	template, err := h.notifications.UpdateTemplate(id, req.toInput(), claims.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"template": template})
}

// DeleteTemplate handles DELETE /api/notification-templates/:id
func (h *NotificationHandler) DeleteTemplate(c echo.Context) error {
	claims, _ := middleware.ClaimsFrom(c)

	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.notifications.DeleteTemplate(id, claims.UserID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "template deleted"})
}
