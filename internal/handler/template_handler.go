package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/inkerrobotics/luckydraw-admin/internal/middleware"
	"github.com/inkerrobotics/luckydraw-admin/internal/service"
)

// TemplateHandler serves email template endpoints.
type TemplateHandler struct {
	templates *service.TemplateService
	validator *validator.Validate
}

// NewTemplateHandler creates a TemplateHandler.
func NewTemplateHandler(templates *service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templates: templates, validator: newValidator()}
}

type templateRequest struct {
	TemplateType string `json:"template_type" validate:"required"`
	Name         string `json:"name" validate:"required"`
	Subject      string `json:"subject" validate:"required"`
	Body         string `json:"body" validate:"required"`
	Variables    string `json:"variables"`
	IsActive     bool   `json:"is_active"`
}

func (r *templateRequest) toInput() service.TemplateInput {
	return service.TemplateInput{
		TemplateType: r.TemplateType,
		Name:         r.Name,
		Subject:      r.Subject,
		Body:         r.Body,
		Variables:    r.Variables,
		IsActive:     r.IsActive,
	}
}

// Create handles POST /api/email-templates
func (h *TemplateHandler) Create(c echo.Context) error {
	claims, _ := middleware.ClaimsFrom(c)

	var req templateRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	template, err := h.templates.Create(req.toInput(), claims.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"template": template})
}

// List handles GET /api/email-templates
func (h *TemplateHandler) List(c echo.Context) error {
	templates, err := h.templates.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"templates": templates})
}

// Get handles GET /api/email-templates/:id
func (h *TemplateHandler) Get(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	template, err := h.templates.Get(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"template": template})
}

// Update handles PUT /api/email-templates/:id
func (h *TemplateHandler) Update(c echo.Context) error {
	claims, _ := middleware.ClaimsFrom(c)

	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req templateRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	template, err := h.templates.Update(id, req.toInput(), claims.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"template": template})
}

// Delete handles DELETE /api/email-templates/:id
func (h *TemplateHandler) Delete(c echo.Context) error {
	claims, _ := middleware.ClaimsFrom(c)

	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.templates.Delete(id, claims.UserID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "template deleted"})
}
