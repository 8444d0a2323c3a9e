package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/inkerrobotics/luckydraw-admin/internal/middleware"
	"github.com/inkerrobotics/luckydraw-admin/internal/service"
)

// TenantHandler serves tenant management endpoints.
type TenantHandler struct {
	tenants   *service.TenantService
	validator *validator.Validate
}

// NewTenantHandler creates a TenantHandler.
func NewTenantHandler(tenants *service.TenantService) *TenantHandler {
	return &TenantHandler{tenants: tenants, validator: newValidator()}
}

type createTenantRequest struct {
	Name             string `json:"name" validate:"required"`
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required,min=8"`
	SubscriptionPlan string `json:"subscription_plan"`
}

// Create handles POST /api/tenants
func (h *TenantHandler) Create(c echo.Context) error {
	claims, _ := middleware.ClaimsFrom(c)

	var req createTenantRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	tenant, err := h.tenants.Create(service.CreateTenantInput{
		Name:             req.Name,
		Email:            req.Email,
		Password:         req.Password,
		SubscriptionPlan: req.SubscriptionPlan,
	}, claims.UserID, c.RealIP())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"tenant": tenant})
}

// List handles GET /api/tenants
func (h *TenantHandler) List(c echo.Context) error {
	page, limit := pagination(c)
	tenants, total, err := h.tenants.List(service.TenantFilter{
		Status: c.QueryParam("status"),
		Search: c.QueryParam("search"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"tenants": tenants, "total": total})
}

// Get handles GET /api/tenants/:id
func (h *TenantHandler) Get(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	tenant, err := h.tenants.Get(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"tenant": tenant})
}

type updateTenantRequest struct {
	Name             *string `json:"name"`
	Email            *string `json:"email" validate:"omitempty,email"`
	SubscriptionPlan *string `json:"subscription_plan"`
}

// Update handles PUT /api/tenants/:id
func (h *TenantHandler) Update(c echo.Context) error {
	claims, _ := middleware.ClaimsFrom(c)

	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req updateTenantRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	tenant, err := h.tenants.Update(id, service.UpdateTenantInput{
		Name:             req.Name,
		Email:            req.Email,
		SubscriptionPlan: req.SubscriptionPlan,
	}, claims.UserID, c.RealIP())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"tenant": tenant})
}

// Delete handles DELETE /api/tenants/:id
func (h *TenantHandler) Delete(c echo.Context) error {
	claims, _ := middleware.ClaimsFrom(c)

	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.tenants.Delete(id, claims.UserID, c.RealIP()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "tenant deleted"})
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Reason string `json:"reason" validate:"required"`
}

// UpdateStatus handles PATCH /api/tenants/:id/status
func (h *TenantHandler) UpdateStatus(c echo.Context) error {
	claims, _ := middleware.ClaimsFrom(c)

	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req updateStatusRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	tenant, err := h.tenants.UpdateStatus(id, req.Status, req.Reason, claims.UserID, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"tenant": tenant})
}

type bulkStatusRequest struct {
	TenantIDs []uint `json:"tenant_ids" validate:"required,min=1"`
	Status    string `json:"status" validate:"required"`
	Reason    string `json:"reason" validate:"required"`
}

// BulkUpdateStatus handles POST /api/tenants/bulk-status
func (h *TenantHandler) BulkUpdateStatus(c echo.Context) error {
	claims, _ := middleware.ClaimsFrom(c)

	var req bulkStatusRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	results := h.tenants.BulkUpdateStatus(req.TenantIDs, req.Status, req.Reason, claims.UserID, c.RealIP(), c.Request().UserAgent())

	succeeded := 0
	for _, r := range results {
		if r.OK {
			succeeded++
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"results":   results,
		"succeeded": succeeded,
		"failed":    len(results) - succeeded,
	})
}

// StatusHistory handles GET /api/tenants/:id/status-history
func (h *TenantHandler) StatusHistory(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	history, err := h.tenants.StatusHistory(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"history": history})
}

type whatsAppRequest struct {
	APIKey            string `json:"api_key" validate:"required"`
	PhoneNumberID     string `json:"phone_number_id" validate:"required"`
	BusinessAccountID string `json:"business_account_id" validate:"required"`
}

// SetWhatsAppCredentials handles PUT /api/tenants/:id/whatsapp
func (h *TenantHandler) SetWhatsAppCredentials(c echo.Context) error {
	claims, _ := middleware.ClaimsFrom(c)

	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req whatsAppRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	err = h.tenants.SetWhatsAppCredentials(id, service.WhatsAppCredentials{
		APIKey:            req.APIKey,
		PhoneNumberID:     req.PhoneNumberID,
		BusinessAccountID: req.BusinessAccountID,
	}, claims.UserID, c.RealIP())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "credentials updated"})
}

// GetWhatsAppCredentials handles GET /api/tenants/:id/whatsapp
func (h *TenantHandler) GetWhatsAppCredentials(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	creds, err := h.tenants.GetWhatsAppCredentials(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"credentials": creds})
}
