package handler

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/inkerrobotics/luckydraw-admin/internal/middleware"
	"github.com/inkerrobotics/luckydraw-admin/internal/service"
)

// RoleHandler serves custom role endpoints.
type RoleHandler struct {
	roles     *service.RoleService
	validator *validator.Validate
}

// NewRoleHandler creates a RoleHandler.
func NewRoleHandler(roles *service.RoleService) *RoleHandler {
	return &RoleHandler{roles: roles, validator: newValidator()}
}

type roleRequest struct {
	Name        string                    `json:"name" validate:"required"`
	Description string                    `json:"description"`
	IsActive    bool                      `json:"is_active"`
	Permissions []service.PermissionInput `json:"permissions" validate:"dive"`
}

// Create handles POST /api/roles
func (h *RoleHandler) Create(c echo.Context) error {
	claims, _ := middleware.ClaimsFrom(c)

	var req roleRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	role, err := h.roles.Create(req.Name, req.Description, req.Permissions, claims.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"role": role})
}

// List handles GET /api/roles
func (h *RoleHandler) List(c echo.Context) error {
	roles, err := h.roles.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"roles": roles})
}

// Get handles GET /api/roles/:id
func (h *RoleHandler) Get(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	role, err := h.roles.Get(id)
	if err != nil {
		return respondError(c, err)
	}

	count, err := h.roles.UserCount(id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"role": role, "user_count": count})
}

// Update handles PUT /api/roles/:id
func (h *RoleHandler) Update(c echo.Context) error {
	claims, _ := middleware.ClaimsFrom(c)

	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req roleRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	role, err := h.roles.Update(id, req.Name, req.Description, req.IsActive, req.Permissions, claims.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"role": role})
}

// Delete handles DELETE /api/roles/:id. The deleteUsers query flag opts
// into removing the users still assigned to the role.
func (h *RoleHandler) Delete(c echo.Context) error {
	claims, _ := middleware.ClaimsFrom(c)

	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	deleteUsers, _ := strconv.ParseBool(c.QueryParam("deleteUsers"))

	if err := h.roles.Delete(id, deleteUsers, claims.UserID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "role deleted"})
}
