package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/inkerrobotics/luckydraw-admin/internal/middleware"
	"github.com/inkerrobotics/luckydraw-admin/internal/service"
)

// UserHandler serves user management endpoints.
type UserHandler struct {
	users     *service.UserService
	validator *validator.Validate
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users, validator: newValidator()}
}

type createUserRequest struct {
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	Role         string `json:"role" validate:"omitempty,oneof=ADMIN USER"`
	CustomRoleID *uint  `json:"custom_role_id"`
	TenantID     *uint  `json:"tenant_id"`
	SendEmail    bool   `json:"send_email"`
}

// Create handles POST /api/users
func (h *UserHandler) Create(c echo.Context) error {
	claims, _ := middleware.ClaimsFrom(c)

	var req createUserRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	user, err := h.users.Create(service.CreateUserInput{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		Role:         req.Role,
		CustomRoleID: req.CustomRoleID,
		TenantID:     req.TenantID,
		SendEmail:    req.SendEmail,
	}, claims.UserID, c.RealIP())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"user": user})
}

// List handles GET /api/users
func (h *UserHandler) List(c echo.Context) error {
	page, limit := pagination(c)
	users, total, err := h.users.List(page, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"users": users, "total": total})
}

// Get handles GET /api/users/:id
func (h *UserHandler) Get(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	user, err := h.users.Get(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": user})
}

type updateUserRequest struct {
	Name         *string `json:"name"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Role         *string `json:"role" validate:"omitempty,oneof=ADMIN USER"`
	CustomRoleID *uint   `json:"custom_role_id"`
	TenantID     *uint   `json:"tenant_id"`
}

// Update handles PUT /api/users/:id
func (h *UserHandler) Update(c echo.Context) error {
	claims, _ := middleware.ClaimsFrom(c)

	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req updateUserRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	user, err := h.users.Update(id, service.UpdateUserInput{
		Name:         req.Name,
		Email:        req.Email,
		Role:         req.Role,
		CustomRoleID: req.CustomRoleID,
		TenantID:     req.TenantID,
	}, claims.UserID, c.RealIP())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"user": user})
}

// Delete handles DELETE /api/users/:id
func (h *UserHandler) Delete(c echo.Context) error {
	claims, _ := middleware.ClaimsFrom(c)

	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.users.Delete(id, claims.UserID, c.RealIP()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "user deleted"})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// ChangePassword handles PUT /api/users/change-password
func (h *UserHandler) ChangePassword(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req changePasswordRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	if err := h.users.ChangePassword(claims.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "password changed"})
}
