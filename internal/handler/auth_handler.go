package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/inkerrobotics/luckydraw-admin/internal/middleware"
	"github.com/inkerrobotics/luckydraw-admin/internal/service"
	"github.com/inkerrobotics/luckydraw-admin/pkg/config"
)

// AuthHandler serves the admin/user authentication endpoints.
type AuthHandler struct {
	auth      *service.AuthService
	cfg       *config.Config
	validator *validator.Validate
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(auth *service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		auth:      auth,
		cfg:       cfg,
		validator: newValidator(),
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	user, token, err := h.auth.Login(req.Email, req.Password, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		return respondError(c, err)
	}

	setAuthCookie(c, middleware.AdminCookieName, token, h.auth.TokenExpiry(), h.cfg.IsProduction())

	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
		"user":  user,
	})
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	if err := h.auth.Logout(middleware.TokenFrom(c), claims.UserID); err != nil {
		return respondError(c, err)
	}

	clearAuthCookie(c, middleware.AdminCookieName, h.cfg.IsProduction())
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	user, err := h.auth.Me(claims.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": user})
}

// TenantAuthHandler serves the tenant authentication endpoints.
type TenantAuthHandler struct {
	auth      *service.TenantAuthService
	cfg       *config.Config
	validator *validator.Validate
}

// NewTenantAuthHandler creates a TenantAuthHandler.
func NewTenantAuthHandler(auth *service.TenantAuthService, cfg *config.Config) *TenantAuthHandler {
	return &TenantAuthHandler{
		auth:      auth,
		cfg:       cfg,
		validator: newValidator(),
	}
}

// Login handles POST /api/tenant-auth/login
func (h *TenantAuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	tenant, token, err := h.auth.Login(req.Email, req.Password, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		return respondError(c, err)
	}

	setAuthCookie(c, middleware.TenantCookieName, token, h.auth.TokenExpiry(), h.cfg.IsProduction())

	return c.JSON(http.StatusOK, echo.Map{
		"token":  token,
		"tenant": tenant,
	})
}

// Logout handles POST /api/tenant-auth/logout
func (h *TenantAuthHandler) Logout(c echo.Context) error {
	clearAuthCookie(c, middleware.TenantCookieName, h.cfg.IsProduction())
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

// Me handles GET /api/tenant-auth/me
func (h *TenantAuthHandler) Me(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok || claims.TenantID == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	tenant, err := h.auth.Me(*claims.TenantID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"tenant": tenant})
}
