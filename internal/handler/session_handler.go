package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/inkerrobotics/luckydraw-admin/internal/middleware"
	"github.com/inkerrobotics/luckydraw-admin/internal/model"
	"github.com/inkerrobotics/luckydraw-admin/internal/service"
)

// SessionHandler serves session registry endpoints.
type SessionHandler struct {
	sessions  *service.SessionService
	validator *validator.Validate
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(sessions *service.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions, validator: newValidator()}
}

// List handles GET /api/sessions. Admins see all sessions, other users
// only their own.
func (h *SessionHandler) List(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var userID *uint
	if claims.Role != model.RoleAdmin {
		userID = &claims.UserID
	}

	sessions, err := h.sessions.List(userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"sessions": sessions})
}

type revokeRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// Revoke handles DELETE /api/sessions/:id
func (h *SessionHandler) Revoke(c echo.Context) error {
	claims, _ := middleware.ClaimsFrom(c)

	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req revokeRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	if err := h.sessions.Revoke(id, claims.UserID, req.Reason); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "session revoked"})
}

type revokeAllRequest struct {
	UserID uint   `json:"user_id" validate:"required"`
	Reason string `json:"reason" validate:"required"`
}

// RevokeAll handles POST /api/sessions/revoke-all
func (h *SessionHandler) RevokeAll(c echo.Context) error {
	claims, _ := middleware.ClaimsFrom(c)

	var req revokeAllRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	count, err := h.sessions.RevokeAllForUser(req.UserID, claims.UserID, req.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "sessions revoked", "count": count})
}

// Cleanup handles POST /api/sessions/cleanup, the manual expiry sweep.
func (h *SessionHandler) Cleanup(c echo.Context) error {
	count, err := h.sessions.CleanupExpired()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "expired sessions deactivated", "count": count})
}
