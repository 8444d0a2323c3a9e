package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/inkerrobotics/luckydraw-admin/internal/middleware"
	"github.com/inkerrobotics/luckydraw-admin/internal/service"
)

// BackupHandler serves backup endpoints.
type BackupHandler struct {
	backups   *service.BackupService
	validator *validator.Validate
}

// NewBackupHandler creates a BackupHandler.
func NewBackupHandler(backups *service.BackupService) *BackupHandler {
	return &BackupHandler{backups: backups, validator: newValidator()}
}

type createBackupRequest struct {
	Type  string `json:"type" validate:"omitempty,oneof=manual scheduled"`
	Notes string `json:"notes"`
}

// Create handles POST /api/backups
func (h *BackupHandler) Create(c echo.Context) error {
	claims, _ := middleware.ClaimsFrom(c)

	var req createBackupRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	backup, err := h.backups.Create(req.Type, req.Notes, claims.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"backup": backup})
}

// List handles GET /api/backups
func (h *BackupHandler) List(c echo.Context) error {
	page, limit := pagination(c)
	backups, total, err := h.backups.List(page, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"backups": backups, "total": total})
}

// Delete handles DELETE /api/backups/:id
func (h *BackupHandler) Delete(c echo.Context) error {
	claims, _ := middleware.ClaimsFrom(c)

	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.backups.Delete(id, claims.UserID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "backup deleted"})
}
