package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusOf(NotFound("tenant not found")))
	assert.Equal(t, http.StatusBadRequest, StatusOf(BadRequest("reason is required")))
	assert.Equal(t, http.StatusUnauthorized, StatusOf(Unauthorized("invalid credentials")))
	assert.Equal(t, http.StatusForbidden, StatusOf(Forbidden("permission denied")))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(Internal("boom")))
	assert.Equal(t, http.StatusTeapot, StatusOf(New(http.StatusTeapot, "teapot")))
}

func TestStatusOfPlainError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("plain")))
}

func TestStatusOfWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("listing tenants: %w", NotFound("tenant not found"))
	assert.Equal(t, http.StatusNotFound, StatusOf(wrapped))
}

func TestErrorMessage(t *testing.T) {
	err := BadRequest("invalid status")
	assert.Equal(t, "invalid status", err.Error())
}
