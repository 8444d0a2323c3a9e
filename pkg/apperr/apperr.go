// Package apperr carries service errors annotated with the HTTP status
// code the handler layer should answer with.
package apperr

import (
	"errors"
	"net/http"
)

// Error is a service-level error with an HTTP status code.
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New creates an Error with an explicit status code.
func New(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

// NotFound creates a 404 error.
func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

// BadRequest creates a 400 error.
func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

// Unauthorized creates a 401 error.
func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

// Forbidden creates a 403 error.
func Forbidden(message string) *Error {
	return New(http.StatusForbidden, message)
}

// Internal creates a 500 error.
func Internal(message string) *Error {
	return New(http.StatusInternalServerError, message)
}

// StatusOf returns the status code carried by err, or 500 for plain errors.
func StatusOf(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return http.StatusInternalServerError
}
