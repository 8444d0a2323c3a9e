package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/inkerrobotics/luckydraw-admin/pkg/apperr"
)

func newValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// respondError translates a service error to the JSON error shape. Errors
// without a status code answer 500.
func respondError(c echo.Context, err error) error {
	return c.JSON(apperr.StatusOf(err), echo.Map{"error": err.Error()})
}

// bindAndValidate parses the body into req and runs struct validation.
func bindAndValidate(c echo.Context, v *validator.Validate, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return apperr.BadRequest("invalid request body")
	}
	if err := v.Struct(req); err != nil {
		return apperr.BadRequest(err.Error())
	}
	return nil
}

// paramID parses the :id path parameter.
func paramID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, apperr.BadRequest("invalid id")
	}
	return uint(id), nil
}

// pagination reads page/limit query parameters.
func pagination(c echo.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	return page, limit
}

// setAuthCookie issues an httpOnly session cookie. Secure is set in
// production only so local development over plain HTTP keeps working.
func setAuthCookie(c echo.Context, name, token string, maxAge time.Duration, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// clearAuthCookie expires a session cookie.
func clearAuthCookie(c echo.Context, name string, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}
