package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/inkerrobotics/luckydraw-admin/internal/service"
	"github.com/inkerrobotics/luckydraw-admin/pkg/logger"
)

// RequirePermission gates a route on the caller's effective permission
// for (module, action). ADMIN users always pass.
func RequirePermission(roles *service.RoleService, module, action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromEcho(c)

			claims, ok := ClaimsFrom(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
			}

			allowed, err := roles.HasPermission(claims.UserID, module, action)
			if err != nil {
				log.Error("Permission evaluation failed", zap.Error(err))
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "permission check failed"})
			}
			if !allowed {
				log.Warn("Permission denied",
					zap.Uint("user_id", claims.UserID),
					zap.String("module", module),
					zap.String("action", action))
				return c.JSON(http.StatusForbidden, echo.Map{"error": "permission denied"})
			}

			return next(c)
		}
	}
}
