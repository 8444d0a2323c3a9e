package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/inkerrobotics/luckydraw-admin/internal/service"
	"github.com/inkerrobotics/luckydraw-admin/pkg/jwtutil"
	"github.com/inkerrobotics/luckydraw-admin/pkg/logger"
	"github.com/inkerrobotics/luckydraw-admin/prometheus"
)

// Cookie names for the two token namespaces.
const (
	AdminCookieName  = "token"
	TenantCookieName = "tenant_token"
)

// Context keys set by the auth middlewares.
const (
	ContextClaims = "claims"
	ContextToken  = "token"
)

func extractToken(c echo.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}

// AdminAuth validates admin/user tokens from the token cookie or a Bearer
// header, rejects tenant-namespace tokens, and checks the session row is
// still active.
func AdminAuth(jwt *jwtutil.JWTUtil, sessions *service.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromEcho(c)

			token := extractToken(c, AdminCookieName)
			if token == "" {
				prometheus.RecordAuthError("missing_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
			}

			claims, err := jwt.ValidateToken(token)
			if err != nil {
				log.Warn("Invalid or expired token", zap.Error(err))
				prometheus.RecordAuthError("invalid_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
			}

			if claims.TokenType != jwtutil.TokenTypeAdmin {
				log.Warn("Tenant token presented on admin surface")
				prometheus.RecordAuthError("wrong_token_type")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			ok, err := sessions.Verify(token)
			if err != nil {
				log.Error("Session verification failed", zap.Error(err))
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "session verification failed"})
			}
			if !ok {
				prometheus.RecordAuthError("session_inactive")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "session expired or revoked"})
			}

			c.Set(ContextClaims, claims)
			c.Set(ContextToken, token)
			return next(c)
		}
	}
}

// TenantAuth validates tenant tokens from the tenant_token cookie or a
// Bearer header. The type claim is the only namespace barrier.
func TenantAuth(jwt *jwtutil.JWTUtil) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromEcho(c)

			token := extractToken(c, TenantCookieName)
			if token == "" {
				prometheus.RecordAuthError("missing_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
			}

			claims, err := jwt.ValidateToken(token)
			if err != nil {
				log.Warn("Invalid or expired tenant token", zap.Error(err))
				prometheus.RecordAuthError("invalid_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
			}

			if claims.TokenType != jwtutil.TokenTypeTenant || claims.TenantID == nil {
				log.Warn("Admin token presented on tenant surface")
				prometheus.RecordAuthError("wrong_token_type")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			c.Set(ContextClaims, claims)
			c.Set(ContextToken, token)
			return next(c)
		}
	}
}

// ClaimsFrom returns the validated claims placed by the auth middleware.
func ClaimsFrom(c echo.Context) (*jwtutil.Claims, bool) {
	claims, ok := c.Get(ContextClaims).(*jwtutil.Claims)
	return claims, ok
}

// TokenFrom returns the raw token placed by the auth middleware.
func TokenFrom(c echo.Context) string {
	token, _ := c.Get(ContextToken).(string)
	return token
}
