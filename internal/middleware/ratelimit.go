package middleware

import (
	"net/http"

	redis_rate "github.com/go-redis/redis_rate/v10"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/inkerrobotics/luckydraw-admin/pkg/logger"
)

// LoginRateLimit throttles login attempts per client IP. When Redis is
// unreachable the limiter fails open so an outage cannot lock everyone
// out of the console.
func LoginRateLimit(rdb *redis.Client, perMinute int) echo.MiddlewareFunc {
	limiter := redis_rate.NewLimiter(rdb)
	limit := redis_rate.PerMinute(perMinute)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromEcho(c)

			key := "login:" + c.RealIP()
			res, err := limiter.Allow(c.Request().Context(), key, limit)
			if err != nil {
				log.Warn("Rate limiter unavailable, failing open", zap.Error(err))
				return next(c)
			}

			if res.Allowed == 0 {
				log.Warn("Login rate limit exceeded", zap.String("ip", c.RealIP()))
				return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "too many login attempts, try again later"})
			}

			return next(c)
		}
	}
}
