package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// RateLimit returns a fixed-window per-client limiter backed by
// Redis: perMin requests per route per client IP.  With no Redis
// client or a zero limit the middleware is a pass-through, and a
// Redis error at request time fails open rather than blocking the
// checkout.
func RateLimit(rdb *redis.Client, perMin int) echo.MiddlewareFunc {
	if rdb == nil || perMin <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			if ip == "" {
				ip = "unknown"
			}
			window := time.Now().Unix() / 60
			key := "rl:" + ip + ":" + c.Path() + ":" + strconv.FormatInt(window, 10)

			ctx := c.Request().Context()
			count, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				return next(c)
			}
			if count == 1 {
				_ = rdb.Expire(ctx, key, time.Minute).Err()
			}
			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(perMin))
			if count > int64(perMin) {
				c.Response().Header().Set("Retry-After", "60")
				return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "rate limit exceeded"})
			}
			return next(c)
		}
	}
}
