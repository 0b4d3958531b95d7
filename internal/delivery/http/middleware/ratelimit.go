package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"fileshare/internal/delivery/http/handler"
)

// LoginLimiter is a per-IP token bucket for the login endpoint. rps <= 0
// disables it.
func LoginLimiter(rps float64, burst int) echo.MiddlewareFunc {
	if rps <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	if burst < 1 {
		burst = 1
	}

	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(rps),
			Burst:     burst,
			ExpiresIn: 10 * time.Minute,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, ip string, err error) error {
			slog.Warn("login rate limit exceeded", "ip", ip)
			return handler.SendError(c, "Too many login attempts, try again later", http.StatusTooManyRequests)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return handler.SendError(c, "Forbidden", http.StatusForbidden)
		},
	})
}
