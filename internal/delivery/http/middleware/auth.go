package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"fileshare/internal/application/auth"
	"fileshare/internal/delivery/http/handler"
)

// Auth middleware validates the session token and stores the session in the
// echo context
func Auth(authService auth.Service, cookie *handler.TokenCookie) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := handler.ExtractToken(c.Request(), cookie)
			if token == "" {
				return handler.SendError(c, "Authorization required", http.StatusUnauthorized)
			}

			s, err := authService.ValidateToken(c.Request().Context(), token)
			if err != nil {
				return handler.SendError(c, "Invalid or expired token", http.StatusUnauthorized)
			}

			handler.SetSession(c, s)
			return next(c)
		}
	}
}

// RequireAdmin middleware rejects sessions without the admin role
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := handler.GetSession(c).RequireAdmin(); err != nil {
				return handler.SendServiceError(c, err)
			}
			return next(c)
		}
	}
}
