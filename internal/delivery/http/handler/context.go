package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"fileshare/internal/domain/auth"
)

// SessionContextKey is the key used to store the session in the echo context
const SessionContextKey = "session"

// SetSession attaches the resolved session to the request.
func SetSession(c echo.Context, s *auth.Session) {
	c.Set(SessionContextKey, s)
}

// GetSession retrieves the session from the echo context
func GetSession(c echo.Context) *auth.Session {
	s, ok := c.Get(SessionContextKey).(*auth.Session)
	if !ok {
		return nil
	}
	return s
}

// ExtractToken finds the session token in the Authorization header, the
// session cookie or the token query parameter, in that order.
func ExtractToken(r *http.Request, cookie *TokenCookie) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	if cookie != nil {
		if token := cookie.Token(r); token != "" {
			return token
		}
	}

	// Query parameter for direct download links
	return r.URL.Query().Get("token")
}

// pathParam returns a path parameter with any remaining escapes decoded.
func pathParam(c echo.Context, name string) string {
	v := c.Param(name)
	if c.Request().URL.RawPath == "" {
		return v
	}
	if u, err := url.PathUnescape(v); err == nil {
		return u
	}
	return v
}
