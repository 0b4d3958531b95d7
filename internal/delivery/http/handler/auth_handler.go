package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"fileshare/internal/application/auth"
	domain "fileshare/internal/domain/auth"
)

type AuthHandler struct {
	service auth.Service
	cookie  *TokenCookie
}

func NewAuthHandler(service auth.Service, cookie *TokenCookie) *AuthHandler {
	return &AuthHandler{
		service: service,
		cookie:  cookie,
	}
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req domain.LoginRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, "Invalid request body", http.StatusBadRequest)
	}

	s, err := h.service.Login(c.Request().Context(), req)
	if err != nil {
		return SendServiceError(c, err)
	}

	if h.cookie != nil {
		if err := h.cookie.Set(c.Response(), c.Request(), s.Token); err != nil {
			return SendServiceError(c, err)
		}
	}

	return SendSuccess(c, "Login successful", domain.LoginResponse{
		Token:     s.Token,
		Username:  s.Username,
		Role:      s.Role,
		ExpiresAt: s.ExpiresAt.Unix(),
	})
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(c echo.Context) error {
	if token := ExtractToken(c.Request(), h.cookie); token != "" {
		if err := h.service.Logout(c.Request().Context(), token); err != nil {
			return SendServiceError(c, err)
		}
	}
	if h.cookie != nil {
		h.cookie.Clear(c.Response(), c.Request())
	}
	return SendSuccess(c, "Logged out successfully", nil)
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(c echo.Context) error {
	s := GetSession(c)
	if err := s.RequireLogin(); err != nil {
		return SendServiceError(c, err)
	}
	return SendSuccess(c, "", s)
}
