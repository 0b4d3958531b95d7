package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"fileshare/internal/application/account"
	domain "fileshare/internal/domain/account"
)

type AccountHandler struct {
	service account.Service
}

func NewAccountHandler(service account.Service) *AccountHandler {
	return &AccountHandler{
		service: service,
	}
}

// List handles GET /api/admin/accounts
func (h *AccountHandler) List(c echo.Context) error {
	accounts, err := h.service.List(c.Request().Context(), GetSession(c))
	if err != nil {
		return SendServiceError(c, err)
	}
	return SendSuccess(c, "", accounts)
}

// Create handles POST /api/admin/accounts
func (h *AccountHandler) Create(c echo.Context) error {
	var req domain.CreateAccountRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, "Invalid request body", http.StatusBadRequest)
	}

	a, err := h.service.Add(c.Request().Context(), GetSession(c), req)
	if err != nil {
		return SendServiceError(c, err)
	}
	return SendJSON(c, http.StatusCreated, Response{
		Success: true,
		Message: "Account created",
		Data:    a,
	})
}

// Delete handles DELETE /api/admin/accounts/:username
func (h *AccountHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), GetSession(c), pathParam(c, "username")); err != nil {
		return SendServiceError(c, err)
	}
	return SendSuccess(c, "Account deleted", nil)
}

type passwordRequest struct {
	Password string `json:"password" form:"password"`
}

// SetPassword handles PUT /api/admin/accounts/:username/password
func (h *AccountHandler) SetPassword(c echo.Context) error {
	var req passwordRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, "Invalid request body", http.StatusBadRequest)
	}
	if err := h.service.SetPassword(c.Request().Context(), GetSession(c), pathParam(c, "username"), req.Password); err != nil {
		return SendServiceError(c, err)
	}
	return SendSuccess(c, "Password updated", nil)
}
