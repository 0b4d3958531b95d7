package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"fileshare/internal/application/admin"
)

type AdminHandler struct {
	service admin.Service
}

func NewAdminHandler(service admin.Service) *AdminHandler {
	return &AdminHandler{
		service: service,
	}
}

// Health handles GET /health
func (h *AdminHandler) Health(c echo.Context) error {
	return SendSuccess(c, "ok", echo.Map{"status": "healthy"})
}

// Config handles GET /api/config
func (h *AdminHandler) Config(c echo.Context) error {
	return SendSuccess(c, "", h.service.PublicConfig())
}

// Stats handles GET /api/admin/stats
func (h *AdminHandler) Stats(c echo.Context) error {
	overview, err := h.service.Overview(c.Request().Context(), GetSession(c))
	if err != nil {
		return SendServiceError(c, err)
	}
	return SendSuccess(c, "", overview)
}

// FileStats handles GET /api/admin/file-stats
func (h *AdminHandler) FileStats(c echo.Context) error {
	st, err := h.service.FileStats(c.Request().Context(), GetSession(c))
	if err != nil {
		return SendServiceError(c, err)
	}
	return SendSuccess(c, "", st)
}

type themeRequest struct {
	Theme string `json:"theme" form:"theme"`
}

// SetTheme handles PUT /api/admin/theme
func (h *AdminHandler) SetTheme(c echo.Context) error {
	var req themeRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, "Invalid request body", http.StatusBadRequest)
	}
	if err := h.service.SetTheme(c.Request().Context(), GetSession(c), req.Theme); err != nil {
		return SendServiceError(c, err)
	}
	return SendSuccess(c, "Theme updated", echo.Map{"theme": req.Theme})
}

// Share handles GET /api/share
func (h *AdminHandler) Share(c echo.Context) error {
	info, err := h.service.ShareInfo(c.Request().Context(), GetSession(c))
	if err != nil {
		return SendServiceError(c, err)
	}
	return SendSuccess(c, "", info)
}

// ShareQRCode handles GET /api/share/qr.png?size=
func (h *AdminHandler) ShareQRCode(c echo.Context) error {
	size, _ := strconv.Atoi(c.QueryParam("size"))
	png, err := h.service.ShareQRCode(c.Request().Context(), GetSession(c), size)
	if err != nil {
		return SendServiceError(c, err)
	}
	return c.Blob(http.StatusOK, "image/png", png)
}
