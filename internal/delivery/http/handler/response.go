package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"fileshare/internal/domain/apperr"
	"fileshare/internal/domain/auth"
	"fileshare/internal/domain/file"
)

// Response represents a standard API response
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// SendJSON sends a JSON response
func SendJSON(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, data)
}

// SendSuccess sends a successful JSON response
func SendSuccess(c echo.Context, message string, data any) error {
	return SendJSON(c, http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// SendError sends an error JSON response
func SendError(c echo.Context, message string, statusCode int) error {
	return SendJSON(c, statusCode, Response{
		Success: false,
		Message: message,
	})
}

// SendServiceError translates a service-layer error into a status code by
// its kind. Internal failures are logged and reported without detail.
func SendServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, auth.ErrForbidden):
		return SendError(c, err.Error(), http.StatusForbidden)
	case errors.Is(err, file.ErrFileTooLarge):
		return SendError(c, err.Error(), http.StatusRequestEntityTooLarge)
	}

	switch apperr.Kind(err) {
	case apperr.ErrAuth:
		return SendError(c, err.Error(), http.StatusUnauthorized)
	case apperr.ErrValidation:
		return SendError(c, err.Error(), http.StatusBadRequest)
	case apperr.ErrNotFound:
		return SendError(c, err.Error(), http.StatusNotFound)
	case apperr.ErrConflict:
		return SendError(c, err.Error(), http.StatusConflict)
	case apperr.ErrProtected:
		return SendError(c, err.Error(), http.StatusForbidden)
	}

	slog.Error("request failed",
		"method", c.Request().Method,
		"path", c.Request().URL.Path,
		"error", err,
	)
	return SendError(c, "Internal server error", http.StatusInternalServerError)
}

// ErrorHandler renders errors returned by echo itself (unknown routes, bad
// methods, panics caught by Recover) in the response envelope.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg, ok := he.Message.(string)
		if !ok {
			msg = http.StatusText(he.Code)
		}
		SendError(c, msg, he.Code)
		return
	}
	SendServiceError(c, err)
}
