package auth

import "fileshare/internal/domain/apperr"

var (
	ErrInvalidCredentials = apperr.New(apperr.ErrAuth, "invalid username or password")
	ErrUnauthorized       = apperr.New(apperr.ErrAuth, "login required")
	ErrForbidden          = apperr.New(apperr.ErrAuth, "admin access required")
	ErrSessionNotFound    = apperr.New(apperr.ErrAuth, "session not found")
)
