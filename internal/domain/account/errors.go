package account

import "fileshare/internal/domain/apperr"

var (
	ErrAccountNotFound    = apperr.New(apperr.ErrNotFound, "account not found")
	ErrAccountExists      = apperr.New(apperr.ErrConflict, "username already exists")
	ErrProtectedAccount   = apperr.New(apperr.ErrProtected, "cannot delete the admin account")
	ErrMissingCredentials = apperr.New(apperr.ErrValidation, "username and password required")
	ErrInvalidRole        = apperr.New(apperr.ErrValidation, "role must be user or admin")
	ErrInvalidUsername    = apperr.New(apperr.ErrValidation, "invalid username")
)
