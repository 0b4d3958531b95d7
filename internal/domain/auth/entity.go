package auth

import (
	"time"

	"fileshare/internal/domain/account"
)

// Session represents an authenticated account session
type Session struct {
	ID        string       `json:"id"`
	Token     string       `json:"-"`
	Username  string       `json:"username"`
	Role      account.Role `json:"role"`
	LoggedIn  bool         `json:"loggedIn"`
	ExpiresAt time.Time    `json:"expiresAt"`
	CreatedAt time.Time    `json:"createdAt"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// LoginResponse represents a successful login response
type LoginResponse struct {
	Token     string       `json:"token"`
	Username  string       `json:"username"`
	Role      account.Role `json:"role"`
	ExpiresAt int64        `json:"expiresAt"`
}

// SystemSession is the operator identity used by the command line tools.
func SystemSession() *Session {
	return &Session{Username: "system", Role: account.RoleAdmin, LoggedIn: true}
}

// RequireLogin fails unless the session belongs to a logged-in account.
func (s *Session) RequireLogin() error {
	if s == nil || !s.LoggedIn {
		return ErrUnauthorized
	}
	return nil
}

// RequireAdmin fails unless the session is logged in with the admin role.
func (s *Session) RequireAdmin() error {
	if err := s.RequireLogin(); err != nil {
		return err
	}
	if !s.Role.CanManageAccounts() {
		return ErrForbidden
	}
	return nil
}

// IsAdmin reports whether the session carries the admin role.
func (s *Session) IsAdmin() bool {
	return s.RequireAdmin() == nil
}
