package auth

import (
	"errors"
	"testing"

	"fileshare/internal/domain/account"
	"fileshare/internal/domain/apperr"
)

func TestSessionGuards(t *testing.T) {
	tests := []struct {
		name      string
		session   *Session
		wantLogin error
		wantAdmin error
	}{
		{"nil session", nil, ErrUnauthorized, ErrUnauthorized},
		{"logged out", &Session{Username: "bob", Role: account.RoleAdmin}, ErrUnauthorized, ErrUnauthorized},
		{"user", &Session{Username: "bob", Role: account.RoleUser, LoggedIn: true}, nil, ErrForbidden},
		{"admin", &Session{Username: "admin", Role: account.RoleAdmin, LoggedIn: true}, nil, nil},
		{"system", SystemSession(), nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.session.RequireLogin(); !errors.Is(err, tt.wantLogin) {
				t.Errorf("RequireLogin() = %v, want %v", err, tt.wantLogin)
			}
			if err := tt.session.RequireAdmin(); !errors.Is(err, tt.wantAdmin) {
				t.Errorf("RequireAdmin() = %v, want %v", err, tt.wantAdmin)
			}
		})
	}
}

func TestGuardErrorsAreAuthKind(t *testing.T) {
	for _, err := range []error{ErrUnauthorized, ErrForbidden, ErrInvalidCredentials} {
		if !errors.Is(err, apperr.ErrAuth) {
			t.Errorf("%v is not an auth error", err)
		}
	}
}
