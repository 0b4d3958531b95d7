package testutil

import (
	"fileshare/internal/domain/account"
	"fileshare/internal/domain/auth"
)

// UserSession is a logged-in session with the user role.
func UserSession(username string) *auth.Session {
	return &auth.Session{Username: username, Role: account.RoleUser, LoggedIn: true}
}

// AdminSession is a logged-in session with the admin role.
func AdminSession(username string) *auth.Session {
	return &auth.Session{Username: username, Role: account.RoleAdmin, LoggedIn: true}
}
