package account

import "time"

// Role represents account roles in the system
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ProtectedUsername is the seeded administrator that can never be deleted.
const ProtectedUsername = "admin"

// Account represents a local login
type Account struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never expose password hashes in JSON
	Role         Role      `json:"role"`
	Created      time.Time `json:"created"`
}

// CreateAccountRequest represents the request to create an account
type CreateAccountRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
	Role     Role   `json:"role" form:"role"`
}

// ParseRole maps free-form input onto a known role. Empty input means RoleUser.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case "", RoleUser:
		return RoleUser, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

// CanManageAccounts returns true if the role can manage other accounts
func (r Role) CanManageAccounts() bool {
	return r == RoleAdmin
}

// IsProtected reports whether the account may never be deleted.
func (a *Account) IsProtected() bool {
	return a.Username == ProtectedUsername
}
