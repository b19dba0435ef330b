package domain

import (
	"strings"
	"time"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User models an account in the system. The password hash is opaque to every
// layer above the repository and is never serialized.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Nickname     string    `json:"nickname"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user's role grants admin privileges.
func (u *User) IsAdmin() bool {
	return strings.EqualFold(u.Role, RoleAdmin)
}

// Principal is the per-request identity derived from a validated token.
// It is built by the auth middleware, attached to the request context, and
// never persisted. The role is a copy of the claim at issuance time: a role
// change only takes effect for tokens issued after the change.
type Principal struct {
	Username string
	Role     string
}

// HasRole reports whether the principal's role matches any of the allowed
// roles. Comparison is case-insensitive to tolerate representation
// differences between stored role names and configured policy strings.
// An empty allowed set matches nothing.
func (p Principal) HasRole(allowed ...string) bool {
	for _, r := range allowed {
		if strings.EqualFold(p.Role, r) {
			return true
		}
	}
	return false
}
