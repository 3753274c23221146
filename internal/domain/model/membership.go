package model

import (
	"strings"
	"time"
)

// Role is the membership role the server reports for a (user, tenant) pair.
// The console never computes roles; it only consumes them for UI gating.
type Role string

const (
	RoleOwner   Role = "OWNER"
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleStaff   Role = "STAFF"
)

// NormalizeRole uppercases and trims a server-reported role string.
func NormalizeRole(s string) Role {
	return Role(strings.ToUpper(strings.TrimSpace(s)))
}

// In reports whether the role is in the given allow-list.
func (r Role) In(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

// Membership is the current user's relationship to a tenant, as returned by
// GET /tenants/membership.
type Membership struct {
	TenantID    string   `json:"tenant_id"`
	UserID      string   `json:"user_id"`
	Role        Role     `json:"role"`
	Permissions []string `json:"permissions"`
	IsActive    bool     `json:"is_active"`
}

// Member is a row on the members page: a membership joined with the member's
// user record, as returned by GET /tenants/members.
type Member struct {
	TenantID    string    `json:"tenant_id"`
	UserID      string    `json:"user_id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Role        Role      `json:"role"`
	Permissions []string  `json:"permissions"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}
