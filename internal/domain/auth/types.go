package auth

// Package auth contains domain-level types for the console session.
// It is pure and free of framework/adapter concerns.

import (
	"time"

	"github.com/postika/console/internal/domain/model"
)

// Session is the server-side record the console persists per browser.
// ID is an opaque session identifier carried in an HttpOnly cookie. The
// bearer token, the active tenant selection, and the user snapshot live
// together here so that logout clears all three at once.
type Session struct {
	ID             string     `json:"id"`
	Token          string     `json:"token"`
	User           model.User `json:"user"`
	ActiveTenantID string     `json:"active_tenant_id"`
	ExpiresAt      time.Time  `json:"expires_at"`
}

// HasActiveTenant reports whether a tenant has been selected for this session.
func (s Session) HasActiveTenant() bool { return s.ActiveTenantID != "" }
