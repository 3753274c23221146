package model

import "time"

// InvitationStatus is derived client-side when the server omits an explicit
// status: accepted if accepted_at is set, expired if expires_at has passed,
// pending otherwise.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationExpired  InvitationStatus = "expired"
)

// Invitation is a pending or settled tenant invitation.
type Invitation struct {
	ID         string     `json:"id"`
	TenantID   string     `json:"tenant_id"`
	Email      string     `json:"email"`
	Role       Role       `json:"role"`
	ExpiresAt  time.Time  `json:"expires_at"`
	AcceptedAt *time.Time `json:"accepted_at"`
	CreatedAt  time.Time  `json:"created_at"`
}

// StatusAt derives the invitation status at the given instant.
func (i Invitation) StatusAt(now time.Time) InvitationStatus {
	switch {
	case i.AcceptedAt != nil:
		return InvitationAccepted
	case now.After(i.ExpiresAt):
		return InvitationExpired
	default:
		return InvitationPending
	}
}

// Status derives the invitation status against the current clock.
func (i Invitation) Status() InvitationStatus {
	return i.StatusAt(time.Now())
}
