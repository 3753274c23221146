package ports

// Package ports defines interfaces (hexagonal ports) for the console.
// Implementations live in internal/adapters and internal/upstream;
// orchestration in internal/service.

import (
	"context"
	"time"

	domainauth "github.com/postika/console/internal/domain/auth"
	"github.com/postika/console/internal/domain/model"
)

// sessionNotFoundError is comparable so errors.Is works without wrapping.
type sessionNotFoundError struct{}

func (sessionNotFoundError) Error() string { return "session not found" }

// ErrSessionNotFound is returned by SessionStore implementations when no
// session exists for the given ID.
var ErrSessionNotFound error = sessionNotFoundError{}

// SessionStore persists and retrieves console sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// MembershipCache holds membership lookups per (user, tenant) with an
// explicit TTL. Invalidation is tenant-wide: any role or activity change for
// a tenant drops every cached entry for it.
type MembershipCache interface {
	Get(ctx context.Context, userID, tenantID string) (model.Membership, bool, error)
	Set(ctx context.Context, m model.Membership, ttl time.Duration) error
	InvalidateTenant(ctx context.Context, tenantID string) error
}

// ProfileUpdate carries the PATCH /auth/me fields. Nil pointers are omitted
// from the request body.
type ProfileUpdate struct {
	FullName *string `json:"full_name,omitempty"`
	Phone    *string `json:"phone_e164,omitempty"`
	Country  *string `json:"country,omitempty"`
}

// TenantCreate carries the POST /tenants body.
type TenantCreate struct {
	Name               string  `json:"name"`
	AcceptedTerms      bool    `json:"accepted_terms"`
	NotificationsOptIn bool    `json:"notifications_opt_in"`
	ReferralCode       *string `json:"referral_code,omitempty"`
}

// MemberUpdate carries the PATCH /tenants/members/{userId} body.
type MemberUpdate struct {
	Role     *model.Role `json:"role,omitempty"`
	IsActive *bool       `json:"is_active,omitempty"`
}

// InvitationCreate carries the POST /tenants/invitations body.
type InvitationCreate struct {
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
}

// AcceptResult is the server's answer to a successful invitation accept.
type AcceptResult struct {
	Status   string `json:"status"`
	TenantID string `json:"tenant_id"`
	UserID   string `json:"user_id"`
	Role     string `json:"role"`
}

// API is the remote POSTIKA surface the console consumes. The bearer token is
// per-session, so authenticated calls take it explicitly; tenant-scoped calls
// additionally take the tenant identifier forwarded in the scoping header.
type API interface {
	// Auth (no bearer token).
	RequestCode(ctx context.Context, email string) error
	VerifyCode(ctx context.Context, email, code string) (accessToken string, err error)

	// Current user.
	Me(ctx context.Context, token string) (model.User, error)
	UpdateMe(ctx context.Context, token string, upd ProfileUpdate) (model.User, error)

	// Tenants.
	ListTenants(ctx context.Context, token string) ([]model.Tenant, error)
	CreateTenant(ctx context.Context, token string, req TenantCreate) (model.Tenant, error)
	Membership(ctx context.Context, token, tenantID string) (model.Membership, error)

	// Members.
	ListMembers(ctx context.Context, token, tenantID string) ([]model.Member, error)
	UpdateMember(ctx context.Context, token, tenantID, userID string, upd MemberUpdate) (model.Member, error)

	// Invitations.
	ListInvitations(ctx context.Context, token, tenantID string) ([]model.Invitation, error)
	CreateInvitation(ctx context.Context, token, tenantID string, req InvitationCreate) (model.Invitation, error)
	AcceptInvitation(ctx context.Context, inviteToken string) (AcceptResult, error)
	RevokeInvitation(ctx context.Context, token, tenantID, invitationID string) error
	ResendInvitation(ctx context.Context, token, tenantID, invitationID string) (model.Invitation, error)
}
