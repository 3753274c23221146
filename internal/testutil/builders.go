package testutil

import (
	"time"

	domainauth "github.com/postika/console/internal/domain/auth"
	"github.com/postika/console/internal/domain/model"
)

// UserBuilder provides a fluent interface for building model.User values for testing.
type UserBuilder struct {
	user model.User
}

// NewUser creates a new UserBuilder with a complete profile by default.
func NewUser() *UserBuilder {
	return &UserBuilder{
		user: model.User{
			ID:       "user-1",
			Email:    "test.user@example.com",
			FullName: "Test User",
			Phone:    "+254700000000",
			Country:  "KE",
			IsActive: true,
		},
	}
}

// WithID sets the user ID.
func (b *UserBuilder) WithID(id string) *UserBuilder {
	b.user.ID = id
	return b
}

// WithEmail sets the email address.
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.user.Email = email
	return b
}

// WithName sets the full name.
func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.user.FullName = name
	return b
}

// WithPhone sets the phone number.
func (b *UserBuilder) WithPhone(phone string) *UserBuilder {
	b.user.Phone = phone
	return b
}

// WithProfileComplete sets the server-reported profile flag.
func (b *UserBuilder) WithProfileComplete(complete bool) *UserBuilder {
	b.user.ProfileComplete = &complete
	return b
}

// Incomplete clears the profile fields so the structural check fails.
func (b *UserBuilder) Incomplete() *UserBuilder {
	b.user.FullName = ""
	b.user.Phone = ""
	b.user.ProfileComplete = nil
	return b
}

// Build returns the constructed user.
func (b *UserBuilder) Build() model.User {
	return b.user
}

// SessionBuilder provides a fluent interface for building sessions for testing.
type SessionBuilder struct {
	sess domainauth.Session
}

// NewSession creates a new SessionBuilder with a live session and a complete user.
func NewSession() *SessionBuilder {
	return &SessionBuilder{
		sess: domainauth.Session{
			ID:        "sess-1",
			Token:     "test-token",
			User:      NewUser().Build(),
			ExpiresAt: time.Now().Add(time.Hour),
		},
	}
}

// WithID sets the session ID.
func (b *SessionBuilder) WithID(id string) *SessionBuilder {
	b.sess.ID = id
	return b
}

// WithToken sets the bearer token.
func (b *SessionBuilder) WithToken(token string) *SessionBuilder {
	b.sess.Token = token
	return b
}

// WithUser sets the user snapshot.
func (b *SessionBuilder) WithUser(u model.User) *SessionBuilder {
	b.sess.User = u
	return b
}

// WithActiveTenant sets the selected tenant.
func (b *SessionBuilder) WithActiveTenant(tenantID string) *SessionBuilder {
	b.sess.ActiveTenantID = tenantID
	return b
}

// WithExpiresAt sets the session expiry.
func (b *SessionBuilder) WithExpiresAt(at time.Time) *SessionBuilder {
	b.sess.ExpiresAt = at
	return b
}

// Expired moves the expiry into the past.
func (b *SessionBuilder) Expired() *SessionBuilder {
	b.sess.ExpiresAt = time.Now().Add(-time.Minute)
	return b
}

// Build returns the constructed session.
func (b *SessionBuilder) Build() domainauth.Session {
	return b.sess
}

// TenantBuilder provides a fluent interface for building model.Tenant values for testing.
type TenantBuilder struct {
	tenant model.Tenant
}

// NewTenant creates a new TenantBuilder with sensible defaults.
func NewTenant() *TenantBuilder {
	return &TenantBuilder{
		tenant: model.Tenant{
			ID:        "tenant-1",
			Name:      "Acme Traders",
			Tier:      "free",
			CreatedAt: time.Now().Add(-24 * time.Hour),
		},
	}
}

// WithID sets the tenant ID.
func (b *TenantBuilder) WithID(id string) *TenantBuilder {
	b.tenant.ID = id
	return b
}

// WithName sets the tenant name.
func (b *TenantBuilder) WithName(name string) *TenantBuilder {
	b.tenant.Name = name
	return b
}

// Build returns the constructed tenant.
func (b *TenantBuilder) Build() model.Tenant {
	return b.tenant
}

// MembershipBuilder provides a fluent interface for building memberships for testing.
type MembershipBuilder struct {
	m model.Membership
}

// NewMembership creates a new MembershipBuilder with an active OWNER membership.
func NewMembership() *MembershipBuilder {
	return &MembershipBuilder{
		m: model.Membership{
			TenantID:    "tenant-1",
			UserID:      "user-1",
			Role:        model.RoleOwner,
			Permissions: []string{"members:read", "members:write"},
			IsActive:    true,
		},
	}
}

// WithTenant sets the tenant ID.
func (b *MembershipBuilder) WithTenant(tenantID string) *MembershipBuilder {
	b.m.TenantID = tenantID
	return b
}

// WithUser sets the user ID.
func (b *MembershipBuilder) WithUser(userID string) *MembershipBuilder {
	b.m.UserID = userID
	return b
}

// WithRole sets the role.
func (b *MembershipBuilder) WithRole(role model.Role) *MembershipBuilder {
	b.m.Role = role
	return b
}

// Inactive marks the membership inactive.
func (b *MembershipBuilder) Inactive() *MembershipBuilder {
	b.m.IsActive = false
	return b
}

// Build returns the constructed membership.
func (b *MembershipBuilder) Build() model.Membership {
	return b.m
}

// InvitationBuilder provides a fluent interface for building invitations for testing.
type InvitationBuilder struct {
	inv model.Invitation
}

// NewInvitation creates a new InvitationBuilder with a pending invitation.
func NewInvitation() *InvitationBuilder {
	return &InvitationBuilder{
		inv: model.Invitation{
			ID:        "inv-1",
			TenantID:  "tenant-1",
			Email:     "invitee@example.com",
			Role:      model.RoleStaff,
			ExpiresAt: time.Now().Add(72 * time.Hour),
			CreatedAt: time.Now().Add(-time.Hour),
		},
	}
}

// WithID sets the invitation ID.
func (b *InvitationBuilder) WithID(id string) *InvitationBuilder {
	b.inv.ID = id
	return b
}

// WithEmail sets the invitee email.
func (b *InvitationBuilder) WithEmail(email string) *InvitationBuilder {
	b.inv.Email = email
	return b
}

// WithRole sets the invited role.
func (b *InvitationBuilder) WithRole(role model.Role) *InvitationBuilder {
	b.inv.Role = role
	return b
}

// WithCreatedAt sets the creation time.
func (b *InvitationBuilder) WithCreatedAt(at time.Time) *InvitationBuilder {
	b.inv.CreatedAt = at
	return b
}

// Accepted marks the invitation accepted at the given time.
func (b *InvitationBuilder) Accepted(at time.Time) *InvitationBuilder {
	b.inv.AcceptedAt = &at
	return b
}

// Expired moves the invitation expiry into the past.
func (b *InvitationBuilder) Expired() *InvitationBuilder {
	b.inv.ExpiresAt = time.Now().Add(-time.Hour)
	return b
}

// Build returns the constructed invitation.
func (b *InvitationBuilder) Build() model.Invitation {
	return b.inv
}
