package service

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	domainauth "github.com/postika/console/internal/domain/auth"
	"github.com/postika/console/internal/domain/model"
	apperrors "github.com/postika/console/internal/errors"
	"github.com/postika/console/internal/ports"
)

// DefaultMembershipTTL is how long a resolved membership may be served from
// cache before the next guard check refetches it.
const DefaultMembershipTTL = 5 * time.Minute

// TenantServiceOptions groups dependencies for TenantService.
type TenantServiceOptions struct {
	API           ports.API
	Cache         ports.MembershipCache
	MembershipTTL time.Duration
	Logger        *slog.Logger
}

// TenantService covers tenant listing/creation, membership resolution, and
// member administration. Membership lookups go through an explicit TTL cache
// with tenant-wide invalidation on any member mutation; concurrent refreshes
// for the same (user, tenant) pair are collapsed into one upstream call.
type TenantService struct {
	api           ports.API
	cache         ports.MembershipCache
	membershipTTL time.Duration
	logger        *slog.Logger
	group         singleflight.Group
}

// NewTenantService constructs a new TenantService.
func NewTenantService(opts TenantServiceOptions) *TenantService {
	ttl := opts.MembershipTTL
	if ttl <= 0 {
		ttl = DefaultMembershipTTL
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &TenantService{
		api:           opts.API,
		cache:         opts.Cache,
		membershipTTL: ttl,
		logger:        logger,
	}
}

// List returns the tenants the session's user is an active member of.
func (s *TenantService) List(ctx context.Context, sess *domainauth.Session) ([]model.Tenant, error) {
	return s.api.ListTenants(ctx, sess.Token)
}

// Create creates a tenant. The server enforces the one-owned-tenant rule and
// answers 409 when it is violated; the console only forwards.
func (s *TenantService) Create(
	ctx context.Context,
	sess *domainauth.Session,
	req ports.TenantCreate,
) (model.Tenant, error) {
	if !req.AcceptedTerms {
		return model.Tenant{}, apperrors.Validation("You must accept the terms to create a workspace.")
	}
	return s.api.CreateTenant(ctx, sess.Token, req)
}

// Membership resolves the session user's membership in the active tenant,
// serving from cache when fresh. This is the single normalized membership
// lookup every role check goes through.
func (s *TenantService) Membership(ctx context.Context, sess *domainauth.Session) (model.Membership, error) {
	tenantID := sess.ActiveTenantID
	if tenantID == "" {
		return model.Membership{}, apperrors.Validation("No workspace selected.")
	}

	if m, ok, err := s.cache.Get(ctx, sess.User.ID, tenantID); err != nil {
		s.logger.WarnContext(ctx, "membership cache read failed", slog.Any("error", err))
	} else if ok {
		return m, nil
	}

	// Collapse concurrent refreshes for the same pair into one upstream call.
	key := tenantID + ":" + sess.User.ID
	v, err, _ := s.group.Do(key, func() (any, error) {
		m, fetchErr := s.api.Membership(ctx, sess.Token, tenantID)
		if fetchErr != nil {
			return model.Membership{}, fetchErr
		}
		if cacheErr := s.cache.Set(ctx, m, s.membershipTTL); cacheErr != nil {
			s.logger.WarnContext(ctx, "membership cache write failed", slog.Any("error", cacheErr))
		}
		return m, nil
	})
	if err != nil {
		return model.Membership{}, err
	}
	m, ok := v.(model.Membership)
	if !ok {
		return model.Membership{}, apperrors.Internal("unexpected membership result type")
	}
	return m, nil
}

// Members lists all members of the active tenant.
func (s *TenantService) Members(ctx context.Context, sess *domainauth.Session) ([]model.Member, error) {
	if sess.ActiveTenantID == "" {
		return nil, apperrors.Validation("No workspace selected.")
	}
	return s.api.ListMembers(ctx, sess.Token, sess.ActiveTenantID)
}

// UpdateMember patches a member's role or active flag and invalidates the
// tenant's cached memberships so every guard re-resolves on its next check.
func (s *TenantService) UpdateMember(
	ctx context.Context,
	sess *domainauth.Session,
	userID string,
	upd ports.MemberUpdate,
) (model.Member, error) {
	if sess.ActiveTenantID == "" {
		return model.Member{}, apperrors.Validation("No workspace selected.")
	}
	if upd.Role == nil && upd.IsActive == nil {
		return model.Member{}, apperrors.Validation("Nothing to update.")
	}

	member, err := s.api.UpdateMember(ctx, sess.Token, sess.ActiveTenantID, userID, upd)
	if err != nil {
		return model.Member{}, err
	}

	if invErr := s.cache.InvalidateTenant(ctx, sess.ActiveTenantID); invErr != nil {
		// Stale entries age out via TTL; log and move on.
		s.logger.WarnContext(ctx, "membership cache invalidation failed",
			slog.String("tenant_id", sess.ActiveTenantID), slog.Any("error", invErr))
	}
	return member, nil
}
