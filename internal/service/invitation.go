package service

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	domainauth "github.com/postika/console/internal/domain/auth"
	"github.com/postika/console/internal/domain/model"
	apperrors "github.com/postika/console/internal/errors"
	"github.com/postika/console/internal/ports"
)

// InvitableRoles are the roles an invitation may carry. OWNER memberships are
// only created by tenant creation; MANAGER is assigned after joining.
var InvitableRoles = []model.Role{model.RoleAdmin, model.RoleStaff}

// InvitationServiceOptions groups dependencies for InvitationService.
type InvitationServiceOptions struct {
	API    ports.API
	Logger *slog.Logger
}

// InvitationService covers the invitation lifecycle: list, create, accept,
// revoke, resend. Accept is the only operation available without a session.
type InvitationService struct {
	api    ports.API
	logger *slog.Logger
}

// NewInvitationService constructs a new InvitationService.
func NewInvitationService(opts InvitationServiceOptions) *InvitationService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &InvitationService{api: opts.API, logger: logger}
}

// List returns the active tenant's invitations, newest first.
func (s *InvitationService) List(ctx context.Context, sess *domainauth.Session) ([]model.Invitation, error) {
	if sess.ActiveTenantID == "" {
		return nil, apperrors.Validation("No workspace selected.")
	}
	invitations, err := s.api.ListInvitations(ctx, sess.Token, sess.ActiveTenantID)
	if err != nil {
		return nil, err
	}
	sort.Slice(invitations, func(i, j int) bool {
		return invitations[i].CreatedAt.After(invitations[j].CreatedAt)
	})
	return invitations, nil
}

// Create sends a new invitation. Role validation here is superficial; the
// server re-validates and additionally rejects duplicates and staff-limit
// overruns with 409/403.
func (s *InvitationService) Create(
	ctx context.Context,
	sess *domainauth.Session,
	email string,
	role model.Role,
) (model.Invitation, error) {
	if sess.ActiveTenantID == "" {
		return model.Invitation{}, apperrors.Validation("No workspace selected.")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return model.Invitation{}, apperrors.Validation("Email is required.")
	}
	if !role.In(InvitableRoles...) {
		return model.Invitation{}, apperrors.Validationf("Role must be one of %v.", InvitableRoles)
	}

	return s.api.CreateInvitation(ctx, sess.Token, sess.ActiveTenantID,
		ports.InvitationCreate{Email: email, Role: role})
}

// Accept redeems an emailed invitation token. Retrying an already-accepted
// token yields a deterministic upstream 409; the console does not deduplicate.
func (s *InvitationService) Accept(ctx context.Context, inviteToken string) (ports.AcceptResult, error) {
	inviteToken = strings.TrimSpace(inviteToken)
	if inviteToken == "" {
		return ports.AcceptResult{}, apperrors.Validation("Invitation token is required.")
	}
	return s.api.AcceptInvitation(ctx, inviteToken)
}

// Revoke revokes a pending invitation.
func (s *InvitationService) Revoke(ctx context.Context, sess *domainauth.Session, invitationID string) error {
	if sess.ActiveTenantID == "" {
		return apperrors.Validation("No workspace selected.")
	}
	if invitationID == "" {
		return apperrors.Validation("Invitation ID is required.")
	}
	return s.api.RevokeInvitation(ctx, sess.Token, sess.ActiveTenantID, invitationID)
}

// Resend re-sends the invitation email.
func (s *InvitationService) Resend(
	ctx context.Context,
	sess *domainauth.Session,
	invitationID string,
) (model.Invitation, error) {
	if sess.ActiveTenantID == "" {
		return model.Invitation{}, apperrors.Validation("No workspace selected.")
	}
	if invitationID == "" {
		return model.Invitation{}, apperrors.Validation("Invitation ID is required.")
	}
	return s.api.ResendInvitation(ctx, sess.Token, sess.ActiveTenantID, invitationID)
}
