package upstream

import (
	"context"
	"net/http"

	"github.com/postika/console/internal/domain/model"
	"github.com/postika/console/internal/ports"
)

// Endpoint paths, relative to the configured base URL.
const (
	pathRequestCode = "/api/v1/auth/request-code"
	pathVerifyCode  = "/api/v1/auth/verify-code"
	pathMe          = "/api/v1/auth/me"
	pathTenants     = "/api/v1/tenants"
	pathMembership  = "/api/v1/tenants/membership"
	pathMembers     = "/api/v1/tenants/members"
	pathInvitations = "/api/v1/tenants/invitations"
	pathInviteAccpt = "/api/v1/tenants/invitations/accept"
)

// RequestCode asks the API to email a one-time code. Unauthenticated.
func (c *Client) RequestCode(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.do(ctx, http.MethodPost, pathRequestCode, body, nil, requestOptions{})
}

// tokenResponse is the verify-code response envelope.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// VerifyCode exchanges an email plus one-time code for a bearer token.
// Unauthenticated.
func (c *Client) VerifyCode(ctx context.Context, email, code string) (string, error) {
	body := map[string]string{"email": email, "code": code}
	var out tokenResponse
	if err := c.do(ctx, http.MethodPost, pathVerifyCode, body, &out, requestOptions{}); err != nil {
		return "", err
	}
	return out.AccessToken, nil
}

// Me fetches the current user profile.
func (c *Client) Me(ctx context.Context, token string) (model.User, error) {
	var out model.User
	err := c.do(ctx, http.MethodGet, pathMe, nil, &out, requestOptions{Token: token})
	return out, err
}

// UpdateMe patches current-user profile fields and returns the updated profile.
func (c *Client) UpdateMe(ctx context.Context, token string, upd ports.ProfileUpdate) (model.User, error) {
	var out model.User
	err := c.do(ctx, http.MethodPatch, pathMe, upd, &out, requestOptions{Token: token})
	return out, err
}

// ListTenants returns the tenants the current user is an active member of.
func (c *Client) ListTenants(ctx context.Context, token string) ([]model.Tenant, error) {
	var out []model.Tenant
	err := c.do(ctx, http.MethodGet, pathTenants, nil, &out, requestOptions{Token: token})
	return out, err
}

// CreateTenant creates a tenant; the server makes the caller its OWNER.
func (c *Client) CreateTenant(ctx context.Context, token string, req ports.TenantCreate) (model.Tenant, error) {
	var out model.Tenant
	err := c.do(ctx, http.MethodPost, pathTenants, req, &out, requestOptions{Token: token})
	return out, err
}

// Membership returns the current user's membership in the given tenant.
func (c *Client) Membership(ctx context.Context, token, tenantID string) (model.Membership, error) {
	var out model.Membership
	err := c.do(ctx, http.MethodGet, pathMembership, nil, &out,
		requestOptions{Token: token, TenantID: tenantID})
	if err != nil {
		return out, err
	}
	out.Role = model.NormalizeRole(string(out.Role))
	return out, nil
}

// ListMembers returns all members of the given tenant.
func (c *Client) ListMembers(ctx context.Context, token, tenantID string) ([]model.Member, error) {
	var out []model.Member
	err := c.do(ctx, http.MethodGet, pathMembers, nil, &out,
		requestOptions{Token: token, TenantID: tenantID})
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Role = model.NormalizeRole(string(out[i].Role))
	}
	return out, nil
}

// UpdateMember patches a member's role or active flag.
func (c *Client) UpdateMember(
	ctx context.Context,
	token, tenantID, userID string,
	upd ports.MemberUpdate,
) (model.Member, error) {
	var out model.Member
	path := pathMembers + joinPath(userID)
	err := c.do(ctx, http.MethodPatch, path, upd, &out,
		requestOptions{Token: token, TenantID: tenantID})
	if err != nil {
		return out, err
	}
	out.Role = model.NormalizeRole(string(out.Role))
	return out, nil
}

// ListInvitations returns all invitations for the given tenant.
func (c *Client) ListInvitations(ctx context.Context, token, tenantID string) ([]model.Invitation, error) {
	var out []model.Invitation
	err := c.do(ctx, http.MethodGet, pathInvitations, nil, &out,
		requestOptions{Token: token, TenantID: tenantID})
	return out, err
}

// CreateInvitation creates an invitation for the given tenant.
func (c *Client) CreateInvitation(
	ctx context.Context,
	token, tenantID string,
	req ports.InvitationCreate,
) (model.Invitation, error) {
	var out model.Invitation
	err := c.do(ctx, http.MethodPost, pathInvitations, req, &out,
		requestOptions{Token: token, TenantID: tenantID})
	return out, err
}

// acceptRequest is the accept-invitation body. The server requires explicit
// terms acceptance; the accept page states the terms next to its single
// action, so the console always sends true.
type acceptRequest struct {
	Token     string `json:"token"`
	AcceptTOS bool   `json:"accept_tos"`
}

// AcceptInvitation redeems an emailed invitation token. Unauthenticated by
// design: a brand-new user accepts first and logs in afterwards.
func (c *Client) AcceptInvitation(ctx context.Context, inviteToken string) (ports.AcceptResult, error) {
	body := acceptRequest{Token: inviteToken, AcceptTOS: true}
	var out ports.AcceptResult
	err := c.do(ctx, http.MethodPost, pathInviteAccpt, body, &out, requestOptions{})
	return out, err
}

// RevokeInvitation revokes a pending invitation.
func (c *Client) RevokeInvitation(ctx context.Context, token, tenantID, invitationID string) error {
	path := pathInvitations + joinPath(invitationID, "revoke")
	return c.do(ctx, http.MethodPost, path, nil, nil,
		requestOptions{Token: token, TenantID: tenantID})
}

// ResendInvitation re-sends the invitation email and returns the refreshed
// invitation (the server extends expires_at).
func (c *Client) ResendInvitation(ctx context.Context, token, tenantID, invitationID string) (model.Invitation, error) {
	path := pathInvitations + joinPath(invitationID, "resend")
	var out model.Invitation
	err := c.do(ctx, http.MethodPost, path, nil, &out,
		requestOptions{Token: token, TenantID: tenantID})
	return out, err
}
