package httpx

// Shared fakes and fixtures for the httpx tests. The service fakes are
// hand-written function-field doubles; the renderer parses the real embedded
// templates so rendering regressions surface here.

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	console "github.com/postika/console"
	domainauth "github.com/postika/console/internal/domain/auth"
	"github.com/postika/console/internal/domain/model"
	"github.com/postika/console/internal/ports"
	"github.com/postika/console/internal/testutil"
)

var (
	_ AuthServiceInterface       = (*fakeAuthService)(nil)
	_ TenantServiceInterface     = (*fakeTenantService)(nil)
	_ InvitationServiceInterface = (*fakeInvitationService)(nil)
)

type fakeAuthService struct {
	RequestCodeFunc   func(ctx context.Context, email string) error
	VerifyCodeFunc    func(ctx context.Context, email, code string) (*domainauth.Session, error)
	GetSessionFunc    func(ctx context.Context, sessionID string) (*domainauth.Session, error)
	CurrentUserFunc   func(ctx context.Context, sess *domainauth.Session) (model.User, error)
	UpdateProfileFunc func(ctx context.Context, sess *domainauth.Session, upd ports.ProfileUpdate) (model.User, error)
	SelectTenantFunc  func(ctx context.Context, sess *domainauth.Session, tenantID string) error
	LogoutFunc        func(ctx context.Context, sessionID string) error

	SelectedTenants []string
	LoggedOut       []string
}

func (f *fakeAuthService) RequestCode(ctx context.Context, email string) error {
	if f.RequestCodeFunc != nil {
		return f.RequestCodeFunc(ctx, email)
	}
	return nil
}

func (f *fakeAuthService) VerifyCode(ctx context.Context, email, code string) (*domainauth.Session, error) {
	if f.VerifyCodeFunc != nil {
		return f.VerifyCodeFunc(ctx, email, code)
	}
	sess := testutil.NewSession().Build()
	return &sess, nil
}

func (f *fakeAuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if f.GetSessionFunc != nil {
		return f.GetSessionFunc(ctx, sessionID)
	}
	return nil, errSessionNotFound
}

func (f *fakeAuthService) CurrentUser(ctx context.Context, sess *domainauth.Session) (model.User, error) {
	if f.CurrentUserFunc != nil {
		return f.CurrentUserFunc(ctx, sess)
	}
	return sess.User, nil
}

func (f *fakeAuthService) UpdateProfile(
	ctx context.Context,
	sess *domainauth.Session,
	upd ports.ProfileUpdate,
) (model.User, error) {
	if f.UpdateProfileFunc != nil {
		return f.UpdateProfileFunc(ctx, sess, upd)
	}
	return sess.User, nil
}

func (f *fakeAuthService) SelectTenant(ctx context.Context, sess *domainauth.Session, tenantID string) error {
	f.SelectedTenants = append(f.SelectedTenants, tenantID)
	if f.SelectTenantFunc != nil {
		return f.SelectTenantFunc(ctx, sess, tenantID)
	}
	sess.ActiveTenantID = tenantID
	return nil
}

func (f *fakeAuthService) Logout(ctx context.Context, sessionID string) error {
	f.LoggedOut = append(f.LoggedOut, sessionID)
	if f.LogoutFunc != nil {
		return f.LogoutFunc(ctx, sessionID)
	}
	return nil
}

type fakeTenantService struct {
	ListFunc         func(ctx context.Context, sess *domainauth.Session) ([]model.Tenant, error)
	CreateFunc       func(ctx context.Context, sess *domainauth.Session, req ports.TenantCreate) (model.Tenant, error)
	MembershipFunc   func(ctx context.Context, sess *domainauth.Session) (model.Membership, error)
	MembersFunc      func(ctx context.Context, sess *domainauth.Session) ([]model.Member, error)
	UpdateMemberFunc func(ctx context.Context, sess *domainauth.Session, userID string, upd ports.MemberUpdate) (model.Member, error)

	MembershipCalls int
}

func (f *fakeTenantService) List(ctx context.Context, sess *domainauth.Session) ([]model.Tenant, error) {
	if f.ListFunc != nil {
		return f.ListFunc(ctx, sess)
	}
	return nil, nil
}

func (f *fakeTenantService) Create(
	ctx context.Context,
	sess *domainauth.Session,
	req ports.TenantCreate,
) (model.Tenant, error) {
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, sess, req)
	}
	return testutil.NewTenant().Build(), nil
}

func (f *fakeTenantService) Membership(ctx context.Context, sess *domainauth.Session) (model.Membership, error) {
	f.MembershipCalls++
	if f.MembershipFunc != nil {
		return f.MembershipFunc(ctx, sess)
	}
	return testutil.NewMembership().Build(), nil
}

func (f *fakeTenantService) Members(ctx context.Context, sess *domainauth.Session) ([]model.Member, error) {
	if f.MembersFunc != nil {
		return f.MembersFunc(ctx, sess)
	}
	return nil, nil
}

func (f *fakeTenantService) UpdateMember(
	ctx context.Context,
	sess *domainauth.Session,
	userID string,
	upd ports.MemberUpdate,
) (model.Member, error) {
	if f.UpdateMemberFunc != nil {
		return f.UpdateMemberFunc(ctx, sess, userID, upd)
	}
	return model.Member{}, nil
}

type fakeInvitationService struct {
	ListFunc   func(ctx context.Context, sess *domainauth.Session) ([]model.Invitation, error)
	CreateFunc func(ctx context.Context, sess *domainauth.Session, email string, role model.Role) (model.Invitation, error)
	AcceptFunc func(ctx context.Context, inviteToken string) (ports.AcceptResult, error)
	RevokeFunc func(ctx context.Context, sess *domainauth.Session, invitationID string) error
	ResendFunc func(ctx context.Context, sess *domainauth.Session, invitationID string) (model.Invitation, error)

	AcceptCalls int
}

func (f *fakeInvitationService) List(ctx context.Context, sess *domainauth.Session) ([]model.Invitation, error) {
	if f.ListFunc != nil {
		return f.ListFunc(ctx, sess)
	}
	return nil, nil
}

func (f *fakeInvitationService) Create(
	ctx context.Context,
	sess *domainauth.Session,
	email string,
	role model.Role,
) (model.Invitation, error) {
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, sess, email, role)
	}
	return testutil.NewInvitation().Build(), nil
}

func (f *fakeInvitationService) Accept(ctx context.Context, inviteToken string) (ports.AcceptResult, error) {
	f.AcceptCalls++
	if f.AcceptFunc != nil {
		return f.AcceptFunc(ctx, inviteToken)
	}
	return ports.AcceptResult{Status: "accepted"}, nil
}

func (f *fakeInvitationService) Revoke(ctx context.Context, sess *domainauth.Session, invitationID string) error {
	if f.RevokeFunc != nil {
		return f.RevokeFunc(ctx, sess, invitationID)
	}
	return nil
}

func (f *fakeInvitationService) Resend(
	ctx context.Context,
	sess *domainauth.Session,
	invitationID string,
) (model.Invitation, error) {
	if f.ResendFunc != nil {
		return f.ResendFunc(ctx, sess, invitationID)
	}
	return testutil.NewInvitation().Build(), nil
}

type notFoundSessionError struct{}

func (notFoundSessionError) Error() string { return "session not found" }

var errSessionNotFound = notFoundSessionError{}

// testRenderer parses the real embedded templates.
func testRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	sub, err := fs.Sub(console.TemplateFS, "web/templates")
	require.NoError(t, err)
	renderer, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: sub,
		Logger:     testLogger(),
	})
	require.NoError(t, err)
	return renderer
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// requestWithSession builds a request carrying the session in its context.
func requestWithSession(method, target string, sess *domainauth.Session) *http.Request {
	r := httptest.NewRequest(method, target, nil)
	return r.WithContext(SetSessionInContext(r.Context(), sess))
}
