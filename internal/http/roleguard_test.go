package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/postika/console/internal/domain/auth"
	"github.com/postika/console/internal/domain/model"
	apperrors "github.com/postika/console/internal/errors"
	"github.com/postika/console/internal/testutil"
)

func TestRoleGuardAllowsPermittedRole(t *testing.T) {
	tenants := &fakeTenantService{
		MembershipFunc: func(_ context.Context, _ *domainauth.Session) (model.Membership, error) {
			return testutil.NewMembership().WithRole(model.RoleOwner).Build(), nil
		},
	}
	guard := &RoleGuard{Auth: &fakeAuthService{}, Tenants: tenants, Logger: testLogger()}

	var gotMembership model.Membership
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMembership, gotOK = GetMembershipFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	sess := testutil.NewSession().WithActiveTenant("tenant-1").Build()
	w := httptest.NewRecorder()
	guard.Require(model.RoleOwner, model.RoleAdmin)(next).
		ServeHTTP(w, requestWithSession(http.MethodGet, "/members", &sess))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, gotOK, "membership should be on the context for downstream handlers")
	assert.Equal(t, model.RoleOwner, gotMembership.Role)
}

func TestRoleGuardDeniesDisallowedRole(t *testing.T) {
	tenants := &fakeTenantService{
		MembershipFunc: func(_ context.Context, _ *domainauth.Session) (model.Membership, error) {
			return testutil.NewMembership().WithRole(model.RoleStaff).Build(), nil
		},
	}
	guard := &RoleGuard{Auth: &fakeAuthService{}, Tenants: tenants, Logger: testLogger()}
	next, called := okHandler()

	sess := testutil.NewSession().WithActiveTenant("tenant-1").Build()
	w := httptest.NewRecorder()
	guard.Require(model.RoleOwner, model.RoleAdmin)(next).
		ServeHTTP(w, requestWithSession(http.MethodGet, "/members", &sess))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, RouteDashboard, w.Header().Get("Location"))
	assert.False(t, *called)
}

func TestRoleGuardDeniesInactiveMembership(t *testing.T) {
	tenants := &fakeTenantService{
		MembershipFunc: func(_ context.Context, _ *domainauth.Session) (model.Membership, error) {
			return testutil.NewMembership().WithRole(model.RoleOwner).Inactive().Build(), nil
		},
	}
	guard := &RoleGuard{Auth: &fakeAuthService{}, Tenants: tenants, Logger: testLogger()}
	next, called := okHandler()

	sess := testutil.NewSession().WithActiveTenant("tenant-1").Build()
	w := httptest.NewRecorder()
	guard.Require(model.RoleOwner)(next).
		ServeHTTP(w, requestWithSession(http.MethodGet, "/members", &sess))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, RouteDashboard, w.Header().Get("Location"))
	assert.False(t, *called)
}

func TestRoleGuardRejectedTokenLogsOutAndRedirects(t *testing.T) {
	auth := &fakeAuthService{}
	tenants := &fakeTenantService{
		MembershipFunc: func(_ context.Context, _ *domainauth.Session) (model.Membership, error) {
			return model.Membership{}, apperrors.Unauthorized("Token expired.")
		},
	}
	guard := &RoleGuard{Auth: auth, Tenants: tenants, Logger: testLogger()}
	next, called := okHandler()

	sess := testutil.NewSession().WithID("sess-rejected").WithActiveTenant("tenant-1").Build()
	w := httptest.NewRecorder()
	guard.Require(model.RoleOwner)(next).
		ServeHTTP(w, requestWithSession(http.MethodGet, "/members", &sess))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), RouteLogin)
	assert.Equal(t, []string{"sess-rejected"}, auth.LoggedOut, "session should be destroyed")
	assert.False(t, *called)
}

func TestRoleGuardTransientFailureFailsClosed(t *testing.T) {
	tenants := &fakeTenantService{
		MembershipFunc: func(_ context.Context, _ *domainauth.Session) (model.Membership, error) {
			return model.Membership{}, apperrors.Unavailable("timeout", nil)
		},
	}
	guard := &RoleGuard{Auth: &fakeAuthService{}, Tenants: tenants, Logger: testLogger()}
	next, called := okHandler()

	sess := testutil.NewSession().WithActiveTenant("tenant-1").Build()
	w := httptest.NewRecorder()
	guard.Require(model.RoleOwner)(next).
		ServeHTTP(w, requestWithSession(http.MethodGet, "/members", &sess))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, RouteDashboard, w.Header().Get("Location"))
	assert.False(t, *called)
}

func TestRoleGuardWithoutActiveTenantRedirectsToPicker(t *testing.T) {
	guard := &RoleGuard{Auth: &fakeAuthService{}, Tenants: &fakeTenantService{}, Logger: testLogger()}
	next, called := okHandler()

	sess := testutil.NewSession().Build()
	w := httptest.NewRecorder()
	guard.Require(model.RoleOwner)(next).
		ServeHTTP(w, requestWithSession(http.MethodGet, "/members", &sess))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, RouteTenantSelect, w.Header().Get("Location"))
	assert.False(t, *called)
}
