package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/postika/console/internal/domain/auth"
	"github.com/postika/console/internal/domain/model"
	apperrors "github.com/postika/console/internal/errors"
	"github.com/postika/console/internal/testutil"
)

func okHandler() (http.Handler, *bool) {
	called := false
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}), &called
}

func newGate(t *testing.T, auth AuthServiceInterface, tenants TenantServiceInterface) *Gate {
	t.Helper()
	return &Gate{Auth: auth, Tenants: tenants, T: testRenderer(t), Logger: testLogger()}
}

func TestGateRedirectsIncompleteProfile(t *testing.T) {
	auth := &fakeAuthService{
		CurrentUserFunc: func(_ context.Context, _ *domainauth.Session) (model.User, error) {
			return testutil.NewUser().Incomplete().Build(), nil
		},
	}
	gate := newGate(t, auth, &fakeTenantService{})
	next, called := okHandler()

	sess := testutil.NewSession().Build()
	w := httptest.NewRecorder()
	gate.Require(domainauth.GateDashboard)(next).ServeHTTP(w, requestWithSession(http.MethodGet, "/dashboard", &sess))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, RouteProfile, w.Header().Get("Location"))
	assert.False(t, *called)
}

func TestGateAdmitsProfilePageAfterCompletion(t *testing.T) {
	// The decision lands on dashboard, which is at or past the profile stage,
	// so the profile page stays reachable for edits.
	gate := newGate(t, &fakeAuthService{}, &fakeTenantService{})
	next, called := okHandler()

	sess := testutil.NewSession().WithActiveTenant("tenant-1").Build()
	w := httptest.NewRecorder()
	gate.Require(domainauth.GateProfile)(next).ServeHTTP(w, requestWithSession(http.MethodGet, "/profile", &sess))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, *called)
}

func TestGateAutoSelectsLoneTenant(t *testing.T) {
	auth := &fakeAuthService{}
	tenants := &fakeTenantService{
		ListFunc: func(_ context.Context, _ *domainauth.Session) ([]model.Tenant, error) {
			return []model.Tenant{testutil.NewTenant().WithID("only-tenant").Build()}, nil
		},
	}
	gate := newGate(t, auth, tenants)
	next, called := okHandler()

	sess := testutil.NewSession().Build()
	w := httptest.NewRecorder()
	gate.Require(domainauth.GateDashboard)(next).ServeHTTP(w, requestWithSession(http.MethodGet, "/dashboard", &sess))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, *called)
	assert.Equal(t, []string{"only-tenant"}, auth.SelectedTenants, "lone tenant should be persisted as active")
}

func TestGateRedirectsToPickerWithMultipleTenants(t *testing.T) {
	tenants := &fakeTenantService{
		ListFunc: func(_ context.Context, _ *domainauth.Session) ([]model.Tenant, error) {
			return []model.Tenant{
				testutil.NewTenant().WithID("t-1").Build(),
				testutil.NewTenant().WithID("t-2").Build(),
			}, nil
		},
	}
	gate := newGate(t, &fakeAuthService{}, tenants)
	next, called := okHandler()

	sess := testutil.NewSession().Build()
	w := httptest.NewRecorder()
	gate.Require(domainauth.GateDashboard)(next).ServeHTTP(w, requestWithSession(http.MethodGet, "/dashboard", &sess))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, RouteTenantSelect, w.Header().Get("Location"))
	assert.False(t, *called)
}

func TestGateRedirectsToCreateWithNoTenants(t *testing.T) {
	gate := newGate(t, &fakeAuthService{}, &fakeTenantService{})
	next, called := okHandler()

	sess := testutil.NewSession().Build()
	w := httptest.NewRecorder()
	gate.Require(domainauth.GateDashboard)(next).ServeHTTP(w, requestWithSession(http.MethodGet, "/dashboard", &sess))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, RouteTenantNew, w.Header().Get("Location"))
	assert.False(t, *called)
}

func TestGateActiveTenantSkipsTenantList(t *testing.T) {
	tenants := &fakeTenantService{
		ListFunc: func(context.Context, *domainauth.Session) ([]model.Tenant, error) {
			t.Error("tenant list must not be queried once a workspace is active")
			return nil, nil
		},
	}
	gate := newGate(t, &fakeAuthService{}, tenants)
	next, called := okHandler()

	sess := testutil.NewSession().WithActiveTenant("tenant-1").Build()
	w := httptest.NewRecorder()
	gate.Require(domainauth.GateDashboard)(next).ServeHTTP(w, requestWithSession(http.MethodGet, "/dashboard", &sess))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, *called)
}

func TestGateRejectedTokenClearsCookieAndRedirects(t *testing.T) {
	auth := &fakeAuthService{
		CurrentUserFunc: func(_ context.Context, _ *domainauth.Session) (model.User, error) {
			return model.User{}, apperrors.Unauthorized("Token expired.")
		},
	}
	gate := newGate(t, auth, &fakeTenantService{})
	next, called := okHandler()

	sess := testutil.NewSession().Build()
	w := httptest.NewRecorder()
	gate.Require(domainauth.GateDashboard)(next).ServeHTTP(w, requestWithSession(http.MethodGet, "/dashboard", &sess))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), RouteLogin)
	assert.False(t, *called)

	cleared := false
	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "session cookie should be cleared")
}

func TestGateTransientFailureRendersErrorPage(t *testing.T) {
	// A flaky upstream must produce an error page, never a redirect loop.
	tenants := &fakeTenantService{
		ListFunc: func(_ context.Context, _ *domainauth.Session) ([]model.Tenant, error) {
			return nil, apperrors.Unavailable("The service is unreachable. Please try again.", nil)
		},
	}
	gate := newGate(t, &fakeAuthService{}, tenants)
	next, called := okHandler()

	sess := testutil.NewSession().Build()
	w := httptest.NewRecorder()
	gate.Require(domainauth.GateDashboard)(next).ServeHTTP(w, requestWithSession(http.MethodGet, "/dashboard", &sess))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Empty(t, w.Header().Get("Location"))
	assert.Contains(t, w.Body.String(), "unreachable")
	assert.False(t, *called)
}

func TestGateWithoutSessionRedirectsToLogin(t *testing.T) {
	gate := newGate(t, &fakeAuthService{}, &fakeTenantService{})
	next, called := okHandler()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	gate.Require(domainauth.GateDashboard)(next).ServeHTTP(w, r)

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), RouteLogin)
	assert.False(t, *called)
}
