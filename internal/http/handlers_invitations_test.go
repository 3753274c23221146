package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/postika/console/internal/domain/auth"
	"github.com/postika/console/internal/domain/model"
	apperrors "github.com/postika/console/internal/errors"
	"github.com/postika/console/internal/ports"
	"github.com/postika/console/internal/testutil"
)

func newInvitationHandlers(t *testing.T, svc InvitationServiceInterface) *InvitationHandlers {
	t.Helper()
	return &InvitationHandlers{Svc: svc, T: testRenderer(t), Logger: testLogger()}
}

func TestAcceptPageMissingTokenRendersInlineError(t *testing.T) {
	svc := &fakeInvitationService{}
	h := newInvitationHandlers(t, svc)

	w := httptest.NewRecorder()
	h.AcceptPage(w, httptest.NewRequest(http.MethodGet, RouteInviteAccept, nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "missing its token")
	assert.Equal(t, 0, svc.AcceptCalls, "a missing token must not reach the upstream")
}

func TestAcceptPageWithTokenRendersConfirmForm(t *testing.T) {
	h := newInvitationHandlers(t, &fakeInvitationService{})

	w := httptest.NewRecorder()
	h.AcceptPage(w, httptest.NewRequest(http.MethodGet, RouteInviteAccept+"?token=tok-abc", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="tok-abc"`)
}

func TestAcceptRedirectsOnSuccess(t *testing.T) {
	svc := &fakeInvitationService{
		AcceptFunc: func(_ context.Context, token string) (ports.AcceptResult, error) {
			assert.Equal(t, "tok-abc", token)
			return ports.AcceptResult{Status: "accepted", TenantID: "tenant-1", Role: "STAFF"}, nil
		},
	}
	h := newInvitationHandlers(t, svc)

	w := httptest.NewRecorder()
	h.Accept(w, postForm(RouteInviteAccept, url.Values{"token": {"tok-abc"}}))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestAcceptErrorMessages(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{
			name:    "unauthorized asks to sign in",
			err:     apperrors.Unauthorized("token required"),
			wantMsg: "Please sign in first",
		},
		{
			name:    "forbidden explains expiry or mismatch",
			err:     apperrors.Forbidden("wrong account"),
			wantMsg: "expired, was already used, or belongs to a different account",
		},
		{
			name:    "not found suggests a fresh invitation",
			err:     apperrors.NotFound("gone"),
			wantMsg: "no longer exists",
		},
		{
			name:    "conflict reports already accepted",
			err:     apperrors.Conflict("duplicate"),
			wantMsg: "already accepted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeInvitationService{
				AcceptFunc: func(context.Context, string) (ports.AcceptResult, error) {
					return ports.AcceptResult{}, tt.err
				},
			}
			h := newInvitationHandlers(t, svc)

			w := httptest.NewRecorder()
			h.Accept(w, postForm(RouteInviteAccept, url.Values{"token": {"tok-abc"}}))

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantMsg)
			// The form is preserved so the user can retry after signing in.
			assert.Contains(t, w.Body.String(), `value="tok-abc"`)
		})
	}
}

func TestInvitationListRendersStatuses(t *testing.T) {
	svc := &fakeInvitationService{
		ListFunc: func(context.Context, *domainauth.Session) ([]model.Invitation, error) {
			return []model.Invitation{
				testutil.NewInvitation().WithEmail("pending@example.com").Build(),
				testutil.NewInvitation().WithEmail("expired@example.com").Expired().Build(),
			}, nil
		},
	}
	h := newInvitationHandlers(t, svc)

	sess := testutil.NewSession().WithActiveTenant("tenant-1").Build()
	w := httptest.NewRecorder()
	h.List(w, requestWithSession(http.MethodGet, RouteInvitations, &sess))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "pending@example.com")
	assert.Contains(t, body, "expired@example.com")
	assert.Contains(t, body, "pending")
	assert.Contains(t, body, "expired")
	// Only the pending invitation offers revoke/resend actions.
	assert.Contains(t, body, "/revoke")
}

func TestInvitationCreateInvalidRoleRerendersList(t *testing.T) {
	svc := &fakeInvitationService{}
	h := newInvitationHandlers(t, svc)

	sess := testutil.NewSession().WithActiveTenant("tenant-1").Build()
	r := postForm(RouteInvitations, url.Values{"email": {"new@example.com"}, "role": {"OWNER"}})
	r = r.WithContext(SetSessionInContext(r.Context(), &sess))
	w := httptest.NewRecorder()
	h.Create(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "field-error")
}
