package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/postika/console/internal/domain/auth"
	"github.com/postika/console/internal/testutil"
)

func TestSafeRedirectPath(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		want      string
	}{
		{"empty falls back to root", "", "/"},
		{"relative path passes", "/dashboard", "/dashboard"},
		{"path with query passes", "/members?page=2", "/members?page=2"},
		{"absolute URL rejected", "https://evil.example.com/", "/"},
		{"protocol-relative rejected", "//evil.example.com/", "/"},
		{"non-rooted path rejected", "dashboard", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, safeRedirectPath(tt.candidate))
		})
	}
}

func TestRequireSession(t *testing.T) {
	sess := testutil.NewSession().WithID("sess-mw").Build()
	auth := &fakeAuthService{
		GetSessionFunc: func(_ context.Context, id string) (*domainauth.Session, error) {
			if id == "sess-mw" {
				return &sess, nil
			}
			return nil, errSessionNotFound
		},
	}

	var gotSession *domainauth.Session
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSession = GetSessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireSession(auth)(next)

	t.Run("valid cookie admits and stores session", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "sess-mw"})
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, gotSession)
		assert.Equal(t, "sess-mw", gotSession.ID)
	})

	t.Run("missing cookie redirects to login with redirect_uri", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/members?page=2", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusSeeOther, w.Code)
		loc := w.Header().Get("Location")
		assert.Contains(t, loc, RouteLogin)
		assert.Contains(t, loc, "redirect_uri=%2Fmembers%3Fpage%3D2")
	})

	t.Run("unknown session redirects to login", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "stale"})
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Contains(t, w.Header().Get("Location"), RouteLogin)
	})
}

// recordingSink captures emitted metrics for assertions.
type recordingSink struct {
	mu      sync.Mutex
	counts  []string
	timings []string
	tags    []map[string]string
}

func (s *recordingSink) Count(metric string, _ int64, tags map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts = append(s.counts, metric)
	s.tags = append(s.tags, tags)
}

func (s *recordingSink) Timing(metric string, _ time.Duration, tags map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timings = append(s.timings, metric)
}

func TestMetricsMiddleware(t *testing.T) {
	sink := &recordingSink{}
	handler := Metrics(sink)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/login", nil))

	require.Len(t, sink.counts, 1)
	assert.Equal(t, "http.request", sink.counts[0])
	require.Len(t, sink.timings, 1)
	assert.Equal(t, "http.request.duration", sink.timings[0])
	assert.Equal(t, "POST", sink.tags[0]["method"])
	assert.Equal(t, "418", sink.tags[0]["status"])
}

func TestMetricsMiddlewareNilSinkPassesThrough(t *testing.T) {
	next, called := okHandler()
	handler := Metrics(nil)(next)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.True(t, *called)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRecoverMiddleware(t *testing.T) {
	handler := Recover(testLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
