package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/postika/console/internal/domain/auth"
	apperrors "github.com/postika/console/internal/errors"
)

// pathForGate maps a gate decision to the route that serves it.
func pathForGate(target domainauth.GateTarget) string {
	switch target {
	case domainauth.GateLogin:
		return RouteLogin
	case domainauth.GateProfile:
		return RouteProfile
	case domainauth.GateTenantCreate:
		return RouteTenantNew
	case domainauth.GateTenantSelect:
		return RouteTenantSelect
	case domainauth.GateDashboard:
		return RouteDashboard
	default:
		return RouteLogin
	}
}

// stageFor orders gate targets by onboarding progress. A page is reachable
// when the decision's stage is at or past the page's stage; otherwise the
// user is redirected to the step they still owe.
func stageFor(target domainauth.GateTarget) int {
	switch target {
	case domainauth.GateLogin:
		return 0
	case domainauth.GateProfile:
		return 1
	case domainauth.GateTenantCreate, domainauth.GateTenantSelect:
		return 2
	case domainauth.GateDashboard:
		return 3
	default:
		return 0
	}
}

// Gate evaluates the onboarding funnel for authenticated pages: profile must
// be complete before a workspace is chosen, a workspace must be active before
// workspace pages render.
type Gate struct {
	Auth         AuthServiceInterface
	Tenants      TenantServiceInterface
	T            *TemplateRenderer
	CookieDomain string
	Logger       *slog.Logger
}

func (g *Gate) logger() *slog.Logger {
	if g != nil && g.Logger != nil {
		return g.Logger
	}
	return slog.Default()
}

// Require returns a middleware that admits the request only when the gate
// decision has reached the given target's stage. RequireSession must run
// before it so the session is on the context.
func (g *Gate) Require(page domainauth.GateTarget) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := GetUserSessionFromContext(r.Context())
			if !ok {
				redirectToLogin(w, r)
				return
			}

			decision, err := g.decide(w, r, sess)
			if err != nil {
				if apperrors.IsUnauthorized(err) || apperrors.IsForbidden(err) {
					clearCookie(w, r, SessionCookieName, g.CookieDomain)
					redirectToLogin(w, r)
					return
				}
				// A flaky upstream gets an error page, never a redirect loop.
				g.renderGateError(w, r, err)
				return
			}

			if stageFor(decision) < stageFor(page) {
				http.Redirect(w, r, pathForGate(decision), http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// decide refreshes the profile snapshot, resolves the tenant picture, and
// returns the gate decision. Selecting the lone tenant is persisted here so
// single-workspace users skip the picker entirely.
func (g *Gate) decide(
	w http.ResponseWriter,
	r *http.Request,
	sess *domainauth.Session,
) (domainauth.GateTarget, error) {
	ctx := r.Context()

	user, err := g.Auth.CurrentUser(ctx, sess)
	if err != nil {
		return domainauth.GateLogin, err
	}

	input := domainauth.GateInput{
		Authenticated:   true,
		ProfileComplete: user.IsProfileComplete(),
		ActiveTenant:    sess.HasActiveTenant(),
	}

	// The tenant list only matters before a workspace is active.
	if input.ProfileComplete && !input.ActiveTenant {
		tenants, listErr := g.Tenants.List(ctx, sess)
		if listErr != nil {
			return domainauth.GateLogin, listErr
		}
		input.TenantCount = len(tenants)

		if len(tenants) == 1 {
			if selErr := g.Auth.SelectTenant(ctx, sess, tenants[0].ID); selErr != nil {
				return domainauth.GateLogin, selErr
			}
			input.ActiveTenant = true
		}
	}

	return domainauth.DecideGate(input), nil
}

func (g *Gate) renderGateError(w http.ResponseWriter, r *http.Request, err error) {
	g.logger().ErrorContext(r.Context(), "gate evaluation failed", slog.Any("error", err))

	data := NewTemplateData(r, PageMeta{Title: "Service Unavailable"}).
		WithError(apperrors.UserMessage(err)).
		Build()
	if g.T != nil {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusServiceUnavailable)
		if renderErr := g.T.RenderError(w, r, data); renderErr == nil {
			return
		}
	}
	http.Error(w, apperrors.UserMessage(err), http.StatusServiceUnavailable)
}
