package httpx

import (
	"log/slog"
	"net/http"

	"github.com/postika/console/internal/domain/model"
	apperrors "github.com/postika/console/internal/errors"
)

// RoleGuard restricts workspace pages to members holding one of the allowed
// roles. It fails closed: any failure to resolve a membership denies access.
type RoleGuard struct {
	Auth         AuthServiceInterface
	Tenants      TenantServiceInterface
	CookieDomain string
	Logger       *slog.Logger
}

func (g *RoleGuard) logger() *slog.Logger {
	if g != nil && g.Logger != nil {
		return g.Logger
	}
	return slog.Default()
}

// Require returns a middleware admitting only members whose active-tenant role
// is in allowed. The resolved membership is placed on the request context for
// handlers that need it. Must run after RequireSession and the gate.
func (g *RoleGuard) Require(allowed ...model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := GetUserSessionFromContext(r.Context())
			if !ok {
				redirectToLogin(w, r)
				return
			}
			if !sess.HasActiveTenant() {
				http.Redirect(w, r, RouteTenantSelect, http.StatusSeeOther)
				return
			}

			membership, err := g.Tenants.Membership(r.Context(), sess)
			if err != nil {
				if apperrors.IsUnauthorized(err) {
					if logoutErr := g.Auth.Logout(r.Context(), sess.ID); logoutErr != nil {
						g.logger().WarnContext(r.Context(), "logout on rejected token failed",
							slog.Any("error", logoutErr))
					}
					clearCookie(w, r, SessionCookieName, g.CookieDomain)
					redirectToLogin(w, r)
					return
				}
				g.logger().WarnContext(r.Context(), "membership resolution failed, denying access",
					slog.String("tenant_id", sess.ActiveTenantID), slog.Any("error", err))
				http.Redirect(w, r, RouteDashboard, http.StatusSeeOther)
				return
			}

			if !membership.IsActive || !membership.Role.In(allowed...) {
				http.Redirect(w, r, RouteDashboard, http.StatusSeeOther)
				return
			}

			ctx := SetMembershipInContext(r.Context(), membership)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
