package httpx

import (
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	console "github.com/postika/console"
	domainauth "github.com/postika/console/internal/domain/auth"
	"github.com/postika/console/internal/domain/model"
	"github.com/postika/console/internal/observability/statsd"
	"github.com/postika/console/internal/service"
)

// Compile-time interface assertions to ensure concrete services satisfy their UI interfaces.
var (
	_ AuthServiceInterface       = (*service.AuthService)(nil)
	_ TenantServiceInterface     = (*service.TenantService)(nil)
	_ InvitationServiceInterface = (*service.InvitationService)(nil)
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth        AuthServiceInterface
	Tenants     TenantServiceInterface
	Invitations InvitationServiceInterface

	CookieDomain    string
	PendingEmailTTL time.Duration

	RateLimit RateLimitOptions
	Metrics   statsd.Sink

	// ReadyCheck backs /readyz; nil means always ready.
	ReadyCheck ReadyCheck

	IsDev  bool         // Development mode flag for template hot reloading
	Logger *slog.Logger // Logger for template and HTTP errors (optional)
}

// NewRouter creates and configures the console's HTTP router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	renderer := setupRenderer(services)

	authHandlers := &AuthHandlers{
		Svc:             services.Auth,
		T:               renderer,
		CookieDomain:    services.CookieDomain,
		PendingEmailTTL: services.PendingEmailTTL,
		Logger:          services.Logger,
	}
	profileHandlers := &ProfileHandlers{Svc: services.Auth, T: renderer, Logger: services.Logger}
	tenantHandlers := &TenantHandlers{
		Tenants: services.Tenants,
		Auth:    services.Auth,
		T:       renderer,
		Logger:  services.Logger,
	}
	memberHandlers := &MemberHandlers{Tenants: services.Tenants, T: renderer, Logger: services.Logger}
	invitationHandlers := &InvitationHandlers{Svc: services.Invitations, T: renderer, Logger: services.Logger}

	gate := &Gate{
		Auth:         services.Auth,
		Tenants:      services.Tenants,
		T:            renderer,
		CookieDomain: services.CookieDomain,
		Logger:       services.Logger,
	}
	adminGuard := &RoleGuard{
		Auth:         services.Auth,
		Tenants:      services.Tenants,
		CookieDomain: services.CookieDomain,
		Logger:       services.Logger,
	}

	limit := RateLimit(RateLimitOptions{
		Enabled:  services.RateLimit.Enabled,
		Requests: services.RateLimit.Requests,
		Window:   services.RateLimit.Window,
		Logger:   services.Logger,
	})
	withSession := RequireSession(services.Auth)

	// Public routes.
	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("GET /readyz", readyzHandler(services.ReadyCheck))
	mux.Handle("GET "+RouteLogin, http.HandlerFunc(authHandlers.LoginPage))
	mux.Handle("POST "+RouteLogin, limit(http.HandlerFunc(authHandlers.RequestCode)))
	mux.Handle("GET "+RouteVerify, http.HandlerFunc(authHandlers.VerifyPage))
	mux.Handle("POST "+RouteVerify, limit(http.HandlerFunc(authHandlers.VerifyCode)))
	mux.Handle("POST /auth/logout", http.HandlerFunc(authHandlers.Logout))
	mux.Handle("GET /auth/status", http.HandlerFunc(authHandlers.Status))
	mux.Handle("GET "+RouteInviteAccept, http.HandlerFunc(invitationHandlers.AcceptPage))
	mux.Handle("POST "+RouteInviteAccept, http.HandlerFunc(invitationHandlers.Accept))

	// Onboarding funnel.
	mux.Handle("GET /{$}", withSession(gate.Require(domainauth.GateDashboard)(
		http.RedirectHandler(RouteDashboard, http.StatusSeeOther))))
	mux.Handle("GET "+RouteProfile, withSession(gate.Require(domainauth.GateProfile)(
		http.HandlerFunc(profileHandlers.Show))))
	mux.Handle("POST "+RouteProfile, withSession(gate.Require(domainauth.GateProfile)(
		http.HandlerFunc(profileHandlers.Update))))
	mux.Handle("GET "+RouteTenantSelect, withSession(gate.Require(domainauth.GateTenantSelect)(
		http.HandlerFunc(tenantHandlers.SelectPage))))
	mux.Handle("POST "+RouteTenantSelect, withSession(gate.Require(domainauth.GateTenantSelect)(
		http.HandlerFunc(tenantHandlers.Select))))
	mux.Handle("GET "+RouteTenantNew, withSession(gate.Require(domainauth.GateTenantCreate)(
		http.HandlerFunc(tenantHandlers.NewPage))))
	mux.Handle("POST "+RouteTenantNew, withSession(gate.Require(domainauth.GateTenantCreate)(
		http.HandlerFunc(tenantHandlers.Create))))

	// Workspace pages.
	mux.Handle("GET "+RouteDashboard, withSession(gate.Require(domainauth.GateDashboard)(
		http.HandlerFunc(tenantHandlers.Dashboard))))

	adminOnly := adminGuard.Require(model.RoleOwner, model.RoleAdmin)
	mux.Handle("GET "+RouteMembers, withSession(gate.Require(domainauth.GateDashboard)(
		adminOnly(http.HandlerFunc(memberHandlers.List)))))
	mux.Handle("POST /members/{userID}", withSession(gate.Require(domainauth.GateDashboard)(
		adminOnly(http.HandlerFunc(memberHandlers.Update)))))
	mux.Handle("GET "+RouteInvitations, withSession(gate.Require(domainauth.GateDashboard)(
		adminOnly(http.HandlerFunc(invitationHandlers.List)))))
	mux.Handle("POST "+RouteInvitations, withSession(gate.Require(domainauth.GateDashboard)(
		adminOnly(http.HandlerFunc(invitationHandlers.Create)))))
	mux.Handle("POST /invitations/{id}/revoke", withSession(gate.Require(domainauth.GateDashboard)(
		adminOnly(http.HandlerFunc(invitationHandlers.Revoke)))))
	mux.Handle("POST /invitations/{id}/resend", withSession(gate.Require(domainauth.GateDashboard)(
		adminOnly(http.HandlerFunc(invitationHandlers.Resend)))))

	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var handler http.Handler = mux
	handler = Metrics(services.Metrics)(handler)
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)
	return handler
}

// setupRenderer creates the template renderer.
// In dev mode (services.IsDev=true), templates are loaded from disk for hot reloading.
// In production mode, templates are loaded from the embedded FS.
func setupRenderer(services RouterServices) *TemplateRenderer {
	var templateFS fs.FS
	if services.IsDev {
		templateFS = os.DirFS("web/templates")
	} else {
		sub, err := fs.Sub(console.TemplateFS, "web/templates")
		if err != nil {
			log.Printf("failed to create sub-filesystem for templates: %v; falling back to disk", err)
			sub = os.DirFS("web/templates")
		}
		templateFS = sub
	}

	renderer, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: templateFS,
		Logger:     services.Logger,
	})
	if err != nil {
		if services.Logger != nil {
			services.Logger.Error("failed to create template renderer", slog.Any("error", err))
		} else {
			log.Printf("ERROR: failed to create template renderer: %v", err)
		}
		return nil
	}
	return renderer
}
