package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainauth "github.com/postika/console/internal/domain/auth"
	"github.com/postika/console/internal/domain/model"
	apperrors "github.com/postika/console/internal/errors"
	"github.com/postika/console/internal/http/validation"
	"github.com/postika/console/internal/ports"
)

// AuthServiceInterface defines the interface for auth service operations.
type AuthServiceInterface interface {
	RequestCode(ctx context.Context, email string) error
	VerifyCode(ctx context.Context, email, code string) (*domainauth.Session, error)
	GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error)
	CurrentUser(ctx context.Context, sess *domainauth.Session) (model.User, error)
	UpdateProfile(ctx context.Context, sess *domainauth.Session, upd ports.ProfileUpdate) (model.User, error)
	SelectTenant(ctx context.Context, sess *domainauth.Session, tenantID string) error
	Logout(ctx context.Context, sessionID string) error
}

// AuthHandlers provides HTTP handlers for the passwordless sign-in flow.
type AuthHandlers struct {
	Svc             AuthServiceInterface
	T               *TemplateRenderer
	CookieDomain    string
	PendingEmailTTL time.Duration
	Logger          *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func (h *AuthHandlers) pendingTTL() time.Duration {
	if h.PendingEmailTTL > 0 {
		return h.PendingEmailTTL
	}
	return 10 * time.Minute
}

// LoginPage renders the email form.
// GET /auth/login?redirect_uri=<optional_redirect>.
func (h *AuthHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	if getSessionFromRequest(r, h.Svc) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := NewTemplateData(r, loginMeta()).
		With("RedirectURI", safeRedirectPath(r.URL.Query().Get("redirect_uri"))).
		Build()
	h.render(w, r, data)
}

// RequestCode handles the email form submission and sends a one-time code.
// POST /auth/login.
func (h *AuthHandlers) RequestCode(w http.ResponseWriter, r *http.Request) {
	form := validation.LoginForm{Email: strings.TrimSpace(r.FormValue("email"))}
	fields, err := validation.Check(form)
	if err != nil {
		h.renderLoginError(w, r, form.Email, "Something went wrong. Please try again.")
		return
	}
	if len(fields) > 0 {
		data := NewTemplateData(r, loginMeta()).
			With("Email", form.Email).
			WithFieldErrors(fields).
			Build()
		h.render(w, r, data)
		return
	}

	if reqErr := h.Svc.RequestCode(r.Context(), form.Email); reqErr != nil {
		h.logger().WarnContext(r.Context(), "request code failed", slog.Any("error", reqErr))
		h.renderLoginError(w, r, form.Email, apperrors.UserMessage(reqErr))
		return
	}

	h.setPendingCookies(w, r, pendingLoginParams{
		Email:       form.Email,
		RedirectURI: safeRedirectPath(r.FormValue("redirect_uri")),
	})
	http.Redirect(w, r, RouteVerify, http.StatusSeeOther)
}

// VerifyPage renders the one-time code form.
// GET /auth/verify.
func (h *AuthHandlers) VerifyPage(w http.ResponseWriter, r *http.Request) {
	email := h.pendingEmail(r)
	if email == "" {
		http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
		return
	}

	data := NewTemplateData(r, verifyMeta()).
		With("Email", email).
		Build()
	h.render(w, r, data)
}

// VerifyCode exchanges the submitted code for a session.
// POST /auth/verify.
func (h *AuthHandlers) VerifyCode(w http.ResponseWriter, r *http.Request) {
	email := h.pendingEmail(r)
	if email == "" {
		http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
		return
	}

	form := validation.VerifyForm{Email: email, Code: strings.TrimSpace(r.FormValue("code"))}
	fields, err := validation.Check(form)
	if err != nil {
		h.renderVerifyError(w, r, email, "Something went wrong. Please try again.")
		return
	}
	if len(fields) > 0 {
		data := NewTemplateData(r, verifyMeta()).
			With("Email", email).
			WithFieldErrors(fields).
			Build()
		h.render(w, r, data)
		return
	}

	sess, err := h.Svc.VerifyCode(r.Context(), email, form.Code)
	if err != nil {
		h.logger().WarnContext(r.Context(), "verify code failed", slog.Any("error", err))
		h.renderVerifyError(w, r, email, apperrors.UserMessage(err))
		return
	}

	h.setSessionCookie(w, r, *sess)
	clearCookie(w, r, PendingEmailCookieName, h.CookieDomain)

	redirectURI := h.getPostLoginRedirect(w, r)
	http.Redirect(w, r, redirectURI, http.StatusSeeOther)
}

// Logout handles the logout endpoint.
// POST /auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if sessionCookie, err := r.Cookie(SessionCookieName); err == nil {
		if logoutErr := h.Svc.Logout(r.Context(), sessionCookie.Value); logoutErr != nil {
			h.logger().WarnContext(r.Context(), "logout failed", slog.Any("error", logoutErr))
		}
	}

	clearCookie(w, r, SessionCookieName, h.CookieDomain)
	clearCookie(w, r, PendingEmailCookieName, h.CookieDomain)
	http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
}

// Status returns the current authentication status.
// GET /auth/status.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	sessionCookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	session, err := h.Svc.GetSession(r.Context(), sessionCookie.Value)
	if err != nil {
		// Session is invalid or expired, clear the cookie
		clearCookie(w, r, SessionCookieName, h.CookieDomain)
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user": map[string]any{
			"id":        session.User.ID,
			"email":     session.User.Email,
			"full_name": session.User.FullName,
		},
		"active_tenant_id": session.ActiveTenantID,
		"expires_at":       session.ExpiresAt,
	})
}

func loginMeta() PageMeta {
	return PageMeta{Title: "Sign In", PageTitle: "Sign in to Postika", CurrentPage: PageLogin}
}

func verifyMeta() PageMeta {
	return PageMeta{Title: "Enter Code", PageTitle: "Check your email", CurrentPage: PageVerify}
}

func (h *AuthHandlers) render(w http.ResponseWriter, r *http.Request, data map[string]any) {
	if err := h.T.RenderFull(w, r, data); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (h *AuthHandlers) renderLoginError(w http.ResponseWriter, r *http.Request, email, msg string) {
	data := NewTemplateData(r, loginMeta()).
		With("Email", email).
		WithError(msg).
		Build()
	h.render(w, r, data)
}

func (h *AuthHandlers) renderVerifyError(w http.ResponseWriter, r *http.Request, email, msg string) {
	data := NewTemplateData(r, verifyMeta()).
		With("Email", email).
		WithError(msg).
		Build()
	h.render(w, r, data)
}

// pendingEmail returns the email awaiting code verification, or "".
func (h *AuthHandlers) pendingEmail(r *http.Request) string {
	c, err := r.Cookie(PendingEmailCookieName)
	if err != nil {
		return ""
	}
	email, err := url.QueryUnescape(c.Value)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(email)
}

// pendingLoginParams groups values stored between the email form and code verification.
type pendingLoginParams struct {
	Email       string
	RedirectURI string
}

// setPendingCookies stores the pending email and the post-login redirect in
// short-lived cookies bridging the two-step sign-in.
func (h *AuthHandlers) setPendingCookies(w http.ResponseWriter, r *http.Request, p pendingLoginParams) {
	isSecure := requestIsSecure(r)
	maxAge := int(h.pendingTTL().Seconds())

	http.SetCookie(w, &http.Cookie{
		Name:     PendingEmailCookieName,
		Value:    url.QueryEscape(p.Email),
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})

	http.SetCookie(w, &http.Cookie{
		Name:     "post_login_redirect",
		Value:    p.RedirectURI,
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

// setSessionCookie writes the session cookie based on the session's expiry.
func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, r *http.Request, s domainauth.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    s.ID,
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   requestIsSecure(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(time.Until(s.ExpiresAt).Seconds()),
	})
}

// getPostLoginRedirect returns the post-login redirect URL and clears the cookie.
func (h *AuthHandlers) getPostLoginRedirect(w http.ResponseWriter, r *http.Request) string {
	redirectURI := "/"
	if redirectCookie, err := r.Cookie("post_login_redirect"); err == nil {
		// Defensive re-validation: allow only relative paths
		redirectURI = safeRedirectPath(redirectCookie.Value)
		clearCookie(w, r, "post_login_redirect", h.CookieDomain)
	}
	return redirectURI
}

// requestIsSecure reports whether the request arrived over TLS, directly or
// behind a terminating proxy.
func requestIsSecure(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

// clearCookie clears a cookie by setting it to expire immediately.
// It mirrors key attributes (Secure, Path, Domain, SameSite) used when setting cookies
// to maximize compatibility across browsers during deletion.
func clearCookie(w http.ResponseWriter, r *http.Request, name, domain string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   domain,
		HttpOnly: true,
		Secure:   requestIsSecure(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}
