package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	domainauth "github.com/postika/console/internal/domain/auth"
	"github.com/postika/console/internal/domain/model"
	apperrors "github.com/postika/console/internal/errors"
	"github.com/postika/console/internal/http/validation"
	"github.com/postika/console/internal/ports"
)

// TenantServiceInterface defines the tenant operations the UI needs.
type TenantServiceInterface interface {
	List(ctx context.Context, sess *domainauth.Session) ([]model.Tenant, error)
	Create(ctx context.Context, sess *domainauth.Session, req ports.TenantCreate) (model.Tenant, error)
	Membership(ctx context.Context, sess *domainauth.Session) (model.Membership, error)
	Members(ctx context.Context, sess *domainauth.Session) ([]model.Member, error)
	UpdateMember(
		ctx context.Context,
		sess *domainauth.Session,
		userID string,
		upd ports.MemberUpdate,
	) (model.Member, error)
}

// TenantHandlers serves the dashboard, workspace picker, and workspace
// creation pages.
type TenantHandlers struct {
	Tenants TenantServiceInterface
	Auth    AuthServiceInterface
	T       *TemplateRenderer
	Logger  *slog.Logger
}

func (h *TenantHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Dashboard renders the workspace landing page.
// GET /dashboard.
func (h *TenantHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	sess := GetSessionFromContext(r.Context())
	if sess == nil {
		redirectToLogin(w, r)
		return
	}

	meta := PageMeta{Title: "Dashboard", PageTitle: "Dashboard", CurrentPage: PageDashboard}
	b := NewTemplateData(r, meta)

	if membership, err := h.Tenants.Membership(r.Context(), sess); err == nil {
		b.With("Role", string(membership.Role))
		b.With("Permissions", membership.Permissions)
	} else {
		h.logger().WarnContext(r.Context(), "dashboard membership lookup failed", slog.Any("error", err))
	}

	if tenants, err := h.Tenants.List(r.Context(), sess); err == nil {
		b.With("Tenants", tenants)
		for _, t := range tenants {
			if t.ID == sess.ActiveTenantID {
				b.With("ActiveTenant", t)
				break
			}
		}
	} else {
		h.logger().WarnContext(r.Context(), "dashboard tenant list failed", slog.Any("error", err))
	}

	h.render(w, r, b.Build())
}

// SelectPage renders the workspace picker.
// GET /tenants/select.
func (h *TenantHandlers) SelectPage(w http.ResponseWriter, r *http.Request) {
	sess := GetSessionFromContext(r.Context())
	if sess == nil {
		redirectToLogin(w, r)
		return
	}

	tenants, err := h.Tenants.List(r.Context(), sess)
	if err != nil {
		h.logger().WarnContext(r.Context(), "tenant list failed", slog.Any("error", err))
		data := NewTemplateData(r, selectMeta()).
			WithError(apperrors.UserMessage(err)).
			Build()
		h.render(w, r, data)
		return
	}

	data := NewTemplateData(r, selectMeta()).
		With("Tenants", tenants).
		Build()
	h.render(w, r, data)
}

// Select persists the workspace choice and enters the dashboard.
// POST /tenants/select.
func (h *TenantHandlers) Select(w http.ResponseWriter, r *http.Request) {
	sess := GetSessionFromContext(r.Context())
	if sess == nil {
		redirectToLogin(w, r)
		return
	}

	tenantID := strings.TrimSpace(r.FormValue("tenant_id"))
	if err := h.Auth.SelectTenant(r.Context(), sess, tenantID); err != nil {
		data := NewTemplateData(r, selectMeta()).
			WithError(apperrors.UserMessage(err)).
			Build()
		h.render(w, r, data)
		return
	}

	http.Redirect(w, r, RouteDashboard, http.StatusSeeOther)
}

// NewPage renders the workspace creation form.
// GET /tenants/new.
func (h *TenantHandlers) NewPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, NewTemplateData(r, newTenantMeta()).Build())
}

// Create handles the workspace creation form, selects the new workspace, and
// enters the dashboard.
// POST /tenants/new.
func (h *TenantHandlers) Create(w http.ResponseWriter, r *http.Request) {
	sess := GetSessionFromContext(r.Context())
	if sess == nil {
		redirectToLogin(w, r)
		return
	}

	form := validation.TenantForm{
		Name:               strings.TrimSpace(r.FormValue("name")),
		AcceptedTerms:      r.FormValue("accepted_terms") != "",
		NotificationsOptIn: r.FormValue("notifications_opt_in") != "",
		ReferralCode:       strings.TrimSpace(r.FormValue("referral_code")),
	}

	fields, err := validation.Check(form)
	if err != nil {
		h.renderCreateForm(w, r, form, NewTemplateData(r, newTenantMeta()).
			WithError("Something went wrong. Please try again."))
		return
	}
	if len(fields) > 0 {
		h.renderCreateForm(w, r, form, NewTemplateData(r, newTenantMeta()).
			WithFieldErrors(fields))
		return
	}

	req := ports.TenantCreate{
		Name:               form.Name,
		AcceptedTerms:      form.AcceptedTerms,
		NotificationsOptIn: form.NotificationsOptIn,
	}
	if form.ReferralCode != "" {
		req.ReferralCode = &form.ReferralCode
	}

	tenant, err := h.Tenants.Create(r.Context(), sess, req)
	if err != nil {
		h.logger().WarnContext(r.Context(), "tenant create failed", slog.Any("error", err))
		h.renderCreateForm(w, r, form, NewTemplateData(r, newTenantMeta()).
			WithError(apperrors.UserMessage(err)))
		return
	}

	if selErr := h.Auth.SelectTenant(r.Context(), sess, tenant.ID); selErr != nil {
		h.logger().WarnContext(r.Context(), "select created tenant failed", slog.Any("error", selErr))
		http.Redirect(w, r, RouteTenantSelect, http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, RouteDashboard, http.StatusSeeOther)
}

func selectMeta() PageMeta {
	return PageMeta{Title: "Choose Workspace", PageTitle: "Choose a workspace", CurrentPage: PageTenantSelect}
}

func newTenantMeta() PageMeta {
	return PageMeta{Title: "Create Workspace", PageTitle: "Create your workspace", CurrentPage: PageTenantNew}
}

func (h *TenantHandlers) renderCreateForm(
	w http.ResponseWriter,
	r *http.Request,
	form validation.TenantForm,
	b *TemplateDataBuilder,
) {
	data := b.
		With("Name", form.Name).
		With("ReferralCode", form.ReferralCode).
		With("NotificationsOptIn", form.NotificationsOptIn).
		Build()
	h.render(w, r, data)
}

func (h *TenantHandlers) render(w http.ResponseWriter, r *http.Request, data map[string]any) {
	if err := h.T.RenderFull(w, r, data); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
