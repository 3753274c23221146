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

// InvitationServiceInterface defines the invitation operations the UI needs.
type InvitationServiceInterface interface {
	List(ctx context.Context, sess *domainauth.Session) ([]model.Invitation, error)
	Create(ctx context.Context, sess *domainauth.Session, email string, role model.Role) (model.Invitation, error)
	Accept(ctx context.Context, inviteToken string) (ports.AcceptResult, error)
	Revoke(ctx context.Context, sess *domainauth.Session, invitationID string) error
	Resend(ctx context.Context, sess *domainauth.Session, invitationID string) (model.Invitation, error)
}

// InvitationHandlers serves invitation management and the public accept page.
type InvitationHandlers struct {
	Svc    InvitationServiceInterface
	T      *TemplateRenderer
	Logger *slog.Logger
}

func (h *InvitationHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func invitationsMeta() PageMeta {
	return PageMeta{Title: "Invitations", PageTitle: "Workspace invitations", CurrentPage: PageInvitations}
}

func acceptMeta() PageMeta {
	return PageMeta{Title: "Join Workspace", PageTitle: "Join a workspace", CurrentPage: PageInviteAccept}
}

// List renders the invitation list with its derived statuses.
// GET /invitations.
func (h *InvitationHandlers) List(w http.ResponseWriter, r *http.Request) {
	sess := GetSessionFromContext(r.Context())
	if sess == nil {
		redirectToLogin(w, r)
		return
	}

	invitations, err := h.Svc.List(r.Context(), sess)
	if err != nil {
		h.logger().WarnContext(r.Context(), "invitation list failed", slog.Any("error", err))
		h.render(w, r, NewTemplateData(r, invitationsMeta()).
			WithError(apperrors.UserMessage(err)).
			Build())
		return
	}

	h.renderList(w, r, invitations, NewTemplateData(r, invitationsMeta()))
}

// Create sends a new invitation.
// POST /invitations.
func (h *InvitationHandlers) Create(w http.ResponseWriter, r *http.Request) {
	sess := GetSessionFromContext(r.Context())
	if sess == nil {
		redirectToLogin(w, r)
		return
	}

	form := validation.InviteForm{
		Email: strings.TrimSpace(r.FormValue("email")),
		Role:  strings.ToUpper(strings.TrimSpace(r.FormValue("role"))),
	}

	fields, err := validation.Check(form)
	if err != nil {
		h.listWithError(w, r, sess, "Something went wrong. Please try again.")
		return
	}
	if len(fields) > 0 {
		invitations, _ := h.Svc.List(r.Context(), sess)
		h.renderList(w, r, invitations, NewTemplateData(r, invitationsMeta()).
			WithFieldErrors(fields).
			With("InviteEmail", form.Email).
			With("InviteRole", form.Role))
		return
	}

	if _, createErr := h.Svc.Create(r.Context(), sess, form.Email, model.Role(form.Role)); createErr != nil {
		h.logger().WarnContext(r.Context(), "invitation create failed", slog.Any("error", createErr))
		h.listWithError(w, r, sess, apperrors.UserMessage(createErr))
		return
	}

	http.Redirect(w, r, RouteInvitations, http.StatusSeeOther)
}

// Revoke revokes a pending invitation.
// POST /invitations/{id}/revoke.
func (h *InvitationHandlers) Revoke(w http.ResponseWriter, r *http.Request) {
	sess := GetSessionFromContext(r.Context())
	if sess == nil {
		redirectToLogin(w, r)
		return
	}

	if err := h.Svc.Revoke(r.Context(), sess, r.PathValue("id")); err != nil {
		h.logger().WarnContext(r.Context(), "invitation revoke failed", slog.Any("error", err))
		h.listWithError(w, r, sess, apperrors.UserMessage(err))
		return
	}
	http.Redirect(w, r, RouteInvitations, http.StatusSeeOther)
}

// Resend re-sends an invitation email.
// POST /invitations/{id}/resend.
func (h *InvitationHandlers) Resend(w http.ResponseWriter, r *http.Request) {
	sess := GetSessionFromContext(r.Context())
	if sess == nil {
		redirectToLogin(w, r)
		return
	}

	if _, err := h.Svc.Resend(r.Context(), sess, r.PathValue("id")); err != nil {
		h.logger().WarnContext(r.Context(), "invitation resend failed", slog.Any("error", err))
		h.listWithError(w, r, sess, apperrors.UserMessage(err))
		return
	}
	http.Redirect(w, r, RouteInvitations, http.StatusSeeOther)
}

// AcceptPage renders the public invitation landing page. A missing token is an
// inline error; no upstream call is made.
// GET /invitations/accept?token=<token>.
func (h *InvitationHandlers) AcceptPage(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(r.URL.Query().Get("token"))
	if token == "" {
		h.render(w, r, NewTemplateData(r, acceptMeta()).
			WithError("This invitation link is missing its token. Ask for a fresh invitation email.").
			Build())
		return
	}

	h.render(w, r, NewTemplateData(r, acceptMeta()).
		With("Token", token).
		Build())
}

// Accept redeems the invitation token.
// POST /invitations/accept.
func (h *InvitationHandlers) Accept(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(r.FormValue("token"))
	if token == "" {
		h.render(w, r, NewTemplateData(r, acceptMeta()).
			WithError("This invitation link is missing its token. Ask for a fresh invitation email.").
			Build())
		return
	}

	result, err := h.Svc.Accept(r.Context(), token)
	if err != nil {
		h.logger().WarnContext(r.Context(), "invitation accept failed", slog.Any("error", err))
		h.render(w, r, NewTemplateData(r, acceptMeta()).
			With("Token", token).
			WithError(acceptErrorMessage(err)).
			Build())
		return
	}

	h.logger().InfoContext(r.Context(), "invitation accepted",
		slog.String("tenant_id", result.TenantID),
		slog.String("role", string(result.Role)))

	// The gate routes the new member onward: sign-in if needed, then the
	// workspace itself.
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// acceptErrorMessage translates upstream rejections into invite-specific text.
func acceptErrorMessage(err error) string {
	switch {
	case apperrors.IsUnauthorized(err):
		return "Please sign in first, then open the invitation link again."
	case apperrors.IsForbidden(err):
		return "This invitation has expired, was already used, or belongs to a different account."
	case apperrors.IsNotFound(err):
		return "This invitation no longer exists. Ask for a fresh invitation email."
	case apperrors.IsConflict(err):
		return "This invitation was already accepted."
	default:
		return apperrors.UserMessage(err)
	}
}

func (h *InvitationHandlers) listWithError(
	w http.ResponseWriter,
	r *http.Request,
	sess *domainauth.Session,
	msg string,
) {
	invitations, _ := h.Svc.List(r.Context(), sess)
	h.renderList(w, r, invitations, NewTemplateData(r, invitationsMeta()).WithError(msg))
}

func (h *InvitationHandlers) renderList(
	w http.ResponseWriter,
	r *http.Request,
	invitations []model.Invitation,
	b *TemplateDataBuilder,
) {
	views := make([]invitationView, 0, len(invitations))
	for _, inv := range invitations {
		views = append(views, invitationView{Invitation: inv, Status: inv.Status()})
	}
	h.render(w, r, b.
		With("Invitations", views).
		With("InvitableRoles", []model.Role{model.RoleAdmin, model.RoleStaff}).
		Build())
}

// invitationView pairs an invitation with its status derived at render time.
type invitationView struct {
	model.Invitation
	Status model.InvitationStatus
}

func (h *InvitationHandlers) render(w http.ResponseWriter, r *http.Request, data map[string]any) {
	if err := h.T.RenderFull(w, r, data); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
