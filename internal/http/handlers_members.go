package httpx

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/postika/console/internal/domain/model"
	apperrors "github.com/postika/console/internal/errors"
	"github.com/postika/console/internal/ports"
)

// MemberHandlers serves the member administration page.
type MemberHandlers struct {
	Tenants TenantServiceInterface
	T       *TemplateRenderer
	Logger  *slog.Logger
}

func (h *MemberHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func membersMeta() PageMeta {
	return PageMeta{Title: "Members", PageTitle: "Workspace members", CurrentPage: PageMembers}
}

// List renders the member roster for the active workspace.
// GET /members.
func (h *MemberHandlers) List(w http.ResponseWriter, r *http.Request) {
	sess := GetSessionFromContext(r.Context())
	if sess == nil {
		redirectToLogin(w, r)
		return
	}

	members, err := h.Tenants.Members(r.Context(), sess)
	if err != nil {
		h.logger().WarnContext(r.Context(), "member list failed", slog.Any("error", err))
		data := NewTemplateData(r, membersMeta()).
			WithError(apperrors.UserMessage(err)).
			Build()
		h.render(w, r, data)
		return
	}

	data := NewTemplateData(r, membersMeta()).
		With("Members", members).
		With("AssignableRoles", assignableRoles()).
		Build()
	h.render(w, r, data)
}

// Update changes a member's role or deactivates the member.
// POST /members/{userID}.
func (h *MemberHandlers) Update(w http.ResponseWriter, r *http.Request) {
	sess := GetSessionFromContext(r.Context())
	if sess == nil {
		redirectToLogin(w, r)
		return
	}

	userID := r.PathValue("userID")
	if userID == "" {
		http.Redirect(w, r, RouteMembers, http.StatusSeeOther)
		return
	}

	var upd ports.MemberUpdate
	if raw := strings.TrimSpace(r.FormValue("role")); raw != "" {
		role := model.NormalizeRole(raw)
		if !role.In(assignableRoles()...) {
			h.renderListError(w, r, "Role must be one of: ADMIN, MANAGER, STAFF.")
			return
		}
		upd.Role = &role
	}
	if raw := r.FormValue("is_active"); raw != "" {
		active := raw == "true" || raw == "on" || raw == "1"
		upd.IsActive = &active
	}

	if _, err := h.Tenants.UpdateMember(r.Context(), sess, userID, upd); err != nil {
		h.logger().WarnContext(r.Context(), "member update failed",
			slog.String("user_id", userID), slog.Any("error", err))
		h.renderListError(w, r, apperrors.UserMessage(err))
		return
	}

	http.Redirect(w, r, RouteMembers, http.StatusSeeOther)
}

// assignableRoles lists the roles an admin can assign to an existing member.
// OWNER is never assignable from the UI.
func assignableRoles() []model.Role {
	return []model.Role{model.RoleAdmin, model.RoleManager, model.RoleStaff}
}

// renderListError re-renders the roster with an error banner, keeping the
// member data on screen when the mutation fails.
func (h *MemberHandlers) renderListError(w http.ResponseWriter, r *http.Request, msg string) {
	b := NewTemplateData(r, membersMeta()).WithError(msg)
	if sess := GetSessionFromContext(r.Context()); sess != nil {
		if members, err := h.Tenants.Members(r.Context(), sess); err == nil {
			b.With("Members", members)
		}
	}
	b.With("AssignableRoles", assignableRoles())
	h.render(w, r, b.Build())
}

func (h *MemberHandlers) render(w http.ResponseWriter, r *http.Request, data map[string]any) {
	if err := h.T.RenderFull(w, r, data); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
