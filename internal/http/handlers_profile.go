package httpx

import (
	"log/slog"
	"net/http"
	"strings"

	apperrors "github.com/postika/console/internal/errors"
	"github.com/postika/console/internal/http/validation"
	"github.com/postika/console/internal/ports"
)

// ProfileHandlers serves the profile completion and editing page.
type ProfileHandlers struct {
	Svc    AuthServiceInterface
	T      *TemplateRenderer
	Logger *slog.Logger
}

func (h *ProfileHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func profileMeta() PageMeta {
	return PageMeta{Title: "Your Profile", PageTitle: "Complete your profile", CurrentPage: PageProfile}
}

// Show renders the profile form prefilled from the session snapshot.
// GET /profile.
func (h *ProfileHandlers) Show(w http.ResponseWriter, r *http.Request) {
	sess := GetSessionFromContext(r.Context())
	if sess == nil {
		redirectToLogin(w, r)
		return
	}

	data := NewTemplateData(r, profileMeta()).
		With("FullName", sess.User.FullName).
		With("Phone", sess.User.Phone).
		With("Country", sess.User.Country).
		Build()
	h.render(w, r, data)
}

// Update handles the profile form submission.
// POST /profile.
func (h *ProfileHandlers) Update(w http.ResponseWriter, r *http.Request) {
	sess := GetSessionFromContext(r.Context())
	if sess == nil {
		redirectToLogin(w, r)
		return
	}

	form := validation.ProfileForm{
		FullName: strings.TrimSpace(r.FormValue("full_name")),
		Phone:    strings.TrimSpace(r.FormValue("phone")),
		Country:  strings.ToUpper(strings.TrimSpace(r.FormValue("country"))),
	}

	fields, err := validation.Check(form)
	if err != nil {
		h.renderForm(w, r, form, NewTemplateData(r, profileMeta()).
			WithError("Something went wrong. Please try again."))
		return
	}
	if len(fields) > 0 {
		h.renderForm(w, r, form, NewTemplateData(r, profileMeta()).
			WithFieldErrors(fields))
		return
	}

	upd := ports.ProfileUpdate{FullName: &form.FullName, Phone: &form.Phone}
	if form.Country != "" {
		upd.Country = &form.Country
	}

	if _, updErr := h.Svc.UpdateProfile(r.Context(), sess, upd); updErr != nil {
		h.logger().WarnContext(r.Context(), "profile update failed", slog.Any("error", updErr))
		h.renderForm(w, r, form, NewTemplateData(r, profileMeta()).
			WithError(apperrors.UserMessage(updErr)))
		return
	}

	// The gate routes the user to workspace selection or the dashboard.
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *ProfileHandlers) renderForm(
	w http.ResponseWriter,
	r *http.Request,
	form validation.ProfileForm,
	b *TemplateDataBuilder,
) {
	data := b.
		With("FullName", form.FullName).
		With("Phone", form.Phone).
		With("Country", form.Country).
		Build()
	h.render(w, r, data)
}

func (h *ProfileHandlers) render(w http.ResponseWriter, r *http.Request, data map[string]any) {
	if err := h.T.RenderFull(w, r, data); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
