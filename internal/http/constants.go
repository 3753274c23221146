package httpx

// CurrentPage constants define the page identifiers used in templates and navigation.
// These constants ensure consistency across UI handlers and template mapping.
const (
	// Auth pages.
	PageLogin  = "login"
	PageVerify = "verify"

	// Onboarding pages.
	PageProfile      = "profile"
	PageTenantSelect = "tenant-select"
	PageTenantNew    = "tenant-new"

	// Workspace pages.
	PageDashboard   = "dashboard"
	PageMembers     = "members"
	PageInvitations = "invitations"

	// Public pages.
	PageInviteAccept = "invite-accept"
)

// Route paths shared between handlers and middleware.
const (
	RouteLogin        = "/auth/login"
	RouteVerify       = "/auth/verify"
	RouteProfile      = "/profile"
	RouteTenantSelect = "/tenants/select"
	RouteTenantNew    = "/tenants/new"
	RouteDashboard    = "/dashboard"
	RouteMembers      = "/members"
	RouteInvitations  = "/invitations"
	RouteInviteAccept = "/invitations/accept"
)

// Cookie names used by the auth handlers and session middleware.
const (
	SessionCookieName      = "postika_session"
	PendingEmailCookieName = "postika_pending_email"
)

// Content templates are defined once and reused to avoid per-call allocations.
var contentTemplates = map[string]string{
	PageLogin:        "login-content",
	PageVerify:       "verify-content",
	PageProfile:      "profile-content",
	PageTenantSelect: "tenant-select-content",
	PageTenantNew:    "tenant-new-content",
	PageDashboard:    "dashboard-content",
	PageMembers:      "members-content",
	PageInvitations:  "invitations-content",
	PageInviteAccept: "invite-accept-content",
}

// ContentTemplateMap returns the mapping from CurrentPage to template name.
// This is the single source of truth for page-to-template mapping.
func ContentTemplateMap() map[string]string { return contentTemplates }

// ContentTemplateFor returns the content template for the given CurrentPage.
// Falls back to dashboard-content for unknown pages.
func ContentTemplateFor(currentPage string) string {
	if name, ok := ContentTemplateMap()[currentPage]; ok {
		return name
	}
	return "dashboard-content"
}
