package auth

// GateTarget names the single destination the tenant gate resolves to for a
// given session state. Exactly one target applies at a time.
type GateTarget string

const (
	GateLogin        GateTarget = "login"
	GateProfile      GateTarget = "profile"
	GateTenantCreate GateTarget = "tenant-create"
	GateTenantSelect GateTarget = "tenant-select"
	GateDashboard    GateTarget = "dashboard"
)

// GateInput is everything the gate decision depends on. TenantCount is only
// consulted when no active tenant is selected; callers may skip the tenant
// list query otherwise.
type GateInput struct {
	Authenticated   bool
	ProfileComplete bool
	ActiveTenant    bool
	TenantCount     int
}

// DecideGate is the pure tenant-gate decision: it maps session state to the
// one page the user belongs on. Check order is significant: authentication
// before profile, profile before tenant resolution.
func DecideGate(in GateInput) GateTarget {
	if !in.Authenticated {
		return GateLogin
	}
	if !in.ProfileComplete {
		return GateProfile
	}
	if in.ActiveTenant {
		return GateDashboard
	}
	switch {
	case in.TenantCount == 0:
		return GateTenantCreate
	case in.TenantCount == 1:
		// Caller persists the lone tenant as active before redirecting.
		return GateDashboard
	default:
		return GateTenantSelect
	}
}
