package model

import (
	"testing"
	"time"
)

func TestInvitationStatusAt(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	accepted := now.Add(-time.Hour)

	tests := []struct {
		name string
		inv  Invitation
		want InvitationStatus
	}{
		{
			name: "pending before expiry",
			inv:  Invitation{ExpiresAt: now.Add(time.Hour)},
			want: InvitationPending,
		},
		{
			name: "expired after deadline",
			inv:  Invitation{ExpiresAt: now.Add(-time.Minute)},
			want: InvitationExpired,
		},
		{
			name: "accepted wins even past expiry",
			inv:  Invitation{ExpiresAt: now.Add(-time.Minute), AcceptedAt: &accepted},
			want: InvitationAccepted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.inv.StatusAt(now); got != tt.want {
				t.Errorf("StatusAt() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeRole(t *testing.T) {
	if got := NormalizeRole("  owner "); got != RoleOwner {
		t.Errorf("NormalizeRole = %q, want %q", got, RoleOwner)
	}
	if !RoleAdmin.In(RoleOwner, RoleAdmin) {
		t.Error("ADMIN should be in allow-list containing ADMIN")
	}
	if RoleStaff.In(RoleOwner, RoleAdmin) {
		t.Error("STAFF should not be in OWNER/ADMIN allow-list")
	}
}
