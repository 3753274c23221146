package model

// Package model contains denormalized, ephemeral copies of server-owned
// entities. The upstream API is authoritative for every field; nothing in
// this package enforces a business invariant.

import "strings"

// User is the current user's profile as reported by GET /auth/me.
// ProfileComplete is the server's flag when present; use IsProfileComplete
// rather than reading the pointer directly.
type User struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	FullName        string `json:"full_name"`
	Phone           string `json:"phone_e164"`
	Country         string `json:"country"`
	IsActive        bool   `json:"is_active"`
	ProfileComplete *bool  `json:"profile_complete"`
}

// Structural fallback thresholds used only when the server omits the
// profile_complete flag.
const (
	minProfileNameLen  = 2
	minProfilePhoneLen = 8
)

// IsProfileComplete reports whether the profile is complete. The server flag
// wins when present; otherwise fall back to a structural check on name and
// phone lengths.
func (u User) IsProfileComplete() bool {
	if u.ProfileComplete != nil {
		return *u.ProfileComplete
	}
	name := strings.TrimSpace(u.FullName)
	phone := strings.TrimSpace(u.Phone)
	return len(name) >= minProfileNameLen && len(phone) >= minProfilePhoneLen
}

// Equal compares two profiles field-wise. ProfileComplete compares by value,
// not pointer identity, so a freshly decoded copy of the same profile is equal.
func (u User) Equal(other User) bool {
	if (u.ProfileComplete == nil) != (other.ProfileComplete == nil) {
		return false
	}
	if u.ProfileComplete != nil && *u.ProfileComplete != *other.ProfileComplete {
		return false
	}
	u.ProfileComplete, other.ProfileComplete = nil, nil
	return u == other
}

// DisplayName returns the best available name for UI headers.
func (u User) DisplayName() string {
	if name := strings.TrimSpace(u.FullName); name != "" {
		return name
	}
	return u.Email
}
