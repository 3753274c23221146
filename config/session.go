package config

import "time"

// SessionConfig contains session and cookie configuration.
type SessionConfig struct {
	// TTL bounds a session's lifetime when the upstream access token carries
	// no usable expiry.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"12h"`

	// CookieName is the name of the session cookie.
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"postika_session"`

	// PendingEmailTTL bounds the window between requesting a sign-in code
	// and verifying it.
	PendingEmailTTL time.Duration `env:"SESSION_PENDING_EMAIL_TTL" envDefault:"10m"`
}

// Sanitize applies guardrails to session configuration values.
func (s *SessionConfig) Sanitize() {
	if s.TTL <= 0 {
		s.TTL = 12 * time.Hour
	}
	if s.CookieName == "" {
		s.CookieName = "postika_session"
	}
	if s.PendingEmailTTL <= 0 {
		s.PendingEmailTTL = 10 * time.Minute
	}
}
