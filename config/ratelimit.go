package config

import "time"

// RateLimitConfig contains rate limiting for the code-request and
// code-verify endpoints. Limits are per client IP.
type RateLimitConfig struct {
	// Enabled toggles rate limiting on the auth endpoints.
	Enabled bool `env:"RATE_LIMIT_ENABLED" envDefault:"true"`

	// Requests is the number of requests allowed per window.
	Requests int `env:"RATE_LIMIT_REQUESTS" envDefault:"10"`

	// Window is the rate limit window.
	Window time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
}

// Sanitize applies guardrails to rate limit configuration values.
func (r *RateLimitConfig) Sanitize() {
	if r.Requests <= 0 {
		r.Requests = 10
	}
	if r.Window <= 0 {
		r.Window = time.Minute
	}
}
