package config

import (
	"strings"
	"time"
)

// UpstreamConfig contains configuration for the upstream API client.
type UpstreamConfig struct {
	// BaseURL is the root of the upstream API (e.g., "https://api.example.com").
	// Required; the console refuses to start without it.
	BaseURL string `env:"BASE_URL,required"`

	// Timeout is the per-request timeout for upstream calls.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"15s"`
}

// Sanitize applies guardrails to upstream configuration values.
func (u *UpstreamConfig) Sanitize() {
	u.BaseURL = strings.TrimRight(strings.TrimSpace(u.BaseURL), "/")
	if u.Timeout <= 0 {
		u.Timeout = 15 * time.Second
	}
}
