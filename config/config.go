package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - http.go: HTTP server configuration
//   - upstream.go: Upstream API client configuration
//   - redis.go: Redis and membership cache configuration
//   - session.go: Session and cookie configuration
type AppConfig struct {
	// IsDev controls development mode behavior (template hot reloading,
	// relaxed cookie security). Set DEV=true for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// Upstream API client configuration
	Upstream UpstreamConfig `envPrefix:"UPSTREAM_"`

	// Redis configuration
	Redis RedisConfig `envPrefix:"REDIS_"`
	Cache CacheConfig

	// HTTP server configuration
	HTTP HTTPConfig

	// Session configuration
	Session SessionConfig

	// Rate limit configuration for the auth endpoints
	RateLimit RateLimitConfig

	// Observability configuration
	Observability ObservabilityConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.Upstream.Sanitize()
	c.Session.Sanitize()
	c.Cache.Sanitize()
	c.RateLimit.Sanitize()
	c.Observability.Sanitize()

	// Check APP_ENV for dev mode
	c.detectDevMode()
}

// detectDevMode checks both DEV and APP_ENV environment variables.
// This is called by Sanitize() to ensure IsDev is set correctly.
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		appEnv := strings.ToLower(os.Getenv("APP_ENV"))
		c.IsDev = appEnv == "development" || appEnv == "dev"
	}
}
