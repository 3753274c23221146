package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAppConfigDefaults(t *testing.T) {
	t.Setenv("UPSTREAM_BASE_URL", "https://api.example.com")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("env.Parse failed: %v", err)
	}
	cfg.Sanitize()

	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("HTTP.Addr = %q, want %q", cfg.HTTP.Addr, ":8080")
	}
	if cfg.Upstream.BaseURL != "https://api.example.com" {
		t.Errorf("Upstream.BaseURL = %q", cfg.Upstream.BaseURL)
	}
	if cfg.Upstream.Timeout != 15*time.Second {
		t.Errorf("Upstream.Timeout = %v, want 15s", cfg.Upstream.Timeout)
	}
	if cfg.Session.TTL != 12*time.Hour {
		t.Errorf("Session.TTL = %v, want 12h", cfg.Session.TTL)
	}
	if cfg.Session.CookieName != "postika_session" {
		t.Errorf("Session.CookieName = %q", cfg.Session.CookieName)
	}
	if cfg.Cache.MembershipTTL != 5*time.Minute {
		t.Errorf("Cache.MembershipTTL = %v, want 5m", cfg.Cache.MembershipTTL)
	}
	if !cfg.RateLimit.Enabled {
		t.Error("RateLimit.Enabled = false, want true by default")
	}
	if cfg.IsDev {
		t.Error("IsDev = true, want false by default")
	}
}

func TestUpstreamConfigRequired(t *testing.T) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err == nil {
		t.Error("expected error when UPSTREAM_BASE_URL is unset")
	}
}

func TestUpstreamSanitizeTrimsTrailingSlash(t *testing.T) {
	u := UpstreamConfig{BaseURL: " https://api.example.com/ ", Timeout: -1}
	u.Sanitize()
	if u.BaseURL != "https://api.example.com" {
		t.Errorf("BaseURL = %q, want trimmed", u.BaseURL)
	}
	if u.Timeout != 15*time.Second {
		t.Errorf("Timeout = %v, want clamped to 15s", u.Timeout)
	}
}

func TestSessionSanitizeGuardrails(t *testing.T) {
	s := SessionConfig{TTL: -time.Hour, CookieName: "", PendingEmailTTL: 0}
	s.Sanitize()
	if s.TTL != 12*time.Hour {
		t.Errorf("TTL = %v, want 12h", s.TTL)
	}
	if s.CookieName != "postika_session" {
		t.Errorf("CookieName = %q", s.CookieName)
	}
	if s.PendingEmailTTL != 10*time.Minute {
		t.Errorf("PendingEmailTTL = %v, want 10m", s.PendingEmailTTL)
	}
}

func TestDetectDevModeFromAppEnv(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("UPSTREAM_BASE_URL", "https://api.example.com")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("env.Parse failed: %v", err)
	}
	cfg.Sanitize()

	if !cfg.IsDev {
		t.Error("IsDev = false, want true when APP_ENV=development")
	}
}

func TestMetricsSanitizeDisablesOnEmptyAddress(t *testing.T) {
	m := ObservabilityMetricsConfig{Enabled: true, StatsdAddress: "   "}
	m.Sanitize()
	if m.IsEnabled() {
		t.Error("IsEnabled() = true, want false with blank address")
	}
}
