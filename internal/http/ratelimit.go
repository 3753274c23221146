package httpx

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// RateLimitOptions holds IP rate limiting configuration for the auth endpoints.
type RateLimitOptions struct {
	Enabled  bool
	Requests int
	Window   time.Duration
	Logger   *slog.Logger
}

// RateLimit creates an IP-based rate limiter middleware with logging. When
// disabled it returns a pass-through.
func RateLimit(opts RateLimitOptions) func(http.Handler) http.Handler {
	if !opts.Enabled {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(
		opts.Requests,
		opts.Window,
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			if opts.Logger != nil {
				opts.Logger.Warn("rate limit exceeded",
					"ip", r.RemoteAddr,
					"path", r.URL.Path,
					"method", r.Method,
				)
			}
			http.Error(w, "Too many attempts. Please wait a minute and try again.",
				http.StatusTooManyRequests)
		}),
	)
}
