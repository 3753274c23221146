// Package upstream implements the HTTP client for the remote POSTIKA API.
// It attaches the bearer token and tenant-scoping header, and normalizes
// non-2xx responses into typed application errors.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/postika/console/internal/errors"
	"github.com/postika/console/internal/ports"
)

// TenantHeader is the scoping header tenant-scoped endpoints require.
const TenantHeader = "X-Tenant-Id"

const defaultTimeout = 15 * time.Second

// Client talks to the POSTIKA API. It is safe for concurrent use; per-session
// credentials are passed per call, never stored on the client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ ports.API = (*Client)(nil)

// Config describes how to reach the upstream API.
type Config struct {
	// BaseURL is the API origin, e.g. "https://api.postika.app".
	BaseURL string
	// Timeout bounds each request. Zero means the default.
	Timeout time.Duration
	// Logger for request failures (optional).
	Logger *slog.Logger
}

// NewClient constructs a Client from config.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// requestOptions carries per-call credentials and scoping.
type requestOptions struct {
	// Token is attached as a bearer Authorization header when non-empty.
	Token string
	// TenantID is forwarded in the tenant-scoping header when non-empty.
	TenantID string
}

// do issues a JSON request and decodes a 2xx response body into out (when out
// is non-nil). Non-2xx responses become *apperrors.AppError with the HTTP
// status and the message extracted from the server's detail field.
func (c *Client) do(ctx context.Context, method, path string, body, out any, opts requestOptions) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+opts.Token)
	}
	if opts.TenantID != "" {
		req.Header.Set(TenantHeader, opts.TenantID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "upstream request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.Any("error", err),
		)
		return apperrors.Unavailable("The service is unreachable. Please try again.", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close on a fully read body

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.errorFromResponse(resp)
	}

	if out == nil {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeUnavailable,
			fmt.Sprintf("decode %s %s response", method, path))
	}
	return nil
}

// errorBody is the upstream error envelope. detail is either a plain string
// or an object carrying a message (the API is inconsistent between the two).
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// detailObject covers the structured detail shape.
type detailObject struct {
	Code    string `json:"code"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *Client) errorFromResponse(resp *http.Response) error {
	const maxErrorBody = 64 << 10
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return apperrors.FromStatus(resp.StatusCode, extractDetail(raw))
}

// extractDetail pulls a human-readable message out of an upstream error body.
// Returns "" when the body has no usable detail; the caller falls back to the
// HTTP status text.
func extractDetail(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil || len(body.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(body.Detail, &s); err == nil {
		return s
	}
	var obj detailObject
	if err := json.Unmarshal(body.Detail, &obj); err == nil && obj.Message != "" {
		return obj.Message
	}
	return ""
}

// joinPath escapes a path segment into an API path.
func joinPath(parts ...string) string {
	escaped := make([]string, 0, len(parts))
	for _, p := range parts {
		escaped = append(escaped, url.PathEscape(p))
	}
	return "/" + strings.Join(escaped, "/")
}
