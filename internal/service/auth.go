package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	domainauth "github.com/postika/console/internal/domain/auth"
	"github.com/postika/console/internal/domain/model"
	apperrors "github.com/postika/console/internal/errors"
	"github.com/postika/console/internal/ports"
)

// DefaultSessionTTL bounds a session when the upstream access token carries
// no usable expiry claim.
const DefaultSessionTTL = 12 * time.Hour

var errSessionExpired = errors.New("session expired")

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	API        ports.API
	Sessions   ports.SessionStore
	SessionTTL time.Duration
	Logger     *slog.Logger
}

// AuthService owns the session lifecycle: request-code, verify-code, profile
// refresh and update, tenant selection, logout. It holds no per-user state
// itself; everything lives in the session store.
type AuthService struct {
	api        ports.API
	sessions   ports.SessionStore
	sessionTTL time.Duration
	logger     *slog.Logger
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		api:        opts.API,
		sessions:   opts.Sessions,
		sessionTTL: ttl,
		logger:     logger,
	}
}

// RequestCode asks the upstream API to email a one-time code.
func (s *AuthService) RequestCode(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return apperrors.Validation("Email is required.")
	}
	return s.api.RequestCode(ctx, email)
}

// VerifyCode exchanges the emailed code for a bearer token, creates a session
// around it, and immediately fetches the user profile into the session.
func (s *AuthService) VerifyCode(ctx context.Context, email, code string) (*domainauth.Session, error) {
	email = normalizeEmail(email)
	code = strings.TrimSpace(code)
	if email == "" || code == "" {
		return nil, apperrors.Validation("Email and code are required.")
	}

	token, err := s.api.VerifyCode(ctx, email, code)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, apperrors.Unavailable("The sign-in service returned no token.", nil)
	}

	sess := domainauth.Session{
		ID:        uuid.NewString(),
		Token:     token,
		ExpiresAt: s.sessionExpiry(token, time.Now()),
	}

	// Fetch the profile right away so the gate has a snapshot to work with.
	// A rejected token is fatal here; a transient failure is not, the next
	// gate evaluation refreshes the snapshot.
	user, err := s.api.Me(ctx, token)
	switch {
	case err == nil:
		sess.User = user
	case apperrors.IsUnauthorized(err) || apperrors.IsForbidden(err):
		return nil, err
	default:
		s.logger.WarnContext(ctx, "profile fetch after verify failed", slog.Any("error", err))
	}

	if saveErr := s.sessions.Save(ctx, sess); saveErr != nil {
		return nil, fmt.Errorf("save session: %w", saveErr)
	}
	return &sess, nil
}

// GetSession retrieves a session by ID.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, errors.New("session ID is required")
	}

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if time.Now().After(sess.ExpiresAt) {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return nil, errors.Join(errSessionExpired, fmt.Errorf("delete session: %w", deleteErr))
		}
		return nil, errSessionExpired
	}

	return &sess, nil
}

// CurrentUser refreshes the session's user snapshot from the upstream API.
// A 401/403 means the token was rejected: the session is destroyed and the
// error returned. Any other failure degrades gracefully to the cached
// snapshot so a flaky upstream never forces a logout.
func (s *AuthService) CurrentUser(ctx context.Context, sess *domainauth.Session) (model.User, error) {
	user, err := s.api.Me(ctx, sess.Token)
	if err != nil {
		if apperrors.IsUnauthorized(err) || apperrors.IsForbidden(err) {
			if deleteErr := s.sessions.Delete(ctx, sess.ID); deleteErr != nil {
				s.logger.WarnContext(ctx, "delete rejected session failed",
					slog.String("session_id", sess.ID), slog.Any("error", deleteErr))
			}
			return model.User{}, err
		}
		s.logger.WarnContext(ctx, "profile refresh failed, serving cached snapshot",
			slog.Any("error", err))
		return sess.User, nil
	}

	if !user.Equal(sess.User) {
		sess.User = user
		if saveErr := s.sessions.Save(ctx, *sess); saveErr != nil {
			s.logger.WarnContext(ctx, "persist refreshed profile failed", slog.Any("error", saveErr))
		}
	}
	return user, nil
}

// UpdateProfile patches profile fields upstream and stores the returned
// profile in the session snapshot.
func (s *AuthService) UpdateProfile(
	ctx context.Context,
	sess *domainauth.Session,
	upd ports.ProfileUpdate,
) (model.User, error) {
	user, err := s.api.UpdateMe(ctx, sess.Token, upd)
	if err != nil {
		return model.User{}, err
	}

	sess.User = user
	if saveErr := s.sessions.Save(ctx, *sess); saveErr != nil {
		return model.User{}, fmt.Errorf("save session: %w", saveErr)
	}
	return user, nil
}

// SelectTenant persists the active-tenant choice on the session. The choice
// is not validated against membership here; the next tenant-scoped request
// surfaces a server-side rejection.
func (s *AuthService) SelectTenant(ctx context.Context, sess *domainauth.Session, tenantID string) error {
	if tenantID == "" {
		return apperrors.Validation("Choose a workspace.")
	}
	sess.ActiveTenantID = tenantID
	if err := s.sessions.Save(ctx, *sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Logout removes a session. Token, active tenant, and user snapshot all live
// in the session record, so one delete clears them together.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil // Nothing to log out
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// sessionExpiry derives the session deadline from the access token's exp
// claim, falling back to the configured TTL. The claim is read without
// signature verification: the console never trusts the token's contents for
// authorization, only for choosing how long to keep the session around.
func (s *AuthService) sessionExpiry(token string, now time.Time) time.Time {
	fallback := now.Add(s.sessionTTL)

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return fallback
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil || !exp.After(now) {
		return fallback
	}
	if exp.Before(fallback) {
		return exp.Time
	}
	return fallback
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
