package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/postika/console/internal/domain/auth"
	"github.com/postika/console/internal/domain/model"
	"github.com/postika/console/internal/ports"
	"github.com/postika/console/internal/testutil"
)

func TestErrNotFoundMatchesPortsSentinel(t *testing.T) {
	// In-memory doubles return the ports sentinel; both must match so tests
	// against either store observe the same error.
	assert.True(t, errors.Is(ErrNotFound, ports.ErrSessionNotFound))

	_, err := testutil.NewMemorySessionStore().Get(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func testSession(id string, ttl time.Duration) domainauth.Session {
	return domainauth.Session{
		ID:    id,
		Token: "tok-" + id,
		User: model.User{
			ID:    "user-1",
			Email: "jo@example.com",
		},
		ActiveTenantID: "tenant-1",
		ExpiresAt:      time.Now().Add(ttl),
	}
}

func TestSessionStoreRoundTrip(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	sess := testSession("rt-1", time.Hour)
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, "rt-1")
	require.NoError(t, err)
	assert.Equal(t, sess.Token, got.Token)
	assert.Equal(t, sess.ActiveTenantID, got.ActiveTenantID)
	assert.Equal(t, sess.User.Email, got.User.Email)

	require.NoError(t, store.Delete(ctx, "rt-1"))
	_, err = store.Get(ctx, "rt-1")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSessionStoreRejectsExpired(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	err := store.Save(ctx, testSession("exp-1", -time.Minute))
	require.Error(t, err, "already-expired sessions must not be stored")
}

func TestSessionStoreMissingAndEmptyID(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	_, err := store.Get(ctx, "never-existed")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = store.Get(ctx, "")
	assert.True(t, errors.Is(err, ErrNotFound))

	require.NoError(t, store.Delete(ctx, ""))
}

func TestSessionStoreList(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSession("list-1", time.Hour)))
	require.NoError(t, store.Save(ctx, testSession("list-2", time.Hour)))

	sessions, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	ids := []string{sessions[0].ID, sessions[1].ID}
	assert.ElementsMatch(t, []string{"list-1", "list-2"}, ids)
}
