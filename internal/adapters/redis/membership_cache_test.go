package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postika/console/internal/domain/model"
	"github.com/postika/console/internal/testutil"
)

func testMembership(tenantID, userID string, role model.Role) model.Membership {
	return model.Membership{
		TenantID:    tenantID,
		UserID:      userID,
		Role:        role,
		Permissions: []string{"members:read"},
		IsActive:    true,
	}
}

func TestMembershipCacheRoundTrip(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	cache := NewMembershipCache(client)
	ctx := context.Background()

	m := testMembership("tenant-1", "user-1", model.RoleAdmin)
	require.NoError(t, cache.Set(ctx, m, time.Minute))

	got, ok, err := cache.Get(ctx, "user-1", "tenant-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, m, got)

	// Miss for a different user is not an error.
	_, ok, err = cache.Get(ctx, "user-2", "tenant-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMembershipCacheTTL(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	cache := NewMembershipCache(client)
	ctx := context.Background()

	m := testMembership("tenant-1", "user-1", model.RoleStaff)
	require.NoError(t, cache.Set(ctx, m, 50*time.Millisecond))

	_, ok, err := cache.Get(ctx, "user-1", "tenant-1")
	require.NoError(t, err)
	require.True(t, ok)

	time.Sleep(100 * time.Millisecond)

	_, ok, err = cache.Get(ctx, "user-1", "tenant-1")
	require.NoError(t, err)
	assert.False(t, ok, "entry should expire with its TTL")
}

func TestMembershipCacheInvalidateTenant(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	cache := NewMembershipCache(client)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, testMembership("tenant-1", "user-1", model.RoleOwner), time.Minute))
	require.NoError(t, cache.Set(ctx, testMembership("tenant-1", "user-2", model.RoleStaff), time.Minute))
	require.NoError(t, cache.Set(ctx, testMembership("tenant-2", "user-1", model.RoleAdmin), time.Minute))

	require.NoError(t, cache.InvalidateTenant(ctx, "tenant-1"))

	_, ok, err := cache.Get(ctx, "user-1", "tenant-1")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = cache.Get(ctx, "user-2", "tenant-1")
	require.NoError(t, err)
	assert.False(t, ok)

	// Other tenants keep their entries.
	_, ok, err = cache.Get(ctx, "user-1", "tenant-2")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMembershipCacheZeroTTLDisables(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	cache := NewMembershipCache(client)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, testMembership("tenant-1", "user-1", model.RoleOwner), 0))

	_, ok, err := cache.Get(ctx, "user-1", "tenant-1")
	require.NoError(t, err)
	assert.False(t, ok, "zero TTL disables caching")
}
