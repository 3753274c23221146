package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/postika/console/internal/domain/model"
)

// MembershipCache caches membership lookups keyed by (tenant, user) with an
// explicit TTL. Keys nest the tenant first so invalidation can drop every
// entry for a tenant with a single scan.
type MembershipCache struct {
	client redis.UniversalClient
	prefix string
}

// NewMembershipCache creates a Redis-backed membership cache.
func NewMembershipCache(client redis.UniversalClient) *MembershipCache {
	return &MembershipCache{
		client: client,
		prefix: "membership:",
	}
}

func (c *MembershipCache) key(tenantID, userID string) string {
	return c.prefix + tenantID + ":" + userID
}

// Get returns the cached membership and whether it was present. A cache miss
// is not an error.
func (c *MembershipCache) Get(ctx context.Context, userID, tenantID string) (model.Membership, bool, error) {
	if userID == "" || tenantID == "" {
		return model.Membership{}, false, nil
	}

	data, err := c.client.Get(ctx, c.key(tenantID, userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.Membership{}, false, nil
		}
		return model.Membership{}, false, fmt.Errorf("redis get: %w", err)
	}

	var m model.Membership
	if err := json.Unmarshal([]byte(data), &m); err != nil {
		return model.Membership{}, false, fmt.Errorf("unmarshal membership: %w", err)
	}
	return m, true, nil
}

// Set stores a membership for its (tenant, user) pair with the given TTL.
func (c *MembershipCache) Set(ctx context.Context, m model.Membership, ttl time.Duration) error {
	if m.TenantID == "" || m.UserID == "" {
		return errors.New("membership tenant and user IDs are required")
	}
	if ttl <= 0 {
		return nil // caching disabled
	}

	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal membership: %w", err)
	}
	return c.client.Set(ctx, c.key(m.TenantID, m.UserID), data, ttl).Err()
}

// InvalidateTenant drops every cached membership for the tenant. Called after
// any member role/activity mutation so the next guard check refetches.
func (c *MembershipCache) InvalidateTenant(ctx context.Context, tenantID string) error {
	if tenantID == "" {
		return nil
	}

	iter := c.client.Scan(ctx, 0, c.prefix+tenantID+":*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
