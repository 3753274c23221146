package testutil

// Hand-written in-memory doubles for the console's Redis-backed ports.
// These are lightweight and suitable for unit tests without a live Redis.

import (
	"context"
	"strings"
	"sync"
	"time"

	domainauth "github.com/postika/console/internal/domain/auth"
	"github.com/postika/console/internal/domain/model"
	"github.com/postika/console/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.SessionStore    = (*MemorySessionStore)(nil)
	_ ports.MembershipCache = (*MemoryMembershipCache)(nil)
)

// MemorySessionStore is an in-memory ports.SessionStore. It honors session
// expiry the same way the Redis adapter does, including returning
// ports.ErrSessionNotFound so callers can be tested against the real sentinel.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]domainauth.Session

	// Saves counts successful Save calls for asserting write traffic.
	Saves int

	// Optional failure injection.
	SaveErr error
	GetErr  error
}

// NewMemorySessionStore creates an empty MemorySessionStore.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]domainauth.Session)}
}

func (s *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Saves++
	s.sessions[sess.ID] = sess
	return nil
}

func (s *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	if s.GetErr != nil {
		return domainauth.Session{}, s.GetErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok || time.Now().After(sess.ExpiresAt) {
		delete(s.sessions, id)
		return domainauth.Session{}, ports.ErrSessionNotFound
	}
	return sess, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Len reports how many sessions are currently stored, expired ones included.
func (s *MemorySessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// MemoryMembershipCache is an in-memory ports.MembershipCache with real TTL
// semantics so cache-expiry behavior can be unit tested.
type MemoryMembershipCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry

	// Counters for asserting cache traffic.
	Hits   int
	Misses int
	Sets   int

	// Optional failure injection.
	GetErr error
	SetErr error
}

type cacheEntry struct {
	membership model.Membership
	expiresAt  time.Time
}

// NewMemoryMembershipCache creates an empty MemoryMembershipCache.
func NewMemoryMembershipCache() *MemoryMembershipCache {
	return &MemoryMembershipCache{entries: make(map[string]cacheEntry)}
}

func membershipKey(tenantID, userID string) string {
	return tenantID + ":" + userID
}

func (c *MemoryMembershipCache) Get(_ context.Context, userID, tenantID string) (model.Membership, bool, error) {
	if c.GetErr != nil {
		return model.Membership{}, false, c.GetErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[membershipKey(tenantID, userID)]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(c.entries, membershipKey(tenantID, userID))
		c.Misses++
		return model.Membership{}, false, nil
	}
	c.Hits++
	return entry.membership, true, nil
}

func (c *MemoryMembershipCache) Set(_ context.Context, m model.Membership, ttl time.Duration) error {
	if c.SetErr != nil {
		return c.SetErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Sets++
	c.entries[membershipKey(m.TenantID, m.UserID)] = cacheEntry{
		membership: m,
		expiresAt:  time.Now().Add(ttl),
	}
	return nil
}

func (c *MemoryMembershipCache) InvalidateTenant(_ context.Context, tenantID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if strings.HasPrefix(key, tenantID+":") {
			delete(c.entries, key)
		}
	}
	return nil
}

// Len reports how many cache entries exist, expired ones included.
func (c *MemoryMembershipCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
