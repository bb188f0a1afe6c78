package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/laundrypos/backend/internal/domain/laundry"
)

// MemorySubscriptionCache is an in-process SubscriptionCache. Suitable for
// single-instance deployments and tests; entries expire lazily on read.
type MemorySubscriptionCache struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

type memoryEntry struct {
	state     laundry.SubscriptionState
	expiresAt time.Time
}

// NewMemorySubscriptionCache creates an in-memory cache with the given TTL.
func NewMemorySubscriptionCache(ttl time.Duration) *MemorySubscriptionCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &MemorySubscriptionCache{
		entries: make(map[uuid.UUID]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *MemorySubscriptionCache) Get(_ context.Context, tenantID uuid.UUID) (laundry.SubscriptionState, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[tenantID]
	c.mu.RUnlock()

	if !ok {
		return "", false, nil
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, tenantID)
		c.mu.Unlock()
		return "", false, nil
	}
	return entry.state, true, nil
}

func (c *MemorySubscriptionCache) Set(_ context.Context, tenantID uuid.UUID, state laundry.SubscriptionState) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[tenantID] = memoryEntry{
		state:     state,
		expiresAt: c.now().Add(c.ttl),
	}
	return nil
}

func (c *MemorySubscriptionCache) Invalidate(_ context.Context, tenantID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, tenantID)
	return nil
}

var _ SubscriptionCache = (*MemorySubscriptionCache)(nil)
