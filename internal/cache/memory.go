package cache

import (
	"context"
	"sync"
	"time"

	"github.com/edgelink/linkservice/internal/link"
)

type entry struct {
	destination string
	deadline    time.Time
}

// MemoryCache is an in-memory implementation of link.ProjectionCache with
// passive per-entry expiration. Used in tests and single-process dev mode.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[link.Identifier]entry
	now     func() time.Time
}

// NewMemoryCache creates a new in-memory projection cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[link.Identifier]entry),
		now:     time.Now,
	}
}

func (c *MemoryCache) Put(_ context.Context, id link.Identifier, destination string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[id] = entry{
		destination: destination,
		deadline:    c.now().Add(ttl),
	}

	return nil
}

func (c *MemoryCache) Get(_ context.Context, id link.Identifier) (string, error) {
	c.mu.RLock()
	e, ok := c.entries[id]
	c.mu.RUnlock()

	if !ok {
		return "", link.ErrNotFound
	}

	if !e.deadline.After(c.now()) {
		// Expired entries evaporate lazily on read.
		c.mu.Lock()
		if cur, ok := c.entries[id]; ok && cur.deadline == e.deadline {
			delete(c.entries, id)
		}
		c.mu.Unlock()

		return "", link.ErrNotFound
	}

	return e.destination, nil
}

func (c *MemoryCache) Delete(_ context.Context, id link.Identifier) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, id)

	return nil
}

// Compile-time check.
var _ link.ProjectionCache = (*MemoryCache)(nil)
