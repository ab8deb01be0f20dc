package store

import (
	"context"
	"sync"
	"time"

	"github.com/edgelink/linkservice/internal/link"
)

// MemoryStore is an in-memory implementation of link.AuthoritativeStore for
// a single shard. A mutex serializes every operation on the shard's key
// space, which is the store's linearization guarantee.
type MemoryStore struct {
	mu    sync.Mutex
	links map[link.Identifier]link.Link
}

// NewMemoryStore creates a new in-memory shard store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		links: make(map[link.Identifier]link.Link),
	}
}

func (m *MemoryStore) Create(_ context.Context, l *link.Link) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.links[l.ID] = *l

	return nil
}

func (m *MemoryStore) Get(_ context.Context, id link.Identifier) (*link.Link, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.links[id]
	if !ok {
		return nil, link.ErrNotFound
	}

	return &l, nil
}

func (m *MemoryStore) Update(_ context.Context, id link.Identifier, destination string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.links[id]
	if !ok {
		return link.ErrNotFound
	}

	l.Destination = destination
	l.ExpiresAt = expiresAt
	m.links[id] = l

	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id link.Identifier) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.links, id)

	return nil
}

// Compile-time check.
var _ link.AuthoritativeStore = (*MemoryStore)(nil)
