package link

import (
	"context"
	"time"
)

// AuthoritativeStore is the source-of-truth store for one shard's link
// records. Implementations must serialize operations on their own key space:
// concurrent mutations of the same identifier never interleave.
type AuthoritativeStore interface {
	// Create persists a new record keyed by its identifier.
	Create(ctx context.Context, l *Link) error

	// Get returns the record for an identifier, or ErrNotFound.
	Get(ctx context.Context, id Identifier) (*Link, error)

	// Update mutates destination and expiry in place. The record must
	// exist; identifier and secret key are immutable.
	Update(ctx context.Context, id Identifier, destination string, expiresAt time.Time) error

	// Delete removes the record. Deleting a missing identifier succeeds
	// silently; the lifecycle controller relies on this for idempotent
	// client-facing deletes.
	Delete(ctx context.Context, id Identifier) error
}

// ProjectionCache is the eventually-consistent identifier→destination index
// serving the anonymous read path. Entries expire passively after their TTL.
type ProjectionCache interface {
	// Put inserts or overwrites the projection with a time-to-live.
	Put(ctx context.Context, id Identifier, destination string, ttl time.Duration) error

	// Get returns the destination for an identifier, or ErrNotFound.
	Get(ctx context.Context, id Identifier) (string, error)

	// Delete removes the projection immediately.
	Delete(ctx context.Context, id Identifier) error
}
