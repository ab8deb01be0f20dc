package link

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/edgelink/linkservice/internal/shard"
	"go.uber.org/zap"
)

// DefaultTTL is the expiration callers apply when a request carries no
// usable TTL. An explicit zero TTL is honored and yields an immediately
// expired link.
const DefaultTTL = 24 * time.Hour

// createAttempts bounds the identifier collision retry loop.
const createAttempts = 3

// Service orchestrates link lifecycle operations across the shard router,
// the per-shard authoritative stores, and the read-path cache.
//
// Ordering invariant: the authoritative write always precedes the cache
// write, so a crash between the two leaves the cache stale or missing, never
// ahead of the source of truth.
type Service struct {
	router *shard.Router
	shards []AuthoritativeStore
	cache  ProjectionCache
	gen    *Generator
	now    func() time.Time
	logger *zap.Logger
}

// NewService creates a lifecycle service. One authoritative store per shard
// index is required; the router's shard count must match.
func NewService(
	router *shard.Router,
	shards []AuthoritativeStore,
	cache ProjectionCache,
	gen *Generator,
	logger *zap.Logger,
) (*Service, error) {
	if len(shards) != router.Count() {
		return nil, fmt.Errorf("router addresses %d shards, got %d stores", router.Count(), len(shards))
	}

	return &Service{
		router: router,
		shards: shards,
		cache:  cache,
		gen:    gen,
		now:    time.Now,
		logger: logger,
	}, nil
}

// Create generates a new link for destination, persists it to the owning
// shard, then projects it into the cache. The returned record is the only
// place the secret key is ever exposed.
func (s *Service) Create(ctx context.Context, destination string, ttl time.Duration) (*Link, error) {
	if destination == "" {
		return nil, fmt.Errorf("%w: empty destination", ErrInvalidInput)
	}

	if ttl < 0 {
		ttl = 0
	}

	shardIndex := s.router.Route([]byte(destination))
	store := s.shards[shardIndex]

	id, err := s.freshIdentifier(ctx, store, shardIndex)
	if err != nil {
		return nil, err
	}

	l := &Link{
		ID:          id,
		Key:         s.gen.Key(),
		Destination: destination,
		ExpiresAt:   s.now().Add(ttl),
	}

	if err := store.Create(ctx, l); err != nil {
		return nil, fmt.Errorf("%w: create on shard %d: %w", ErrUnavailable, shardIndex, err)
	}

	if err := s.project(ctx, l); err != nil {
		return nil, err
	}

	s.logger.Debug("link created",
		zap.String("id", string(l.ID)),
		zap.Int("shard", shardIndex),
		zap.Time("expiresAt", l.ExpiresAt),
	)

	return l, nil
}

// freshIdentifier generates an identifier for the shard, retrying a bounded
// number of times when the generated value already has a record.
func (s *Service) freshIdentifier(ctx context.Context, store AuthoritativeStore, shardIndex int) (Identifier, error) {
	for attempt := 0; attempt < createAttempts; attempt++ {
		id := s.gen.Identifier(shardIndex)

		_, err := store.Get(ctx, id)
		if errors.Is(err, ErrNotFound) {
			return id, nil
		}

		if err != nil {
			return "", fmt.Errorf("%w: identifier check on shard %d: %w", ErrUnavailable, shardIndex, err)
		}

		s.logger.Warn("identifier collision, regenerating",
			zap.String("id", string(id)),
			zap.Int("shard", shardIndex),
		)
	}

	return "", fmt.Errorf("%w: could not generate a fresh identifier after %d attempts", ErrUnavailable, createAttempts)
}

// Lookup resolves an identifier to its destination using only the cache.
// Cache failures degrade to not-found: there is no authoritative fallback
// for anonymous reads.
func (s *Service) Lookup(ctx context.Context, id Identifier) (string, error) {
	destination, err := s.cache.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn("cache read failed, serving not found",
				zap.String("id", string(id)),
				zap.Error(err),
			)
		}

		return "", ErrNotFound
	}

	return destination, nil
}

// Update changes a link's destination and expiry. It requires the link's
// secret key and overwrites the cache projection so readers never see the
// old destination past the update, beyond the cache's own propagation window.
func (s *Service) Update(ctx context.Context, id Identifier, key SecretKey, destination string, ttl time.Duration) (*Link, error) {
	if destination == "" {
		return nil, fmt.Errorf("%w: empty destination", ErrInvalidInput)
	}

	if ttl < 0 {
		ttl = 0
	}

	shardIndex, err := s.router.ForIdentifier(string(id))
	if err != nil {
		return nil, ErrNotFound
	}

	store := s.shards[shardIndex]

	l, err := s.authorize(ctx, store, id, key, shardIndex)
	if err != nil {
		return nil, err
	}

	l.Destination = destination
	l.ExpiresAt = s.now().Add(ttl)

	if err := store.Update(ctx, id, l.Destination, l.ExpiresAt); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("%w: update on shard %d: %w", ErrUnavailable, shardIndex, err)
	}

	if err := s.project(ctx, l); err != nil {
		return nil, err
	}

	s.logger.Debug("link updated",
		zap.String("id", string(id)),
		zap.Int("shard", shardIndex),
	)

	return l, nil
}

// Delete removes a link from its shard and the cache. Deleting an identifier
// that does not exist succeeds, so retrying after a transient failure is
// always safe.
func (s *Service) Delete(ctx context.Context, id Identifier, key SecretKey) error {
	shardIndex, err := s.router.ForIdentifier(string(id))
	if err != nil {
		// Nothing can exist under an unroutable identifier.
		return nil
	}

	store := s.shards[shardIndex]

	_, err = s.authorize(ctx, store, id, key, shardIndex)
	if errors.Is(err, ErrNotFound) {
		return nil
	}

	if err != nil {
		return err
	}

	if err := store.Delete(ctx, id); err != nil {
		return fmt.Errorf("%w: delete on shard %d: %w", ErrUnavailable, shardIndex, err)
	}

	if err := s.cache.Delete(ctx, id); err != nil {
		return fmt.Errorf("%w: cache delete: %w", ErrUnavailable, err)
	}

	s.logger.Debug("link deleted",
		zap.String("id", string(id)),
		zap.Int("shard", shardIndex),
	)

	return nil
}

// project writes the identifier→destination projection with the record's
// remaining lifetime as TTL. An already expired record has its projection
// removed instead: the cache must never serve a dead link.
func (s *Service) project(ctx context.Context, l *Link) error {
	now := s.now()

	if l.Expired(now) {
		if err := s.cache.Delete(ctx, l.ID); err != nil {
			return fmt.Errorf("%w: cache delete: %w", ErrUnavailable, err)
		}

		return nil
	}

	if err := s.cache.Put(ctx, l.ID, l.Destination, l.TTL(now)); err != nil {
		return fmt.Errorf("%w: cache put: %w", ErrUnavailable, err)
	}

	return nil
}

// authorize fetches the record and checks the provided secret key against it.
func (s *Service) authorize(ctx context.Context, store AuthoritativeStore, id Identifier, key SecretKey, shardIndex int) (*Link, error) {
	l, err := store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("%w: get on shard %d: %w", ErrUnavailable, shardIndex, err)
	}

	if key == "" || key != l.Key {
		return nil, ErrUnauthorized
	}

	return l, nil
}
