package cache

import (
	"context"
	"errors"
	"time"

	"github.com/edgelink/linkservice/internal/link"
	"github.com/redis/go-redis/v9"
)

// RedisCache is a Redis implementation of link.ProjectionCache. Expiration
// rides on Redis key TTLs, so dead links disappear from the read path
// without explicit deletion.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache creates a new Redis-backed projection cache.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client: client,
		prefix: "link:",
	}
}

func (r *RedisCache) Put(ctx context.Context, id link.Identifier, destination string, ttl time.Duration) error {
	return r.client.Set(ctx, r.prefix+string(id), destination, ttl).Err()
}

func (r *RedisCache) Get(ctx context.Context, id link.Identifier) (string, error) {
	destination, err := r.client.Get(ctx, r.prefix+string(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", link.ErrNotFound
		}

		return "", err
	}

	return destination, nil
}

func (r *RedisCache) Delete(ctx context.Context, id link.Identifier) error {
	return r.client.Del(ctx, r.prefix+string(id)).Err()
}

// Compile-time check.
var _ link.ProjectionCache = (*RedisCache)(nil)
