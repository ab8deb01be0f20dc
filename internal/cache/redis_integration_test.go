//go:build integration

package cache_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/edgelink/linkservice/internal/cache"
	"github.com/edgelink/linkservice/internal/link"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getRedisAddr() string {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return addr
	}
	return "localhost:6379"
}

func TestRedisCacheIntegration(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr: getRedisAddr(),
	})
	defer client.Close()

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	c := cache.NewRedisCache(client)

	t.Run("put and get", func(t *testing.T) {
		id := link.Identifier("0rdtest1")
		defer client.Del(ctx, "link:"+string(id))

		require.NoError(t, c.Put(ctx, id, "https://example.com", time.Minute))

		got, err := c.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "https://example.com", got)
	})

	t.Run("overwrite existing entry", func(t *testing.T) {
		id := link.Identifier("0rdtest2")
		defer client.Del(ctx, "link:"+string(id))

		require.NoError(t, c.Put(ctx, id, "https://old.example.com", time.Minute))
		require.NoError(t, c.Put(ctx, id, "https://new.example.com", time.Minute))

		got, err := c.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "https://new.example.com", got)
	})

	t.Run("get missing identifier", func(t *testing.T) {
		_, err := c.Get(ctx, link.Identifier("0missing"))

		assert.ErrorIs(t, err, link.ErrNotFound)
	})

	t.Run("entry expires with its ttl", func(t *testing.T) {
		id := link.Identifier("0rdtest3")
		defer client.Del(ctx, "link:"+string(id))

		require.NoError(t, c.Put(ctx, id, "https://example.com", 50*time.Millisecond))

		time.Sleep(100 * time.Millisecond)

		_, err := c.Get(ctx, id)
		assert.ErrorIs(t, err, link.ErrNotFound)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		id := link.Identifier("0rdtest4")

		require.NoError(t, c.Put(ctx, id, "https://example.com", time.Minute))
		require.NoError(t, c.Delete(ctx, id))

		_, err := c.Get(ctx, id)
		assert.ErrorIs(t, err, link.ErrNotFound)

		assert.NoError(t, c.Delete(ctx, id))
	})
}
