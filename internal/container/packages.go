package container

import (
	"context"
	"fmt"
	"strings"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/edgelink/linkservice/internal/analytics"
	analyticsstore "github.com/edgelink/linkservice/internal/analytics/store"
	"github.com/edgelink/linkservice/internal/cache"
	"github.com/edgelink/linkservice/internal/link"
	"github.com/edgelink/linkservice/internal/messaging"
	"github.com/edgelink/linkservice/internal/shard"
	"github.com/edgelink/linkservice/internal/store"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
)

// LoggerPackage provides the application logger.
func LoggerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*zap.Logger, error) {
		opts := do.MustInvoke[*Options](i)

		if opts.LogFormat == "json" {
			return zap.NewProduction()
		}

		return zap.NewDevelopment()
	})
}

// RedisPackage provides the shared Redis client backing the read-path cache,
// the rate limiter, and the telemetry stream.
func RedisPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*redis.Client, error) {
		opts := do.MustInvoke[*Options](i)

		return redis.NewClient(&redis.Options{
			Addr: opts.RedisAddr,
		}), nil
	})
}

// shardPools holds one postgres pool per shard index, nil when the service
// runs on in-memory shards.
type shardPools struct {
	pools []*pgxpool.Pool
}

func (p *shardPools) Shutdown() error {
	for _, pool := range p.pools {
		pool.Close()
	}

	return nil
}

// PostgresPackage provides per-shard postgres pools from the DSN list.
func PostgresPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*shardPools, error) {
		opts := do.MustInvoke[*Options](i)

		if opts.PostgresDSN == "" {
			return &shardPools{}, nil
		}

		dsns := strings.Split(opts.PostgresDSN, ",")
		if len(dsns) != opts.ShardCount {
			return nil, fmt.Errorf("got %d postgres DSNs for %d shards", len(dsns), opts.ShardCount)
		}

		pools := make([]*pgxpool.Pool, 0, len(dsns))

		for _, dsn := range dsns {
			pool, err := pgxpool.New(context.Background(), strings.TrimSpace(dsn))
			if err != nil {
				for _, p := range pools {
					p.Close()
				}

				return nil, fmt.Errorf("connect shard pool: %w", err)
			}

			pools = append(pools, pool)
		}

		return &shardPools{pools: pools}, nil
	})
}

// StoragePackage provides the shard router, the per-shard authoritative
// stores, the read-path cache, the generator, and the lifecycle service.
func StoragePackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*shard.Router, error) {
		opts := do.MustInvoke[*Options](i)

		return shard.NewRouter(opts.ShardCount)
	})

	do.Provide(injector, func(i *do.Injector) (*link.Generator, error) {
		return link.NewGenerator()
	})

	do.Provide(injector, func(i *do.Injector) ([]link.AuthoritativeStore, error) {
		opts := do.MustInvoke[*Options](i)
		pools := do.MustInvoke[*shardPools](i)

		shards := make([]link.AuthoritativeStore, 0, opts.ShardCount)

		if len(pools.pools) > 0 {
			for _, pool := range pools.pools {
				shards = append(shards, store.NewPostgresStore(pool))
			}

			return shards, nil
		}

		for n := 0; n < opts.ShardCount; n++ {
			shards = append(shards, store.NewMemoryStore())
		}

		return shards, nil
	})

	do.Provide(injector, func(i *do.Injector) (link.ProjectionCache, error) {
		client := do.MustInvoke[*redis.Client](i)

		return cache.NewRedisCache(client), nil
	})

	do.Provide(injector, func(i *do.Injector) (*link.Service, error) {
		return link.NewService(
			do.MustInvoke[*shard.Router](i),
			do.MustInvoke[[]link.AuthoritativeStore](i),
			do.MustInvoke[link.ProjectionCache](i),
			do.MustInvoke[*link.Generator](i),
			do.MustInvoke[*zap.Logger](i),
		)
	})
}

// PublisherGroupPackage provides the telemetry publisher and the typed
// publish funcs the handlers consume.
func PublisherGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		client := do.MustInvoke[*redis.Client](i)

		publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{
			Client: client,
		}, watermill.NopLogger{})
		if err != nil {
			return nil, err
		}

		return messaging.NewPublisherGroup(publisher), nil
	})

	do.Provide(injector, func(i *do.Injector) (messaging.Publish[analytics.LinkCreatedEvent], error) {
		group := do.MustInvoke[*messaging.PublisherGroup](i)

		return messaging.NewPublishFunc[analytics.LinkCreatedEvent](group.Publisher(), analytics.TopicLinkCreated), nil
	})

	do.Provide(injector, func(i *do.Injector) (messaging.Publish[analytics.LinkAccessedEvent], error) {
		group := do.MustInvoke[*messaging.PublisherGroup](i)

		return messaging.NewPublishFunc[analytics.LinkAccessedEvent](group.Publisher(), analytics.TopicLinkAccessed), nil
	})

	do.Provide(injector, func(i *do.Injector) (messaging.Publish[analytics.LinkUpdatedEvent], error) {
		group := do.MustInvoke[*messaging.PublisherGroup](i)

		return messaging.NewPublishFunc[analytics.LinkUpdatedEvent](group.Publisher(), analytics.TopicLinkUpdated), nil
	})

	do.Provide(injector, func(i *do.Injector) (messaging.Publish[analytics.LinkDeletedEvent], error) {
		group := do.MustInvoke[*messaging.PublisherGroup](i)

		return messaging.NewPublishFunc[analytics.LinkDeletedEvent](group.Publisher(), analytics.TopicLinkDeleted), nil
	})
}

// ConsumerGroupPackage provides the telemetry consumer group used by the
// consumer binary.
func ConsumerGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		client := do.MustInvoke[*redis.Client](i)
		logger := do.MustInvoke[*zap.Logger](i)

		subscriber, err := redisstream.NewSubscriber(redisstream.SubscriberConfig{
			Client:        client,
			ConsumerGroup: "link-analytics",
		}, watermill.NopLogger{})
		if err != nil {
			return nil, err
		}

		eventStore := analyticsstore.NewNoop(logger)
		group := messaging.NewConsumerGroup(subscriber, logger)

		group.Add(messaging.NewConsumer(subscriber, analytics.TopicLinkCreated, eventStore.SaveLinkCreated, logger))
		group.Add(messaging.NewConsumer(subscriber, analytics.TopicLinkAccessed, eventStore.SaveLinkAccessed, logger))
		group.Add(messaging.NewConsumer(subscriber, analytics.TopicLinkUpdated, eventStore.SaveLinkUpdated, logger))
		group.Add(messaging.NewConsumer(subscriber, analytics.TopicLinkDeleted, eventStore.SaveLinkDeleted, logger))

		return group, nil
	})
}
