package container

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/edgelink/linkservice/internal/analytics"
	"github.com/edgelink/linkservice/internal/handlers"
	"github.com/edgelink/linkservice/internal/health"
	"github.com/edgelink/linkservice/internal/link"
	"github.com/edgelink/linkservice/internal/messaging"
	"github.com/edgelink/linkservice/internal/middleware"
	"github.com/edgelink/linkservice/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
)

// HTTPPackage provides the router and API with all routes and middleware
// registered.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*chi.Mux, error) {
		return chi.NewMux(), nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		router := do.MustInvoke[*chi.Mux](i)
		logger := do.MustInvoke[*zap.Logger](i)
		redisClient := do.MustInvoke[*redis.Client](i)

		api := humachi.New(router, huma.DefaultConfig("Link Service", "1.0.0"))

		api.UseMiddleware(
			middleware.RequestMeta(api),
			middleware.RateLimiter(api, store.NewRateLimitRedisStore(redisClient), logger),
		)

		linkHandler := handlers.NewLinkHandler(
			do.MustInvoke[*link.Service](i),
			do.MustInvoke[messaging.Publish[analytics.LinkCreatedEvent]](i),
			do.MustInvoke[messaging.Publish[analytics.LinkAccessedEvent]](i),
			do.MustInvoke[messaging.Publish[analytics.LinkUpdatedEvent]](i),
			do.MustInvoke[messaging.Publish[analytics.LinkDeletedEvent]](i),
			logger,
		)

		handlers.RegisterRoutes(api, linkHandler)

		healthHandler := health.NewHandler(
			health.NewRedisChecker(redisClient),
			shardCheckers(i),
		)
		health.RegisterRoutes(api, healthHandler)

		return api, nil
	})
}

// shardCheckers returns one health checker per postgres shard pool. Memory
// shards have nothing to probe.
func shardCheckers(i *do.Injector) []health.Checker {
	pools := do.MustInvoke[*shardPools](i)

	checkers := make([]health.Checker, 0, len(pools.pools))
	for _, pool := range pools.pools {
		checkers = append(checkers, &poolChecker{pool: pool})
	}

	return checkers
}

type poolChecker struct {
	pool *pgxpool.Pool
}

func (p *poolChecker) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}
