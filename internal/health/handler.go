package health

import (
	"context"
	"fmt"

	"github.com/danielgtaylor/huma/v2"
	"github.com/redis/go-redis/v9"
)

// Checker defines the interface for checking a dependency's health.
type Checker interface {
	Ping(ctx context.Context) error
}

// RedisChecker adapts redis.Client to the Checker interface.
type RedisChecker struct {
	client *redis.Client
}

// NewRedisChecker creates a new Redis health checker.
func NewRedisChecker(client *redis.Client) *RedisChecker {
	return &RedisChecker{client: client}
}

// Ping checks Redis connectivity.
func (r *RedisChecker) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Handler handles health check operations.
type Handler struct {
	cache  Checker
	shards []Checker
}

// NewHandler creates a new health handler. One shard checker per
// authoritative shard, in shard order.
func NewHandler(cache Checker, shards []Checker) *Handler {
	return &Handler{cache: cache, shards: shards}
}

// Response is the response for the health check endpoint.
type Response struct {
	Body struct {
		Status string   `json:"status"`
		Cache  string   `json:"cache"`
		Shards []string `json:"shards,omitempty"`
	}
}

// Check reports the health of the cache and each authoritative shard.
func (h *Handler) Check(ctx context.Context, _ *struct{}) (*Response, error) {
	resp := &Response{}
	resp.Body.Status = "ok"

	if err := h.cache.Ping(ctx); err != nil {
		resp.Body.Cache = "unhealthy"
		resp.Body.Status = "degraded"
	} else {
		resp.Body.Cache = "healthy"
	}

	for i, shard := range h.shards {
		if err := shard.Ping(ctx); err != nil {
			resp.Body.Shards = append(resp.Body.Shards, fmt.Sprintf("shard %d: unhealthy", i))
			resp.Body.Status = "degraded"
		} else {
			resp.Body.Shards = append(resp.Body.Shards, fmt.Sprintf("shard %d: healthy", i))
		}
	}

	return resp, nil
}

// RegisterRoutes registers health check routes.
func RegisterRoutes(api huma.API, h *Handler) {
	huma.Get(api, "/health", h.Check)
}
