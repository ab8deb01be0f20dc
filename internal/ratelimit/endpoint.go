package ratelimit

import (
	"time"

	"github.com/danielgtaylor/huma/v2"
)

// MetadataKey is the key used to store rate limit config in operation metadata.
const MetadataKey = "rateLimit"

// LimitConfig is a single window/max pair.
type LimitConfig struct {
	Window time.Duration
	Max    int64
}

// EndpointConfig defines per-endpoint rate limit configuration, attached to
// huma operations via the Metadata field.
type EndpointConfig struct {
	// Limits defines the rate limits for this endpoint. Each limit is
	// tracked independently per client and window.
	Limits []LimitConfig

	// Disabled skips rate limiting entirely for this endpoint.
	Disabled bool
}

// GetEndpointConfig extracts the endpoint config from the current
// operation's metadata, or nil when the endpoint carries none.
func GetEndpointConfig(ctx huma.Context) *EndpointConfig {
	op := ctx.Operation()
	if op == nil || op.Metadata == nil {
		return nil
	}

	switch cfg := op.Metadata[MetadataKey].(type) {
	case EndpointConfig:
		return &cfg
	case *EndpointConfig:
		return cfg
	default:
		return nil
	}
}
