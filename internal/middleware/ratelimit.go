package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/edgelink/linkservice/internal/ratelimit"
	"go.uber.org/zap"
)

// RateLimiter returns a huma middleware that enforces the rate limits an
// endpoint declares in its operation metadata, each as a sliding window over
// the store. Endpoints without limits, or with limiting disabled, pass
// through untouched.
func RateLimiter(api huma.API, store ratelimit.Store, logger *zap.Logger) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		cfg := ratelimit.GetEndpointConfig(ctx)
		if cfg == nil || cfg.Disabled || len(cfg.Limits) == 0 {
			next(ctx)

			return
		}

		path := ""
		if op := ctx.Operation(); op != nil {
			path = op.Path
		}

		key := clientKey(ctx)

		for _, limit := range cfg.Limits {
			// Client + route template + window identify one counter
			counter := fmt.Sprintf("%s:%s:%d", key, path, limit.Window.Milliseconds())
			limiter := ratelimit.NewSlidingWindowLimiter(store, limit.Max, limit.Window)

			allowed, err := limiter.Allow(ctx.Context(), counter)
			if err != nil {
				logger.Error("rate limit check failed",
					zap.String("path", path),
					zap.Error(err),
				)
				_ = huma.WriteErr(api, ctx, http.StatusInternalServerError, "internal server error", err)

				return
			}

			if !allowed {
				logger.Warn("rate limit exceeded",
					zap.String("path", path),
					zap.String("method", ctx.Method()),
					zap.Int64("max", limit.Max),
					zap.Duration("window", limit.Window),
					zap.String("client_addr", clientAddr(ctx)),
				)

				msg := fmt.Sprintf("rate limit exceeded: more than %d requests in %s",
					limit.Max, limit.Window)
				_ = huma.WriteErr(api, ctx, http.StatusTooManyRequests, msg)

				return
			}
		}

		next(ctx)
	}
}

// clientKey generates a rate limiting key from the client address and
// User-Agent.
func clientKey(ctx huma.Context) string {
	hash := sha256.Sum256([]byte(clientAddr(ctx) + "|" + ctx.Header("User-Agent")))

	return hex.EncodeToString(hash[:])
}
