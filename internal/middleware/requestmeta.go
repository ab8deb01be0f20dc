package middleware

import (
	"net"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/edgelink/linkservice/internal/handlers"
)

// RequestMeta is a middleware that adds the client address and user-agent
// to the request context for telemetry.
func RequestMeta(_ huma.API) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		meta := handlers.RequestMeta{
			ClientAddr: clientAddr(ctx),
			UserAgent:  ctx.Header("User-Agent"),
		}

		newCtx := handlers.ContextWithRequestMeta(ctx.Context(), meta)
		ctx = huma.WithContext(ctx, newCtx)

		next(ctx)
	}
}

// clientAddr extracts the client address from the request, considering proxies.
func clientAddr(ctx huma.Context) string {
	// X-Forwarded-For may carry a chain; the first entry is the client
	if xff := ctx.Header("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}

		return strings.TrimSpace(xff)
	}

	if xri := ctx.Header("X-Real-IP"); xri != "" {
		return xri
	}

	host := ctx.Host()

	addr, _, err := net.SplitHostPort(host)
	if err != nil {
		return host
	}

	return addr
}
