package handlers

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/edgelink/linkservice/internal/ratelimit"
)

// RegisterRoutes registers all link routes with per-endpoint rate limits.
// Mutations get strict limits; the anonymous redirect path is sized for the
// dominant read traffic.
func RegisterRoutes(api huma.API, linkHandler *LinkHandler) {
	huma.Register(api, huma.Operation{
		Method:      http.MethodPost,
		Path:        "/links",
		Summary:     "Create link",
		Description: "Creates a short link and returns its secret key. The key is never retrievable again.",
		Tags:        []string{"Links"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 30},
					{Window: time.Hour, Max: 300},
				},
			},
		},
	}, linkHandler.CreateLink)

	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/{identifier}",
		Summary:     "Redirect to destination",
		Description: "Redirects to the destination URL for the identifier.",
		Tags:        []string{"Links"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 6000},
				},
			},
		},
	}, linkHandler.RedirectToLink)

	huma.Register(api, huma.Operation{
		Method:      http.MethodPut,
		Path:        "/links/{identifier}",
		Summary:     "Update link",
		Description: "Updates a link's destination and expiry. Requires the link's secret key.",
		Tags:        []string{"Links"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 30},
				},
			},
		},
	}, linkHandler.UpdateLink)

	huma.Register(api, huma.Operation{
		Method:      http.MethodDelete,
		Path:        "/links/{identifier}",
		Summary:     "Delete link",
		Description: "Deletes a link. Requires the link's secret key. Idempotent: deleting a missing link succeeds.",
		Tags:        []string{"Links"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 30},
				},
			},
		},
	}, linkHandler.DeleteLink)
}
