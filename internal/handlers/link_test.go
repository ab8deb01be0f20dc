package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/edgelink/linkservice/internal/analytics"
	"github.com/edgelink/linkservice/internal/cache"
	"github.com/edgelink/linkservice/internal/handlers"
	"github.com/edgelink/linkservice/internal/link"
	"github.com/edgelink/linkservice/internal/messaging"
	"github.com/edgelink/linkservice/internal/shard"
	"github.com/edgelink/linkservice/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testDestination = "https://example.com"

// noopPublish returns a publish function that always succeeds.
func noopPublish[T any]() messaging.Publish[T] {
	return func(_ *T) error { return nil }
}

// errorPublish returns a publish function that always fails.
func errorPublish[T any](err error) messaging.Publish[T] {
	return func(_ *T) error { return err }
}

func newTestService(t *testing.T) *link.Service {
	t.Helper()

	router, err := shard.NewRouter(3)
	require.NoError(t, err)

	gen, err := link.NewGenerator()
	require.NoError(t, err)

	service, err := link.NewService(router,
		[]link.AuthoritativeStore{
			store.NewMemoryStore(),
			store.NewMemoryStore(),
			store.NewMemoryStore(),
		},
		cache.NewMemoryCache(), gen, zap.NewNop())
	require.NoError(t, err)

	return service
}

func newTestHandler(t *testing.T) *handlers.LinkHandler {
	t.Helper()

	return handlers.NewLinkHandler(
		newTestService(t),
		noopPublish[analytics.LinkCreatedEvent](),
		noopPublish[analytics.LinkAccessedEvent](),
		noopPublish[analytics.LinkUpdatedEvent](),
		noopPublish[analytics.LinkDeletedEvent](),
		zap.NewNop(),
	)
}

func newTestHandlerWithPublishError(t *testing.T) *handlers.LinkHandler {
	t.Helper()

	errPublish := errors.New("publish error")

	return handlers.NewLinkHandler(
		newTestService(t),
		errorPublish[analytics.LinkCreatedEvent](errPublish),
		errorPublish[analytics.LinkAccessedEvent](errPublish),
		errorPublish[analytics.LinkUpdatedEvent](errPublish),
		errorPublish[analytics.LinkDeletedEvent](errPublish),
		zap.NewNop(),
	)
}

func createLink(t *testing.T, handler *handlers.LinkHandler, ttlSeconds *int64) *handlers.CreateLinkResponse {
	t.Helper()

	req := &handlers.CreateLinkRequest{}
	req.Body.Destination = testDestination
	req.Body.TTLSeconds = ttlSeconds

	resp, err := handler.CreateLink(context.Background(), req)
	require.NoError(t, err)

	return resp
}

func statusOf(t *testing.T, err error) int {
	t.Helper()

	var se huma.StatusError

	require.ErrorAs(t, err, &se)

	return se.GetStatus()
}

func int64Ptr(v int64) *int64 { return &v }

func TestCreateLink(t *testing.T) {
	t.Run("creates a link", func(t *testing.T) {
		handler := newTestHandler(t)

		resp := createLink(t, handler, int64Ptr(86400))

		assert.Len(t, resp.Body.Identifier, link.IdentifierLength)
		assert.Equal(t, testDestination, resp.Body.Destination)

		_, err := uuid.Parse(resp.Body.SecretKey)
		assert.NoError(t, err, "secret key should be a uuid")

		wantExpiry := time.Now().Add(86400 * time.Second).UnixMilli()
		assert.InDelta(t, wantExpiry, resp.Body.ExpiresAt, float64(time.Minute.Milliseconds()))
	})

	t.Run("applies the default ttl when omitted", func(t *testing.T) {
		handler := newTestHandler(t)

		resp := createLink(t, handler, nil)

		wantExpiry := time.Now().Add(link.DefaultTTL).UnixMilli()
		assert.InDelta(t, wantExpiry, resp.Body.ExpiresAt, float64(time.Minute.Milliseconds()))
	})

	t.Run("rejects empty destination", func(t *testing.T) {
		handler := newTestHandler(t)

		req := &handlers.CreateLinkRequest{}

		_, err := handler.CreateLink(context.Background(), req)

		assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
	})

	t.Run("publish failure does not fail the request", func(t *testing.T) {
		handler := newTestHandlerWithPublishError(t)

		resp := createLink(t, handler, int64Ptr(3600))

		assert.NotEmpty(t, resp.Body.Identifier)
	})
}

func TestRedirectToLink(t *testing.T) {
	t.Run("redirects to the destination", func(t *testing.T) {
		handler := newTestHandler(t)
		created := createLink(t, handler, int64Ptr(3600))

		resp, err := handler.RedirectToLink(context.Background(),
			&handlers.RedirectRequest{Identifier: created.Body.Identifier})

		require.NoError(t, err)
		assert.Equal(t, http.StatusMovedPermanently, resp.Status)
		assert.Equal(t, testDestination, resp.Headers.Location)
	})

	t.Run("returns 404 for unknown identifier", func(t *testing.T) {
		handler := newTestHandler(t)

		_, err := handler.RedirectToLink(context.Background(),
			&handlers.RedirectRequest{Identifier: "0notreal"})

		assert.Equal(t, http.StatusNotFound, statusOf(t, err))
	})

	t.Run("returns 404 once the link has expired", func(t *testing.T) {
		handler := newTestHandler(t)
		created := createLink(t, handler, int64Ptr(0))

		_, err := handler.RedirectToLink(context.Background(),
			&handlers.RedirectRequest{Identifier: created.Body.Identifier})

		assert.Equal(t, http.StatusNotFound, statusOf(t, err))
	})

	t.Run("publish failure does not fail the redirect", func(t *testing.T) {
		handler := newTestHandlerWithPublishError(t)
		created := createLink(t, handler, int64Ptr(3600))

		resp, err := handler.RedirectToLink(context.Background(),
			&handlers.RedirectRequest{Identifier: created.Body.Identifier})

		require.NoError(t, err)
		assert.Equal(t, testDestination, resp.Headers.Location)
	})
}

func TestUpdateLink(t *testing.T) {
	t.Run("updates destination and expiry", func(t *testing.T) {
		handler := newTestHandler(t)
		created := createLink(t, handler, int64Ptr(3600))

		req := &handlers.UpdateLinkRequest{Identifier: created.Body.Identifier}
		req.Body.Key = created.Body.SecretKey
		req.Body.Destination = "https://example.org/new"
		req.Body.TTLSeconds = int64Ptr(7200)

		resp, err := handler.UpdateLink(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, created.Body.Identifier, resp.Body.Identifier)
		assert.Equal(t, "https://example.org/new", resp.Body.Destination)

		redirect, err := handler.RedirectToLink(context.Background(),
			&handlers.RedirectRequest{Identifier: created.Body.Identifier})
		require.NoError(t, err)
		assert.Equal(t, "https://example.org/new", redirect.Headers.Location)
	})

	t.Run("returns 401 for a wrong key", func(t *testing.T) {
		handler := newTestHandler(t)
		created := createLink(t, handler, int64Ptr(3600))

		req := &handlers.UpdateLinkRequest{Identifier: created.Body.Identifier}
		req.Body.Key = "wrong-key"
		req.Body.Destination = "https://example.org/new"

		_, err := handler.UpdateLink(context.Background(), req)

		assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
	})

	t.Run("returns 404 for unknown identifier", func(t *testing.T) {
		handler := newTestHandler(t)

		req := &handlers.UpdateLinkRequest{Identifier: "0notreal"}
		req.Body.Key = "any-key"
		req.Body.Destination = "https://example.org/new"

		_, err := handler.UpdateLink(context.Background(), req)

		assert.Equal(t, http.StatusNotFound, statusOf(t, err))
	})
}

func TestDeleteLink(t *testing.T) {
	t.Run("deletes with the correct key", func(t *testing.T) {
		handler := newTestHandler(t)
		created := createLink(t, handler, int64Ptr(3600))

		resp, err := handler.DeleteLink(context.Background(), &handlers.DeleteLinkRequest{
			Identifier: created.Body.Identifier,
			Key:        created.Body.SecretKey,
		})

		require.NoError(t, err)
		assert.Equal(t, created.Body.Identifier, resp.Body.Identifier)

		_, err = handler.RedirectToLink(context.Background(),
			&handlers.RedirectRequest{Identifier: created.Body.Identifier})
		assert.Equal(t, http.StatusNotFound, statusOf(t, err))
	})

	t.Run("returns 401 for a wrong key", func(t *testing.T) {
		handler := newTestHandler(t)
		created := createLink(t, handler, int64Ptr(3600))

		_, err := handler.DeleteLink(context.Background(), &handlers.DeleteLinkRequest{
			Identifier: created.Body.Identifier,
			Key:        "wrong-key",
		})

		assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))

		redirect, err := handler.RedirectToLink(context.Background(),
			&handlers.RedirectRequest{Identifier: created.Body.Identifier})
		require.NoError(t, err)
		assert.Equal(t, testDestination, redirect.Headers.Location)
	})

	t.Run("is idempotent", func(t *testing.T) {
		handler := newTestHandler(t)
		created := createLink(t, handler, int64Ptr(3600))

		req := &handlers.DeleteLinkRequest{
			Identifier: created.Body.Identifier,
			Key:        created.Body.SecretKey,
		}

		_, err := handler.DeleteLink(context.Background(), req)
		require.NoError(t, err)

		resp, err := handler.DeleteLink(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, created.Body.Identifier, resp.Body.Identifier)
	})

	t.Run("succeeds for an identifier that never existed", func(t *testing.T) {
		handler := newTestHandler(t)

		resp, err := handler.DeleteLink(context.Background(), &handlers.DeleteLinkRequest{
			Identifier: "0notreal",
			Key:        "any-key",
		})

		require.NoError(t, err)
		assert.Equal(t, "0notreal", resp.Body.Identifier)
	})
}
