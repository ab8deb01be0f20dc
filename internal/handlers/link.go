package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/edgelink/linkservice/internal/analytics"
	"github.com/edgelink/linkservice/internal/link"
	"github.com/edgelink/linkservice/internal/messaging"
	"go.uber.org/zap"
)

// LinkHandler handles link lifecycle operations.
type LinkHandler struct {
	service         *link.Service
	publishCreated  messaging.Publish[analytics.LinkCreatedEvent]
	publishAccessed messaging.Publish[analytics.LinkAccessedEvent]
	publishUpdated  messaging.Publish[analytics.LinkUpdatedEvent]
	publishDeleted  messaging.Publish[analytics.LinkDeletedEvent]
	logger          *zap.Logger
}

// NewLinkHandler creates a new link handler.
func NewLinkHandler(
	service *link.Service,
	publishCreated messaging.Publish[analytics.LinkCreatedEvent],
	publishAccessed messaging.Publish[analytics.LinkAccessedEvent],
	publishUpdated messaging.Publish[analytics.LinkUpdatedEvent],
	publishDeleted messaging.Publish[analytics.LinkDeletedEvent],
	logger *zap.Logger,
) *LinkHandler {
	return &LinkHandler{
		service:         service,
		publishCreated:  publishCreated,
		publishAccessed: publishAccessed,
		publishUpdated:  publishUpdated,
		publishDeleted:  publishDeleted,
		logger:          logger,
	}
}

func (h *LinkHandler) CreateLink(ctx context.Context, req *CreateLinkRequest) (*CreateLinkResponse, error) {
	l, err := h.service.Create(ctx, req.Body.Destination, resolveTTL(req.Body.TTLSeconds))
	if err != nil {
		return nil, mapServiceError(err)
	}

	meta := RequestMetaFromContext(ctx)
	event := &analytics.LinkCreatedEvent{
		Identifier:  string(l.ID),
		Destination: l.Destination,
		ExpiresAt:   l.ExpiresAt,
		CreatedAt:   time.Now(),
		ClientAddr:  meta.ClientAddr,
	}

	if err := h.publishCreated(event); err != nil {
		h.logger.Error("failed to publish link created event",
			zap.String("identifier", event.Identifier),
			zap.Error(err),
		)
	}

	resp := &CreateLinkResponse{}
	resp.Body.Identifier = string(l.ID)
	resp.Body.SecretKey = string(l.Key)
	resp.Body.Destination = l.Destination
	resp.Body.ExpiresAt = l.ExpiresAt.UnixMilli()

	return resp, nil
}

func (h *LinkHandler) RedirectToLink(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	destination, err := h.service.Lookup(ctx, link.Identifier(req.Identifier))
	found := err == nil

	meta := RequestMetaFromContext(ctx)
	event := &analytics.LinkAccessedEvent{
		Identifier: req.Identifier,
		Found:      found,
		AccessedAt: time.Now(),
		ClientAddr: meta.ClientAddr,
	}

	if pubErr := h.publishAccessed(event); pubErr != nil {
		h.logger.Error("failed to publish link accessed event",
			zap.String("identifier", event.Identifier),
			zap.Error(pubErr),
		)
	}

	if err != nil {
		return nil, huma.Error404NotFound("link not found")
	}

	resp := &RedirectResponse{
		Status: http.StatusMovedPermanently,
	}
	resp.Headers.Location = destination

	return resp, nil
}

func (h *LinkHandler) UpdateLink(ctx context.Context, req *UpdateLinkRequest) (*UpdateLinkResponse, error) {
	l, err := h.service.Update(ctx,
		link.Identifier(req.Identifier),
		link.SecretKey(req.Body.Key),
		req.Body.Destination,
		resolveTTL(req.Body.TTLSeconds),
	)
	if err != nil {
		return nil, mapServiceError(err)
	}

	meta := RequestMetaFromContext(ctx)
	event := &analytics.LinkUpdatedEvent{
		Identifier:  string(l.ID),
		Destination: l.Destination,
		ExpiresAt:   l.ExpiresAt,
		UpdatedAt:   time.Now(),
		ClientAddr:  meta.ClientAddr,
	}

	if err := h.publishUpdated(event); err != nil {
		h.logger.Error("failed to publish link updated event",
			zap.String("identifier", event.Identifier),
			zap.Error(err),
		)
	}

	resp := &UpdateLinkResponse{}
	resp.Body.Identifier = string(l.ID)
	resp.Body.Destination = l.Destination
	resp.Body.ExpiresAt = l.ExpiresAt.UnixMilli()

	return resp, nil
}

func (h *LinkHandler) DeleteLink(ctx context.Context, req *DeleteLinkRequest) (*DeleteLinkResponse, error) {
	err := h.service.Delete(ctx, link.Identifier(req.Identifier), link.SecretKey(req.Key))
	if err != nil {
		return nil, mapServiceError(err)
	}

	meta := RequestMetaFromContext(ctx)
	event := &analytics.LinkDeletedEvent{
		Identifier: req.Identifier,
		DeletedAt:  time.Now(),
		ClientAddr: meta.ClientAddr,
	}

	if err := h.publishDeleted(event); err != nil {
		h.logger.Error("failed to publish link deleted event",
			zap.String("identifier", event.Identifier),
			zap.Error(err),
		)
	}

	resp := &DeleteLinkResponse{}
	resp.Body.Identifier = req.Identifier

	return resp, nil
}

// resolveTTL applies the default expiration when the request carries no TTL.
// An explicit zero is honored: it creates an already-expired link.
func resolveTTL(seconds *int64) time.Duration {
	if seconds == nil {
		return link.DefaultTTL
	}

	return time.Duration(*seconds) * time.Second
}

// mapServiceError translates domain errors to HTTP status errors.
func mapServiceError(err error) error {
	switch {
	case errors.Is(err, link.ErrInvalidInput):
		return huma.Error400BadRequest(err.Error())
	case errors.Is(err, link.ErrNotFound):
		return huma.Error404NotFound("link not found")
	case errors.Is(err, link.ErrUnauthorized):
		return huma.Error401Unauthorized("not authorized")
	case errors.Is(err, link.ErrUnavailable):
		return huma.Error503ServiceUnavailable("temporarily unavailable, retry the request")
	default:
		return huma.Error500InternalServerError("internal error")
	}
}
