package store

import (
	"context"

	"github.com/edgelink/linkservice/internal/analytics"
	"go.uber.org/zap"
)

// Noop is a no-op implementation of analytics.Store that only logs events.
type Noop struct {
	logger *zap.Logger
}

// NewNoop creates a new no-op analytics store.
func NewNoop(logger *zap.Logger) *Noop {
	return &Noop{logger: logger}
}

func (n *Noop) SaveLinkCreated(_ context.Context, event *analytics.LinkCreatedEvent) error {
	n.logger.Info("link created event received",
		zap.String("identifier", event.Identifier),
		zap.String("destination", event.Destination),
		zap.Time("expiresAt", event.ExpiresAt),
		zap.String("clientAddr", event.ClientAddr),
	)

	return nil
}

func (n *Noop) SaveLinkAccessed(_ context.Context, event *analytics.LinkAccessedEvent) error {
	n.logger.Info("link accessed event received",
		zap.String("identifier", event.Identifier),
		zap.Bool("found", event.Found),
		zap.Time("accessedAt", event.AccessedAt),
		zap.String("clientAddr", event.ClientAddr),
	)

	return nil
}

func (n *Noop) SaveLinkUpdated(_ context.Context, event *analytics.LinkUpdatedEvent) error {
	n.logger.Info("link updated event received",
		zap.String("identifier", event.Identifier),
		zap.String("destination", event.Destination),
		zap.Time("updatedAt", event.UpdatedAt),
		zap.String("clientAddr", event.ClientAddr),
	)

	return nil
}

func (n *Noop) SaveLinkDeleted(_ context.Context, event *analytics.LinkDeletedEvent) error {
	n.logger.Info("link deleted event received",
		zap.String("identifier", event.Identifier),
		zap.Time("deletedAt", event.DeletedAt),
		zap.String("clientAddr", event.ClientAddr),
	)

	return nil
}

// Compile-time check.
var _ analytics.Store = (*Noop)(nil)
