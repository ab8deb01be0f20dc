package analytics

import "context"

// Store defines the interface for persisting link telemetry events.
type Store interface {
	SaveLinkCreated(ctx context.Context, event *LinkCreatedEvent) error
	SaveLinkAccessed(ctx context.Context, event *LinkAccessedEvent) error
	SaveLinkUpdated(ctx context.Context, event *LinkUpdatedEvent) error
	SaveLinkDeleted(ctx context.Context, event *LinkDeletedEvent) error
}
