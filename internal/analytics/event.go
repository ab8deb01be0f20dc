package analytics

import "time"

// Topics for link lifecycle events.
const (
	TopicLinkCreated  = "link.created"
	TopicLinkAccessed = "link.accessed"
	TopicLinkUpdated  = "link.updated"
	TopicLinkDeleted  = "link.deleted"
)

// LinkCreatedEvent is emitted when a link is created.
type LinkCreatedEvent struct {
	Identifier  string    `json:"identifier"`
	Destination string    `json:"destination"`
	ExpiresAt   time.Time `json:"expiresAt"`
	CreatedAt   time.Time `json:"createdAt"`
	ClientAddr  string    `json:"clientAddr"`
}

// LinkAccessedEvent is emitted on every redirect lookup, hit or miss.
type LinkAccessedEvent struct {
	Identifier string    `json:"identifier"`
	Found      bool      `json:"found"`
	AccessedAt time.Time `json:"accessedAt"`
	ClientAddr string    `json:"clientAddr"`
}

// LinkUpdatedEvent is emitted when a link's destination or expiry changes.
type LinkUpdatedEvent struct {
	Identifier  string    `json:"identifier"`
	Destination string    `json:"destination"`
	ExpiresAt   time.Time `json:"expiresAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	ClientAddr  string    `json:"clientAddr"`
}

// LinkDeletedEvent is emitted when a link is deleted.
type LinkDeletedEvent struct {
	Identifier string    `json:"identifier"`
	DeletedAt  time.Time `json:"deletedAt"`
	ClientAddr string    `json:"clientAddr"`
}
