package link

import "time"

// Identifier is the public short token for a link.
type Identifier string

// SecretKey is the per-link credential required to mutate or delete it.
// It is returned exactly once, in the create response.
type SecretKey string

// Link is the authoritative record for a single short link.
type Link struct {
	ID          Identifier
	Key         SecretKey
	Destination string
	ExpiresAt   time.Time
}

// Expired reports whether the link's expiry has passed.
func (l *Link) Expired(now time.Time) bool {
	return !l.ExpiresAt.After(now)
}

// TTL returns the remaining lifetime of the link, zero if already expired.
func (l *Link) TTL(now time.Time) time.Duration {
	if l.Expired(now) {
		return 0
	}

	return l.ExpiresAt.Sub(now)
}
