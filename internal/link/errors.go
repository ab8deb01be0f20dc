package link

import "errors"

var (
	// ErrNotFound indicates the identifier has no authoritative record.
	ErrNotFound = errors.New("link not found")
	// ErrUnauthorized indicates a missing or mismatched secret key.
	ErrUnauthorized = errors.New("not authorized")
	// ErrInvalidInput indicates a request that cannot be acted on, such as
	// an empty destination.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnavailable indicates a transient store or cache failure. The
	// caller may safely retry; no partial write has been acknowledged.
	ErrUnavailable = errors.New("store unavailable")
)
