package shard

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

// MaxShards bounds the shard count to what a single identifier prefix
// character can encode.
const MaxShards = len(prefixAlphabet)

const prefixAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// Router deterministically maps routing input to a shard index.
// The shard count is fixed at construction; the router holds no other
// state and performs no I/O.
type Router struct {
	count int
}

// NewRouter creates a router over count shards.
func NewRouter(count int) (*Router, error) {
	if count < 1 || count > MaxShards {
		return nil, fmt.Errorf("shard count must be in [1, %d], got %d", MaxShards, count)
	}

	return &Router{count: count}, nil
}

// Count returns the number of shards the router addresses.
func (r *Router) Count() int {
	return r.count
}

// Route returns the shard index for the given input. The same input always
// yields the same index for a fixed shard count, so callers can re-derive a
// link's shard without a lookup table.
func (r *Router) Route(input []byte) int {
	sum := sha256.Sum256(input)

	return int(binary.BigEndian.Uint32(sum[:4]) % uint32(r.count))
}

// ForIdentifier recovers the owning shard index from an identifier's prefix
// character. It fails if the identifier is empty or its prefix does not name
// a shard this router addresses.
func (r *Router) ForIdentifier(id string) (int, error) {
	if id == "" {
		return 0, fmt.Errorf("empty identifier")
	}

	index, ok := parseIndex(id[0])
	if !ok || index >= r.count {
		return 0, fmt.Errorf("identifier %q has no valid shard prefix", id)
	}

	return index, nil
}

// Prefix returns the identifier prefix character encoding a shard index.
func Prefix(index int) byte {
	return prefixAlphabet[index]
}

func parseIndex(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10, true
	default:
		return 0, false
	}
}
