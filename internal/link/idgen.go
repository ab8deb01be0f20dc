package link

import (
	"github.com/edgelink/linkservice/internal/shard"
	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
)

// IdentifierLength is the total length of a generated identifier: one shard
// prefix character plus the random suffix.
const IdentifierLength = 1 + suffixLength

const suffixLength = 7

// Generator produces identifiers and secret keys from a cryptographically
// strong random source. Safe for concurrent use.
type Generator struct {
	suffix func() string
}

// NewGenerator creates a new identifier and key generator.
func NewGenerator() (*Generator, error) {
	suffix, err := nanoid.Standard(suffixLength)
	if err != nil {
		return nil, err
	}

	return &Generator{suffix: suffix}, nil
}

// Identifier generates a short identifier owned by the given shard. The
// first character encodes the shard index so update and delete can re-derive
// the owning shard from the identifier alone.
func (g *Generator) Identifier(shardIndex int) Identifier {
	return Identifier(string(shard.Prefix(shardIndex)) + g.suffix())
}

// Key generates a per-link secret key.
func (g *Generator) Key() SecretKey {
	return SecretKey(uuid.NewString())
}
