package link_test

import (
	"testing"

	"github.com/edgelink/linkservice/internal/link"
	"github.com/edgelink/linkservice/internal/shard"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratorIdentifier(t *testing.T) {
	gen, err := link.NewGenerator()
	require.NoError(t, err)

	t.Run("has fixed length", func(t *testing.T) {
		id := gen.Identifier(0)

		assert.Len(t, string(id), link.IdentifierLength)
	})

	t.Run("prefix encodes the shard index", func(t *testing.T) {
		for index := 0; index < 3; index++ {
			id := gen.Identifier(index)

			assert.Equal(t, shard.Prefix(index), string(id)[0])
		}
	})

	t.Run("does not repeat", func(t *testing.T) {
		seen := make(map[link.Identifier]bool)

		for i := 0; i < 1000; i++ {
			id := gen.Identifier(0)

			assert.False(t, seen[id], "identifier %q repeated", id)
			seen[id] = true
		}
	})
}

func TestGeneratorKey(t *testing.T) {
	gen, err := link.NewGenerator()
	require.NoError(t, err)

	t.Run("is a valid uuid", func(t *testing.T) {
		key := gen.Key()

		_, err := uuid.Parse(string(key))
		assert.NoError(t, err)
	})

	t.Run("does not repeat", func(t *testing.T) {
		assert.NotEqual(t, gen.Key(), gen.Key())
	})
}
