package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/testing/suite"
)

func TestMoveBook_Store(t *testing.T) {
	ctx, st := suite.New(t)

	book := NewMoveBook(st.Storage)

	// Given: a position and the move chosen for it
	key := "X........"
	pos := entity.Position{Column: 1, Row: 1}

	// When: Store is called
	err := book.Store(ctx, key, pos)

	// Then: no error should be returned, and the entry is kept under the book prefix
	require.NoError(t, err)

	raw, err := st.Storage.Get(ctx, "book:"+key).Result()
	require.NoError(t, err)
	assert.JSONEq(t, `{"column":1,"row":1}`, raw)
}

func TestMoveBook_Lookup(t *testing.T) {
	t.Run("Lookup_Hit", func(t *testing.T) {
		ctx, st := suite.New(t)

		book := NewMoveBook(st.Storage)

		// Given: a stored entry
		key := "XX.OO...."
		pos := entity.Position{Column: 2, Row: 0}
		require.NoError(t, book.Store(ctx, key, pos))

		// When: Lookup is called with the same key
		found, ok, err := book.Lookup(ctx, key)

		// Then: the stored move is returned
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, pos, found)
	})

	t.Run("Lookup_Miss", func(t *testing.T) {
		ctx, st := suite.New(t)

		book := NewMoveBook(st.Storage)

		// When: Lookup is called for an unknown position
		found, ok, err := book.Lookup(ctx, ".........")

		// Then: a miss is reported without an error
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, entity.Position{}, found)
	})

	t.Run("Lookup_CorruptEntry", func(t *testing.T) {
		ctx, st := suite.New(t)

		book := NewMoveBook(st.Storage)

		// Given: an entry that is not a position
		require.NoError(t, st.Storage.Set(ctx, "book:X........", "not json", 0).Err())

		// When: Lookup is called
		_, ok, err := book.Lookup(ctx, "X........")

		// Then: the error is surfaced
		require.Error(t, err)
		assert.False(t, ok)
	})
}
