package quoridor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/quoridor-backend/internal/entity"
)

func TestShortestDistance(t *testing.T) {
	t.Run("open board", func(t *testing.T) {
		index := NewWallIndex(nil)

		// Then: a pawn at the start is 8 rows from its goal
		assert.Equal(t, 8, ShortestDistance(entity.Position{Row: 8, Col: 4}, 0, index))
		assert.Equal(t, 8, ShortestDistance(entity.Position{Row: 0, Col: 4}, 8, index))

		// Then: standing on the goal row is distance zero
		assert.Equal(t, 0, ShortestDistance(entity.Position{Row: 0, Col: 7}, 0, index))
	})

	t.Run("walls force a detour", func(t *testing.T) {
		// Given: a wall directly above the pawn
		index := NewWallIndex([]entity.Wall{{Row: 7, Col: 4, Orientation: entity.OrientationHorizontal}})

		// Then: the pawn must step around it
		assert.Equal(t, 9, ShortestDistance(entity.Position{Row: 8, Col: 4}, 0, index))
	})

	t.Run("sealed pawn is unreachable", func(t *testing.T) {
		// Given: walls boxing in the bottom-left corner cells (8,0) and (8,1)
		index := NewWallIndex([]entity.Wall{
			{Row: 7, Col: 0, Orientation: entity.OrientationHorizontal},
			{Row: 7, Col: 1, Orientation: entity.OrientationVertical},
		})

		require.Equal(t, Unreachable, ShortestDistance(entity.Position{Row: 8, Col: 0}, 0, index))
		assert.False(t, Reachable(entity.Position{Row: 8, Col: 0}, 0, index))

		// Then: cells outside the box are unaffected
		assert.True(t, Reachable(entity.Position{Row: 8, Col: 2}, 0, index))
	})

	t.Run("deterministic", func(t *testing.T) {
		// Given: an identical configuration queried repeatedly
		walls := []entity.Wall{
			{Row: 4, Col: 3, Orientation: entity.OrientationHorizontal},
			{Row: 2, Col: 5, Orientation: entity.OrientationVertical},
		}

		first := ShortestDistance(entity.Position{Row: 8, Col: 4}, 0, NewWallIndex(walls))
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, ShortestDistance(entity.Position{Row: 8, Col: 4}, 0, NewWallIndex(walls)))
		}
	})
}

func TestNeighbors(t *testing.T) {
	index := NewWallIndex(nil)

	t.Run("fixed order up right down left", func(t *testing.T) {
		neighbors := Neighbors(entity.Position{Row: 4, Col: 4}, index)

		require.Equal(t, []entity.Position{
			{Row: 3, Col: 4},
			{Row: 4, Col: 5},
			{Row: 5, Col: 4},
			{Row: 4, Col: 3},
		}, neighbors)
	})

	t.Run("corner cell has two neighbors", func(t *testing.T) {
		neighbors := Neighbors(entity.Position{Row: 0, Col: 0}, index)

		require.Equal(t, []entity.Position{
			{Row: 0, Col: 1},
			{Row: 1, Col: 0},
		}, neighbors)
	})

	t.Run("walls filter neighbors", func(t *testing.T) {
		blocked := NewWallIndex([]entity.Wall{{Row: 3, Col: 4, Orientation: entity.OrientationHorizontal}})

		neighbors := Neighbors(entity.Position{Row: 4, Col: 4}, blocked)

		assert.NotContains(t, neighbors, entity.Position{Row: 3, Col: 4})
		assert.Len(t, neighbors, 3)
	})
}
