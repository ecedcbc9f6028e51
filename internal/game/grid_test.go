package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrid_PlaceRemoveAt(t *testing.T) {
	g := NewGrid(9, 5)

	require.NoError(t, g.Place(3, 2, 7))
	id, ok, err := g.At(3, 2)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 7, id)
	assert.Equal(t, 1, g.Occupied())

	require.NoError(t, g.Remove(3, 2))
	_, ok, err = g.At(3, 2)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, g.Occupied())
}

func TestGrid_RejectsOccupiedCell(t *testing.T) {
	g := NewGrid(9, 5)
	require.NoError(t, g.Place(0, 0, 1))

	err := g.Place(0, 0, 2)
	require.ErrorIs(t, err, ErrCellOccupied)

	id, _, _ := g.At(0, 0)
	assert.Equal(t, 1, id, "failed place must not overwrite")
}

func TestGrid_OutOfBounds(t *testing.T) {
	g := NewGrid(9, 5)
	cases := [][2]int{{-1, 0}, {0, -1}, {9, 0}, {0, 5}}
	for _, c := range cases {
		assert.ErrorIs(t, g.Place(c[0], c[1], 1), ErrOutOfBounds)
		assert.ErrorIs(t, g.Remove(c[0], c[1]), ErrOutOfBounds)
		_, _, err := g.At(c[0], c[1])
		assert.ErrorIs(t, err, ErrOutOfBounds)
	}
	assert.Equal(t, 0, g.Occupied())
}
