package grid_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/grid"
)

// TestMap_MoveTo_VacatesOrigin verifies the origin is free after a move.
func TestMap_MoveTo_VacatesOrigin(t *testing.T) {
	m := grid.NewMap(10, 10)
	require.NoError(t, m.Place("value", grid.NewPoint(1, 1)))

	require.NoError(t, m.MoveTo(grid.NewPoint(1, 1), grid.NewPoint(2, 2)))

	assert.False(t, m.IsOccupied(grid.NewPoint(1, 1)))
	pos, ok := m.PositionFor("value")
	require.True(t, ok)
	assert.Equal(t, grid.NewPoint(2, 2), pos)
}

// TestMap_MoveTo_SamePointIsNoop verifies moving a point onto itself always succeeds,
// even when nobody stands there.
func TestMap_MoveTo_SamePointIsNoop(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		m := grid.NewMap(10, 10)
		p := drawPoint(rt, "p")
		assert.NoError(rt, m.MoveTo(p, p))
		assert.Zero(rt, m.Len())
	})
}

func TestMap_MoveTo_EmptyOrigin(t *testing.T) {
	m := grid.NewMap(10, 10)
	err := m.MoveTo(grid.NewPoint(1, 1), grid.NewPoint(2, 2))
	assert.ErrorIs(t, err, grid.ErrMapLocationEmpty)
}

// TestMap_MoveTo_OutOfBounds verifies any goal beyond (width, height) fails.
func TestMap_MoveTo_OutOfBounds(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		w := rapid.Uint8Range(1, 200).Draw(rt, "w")
		h := rapid.Uint8Range(1, 200).Draw(rt, "h")
		m := grid.NewMap(w, h)
		require.NoError(rt, m.Place("a", grid.NewPoint(0, 0)))

		var goal grid.Point
		if rapid.Bool().Draw(rt, "xAxis") {
			goal = grid.NewPoint(rapid.Uint8Range(w+1, 255).Draw(rt, "x"), rapid.Uint8Range(0, h).Draw(rt, "y"))
		} else {
			goal = grid.NewPoint(rapid.Uint8Range(0, w).Draw(rt, "x"), rapid.Uint8Range(h+1, 255).Draw(rt, "y"))
		}
		err := m.MoveTo(grid.NewPoint(0, 0), goal)
		assert.ErrorIs(rt, err, grid.ErrDestinationOutOfBounds)
		assert.True(rt, m.IsOccupied(grid.NewPoint(0, 0)))
	})
}

func TestMap_MoveTo_Occupied(t *testing.T) {
	m := grid.NewMap(10, 10)
	require.NoError(t, m.Place("a", grid.NewPoint(1, 1)))
	require.NoError(t, m.Place("b", grid.NewPoint(1, 2)))

	err := m.MoveTo(grid.NewPoint(1, 1), grid.NewPoint(1, 2))
	assert.ErrorIs(t, err, grid.ErrDestinationOccupied)
	id, _ := m.OccupantAt(grid.NewPoint(1, 2))
	assert.Equal(t, "b", id)
}

func TestMap_Place_Errors(t *testing.T) {
	m := grid.NewMap(5, 5)
	require.NoError(t, m.Place("a", grid.NewPoint(1, 1)))

	assert.ErrorIs(t, m.Place("b", grid.NewPoint(1, 1)), grid.ErrLocationOccupied)
	assert.ErrorIs(t, m.Place("a", grid.NewPoint(2, 2)), grid.ErrUserAlreadyOnMap)
	assert.ErrorIs(t, m.Place("c", grid.NewPoint(6, 0)), grid.ErrDestinationOutOfBounds)
}

func TestMap_PlaceRandomly_RejectsDuplicate(t *testing.T) {
	m := grid.NewMap(10, 10)
	src := dice.NewSeededSource(3)
	_, err := m.PlaceRandomly(src, "a")
	require.NoError(t, err)
	_, err = m.PlaceRandomly(src, "a")
	assert.ErrorIs(t, err, grid.ErrUserAlreadyOnMap)
	assert.Equal(t, 1, m.Len())
}

// TestMap_PlaceRandomly_Distinct verifies random placement yields distinct in-bounds points
// whenever the roster fits on the map.
func TestMap_PlaceRandomly_Distinct(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		w := rapid.Uint8Range(1, 12).Draw(rt, "w")
		h := rapid.Uint8Range(1, 12).Draw(rt, "h")
		n := rapid.IntRange(1, int(w)*int(h)).Draw(rt, "n")
		src := dice.NewSeededSource(rapid.Uint64().Draw(rt, "seed"))
		m := grid.NewMap(w, h)

		seen := make(map[grid.Point]bool)
		for i := 0; i < n; i++ {
			p, err := m.PlaceRandomly(src, fmt.Sprintf("c%d", i))
			require.NoError(rt, err)
			assert.Less(rt, p.X, w)
			assert.Less(rt, p.Y, h)
			assert.False(rt, seen[p], "point %s placed twice", p)
			seen[p] = true
		}
		assert.Equal(rt, n, m.Len())
	})
}

func TestMap_OccupiedNeighbors(t *testing.T) {
	m := grid.NewMap(10, 10)
	require.NoError(t, m.Place("left", grid.NewPoint(4, 5)))
	require.NoError(t, m.Place("up", grid.NewPoint(5, 6)))
	require.NoError(t, m.Place("diag", grid.NewPoint(6, 6)))
	require.NoError(t, m.Place("self", grid.NewPoint(5, 5)))

	assert.Equal(t, []string{"left", "up"}, m.OccupiedNeighbors(grid.NewPoint(5, 5)))
	assert.Empty(t, m.OccupiedNeighbors(grid.NewPoint(11, 5)))
}

// TestMap_Without_LeavesReceiverIntact verifies Without is copy-on-write.
func TestMap_Without_LeavesReceiverIntact(t *testing.T) {
	m := grid.NewMap(10, 10)
	require.NoError(t, m.Place("a", grid.NewPoint(1, 1)))
	require.NoError(t, m.Place("b", grid.NewPoint(2, 2)))

	w := m.Without("a")
	assert.False(t, w.IsOccupied(grid.NewPoint(1, 1)))
	assert.True(t, m.IsOccupied(grid.NewPoint(1, 1)))
	assert.Equal(t, 1, w.Len())

	same := m.Without("ghost")
	assert.Equal(t, m.POIs(), same.POIs())
}

func TestMap_Remove(t *testing.T) {
	m := grid.NewMap(10, 10)
	require.NoError(t, m.Place("a", grid.NewPoint(1, 1)))
	assert.True(t, m.Remove("a"))
	assert.False(t, m.Remove("a"))
	_, err := m.Locate("a")
	assert.ErrorIs(t, err, grid.ErrMapIDUnknown)
}

func TestMap_POIs_Sorted(t *testing.T) {
	m := grid.NewMap(10, 10)
	require.NoError(t, m.Place("c", grid.NewPoint(3, 0)))
	require.NoError(t, m.Place("a", grid.NewPoint(0, 9)))
	require.NoError(t, m.Place("b", grid.NewPoint(0, 10)))

	assert.Equal(t, []grid.POI{
		{Location: grid.NewPoint(0, 9), ID: "a"},
		{Location: grid.NewPoint(0, 10), ID: "b"},
		{Location: grid.NewPoint(3, 0), ID: "c"},
	}, m.POIs())
}

// TestMap_Clone_Independent verifies mutations of a clone never leak into the source.
func TestMap_Clone_Independent(t *testing.T) {
	m := grid.NewMap(10, 10)
	require.NoError(t, m.Place("a", grid.NewPoint(1, 1)))
	c := m.Clone()
	require.NoError(t, c.MoveTo(grid.NewPoint(1, 1), grid.NewPoint(1, 2)))

	pos, _ := m.PositionFor("a")
	assert.Equal(t, grid.NewPoint(1, 1), pos)
	pos, _ = c.PositionFor("a")
	assert.Equal(t, grid.NewPoint(1, 2), pos)
}
