package grid

import (
	"fmt"
	"sort"

	"github.com/cory-johannsen/skirmish/internal/game/dice"
)

// POI is one occupied cell: a combatant id and where it stands.
type POI struct {
	Location Point
	ID       string
}

// Map places combatant ids on a fixed-size grid.
//
// Invariant: each id occupies at most one point and each point holds at most one id;
// occupants and positions are exact inverses of each other.
type Map struct {
	width     uint8
	height    uint8
	occupants map[Point]string
	positions map[string]Point
}

// NewMap creates an empty map with the given bounds.
//
// Postcondition: Bounds() == Point{width, height}; no point is occupied.
func NewMap(width, height uint8) *Map {
	return &Map{
		width:     width,
		height:    height,
		occupants: make(map[Point]string),
		positions: make(map[string]Point),
	}
}

// Width returns the map width.
func (m *Map) Width() uint8 { return m.width }

// Height returns the map height.
func (m *Map) Height() uint8 { return m.height }

// Bounds returns the largest in-bounds point.
func (m *Map) Bounds() Point { return Point{X: m.width, Y: m.height} }

// Contains reports whether p lies inside the map bounds on both axes.
func (m *Map) Contains(p Point) bool { return p.X <= m.width && p.Y <= m.height }

// Len returns the number of placed ids.
func (m *Map) Len() int { return len(m.positions) }

// Clone returns an independent copy of m.
//
// Postcondition: mutating the copy never affects m.
func (m *Map) Clone() *Map {
	c := &Map{
		width:     m.width,
		height:    m.height,
		occupants: make(map[Point]string, len(m.occupants)),
		positions: make(map[string]Point, len(m.positions)),
	}
	for p, id := range m.occupants {
		c.occupants[p] = id
		c.positions[id] = p
	}
	return c
}

// PlaceRandomly puts id on a random unoccupied point drawn from src.
// Sampling retries until a free point is found, so the call does not return on a
// full map; callers must ensure Len() < width*height beforehand.
//
// Precondition: src must be non-nil.
// Postcondition: on success id occupies exactly one in-bounds point.
func (m *Map) PlaceRandomly(src dice.Source, id string) (Point, error) {
	if _, ok := m.positions[id]; ok {
		return Point{}, fmt.Errorf("%w: %q", ErrUserAlreadyOnMap, id)
	}
	p := RandomPoint(src, m.Bounds())
	for m.IsOccupied(p) {
		p = RandomPoint(src, m.Bounds())
	}
	m.insert(id, p)
	return p, nil
}

// Place puts id at p.
//
// Postcondition: returns ErrDestinationOutOfBounds, ErrLocationOccupied or
// ErrUserAlreadyOnMap without modifying m, or places id at p.
func (m *Map) Place(id string, p Point) error {
	if !m.Contains(p) {
		return fmt.Errorf("%w: %s outside %s", ErrDestinationOutOfBounds, p, m.Bounds())
	}
	if m.IsOccupied(p) {
		return fmt.Errorf("%w: %s", ErrLocationOccupied, p)
	}
	if _, ok := m.positions[id]; ok {
		return fmt.Errorf("%w: %q", ErrUserAlreadyOnMap, id)
	}
	m.insert(id, p)
	return nil
}

// MoveTo relocates the occupant of origin to goal.
// Moving a point onto itself always succeeds without change.
//
// Postcondition: on error m is unchanged; on success origin is empty and goal
// holds the id that was at origin.
func (m *Map) MoveTo(origin, goal Point) error {
	if origin == goal {
		return nil
	}
	id, ok := m.occupants[origin]
	if !ok {
		return fmt.Errorf("%w: %s", ErrMapLocationEmpty, origin)
	}
	if !m.Contains(goal) {
		return fmt.Errorf("%w: %s outside %s", ErrDestinationOutOfBounds, goal, m.Bounds())
	}
	if m.IsOccupied(goal) {
		return fmt.Errorf("%w: %s -> %s", ErrDestinationOccupied, origin, goal)
	}
	delete(m.occupants, origin)
	m.insert(id, goal)
	return nil
}

// OccupiedNeighbors returns the ids standing on the neighbors of p, in
// Point.Neighbors order.
//
// Postcondition: returns nil when p is outside the map.
func (m *Map) OccupiedNeighbors(p Point) []string {
	if !m.Contains(p) {
		return nil
	}
	var ids []string
	for _, n := range p.Neighbors(MaxBounds) {
		if id, ok := m.occupants[n]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// Without returns a copy of m with id's entry removed. Unknown ids yield a plain copy.
func (m *Map) Without(id string) *Map {
	c := m.Clone()
	c.Remove(id)
	return c
}

// Remove deletes id's entry in place, freeing its cell.
//
// Postcondition: reports whether id was on the map.
func (m *Map) Remove(id string) bool {
	p, ok := m.positions[id]
	if !ok {
		return false
	}
	delete(m.positions, id)
	delete(m.occupants, p)
	return true
}

// PositionFor returns where id stands.
func (m *Map) PositionFor(id string) (Point, bool) {
	p, ok := m.positions[id]
	return p, ok
}

// Locate is PositionFor for callers that require the id to be placed.
//
// Postcondition: returns ErrMapIDUnknown if id was never placed or was removed.
func (m *Map) Locate(id string) (Point, error) {
	p, ok := m.positions[id]
	if !ok {
		return Point{}, fmt.Errorf("%w: %q", ErrMapIDUnknown, id)
	}
	return p, nil
}

// IsOccupied reports whether any id stands on p.
func (m *Map) IsOccupied(p Point) bool {
	_, ok := m.occupants[p]
	return ok
}

// OccupantAt returns the id standing on p.
func (m *Map) OccupantAt(p Point) (string, bool) {
	id, ok := m.occupants[p]
	return id, ok
}

// POIs returns every occupied cell sorted by location.
func (m *Map) POIs() []POI {
	out := make([]POI, 0, len(m.occupants))
	for p, id := range m.occupants {
		out = append(out, POI{Location: p, ID: id})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Location.Less(out[j].Location) })
	return out
}

func (m *Map) insert(id string, p Point) {
	m.occupants[p] = id
	m.positions[id] = p
}
