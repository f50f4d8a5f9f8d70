// Package grid implements the bounded battle map: 8-bit points and the
// placement of combatant identities on them.
package grid

import (
	"fmt"
	"math"

	"github.com/cory-johannsen/skirmish/internal/game/dice"
)

// Point is an immutable map coordinate.
type Point struct {
	X uint8
	Y uint8
}

// MaxBounds is the largest representable point; use it where no map bounds apply.
var MaxBounds = Point{X: math.MaxUint8, Y: math.MaxUint8}

// NewPoint returns the point (x, y).
func NewPoint(x, y uint8) Point { return Point{X: x, Y: y} }

// String returns "(x,y)".
func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Less orders points by X, then Y.
func (p Point) Less(o Point) bool {
	if p.X != o.X {
		return p.X < o.X
	}
	return p.Y < o.Y
}

// DistanceTo returns the Euclidean distance between p and o.
//
// Postcondition: result >= 0 and DistanceTo is symmetric.
func (p Point) DistanceTo(o Point) float64 {
	dx := float64(int(p.X) - int(o.X))
	dy := float64(int(p.Y) - int(o.Y))
	return math.Sqrt(dx*dx + dy*dy)
}

// ManhattanTo returns |dx| + |dy| between p and o.
func (p Point) ManhattanTo(o Point) int {
	return absInt(int(p.X)-int(o.X)) + absInt(int(p.Y)-int(o.Y))
}

// IsNeighbor reports whether o is one axis-aligned step away from p.
func (p Point) IsNeighbor(o Point) bool { return p.ManhattanTo(o) == 1 }

// Closest returns the point in points nearest to p.
// A candidate at a distance less than or equal to the current best replaces it,
// so among exact ties the last one in iteration order wins.
//
// Postcondition: ok is false iff points is empty.
func (p Point) Closest(points []Point) (closest Point, ok bool) {
	best := math.Inf(1)
	for _, c := range points {
		if d := p.DistanceTo(c); d <= best {
			best = d
			closest = c
			ok = true
		}
	}
	return closest, ok
}

// Neighbors returns the up-to-4 axis-aligned neighbors of p that lie within
// [0, bounds] on both axes, in the order left, right, down, up.
// Pass MaxBounds for an unbounded plane.
//
// Postcondition: every returned point q satisfies p.IsNeighbor(q).
func (p Point) Neighbors(bounds Point) []Point {
	out := make([]Point, 0, 4)
	if p.X > 0 && p.X-1 <= bounds.X && p.Y <= bounds.Y {
		out = append(out, Point{X: p.X - 1, Y: p.Y})
	}
	if p.X < math.MaxUint8 && p.X+1 <= bounds.X && p.Y <= bounds.Y {
		out = append(out, Point{X: p.X + 1, Y: p.Y})
	}
	if p.Y > 0 && p.Y-1 <= bounds.Y && p.X <= bounds.X {
		out = append(out, Point{X: p.X, Y: p.Y - 1})
	}
	if p.Y < math.MaxUint8 && p.Y+1 <= bounds.Y && p.X <= bounds.X {
		out = append(out, Point{X: p.X, Y: p.Y + 1})
	}
	return out
}

// RandomPoint samples a point with each coordinate uniform in [0, bound).
// A zero bound on an axis always yields 0 on that axis.
//
// Precondition: src must be non-nil.
func RandomPoint(src dice.Source, bounds Point) Point {
	return Point{X: randomCoord(src, bounds.X), Y: randomCoord(src, bounds.Y)}
}

func randomCoord(src dice.Source, bound uint8) uint8 {
	if bound == 0 {
		return 0
	}
	return uint8(src.Intn(int(bound)))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
