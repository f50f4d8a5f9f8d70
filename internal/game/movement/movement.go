// Package movement plans how far a combatant walks toward its nearest opponent
// in one turn.
package movement

import "github.com/cory-johannsen/skirmish/internal/game/grid"

// Result describes one planned walk.
type Result struct {
	// Start is where the walk begins.
	Start grid.Point
	// Goal is the opponent position walked toward.
	Goal grid.Point
	// LastPosition is the last cell reached, or Start when nothing was traversed.
	LastPosition grid.Point
	// Steps are the cells traversed in order, excluding Start, never including Goal.
	Steps []grid.Point
}

// HasMoved reports whether any cell was traversed.
func (r Result) HasMoved() bool { return len(r.Steps) > 0 }

// Engine plans walks on a bounded grid.
type Engine struct {
	// Bounds is the largest in-bounds point; cells beyond it are never entered.
	Bounds grid.Point
	// StepLimit caps the cells traversed per walk; zero or less means no cap.
	StepLimit int
	// Blocked reports cells that may not be entered. nil means every cell is free.
	Blocked func(grid.Point) bool
}

// Move walks from start toward the closest of opponents.
//
// The route is a greedy descent: each step picks the neighbor closest to the goal.
// On a 4-connected grid with an in-bounds goal that neighbor is always strictly
// closer and lowers the Manhattan distance by one, so the descent is a shortest
// route and ends within start.ManhattanTo(goal) steps. When the truncated route
// would cross a blocked cell it is replanned with a breadth-first search around
// the blocked cells; if no route exists the combatant stays put.
//
// Postcondition: len(Steps) <= StepLimit when StepLimit > 0; no step is blocked;
// Steps is empty when Goal == Start or Goal is a neighbor of Start.
func (e Engine) Move(start grid.Point, opponents []grid.Point) Result {
	res := Result{Start: start, Goal: start, LastPosition: start}
	goal, ok := start.Closest(opponents)
	if !ok {
		return res
	}
	res.Goal = goal
	if goal == start || start.IsNeighbor(goal) {
		return res
	}

	path := e.truncate(GreedyPath(start, goal, e.Bounds))
	if e.crossesBlocked(path) {
		path = e.truncate(e.searchPath(start, goal))
	}
	if len(path) > 0 {
		res.Steps = path
		res.LastPosition = path[len(path)-1]
	}
	return res
}

// GreedyPath returns the cells strictly between start and goal chosen by greedy
// descent within bounds. Ties between equally close neighbors go to the last one
// in grid.Point.Neighbors order.
//
// Postcondition: the path never contains start or goal; every cell is adjacent to
// its predecessor.
func GreedyPath(start, goal, bounds grid.Point) []grid.Point {
	var path []grid.Point
	step := start
	for remaining := start.ManhattanTo(goal); remaining > 0 && step != goal; remaining-- {
		next, ok := goal.Closest(step.Neighbors(bounds))
		if !ok || next.DistanceTo(goal) >= step.DistanceTo(goal) {
			break
		}
		step = next
		if step != goal {
			path = append(path, step)
		}
	}
	return path
}

func (e Engine) truncate(path []grid.Point) []grid.Point {
	if e.StepLimit > 0 && len(path) > e.StepLimit {
		return path[:e.StepLimit]
	}
	return path
}

func (e Engine) blocked(p grid.Point) bool {
	return e.Blocked != nil && e.Blocked(p)
}

func (e Engine) crossesBlocked(path []grid.Point) bool {
	for _, p := range path {
		if e.blocked(p) {
			return true
		}
	}
	return false
}

// searchPath runs a breadth-first search from start to the nearest free cell
// adjacent to goal and returns the route excluding start. nil means unreachable.
func (e Engine) searchPath(start, goal grid.Point) []grid.Point {
	parent := map[grid.Point]grid.Point{start: start}
	queue := []grid.Point{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur != start && cur.IsNeighbor(goal) {
			var route []grid.Point
			for p := cur; p != start; p = parent[p] {
				route = append(route, p)
			}
			for i, j := 0, len(route)-1; i < j; i, j = i+1, j-1 {
				route[i], route[j] = route[j], route[i]
			}
			return route
		}
		for _, n := range cur.Neighbors(e.Bounds) {
			if _, seen := parent[n]; seen || n == goal || e.blocked(n) {
				continue
			}
			parent[n] = cur
			queue = append(queue, n)
		}
	}
	return nil
}
