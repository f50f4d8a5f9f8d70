package combat

import (
	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/grid"
	"github.com/cory-johannsen/skirmish/internal/game/movement"
)

// TurnState is everything one combatant's turn reads and produces.
type TurnState struct {
	Active    Combatant
	Opponents []Combatant
	// Map is mutated in place by the turn; callers pass a map they own.
	Map     *grid.Map
	Actions []Action
	Round   uint32
}

// ExecuteTurn lets st.Active walk toward its nearest opponent, at most maxSteps
// cells, and then attack one adjacent opponent chosen at random from src.
//
// A combatant without a position on the map cannot act; its turn returns st unchanged.
//
// Precondition: st.Map and src must be non-nil.
// Postcondition: returns ErrNoOpponentsPresent when st.Opponents is empty; map errors
// from committing the move are returned unchanged. Otherwise the result carries at
// most one MoveAction followed by at most one AttackAction appended to st.Actions,
// and st.Opponents is not modified (the result holds a copy).
func ExecuteTurn(st TurnState, maxSteps int, src dice.Source) (TurnState, error) {
	if len(st.Opponents) == 0 {
		return st, ErrNoOpponentsPresent
	}

	start, ok := st.Map.PositionFor(st.Active.Name)
	if !ok {
		return st, nil
	}

	eng := movement.Engine{
		Bounds:    st.Map.Bounds(),
		StepLimit: maxSteps,
		Blocked:   st.Map.IsOccupied,
	}
	walk := eng.Move(start, opponentPositions(st.Map, st.Opponents))

	out := st
	out.Opponents = make([]Combatant, len(st.Opponents))
	copy(out.Opponents, st.Opponents)

	if walk.HasMoved() {
		out.Actions = append(out.Actions, MoveAction{
			Round:     st.Round,
			Combatant: st.Active.Name,
			Start:     walk.Start,
			End:       walk.LastPosition,
			Path:      walk.Steps,
		})
		if err := out.Map.MoveTo(start, walk.LastPosition); err != nil {
			return st, err
		}
	}

	if idx, ok := pickTarget(out.Map, walk.LastPosition, out.Opponents, src); ok {
		victim := &out.Opponents[idx]
		victim.ApplyDamage(st.Active.Dmg)
		out.Actions = append(out.Actions, AttackAction{
			Round:     st.Round,
			Assailant: st.Active,
			Victim:    *victim,
			Damage:    st.Active.Dmg,
		})
	}
	return out, nil
}

// opponentPositions returns the map positions of opponents that are on the map.
func opponentPositions(m *grid.Map, opponents []Combatant) []grid.Point {
	points := make([]grid.Point, 0, len(opponents))
	for _, o := range opponents {
		if p, ok := m.PositionFor(o.Name); ok {
			points = append(points, p)
		}
	}
	return points
}

// pickTarget shuffles the occupants next to p and returns the index in opponents
// of the first one that is an opponent.
func pickTarget(m *grid.Map, p grid.Point, opponents []Combatant, src dice.Source) (int, bool) {
	candidates := m.OccupiedNeighbors(p)
	dice.Shuffle(src, len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	for _, id := range candidates {
		for i := range opponents {
			if opponents[i].Name == id {
				return i, true
			}
		}
	}
	return 0, false
}
