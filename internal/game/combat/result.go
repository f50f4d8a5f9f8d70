package combat

import "github.com/cory-johannsen/skirmish/internal/game/grid"

// Result is the analyzed outcome of a finished battle.
type Result struct {
	Combatants []Combatant
	Map        *grid.Map
	Actions    []Action
	// Round is the last round executed; zero when no round was needed.
	Round uint32
	// Winner is the surviving combatant with the most HP; nil when nobody survived.
	Winner *Combatant
	// Stalemate is true when the round cap ended the battle with two or more survivors.
	Stalemate bool
}

// Analyze turns the final round state into a Result and determines the winner.
func Analyze(state RoundState) *Result {
	r := &Result{
		Combatants: state.Combatants,
		Map:        state.Map,
		Actions:    state.Actions,
		Round:      state.Round,
		Stalemate:  state.AliveCount() >= 2,
	}
	if w, ok := DetermineWinner(state.Combatants); ok {
		r.Winner = &w
	}
	return r
}

// DetermineWinner returns the living combatant with the greatest HP.
// Ties go to the first one in roster order.
//
// Postcondition: ok is false iff no combatant has HP > 0.
func DetermineWinner(combatants []Combatant) (winner Combatant, ok bool) {
	for _, c := range combatants {
		if !c.IsAlive() {
			continue
		}
		if !ok || c.HP > winner.HP {
			winner, ok = c, true
		}
	}
	return winner, ok
}

// Survivors returns the combatants still alive, in roster order.
func (r *Result) Survivors() []Combatant {
	var alive []Combatant
	for _, c := range r.Combatants {
		if c.IsAlive() {
			alive = append(alive, c)
		}
	}
	return alive
}

// RoundsPlayed returns the number of the last executed round.
func (r *Result) RoundsPlayed() uint32 { return r.Round }

// Attacks returns the attack entries of the log in order.
func (r *Result) Attacks() []AttackAction {
	var out []AttackAction
	for _, a := range r.Actions {
		if atk, ok := a.(AttackAction); ok {
			out = append(out, atk)
		}
	}
	return out
}

// Moves returns the move entries of the log in order.
func (r *Result) Moves() []MoveAction {
	var out []MoveAction
	for _, a := range r.Actions {
		if mv, ok := a.(MoveAction); ok {
			out = append(out, mv)
		}
	}
	return out
}
