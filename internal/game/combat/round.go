package combat

import (
	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/grid"
)

// RoundState is the battle snapshot threaded from round to round.
type RoundState struct {
	Combatants []Combatant
	Map        *grid.Map
	Actions    []Action
	Round      uint32
}

// AliveCount returns the number of combatants with HP left.
func (s RoundState) AliveCount() int {
	n := 0
	for _, c := range s.Combatants {
		if c.IsAlive() {
			n++
		}
	}
	return n
}

// ResolveRound plays round number round starting from state.
//
// Combatants already dead when the round starts are taken off the map. Every
// combatant alive at round start then takes one turn in roster order, unless it
// was killed earlier in the same round. Each turn fights all other combatants.
//
// Precondition: combatant names in state are unique; state.Map and src are non-nil.
// Postcondition: state is not modified (the map is cloned once for the round);
// the returned roster keeps state's order; any turn error aborts the round.
func ResolveRound(round uint32, state RoundState, maxSteps int, src dice.Source) (RoundState, error) {
	work := RoundState{
		Combatants: make([]Combatant, len(state.Combatants)),
		Map:        state.Map.Clone(),
		// Full slice expression: appends this round never write into state's backing array.
		Actions: state.Actions[:len(state.Actions):len(state.Actions)],
		Round:   round,
	}
	copy(work.Combatants, state.Combatants)

	index := make(map[string]int, len(work.Combatants))
	for i, c := range work.Combatants {
		index[c.Name] = i
		if !c.IsAlive() {
			work.Map.Remove(c.Name)
		}
	}

	for _, entering := range state.Combatants {
		if !entering.IsAlive() {
			continue
		}
		i := index[entering.Name]
		active := work.Combatants[i]
		if !active.IsAlive() {
			continue
		}

		opponents := make([]Combatant, 0, len(work.Combatants)-1)
		for j, c := range work.Combatants {
			if j != i {
				opponents = append(opponents, c)
			}
		}

		res, err := ExecuteTurn(TurnState{
			Active:    active,
			Opponents: opponents,
			Map:       work.Map,
			Actions:   work.Actions,
			Round:     round,
		}, maxSteps, src)
		if err != nil {
			return RoundState{}, err
		}

		work.Combatants[i] = res.Active
		for _, o := range res.Opponents {
			work.Combatants[index[o.Name]] = o
		}
		work.Map = res.Map
		work.Actions = res.Actions
	}
	return work, nil
}
