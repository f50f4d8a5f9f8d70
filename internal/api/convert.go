package api

import (
	"encoding/json"
	"fmt"

	"github.com/cory-johannsen/skirmish/internal/game/battlefield"
	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/grid"
)

// ParseCreateBattle decodes a CreateBattleContract body and validates the battlefield.
//
// Postcondition: any decode or validation failure wraps battlefield.ErrInvalidBattlefield.
func ParseCreateBattle(data []byte) (combat.Battlefield, error) {
	var req CreateBattleContract
	if err := json.Unmarshal(data, &req); err != nil {
		return combat.Battlefield{}, fmt.Errorf("%w: decoding request: %w", battlefield.ErrInvalidBattlefield, err)
	}
	bf := req.Battlefield.ToBattlefield()
	if err := battlefield.Validate(bf); err != nil {
		return combat.Battlefield{}, err
	}
	return bf, nil
}

// ToBattlefield converts the contract into kernel input.
func (b BattlefieldContract) ToBattlefield() combat.Battlefield {
	bf := combat.Battlefield{
		Width:      b.Width,
		Height:     b.Height,
		Combatants: make([]combat.Combatant, 0, len(b.Combatants)),
	}
	for _, c := range b.Combatants {
		bf.Combatants = append(bf.Combatants, combat.Combatant{Name: c.Name, HP: c.HP, Dmg: c.Dmg})
	}
	return bf
}

// FromBattlefield converts kernel input into its contract.
func FromBattlefield(bf combat.Battlefield) BattlefieldContract {
	out := BattlefieldContract{
		Height:     bf.Height,
		Width:      bf.Width,
		Combatants: make([]CombatantContract, 0, len(bf.Combatants)),
	}
	for _, c := range bf.Combatants {
		out.Combatants = append(out.Combatants, FromCombatant(c))
	}
	return out
}

// FromCombatant converts one combatant.
func FromCombatant(c combat.Combatant) CombatantContract {
	return CombatantContract{Name: c.Name, HP: c.HP, Dmg: c.Dmg}
}

// FromPoint converts one point.
func FromPoint(p grid.Point) PointContract {
	return PointContract{X: p.X, Y: p.Y}
}

// FromMap converts the map and its occupants, sorted by location.
func FromMap(m *grid.Map) MapContract {
	pois := m.POIs()
	out := MapContract{
		Width:  m.Width(),
		Height: m.Height(),
		Pois:   make([]PoiContract, 0, len(pois)),
	}
	for _, poi := range pois {
		out.Pois = append(out.Pois, PoiContract{Location: FromPoint(poi.Location), Name: poi.ID})
	}
	return out
}

// FromAction converts one log entry. Unknown action types yield an empty contract.
func FromAction(a combat.Action) ActionContract {
	switch v := a.(type) {
	case combat.MoveAction:
		path := make([]PointContract, 0, len(v.Path))
		for _, p := range v.Path {
			path = append(path, FromPoint(p))
		}
		return ActionContract{Move: &MoveContract{
			Round:     v.Round,
			Combatant: v.Combatant,
			Start:     FromPoint(v.Start),
			End:       FromPoint(v.End),
			Path:      path,
		}}
	case combat.AttackAction:
		return ActionContract{Attack: &AttackContract{
			Round:       v.Round,
			Attacker:    v.Assailant.Name,
			Attacked:    v.Victim.Name,
			Dmg:         v.Damage,
			RemainingHP: v.RemainingHP(),
		}}
	default:
		return ActionContract{}
	}
}

// FromResult converts a finished battle into its response contract.
func FromResult(r *combat.Result) BattleResultContract {
	out := BattleResultContract{
		Combatants:  make([]CombatantContract, 0, len(r.Combatants)),
		Map:         FromMap(r.Map),
		Actions:     make([]ActionContract, 0, len(r.Actions)),
		RoundNumber: r.RoundsPlayed(),
		Stalemate:   r.Stalemate,
	}
	for _, c := range r.Combatants {
		out.Combatants = append(out.Combatants, FromCombatant(c))
	}
	for _, a := range r.Actions {
		out.Actions = append(out.Actions, FromAction(a))
	}
	if r.Winner != nil {
		w := FromCombatant(*r.Winner)
		out.Winner = &w
	}
	return out
}
