package combat

import (
	"fmt"

	"github.com/cory-johannsen/skirmish/internal/game/grid"
)

// ActionKind identifies an entry of the battle log.
// The zero value (ActionUnknown) is intentionally invalid.
type ActionKind int

const (
	ActionUnknown ActionKind = iota
	ActionMove
	ActionAttack
)

// String returns "move", "attack" or "unknown".
func (k ActionKind) String() string {
	switch k {
	case ActionMove:
		return "move"
	case ActionAttack:
		return "attack"
	default:
		return "unknown"
	}
}

// Action is one entry of the append-only battle log. The only implementations
// are MoveAction and AttackAction.
type Action interface {
	Kind() ActionKind
	RoundNumber() uint32
	fmt.Stringer
	action()
}

// MoveAction records a combatant walking during its turn.
type MoveAction struct {
	Round     uint32
	Combatant string
	Start     grid.Point
	End       grid.Point
	// Path lists the cells traversed after Start; its last cell is End.
	Path []grid.Point
}

// AttackAction records one attack. Victim is the snapshot after damage was applied.
type AttackAction struct {
	Round     uint32
	Assailant Combatant
	Victim    Combatant
	Damage    uint16
}

func (MoveAction) Kind() ActionKind     { return ActionMove }
func (a MoveAction) RoundNumber() uint32 { return a.Round }
func (MoveAction) action()              {}

func (a MoveAction) String() string {
	return fmt.Sprintf("round %d: %s moves %s -> %s", a.Round, a.Combatant, a.Start, a.End)
}

func (AttackAction) Kind() ActionKind     { return ActionAttack }
func (a AttackAction) RoundNumber() uint32 { return a.Round }
func (AttackAction) action()              {}

func (a AttackAction) String() string {
	return fmt.Sprintf("round %d: %s hits %s for %d (%d hp left)",
		a.Round, a.Assailant.Name, a.Victim.Name, a.Damage, a.Victim.HP)
}

// RemainingHP returns the victim's HP after the attack.
func (a AttackAction) RemainingHP() uint16 { return a.Victim.HP }

// Killed reports whether the attack left the victim dead.
func (a AttackAction) Killed() bool { return !a.Victim.IsAlive() }
