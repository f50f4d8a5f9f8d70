// Package api defines the JSON contracts exchanged with battle clients and the
// conversions between them and the combat kernel.
package api

// CombatantContract is a combatant as clients see it. ID is set only for
// combatants read back from storage.
type CombatantContract struct {
	Name string `json:"name"`
	ID   string `json:"id,omitempty"`
	HP   uint16 `json:"hp"`
	Dmg  uint16 `json:"dmg"`
}

// BattlefieldContract describes a battle to run.
type BattlefieldContract struct {
	Height     uint8               `json:"height"`
	Width      uint8               `json:"width"`
	Combatants []CombatantContract `json:"combatants"`
}

// CreateBattleContract is the request body of a new battle.
type CreateBattleContract struct {
	Battlefield BattlefieldContract `json:"battlefield"`
}

// PointContract is a map coordinate.
type PointContract struct {
	X uint8 `json:"x"`
	Y uint8 `json:"y"`
}

// PoiContract is one occupied cell.
type PoiContract struct {
	Location PointContract `json:"location"`
	Name     string        `json:"name"`
}

// MapContract is the final map.
type MapContract struct {
	Width  uint8         `json:"width"`
	Height uint8         `json:"height"`
	Pois   []PoiContract `json:"pois"`
}

// ActionContract is an externally tagged action: exactly one of Move and Attack is set,
// so it encodes as {"Move":{...}} or {"Attack":{...}}.
type ActionContract struct {
	Move   *MoveContract   `json:"Move,omitempty"`
	Attack *AttackContract `json:"Attack,omitempty"`
}

type MoveContract struct {
	Round     uint32          `json:"round"`
	Combatant string          `json:"combatant"`
	Start     PointContract   `json:"start"`
	End       PointContract   `json:"end"`
	Path      []PointContract `json:"path"`
}

type AttackContract struct {
	Round       uint32 `json:"round"`
	Attacker    string `json:"attacker"`
	Attacked    string `json:"attacked"`
	Dmg         uint16 `json:"dmg"`
	RemainingHP uint16 `json:"remaining_hp"`
}

// BattleResultContract is the response of a finished battle.
type BattleResultContract struct {
	ID          string              `json:"id,omitempty"`
	Combatants  []CombatantContract `json:"combatants"`
	Map         MapContract         `json:"map"`
	Actions     []ActionContract    `json:"actions"`
	RoundNumber uint32              `json:"round_number"`
	Winner      *CombatantContract  `json:"winner"`
	Stalemate   bool                `json:"stalemate"`
}
