// Package combat implements the battle kernel: combatant turns, rounds, the
// engine that schedules them, and analysis of the finished battle.
package combat

import (
	"fmt"
	"math"
)

const (
	// DefaultMaxRounds bounds a battle whose combatants can never finish each other off.
	DefaultMaxRounds uint32 = 1000
	// DefaultMaxSteps is the number of cells a combatant may walk per turn.
	DefaultMaxSteps = 3
)

// Combatant is one participant in a battle. Name is its identity: two combatants
// with the same Name are the same entity regardless of HP or Dmg.
type Combatant struct {
	Name string
	HP   uint16
	Dmg  uint16
}

// String returns "name(hp=N,dmg=M)".
func (c Combatant) String() string {
	return fmt.Sprintf("%s(hp=%d,dmg=%d)", c.Name, c.HP, c.Dmg)
}

// IsAlive reports whether the combatant has any HP left.
//
// Postcondition: Returns true iff HP > 0.
func (c Combatant) IsAlive() bool { return c.HP > 0 }

// Is reports whether c and o are the same entity.
func (c Combatant) Is(o Combatant) bool { return c.Name == o.Name }

// ApplyDamage reduces HP by amount, flooring at zero.
//
// Postcondition: HP == max(0, old HP - amount); no wraparound.
func (c *Combatant) ApplyDamage(amount uint16) {
	if amount >= c.HP {
		c.HP = 0
		return
	}
	c.HP -= amount
}

// Battlefield is the input of one battle: map dimensions and the roster.
type Battlefield struct {
	Width      uint8
	Height     uint8
	Combatants []Combatant
}

// Capacity returns the number of cells random placement can use.
func (b Battlefield) Capacity() int { return int(b.Width) * int(b.Height) }

// Config tunes the engine.
type Config struct {
	// MaxRounds stops a battle after round MaxRounds+1 even when two or more
	// combatants are still alive.
	MaxRounds uint32
	// MaxSteps caps the cells walked per turn. Zero means no cap.
	MaxSteps int
}

// DefaultConfig returns DefaultMaxRounds and DefaultMaxSteps.
func DefaultConfig() Config {
	return Config{MaxRounds: DefaultMaxRounds, MaxSteps: DefaultMaxSteps}
}

// Validate reports configuration values the engine cannot run with.
func (c Config) Validate() error {
	if c.MaxSteps < 0 {
		return fmt.Errorf("max steps must be >= 0, got %d", c.MaxSteps)
	}
	if c.MaxRounds == math.MaxUint32 {
		return fmt.Errorf("max rounds must be < %d", uint32(math.MaxUint32))
	}
	return nil
}
