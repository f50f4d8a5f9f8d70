// Package battlefield loads and validates battle definitions.
package battlefield

import (
	"errors"
	"fmt"
	"math"

	"github.com/cory-johannsen/skirmish/internal/game/combat"
)

// ErrInvalidBattlefield is returned for a battlefield the engine must not run.
var ErrInvalidBattlefield = errors.New("invalid battlefield")

// MinCombatants is the smallest roster that makes a battle.
const MinCombatants = 2

// Validate checks bf before it is handed to combat.NewEngine.
//
// Postcondition: Returns nil, or an error wrapping ErrInvalidBattlefield that lists
// every violation found.
func Validate(bf combat.Battlefield) error {
	var errs []error
	if bf.Width == 0 {
		errs = append(errs, errors.New("width must be at least 1"))
	}
	if bf.Height == 0 {
		errs = append(errs, errors.New("height must be at least 1"))
	}
	if len(bf.Combatants) < MinCombatants {
		errs = append(errs, fmt.Errorf("need at least %d combatants, got %d", MinCombatants, len(bf.Combatants)))
	}
	if len(bf.Combatants) > bf.Capacity() {
		errs = append(errs, fmt.Errorf("%d combatants do not fit on a %dx%d map", len(bf.Combatants), bf.Width, bf.Height))
	}

	seen := make(map[string]bool, len(bf.Combatants))
	for i, c := range bf.Combatants {
		if c.Name == "" {
			errs = append(errs, fmt.Errorf("combatant %d has no name", i))
			continue
		}
		if seen[c.Name] {
			errs = append(errs, fmt.Errorf("duplicate combatant name %q", c.Name))
		}
		seen[c.Name] = true
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidBattlefield, errors.Join(errs...))
	}
	return nil
}

// narrow converts a decoded integer field into its kernel width.
func narrow(field string, v int, limit int) (int, error) {
	if v < 0 || v > limit {
		return 0, fmt.Errorf("%s must be in [0, %d], got %d", field, limit, v)
	}
	return v, nil
}

func narrowUint8(field string, v int) (uint8, error) {
	n, err := narrow(field, v, math.MaxUint8)
	return uint8(n), err
}

func narrowUint16(field string, v int) (uint16, error) {
	n, err := narrow(field, v, math.MaxUint16)
	return uint16(n), err
}
