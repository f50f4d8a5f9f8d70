package combat

import "errors"

var (
	// ErrNoOpponentsPresent is returned when a turn starts with nobody to fight.
	ErrNoOpponentsPresent = errors.New("no opponents present")
	// ErrBattleAlreadyStarted is returned when Start is called on an engine that already ran.
	ErrBattleAlreadyStarted = errors.New("battle already started")
)
