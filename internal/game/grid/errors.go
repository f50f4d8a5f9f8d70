package grid

import "errors"

var (
	// ErrUserAlreadyOnMap is returned when placing an id that already has a position.
	ErrUserAlreadyOnMap = errors.New("combatant already on map")
	// ErrLocationOccupied is returned when placing onto an occupied point.
	ErrLocationOccupied = errors.New("location occupied")
	// ErrDestinationOccupied is returned when a move targets a point held by another id.
	ErrDestinationOccupied = errors.New("destination occupied")
	// ErrDestinationOutOfBounds is returned when a move or placement targets a point outside the map.
	ErrDestinationOutOfBounds = errors.New("destination out of bounds")
	// ErrMapLocationEmpty is returned when a move starts from a point with no occupant.
	ErrMapLocationEmpty = errors.New("map location empty")
	// ErrMapIDUnknown is returned when looking up an id that was never placed.
	ErrMapIDUnknown = errors.New("map id unknown")
)
