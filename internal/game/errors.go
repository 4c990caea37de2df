package game

import (
	"errors"
	"fmt"

	"github.com/mitchelldurbincs/VillageTactics/internal/game/states"
)

var (
	ErrWrongPhase       = errors.New("operation not allowed in this phase")
	ErrUnknownUnit      = errors.New("unknown unit")
	ErrNotPlayerUnit    = errors.New("unit is not a player unit")
	ErrNotOnMap         = errors.New("unit is not on the map")
	ErrAlreadyActed     = errors.New("unit already acted this turn")
	ErrOutOfRange       = errors.New("target out of range")
	ErrNoTarget         = errors.New("no enemy on target tile")
	ErrNotAStructure    = errors.New("type is not a structure")
	ErrInsufficientGold = errors.New("not enough gold")
	ErrNoLevel          = errors.New("no level loaded")
)

// WrapPhaseError annotates err with the operation and the phase it was refused in
func WrapPhaseError(op string, phase states.GamePhase, err error) error {
	return fmt.Errorf("%s during %s: %w", op, phase, err)
}
