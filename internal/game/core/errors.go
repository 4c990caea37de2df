package core

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds       = errors.New("tile out of bounds")
	ErrTileOccupied      = errors.New("tile is occupied")
	ErrTileImpassable    = errors.New("tile is impassable")
	ErrNotReachable      = errors.New("tile is not reachable")
	ErrNotAdjacent       = errors.New("tiles are not adjacent")
	ErrUnknownDirection  = errors.New("unknown direction")
	ErrUnknownTerrain    = errors.New("unknown terrain glyph")
	ErrOutsideDeployment = errors.New("tile outside deployment zone")
)

// WrapTileError annotates err with the operation and tile it happened on.
// A nil err stays nil.
func WrapTileError(op string, t Tile, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s at %s: %w", op, t, err)
}
