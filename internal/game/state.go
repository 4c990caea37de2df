package game

import (
	"github.com/mitchelldurbincs/VillageTactics/internal/game/cycle"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/states"
)

// GameState is a read-only summary of the engine for drivers and HUDs
type GameState struct {
	Turn     int
	Phase    states.GamePhase
	Calendar cycle.Snapshot
	Gold     int

	PlayerUnits int
	PlacedUnits int
	Enemies     int
	Structures  int

	// Selected is the player unit picked by the last battle tile press
	Selected uint32
	Stats    Stats
}
