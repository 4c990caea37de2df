package states

import (
	"time"

	"github.com/rs/zerolog"
)

// GameContext provides game-specific information to states for making decisions
type GameContext struct {
	// GameID uniquely identifies this playing session
	GameID string

	// Logger for state-specific logging
	Logger zerolog.Logger

	// RosterSize is the number of living player units
	RosterSize int

	// PlacedCount is how many of them stand on the map
	PlacedCount int

	// EnemyCount is the number of enemies alive at the last refresh
	EnemyCount int

	// Turn mirrors the clock for log context
	Turn int

	// NightStarted is when the current night's deployment began
	NightStarted time.Time
}

// NewGameContext creates a new game context
func NewGameContext(gameID string, logger zerolog.Logger) *GameContext {
	return &GameContext{
		GameID: gameID,
		Logger: logger.With().Str("game_id", gameID).Logger(),
	}
}

// DeploymentComplete returns true once every living player unit is placed
func (gc *GameContext) DeploymentComplete() bool {
	return gc.PlacedCount >= gc.RosterSize
}

// Unplaced returns how many player units still wait for a tile
func (gc *GameContext) Unplaced() int {
	return max(0, gc.RosterSize-gc.PlacedCount)
}
