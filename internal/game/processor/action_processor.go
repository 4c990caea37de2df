package processor

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/VillageTactics/internal/game"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/core"
)

// Command is one player input applied to an engine
type Command interface {
	Apply(e *game.Engine) error
	String() string
}

// PlaceCommand deploys a waiting unit onto a tile
type PlaceCommand struct {
	UnitID core.EntityID
	Tile   core.Tile
}

func (c PlaceCommand) Apply(e *game.Engine) error { return e.PlaceUnit(c.UnitID, c.Tile) }
func (c PlaceCommand) String() string {
	return fmt.Sprintf("place unit %d at %s", c.UnitID, c.Tile)
}

// MoveCommand walks a player unit to a tile
type MoveCommand struct {
	UnitID core.EntityID
	Tile   core.Tile
}

func (c MoveCommand) Apply(e *game.Engine) error { return e.MoveUnit(c.UnitID, c.Tile) }
func (c MoveCommand) String() string {
	return fmt.Sprintf("move unit %d to %s", c.UnitID, c.Tile)
}

// AttackCommand strikes the enemy standing on a tile
type AttackCommand struct {
	UnitID core.EntityID
	Tile   core.Tile
}

func (c AttackCommand) Apply(e *game.Engine) error { return e.PlayerAttack(c.UnitID, c.Tile) }
func (c AttackCommand) String() string {
	return fmt.Sprintf("unit %d attacks %s", c.UnitID, c.Tile)
}

// BuildCommand buys a structure
type BuildCommand struct {
	Type string
	Tile core.Tile
}

func (c BuildCommand) Apply(e *game.Engine) error { return e.Build(c.Type, c.Tile) }
func (c BuildCommand) String() string {
	return fmt.Sprintf("build %s at %s", c.Type, c.Tile)
}

// EndDeploymentCommand confirms the deployment
type EndDeploymentCommand struct{}

func (EndDeploymentCommand) Apply(e *game.Engine) error { return e.EndDeployment() }
func (EndDeploymentCommand) String() string             { return "end deployment" }

// EndTurnCommand queues an end-turn signal for the next frame
type EndTurnCommand struct{}

func (EndTurnCommand) Apply(e *game.Engine) error {
	if !e.RequestEndTurn() {
		return game.WrapPhaseError("end turn", e.Phase(), game.ErrWrongPhase)
	}
	return nil
}
func (EndTurnCommand) String() string { return "end turn" }

// CloseMerchantCommand leaves the start-of-day interlude
type CloseMerchantCommand struct{}

func (CloseMerchantCommand) Apply(e *game.Engine) error { return e.CloseMerchant() }
func (CloseMerchantCommand) String() string             { return "close merchant" }

// ActionProcessor applies batches of player commands to an engine
type ActionProcessor struct {
	logger zerolog.Logger
}

// NewActionProcessor creates a new action processor
func NewActionProcessor(logger zerolog.Logger) *ActionProcessor {
	return &ActionProcessor{
		logger: logger.With().Str("component", "ActionProcessor").Logger(),
	}
}

// ProcessCommands applies cmds in order. A rejected command is logged and
// skipped; the first rejection is returned once the batch is done.
func (ap *ActionProcessor) ProcessCommands(ctx context.Context, e *game.Engine, cmds []Command) (int, error) {
	var encounteredError error
	applied := 0

	for _, cmd := range cmds {
		select {
		case <-ctx.Done():
			ap.logger.Warn().Err(ctx.Err()).Msg("Command processing interrupted by context cancellation")
			return applied, ctx.Err()
		default:
		}

		ap.logger.Debug().Stringer("command", cmd).Stringer("phase", e.Phase()).Msg("Applying command")
		if err := cmd.Apply(e); err != nil {
			ap.logger.Warn().Err(err).Stringer("command", cmd).Msg("Command rejected")
			if encounteredError == nil {
				encounteredError = fmt.Errorf("%s: %w", cmd, err)
			}
			continue
		}
		applied++
	}
	return applied, encounteredError
}
