package states

import (
	"errors"
	"fmt"
	"time"
)

// ErrDeploymentIncomplete is returned when battle is requested before every
// player unit has been placed
var ErrDeploymentIncomplete = errors.New("deployment incomplete")

// BuildingTurnState represents daytime construction turns
type BuildingTurnState struct{}

func NewBuildingTurnState() State {
	return &BuildingTurnState{}
}

func (s *BuildingTurnState) Phase() GamePhase {
	return PhaseBuildingTurn
}

func (s *BuildingTurnState) Enter(ctx *GameContext) error {
	ctx.Logger.Debug().Int("turn", ctx.Turn).Msg("Building turn started")
	return nil
}

func (s *BuildingTurnState) Exit(ctx *GameContext) error {
	return nil
}

func (s *BuildingTurnState) Validate(ctx *GameContext) error {
	return nil
}

// DeploymentState represents the dusk placement of player units
type DeploymentState struct{}

func NewDeploymentState() State {
	return &DeploymentState{}
}

func (s *DeploymentState) Phase() GamePhase {
	return PhaseDeployment
}

func (s *DeploymentState) Enter(ctx *GameContext) error {
	ctx.NightStarted = time.Now()
	ctx.Logger.Info().
		Int("turn", ctx.Turn).
		Int("roster", ctx.RosterSize).
		Int("enemies", ctx.EnemyCount).
		Msg("Dusk, deploy your units")
	return nil
}

func (s *DeploymentState) Exit(ctx *GameContext) error {
	ctx.Logger.Debug().
		Int("placed", ctx.PlacedCount).
		Msg("Deployment finished")
	return nil
}

func (s *DeploymentState) Validate(ctx *GameContext) error {
	if ctx.RosterSize < 0 {
		return fmt.Errorf("roster size must be non-negative, got %d", ctx.RosterSize)
	}
	return nil
}

// BattleTurnState represents the player's night turn
type BattleTurnState struct{}

func NewBattleTurnState() State {
	return &BattleTurnState{}
}

func (s *BattleTurnState) Phase() GamePhase {
	return PhaseBattleTurn
}

func (s *BattleTurnState) Enter(ctx *GameContext) error {
	ctx.Logger.Debug().
		Int("turn", ctx.Turn).
		Int("enemies", ctx.EnemyCount).
		Msg("Battle turn started")
	return nil
}

func (s *BattleTurnState) Exit(ctx *GameContext) error {
	return nil
}

func (s *BattleTurnState) Validate(ctx *GameContext) error {
	if !ctx.DeploymentComplete() {
		return fmt.Errorf("%w: %d of %d units placed", ErrDeploymentIncomplete, ctx.PlacedCount, ctx.RosterSize)
	}
	return nil
}

// EnemyTurnState represents the AI's turn
type EnemyTurnState struct{}

func NewEnemyTurnState() State {
	return &EnemyTurnState{}
}

func (s *EnemyTurnState) Phase() GamePhase {
	return PhaseEnemyTurn
}

func (s *EnemyTurnState) Enter(ctx *GameContext) error {
	ctx.Logger.Debug().
		Int("turn", ctx.Turn).
		Int("enemies", ctx.EnemyCount).
		Msg("Enemy turn started")
	return nil
}

func (s *EnemyTurnState) Exit(ctx *GameContext) error {
	return nil
}

func (s *EnemyTurnState) Validate(ctx *GameContext) error {
	return nil
}

// MerchantState represents the start-of-day interlude
type MerchantState struct{}

func NewMerchantState() State {
	return &MerchantState{}
}

func (s *MerchantState) Phase() GamePhase {
	return PhaseMerchant
}

func (s *MerchantState) Enter(ctx *GameContext) error {
	if !ctx.NightStarted.IsZero() {
		ctx.Logger.Info().
			Dur("night_duration", time.Since(ctx.NightStarted)).
			Msg("Dawn, the merchant arrives")
		ctx.NightStarted = time.Time{}
		return nil
	}
	ctx.Logger.Info().Msg("Dawn, the merchant arrives")
	return nil
}

func (s *MerchantState) Exit(ctx *GameContext) error {
	ctx.Logger.Debug().Msg("Merchant left")
	return nil
}

func (s *MerchantState) Validate(ctx *GameContext) error {
	return nil
}
