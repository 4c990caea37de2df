package states

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestStateImplementations(t *testing.T) {
	logger := zerolog.New(zerolog.NewConsoleWriter()).Level(zerolog.DebugLevel)

	t.Run("BuildingTurnState", func(t *testing.T) {
		state := NewBuildingTurnState()
		ctx := NewGameContext("test", logger)

		assert.Equal(t, PhaseBuildingTurn, state.Phase())
		assert.NoError(t, state.Validate(ctx))
		assert.NoError(t, state.Enter(ctx))
		assert.NoError(t, state.Exit(ctx))
	})

	t.Run("DeploymentState", func(t *testing.T) {
		state := NewDeploymentState()
		ctx := NewGameContext("test", logger)

		assert.Equal(t, PhaseDeployment, state.Phase())
		assert.NoError(t, state.Validate(ctx))
		assert.NoError(t, state.Enter(ctx))
		assert.False(t, ctx.NightStarted.IsZero())
		assert.NoError(t, state.Exit(ctx))

		ctx.RosterSize = -1
		err := state.Validate(ctx)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "roster size must be non-negative")
	})

	t.Run("BattleTurnState", func(t *testing.T) {
		state := NewBattleTurnState()
		ctx := NewGameContext("test", logger)

		assert.Equal(t, PhaseBattleTurn, state.Phase())

		// Nothing to place is trivially complete
		assert.NoError(t, state.Validate(ctx))

		ctx.RosterSize = 3
		ctx.PlacedCount = 1
		err := state.Validate(ctx)
		assert.ErrorIs(t, err, ErrDeploymentIncomplete)
		assert.Contains(t, err.Error(), "1 of 3 units placed")

		ctx.PlacedCount = 3
		assert.NoError(t, state.Validate(ctx))
		assert.NoError(t, state.Enter(ctx))
		assert.NoError(t, state.Exit(ctx))
	})

	t.Run("EnemyTurnState", func(t *testing.T) {
		state := NewEnemyTurnState()
		ctx := NewGameContext("test", logger)

		assert.Equal(t, PhaseEnemyTurn, state.Phase())
		assert.NoError(t, state.Validate(ctx))
		assert.NoError(t, state.Enter(ctx))
		assert.NoError(t, state.Exit(ctx))
	})

	t.Run("MerchantState", func(t *testing.T) {
		state := NewMerchantState()
		ctx := NewGameContext("test", logger)

		assert.Equal(t, PhaseMerchant, state.Phase())
		assert.NoError(t, state.Validate(ctx))

		// Entering without a recorded night is fine
		assert.NoError(t, state.Enter(ctx))

		assert.NoError(t, NewDeploymentState().Enter(ctx))
		assert.NoError(t, state.Enter(ctx))
		assert.True(t, ctx.NightStarted.IsZero())
		assert.NoError(t, state.Exit(ctx))
	})
}
