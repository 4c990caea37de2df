package processor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/VillageTactics/internal/game"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/core"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/states"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/units"
	"github.com/mitchelldurbincs/VillageTactics/internal/testutil"
)

const frame = 0.1

func newTestEngine(t *testing.T) *game.Engine {
	t.Helper()
	opts := game.DefaultOptions()
	opts.Level = testutil.MustParseLevel([]string{
		"........",
		"........",
		"........",
		"........",
		"........",
		".....~..",
		"........",
		"........",
	}, nil)
	opts.Map.DeploymentInset = 2
	opts.Rng = testutil.NewTestRNG(7)

	e, err := game.NewEngine(context.Background(), opts)
	require.NoError(t, err)
	return e
}

func TestProcessCommands_KeepsGoingAfterRejection(t *testing.T) {
	e := newTestEngine(t)
	ap := NewActionProcessor(testutil.NopLogger())

	applied, err := ap.ProcessCommands(context.Background(), e, []Command{
		BuildCommand{Type: units.TypeWall, Tile: core.NewTile(1, 1)},
		BuildCommand{Type: units.TypeWall, Tile: core.NewTile(5, 5)},
		BuildCommand{Type: units.TypeWall, Tile: core.NewTile(1, 1)},
		EndTurnCommand{},
	})
	assert.Equal(t, 2, applied)
	assert.ErrorIs(t, err, core.ErrTileImpassable, "the first rejection is reported")
	assert.Equal(t, 8, e.Gold())

	require.NoError(t, e.Tick(context.Background(), frame))
	assert.Equal(t, 1, e.Turn())
}

func TestProcessCommands_WrongPhase(t *testing.T) {
	e := newTestEngine(t)
	ap := NewActionProcessor(testutil.NopLogger())

	tests := []Command{
		EndDeploymentCommand{},
		CloseMerchantCommand{},
		PlaceCommand{UnitID: 1, Tile: core.NewTile(2, 2)},
		MoveCommand{UnitID: 1, Tile: core.NewTile(2, 2)},
		AttackCommand{UnitID: 1, Tile: core.NewTile(2, 2)},
	}
	for _, cmd := range tests {
		t.Run(cmd.String(), func(t *testing.T) {
			applied, err := ap.ProcessCommands(context.Background(), e, []Command{cmd})
			assert.Equal(t, 0, applied)
			assert.ErrorIs(t, err, game.ErrWrongPhase)
		})
	}
}

func TestProcessCommands_ContextCancelled(t *testing.T) {
	e := newTestEngine(t)
	ap := NewActionProcessor(testutil.NopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	applied, err := ap.ProcessCommands(ctx, e, []Command{EndTurnCommand{}})
	assert.Equal(t, 0, applied)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEndTurnCommand_RefusedOutsideTurns(t *testing.T) {
	e := newTestEngine(t)
	pilot := NewAutopilot(testutil.NopLogger())
	pilot.Reserve = 100
	runUntil(t, e, pilot, states.PhaseDeployment)

	assert.ErrorIs(t, EndTurnCommand{}.Apply(e), game.ErrWrongPhase)
}

func TestCommand_String(t *testing.T) {
	assert.Equal(t, "place unit 3 at (2,4)", PlaceCommand{UnitID: 3, Tile: core.NewTile(2, 4)}.String())
	assert.Equal(t, "unit 2 attacks (1,0)", AttackCommand{UnitID: 2, Tile: core.NewTile(1, 0)}.String())
	assert.Equal(t, "build wall at (0,0)", BuildCommand{Type: units.TypeWall}.String())
	assert.Equal(t, "end turn", EndTurnCommand{}.String())
}
