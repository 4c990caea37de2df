package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mitchelldurbincs/VillageTactics/internal/game/core"
)

func TestOpenLevel(t *testing.T) {
	lvl := OpenLevel(4, 3)
	assert.Equal(t, 4, lvl.Width)
	assert.Equal(t, 3, lvl.Height)
	assert.Empty(t, lvl.Structures)
	for _, kind := range lvl.Terrain {
		assert.Equal(t, core.TerrainGrass, kind)
	}
}

func TestMustParseLevel_PanicsOnRaggedRows(t *testing.T) {
	assert.Panics(t, func() {
		MustParseLevel([]string{"...", ".."}, nil)
	})
}

func TestNewTestRNG_Repeats(t *testing.T) {
	a, b := NewTestRNG(9), NewTestRNG(9)
	for i := 0; i < 5; i++ {
		assert.Equal(t, a.Intn(100), b.Intn(100))
	}
}

func TestCreateTestMap(t *testing.T) {
	m := CreateTestMap(3, 3, 1, core.NewTile(1, 1))
	assert.True(t, m.IsWater(core.NewTile(1, 1)))
	assert.False(t, m.IsWater(core.NewTile(0, 0)))
	assert.True(t, m.InDeploymentZone(core.NewTile(1, 1)))
}
