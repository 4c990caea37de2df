package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mitchelldurbincs/VillageTactics/internal/game/core"
)

func TestBuildHeatMap_SingleTarget(t *testing.T) {
	hm := BuildHeatMap(5, 5, []core.Tile{{X: 2, Y: 2}})

	assert.Equal(t, 0, hm.At(core.NewTile(2, 2)))
	assert.Equal(t, 1, hm.At(core.NewTile(3, 3)), "diagonals count as one step")
	assert.Equal(t, 2, hm.At(core.NewTile(0, 0)))
	assert.Equal(t, 2, hm.At(core.NewTile(4, 1)))
	assert.Equal(t, Unreachable, hm.At(core.NewTile(-1, 0)))
}

func TestBuildHeatMap_NearestTargetWins(t *testing.T) {
	hm := BuildHeatMap(8, 1, []core.Tile{{X: 0, Y: 0}, {X: 7, Y: 0}})

	want := []int{0, 1, 2, 3, 3, 2, 1, 0}
	for x, w := range want {
		assert.Equal(t, w, hm.At(core.NewTile(x, 0)), "x=%d", x)
	}
}

func TestBuildHeatMap_NoTargets(t *testing.T) {
	hm := BuildHeatMap(3, 3, nil)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			assert.Equal(t, Unreachable, hm.At(core.NewTile(x, y)))
		}
	}
}

func TestBuildHeatMap_IgnoresOutOfBoundsAndDuplicates(t *testing.T) {
	hm := BuildHeatMap(3, 3, []core.Tile{{X: 1, Y: 1}, {X: 1, Y: 1}, {X: 9, Y: 9}})
	assert.Equal(t, 0, hm.At(core.NewTile(1, 1)))
	assert.Equal(t, 1, hm.At(core.NewTile(0, 2)))
}
