package testutil

import (
	"math/rand"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/VillageTactics/internal/game/core"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/mapgen"
)

// NewTestRNG seeds the spawner and generator so runs repeat exactly
func NewTestRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NopLogger silences engine components under test
func NopLogger() zerolog.Logger {
	return zerolog.Nop()
}

// OpenLevel returns a w x h grass level without structures
func OpenLevel(w, h int) *mapgen.Level {
	rows := make([]string, h)
	for y := range rows {
		rows[y] = strings.Repeat(string(mapgen.GlyphGrass), w)
	}
	return MustParseLevel(rows, nil)
}

// MustParseLevel parses a level and panics on malformed rows
func MustParseLevel(terrain, objects []string) *mapgen.Level {
	lvl, err := mapgen.ParseLevel(terrain, objects)
	if err != nil {
		panic(err)
	}
	return lvl
}

// CreateTestMap creates an all-grass map with water on the given tiles
func CreateTestMap(w, h, deploymentInset int, water ...core.Tile) *core.VillageMap {
	m := core.NewVillageMap(w, h, deploymentInset)
	for _, t := range water {
		m.SetTerrain(t, core.TerrainWater)
	}
	return m
}
