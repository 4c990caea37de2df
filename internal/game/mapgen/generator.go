package mapgen

import (
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/mitchelldurbincs/VillageTactics/internal/game/core"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/units"
)

// MapConfig holds configuration for procedural levels
type MapConfig struct {
	Width           int
	Height          int
	DeploymentInset int
	// Noise below WaterLevel becomes water, above ForestLevel forest
	WaterLevel  float64
	ForestLevel float64
	// NoiseScale is the sampling frequency in noise units per tile
	NoiseScale float64
	Octaves    int
	// Houses scattered in the deployment zone
	Houses int
	Seed   int64
}

// DefaultMapConfig returns a sensible default configuration
func DefaultMapConfig(w, h int) MapConfig {
	return MapConfig{
		Width:           w,
		Height:          h,
		DeploymentInset: 3,
		WaterLevel:      0.28,
		ForestLevel:     0.72,
		NoiseScale:      0.18,
		Octaves:         3,
		Houses:          2,
		Seed:            1,
	}
}

// Generator builds levels from layered simplex noise. The same config always
// produces the same level.
type Generator struct {
	config MapConfig
	noise  opensimplex.Noise
	rng    *rand.Rand
}

// NewGenerator creates a new level generator
func NewGenerator(config MapConfig) *Generator {
	if config.Octaves < 1 {
		config.Octaves = 1
	}
	return &Generator{
		config: config,
		noise:  opensimplex.NewNormalized(config.Seed),
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Generate creates the level. Tiles inside the deployment zone are never
// water so the player always has somewhere to stand.
func (g *Generator) Generate() *Level {
	cfg := g.config
	lvl := &Level{
		Width:   cfg.Width,
		Height:  cfg.Height,
		Terrain: make([]core.TerrainKind, cfg.Width*cfg.Height),
	}

	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			t := core.NewTile(x, y)
			n := g.sample(float64(x), float64(y))

			kind := core.TerrainGrass
			switch {
			case n < cfg.WaterLevel && !g.inDeployment(t):
				kind = core.TerrainWater
			case n > cfg.ForestLevel:
				kind = core.TerrainForest
			}
			lvl.Terrain[t.ToIndex(cfg.Width)] = kind
		}
	}

	g.placeHouses(lvl)
	return lvl
}

// sample layers octaves of noise, each at double the frequency and half the
// weight of the previous one. The result stays in [0, 1].
func (g *Generator) sample(x, y float64) float64 {
	total, weight, maxWeight := 0.0, 1.0, 0.0
	freq := g.config.NoiseScale
	for i := 0; i < g.config.Octaves; i++ {
		total += g.noise.Eval2(x*freq, y*freq) * weight
		maxWeight += weight
		weight *= 0.5
		freq *= 2
	}
	return total / maxWeight
}

func (g *Generator) inDeployment(t core.Tile) bool {
	c := g.config
	return min(t.X, t.Y, c.Width-1-t.X, c.Height-1-t.Y) >= c.DeploymentInset
}

func (g *Generator) placeHouses(lvl *Level) {
	var zone []core.Tile
	for idx := range lvl.Terrain {
		t := core.FromIndex(idx, lvl.Width)
		if g.inDeployment(t) {
			zone = append(zone, t)
		}
	}
	if len(zone) == 0 {
		return
	}

	// Use a maximum attempt counter to avoid infinite loops
	taken := make(map[core.Tile]bool)
	maxAttempts := g.config.Houses * 10
	for attempts := 0; len(taken) < g.config.Houses && attempts < maxAttempts; attempts++ {
		t := zone[g.rng.Intn(len(zone))]
		if taken[t] {
			continue
		}
		taken[t] = true
		lvl.Structures = append(lvl.Structures, Placement{Type: units.TypeHouse, Tile: t})
	}
}
