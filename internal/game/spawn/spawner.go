package spawn

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/VillageTactics/internal/game/core"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/cycle"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/units"
)

// ErrInsetRange is returned when the configured inset band does not fit the map
var ErrInsetRange = errors.New("spawn inset range does not fit the map")

// Config controls where enemies may appear
type Config struct {
	// InsetMin and InsetMax bound the border distance of spawn tiles
	InsetMin int
	InsetMax int
	// MaxTrials is the number of random tiles tried per unit
	MaxTrials int
}

// DefaultConfig spawns on the outer two rings
func DefaultConfig() Config {
	return Config{InsetMin: 0, InsetMax: 1, MaxTrials: 32}
}

var rosters = map[cycle.Season][]string{
	cycle.Summer: {units.TypeRaider, units.TypeRaider},
	cycle.Autumn: {units.TypeRaider, units.TypeRaider, units.TypeBrute},
	cycle.Winter: {units.TypeRaider, units.TypeRaider, units.TypeBrute, units.TypeBat, units.TypeBat},
}

// Roster returns the enemy types that arrive on a night of the given season
func Roster(season cycle.Season) []string {
	return append([]string(nil), rosters[season]...)
}

// Spawner places a season's enemy roster on the map at nightfall
type Spawner struct {
	cfg    Config
	rng    *rand.Rand
	logger zerolog.Logger
}

// NewSpawner creates a spawner drawing from rng
func NewSpawner(cfg Config, rng *rand.Rand, logger zerolog.Logger) *Spawner {
	return &Spawner{
		cfg:    cfg,
		rng:    rng,
		logger: logger.With().Str("component", "spawner").Logger(),
	}
}

// CheckFit reports whether the inset band has any tiles on m
func (s *Spawner) CheckFit(m *core.VillageMap) error {
	if s.cfg.InsetMin < 0 || s.cfg.InsetMax < s.cfg.InsetMin {
		return fmt.Errorf("%w: inset [%d,%d]", ErrInsetRange, s.cfg.InsetMin, s.cfg.InsetMax)
	}
	if 2*s.cfg.InsetMax >= min(m.W, m.H) {
		return fmt.Errorf("%w: inset max %d on a %dx%d map", ErrInsetRange, s.cfg.InsetMax, m.W, m.H)
	}
	return nil
}

// Candidates lists the tiles inside the inset band in row-major order
func (s *Spawner) Candidates(m *core.VillageMap) []core.Tile {
	var tiles []core.Tile
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			t := core.NewTile(x, y)
			if d := m.BorderDistance(t); d >= s.cfg.InsetMin && d <= s.cfg.InsetMax {
				tiles = append(tiles, t)
			}
		}
	}
	return tiles
}

// SpawnNight creates and places the roster for season. Units that find no
// valid tile within MaxTrials are skipped; a band that does not fit the map
// skips the whole batch. Neither case is an error for the caller.
func (s *Spawner) SpawnNight(m *core.VillageMap, reg *units.Registry, season cycle.Season) []*units.Unit {
	if err := s.CheckFit(m); err != nil {
		s.logger.Error().
			Err(err).
			Stringer("season", season).
			Msg("Skipping enemy spawn")
		return nil
	}

	candidates := s.Candidates(m)
	roster := rosters[season]
	spawned := make([]*units.Unit, 0, len(roster))

	for _, unitType := range roster {
		stats, ok := units.LookupStats(unitType)
		if !ok {
			s.logger.Error().Str("unit_type", unitType).Msg("Unknown enemy type in roster")
			continue
		}

		tile, found := s.pickTile(m, candidates, stats.Airborne)
		if !found {
			s.logger.Warn().
				Str("unit_type", unitType).
				Int("trials", s.cfg.MaxTrials).
				Msg("No free spawn tile, enemy skipped")
			continue
		}

		u := reg.Spawn(stats.Builder().Build())
		m.PlaceActor(tile, u.ID)
		spawned = append(spawned, u)

		s.logger.Debug().
			Uint32("unit_id", uint32(u.ID)).
			Str("unit_type", unitType).
			Stringer("tile", tile).
			Msg("Enemy spawned")
	}

	s.logger.Info().
		Stringer("season", season).
		Int("requested", len(roster)).
		Int("spawned", len(spawned)).
		Msg("Night falls")
	return spawned
}

func (s *Spawner) pickTile(m *core.VillageMap, candidates []core.Tile, airborne bool) (core.Tile, bool) {
	if len(candidates) == 0 {
		return core.Tile{}, false
	}
	for trial := 0; trial < s.cfg.MaxTrials; trial++ {
		t := candidates[s.rng.Intn(len(candidates))]
		if !m.IsFree(t) {
			continue
		}
		if !airborne && m.IsWater(t) {
			continue
		}
		return t, true
	}
	return core.Tile{}, false
}
