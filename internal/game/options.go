package game

import (
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/VillageTactics/internal/config"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/ai"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/cycle"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/events"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/mapgen"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/spawn"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/units"
)

// Options configures a new Engine
type Options struct {
	// GameID defaults to a random UUID
	GameID   string
	Calendar cycle.Calendar
	Map      mapgen.MapConfig
	// Level overrides procedural generation when set
	Level *mapgen.Level
	Spawn spawn.Config
	AI    ai.Settings

	StartingGold int
	DailyIncome  int
	// Roster lists the player unit types every level starts with
	Roster []string

	// Rng drives spawning; seeded from the clock when nil
	Rng    *rand.Rand
	Logger zerolog.Logger
	// EventBus defaults to a fresh in-process bus
	EventBus events.Bus
	// LogEvents attaches a logging subscriber to the bus
	LogEvents bool
	// DevMode makes the logging subscriber dump full events
	DevMode bool
}

// DefaultOptions matches the default configuration file
func DefaultOptions() Options {
	return Options{
		Calendar:     cycle.DefaultCalendar(),
		Map:          mapgen.DefaultMapConfig(16, 12),
		Spawn:        spawn.DefaultConfig(),
		AI:           ai.DefaultSettings(),
		StartingGold: 10,
		DailyIncome:  3,
		Roster:       []string{units.TypeVillager, units.TypeArcher},
		Logger:       zerolog.Nop(),
	}
}

// OptionsFromConfig maps loaded configuration onto engine options
func OptionsFromConfig(cfg *config.Config, logger zerolog.Logger) Options {
	g := cfg.Game

	mapCfg := mapgen.DefaultMapConfig(g.Map.Width, g.Map.Height)
	mapCfg.DeploymentInset = g.Map.DeploymentInset
	mapCfg.WaterLevel = g.Map.WaterLevel
	mapCfg.ForestLevel = g.Map.ForestLevel
	mapCfg.NoiseScale = g.Map.NoiseScale
	mapCfg.Seed = g.Map.Seed

	roster := make([]string, len(g.Economy.Roster))
	copy(roster, g.Economy.Roster)

	return Options{
		Calendar: cycle.Calendar{
			TurnsPerDay:   g.Cycle.TurnsPerDay,
			DaysPerSeason: g.Cycle.DaysPerSeason,
		},
		Map: mapCfg,
		Spawn: spawn.Config{
			InsetMin:  g.Spawn.InsetMin,
			InsetMax:  g.Spawn.InsetMax,
			MaxTrials: g.Spawn.MaxTrials,
		},
		AI: ai.Settings{
			AttackDuration: g.AI.AttackDuration,
			MoveSpeed:      g.AI.MoveSpeed,
		},
		StartingGold: g.Economy.StartingGold,
		DailyIncome:  g.Economy.DailyIncome,
		Roster:       roster,
		Logger:       logger,
		LogEvents:    cfg.Development.Debug,
		DevMode:      cfg.Development.Debug,
	}
}
