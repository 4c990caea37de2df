package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/VillageTactics/internal/game/ai"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/cycle"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/events"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/mapgen"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/rules"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/spawn"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/states"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/units"
)

// EngineInitializer handles the initialization of a game engine
type EngineInitializer struct {
	config Options
	logger zerolog.Logger
}

// NewEngineInitializer creates a new engine initializer
func NewEngineInitializer(opts Options) *EngineInitializer {
	return &EngineInitializer{
		config: opts,
		logger: opts.Logger.With().Str("component", "engine").Logger(),
	}
}

// Initialize validates the options, builds every component and loads the
// first level
func (ei *EngineInitializer) Initialize(ctx context.Context) (*Engine, error) {
	select {
	case <-ctx.Done():
		ei.logger.Error().Err(ctx.Err()).Msg("Engine creation cancelled or timed out")
		return nil, ctx.Err()
	default:
	}

	ei.setupDefaults()
	if err := ei.validate(); err != nil {
		return nil, fmt.Errorf("invalid engine options: %w", err)
	}

	engine := ei.createEngine()
	ei.setupEventHandling(engine)

	if err := engine.LoadLevel(ei.level()); err != nil {
		return nil, fmt.Errorf("loading level: %w", err)
	}

	ei.logger.Info().
		Str("game_id", engine.gameID).
		Int("turns_per_day", ei.config.Calendar.TurnsPerDay).
		Int("days_per_season", ei.config.Calendar.DaysPerSeason).
		Msg("Engine created successfully")
	return engine, nil
}

// setupDefaults fills in values left empty by the caller
func (ei *EngineInitializer) setupDefaults() {
	if ei.config.Rng == nil {
		ei.logger.Debug().Msg("No RNG provided, creating new seeded RNG")
		ei.config.Rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if ei.config.GameID == "" {
		ei.config.GameID = uuid.NewString()
	}
	if ei.config.Calendar == (cycle.Calendar{}) {
		ei.config.Calendar = cycle.DefaultCalendar()
	}
	if ei.config.AI == (ai.Settings{}) {
		ei.config.AI = ai.DefaultSettings()
	}
	if ei.config.Spawn == (spawn.Config{}) {
		ei.config.Spawn = spawn.DefaultConfig()
	}
}

func (ei *EngineInitializer) validate() error {
	if err := ei.config.Calendar.Validate(); err != nil {
		return err
	}
	if ei.config.AI.AttackDuration <= 0 || ei.config.AI.MoveSpeed <= 0 {
		return fmt.Errorf("attack duration and move speed must be positive, got %v and %v",
			ei.config.AI.AttackDuration, ei.config.AI.MoveSpeed)
	}
	if ei.config.Spawn.MaxTrials <= 0 {
		return fmt.Errorf("spawn max trials must be positive, got %d", ei.config.Spawn.MaxTrials)
	}
	for _, typ := range ei.config.Roster {
		st, ok := units.LookupStats(typ)
		if !ok || st.Kind != units.KindPlayer {
			return fmt.Errorf("roster entry %q is not a player unit type", typ)
		}
	}
	if ei.config.Level == nil && (ei.config.Map.Width <= 0 || ei.config.Map.Height <= 0) {
		return fmt.Errorf("map size must be positive, got %dx%d", ei.config.Map.Width, ei.config.Map.Height)
	}
	return nil
}

// level returns the configured level or generates one
func (ei *EngineInitializer) level() *mapgen.Level {
	if ei.config.Level != nil {
		return ei.config.Level
	}
	ei.logger.Debug().
		Int64("seed", ei.config.Map.Seed).
		Int("width", ei.config.Map.Width).
		Int("height", ei.config.Map.Height).
		Msg("Generating level")
	return mapgen.NewGenerator(ei.config.Map).Generate()
}

// createEngine creates the engine with all its components
func (ei *EngineInitializer) createEngine() *Engine {
	cfg := ei.config

	eventBus := cfg.EventBus
	if eventBus == nil {
		eventBus = events.NewEventBusWithLogger(ei.logger)
	}

	gameContext := states.NewGameContext(cfg.GameID, ei.logger)
	registry := units.NewRegistry(ei.logger)

	engine := &Engine{
		gameID:       cfg.GameID,
		opts:         cfg,
		logger:       ei.logger.With().Str("game_id", cfg.GameID).Logger(),
		registry:     registry,
		clock:        cycle.NewClock(cfg.Calendar, ei.logger),
		eventBus:     eventBus,
		stateMachine: states.NewStateMachine(gameContext, eventBus),
		spawner:      spawn.NewSpawner(cfg.Spawn, cfg.Rng, ei.logger),
		production:   NewProductionManager(cfg.StartingGold, cfg.DailyIncome, ei.logger),
		despawns:     newDespawnQueue(),
		stats:        NewStatsTracker(),
		defeat:       rules.NewDefeatChecker(ei.logger),
		buildType:    units.TypeWall,
	}
	engine.turnProcessor = NewTurnProcessor(engine)
	engine.clearBattleTurn()
	return engine
}

// setupEventHandling attaches the engine's own subscribers to the bus
func (ei *EngineInitializer) setupEventHandling(engine *Engine) {
	engine.eventBus.Subscribe(engine.stats)

	if ei.config.LogEvents {
		logSub := subscribers.NewLoggerSubscriber("event_logger", ei.logger, zerolog.DebugLevel)
		logSub.SetDevMode(ei.config.DevMode)
		engine.eventBus.Subscribe(logSub)
	}
}
