package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/VillageTactics/internal/config"
	"github.com/mitchelldurbincs/VillageTactics/internal/game"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/processor"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/states"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/units"
	"github.com/mitchelldurbincs/VillageTactics/internal/monitoring"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	env := flag.String("env", "", "Environment overlay merged from config.<env>.yaml next to the config file")
	debug := flag.Bool("debug", false, "Print the board after every turn and log events")
	seed := flag.Int64("seed", 0, "Seed for spawning and map generation (0 uses the clock)")
	maxTurns := flag.Int("turns", -1, "Stop after this many turns (-1 to use config default)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	watch := flag.Bool("watch", false, "Reload the config file when it changes")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	if err := config.LoadEnvironmentConfig(*env); err != nil {
		log.Fatal().Err(err).Str("env", *env).Msg("Failed to load environment config")
	}

	// Flags win over the config file and VT_ environment variables
	overrides := []struct {
		set   bool
		key   string
		value any
	}{
		{*maxTurns >= 0, "simulation.max_turns", *maxTurns},
		{*logLevel != "", "logging.level", *logLevel},
		{*debug, "development.debug", true},
		{*watch, "development.watch_config", true},
	}
	for _, o := range overrides {
		if !o.set {
			continue
		}
		if err := config.Set(o.key, o.value); err != nil {
			log.Fatal().Err(err).Str("key", o.key).Msg("Invalid command line override")
		}
	}

	setupLogging(config.GetString("logging.level"), config.GetString("logging.format"))

	// The game runs on this snapshot; reloads only reach later config.Get calls
	cfg := *config.Get()
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	if config.GetBool("development.watch_config") {
		config.WatchConfig(func(c *config.Config) {
			log.Info().Str("file", config.ConfigFilePath()).Msg("Config reloaded, changes apply to the next game")
		}, func(err error) {
			log.Warn().Err(err).Msg("Ignoring invalid config change")
		})
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	opts := game.OptionsFromConfig(&cfg, log.Logger)
	opts.Rng = rand.New(rand.NewSource(*seed))
	if cfg.Game.Map.Seed == 0 {
		opts.Map.Seed = *seed
	}

	engine, err := game.NewEngine(ctx, opts)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create engine")
	}

	log.Info().
		Str("game_id", engine.GameID()).
		Int64("seed", *seed).
		Int("max_turns", cfg.Simulation.MaxTurns).
		Msg("Starting headless village simulation")

	monitor := monitoring.NewFrameMonitor(10*time.Second, log.Logger)
	monitor.Start()
	defer monitor.Stop()

	if err := run(ctx, engine, monitor, &cfg); err != nil && ctx.Err() == nil {
		log.Fatal().Err(err).Msg("Simulation failed")
	}

	state := engine.GameState()
	log.Info().
		Int("turn", state.Turn).
		Int("day", state.Calendar.Day).
		Str("season", state.Calendar.Season.String()).
		Int("gold", state.Gold).
		Interface("stats", state.Stats).
		Interface("metrics", monitor.GetMetrics()).
		Msg("Simulation finished")
	fmt.Print(engine.Board(false))
}

// run drives the engine frame by frame with the autopilot as the player
func run(ctx context.Context, engine *game.Engine, monitor *monitoring.FrameMonitor, cfg *config.Config) error {
	pilot := processor.NewAutopilot(log.Logger)
	actions := processor.NewActionProcessor(log.Logger)
	dt := cfg.Simulation.FrameDelta
	maxTurns := cfg.Simulation.MaxTurns

	lastTurn := engine.Turn()
	for frame := 0; frame < cfg.Simulation.MaxFrames; frame++ {
		if engine.Turn() >= maxTurns {
			log.Info().Int("turn", engine.Turn()).Msg("Turn limit reached")
			return nil
		}
		if engine.VillageLost() {
			log.Warn().Int("turn", engine.Turn()).Msg("The village has fallen")
			return nil
		}

		start := time.Now()
		if engine.Phase() != states.PhaseEnemyTurn {
			if _, err := actions.ProcessCommands(ctx, engine, pilot.Plan(engine)); err != nil {
				if ctx.Err() != nil {
					return err
				}
				log.Debug().Err(err).Msg("Autopilot command rejected")
			}
		}
		if err := engine.Tick(ctx, dt); err != nil {
			return err
		}
		monitor.RecordFrame(time.Since(start), engine.Turn(), engine.Registry().Count(units.KindEnemy))

		if turn := engine.Turn(); turn != lastTurn {
			lastTurn = turn
			if cfg.Development.Debug {
				snap := engine.Calendar()
				fmt.Printf("Turn %d (day %d, %s, %s) phase %s gold %d\n",
					turn, snap.Day, snap.Season, snap.TimeOfDay, engine.Phase(), engine.Gold())
				fmt.Print(engine.Board(true))
			}
		}
	}
	log.Warn().Int("max_frames", cfg.Simulation.MaxFrames).Msg("Frame limit reached")
	return nil
}

func setupLogging(level, format string) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	if format == "json" {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	})
}
