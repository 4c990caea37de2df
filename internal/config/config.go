package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Game        GameConfig        `mapstructure:"game"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	Simulation  SimulationConfig  `mapstructure:"simulation"`
	Development DevelopmentConfig `mapstructure:"development"`
}

// GameConfig holds game mechanics configuration
type GameConfig struct {
	Cycle   CycleConfig   `mapstructure:"cycle"`
	Map     MapConfig     `mapstructure:"map"`
	Spawn   SpawnConfig   `mapstructure:"spawn"`
	AI      AIConfig      `mapstructure:"ai"`
	Economy EconomyConfig `mapstructure:"economy"`
}

// CycleConfig holds the calendar settings
type CycleConfig struct {
	TurnsPerDay   int `mapstructure:"turns_per_day"`
	DaysPerSeason int `mapstructure:"days_per_season"`
}

// MapConfig holds map generation settings
type MapConfig struct {
	Width           int     `mapstructure:"width"`
	Height          int     `mapstructure:"height"`
	DeploymentInset int     `mapstructure:"deployment_inset"`
	WaterLevel      float64 `mapstructure:"water_level"`
	ForestLevel     float64 `mapstructure:"forest_level"`
	NoiseScale      float64 `mapstructure:"noise_scale"`
	Seed            int64   `mapstructure:"seed"`
}

// SpawnConfig holds enemy placement settings
type SpawnConfig struct {
	InsetMin  int `mapstructure:"inset_min"`
	InsetMax  int `mapstructure:"inset_max"`
	MaxTrials int `mapstructure:"max_trials"`
}

// AIConfig holds enemy turn pacing
type AIConfig struct {
	// AttackDuration is the attack animation length in seconds
	AttackDuration float64 `mapstructure:"attack_duration"`
	// MoveSpeed is in tiles per second
	MoveSpeed float64 `mapstructure:"move_speed"`
}

// EconomyConfig holds the building economy and starting roster
type EconomyConfig struct {
	StartingGold int      `mapstructure:"starting_gold"`
	DailyIncome  int      `mapstructure:"daily_income"`
	Roster       []string `mapstructure:"roster"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SimulationConfig holds settings for the headless driver
type SimulationConfig struct {
	FrameDelta float64 `mapstructure:"frame_delta"`
	MaxTurns   int     `mapstructure:"max_turns"`
	MaxFrames  int     `mapstructure:"max_frames"`
}

// DevelopmentConfig holds development/debug settings
type DevelopmentConfig struct {
	Debug           bool `mapstructure:"debug"`
	ShowCoordinates bool `mapstructure:"show_coordinates"`
	WatchConfig     bool `mapstructure:"watch_config"`
}

var (
	// Global config instance, replaced whole on every reload
	mu  sync.RWMutex
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Calendar defaults
	v.SetDefault("game.cycle.turns_per_day", 10)
	v.SetDefault("game.cycle.days_per_season", 3)

	// Map defaults
	v.SetDefault("game.map.width", 16)
	v.SetDefault("game.map.height", 12)
	v.SetDefault("game.map.deployment_inset", 3)
	v.SetDefault("game.map.water_level", 0.28)
	v.SetDefault("game.map.forest_level", 0.72)
	v.SetDefault("game.map.noise_scale", 0.18)
	v.SetDefault("game.map.seed", 1)

	// Spawn defaults
	v.SetDefault("game.spawn.inset_min", 0)
	v.SetDefault("game.spawn.inset_max", 1)
	v.SetDefault("game.spawn.max_trials", 32)

	// AI defaults
	v.SetDefault("game.ai.attack_duration", 0.5)
	v.SetDefault("game.ai.move_speed", 4.0)

	// Economy defaults
	v.SetDefault("game.economy.starting_gold", 10)
	v.SetDefault("game.economy.daily_income", 3)
	v.SetDefault("game.economy.roster", []string{"villager", "archer"})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Headless driver defaults
	v.SetDefault("simulation.frame_delta", 1.0/60.0)
	v.SetDefault("simulation.max_turns", 40)
	v.SetDefault("simulation.max_frames", 200000)

	// Development defaults
	v.SetDefault("development.debug", false)
	v.SetDefault("development.show_coordinates", false)
	v.SetDefault("development.watch_config", false)
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/village-tactics")
	}

	v.SetEnvPrefix("VT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// A missing explicit file falls back to defaults as well
		if configPath == "" && !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	next := &Config{}
	if err := v.Unmarshal(next); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(next); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	mu.Lock()
	cfg = next
	mu.Unlock()
	return nil
}

// Get returns the global config instance. Reloads and Set swap in a new
// instance, so a caller's pointer never changes underneath it.
func Get() *Config {
	mu.RLock()
	current := cfg
	mu.RUnlock()
	if current != nil {
		return current
	}

	if err := Init(""); err != nil {
		panic("failed to initialize config with defaults: " + err.Error())
	}
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}

// LoadEnvironmentConfig merges config.<env>.yaml from the directory of the
// loaded config file. A missing overlay is not an error.
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	base := v.ConfigFileUsed()
	dir := "."
	if base != "" {
		dir = filepath.Dir(base)
	}
	envFile := filepath.Join(dir, fmt.Sprintf("config.%s.yaml", env))
	if _, err := os.Stat(envFile); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	v.SetConfigFile(envFile)
	err := v.MergeInConfig()
	// Keep watching the base file
	v.SetConfigFile(base)
	if err != nil {
		return fmt.Errorf("error merging environment config %s: %w", envFile, err)
	}

	return decode("merged config")
}

// Set overrides a single key, typically from a command line flag
func Set(key string, value any) error {
	v.Set(key, value)
	return decode(key)
}

// GetString gets a string value from config
func GetString(key string) string {
	return v.GetString(key)
}

// GetBool gets a bool value from config
func GetBool(key string) bool {
	return v.GetBool(key)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of the config file. Reloads that fail
// validation are reported through onError and the previous values are kept.
func WatchConfig(onChange func(*Config), onError func(error)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		if err := decode(e.Name); err != nil {
			if onError != nil {
				onError(fmt.Errorf("reload: %w", err))
			}
			return
		}
		if onChange != nil {
			onChange(Get())
		}
	})
	v.WatchConfig()
}

// decode builds a fresh Config from viper and swaps it in once it validates
func decode(source string) error {
	next := &Config{}
	if err := v.Unmarshal(next); err != nil {
		return fmt.Errorf("unable to decode %s: %w", source, err)
	}
	if err := Validate(next); err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}

	mu.Lock()
	cfg = next
	mu.Unlock()
	return nil
}

// Validate validates the configuration values
func Validate(c *Config) error {
	if c.Game.Cycle.TurnsPerDay <= 0 {
		return fmt.Errorf("game.cycle.turns_per_day must be positive")
	}
	if c.Game.Cycle.DaysPerSeason <= 0 {
		return fmt.Errorf("game.cycle.days_per_season must be positive")
	}
	// Winter has the longest night; every season needs at least one day turn
	if c.Game.Cycle.TurnsPerDay < 7 {
		return fmt.Errorf("game.cycle.turns_per_day must be at least 7 to fit every season's day cycle")
	}

	if c.Game.Map.Width <= 0 || c.Game.Map.Height <= 0 {
		return fmt.Errorf("game.map dimensions must be positive")
	}
	if c.Game.Map.DeploymentInset < 0 {
		return fmt.Errorf("game.map.deployment_inset must be non-negative")
	}
	if c.Game.Map.WaterLevel < 0 || c.Game.Map.WaterLevel > 1 {
		return fmt.Errorf("game.map.water_level must be between 0 and 1")
	}
	if c.Game.Map.ForestLevel < c.Game.Map.WaterLevel || c.Game.Map.ForestLevel > 1 {
		return fmt.Errorf("game.map.forest_level must be between water_level and 1")
	}
	if c.Game.Map.NoiseScale <= 0 {
		return fmt.Errorf("game.map.noise_scale must be positive")
	}

	// The inset range is checked against the map at spawn time, not here
	if c.Game.Spawn.InsetMin < 0 || c.Game.Spawn.InsetMax < c.Game.Spawn.InsetMin {
		return fmt.Errorf("game.spawn inset range must satisfy 0 <= inset_min <= inset_max")
	}
	if c.Game.Spawn.MaxTrials <= 0 {
		return fmt.Errorf("game.spawn.max_trials must be positive")
	}

	if c.Game.AI.AttackDuration <= 0 {
		return fmt.Errorf("game.ai.attack_duration must be positive")
	}
	if c.Game.AI.MoveSpeed <= 0 {
		return fmt.Errorf("game.ai.move_speed must be positive")
	}

	if c.Game.Economy.StartingGold < 0 || c.Game.Economy.DailyIncome < 0 {
		return fmt.Errorf("game.economy gold values must be non-negative")
	}

	switch strings.ToLower(c.Logging.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}

	if c.Simulation.FrameDelta <= 0 {
		return fmt.Errorf("simulation.frame_delta must be positive")
	}
	if c.Simulation.MaxTurns < 0 || c.Simulation.MaxFrames < 0 {
		return fmt.Errorf("simulation limits must be non-negative")
	}

	return nil
}
