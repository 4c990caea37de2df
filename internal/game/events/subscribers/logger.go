package subscribers

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/VillageTactics/internal/game/events"
)

// LoggerSubscriber logs events to structured logs
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // If non-nil, only log these event types
	devMode         bool            // If true, log full event details
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// ID returns the subscriber's unique identifier
func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which event types to log (nil means log all)
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool)
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// SetDevMode enables or disables development mode logging
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

// InterestedIn returns true if the subscriber wants to receive this event type
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent processes an event by logging it
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	eventLogger := ls.logger.With().
		Str("event_type", event.Type()).
		Str("game_id", event.GameID()).
		Time("timestamp", event.Timestamp()).
		Logger()

	logEvent := eventLogger.WithLevel(ls.level())

	switch e := event.(type) {
	case *events.TurnAdvancedEvent:
		logEvent.
			Int("previous_turn", e.Previous).
			Int("turn", e.Current).
			Int("day", e.Day)

	case *events.TimeChangedEvent:
		logEvent.
			Int("turn", e.Metadata.Turn).
			Str("time_of_day", e.TimeOfDay)

	case *events.SeasonChangedEvent:
		logEvent.
			Int("turn", e.Metadata.Turn).
			Str("from", e.From).
			Str("to", e.To).
			Int("day_turns", e.DayTurns).
			Int("night_turns", e.NightTurns)

	case *events.StateTransitionEvent:
		logEvent.
			Str("from_phase", e.FromPhase).
			Str("to_phase", e.ToPhase).
			Str("reason", e.Reason)

	case *events.EnemySpawnedEvent:
		logEvent.
			Uint32("unit_id", uint32(e.Metadata.UnitID)).
			Str("unit_type", e.UnitType).
			Stringer("tile", e.Tile)

	case *events.UnitMovedEvent:
		logEvent.
			Uint32("unit_id", uint32(e.Metadata.UnitID)).
			Stringer("from", e.From).
			Stringer("to", e.To).
			Int("steps", e.Steps)

	case *events.AttackStartedEvent:
		logEvent.
			Uint32("attacker_id", uint32(e.Metadata.UnitID)).
			Uint32("victim_id", uint32(e.VictimID)).
			Stringer("target", e.Target)

	case *events.UnitDamagedEvent:
		logEvent.
			Uint32("unit_id", uint32(e.Metadata.UnitID)).
			Uint32("attacker_id", uint32(e.AttackerID)).
			Int("amount", e.Amount).
			Int("health", e.Health)

	case *events.UnitDespawnedEvent:
		logEvent.
			Uint32("unit_id", uint32(e.Metadata.UnitID)).
			Str("kind", e.Kind).
			Str("reason", e.Reason)

	case *events.UnitsEvictedEvent:
		logEvent.
			Int("turn", e.Metadata.Turn).
			Int("enemies_despawned", e.EnemiesDespawned).
			Int("players_hidden", e.PlayersHidden)

	case *events.TilePressedEvent:
		logEvent.
			Stringer("tile", e.Tile).
			Str("handled", e.Handled)

	case *events.StructureBuiltEvent:
		logEvent.
			Uint32("unit_id", uint32(e.Metadata.UnitID)).
			Str("structure", e.StructureType).
			Stringer("tile", e.Tile)
	}

	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	logEvent.Msg("Game event")
}

func (ls *LoggerSubscriber) level() zerolog.Level {
	switch ls.logLevel {
	case zerolog.TraceLevel, zerolog.DebugLevel, zerolog.InfoLevel, zerolog.WarnLevel, zerolog.ErrorLevel:
		return ls.logLevel
	default:
		return zerolog.InfoLevel
	}
}
