package subscribers_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/VillageTactics/internal/game/core"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/events"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/events/subscribers"
)

func TestLoggerSubscriber(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).With().Timestamp().Logger()

	logSub := subscribers.NewLoggerSubscriber("test-logger", logger, zerolog.InfoLevel)

	assert.Equal(t, "test-logger", logSub.ID())
	assert.True(t, logSub.InterestedIn(events.TypeTurnAdvanced))
	assert.True(t, logSub.InterestedIn(events.TypeUnitDamaged))
	assert.True(t, logSub.InterestedIn("any.event.type"))
}

func TestLoggerSubscriberEventLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	logSub := subscribers.NewLoggerSubscriber("event-logger", logger, zerolog.InfoLevel)

	testCases := []struct {
		name  string
		event events.Event
		check func(t *testing.T, logLine map[string]any)
	}{
		{
			name:  "TurnAdvancedEvent",
			event: events.NewTurnAdvancedEvent("test-game-1", 9, 10, 1),
			check: func(t *testing.T, logLine map[string]any) {
				assert.Equal(t, float64(9), logLine["previous_turn"])
				assert.Equal(t, float64(10), logLine["turn"])
				assert.Equal(t, float64(1), logLine["day"])
			},
		},
		{
			name:  "SeasonChangedEvent",
			event: events.NewSeasonChangedEvent("test-game-1", "Summer", "Autumn", 5, 5, 30),
			check: func(t *testing.T, logLine map[string]any) {
				assert.Equal(t, "Summer", logLine["from"])
				assert.Equal(t, "Autumn", logLine["to"])
				assert.Equal(t, float64(5), logLine["night_turns"])
			},
		},
		{
			name:  "StateTransitionEvent",
			event: events.NewStateTransitionEvent("test-game-1", "Deployment", "BattleTurn", "deployed"),
			check: func(t *testing.T, logLine map[string]any) {
				assert.Equal(t, "Deployment", logLine["from_phase"])
				assert.Equal(t, "BattleTurn", logLine["to_phase"])
				assert.Equal(t, "deployed", logLine["reason"])
			},
		},
		{
			name:  "EnemySpawnedEvent",
			event: events.NewEnemySpawnedEvent("test-game-1", 12, "brute", core.NewTile(0, 3), 16),
			check: func(t *testing.T, logLine map[string]any) {
				assert.Equal(t, float64(12), logLine["unit_id"])
				assert.Equal(t, "brute", logLine["unit_type"])
				assert.Equal(t, "(0,3)", logLine["tile"])
			},
		},
		{
			name:  "UnitMovedEvent",
			event: events.NewUnitMovedEvent("test-game-1", 12, core.NewTile(0, 3), core.NewTile(2, 3), 2, 17),
			check: func(t *testing.T, logLine map[string]any) {
				assert.Equal(t, "(0,3)", logLine["from"])
				assert.Equal(t, "(2,3)", logLine["to"])
				assert.Equal(t, float64(2), logLine["steps"])
			},
		},
		{
			name:  "UnitDamagedEvent",
			event: events.NewUnitDamagedEvent("test-game-1", 3, 12, 1, 1, 17),
			check: func(t *testing.T, logLine map[string]any) {
				assert.Equal(t, float64(3), logLine["unit_id"])
				assert.Equal(t, float64(12), logLine["attacker_id"])
				assert.Equal(t, float64(1), logLine["health"])
			},
		},
		{
			name:  "UnitsEvictedEvent",
			event: events.NewUnitsEvictedEvent("test-game-1", 2, 1, 20),
			check: func(t *testing.T, logLine map[string]any) {
				assert.Equal(t, float64(2), logLine["enemies_despawned"])
				assert.Equal(t, float64(1), logLine["players_hidden"])
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buf.Reset()
			logSub.HandleEvent(tc.event)

			var logLine map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &logLine))

			assert.Equal(t, "Game event", logLine["message"])
			assert.Equal(t, tc.event.Type(), logLine["event_type"])
			assert.Equal(t, "test-game-1", logLine["game_id"])
			assert.Equal(t, "event_logger", logLine["subscriber"])
			tc.check(t, logLine)
		})
	}
}

func TestLoggerSubscriberWithFilter(t *testing.T) {
	logSub := subscribers.NewLoggerSubscriber("filtered-logger", zerolog.Nop(), zerolog.InfoLevel)
	logSub.SetEventFilter([]string{events.TypeUnitDamaged, events.TypeUnitDespawned})

	assert.True(t, logSub.InterestedIn(events.TypeUnitDamaged))
	assert.True(t, logSub.InterestedIn(events.TypeUnitDespawned))
	assert.False(t, logSub.InterestedIn(events.TypeTurnAdvanced))
	assert.False(t, logSub.InterestedIn(events.TypeUnitMoved))

	// Through the bus only filtered events reach the log
	var buf bytes.Buffer
	logSub = subscribers.NewLoggerSubscriber("filtered-logger", zerolog.New(&buf), zerolog.InfoLevel)
	logSub.SetEventFilter([]string{events.TypeUnitDamaged})

	bus := events.NewEventBus()
	bus.Subscribe(logSub)
	bus.Publish(events.NewTurnAdvancedEvent("game1", 0, 1, 0))
	assert.Empty(t, buf.String())
	bus.Publish(events.NewUnitDamagedEvent("game1", 3, 12, 1, 0, 1))
	assert.Contains(t, buf.String(), events.TypeUnitDamaged)

	logSub.SetEventFilter(nil)
	assert.True(t, logSub.InterestedIn(events.TypeTurnAdvanced))
}

func TestLoggerSubscriberLogLevels(t *testing.T) {
	testCases := []struct {
		name     string
		logLevel zerolog.Level
		expected string
	}{
		{"Debug", zerolog.DebugLevel, "debug"},
		{"Info", zerolog.InfoLevel, "info"},
		{"Warn", zerolog.WarnLevel, "warn"},
		{"Error", zerolog.ErrorLevel, "error"},
		{"FallsBackToInfo", zerolog.PanicLevel, "info"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			logSub := subscribers.NewLoggerSubscriber("level-logger", zerolog.New(&buf), tc.logLevel)

			logSub.HandleEvent(events.NewTimeChangedEvent("game1", "Night", 6))

			var logLine map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &logLine))
			assert.Equal(t, tc.expected, logLine["level"])
		})
	}
}

func TestLoggerSubscriberDevelopmentMode(t *testing.T) {
	var buf bytes.Buffer
	logSub := subscribers.NewLoggerSubscriber("dev-logger", zerolog.New(&buf), zerolog.InfoLevel)
	logSub.SetDevMode(true)

	event := &events.AttackStartedEvent{
		BaseEvent: events.BaseEvent{
			EventType: events.TypeAttackStarted,
			Time:      time.Now(),
			Game:      "dev-game",
		},
		VictimID: 3,
		Origin:   core.NewTile(5, 5),
		Target:   core.NewTile(5, 6),
	}
	logSub.HandleEvent(event)

	var logLine map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logLine))

	eventData, ok := logLine["event_data"]
	require.True(t, ok, "event_data should be present")

	eventDataBytes, err := json.Marshal(eventData)
	require.NoError(t, err)
	assert.Contains(t, string(eventDataBytes), events.TypeAttackStarted)
	assert.Contains(t, string(eventDataBytes), "VictimID")
}
