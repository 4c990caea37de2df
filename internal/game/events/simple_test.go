package events_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/VillageTactics/internal/game/core"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/events"
)

// RecordingSubscriber implements the Subscriber interface for testing
type RecordingSubscriber struct {
	id         string
	events     []events.Event
	interested map[string]bool
}

func NewRecordingSubscriber(id string, interestedTypes ...string) *RecordingSubscriber {
	interested := make(map[string]bool)
	for _, t := range interestedTypes {
		interested[t] = true
	}
	return &RecordingSubscriber{
		id:         id,
		interested: interested,
	}
}

func (rs *RecordingSubscriber) ID() string {
	return rs.id
}

func (rs *RecordingSubscriber) HandleEvent(event events.Event) {
	rs.events = append(rs.events, event)
}

func (rs *RecordingSubscriber) InterestedIn(eventType string) bool {
	if len(rs.interested) == 0 {
		return true
	}
	return rs.interested[eventType]
}

func TestEventBusMultipleSubscribers(t *testing.T) {
	bus := events.NewEventBus()

	var b events.Bus = bus
	attackers := NewRecordingSubscriber("attackers", events.TypeAttackStarted)
	damage := NewRecordingSubscriber("damage", events.TypeUnitDamaged)
	all := NewRecordingSubscriber("all")

	b.Subscribe(attackers)
	b.Subscribe(damage)
	b.Subscribe(all)

	funcCalled := false
	b.SubscribeFunc(events.TypeAttackStarted, func(e events.Event) {
		funcCalled = true
	})

	bus.Publish(events.NewAttackStartedEvent("game4", 10, 3, core.NewTile(5, 5), core.NewTile(5, 6), 7))
	bus.Publish(events.NewUnitDamagedEvent("game4", 3, 10, 1, 1, 7))

	require.Len(t, attackers.events, 1)
	cue := attackers.events[0].(*events.AttackStartedEvent)
	assert.Equal(t, core.EntityID(10), cue.Metadata.UnitID)
	assert.Equal(t, core.EntityID(3), cue.VictimID)
	assert.Equal(t, core.NewTile(5, 6), cue.Target)

	assert.Len(t, damage.events, 1)
	assert.Len(t, all.events, 2)
	assert.True(t, funcCalled)
}

func TestEventBusPanicRecovery(t *testing.T) {
	bus := events.NewEventBus()

	bus.SubscribeFunc(events.TypeUnitsEvicted, func(e events.Event) {
		panic("test panic")
	})

	normalSub := NewRecordingSubscriber("normal")
	bus.Subscribe(normalSub)

	assert.NotPanics(t, func() {
		bus.Publish(events.NewUnitsEvictedEvent("game5", 2, 1, 10))
	})

	assert.Len(t, normalSub.events, 1)
}

func TestEventTimestamps(t *testing.T) {
	startTime := time.Now()

	all := []events.Event{
		events.NewTurnAdvancedEvent("game6", 0, 1, 0),
		events.NewTimeChangedEvent("game6", "Night", 6),
		events.NewSeasonChangedEvent("game6", "Summer", "Autumn", 5, 5, 30),
		events.NewStateTransitionEvent("game6", "BuildingTurn", "Deployment", "dusk"),
		events.NewEnemySpawnedEvent("game6", 1, "bat", core.NewTile(0, 0), 6),
		events.NewUnitMovedEvent("game6", 1, core.NewTile(0, 0), core.NewTile(1, 1), 1, 7),
		events.NewAttackStartedEvent("game6", 1, core.NoEntity, core.NewTile(1, 1), core.NewTile(1, 2), 7),
		events.NewUnitDamagedEvent("game6", 2, 1, 1, 0, 7),
		events.NewUnitDespawnedEvent("game6", 2, "Player", core.NewTile(1, 2), "killed", 7),
		events.NewUnitsEvictedEvent("game6", 1, 1, 10),
		events.NewTilePressedEvent("game6", core.NewTile(4, 4), "", 10),
		events.NewStructureBuiltEvent("game6", 9, "house", core.NewTile(4, 4), 11),
	}

	seen := make(map[string]bool)
	for _, event := range all {
		assert.False(t, event.Timestamp().IsZero())
		assert.False(t, event.Timestamp().Before(startTime))
		assert.Equal(t, "game6", event.GameID())
		assert.False(t, seen[event.Type()], "duplicate type %s", event.Type())
		seen[event.Type()] = true
	}
}

func TestEventMetadata(t *testing.T) {
	metadata := events.EventMetadata{
		UnitID: 4,
		Turn:   5,
	}

	moved := &events.UnitMovedEvent{
		BaseEvent: events.BaseEvent{
			EventType: events.TypeUnitMoved,
			Time:      time.Now(),
			Game:      "game7",
		},
		Metadata: metadata,
		From:     core.NewTile(1, 1),
		To:       core.NewTile(2, 1),
	}

	assert.Equal(t, core.EntityID(4), moved.Metadata.UnitID)
	assert.Equal(t, 5, moved.Metadata.Turn)
	assert.Equal(t, core.NewTile(2, 1), moved.To)
}

func BenchmarkEventBusPublish(b *testing.B) {
	bus := events.NewEventBus()
	bus.Subscribe(NewRecordingSubscriber("bench", events.TypeUnitMoved))

	event := events.NewTurnAdvancedEvent("bench-game", 0, 1, 0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bus.Publish(event)
	}
}
