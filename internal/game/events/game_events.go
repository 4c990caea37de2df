package events

import (
	"time"

	"github.com/mitchelldurbincs/VillageTactics/internal/game/core"
)

// Event type constants
const (
	TypeTurnAdvanced    = "turn.advanced"
	TypeTimeChanged     = "time.changed"
	TypeSeasonChanged   = "season.changed"
	TypeStateTransition = "state.transition"
	TypeEnemySpawned    = "enemy.spawned"
	TypeUnitMoved       = "unit.moved"
	TypeAttackStarted   = "attack.started"
	TypeUnitDamaged     = "unit.damaged"
	TypeUnitDespawned   = "unit.despawned"
	TypeUnitsEvicted    = "units.evicted"
	TypeTilePressed     = "tile.pressed"
	TypeStructureBuilt  = "structure.built"
)

func base(eventType, gameID string) BaseEvent {
	return BaseEvent{
		EventType: eventType,
		Time:      time.Now(),
		Game:      gameID,
	}
}

// TurnAdvancedEvent is published once per dispatched end-turn
type TurnAdvancedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Previous int
	Current  int
	Day      int
}

// NewTurnAdvancedEvent creates a new TurnAdvancedEvent
func NewTurnAdvancedEvent(gameID string, previous, current, day int) *TurnAdvancedEvent {
	return &TurnAdvancedEvent{
		BaseEvent: base(TypeTurnAdvanced, gameID),
		Metadata:  EventMetadata{Turn: current},
		Previous:  previous,
		Current:   current,
		Day:       day,
	}
}

// TimeChangedEvent is published when day turns to night or back
type TimeChangedEvent struct {
	BaseEvent
	Metadata  EventMetadata
	TimeOfDay string
}

// NewTimeChangedEvent creates a new TimeChangedEvent
func NewTimeChangedEvent(gameID, timeOfDay string, turn int) *TimeChangedEvent {
	return &TimeChangedEvent{
		BaseEvent: base(TypeTimeChanged, gameID),
		Metadata:  EventMetadata{Turn: turn},
		TimeOfDay: timeOfDay,
	}
}

// SeasonChangedEvent is published when the derived season rolls over
type SeasonChangedEvent struct {
	BaseEvent
	Metadata   EventMetadata
	From       string
	To         string
	DayTurns   int
	NightTurns int
}

// NewSeasonChangedEvent creates a new SeasonChangedEvent
func NewSeasonChangedEvent(gameID, from, to string, dayTurns, nightTurns, turn int) *SeasonChangedEvent {
	return &SeasonChangedEvent{
		BaseEvent:  base(TypeSeasonChanged, gameID),
		Metadata:   EventMetadata{Turn: turn},
		From:       from,
		To:         to,
		DayTurns:   dayTurns,
		NightTurns: nightTurns,
	}
}

// StateTransitionEvent is published when the game phase machine transitions between phases
type StateTransitionEvent struct {
	BaseEvent
	FromPhase string
	ToPhase   string
	Reason    string
}

// NewStateTransitionEvent creates a new StateTransitionEvent
func NewStateTransitionEvent(gameID, fromPhase, toPhase, reason string) *StateTransitionEvent {
	return &StateTransitionEvent{
		BaseEvent: base(TypeStateTransition, gameID),
		FromPhase: fromPhase,
		ToPhase:   toPhase,
		Reason:    reason,
	}
}

// EnemySpawnedEvent is published for each enemy placed at nightfall
type EnemySpawnedEvent struct {
	BaseEvent
	Metadata EventMetadata
	UnitType string
	Tile     core.Tile
}

// NewEnemySpawnedEvent creates a new EnemySpawnedEvent
func NewEnemySpawnedEvent(gameID string, id core.EntityID, unitType string, tile core.Tile, turn int) *EnemySpawnedEvent {
	return &EnemySpawnedEvent{
		BaseEvent: base(TypeEnemySpawned, gameID),
		Metadata:  EventMetadata{UnitID: id, Turn: turn},
		UnitType:  unitType,
		Tile:      tile,
	}
}

// UnitMovedEvent is published when a unit's actor-index entry changes tile
type UnitMovedEvent struct {
	BaseEvent
	Metadata EventMetadata
	From     core.Tile
	To       core.Tile
	Steps    int
}

// NewUnitMovedEvent creates a new UnitMovedEvent
func NewUnitMovedEvent(gameID string, id core.EntityID, from, to core.Tile, steps, turn int) *UnitMovedEvent {
	return &UnitMovedEvent{
		BaseEvent: base(TypeUnitMoved, gameID),
		Metadata:  EventMetadata{UnitID: id, Turn: turn},
		From:      from,
		To:        to,
		Steps:     steps,
	}
}

// AttackStartedEvent is the cue for attack animation and sound. VictimID is
// core.NoEntity when nothing damageable stands on the target.
type AttackStartedEvent struct {
	BaseEvent
	Metadata EventMetadata
	VictimID core.EntityID
	Origin   core.Tile
	Target   core.Tile
}

// NewAttackStartedEvent creates a new AttackStartedEvent
func NewAttackStartedEvent(gameID string, attacker, victim core.EntityID, origin, target core.Tile, turn int) *AttackStartedEvent {
	return &AttackStartedEvent{
		BaseEvent: base(TypeAttackStarted, gameID),
		Metadata:  EventMetadata{UnitID: attacker, Turn: turn},
		VictimID:  victim,
		Origin:    origin,
		Target:    target,
	}
}

// UnitDamagedEvent is published after health is written back to the store
type UnitDamagedEvent struct {
	BaseEvent
	Metadata   EventMetadata
	AttackerID core.EntityID
	Amount     int
	Health     int
}

// NewUnitDamagedEvent creates a new UnitDamagedEvent
func NewUnitDamagedEvent(gameID string, victim, attacker core.EntityID, amount, health, turn int) *UnitDamagedEvent {
	return &UnitDamagedEvent{
		BaseEvent:  base(TypeUnitDamaged, gameID),
		Metadata:   EventMetadata{UnitID: victim, Turn: turn},
		AttackerID: attacker,
		Amount:     amount,
		Health:     health,
	}
}

// UnitDespawnedEvent asks the lifecycle collaborator to play out a unit's removal
type UnitDespawnedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Kind     string
	Tile     core.Tile
	Reason   string
}

// NewUnitDespawnedEvent creates a new UnitDespawnedEvent
func NewUnitDespawnedEvent(gameID string, id core.EntityID, kind string, tile core.Tile, reason string, turn int) *UnitDespawnedEvent {
	return &UnitDespawnedEvent{
		BaseEvent: base(TypeUnitDespawned, gameID),
		Metadata:  EventMetadata{UnitID: id, Turn: turn},
		Kind:      kind,
		Tile:      tile,
		Reason:    reason,
	}
}

// UnitsEvictedEvent is published by the start-of-day battlefield reset
type UnitsEvictedEvent struct {
	BaseEvent
	Metadata         EventMetadata
	EnemiesDespawned int
	PlayersHidden    int
}

// NewUnitsEvictedEvent creates a new UnitsEvictedEvent
func NewUnitsEvictedEvent(gameID string, enemies, players, turn int) *UnitsEvictedEvent {
	return &UnitsEvictedEvent{
		BaseEvent:        base(TypeUnitsEvicted, gameID),
		Metadata:         EventMetadata{Turn: turn},
		EnemiesDespawned: enemies,
		PlayersHidden:    players,
	}
}

// TilePressedEvent carries a tile picked by the input layer
type TilePressedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Tile     core.Tile
	Handled  string
}

// NewTilePressedEvent creates a new TilePressedEvent
func NewTilePressedEvent(gameID string, tile core.Tile, handled string, turn int) *TilePressedEvent {
	return &TilePressedEvent{
		BaseEvent: base(TypeTilePressed, gameID),
		Metadata:  EventMetadata{Turn: turn},
		Tile:      tile,
		Handled:   handled,
	}
}

// StructureBuiltEvent is published when construction places a structure
type StructureBuiltEvent struct {
	BaseEvent
	Metadata      EventMetadata
	StructureType string
	Tile          core.Tile
}

// NewStructureBuiltEvent creates a new StructureBuiltEvent
func NewStructureBuiltEvent(gameID string, id core.EntityID, structureType string, tile core.Tile, turn int) *StructureBuiltEvent {
	return &StructureBuiltEvent{
		BaseEvent:     base(TypeStructureBuilt, gameID),
		Metadata:      EventMetadata{UnitID: id, Turn: turn},
		StructureType: structureType,
		Tile:          tile,
	}
}
