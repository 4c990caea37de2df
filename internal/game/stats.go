package game

import (
	"sync"

	"github.com/mitchelldurbincs/VillageTactics/internal/game/ai"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/events"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/units"
)

// Stats is a running tally of what happened in a game
type Stats struct {
	NightsSurvived   int
	EnemiesSpawned   int
	EnemiesKilled    int
	UnitsLost        int
	StructuresBuilt  int
	StructuresLost   int
	DamageDealt      int
	DamageTaken      int
	EnemiesDespawned int
}

// StatsTracker listens on the event bus and keeps Stats current
type StatsTracker struct {
	mu      sync.Mutex
	stats   Stats
	enemies map[uint32]bool
}

var _ events.Subscriber = (*StatsTracker)(nil)

// NewStatsTracker creates an empty tracker
func NewStatsTracker() *StatsTracker {
	return &StatsTracker{enemies: make(map[uint32]bool)}
}

func (st *StatsTracker) ID() string {
	return "stats_tracker"
}

func (st *StatsTracker) InterestedIn(eventType string) bool {
	switch eventType {
	case events.TypeEnemySpawned, events.TypeUnitDamaged, events.TypeUnitDespawned,
		events.TypeUnitsEvicted, events.TypeStructureBuilt:
		return true
	}
	return false
}

func (st *StatsTracker) HandleEvent(event events.Event) {
	st.mu.Lock()
	defer st.mu.Unlock()

	switch e := event.(type) {
	case *events.EnemySpawnedEvent:
		st.stats.EnemiesSpawned++
		st.enemies[uint32(e.Metadata.UnitID)] = true

	case *events.UnitDamagedEvent:
		if st.enemies[uint32(e.Metadata.UnitID)] {
			st.stats.DamageDealt += e.Amount
		} else {
			st.stats.DamageTaken += e.Amount
		}

	case *events.UnitDespawnedEvent:
		id := uint32(e.Metadata.UnitID)
		switch {
		case e.Reason != ai.ReasonKilled:
			if st.enemies[id] {
				st.stats.EnemiesDespawned++
			}
		case st.enemies[id]:
			st.stats.EnemiesKilled++
		case e.Kind == units.KindStructure.String():
			st.stats.StructuresLost++
		default:
			st.stats.UnitsLost++
		}
		delete(st.enemies, id)

	case *events.UnitsEvictedEvent:
		st.stats.NightsSurvived++

	case *events.StructureBuiltEvent:
		st.stats.StructuresBuilt++
	}
}

// Snapshot returns a copy of the current tallies
func (st *StatsTracker) Snapshot() Stats {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.stats
}

// Reset zeroes every tally
func (st *StatsTracker) Reset() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.stats = Stats{}
	st.enemies = make(map[uint32]bool)
}
