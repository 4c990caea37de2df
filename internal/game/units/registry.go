package units

import (
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/VillageTactics/internal/game/core"
)

// HealthStore reads and writes health by id. Combat goes through this
// interface rather than touching units directly.
type HealthStore interface {
	Health(id core.EntityID) (int, bool)
	SetHealth(id core.EntityID, hp int) (int, bool)
}

// Registry owns every unit of a level and hands out ids
type Registry struct {
	mu     sync.RWMutex
	nextID core.EntityID
	units  map[core.EntityID]*Unit
	logger zerolog.Logger
}

var _ HealthStore = (*Registry)(nil)

// NewRegistry creates an empty registry
func NewRegistry(logger zerolog.Logger) *Registry {
	return &Registry{
		nextID: core.NoEntity + 1,
		units:  make(map[core.EntityID]*Unit),
		logger: logger.With().Str("component", "registry").Logger(),
	}
}

// Spawn stores u under a fresh id and returns the stored unit
func (r *Registry) Spawn(u Unit) *Unit {
	r.mu.Lock()
	defer r.mu.Unlock()

	u.ID = r.nextID
	r.nextID++
	stored := &u
	r.units[u.ID] = stored

	r.logger.Debug().
		Uint32("unit_id", uint32(u.ID)).
		Str("kind", u.Kind.String()).
		Str("type", u.Type).
		Msg("Unit spawned")
	return stored
}

// Get returns the unit with the given id
func (r *Registry) Get(id core.EntityID) (*Unit, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.units[id]
	return u, ok
}

// KindOf returns the kind of the unit with the given id
func (r *Registry) KindOf(id core.EntityID) (Kind, bool) {
	u, ok := r.Get(id)
	if !ok {
		return 0, false
	}
	return u.Kind, true
}

// Remove deletes a unit. It does not touch the map.
func (r *Registry) Remove(id core.EntityID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.units[id]; !ok {
		return false
	}
	delete(r.units, id)
	return true
}

// Health implements HealthStore
func (r *Registry) Health(id core.EntityID) (int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.units[id]
	if !ok {
		return 0, false
	}
	return u.Health, true
}

// SetHealth implements HealthStore. The stored value is clamped to
// [0, MaxHealth] and returned.
func (r *Registry) SetHealth(id core.EntityID, hp int) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.units[id]
	if !ok {
		return 0, false
	}
	u.Health = min(max(0, hp), u.MaxHealth)
	return u.Health, true
}

// IDs returns the ids of every unit of kind in ascending order
func (r *Registry) IDs(kind Kind) []core.EntityID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]core.EntityID, 0, len(r.units))
	for id, u := range r.units {
		if u.Kind == kind {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Each calls fn for every unit of kind in ascending id order until fn
// returns false
func (r *Registry) Each(kind Kind, fn func(*Unit) bool) {
	for _, id := range r.IDs(kind) {
		u, ok := r.Get(id)
		if !ok {
			continue
		}
		if !fn(u) {
			return
		}
	}
}

// Count returns the number of units of kind
func (r *Registry) Count(kind Kind) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, u := range r.units {
		if u.Kind == kind {
			n++
		}
	}
	return n
}

// Len returns the number of stored units
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.units)
}

// Clear drops every unit. Ids keep increasing so stale ids never alias.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.units = make(map[core.EntityID]*Unit)
}
