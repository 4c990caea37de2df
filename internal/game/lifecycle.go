package game

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/mitchelldurbincs/VillageTactics/internal/game/ai"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/core"
)

type despawn struct {
	id     core.EntityID
	reason string
}

// despawnQueue collects units flagged for removal during a frame. The engine
// removes them at the end of the frame so systems iterating the registry
// never see a unit vanish underneath them.
type despawnQueue struct {
	order   []despawn
	flagged mapset.Set[core.EntityID]
}

var _ ai.Lifecycle = (*despawnQueue)(nil)

func newDespawnQueue() *despawnQueue {
	return &despawnQueue{flagged: mapset.New[core.EntityID]()}
}

// FlagDespawn queues id; later flags for the same id are ignored
func (q *despawnQueue) FlagDespawn(id core.EntityID, reason string) {
	if q.flagged.Has(id) {
		return
	}
	q.flagged.Put(id)
	q.order = append(q.order, despawn{id: id, reason: reason})
}

// Flagged reports whether id waits for removal
func (q *despawnQueue) Flagged(id core.EntityID) bool {
	return q.flagged.Has(id)
}

func (q *despawnQueue) Len() int {
	return len(q.order)
}

// drain returns the queued removals in flag order and empties the queue
func (q *despawnQueue) drain() []despawn {
	out := q.order
	q.order = nil
	q.flagged = mapset.New[core.EntityID]()
	return out
}
