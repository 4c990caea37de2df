package ai

import (
	"math"

	"github.com/zyedidia/generic/queue"

	"github.com/mitchelldurbincs/VillageTactics/internal/game/core"
)

// Unreachable is the heat of a tile no target can be walked to
const Unreachable = math.MaxInt32

// HeatMap holds, for every tile, the king-move step count to the nearest
// target. Lower is hotter.
type HeatMap struct {
	w, h   int
	values []int
}

// BuildHeatMap runs a multi-source breadth-first search from every target
// tile over the whole grid. Obstacles do not cool the map; it measures
// proximity, not reachability.
func BuildHeatMap(w, h int, targets []core.Tile) *HeatMap {
	hm := &HeatMap{w: w, h: h, values: make([]int, w*h)}
	for i := range hm.values {
		hm.values[i] = Unreachable
	}

	q := queue.New[core.Tile]()
	for _, t := range targets {
		if !t.InBounds(w, h) {
			continue
		}
		idx := t.ToIndex(w)
		if hm.values[idx] == 0 {
			continue
		}
		hm.values[idx] = 0
		q.Enqueue(t)
	}

	for !q.Empty() {
		cur := q.Dequeue()
		next := hm.values[cur.ToIndex(w)] + 1
		for _, d := range core.AllDirections {
			n := cur.Step(d)
			if !n.InBounds(w, h) {
				continue
			}
			idx := n.ToIndex(w)
			if hm.values[idx] <= next {
				continue
			}
			hm.values[idx] = next
			q.Enqueue(n)
		}
	}
	return hm
}

// At returns the heat of t; out-of-bounds tiles are Unreachable
func (hm *HeatMap) At(t core.Tile) int {
	if !t.InBounds(hm.w, hm.h) {
		return Unreachable
	}
	return hm.values[t.ToIndex(hm.w)]
}
