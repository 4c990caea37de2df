package core

import (
	"sort"

	"github.com/zyedidia/generic/heap"
	"github.com/zyedidia/generic/mapset"
)

// FloodQuery describes a reachable-area computation
type FloodQuery struct {
	Start Tile
	// Budget is the number of unit-cost steps the mover may take
	Budget     int
	Directions []Direction
	Airborne   bool
	// Exempt actors do not block movement (allies during a move preview)
	Exempt []EntityID
}

// Reachable is the result of a flood fill: every tile the mover can reach,
// with the fewest steps needed to get there.
type Reachable struct {
	Tiles mapset.Set[Tile]
	costs map[Tile]int
}

// Contains reports whether t can be reached
func (r *Reachable) Contains(t Tile) bool {
	return r.Tiles.Has(t)
}

// Cost returns the minimum step count to t
func (r *Reachable) Cost(t Tile) (int, bool) {
	c, ok := r.costs[t]
	return c, ok
}

// Len returns the number of reachable tiles, start included
func (r *Reachable) Len() int {
	return r.Tiles.Size()
}

// Sorted returns the reachable tiles in row-major order
func (r *Reachable) Sorted() []Tile {
	tiles := make([]Tile, 0, r.Tiles.Size())
	r.Tiles.Each(func(t Tile) {
		tiles = append(tiles, t)
	})
	sort.Slice(tiles, func(i, j int) bool { return RowMajorLess(tiles[i], tiles[j]) })
	return tiles
}

type frontierNode struct {
	tile Tile
	cost int
	seq  int
}

// Flood computes every tile reachable from q.Start within q.Budget steps.
// The start tile is always part of the result, even when it is water or
// occupied; blocking rules only apply to successors.
func (m *VillageMap) Flood(q FloodQuery) *Reachable {
	m.mustBeInBounds(q.Start, "flood")

	r := &Reachable{
		Tiles: mapset.New[Tile](),
		costs: make(map[Tile]int),
	}
	r.Tiles.Put(q.Start)
	r.costs[q.Start] = 0
	if q.Budget <= 0 {
		return r
	}

	exempt := exemptSet(q.Exempt)
	open := heap.New[frontierNode](func(a, b frontierNode) bool {
		if a.cost != b.cost {
			return a.cost < b.cost
		}
		return a.seq < b.seq
	})
	seq := 0
	open.Push(frontierNode{tile: q.Start})

	for open.Size() > 0 {
		cur, _ := open.Pop()
		if best := r.costs[cur.tile]; cur.cost > best {
			continue
		}
		next := cur.cost + 1
		if next > q.Budget {
			continue
		}
		for _, d := range q.Directions {
			t := cur.tile.Step(d)
			if known, seen := r.costs[t]; seen && known <= next {
				continue
			}
			if !m.canEnter(t, q.Airborne, exempt) {
				continue
			}
			r.costs[t] = next
			r.Tiles.Put(t)
			seq++
			open.Push(frontierNode{tile: t, cost: next, seq: seq})
		}
	}
	return r
}

// canEnter applies the successor filter shared by flood fill and pathfinding
func (m *VillageMap) canEnter(t Tile, airborne bool, exempt mapset.Set[EntityID]) bool {
	if !m.InBounds(t) {
		return false
	}
	if occupant, ok := m.Actors.Get(t); ok && !exempt.Has(occupant) {
		return false
	}
	if !airborne && m.IsWater(t) {
		return false
	}
	return true
}

func exemptSet(ids []EntityID) mapset.Set[EntityID] {
	s := mapset.New[EntityID]()
	for _, id := range ids {
		s.Put(id)
	}
	return s
}
