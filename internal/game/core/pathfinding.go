package core

import (
	"github.com/zyedidia/generic/heap"
)

// PathQuery describes a shortest-path search
type PathQuery struct {
	Start      Tile
	Target     Tile
	Directions []Direction
	Airborne   bool
	Exempt     []EntityID
}

// Path is an ordered tile sequence from start to target, both inclusive
type Path struct {
	Tiles []Tile
	// Cost is the number of steps, len(Tiles)-1
	Cost int
}

type pathNode struct {
	tile Tile
	g    int
	f    int
	tie  int
	seq  int
}

// FindPath runs A* over the grid with unit step cost and the same successor
// filter as Flood. The actor on the start tile never blocks its own search.
// The second result is false when the target cannot be reached.
func (m *VillageMap) FindPath(q PathQuery) (Path, bool) {
	if !m.InBounds(q.Start) || !m.InBounds(q.Target) {
		return Path{}, false
	}
	if q.Start == q.Target {
		return Path{Tiles: []Tile{q.Start}}, true
	}

	exempt := exemptSet(q.Exempt)
	if self, ok := m.Actors.Get(q.Start); ok {
		exempt.Put(self)
	}
	if !m.canEnter(q.Target, q.Airborne, exempt) {
		return Path{}, false
	}

	h := admissibleHeuristic(q.Directions)
	open := heap.New[pathNode](func(a, b pathNode) bool {
		if a.f != b.f {
			return a.f < b.f
		}
		if a.tie != b.tie {
			return a.tie < b.tie
		}
		return a.seq < b.seq
	})

	gScore := map[Tile]int{q.Start: 0}
	cameFrom := make(map[Tile]Tile)
	closed := make(map[Tile]bool)
	seq := 0
	open.Push(pathNode{tile: q.Start, f: h(q.Start, q.Target), tie: q.Start.EuclideanSq(q.Target)})

	for open.Size() > 0 {
		cur, _ := open.Pop()
		if cur.tile == q.Target {
			return buildPath(cameFrom, q.Start, q.Target), true
		}
		if closed[cur.tile] {
			continue
		}
		closed[cur.tile] = true

		for _, d := range q.Directions {
			next := cur.tile.Step(d)
			if closed[next] || !m.canEnter(next, q.Airborne, exempt) {
				continue
			}
			g := cur.g + 1
			if known, ok := gScore[next]; ok && known <= g {
				continue
			}
			gScore[next] = g
			cameFrom[next] = cur.tile
			seq++
			open.Push(pathNode{
				tile: next,
				g:    g,
				f:    g + h(next, q.Target),
				tie:  next.EuclideanSq(q.Target),
				seq:  seq,
			})
		}
	}
	return Path{}, false
}

func buildPath(cameFrom map[Tile]Tile, start, target Tile) Path {
	tiles := []Tile{target}
	for cur := target; cur != start; {
		cur = cameFrom[cur]
		tiles = append(tiles, cur)
	}
	for i, j := 0, len(tiles)-1; i < j; i, j = i+1, j-1 {
		tiles[i], tiles[j] = tiles[j], tiles[i]
	}
	return Path{Tiles: tiles, Cost: len(tiles) - 1}
}

// admissibleHeuristic picks a lower bound on the remaining step count for the
// direction set. Euclidean squared is only used to break ties since it
// overestimates unit-cost distances.
func admissibleHeuristic(dirs []Direction) func(a, b Tile) int {
	for _, d := range dirs {
		if d.IsCorner() {
			return func(a, b Tile) int { return a.Chebyshev(b) }
		}
	}
	return func(a, b Tile) int { return a.Manhattan(b) }
}
