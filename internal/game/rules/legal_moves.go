package rules

import (
	"github.com/mitchelldurbincs/VillageTactics/internal/game/core"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/units"
)

// LegalActions lists where a unit may walk and what it may hit this turn
type LegalActions struct {
	Moves   []core.Tile
	Attacks []core.Tile
}

// LegalMoveCalculator computes legal actions for player units
type LegalMoveCalculator struct {
	m   *core.VillageMap
	reg *units.Registry
}

// NewLegalMoveCalculator creates a calculator over a map and its units
func NewLegalMoveCalculator(m *core.VillageMap, reg *units.Registry) *LegalMoveCalculator {
	return &LegalMoveCalculator{m: m, reg: reg}
}

// InAttackRange reports whether u standing on from can hit to. Melee units
// strike along one of their directions; ranged units reach any tile within
// their Chebyshev range.
func InAttackRange(u *units.Unit, from, to core.Tile) bool {
	dist := from.Chebyshev(to)
	if dist == 0 || dist > u.Range {
		return false
	}
	if u.Range > 1 {
		return true
	}
	d, ok := from.DirectionTo(to)
	if !ok {
		return false
	}
	for _, allowed := range u.Directions {
		if allowed == d {
			return true
		}
	}
	return false
}

// MoveTargets filters reach down to tiles u can end its walk on: free tiles
// and the start tile, in row-major order
func (lmc *LegalMoveCalculator) MoveTargets(reach *core.Reachable, start core.Tile) []core.Tile {
	var tiles []core.Tile
	for _, t := range reach.Sorted() {
		if t == start || lmc.m.IsFree(t) {
			tiles = append(tiles, t)
		}
	}
	return tiles
}

// AttackTargets lists the tiles holding a unit of kind victim that u can hit
// from where it stands, in row-major order
func (lmc *LegalMoveCalculator) AttackTargets(u *units.Unit, from core.Tile, victim units.Kind) []core.Tile {
	var tiles []core.Tile
	for y := from.Y - u.Range; y <= from.Y+u.Range; y++ {
		for x := from.X - u.Range; x <= from.X+u.Range; x++ {
			t := core.NewTile(x, y)
			if !lmc.m.InBounds(t) || !InAttackRange(u, from, t) {
				continue
			}
			id, ok := lmc.m.OccupantAt(t)
			if !ok {
				continue
			}
			if kind, known := lmc.reg.KindOf(id); known && kind == victim {
				tiles = append(tiles, t)
			}
		}
	}
	return tiles
}

// Compute returns every legal action of u given its flood preview
func (lmc *LegalMoveCalculator) Compute(u *units.Unit, from core.Tile, reach *core.Reachable, victim units.Kind) LegalActions {
	return LegalActions{
		Moves:   lmc.MoveTargets(reach, from),
		Attacks: lmc.AttackTargets(u, from, victim),
	}
}
