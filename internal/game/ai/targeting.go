package ai

import (
	"github.com/mitchelldurbincs/VillageTactics/internal/game/core"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/units"
)

// targeting answers "who stands here and may an enemy hit it"
type targeting struct {
	m   *core.VillageMap
	reg *units.Registry
}

// attackableAt returns the visible player unit or structure on t
func (tg targeting) attackableAt(t core.Tile) (*units.Unit, bool) {
	id, ok := tg.m.OccupantAt(t)
	if !ok {
		return nil, false
	}
	u, ok := tg.reg.Get(id)
	if !ok || !u.Kind.Attackable() || u.Hidden {
		return nil, false
	}
	return u, true
}

// damageableAt is attackableAt restricted to units with health
func (tg targeting) damageableAt(t core.Tile) (*units.Unit, bool) {
	u, ok := tg.attackableAt(t)
	if !ok || !u.Damageable() {
		return nil, false
	}
	return u, true
}

// targets lists the tiles of every attackable occupant in row-major order
func (tg targeting) targets() []core.Tile {
	var tiles []core.Tile
	tg.m.Actors.Each(func(t core.Tile, _ core.EntityID) bool {
		if _, ok := tg.attackableAt(t); ok {
			tiles = append(tiles, t)
		}
		return true
	})
	return tiles
}

// adjacentTarget returns the first tile, scanning dirs in order, that holds
// something attackable next to from
func (tg targeting) adjacentTarget(from core.Tile, dirs []core.Direction) (core.Tile, bool) {
	for _, d := range dirs {
		n := from.Step(d)
		if _, ok := tg.attackableAt(n); ok {
			return n, true
		}
	}
	return core.Tile{}, false
}
