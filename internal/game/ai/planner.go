package ai

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/VillageTactics/internal/game/core"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/units"
)

// Plan is one enemy's decision for the turn
type Plan struct {
	UnitID core.EntityID
	From   core.Tile
	To     core.Tile
	Path   core.Path
}

// Planner picks destinations for every enemy at the start of the enemy turn
type Planner struct {
	m      *core.VillageMap
	reg    *units.Registry
	tg     targeting
	logger zerolog.Logger
}

// NewPlanner creates a planner over a map and its units
func NewPlanner(m *core.VillageMap, reg *units.Registry, logger zerolog.Logger) *Planner {
	return &Planner{
		m:      m,
		reg:    reg,
		tg:     targeting{m: m, reg: reg},
		logger: logger.With().Str("component", "planner").Logger(),
	}
}

// Plan regenerates the heat map once and then plans each enemy in id order.
// Each enemy's new tile is written to the actor index before the next enemy
// plans, so no two enemies pick the same destination.
func (p *Planner) Plan() []Plan {
	heat := BuildHeatMap(p.m.W, p.m.H, p.tg.targets())
	enemies := p.reg.IDs(units.KindEnemy)

	plans := make([]Plan, 0, len(enemies))
	for _, id := range enemies {
		u, ok := p.reg.Get(id)
		if !ok {
			continue
		}
		start, onMap := p.m.LocateActor(id)
		if !onMap {
			continue
		}

		plan := p.planOne(u, start, heat, enemies)
		plans = append(plans, plan)
	}

	p.logger.Debug().Int("enemies", len(plans)).Msg("Enemy turn planned")
	return plans
}

func (p *Planner) planOne(u *units.Unit, start core.Tile, heat *HeatMap, allies []core.EntityID) Plan {
	reach := p.m.Flood(core.FloodQuery{
		Start:      start,
		Budget:     u.Movement,
		Directions: u.Directions,
		Airborne:   u.Airborne,
		Exempt:     allies,
	})
	best := p.BestTile(u, start, reach, heat)

	path, found := p.m.FindPath(core.PathQuery{
		Start:      start,
		Target:     best,
		Directions: u.Directions,
		Airborne:   u.Airborne,
		Exempt:     allies,
	})
	if !found {
		p.logger.Warn().
			Uint32("unit_id", uint32(u.ID)).
			Stringer("from", start).
			Stringer("to", best).
			Msg("No path to chosen tile, enemy holds position")
		path = core.Path{Tiles: []core.Tile{start}}
		best = start
	}

	if best != start {
		ow := p.m.PlaceActor(best, u.ID)
		if ow.Kind != core.OverwriteMoved {
			panic(fmt.Sprintf("enemy %d moved onto occupied tile %s (%s)", u.ID, best, ow.Kind))
		}
	}
	u.SetPath(units.NewPathState(path.Tiles))

	p.logger.Trace().
		Uint32("unit_id", uint32(u.ID)).
		Stringer("from", start).
		Stringer("to", best).
		Int("steps", path.Cost).
		Int("heat", heat.At(best)).
		Msg("Enemy planned")

	return Plan{UnitID: u.ID, From: start, To: best, Path: path}
}

// BestTile chooses the destination among reachable tiles that are free or
// the enemy's own tile. It minimises, in order: not being able to attack from
// the tile, heat, steps from start, then row and column.
func (p *Planner) BestTile(u *units.Unit, start core.Tile, reach *core.Reachable, heat *HeatMap) core.Tile {
	best := start
	bestScore := p.score(u, start, reach, heat)

	for _, t := range reach.Sorted() {
		if t != start && !p.m.IsFree(t) {
			continue
		}
		s := p.score(u, t, reach, heat)
		if s.less(bestScore) {
			best, bestScore = t, s
		}
	}
	return best
}

type tileScore struct {
	notAdjacent int
	heat        int
	steps       int
	y, x        int
}

func (a tileScore) less(b tileScore) bool {
	if a.notAdjacent != b.notAdjacent {
		return a.notAdjacent < b.notAdjacent
	}
	if a.heat != b.heat {
		return a.heat < b.heat
	}
	if a.steps != b.steps {
		return a.steps < b.steps
	}
	if a.y != b.y {
		return a.y < b.y
	}
	return a.x < b.x
}

func (p *Planner) score(u *units.Unit, t core.Tile, reach *core.Reachable, heat *HeatMap) tileScore {
	steps, _ := reach.Cost(t)
	s := tileScore{notAdjacent: 1, heat: heat.At(t), steps: steps, y: t.Y, x: t.X}
	if _, ok := p.tg.adjacentTarget(t, u.Directions); ok {
		s.notAdjacent = 0
	}
	return s
}
