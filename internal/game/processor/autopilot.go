package processor

import (
	"sort"

	"github.com/rs/zerolog"
	"github.com/zyedidia/generic/mapset"

	"github.com/mitchelldurbincs/VillageTactics/internal/game"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/core"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/states"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/units"
)

// Autopilot plays the player side with simple greedy rules so headless runs
// can exercise every phase
type Autopilot struct {
	// BuildType is bought during building turns
	BuildType string
	// Reserve is the gold kept back when building
	Reserve int

	logger zerolog.Logger
}

// NewAutopilot creates an autopilot that builds walls
func NewAutopilot(logger zerolog.Logger) *Autopilot {
	return &Autopilot{
		BuildType: units.TypeWall,
		logger:    logger.With().Str("component", "Autopilot").Logger(),
	}
}

// Plan returns the commands for the current phase. The enemy turn needs no
// input and yields nil.
func (a *Autopilot) Plan(e *game.Engine) []Command {
	var cmds []Command
	switch e.Phase() {
	case states.PhaseDeployment:
		cmds = append(a.planDeployment(e), EndDeploymentCommand{})
	case states.PhaseBattleTurn:
		cmds = append(a.planBattle(e), EndTurnCommand{})
	case states.PhaseBuildingTurn:
		cmds = append(a.planBuilding(e), EndTurnCommand{})
	case states.PhaseMerchant:
		cmds = []Command{CloseMerchantCommand{}}
	}
	a.logger.Debug().Stringer("phase", e.Phase()).Int("commands", len(cmds)).Msg("Planned commands")
	return cmds
}

// planDeployment puts waiting units as deep inside the zone as possible
func (a *Autopilot) planDeployment(e *game.Engine) []Command {
	m := e.Map()
	zone := m.DeploymentZone()
	sort.SliceStable(zone, func(i, j int) bool {
		return m.BorderDistance(zone[i]) > m.BorderDistance(zone[j])
	})

	var cmds []Command
	next := 0
	for _, id := range e.Registry().IDs(units.KindPlayer) {
		if _, onMap := m.LocateActor(id); onMap {
			continue
		}
		for next < len(zone) && !standable(m, zone[next]) {
			next++
		}
		if next == len(zone) {
			a.logger.Warn().Uint32("unit_id", uint32(id)).Msg("No free deployment tile left")
			break
		}
		cmds = append(cmds, PlaceCommand{UnitID: id, Tile: zone[next]})
		next++
	}
	return cmds
}

// planBattle attacks when something is in range and otherwise closes in on
// the nearest enemy
func (a *Autopilot) planBattle(e *game.Engine) []Command {
	m := e.Map()
	var enemies []core.Tile
	for _, id := range e.Registry().IDs(units.KindEnemy) {
		if t, ok := m.LocateActor(id); ok {
			enemies = append(enemies, t)
		}
	}

	claimed := mapset.New[core.Tile]()
	var cmds []Command
	for _, id := range e.Registry().IDs(units.KindPlayer) {
		from, onMap := m.LocateActor(id)
		if !onMap {
			continue
		}
		legal, err := e.LegalActions(id)
		if err != nil {
			continue
		}
		if len(legal.Attacks) > 0 {
			cmds = append(cmds, AttackCommand{UnitID: id, Tile: legal.Attacks[0]})
			continue
		}
		if len(enemies) == 0 {
			continue
		}

		best, bestDist := from, nearest(from, enemies)
		for _, t := range legal.Moves {
			if claimed.Has(t) {
				continue
			}
			if d := nearest(t, enemies); d < bestDist {
				best, bestDist = t, d
			}
		}
		if best != from {
			claimed.Put(best)
			cmds = append(cmds, MoveCommand{UnitID: id, Tile: best})
		}
	}
	return cmds
}

// planBuilding buys one structure on the outer ring of the deployment zone
func (a *Autopilot) planBuilding(e *game.Engine) []Command {
	st, ok := units.LookupStats(a.BuildType)
	if !ok || e.Gold() < st.Cost+a.Reserve {
		return nil
	}
	m := e.Map()
	zone := m.DeploymentZone()
	sort.SliceStable(zone, func(i, j int) bool {
		return m.BorderDistance(zone[i]) < m.BorderDistance(zone[j])
	})
	for _, t := range zone {
		if standable(m, t) {
			return []Command{BuildCommand{Type: a.BuildType, Tile: t}}
		}
	}
	return nil
}

func standable(m *core.VillageMap, t core.Tile) bool {
	return m.IsFree(t) && !m.IsWater(t)
}

func nearest(from core.Tile, targets []core.Tile) int {
	best := -1
	for _, t := range targets {
		if d := from.Chebyshev(t); best < 0 || d < best {
			best = d
		}
	}
	return best
}
