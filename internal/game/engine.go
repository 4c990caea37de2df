package game

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/zyedidia/generic/mapset"

	"github.com/mitchelldurbincs/VillageTactics/internal/game/ai"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/core"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/cycle"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/events"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/mapgen"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/rules"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/spawn"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/states"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/units"
)

// Engine runs one village: its map, units, calendar and phases. Drivers call
// Tick once per frame and feed player input through the exported commands.
// An Engine is not safe for concurrent use.
type Engine struct {
	gameID string
	opts   Options
	logger zerolog.Logger

	level    *mapgen.Level
	vmap     *core.VillageMap
	registry *units.Registry
	clock    *cycle.Clock

	eventBus      events.Bus
	stateMachine  *states.StateMachine
	spawner       *spawn.Spawner
	planner       *ai.Planner
	controller    *ai.Controller
	production    *ProductionManager
	turnProcessor *TurnProcessor
	despawns      *despawnQueue
	stats         *StatsTracker
	defeat        *rules.DefeatChecker

	// Battle turn bookkeeping
	selected  core.EntityID
	moved     mapset.Set[core.EntityID]
	attacked  mapset.Set[core.EntityID]
	buildType string
}

// NewEngine creates an engine and loads its first level
func NewEngine(ctx context.Context, opts Options) (*Engine, error) {
	return NewEngineInitializer(opts).Initialize(ctx)
}

// LoadLevel swaps in a new level and resets the game onto it
func (e *Engine) LoadLevel(lvl *mapgen.Level) error {
	if lvl == nil {
		return ErrNoLevel
	}
	e.level = lvl
	return e.Reset()
}

// Reset restarts the current level: turn zero, building phase, starting gold,
// the level's structures and a fresh roster waiting off the map.
func (e *Engine) Reset() error {
	if e.level == nil {
		return ErrNoLevel
	}

	e.registry.Clear()
	e.vmap = e.level.NewMap(e.opts.Map.DeploymentInset)
	e.planner = ai.NewPlanner(e.vmap, e.registry, e.logger)
	e.controller = ai.NewController(ai.Deps{
		Map:       e.vmap,
		Registry:  e.registry,
		Health:    e.registry,
		Lifecycle: e.despawns,
		Planner:   e.planner,
		Publisher: e.eventBus,
		Calendar:  e.opts.Calendar,
		Settings:  e.opts.AI,
		GameID:    e.gameID,
		Logger:    e.logger,
	})
	if err := e.spawner.CheckFit(e.vmap); err != nil {
		e.logger.Warn().Err(err).Msg("Spawn band does not fit the level, nights will be quiet")
	}

	e.clock.Reset()
	e.stateMachine.Reset()
	e.despawns.drain()
	e.eventBus.Flush()
	e.stats.Reset()
	e.production.Reset(e.opts.StartingGold)
	e.clearBattleTurn()

	for _, p := range e.level.Structures {
		st, ok := units.LookupStats(p.Type)
		if !ok || !e.vmap.InBounds(p.Tile) {
			e.logger.Warn().Str("type", p.Type).Stringer("tile", p.Tile).Msg("Skipping invalid level structure")
			continue
		}
		u := e.registry.Spawn(st.Builder().Build())
		e.vmap.PlaceActor(p.Tile, u.ID)
	}
	for _, typ := range e.opts.Roster {
		u := e.registry.Spawn(units.MustStats(typ).Builder().Build())
		u.Hidden = true
	}

	e.refreshContext()
	e.logger.Info().
		Int("width", e.vmap.W).
		Int("height", e.vmap.H).
		Int("structures", e.registry.Count(units.KindStructure)).
		Int("roster", e.registry.Count(units.KindPlayer)).
		Msg("Level loaded")
	return nil
}

// Tick advances the game by dt seconds
func (e *Engine) Tick(ctx context.Context, dt float64) error {
	return e.turnProcessor.ProcessFrame(ctx, dt)
}

// RequestEndTurn queues an end-turn signal. It is ignored outside the
// building and battle turns.
func (e *Engine) RequestEndTurn() bool {
	phase := e.stateMachine.CurrentPhase()
	if !phase.AcceptsEndTurn() {
		e.logger.Debug().Stringer("phase", phase).Msg("End turn ignored")
		return false
	}
	e.clock.RequestEndTurn()
	return true
}

// EndDeployment starts the first battle turn of the night. While player
// units are still waiting for a tile it returns
// states.ErrDeploymentIncomplete and the phase stays put. Callers driven by
// UI input may ignore that error and let the player send the signal again.
func (e *Engine) EndDeployment() error {
	if err := e.requirePhase("end deployment", states.PhaseDeployment); err != nil {
		return err
	}
	e.refreshContext()
	if err := e.stateMachine.TransitionTo(states.PhaseBattleTurn, "Deployment confirmed"); err != nil {
		return err
	}
	e.clearBattleTurn()
	return nil
}

// CloseMerchant ends the start-of-day interlude
func (e *Engine) CloseMerchant() error {
	if err := e.requirePhase("close merchant", states.PhaseMerchant); err != nil {
		return err
	}
	e.refreshContext()
	return e.stateMachine.TransitionTo(states.PhaseBuildingTurn, "Merchant closed")
}

// PressTile routes a tile picked by the input layer according to the phase:
// deployment places or recalls units, battle selects, moves and attacks, and
// building constructs the selected structure type.
func (e *Engine) PressTile(tile core.Tile) (TileAction, error) {
	if !e.vmap.InBounds(tile) {
		return ActionNone, core.WrapTileError("press tile", tile, core.ErrOutOfBounds)
	}

	action, err := e.routePress(tile)
	e.eventBus.Publish(events.NewTilePressedEvent(e.gameID, tile, action.String(), e.clock.Turn()))
	return action, err
}

func (e *Engine) routePress(tile core.Tile) (TileAction, error) {
	occupant, occupied := e.vmap.OccupantAt(tile)
	kind, _ := e.registry.KindOf(occupant)

	switch e.stateMachine.CurrentPhase() {
	case states.PhaseDeployment:
		if occupied && kind == units.KindPlayer {
			return ActionRecall, e.RecallUnit(occupant)
		}
		next, ok := e.nextUndeployed()
		if !ok {
			return ActionNone, nil
		}
		return ActionDeploy, e.PlaceUnit(next, tile)

	case states.PhaseBattleTurn:
		if occupied && kind == units.KindPlayer {
			e.selected = occupant
			return ActionSelect, nil
		}
		if e.selected == core.NoEntity {
			return ActionNone, nil
		}
		if occupied && kind == units.KindEnemy {
			return ActionAttack, e.PlayerAttack(e.selected, tile)
		}
		return ActionMove, e.MoveUnit(e.selected, tile)

	case states.PhaseBuildingTurn:
		return ActionBuild, e.Build(e.buildType, tile)
	}
	return ActionNone, nil
}

// SelectStructure sets the type PressTile builds during the building turn
func (e *Engine) SelectStructure(structureType string) error {
	st, ok := units.LookupStats(structureType)
	if !ok || st.Kind != units.KindStructure {
		return fmt.Errorf("%q: %w", structureType, ErrNotAStructure)
	}
	e.buildType = structureType
	return nil
}

// Build spends gold to put a structure on a free dry tile
func (e *Engine) Build(structureType string, tile core.Tile) error {
	if err := e.requirePhase("build", states.PhaseBuildingTurn); err != nil {
		return err
	}
	st, ok := units.LookupStats(structureType)
	if !ok || st.Kind != units.KindStructure {
		return fmt.Errorf("%q: %w", structureType, ErrNotAStructure)
	}
	if err := e.checkStandable(tile, false, core.NoEntity); err != nil {
		return core.WrapTileError("build", tile, err)
	}
	if err := e.production.Spend(st.Cost); err != nil {
		return err
	}

	u := e.registry.Spawn(st.Builder().Build())
	e.vmap.PlaceActor(tile, u.ID)
	e.eventBus.Publish(events.NewStructureBuiltEvent(e.gameID, u.ID, structureType, tile, e.clock.Turn()))
	e.logger.Debug().
		Str("type", structureType).
		Stringer("tile", tile).
		Int("gold", e.production.Gold()).
		Msg("Structure built")
	return nil
}

// PlaceUnit puts a waiting player unit on a deployment tile
func (e *Engine) PlaceUnit(id core.EntityID, tile core.Tile) error {
	if err := e.requirePhase("place unit", states.PhaseDeployment); err != nil {
		return err
	}
	u, err := e.playerUnit(id)
	if err != nil {
		return err
	}
	if !e.vmap.InDeploymentZone(tile) {
		return core.WrapTileError("place unit", tile, core.ErrOutsideDeployment)
	}
	if err := e.checkStandable(tile, u.Airborne, id); err != nil {
		return core.WrapTileError("place unit", tile, err)
	}

	e.vmap.PlaceActor(tile, id)
	u.Hidden = false
	e.refreshContext()
	return nil
}

// RecallUnit takes a deployed player unit back off the map
func (e *Engine) RecallUnit(id core.EntityID) error {
	if err := e.requirePhase("recall unit", states.PhaseDeployment); err != nil {
		return err
	}
	u, err := e.playerUnit(id)
	if err != nil {
		return err
	}
	if _, ok := e.vmap.RemoveActor(id); !ok {
		return fmt.Errorf("recall %s: %w", u, ErrNotOnMap)
	}
	u.Hidden = true
	e.refreshContext()
	return nil
}

// Preview returns the tiles a unit could walk to this turn. Allies do not
// block the walk but remain occupied destinations.
func (e *Engine) Preview(id core.EntityID) (*core.Reachable, error) {
	u, ok := e.registry.Get(id)
	if !ok {
		return nil, fmt.Errorf("unit %d: %w", id, ErrUnknownUnit)
	}
	start, ok := e.vmap.LocateActor(id)
	if !ok {
		return nil, fmt.Errorf("preview %s: %w", u, ErrNotOnMap)
	}
	return e.vmap.Flood(core.FloodQuery{
		Start:      start,
		Budget:     u.Movement,
		Directions: u.Directions,
		Airborne:   u.Airborne,
		Exempt:     e.registry.IDs(u.Kind),
	}), nil
}

// LegalActions lists the tiles a player unit may still move to and the
// enemies it may still attack this battle turn
func (e *Engine) LegalActions(id core.EntityID) (rules.LegalActions, error) {
	u, err := e.playerUnit(id)
	if err != nil {
		return rules.LegalActions{}, err
	}
	reach, err := e.Preview(id)
	if err != nil {
		return rules.LegalActions{}, err
	}
	from, _ := e.vmap.LocateActor(id)
	legal := rules.NewLegalMoveCalculator(e.vmap, e.registry).Compute(u, from, reach, units.KindEnemy)
	if e.moved.Has(id) {
		legal.Moves = nil
	}
	if e.attacked.Has(id) {
		legal.Attacks = nil
	}
	return legal, nil
}

// VillageLost reports whether no player units and no houses remain
func (e *Engine) VillageLost() bool {
	return e.defeat.VillageLost(e.registry)
}

// MoveUnit walks a player unit to a reachable free tile, once per battle turn
func (e *Engine) MoveUnit(id core.EntityID, tile core.Tile) error {
	if err := e.requirePhase("move unit", states.PhaseBattleTurn); err != nil {
		return err
	}
	u, err := e.playerUnit(id)
	if err != nil {
		return err
	}
	if e.moved.Has(id) {
		return fmt.Errorf("move %s: %w", u, ErrAlreadyActed)
	}
	reach, err := e.Preview(id)
	if err != nil {
		return err
	}
	start, _ := e.vmap.LocateActor(id)
	if !reach.Contains(tile) {
		return core.WrapTileError("move unit", tile, core.ErrNotReachable)
	}
	if tile != start && !e.vmap.IsFree(tile) {
		return core.WrapTileError("move unit", tile, core.ErrTileOccupied)
	}

	steps, _ := reach.Cost(tile)
	e.vmap.PlaceActor(tile, id)
	e.moved.Put(id)
	e.eventBus.Publish(events.NewUnitMovedEvent(e.gameID, id, start, tile, steps, e.clock.Turn()))
	return nil
}

// PlayerAttack strikes the enemy on tile for one damage. Melee units must
// attack along one of their directions; ranged units reach any tile within
// their range.
func (e *Engine) PlayerAttack(id core.EntityID, tile core.Tile) error {
	if err := e.requirePhase("attack", states.PhaseBattleTurn); err != nil {
		return err
	}
	u, err := e.playerUnit(id)
	if err != nil {
		return err
	}
	if e.attacked.Has(id) {
		return fmt.Errorf("attack with %s: %w", u, ErrAlreadyActed)
	}
	from, ok := e.vmap.LocateActor(id)
	if !ok {
		return fmt.Errorf("attack with %s: %w", u, ErrNotOnMap)
	}
	if !rules.InAttackRange(u, from, tile) {
		return core.WrapTileError("attack", tile, ErrOutOfRange)
	}
	victim, ok := e.vmap.OccupantAt(tile)
	if kind, known := e.registry.KindOf(victim); !ok || !known || kind != units.KindEnemy {
		return core.WrapTileError("attack", tile, ErrNoTarget)
	}

	turn := e.clock.Turn()
	e.eventBus.Publish(events.NewAttackStartedEvent(e.gameID, id, victim, from, tile, turn))
	hp, _ := e.registry.Health(victim)
	hp, _ = e.registry.SetHealth(victim, hp-1)
	e.eventBus.Publish(events.NewUnitDamagedEvent(e.gameID, victim, id, 1, hp, turn))
	if hp == 0 {
		e.despawns.FlagDespawn(victim, ai.ReasonKilled)
	}

	e.attacked.Put(id)
	e.moved.Put(id)
	return nil
}

// requirePhase fails with ErrWrongPhase unless the machine is in want
func (e *Engine) requirePhase(op string, want states.GamePhase) error {
	if phase := e.stateMachine.CurrentPhase(); phase != want {
		return WrapPhaseError(op, phase, ErrWrongPhase)
	}
	return nil
}

func (e *Engine) playerUnit(id core.EntityID) (*units.Unit, error) {
	u, ok := e.registry.Get(id)
	if !ok {
		return nil, fmt.Errorf("unit %d: %w", id, ErrUnknownUnit)
	}
	if u.Kind != units.KindPlayer {
		return nil, fmt.Errorf("%s: %w", u, ErrNotPlayerUnit)
	}
	return u, nil
}

// checkStandable rejects water for ground units and tiles held by anyone but self
func (e *Engine) checkStandable(tile core.Tile, airborne bool, self core.EntityID) error {
	if !e.vmap.InBounds(tile) {
		return core.ErrOutOfBounds
	}
	if !airborne && e.vmap.IsWater(tile) {
		return core.ErrTileImpassable
	}
	if occupant, ok := e.vmap.OccupantAt(tile); ok && occupant != self {
		return core.ErrTileOccupied
	}
	return nil
}

// nextUndeployed returns the lowest-id player unit still off the map
func (e *Engine) nextUndeployed() (core.EntityID, bool) {
	for _, id := range e.registry.IDs(units.KindPlayer) {
		if _, onMap := e.vmap.LocateActor(id); !onMap {
			return id, true
		}
	}
	return core.NoEntity, false
}

func (e *Engine) clearBattleTurn() {
	e.selected = core.NoEntity
	e.moved = mapset.New[core.EntityID]()
	e.attacked = mapset.New[core.EntityID]()
}

// refreshContext copies the counts phase validation depends on
func (e *Engine) refreshContext() {
	gc := e.stateMachine.GetContext()
	gc.Turn = e.clock.Turn()
	gc.RosterSize = e.registry.Count(units.KindPlayer)
	gc.EnemyCount = e.registry.Count(units.KindEnemy)
	gc.PlacedCount = 0
	for _, id := range e.registry.IDs(units.KindPlayer) {
		if _, onMap := e.vmap.LocateActor(id); onMap {
			gc.PlacedCount++
		}
	}
}

// Public accessors
func (e *Engine) GameID() string               { return e.gameID }
func (e *Engine) Map() *core.VillageMap        { return e.vmap }
func (e *Engine) Registry() *units.Registry    { return e.registry }
func (e *Engine) Phase() states.GamePhase      { return e.stateMachine.CurrentPhase() }
func (e *Engine) Turn() int                    { return e.clock.Turn() }
func (e *Engine) Calendar() cycle.Snapshot     { return e.clock.Snapshot() }
func (e *Engine) Gold() int                    { return e.production.Gold() }
func (e *Engine) EventBus() events.Bus         { return e.eventBus }
func (e *Engine) Stats() Stats                 { return e.stats.Snapshot() }
func (e *Engine) History() []states.Transition { return e.stateMachine.GetHistory() }
func (e *Engine) Selected() core.EntityID      { return e.selected }
func (e *Engine) EnemyState() string           { return e.controller.State() }
func (e *Engine) PendingDespawns() int         { return e.despawns.Len() }

// GameState summarises the engine for drivers
func (e *Engine) GameState() GameState {
	gc := e.stateMachine.GetContext()
	return GameState{
		Turn:        e.clock.Turn(),
		Phase:       e.stateMachine.CurrentPhase(),
		Calendar:    e.clock.Snapshot(),
		Gold:        e.production.Gold(),
		PlayerUnits: gc.RosterSize,
		PlacedUnits: gc.PlacedCount,
		Enemies:     e.registry.Count(units.KindEnemy),
		Structures:  e.registry.Count(units.KindStructure),
		Selected:    uint32(e.selected),
		Stats:       e.stats.Snapshot(),
	}
}
