package game

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/VillageTactics/internal/game/cycle"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/events"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/states"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/units"
)

// TurnProcessor is the per-frame system: it turns queued end-turn signals
// into calendar transitions and phase changes, runs the enemy turn, and
// removes despawned units at the end of the frame.
type TurnProcessor struct {
	engine *Engine
	logger zerolog.Logger
}

// NewTurnProcessor creates a new turn processor
func NewTurnProcessor(engine *Engine) *TurnProcessor {
	return &TurnProcessor{
		engine: engine,
		logger: engine.logger.With().Str("component", "turn_processor").Logger(),
	}
}

// ProcessFrame runs one frame of dt seconds
func (tp *TurnProcessor) ProcessFrame(ctx context.Context, dt float64) error {
	if err := tp.checkContext(ctx, "before frame"); err != nil {
		return err
	}

	if err := tp.dispatchEndTurn(); err != nil {
		return err
	}

	if tp.engine.stateMachine.CurrentPhase() == states.PhaseEnemyTurn {
		if err := tp.runEnemyTurn(ctx, dt); err != nil {
			return err
		}
	}

	tp.finalizeDespawns()
	tp.engine.eventBus.Flush()
	return nil
}

// checkContext checks if the context is cancelled
func (tp *TurnProcessor) checkContext(ctx context.Context, phase string) error {
	select {
	case <-ctx.Done():
		tp.logger.Warn().
			Err(ctx.Err()).
			Int("turn", tp.engine.clock.Turn()).
			Str("phase", phase).
			Msg("Frame cancelled or timed out")
		return ctx.Err()
	default:
		return nil
	}
}

// dispatchEndTurn advances the clock once for however many end-turn signals
// were queued, then reacts to the new turn according to the current phase
func (tp *TurnProcessor) dispatchEndTurn() error {
	e := tp.engine
	tr, ok := e.clock.Dispatch()
	if !ok {
		return nil
	}
	tp.publishCalendar(tr)
	e.refreshContext()

	switch phase := e.stateMachine.CurrentPhase(); phase {
	case states.PhaseBuildingTurn:
		switch {
		case tr.EntersDeployment():
			return tp.beginNight(tr.Current)
		case tr.EntersMerchant():
			return tp.beginDay(tr.Current)
		}

	case states.PhaseBattleTurn:
		return tp.beginEnemyTurn()

	default:
		// RequestEndTurn only queues in phases that accept it
		tp.logger.Warn().Stringer("phase", phase).Msg("End turn dispatched outside a turn phase")
	}
	return nil
}

func (tp *TurnProcessor) publishCalendar(tr cycle.Transition) {
	e := tp.engine
	cur := tr.Current

	e.eventBus.Publish(events.NewTurnAdvancedEvent(e.gameID, tr.Previous.Turn, cur.Turn, cur.Day))
	if tr.NightFell() || tr.DayBroke() {
		e.eventBus.Publish(events.NewTimeChangedEvent(e.gameID, cur.TimeOfDay.String(), cur.Turn))
	}
	if tr.SeasonChanged() {
		e.eventBus.Publish(events.NewSeasonChangedEvent(
			e.gameID,
			tr.Previous.Season.String(),
			cur.Season.String(),
			cur.DayCycle.DayTurns,
			cur.DayCycle.NightTurns,
			cur.Turn,
		))
	}
}

// beginNight spawns the season's enemies and opens deployment
func (tp *TurnProcessor) beginNight(now cycle.Snapshot) error {
	e := tp.engine
	spawned := e.spawner.SpawnNight(e.vmap, e.registry, now.Season)
	for _, u := range spawned {
		tile, _ := e.vmap.LocateActor(u.ID)
		e.eventBus.Publish(events.NewEnemySpawnedEvent(e.gameID, u.ID, u.Type, tile, now.Turn))
	}

	e.refreshContext()
	return e.stateMachine.TransitionTo(states.PhaseDeployment, fmt.Sprintf("Dusk on day %d", now.Day))
}

// beginDay pays the daily income and opens the merchant
func (tp *TurnProcessor) beginDay(now cycle.Snapshot) error {
	e := tp.engine
	e.production.CollectIncome(now.Day)
	e.refreshContext()
	return e.stateMachine.TransitionTo(states.PhaseMerchant, fmt.Sprintf("Day %d begins", now.Day))
}

// beginEnemyTurn hands control to the controller, which resolves pending
// attacks before planning moves
func (tp *TurnProcessor) beginEnemyTurn() error {
	e := tp.engine
	e.controller.Reset()
	e.selected = 0

	e.refreshContext()
	tp.logger.Debug().
		Int("turn", e.clock.Turn()).
		Int("enemies", e.registry.Count(units.KindEnemy)).
		Msg("Enemy turn starting")
	return e.stateMachine.TransitionTo(states.PhaseEnemyTurn, "Player ended turn")
}

// runEnemyTurn ticks the controller. When the enemies are done the night
// either goes on with another battle turn or, at the day boundary, gives way
// to the merchant.
func (tp *TurnProcessor) runEnemyTurn(ctx context.Context, dt float64) error {
	e := tp.engine
	done, err := e.controller.Tick(ctx, dt, e.clock.Turn())
	if err != nil {
		return fmt.Errorf("enemy turn: %w", err)
	}
	if !done {
		return nil
	}

	// Units killed this turn leave before the next phase validates the roster
	tp.finalizeDespawns()

	now := e.clock.Snapshot()
	if now.NewDay {
		return tp.beginDay(now)
	}
	e.clearBattleTurn()
	e.refreshContext()
	return e.stateMachine.TransitionTo(states.PhaseBattleTurn, "Enemy turn finished")
}

// finalizeDespawns removes flagged units from the map and the registry
func (tp *TurnProcessor) finalizeDespawns() {
	e := tp.engine
	pending := e.despawns.drain()
	if len(pending) == 0 {
		return
	}

	turn := e.clock.Turn()
	for _, d := range pending {
		u, ok := e.registry.Get(d.id)
		if !ok {
			continue
		}
		tile, _ := e.vmap.RemoveActor(d.id)
		e.registry.Remove(d.id)
		if e.selected == d.id {
			e.selected = 0
		}
		e.eventBus.Defer(events.NewUnitDespawnedEvent(e.gameID, d.id, u.Kind.String(), tile, d.reason, turn))
		tp.logger.Debug().
			Uint32("unit_id", uint32(d.id)).
			Str("type", u.Type).
			Str("reason", d.reason).
			Msg("Unit despawned")
	}
	e.refreshContext()
}
