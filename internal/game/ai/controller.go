package ai

import (
	"context"

	"github.com/looplab/fsm"
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/VillageTactics/internal/game/core"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/cycle"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/events"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/units"
)

// Sub-phases of the enemy turn
const (
	StateAttack = "attack"
	StateMove   = "move"

	eventAttacksResolved = "attacks_resolved"
	eventMovesFinished   = "moves_finished"
)

// Despawn reasons handed to the lifecycle collaborator
const (
	ReasonKilled   = "killed"
	ReasonDaybreak = "daybreak"
)

// Lifecycle removes units on our behalf, typically after a death animation
type Lifecycle interface {
	FlagDespawn(id core.EntityID, reason string)
}

// Settings paces the enemy turn
type Settings struct {
	// AttackDuration is the attack animation length in seconds
	AttackDuration float64
	// MoveSpeed is in tiles per second
	MoveSpeed float64
}

// DefaultSettings matches the default config
func DefaultSettings() Settings {
	return Settings{AttackDuration: 0.5, MoveSpeed: 4}
}

// MovePlanner picks every enemy's path once the attacks of the turn are done
type MovePlanner interface {
	Plan() []Plan
}

// Deps wires a Controller to the rest of the game
type Deps struct {
	Map       *core.VillageMap
	Registry  *units.Registry
	Health    units.HealthStore
	Lifecycle Lifecycle
	Planner   MovePlanner
	Publisher events.Publisher
	Calendar  cycle.Calendar
	Settings  Settings
	GameID    string
	Logger    zerolog.Logger
}

// Controller runs the enemy turn one frame at a time: resolve the attacks
// queued last turn, plan fresh paths, then walk each enemy along its path.
type Controller struct {
	deps   Deps
	tg     targeting
	fsm    *fsm.FSM
	logger zerolog.Logger
}

// NewController creates a controller in the attack sub-phase
func NewController(deps Deps) *Controller {
	if deps.Health == nil {
		deps.Health = deps.Registry
	}
	c := &Controller{
		deps:   deps,
		tg:     targeting{m: deps.Map, reg: deps.Registry},
		logger: deps.Logger.With().Str("component", "enemy_ai").Logger(),
	}
	c.fsm = fsm.NewFSM(
		StateAttack,
		fsm.Events{
			{Name: eventAttacksResolved, Src: []string{StateAttack}, Dst: StateMove},
			{Name: eventMovesFinished, Src: []string{StateMove}, Dst: StateAttack},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				c.logger.Debug().
					Str("from", e.Src).
					Str("to", e.Dst).
					Msg("Enemy sub-phase changed")
			},
		},
	)
	return c
}

// State returns the current sub-phase
func (c *Controller) State() string {
	return c.fsm.Current()
}

// Reset returns to the attack sub-phase
func (c *Controller) Reset() {
	c.fsm.SetState(StateAttack)
}

// Tick advances the enemy turn by dt seconds. It returns true once every
// enemy has moved and control goes back to the player.
func (c *Controller) Tick(ctx context.Context, dt float64, turn int) (bool, error) {
	switch c.fsm.Current() {
	case StateAttack:
		if c.tickAttacks(dt, turn) {
			return false, nil
		}
		if err := c.fsm.Event(ctx, eventAttacksResolved); err != nil {
			return false, err
		}
		// Planning replaces intents, so it waits until every attack has landed
		if c.deps.Planner != nil && !c.deps.Calendar.IsDayBoundary(turn) {
			plans := c.deps.Planner.Plan()
			c.logger.Debug().Int("turn", turn).Int("plans", len(plans)).Msg("Enemy moves planned")
		}
		return false, nil

	case StateMove:
		if c.deps.Calendar.IsDayBoundary(turn) {
			c.resetBattlefield(turn)
		} else if c.tickMoves(dt, turn) {
			return false, nil
		}
		if err := c.fsm.Event(ctx, eventMovesFinished); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// tickAttacks advances every pending attack. It returns false when no enemy
// has one.
func (c *Controller) tickAttacks(dt float64, turn int) bool {
	active := false
	c.deps.Registry.Each(units.KindEnemy, func(u *units.Unit) bool {
		a := u.Attack()
		if a == nil {
			return true
		}
		active = true

		if !a.Started {
			c.startAttack(u, a, turn)
		}
		a.Progress += dt / c.deps.Settings.AttackDuration
		if a.Progress >= 1 {
			c.resolveAttack(u, a, turn)
			u.ClearAttack()
		}
		return true
	})
	return active
}

func (c *Controller) startAttack(u *units.Unit, a *units.AttackIntent, turn int) {
	a.Started = true
	a.Victim = core.NoEntity
	if victim, ok := c.tg.damageableAt(a.Target); ok {
		a.Victim = victim.ID
	}

	origin, _ := c.deps.Map.LocateActor(u.ID)
	c.publish(events.NewAttackStartedEvent(c.deps.GameID, u.ID, a.Victim, origin, a.Target, turn))
}

func (c *Controller) resolveAttack(u *units.Unit, a *units.AttackIntent, turn int) {
	if a.Victim == core.NoEntity {
		return
	}
	hp, ok := c.deps.Health.Health(a.Victim)
	if !ok {
		return
	}
	hp, _ = c.deps.Health.SetHealth(a.Victim, max(0, hp-1))

	c.logger.Debug().
		Uint32("attacker_id", uint32(u.ID)).
		Uint32("victim_id", uint32(a.Victim)).
		Int("health", hp).
		Msg("Attack landed")
	c.publish(events.NewUnitDamagedEvent(c.deps.GameID, a.Victim, u.ID, 1, hp, turn))

	if hp == 0 && c.deps.Lifecycle != nil {
		c.deps.Lifecycle.FlagDespawn(a.Victim, ReasonKilled)
	}
}

// tickMoves animates the first enemy that still has a path. It returns false
// when no enemy has one.
func (c *Controller) tickMoves(dt float64, turn int) bool {
	active := false
	c.deps.Registry.Each(units.KindEnemy, func(u *units.Unit) bool {
		p := u.Path()
		if p == nil {
			return true
		}
		active = true

		if !p.Done() {
			p.Advance(c.deps.Settings.MoveSpeed * dt)
			if !p.Done() {
				return false
			}
		}

		u.ClearPath()
		if len(p.Tiles) > 1 {
			c.publish(events.NewUnitMovedEvent(c.deps.GameID, u.ID, p.Tiles[0], p.Destination(), len(p.Tiles)-1, turn))
		}
		c.queueAttack(u)
		return false
	})
	return active
}

func (c *Controller) queueAttack(u *units.Unit) {
	at, ok := c.deps.Map.LocateActor(u.ID)
	if !ok {
		return
	}
	if target, found := c.tg.adjacentTarget(at, u.Directions); found {
		u.SetAttack(&units.AttackIntent{Target: target})
		c.logger.Trace().
			Uint32("unit_id", uint32(u.ID)).
			Stringer("target", target).
			Msg("Attack queued")
	}
}

// resetBattlefield clears the map at the start of a day: enemies despawn and
// player units leave the map but keep their health.
func (c *Controller) resetBattlefield(turn int) {
	enemies, players := 0, 0

	c.deps.Registry.Each(units.KindEnemy, func(u *units.Unit) bool {
		u.ClearTransient()
		c.deps.Map.RemoveActor(u.ID)
		if c.deps.Lifecycle != nil {
			c.deps.Lifecycle.FlagDespawn(u.ID, ReasonDaybreak)
		}
		enemies++
		return true
	})
	c.deps.Registry.Each(units.KindPlayer, func(u *units.Unit) bool {
		u.ClearTransient()
		if _, onMap := c.deps.Map.RemoveActor(u.ID); onMap {
			players++
		}
		u.Hidden = true
		return true
	})

	c.logger.Info().
		Int("turn", turn).
		Int("enemies", enemies).
		Int("players", players).
		Msg("Daybreak, battlefield cleared")
	c.publish(events.NewUnitsEvictedEvent(c.deps.GameID, enemies, players, turn))
}

func (c *Controller) publish(e events.Event) {
	if c.deps.Publisher != nil {
		c.deps.Publisher.Publish(e)
	}
}
