package ai

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/VillageTactics/internal/game/core"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/cycle"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/events"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/units"
)

type despawnCall struct {
	id     core.EntityID
	reason string
}

type fakeLifecycle struct {
	calls []despawnCall
}

func (f *fakeLifecycle) FlagDespawn(id core.EntityID, reason string) {
	f.calls = append(f.calls, despawnCall{id: id, reason: reason})
}

type controllerRig struct {
	*battlefield
	ctrl      *Controller
	lifecycle *fakeLifecycle
	bus       *events.EventBus
	seen      []events.Event
}

func newControllerRig(t *testing.T, w, h int) *controllerRig {
	t.Helper()
	r := &controllerRig{
		battlefield: newBattlefield(w, h),
		lifecycle:   &fakeLifecycle{},
		bus:         events.NewEventBusWithLogger(zerolog.Nop()),
	}
	for _, typ := range []string{events.TypeAttackStarted, events.TypeUnitDamaged, events.TypeUnitMoved, events.TypeUnitsEvicted} {
		r.bus.SubscribeFunc(typ, func(e events.Event) { r.seen = append(r.seen, e) })
	}
	r.ctrl = NewController(Deps{
		Map:       r.m,
		Registry:  r.reg,
		Lifecycle: r.lifecycle,
		Publisher: r.bus,
		Calendar:  cycle.DefaultCalendar(),
		Settings:  Settings{AttackDuration: 0.5, MoveSpeed: 4},
		GameID:    "test-game",
		Logger:    zerolog.Nop(),
	})
	return r
}

func (r *controllerRig) tick(t *testing.T, dt float64, turn int) bool {
	t.Helper()
	done, err := r.ctrl.Tick(context.Background(), dt, turn)
	require.NoError(t, err)
	return done
}

func (r *controllerRig) types() []string {
	out := make([]string, len(r.seen))
	for i, e := range r.seen {
		out[i] = e.Type()
	}
	return out
}

func TestController_StartsInAttack(t *testing.T) {
	r := newControllerRig(t, 4, 4)
	assert.Equal(t, StateAttack, r.ctrl.State())

	assert.False(t, r.tick(t, 0.1, 1), "no attacks: switch to move")
	assert.Equal(t, StateMove, r.ctrl.State())

	assert.True(t, r.tick(t, 0.1, 1), "no paths: turn over")
	assert.Equal(t, StateAttack, r.ctrl.State())
}

func TestController_AttackKillsAfterTwoHits(t *testing.T) {
	r := newControllerRig(t, 10, 10)
	raider := r.put(t, units.TypeRaider, core.NewTile(5, 5))
	villager := r.put(t, units.TypeVillager, core.NewTile(5, 6))
	_, _ = r.reg.SetHealth(villager.ID, 2)

	runTurn := func() {
		raider.SetAttack(&units.AttackIntent{Target: core.NewTile(5, 6)})
		assert.False(t, r.tick(t, 0.25, 3))
		assert.NotNil(t, raider.Attack(), "half-way through the swing")
		assert.False(t, r.tick(t, 0.25, 3))
		assert.Nil(t, raider.Attack())
		assert.False(t, r.tick(t, 0.25, 3))
		assert.True(t, r.tick(t, 0.25, 3))
	}

	runTurn()
	hp, _ := r.reg.Health(villager.ID)
	assert.Equal(t, 1, hp)
	assert.Empty(t, r.lifecycle.calls)

	runTurn()
	hp, _ = r.reg.Health(villager.ID)
	assert.Equal(t, 0, hp)
	assert.Equal(t, []despawnCall{{id: villager.ID, reason: ReasonKilled}}, r.lifecycle.calls)

	assert.Equal(t, []string{
		events.TypeAttackStarted, events.TypeUnitDamaged,
		events.TypeAttackStarted, events.TypeUnitDamaged,
	}, r.types())
	damaged := r.seen[3].(*events.UnitDamagedEvent)
	assert.Equal(t, villager.ID, damaged.Metadata.UnitID)
	assert.Equal(t, raider.ID, damaged.AttackerID)
	assert.Equal(t, 0, damaged.Health)
}

func TestController_AttacksLandBeforeReplanning(t *testing.T) {
	r := newControllerRig(t, 8, 8)
	r.ctrl.deps.Planner = NewPlanner(r.m, r.reg, zerolog.Nop())
	raider := r.put(t, units.TypeRaider, core.NewTile(2, 1))
	villager := r.put(t, units.TypeVillager, core.NewTile(2, 2))

	playTurn := func(turn int) {
		t.Helper()
		for i := 0; i < 100; i++ {
			if r.tick(t, 0.25, turn) {
				return
			}
		}
		t.Fatalf("enemy turn %d never finished", turn)
	}

	playTurn(1)
	hp, _ := r.reg.Health(villager.ID)
	assert.Equal(t, 3, hp, "the first turn only lines up the attack")
	require.NotNil(t, raider.Attack())
	assert.Equal(t, core.NewTile(2, 2), raider.Attack().Target)

	for turn, want := range []int{2, 1, 0} {
		playTurn(turn + 2)
		hp, _ = r.reg.Health(villager.ID)
		assert.Equal(t, want, hp)
	}
	assert.Equal(t, []despawnCall{{id: villager.ID, reason: ReasonKilled}}, r.lifecycle.calls)

	at, _ := r.m.LocateActor(raider.ID)
	assert.Equal(t, core.NewTile(2, 1), at, "an enemy next to its target holds position")
}

func TestController_AttackOnEmptyTileWhiffs(t *testing.T) {
	r := newControllerRig(t, 6, 6)
	raider := r.put(t, units.TypeRaider, core.NewTile(2, 2))
	raider.SetAttack(&units.AttackIntent{Target: core.NewTile(2, 3)})

	assert.False(t, r.tick(t, 1, 2))
	assert.Nil(t, raider.Attack())
	assert.Equal(t, []string{events.TypeAttackStarted}, r.types())
	assert.Empty(t, r.lifecycle.calls)
}

func TestController_StructuresWithoutHealthShrugOffAttacks(t *testing.T) {
	r := newControllerRig(t, 6, 6)
	raider := r.put(t, units.TypeRaider, core.NewTile(2, 2))
	post := r.reg.Spawn(units.NewBuilder(units.KindStructure, "post").WithHealth(0).Build())
	r.m.PlaceActor(core.NewTile(3, 2), post.ID)

	raider.SetAttack(&units.AttackIntent{Target: core.NewTile(3, 2)})
	r.tick(t, 1, 2)

	started := r.seen[0].(*events.AttackStartedEvent)
	assert.Equal(t, core.NoEntity, started.VictimID)
	assert.Len(t, r.seen, 1)
}

func TestController_AnimatesPathsOneEnemyAtATime(t *testing.T) {
	r := newControllerRig(t, 6, 3)
	first := r.put(t, units.TypeRaider, core.NewTile(2, 0))
	second := r.put(t, units.TypeRaider, core.NewTile(0, 2))
	villager := r.put(t, units.TypeVillager, core.NewTile(3, 0))

	first.SetPath(units.NewPathState([]core.Tile{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}))
	second.SetPath(units.NewPathState([]core.Tile{{X: 0, Y: 1}, {X: 0, Y: 2}}))

	// MoveSpeed 4 * dt 0.25 covers one orthogonal tile per tick
	assert.False(t, r.tick(t, 0.25, 4), "attack phase is empty")
	assert.False(t, r.tick(t, 0.25, 4))
	assert.Equal(t, 1, first.Path().Index)
	assert.Equal(t, 0, second.Path().Index, "second waits its turn")

	assert.False(t, r.tick(t, 0.25, 4))
	assert.Nil(t, first.Path())
	require.NotNil(t, first.Attack(), "arrived next to the villager")
	assert.Equal(t, core.NewTile(3, 0), first.Attack().Target)

	assert.False(t, r.tick(t, 0.25, 4))
	assert.Nil(t, second.Path())
	assert.Nil(t, second.Attack())

	assert.True(t, r.tick(t, 0.25, 4))

	require.Len(t, r.seen, 2)
	moved := r.seen[0].(*events.UnitMovedEvent)
	assert.Equal(t, first.ID, moved.Metadata.UnitID)
	assert.Equal(t, 2, moved.Steps)

	// Queued attack resolves at the start of the next enemy turn
	r.tick(t, 0.5, 5)
	hp, _ := r.reg.Health(villager.ID)
	assert.Equal(t, units.MustStats(units.TypeVillager).Health-1, hp)
}

func TestController_DaybreakClearsBattlefield(t *testing.T) {
	r := newControllerRig(t, 10, 10)
	e1 := r.put(t, units.TypeRaider, core.NewTile(0, 0))
	e2 := r.put(t, units.TypeBrute, core.NewTile(9, 9))
	villager := r.put(t, units.TypeVillager, core.NewTile(5, 5))
	_, _ = r.reg.SetHealth(villager.ID, 2)
	e1.SetPath(units.NewPathState([]core.Tile{{X: 0, Y: 0}, {X: 1, Y: 0}}))

	turn := cycle.DefaultCalendar().TurnsPerDay
	assert.False(t, r.tick(t, 0.1, turn))
	assert.True(t, r.tick(t, 0.1, turn))

	assert.Equal(t, 0, r.m.Actors.Len())
	assert.True(t, villager.Hidden)
	_, ok := r.reg.Get(villager.ID)
	assert.True(t, ok, "player units survive the night off the map")
	hp, _ := r.reg.Health(villager.ID)
	assert.Equal(t, 2, hp)
	assert.Nil(t, e1.Path())

	assert.ElementsMatch(t, []despawnCall{
		{id: e1.ID, reason: ReasonDaybreak},
		{id: e2.ID, reason: ReasonDaybreak},
	}, r.lifecycle.calls)

	require.Equal(t, []string{events.TypeUnitsEvicted}, r.types())
	evicted := r.seen[0].(*events.UnitsEvictedEvent)
	assert.Equal(t, 2, evicted.EnemiesDespawned)
	assert.Equal(t, 1, evicted.PlayersHidden)
}

func TestController_Reset(t *testing.T) {
	r := newControllerRig(t, 4, 4)
	r.tick(t, 0.1, 1)
	require.Equal(t, StateMove, r.ctrl.State())

	r.ctrl.Reset()
	assert.Equal(t, StateAttack, r.ctrl.State())
}
