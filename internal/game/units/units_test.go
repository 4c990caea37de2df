package units

import (
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/VillageTactics/internal/game/core"
)

func TestKind(t *testing.T) {
	assert.Equal(t, "Player", KindPlayer.String())
	assert.Equal(t, "Enemy", KindEnemy.String())
	assert.Equal(t, "Structure", KindStructure.String())
	assert.Equal(t, "Unknown(7)", Kind(7).String())

	assert.True(t, KindPlayer.Attackable())
	assert.True(t, KindStructure.Attackable())
	assert.False(t, KindEnemy.Attackable())
}

func TestBuilderDefaults(t *testing.T) {
	u := NewBuilder(KindEnemy, "dummy").Build()

	assert.Equal(t, KindEnemy, u.Kind)
	assert.Equal(t, "dummy", u.Type)
	assert.Equal(t, 1, u.Health)
	assert.Equal(t, 1, u.MaxHealth)
	assert.Equal(t, 0, u.Movement)
	assert.Equal(t, 1, u.Range)
	assert.Equal(t, core.EdgeDirections, u.Directions)
	assert.False(t, u.Airborne)
	assert.Nil(t, u.Path())
	assert.Nil(t, u.Attack())
}

func TestBuilderOverrides(t *testing.T) {
	u := NewBuilder(KindPlayer, "scout").
		WithHealth(5).
		WithMovement(-2).
		WithRange(0).
		WithDirections(core.AllDirections).
		WithAirborne(true).
		Build()

	assert.Equal(t, 5, u.Health)
	assert.Equal(t, 5, u.MaxHealth)
	assert.Equal(t, 0, u.Movement, "negative movement clamps to zero")
	assert.Equal(t, 1, u.Range, "range is at least one")
	assert.Equal(t, core.AllDirections, u.Directions)
	assert.True(t, u.Airborne)

	// The unit owns its direction slice
	u.Directions[0] = core.South
	assert.Equal(t, core.North, core.AllDirections[0])
}

func TestStatTable(t *testing.T) {
	tests := []struct {
		unitType string
		kind     Kind
		health   int
		movement int
		airborne bool
		dirs     int
	}{
		{TypeRaider, KindEnemy, 2, 3, false, 4},
		{TypeBrute, KindEnemy, 4, 2, false, 8},
		{TypeBat, KindEnemy, 1, 4, true, 8},
		{TypeVillager, KindPlayer, 3, 3, false, 8},
		{TypeArcher, KindPlayer, 2, 2, false, 4},
	}

	for _, tt := range tests {
		t.Run(tt.unitType, func(t *testing.T) {
			s, ok := LookupStats(tt.unitType)
			require.True(t, ok)
			u := s.Builder().Build()
			assert.Equal(t, tt.kind, u.Kind)
			assert.Equal(t, tt.health, u.MaxHealth)
			assert.Equal(t, tt.movement, u.Movement)
			assert.Equal(t, tt.airborne, u.Airborne)
			assert.Len(t, u.Directions, tt.dirs)
		})
	}

	_, ok := LookupStats("dragon")
	assert.False(t, ok)
	assert.Panics(t, func() { MustStats("dragon") })

	assert.Equal(t, []string{TypeBat, TypeBrute, TypeRaider}, TypesOfKind(KindEnemy))
	assert.Equal(t, []string{TypeArcher, TypeVillager}, TypesOfKind(KindPlayer))
	assert.Equal(t, []string{TypeHouse, TypeTower, TypeWall}, TypesOfKind(KindStructure))
}

func TestTransientStateIsExclusive(t *testing.T) {
	u := NewBuilder(KindEnemy, "dummy").Build()

	u.SetPath(NewPathState([]core.Tile{core.NewTile(0, 0), core.NewTile(1, 0)}))
	require.NotNil(t, u.Path())

	u.SetAttack(&AttackIntent{Target: core.NewTile(2, 0)})
	assert.Nil(t, u.Path(), "attack drops the path")
	require.NotNil(t, u.Attack())

	u.SetPath(NewPathState([]core.Tile{core.NewTile(1, 0)}))
	assert.Nil(t, u.Attack(), "path drops the attack")

	u.ClearTransient()
	assert.Nil(t, u.Path())
	assert.Nil(t, u.Attack())
}

func TestPathStateAdvance(t *testing.T) {
	tiles := []core.Tile{core.NewTile(0, 0), core.NewTile(1, 0), core.NewTile(2, 1)}
	p := NewPathState(tiles)

	assert.False(t, p.Done())
	assert.Equal(t, core.NewTile(0, 0), p.Current())
	assert.Equal(t, core.NewTile(2, 1), p.Destination())
	assert.Equal(t, 1.0, p.SegmentLength())

	assert.False(t, p.Advance(0.5))
	x, y := p.Position()
	assert.InDelta(t, 0.5, x, 1e-9)
	assert.InDelta(t, 0.0, y, 1e-9)

	assert.True(t, p.Advance(0.5))
	assert.Equal(t, 1, p.Index)
	assert.Equal(t, 0.0, p.Fraction)

	// Diagonal segment takes sqrt(2) units
	assert.InDelta(t, math.Sqrt2, p.SegmentLength(), 1e-9)
	assert.False(t, p.Advance(1.0))
	assert.True(t, p.Advance(0.5))
	assert.True(t, p.Done())
	assert.Equal(t, core.NewTile(2, 1), p.Current())
	assert.False(t, p.Advance(10))

	// The state owns a copy of the tiles
	tiles[0] = core.NewTile(9, 9)
	assert.Equal(t, core.NewTile(0, 0), p.Tiles[0])
}

func TestSingleTilePathIsDone(t *testing.T) {
	p := NewPathState([]core.Tile{core.NewTile(3, 3)})
	assert.True(t, p.Done())
	x, y := p.Position()
	assert.Equal(t, 3.0, x)
	assert.Equal(t, 3.0, y)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry(zerolog.Nop())

	enemy := r.Spawn(MustStats(TypeRaider).Builder().Build())
	player := r.Spawn(MustStats(TypeVillager).Builder().Build())
	wall := r.Spawn(MustStats(TypeWall).Builder().Build())
	enemy2 := r.Spawn(MustStats(TypeBat).Builder().Build())

	assert.NotEqual(t, core.NoEntity, enemy.ID)
	assert.Equal(t, 4, r.Len())
	assert.Equal(t, []core.EntityID{enemy.ID, enemy2.ID}, r.IDs(KindEnemy))
	assert.Equal(t, 1, r.Count(KindPlayer))
	assert.Equal(t, 1, r.Count(KindStructure))

	kind, ok := r.KindOf(wall.ID)
	require.True(t, ok)
	assert.Equal(t, KindStructure, kind)

	got, ok := r.Get(player.ID)
	require.True(t, ok)
	assert.Same(t, player, got)

	t.Run("Each stops early", func(t *testing.T) {
		var seen []core.EntityID
		r.Each(KindEnemy, func(u *Unit) bool {
			seen = append(seen, u.ID)
			return false
		})
		assert.Equal(t, []core.EntityID{enemy.ID}, seen)
	})

	t.Run("Health saturates", func(t *testing.T) {
		hp, ok := r.SetHealth(player.ID, -4)
		require.True(t, ok)
		assert.Equal(t, 0, hp)
		assert.True(t, player.Dead())

		hp, _ = r.SetHealth(player.ID, 99)
		assert.Equal(t, player.MaxHealth, hp)

		hp, ok = r.Health(player.ID)
		require.True(t, ok)
		assert.Equal(t, player.MaxHealth, hp)

		_, ok = r.SetHealth(12345, 1)
		assert.False(t, ok)
	})

	t.Run("Remove and clear", func(t *testing.T) {
		assert.True(t, r.Remove(enemy.ID))
		assert.False(t, r.Remove(enemy.ID))
		_, ok := r.Health(enemy.ID)
		assert.False(t, ok)

		r.Clear()
		assert.Equal(t, 0, r.Len())
		fresh := r.Spawn(NewBuilder(KindEnemy, "x").Build())
		assert.Greater(t, fresh.ID, enemy2.ID, "ids are never reused")
	})
}

func TestIndestructibleStructure(t *testing.T) {
	rock := NewBuilder(KindStructure, "rock").WithHealth(0).Build()
	assert.False(t, rock.Damageable())
	assert.False(t, rock.Dead())
}
