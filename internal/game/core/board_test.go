package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapFromRows builds a map from ASCII rows: '~' water, '#' blocking actor,
// '.' grass. Blocking actors get ids starting at 100.
func mapFromRows(t *testing.T, rows ...string) *VillageMap {
	t.Helper()
	require.NotEmpty(t, rows)
	m := NewVillageMap(len(rows[0]), len(rows), 1)
	next := EntityID(100)
	for y, row := range rows {
		require.Len(t, row, m.W, "row %d", y)
		for x, c := range row {
			switch c {
			case '~':
				m.SetTerrain(Tile{x, y}, TerrainWater)
			case '#':
				m.PlaceActor(Tile{x, y}, next)
				next++
			}
		}
	}
	return m
}

func TestNewVillageMap(t *testing.T) {
	m := NewVillageMap(6, 4, 1)

	assert.Equal(t, 6, m.W)
	assert.Equal(t, 4, m.H)
	assert.Equal(t, 24, m.Terrain.Len(), "every tile gets a terrain entity")
	assert.Equal(t, 0, m.Actors.Len())

	kind, ok := m.TerrainAt(Tile{5, 3})
	require.True(t, ok)
	assert.Equal(t, TerrainGrass, kind)

	_, ok = m.TerrainAt(Tile{6, 0})
	assert.False(t, ok)
}

func TestVillageMap_Terrain(t *testing.T) {
	m := NewVillageMap(3, 3, 0)
	m.SetTerrain(Tile{1, 1}, TerrainWater)

	assert.True(t, m.IsWater(Tile{1, 1}))
	assert.False(t, m.IsWater(Tile{0, 0}))
	assert.False(t, m.IsWater(Tile{-1, 0}))

	assert.Panics(t, func() { m.SetTerrain(Tile{3, 3}, TerrainWater) })
}

func TestVillageMap_Actors(t *testing.T) {
	m := NewVillageMap(4, 4, 1)

	res := m.PlaceActor(Tile{1, 1}, 5)
	assert.Equal(t, OverwriteNone, res.Kind)
	assert.False(t, m.IsFree(Tile{1, 1}))
	assert.True(t, m.IsFree(Tile{2, 2}))
	assert.False(t, m.IsFree(Tile{4, 0}), "out of bounds is never free")

	id, ok := m.OccupantAt(Tile{1, 1})
	require.True(t, ok)
	assert.Equal(t, EntityID(5), id)

	res = m.PlaceActor(Tile{2, 1}, 5)
	assert.Equal(t, OverwriteMoved, res.Kind)

	tile, ok := m.RemoveActor(5)
	require.True(t, ok)
	assert.Equal(t, Tile{2, 1}, tile)
	assert.Equal(t, 0, m.Actors.Len())
}

func TestVillageMap_PlaceOutOfBoundsPanics(t *testing.T) {
	m := NewVillageMap(4, 4, 1)
	assert.Panics(t, func() { m.PlaceActor(Tile{-1, 2}, 1) })
	assert.Panics(t, func() { m.PlaceActor(Tile{4, 2}, 1) })
	assert.Equal(t, 0, m.Actors.Len())
}

func TestVillageMap_DeploymentZone(t *testing.T) {
	m := NewVillageMap(5, 5, 1)

	zone := m.DeploymentZone()
	assert.Len(t, zone, 9)
	assert.Equal(t, Tile{1, 1}, zone[0])
	assert.Equal(t, Tile{3, 3}, zone[len(zone)-1])

	assert.True(t, m.InDeploymentZone(Tile{2, 2}))
	assert.False(t, m.InDeploymentZone(Tile{0, 2}))
	assert.Equal(t, 0, m.BorderDistance(Tile{4, 1}))
	assert.Equal(t, 2, m.BorderDistance(Tile{2, 2}))
}

func TestVillageMap_ClearActors(t *testing.T) {
	m := mapFromRows(t,
		"#~.",
		".#.",
	)
	m.ClearActors()
	assert.Equal(t, 0, m.Actors.Len())
	assert.True(t, m.IsWater(Tile{1, 0}), "terrain survives")
}
