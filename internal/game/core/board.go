package core

import (
	"fmt"
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// EntityID identifies anything that can sit in a TileIndex
type EntityID uint32

// NoEntity is never handed out as an id
const NoEntity EntityID = 0

// TerrainKind classifies the ground of a tile
type TerrainKind int

const (
	TerrainGrass TerrainKind = iota
	TerrainWater
	TerrainForest
)

func (k TerrainKind) String() string {
	switch k {
	case TerrainGrass:
		return "Grass"
	case TerrainWater:
		return "Water"
	case TerrainForest:
		return "Forest"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// VillageMap is the playing field: a terrain layer and an actor layer over the
// same W x H grid. Both layers are TileIndex instances and are independent of
// each other.
type VillageMap struct {
	W, H int

	// Terrain holds one terrain entity per tile; its kind lives in terrainKinds
	Terrain      *TileIndex[EntityID]
	terrainKinds map[EntityID]TerrainKind

	// Actors holds units and buildings, one per tile
	Actors *TileIndex[EntityID]

	deploymentInset int
	deployment      mapset.Set[Tile]
}

// NewVillageMap creates a w x h map covered in grass.
// Tiles at least deploymentInset steps from the border form the deployment zone.
func NewVillageMap(w, h, deploymentInset int) *VillageMap {
	if w <= 0 || h <= 0 {
		panic(fmt.Sprintf("village map dimensions must be positive, got %dx%d", w, h))
	}
	m := &VillageMap{
		W:               w,
		H:               h,
		Terrain:         NewTileIndex[EntityID](),
		terrainKinds:    make(map[EntityID]TerrainKind, w*h),
		Actors:          NewTileIndex[EntityID](),
		deploymentInset: deploymentInset,
		deployment:      mapset.New[Tile](),
	}
	for idx := 0; idx < w*h; idx++ {
		t := FromIndex(idx, w)
		id := EntityID(idx + 1)
		m.Terrain.Set(t, id)
		m.terrainKinds[id] = TerrainGrass
		if m.BorderDistance(t) >= deploymentInset {
			m.deployment.Put(t)
		}
	}
	return m
}

// InBounds checks the tile against the map size
func (m *VillageMap) InBounds(t Tile) bool {
	return t.InBounds(m.W, m.H)
}

// SetTerrain reclassifies the ground of a tile
func (m *VillageMap) SetTerrain(t Tile, kind TerrainKind) {
	m.mustBeInBounds(t, "set terrain")
	id, _ := m.Terrain.Get(t)
	m.terrainKinds[id] = kind
}

// TerrainAt returns the ground classification; false for out-of-bounds tiles
func (m *VillageMap) TerrainAt(t Tile) (TerrainKind, bool) {
	id, ok := m.Terrain.Get(t)
	if !ok {
		return TerrainGrass, false
	}
	return m.terrainKinds[id], true
}

// IsWater reports whether the tile is in bounds and covered by water
func (m *VillageMap) IsWater(t Tile) bool {
	kind, ok := m.TerrainAt(t)
	return ok && kind == TerrainWater
}

// PlaceActor puts an actor on a tile. Placing out of bounds is a programming
// error and panics.
func (m *VillageMap) PlaceActor(t Tile, id EntityID) Overwrite[EntityID] {
	m.mustBeInBounds(t, "place actor")
	return m.Actors.Set(t, id)
}

// RemoveActor takes an actor off the map
func (m *VillageMap) RemoveActor(id EntityID) (Tile, bool) {
	return m.Actors.RemoveOccupant(id)
}

// OccupantAt returns the actor standing on a tile
func (m *VillageMap) OccupantAt(t Tile) (EntityID, bool) {
	return m.Actors.Get(t)
}

// LocateActor returns where an actor stands
func (m *VillageMap) LocateActor(id EntityID) (Tile, bool) {
	return m.Actors.Locate(id)
}

// IsFree reports whether the tile is in bounds and has no actor
func (m *VillageMap) IsFree(t Tile) bool {
	if !m.InBounds(t) {
		return false
	}
	_, occupied := m.Actors.Get(t)
	return !occupied
}

// BorderDistance is the number of steps between the tile and the nearest map edge
func (m *VillageMap) BorderDistance(t Tile) int {
	return min(t.X, t.Y, m.W-1-t.X, m.H-1-t.Y)
}

// InDeploymentZone reports whether player units may be placed on the tile
func (m *VillageMap) InDeploymentZone(t Tile) bool {
	return m.deployment.Has(t)
}

// DeploymentZone returns the deployment tiles in row-major order
func (m *VillageMap) DeploymentZone() []Tile {
	tiles := make([]Tile, 0, m.deployment.Size())
	m.deployment.Each(func(t Tile) {
		tiles = append(tiles, t)
	})
	sort.Slice(tiles, func(i, j int) bool { return RowMajorLess(tiles[i], tiles[j]) })
	return tiles
}

// ClearActors removes every actor, leaving terrain untouched
func (m *VillageMap) ClearActors() {
	m.Actors.Clear()
}

func (m *VillageMap) mustBeInBounds(t Tile, op string) {
	if !m.InBounds(t) {
		panic(WrapTileError(op, t, ErrOutOfBounds))
	}
}
