package core

import "sort"

// OverwriteKind describes what a TileIndex.Set call replaced
type OverwriteKind int

const (
	// OverwriteNone - the tile was empty and the occupant was not placed elsewhere
	OverwriteNone OverwriteKind = iota

	// OverwriteDisplaced - the tile's previous occupant was evicted
	OverwriteDisplaced

	// OverwriteMoved - the occupant left its previous tile, which is now free
	OverwriteMoved

	// OverwriteBoth - the occupant moved and evicted the tile's previous occupant
	OverwriteBoth
)

func (k OverwriteKind) String() string {
	switch k {
	case OverwriteNone:
		return "None"
	case OverwriteDisplaced:
		return "Displaced"
	case OverwriteMoved:
		return "Moved"
	case OverwriteBoth:
		return "Both"
	default:
		return "Unknown"
	}
}

// Overwrite is the result of TileIndex.Set.
// Displaced is valid for Displaced/Both, PreviousTile for Moved/Both.
type Overwrite[O comparable] struct {
	Kind         OverwriteKind
	Displaced    O
	PreviousTile Tile
}

// TileIndex is a one-to-one mapping between tiles and occupants.
// A tile holds at most one occupant and an occupant sits on at most one tile.
type TileIndex[O comparable] struct {
	byTile     map[Tile]O
	byOccupant map[O]Tile
}

// NewTileIndex creates an empty index
func NewTileIndex[O comparable]() *TileIndex[O] {
	return &TileIndex[O]{
		byTile:     make(map[Tile]O),
		byOccupant: make(map[O]Tile),
	}
}

// Get returns the occupant of a tile
func (ti *TileIndex[O]) Get(t Tile) (O, bool) {
	o, ok := ti.byTile[t]
	return o, ok
}

// Locate returns the tile an occupant sits on
func (ti *TileIndex[O]) Locate(o O) (Tile, bool) {
	t, ok := ti.byOccupant[o]
	return t, ok
}

// Contains reports whether the occupant is placed anywhere
func (ti *TileIndex[O]) Contains(o O) bool {
	_, ok := ti.byOccupant[o]
	return ok
}

// Set places o on t with last-write-wins semantics and reports what was replaced
func (ti *TileIndex[O]) Set(t Tile, o O) Overwrite[O] {
	var res Overwrite[O]

	if prev, ok := ti.byOccupant[o]; ok {
		if prev == t {
			return res
		}
		delete(ti.byTile, prev)
		res.Kind = OverwriteMoved
		res.PreviousTile = prev
	}

	if old, ok := ti.byTile[t]; ok {
		delete(ti.byOccupant, old)
		res.Displaced = old
		if res.Kind == OverwriteMoved {
			res.Kind = OverwriteBoth
		} else {
			res.Kind = OverwriteDisplaced
		}
	}

	ti.byTile[t] = o
	ti.byOccupant[o] = t
	return res
}

// Remove clears a tile and returns its former occupant
func (ti *TileIndex[O]) Remove(t Tile) (O, bool) {
	o, ok := ti.byTile[t]
	if !ok {
		return o, false
	}
	delete(ti.byTile, t)
	delete(ti.byOccupant, o)
	return o, true
}

// RemoveOccupant takes o off the index and returns the tile it held
func (ti *TileIndex[O]) RemoveOccupant(o O) (Tile, bool) {
	t, ok := ti.byOccupant[o]
	if !ok {
		return t, false
	}
	delete(ti.byOccupant, o)
	delete(ti.byTile, t)
	return t, true
}

// Len returns the number of placed occupants
func (ti *TileIndex[O]) Len() int {
	return len(ti.byTile)
}

// Clear removes every entry
func (ti *TileIndex[O]) Clear() {
	clear(ti.byTile)
	clear(ti.byOccupant)
}

// Tiles returns every occupied tile in row-major order
func (ti *TileIndex[O]) Tiles() []Tile {
	tiles := make([]Tile, 0, len(ti.byTile))
	for t := range ti.byTile {
		tiles = append(tiles, t)
	}
	sort.Slice(tiles, func(i, j int) bool {
		return RowMajorLess(tiles[i], tiles[j])
	})
	return tiles
}

// Each visits entries in row-major tile order. Returning false stops the walk.
// fn must not mutate the index.
func (ti *TileIndex[O]) Each(fn func(Tile, O) bool) {
	for _, t := range ti.Tiles() {
		if !fn(t, ti.byTile[t]) {
			return
		}
	}
}

// RowMajorLess orders tiles by row, then column
func RowMajorLess(a, b Tile) bool {
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.X < b.X
}
