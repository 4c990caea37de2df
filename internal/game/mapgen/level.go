package mapgen

import (
	"errors"
	"fmt"

	"github.com/mitchelldurbincs/VillageTactics/internal/game/core"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/units"
)

var (
	ErrEmptyLevel    = errors.New("level has no rows")
	ErrRaggedLevel   = errors.New("level rows differ in length")
	ErrLayerMismatch = errors.New("object layer size differs from terrain layer")
	ErrUnknownObject = errors.New("unknown object glyph")
)

// Terrain glyphs
const (
	GlyphGrass  = '.'
	GlyphWater  = '~'
	GlyphForest = '"'
)

// Object glyphs; '.' means empty
var objectGlyphs = map[rune]string{
	'#': units.TypeWall,
	'H': units.TypeHouse,
	'T': units.TypeTower,
}

// Placement is a structure that starts on the map
type Placement struct {
	Type string
	Tile core.Tile
}

// Level is a map layout before any units exist
type Level struct {
	Width, Height int
	// Terrain is row-major
	Terrain    []core.TerrainKind
	Structures []Placement
}

// TerrainAt returns the terrain of an in-bounds tile
func (l *Level) TerrainAt(t core.Tile) core.TerrainKind {
	return l.Terrain[t.ToIndex(l.Width)]
}

// NewMap builds the terrain layer of the level. Structures are left to the
// caller, who owns the unit registry.
func (l *Level) NewMap(deploymentInset int) *core.VillageMap {
	m := core.NewVillageMap(l.Width, l.Height, deploymentInset)
	for idx, kind := range l.Terrain {
		if kind != core.TerrainGrass {
			m.SetTerrain(core.FromIndex(idx, l.Width), kind)
		}
	}
	return m
}

// ParseLevel reads a level from two layers of equally sized rows. objectRows
// may be nil for a level without structures.
func ParseLevel(terrainRows, objectRows []string) (*Level, error) {
	w, h, err := gridSize(terrainRows)
	if err != nil {
		return nil, fmt.Errorf("terrain layer: %w", err)
	}

	lvl := &Level{Width: w, Height: h, Terrain: make([]core.TerrainKind, 0, w*h)}
	for y, row := range terrainRows {
		for x, c := range []rune(row) {
			kind, ok := terrainGlyph(c)
			if !ok {
				return nil, fmt.Errorf("terrain %q: %w", c, core.WrapTileError("parse level", core.NewTile(x, y), core.ErrUnknownTerrain))
			}
			lvl.Terrain = append(lvl.Terrain, kind)
		}
	}

	if objectRows == nil {
		return lvl, nil
	}
	ow, oh, err := gridSize(objectRows)
	if err != nil {
		return nil, fmt.Errorf("object layer: %w", err)
	}
	if ow != w || oh != h {
		return nil, fmt.Errorf("%dx%d objects over %dx%d terrain: %w", ow, oh, w, h, ErrLayerMismatch)
	}
	for y, row := range objectRows {
		for x, c := range []rune(row) {
			if c == '.' {
				continue
			}
			typ, ok := objectGlyphs[c]
			if !ok {
				return nil, fmt.Errorf("object %q: %w", c, core.WrapTileError("parse level", core.NewTile(x, y), ErrUnknownObject))
			}
			lvl.Structures = append(lvl.Structures, Placement{Type: typ, Tile: core.NewTile(x, y)})
		}
	}
	return lvl, nil
}

// Rows renders the terrain layer back to glyphs
func (l *Level) Rows() []string {
	rows := make([]string, l.Height)
	for y := range rows {
		line := make([]rune, l.Width)
		for x := range line {
			line[x] = TerrainGlyph(l.TerrainAt(core.NewTile(x, y)))
		}
		rows[y] = string(line)
	}
	return rows
}

// TerrainGlyph is the inverse of the terrain glyph table
func TerrainGlyph(kind core.TerrainKind) rune {
	switch kind {
	case core.TerrainWater:
		return GlyphWater
	case core.TerrainForest:
		return GlyphForest
	default:
		return GlyphGrass
	}
}

func terrainGlyph(c rune) (core.TerrainKind, bool) {
	switch c {
	case GlyphGrass:
		return core.TerrainGrass, true
	case GlyphWater:
		return core.TerrainWater, true
	case GlyphForest:
		return core.TerrainForest, true
	}
	return 0, false
}

func gridSize(rows []string) (int, int, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return 0, 0, ErrEmptyLevel
	}
	w := len([]rune(rows[0]))
	for y, row := range rows {
		if n := len([]rune(row)); n != w {
			return 0, 0, fmt.Errorf("row %d has %d tiles, want %d: %w", y, n, w, ErrRaggedLevel)
		}
	}
	return w, len(rows), nil
}
