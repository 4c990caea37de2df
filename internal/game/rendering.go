package game

import (
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/VillageTactics/internal/common"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/core"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/mapgen"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/units"
)

var structureSymbols = map[string]rune{
	units.TypeWall:  '#',
	units.TypeHouse: 'H',
	units.TypeTower: 'T',
}

// Board renders the map with one character per tile. Player units are
// upper-case, enemies lower-case, structures use their level glyphs.
func (e *Engine) Board(colored bool) string {
	m := e.vmap

	var sb strings.Builder
	sb.Grow((m.W*12 + 8) * (m.H + 3))

	sb.WriteString("   ")
	for x := 0; x < m.W; x++ {
		sb.WriteString(fmt.Sprintf("%d", x%10))
	}
	sb.WriteString("\n")

	for y := 0; y < m.H; y++ {
		sb.WriteString(fmt.Sprintf("%2d ", y))
		for x := 0; x < m.W; x++ {
			symbol, color := e.tileSymbol(core.NewTile(x, y))
			if colored {
				sb.WriteString(common.Colorize(string(symbol), color))
			} else {
				sb.WriteRune(symbol)
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n. grass  ~ water  \" forest  # wall  H house  T tower  A-Z player  a-z enemy\n")
	return sb.String()
}

func (e *Engine) tileSymbol(t core.Tile) (rune, string) {
	if id, ok := e.vmap.OccupantAt(t); ok {
		if u, known := e.registry.Get(id); known {
			return unitSymbol(u)
		}
	}

	kind, _ := e.vmap.TerrainAt(t)
	return mapgen.TerrainGlyph(kind), common.TerrainColors[kind]
}

func unitSymbol(u *units.Unit) (rune, string) {
	color := common.KindColors[u.Kind]
	switch u.Kind {
	case units.KindStructure:
		if s, ok := structureSymbols[u.Type]; ok {
			return s, color
		}
		return '?', color
	case units.KindEnemy:
		return firstRune(strings.ToLower(u.Type)), color
	default:
		return firstRune(strings.ToUpper(u.Type)), color
	}
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return '?'
}
