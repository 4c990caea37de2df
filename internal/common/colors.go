package common

import (
	"github.com/mitchelldurbincs/VillageTactics/internal/game/core"
	"github.com/mitchelldurbincs/VillageTactics/internal/game/units"
)

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorCyan   = "\033[36m"
	ColorGray   = "\033[90m"
)

// KindColors defines the color scheme for each actor kind
var KindColors = map[units.Kind]string{
	units.KindPlayer:    ColorBlue,
	units.KindEnemy:     ColorRed,
	units.KindStructure: ColorYellow,
}

// TerrainColors defines the color of empty tiles
var TerrainColors = map[core.TerrainKind]string{
	core.TerrainGrass:  ColorGray,
	core.TerrainWater:  ColorCyan,
	core.TerrainForest: ColorGreen,
}

// Colorize wraps s in color, or returns it unchanged when color is empty
func Colorize(s, color string) string {
	if color == "" {
		return s
	}
	return color + s + ColorReset
}
