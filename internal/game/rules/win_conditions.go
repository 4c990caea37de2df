package rules

import (
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/VillageTactics/internal/game/units"
)

// DefeatChecker decides when the village has fallen: no player units and no
// houses are left standing
type DefeatChecker struct {
	logger zerolog.Logger
}

// NewDefeatChecker creates a new defeat checker
func NewDefeatChecker(logger zerolog.Logger) *DefeatChecker {
	return &DefeatChecker{
		logger: logger.With().Str("component", "defeat_checker").Logger(),
	}
}

// VillageLost reports whether the village has nothing left to defend
func (dc *DefeatChecker) VillageLost(reg *units.Registry) bool {
	players := reg.Count(units.KindPlayer)
	houses := 0
	reg.Each(units.KindStructure, func(u *units.Unit) bool {
		if u.Type == units.TypeHouse {
			houses++
		}
		return true
	})

	lost := players == 0 && houses == 0
	dc.logger.Debug().
		Int("player_units", players).
		Int("houses", houses).
		Bool("lost", lost).
		Msg("Defeat check complete")
	return lost
}
