package units

import (
	"fmt"
	"sort"

	"github.com/mitchelldurbincs/VillageTactics/internal/game/core"
)

// Unit type names
const (
	TypeRaider = "raider"
	TypeBrute  = "brute"
	TypeBat    = "bat"

	TypeVillager = "villager"
	TypeArcher   = "archer"

	TypeWall  = "wall"
	TypeHouse = "house"
	TypeTower = "tower"
)

// Stats is a row of the static unit table
type Stats struct {
	Type       string
	Kind       Kind
	Health     int
	Movement   int
	Range      int
	Directions []core.Direction
	Airborne   bool
	// Cost is the gold price of a structure; zero for units
	Cost int
}

var statTable = map[string]Stats{
	TypeRaider: {Type: TypeRaider, Kind: KindEnemy, Health: 2, Movement: 3, Range: 1, Directions: core.EdgeDirections},
	TypeBrute:  {Type: TypeBrute, Kind: KindEnemy, Health: 4, Movement: 2, Range: 1, Directions: core.AllDirections},
	TypeBat:    {Type: TypeBat, Kind: KindEnemy, Health: 1, Movement: 4, Range: 1, Directions: core.AllDirections, Airborne: true},

	TypeVillager: {Type: TypeVillager, Kind: KindPlayer, Health: 3, Movement: 3, Range: 1, Directions: core.AllDirections},
	TypeArcher:   {Type: TypeArcher, Kind: KindPlayer, Health: 2, Movement: 2, Range: 3, Directions: core.EdgeDirections},

	TypeWall:  {Type: TypeWall, Kind: KindStructure, Health: 3, Cost: 2},
	TypeHouse: {Type: TypeHouse, Kind: KindStructure, Health: 5, Cost: 5},
	TypeTower: {Type: TypeTower, Kind: KindStructure, Health: 4, Range: 2, Cost: 8},
}

// LookupStats returns the table row for a unit type
func LookupStats(unitType string) (Stats, bool) {
	s, ok := statTable[unitType]
	return s, ok
}

// MustStats returns the table row for a unit type and panics if it is unknown
func MustStats(unitType string) Stats {
	s, ok := statTable[unitType]
	if !ok {
		panic(fmt.Sprintf("unknown unit type %q", unitType))
	}
	return s
}

// TypesOfKind lists the known type names of a kind in sorted order
func TypesOfKind(kind Kind) []string {
	var names []string
	for name, s := range statTable {
		if s.Kind == kind {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Builder returns a builder pre-filled from the table row
func (s Stats) Builder() *Builder {
	return NewBuilder(s.Kind, s.Type).
		WithHealth(s.Health).
		WithMovement(s.Movement).
		WithRange(s.Range).
		WithDirections(s.Directions).
		WithAirborne(s.Airborne)
}
