package units

import "github.com/mitchelldurbincs/VillageTactics/internal/game/core"

// Builder assembles a Unit with defaulted optional fields. Defaults: 1 health,
// no movement, rook directions, melee range, grounded.
type Builder struct {
	unit Unit
}

// NewBuilder starts a unit of the given kind and type name
func NewBuilder(kind Kind, unitType string) *Builder {
	return &Builder{unit: Unit{
		Kind:       kind,
		Type:       unitType,
		Health:     1,
		MaxHealth:  1,
		Range:      1,
		Directions: core.EdgeDirections,
	}}
}

// WithHealth sets current and maximum health. Zero makes the unit indestructible.
func (b *Builder) WithHealth(hp int) *Builder {
	b.unit.Health = max(0, hp)
	b.unit.MaxHealth = max(0, hp)
	return b
}

// WithMovement sets the per-turn step budget
func (b *Builder) WithMovement(steps int) *Builder {
	b.unit.Movement = max(0, steps)
	return b
}

// WithRange sets the Chebyshev attack range
func (b *Builder) WithRange(r int) *Builder {
	b.unit.Range = max(1, r)
	return b
}

// WithDirections sets the allowed movement and attack directions
func (b *Builder) WithDirections(dirs []core.Direction) *Builder {
	b.unit.Directions = dirs
	return b
}

// WithAirborne lets the unit cross water
func (b *Builder) WithAirborne(airborne bool) *Builder {
	b.unit.Airborne = airborne
	return b
}

// Build returns the assembled unit. Directions are copied so later edits to
// the shared direction tables cannot leak into the unit.
func (b *Builder) Build() Unit {
	u := b.unit
	u.Directions = append([]core.Direction(nil), b.unit.Directions...)
	return u
}
