package units

import (
	"fmt"
	"math"

	"github.com/mitchelldurbincs/VillageTactics/internal/game/core"
)

// Kind tags what an actor is. Systems query by kind instead of by type name.
type Kind int

const (
	KindPlayer Kind = iota
	KindEnemy
	KindStructure
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "Player"
	case KindEnemy:
		return "Enemy"
	case KindStructure:
		return "Structure"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Attackable reports whether enemies target this kind
func (k Kind) Attackable() bool {
	return k == KindPlayer || k == KindStructure
}

// PathState is an in-progress walk along a path. Index is the segment start;
// Fraction is how far along the segment to Tiles[Index+1] the unit has moved.
type PathState struct {
	Tiles    []core.Tile
	Index    int
	Fraction float64
}

// NewPathState starts a walk at the first tile of tiles
func NewPathState(tiles []core.Tile) *PathState {
	cp := make([]core.Tile, len(tiles))
	copy(cp, tiles)
	return &PathState{Tiles: cp}
}

// Done reports whether no segments remain
func (p *PathState) Done() bool {
	return p.Index >= len(p.Tiles)-1
}

// Current returns the tile the current segment starts from
func (p *PathState) Current() core.Tile {
	return p.Tiles[min(p.Index, len(p.Tiles)-1)]
}

// Destination returns the last tile of the path
func (p *PathState) Destination() core.Tile {
	return p.Tiles[len(p.Tiles)-1]
}

// SegmentLength is 1 for orthogonal steps and sqrt(2) for diagonal ones
func (p *PathState) SegmentLength() float64 {
	if p.Done() {
		return 1
	}
	d := p.Tiles[p.Index+1].Sub(p.Tiles[p.Index])
	if d.X != 0 && d.Y != 0 {
		return math.Sqrt2
	}
	return 1
}

// Advance moves along the current segment by distance world units. When the
// segment completes the walk moves to the next one with the fraction reset.
// It returns true if a segment was completed.
func (p *PathState) Advance(distance float64) bool {
	if p.Done() {
		return false
	}
	p.Fraction += distance / p.SegmentLength()
	if p.Fraction < 1 {
		return false
	}
	p.Index++
	p.Fraction = 0
	return true
}

// Position interpolates the unit's world position along the current segment
func (p *PathState) Position() (float64, float64) {
	from := p.Current()
	if p.Done() {
		return float64(from.X), float64(from.Y)
	}
	to := p.Tiles[p.Index+1]
	return float64(from.X) + float64(to.X-from.X)*p.Fraction,
		float64(from.Y) + float64(to.Y-from.Y)*p.Fraction
}

// AttackIntent is a pending attack against a tile
type AttackIntent struct {
	Target core.Tile
	// Victim is bound on the first tick of the attack; NoEntity when nothing
	// damageable stood on the target
	Victim   core.EntityID
	Progress float64
	Started  bool
}

// Unit is one actor: a player unit, an enemy or a structure
type Unit struct {
	ID         core.EntityID
	Kind       Kind
	Type       string
	Health     int
	MaxHealth  int
	Movement   int
	Range      int
	Directions []core.Direction
	Airborne   bool

	// Hidden player units are off the map but keep their health
	Hidden bool

	path   *PathState
	attack *AttackIntent
}

// Damageable units have health that attacks can reduce
func (u *Unit) Damageable() bool {
	return u.MaxHealth > 0
}

// Dead reports whether a damageable unit has no health left
func (u *Unit) Dead() bool {
	return u.Damageable() && u.Health <= 0
}

// Path returns the pending walk, if any
func (u *Unit) Path() *PathState {
	return u.path
}

// Attack returns the pending attack, if any
func (u *Unit) Attack() *AttackIntent {
	return u.attack
}

// SetPath attaches a walk and drops any pending attack
func (u *Unit) SetPath(p *PathState) {
	u.path = p
	if p != nil {
		u.attack = nil
	}
}

// SetAttack attaches an attack intent and drops any pending walk
func (u *Unit) SetAttack(a *AttackIntent) {
	u.attack = a
	if a != nil {
		u.path = nil
	}
}

// ClearPath drops the pending walk
func (u *Unit) ClearPath() { u.path = nil }

// ClearAttack drops the pending attack
func (u *Unit) ClearAttack() { u.attack = nil }

// ClearTransient drops both walk and attack
func (u *Unit) ClearTransient() {
	u.path = nil
	u.attack = nil
}

func (u *Unit) String() string {
	return fmt.Sprintf("%s#%d(%s hp=%d/%d)", u.Kind, u.ID, u.Type, u.Health, u.MaxHealth)
}
