package core

import "fmt"

// Tile is a discrete cell on the village grid
type Tile struct {
	X, Y int
}

// NewTile creates a new tile with the given x and y values
func NewTile(x, y int) Tile {
	return Tile{X: x, Y: y}
}

// FromIndex creates a tile from a row-major array index
func FromIndex(idx, width int) Tile {
	return Tile{
		X: idx % width,
		Y: idx / width,
	}
}

// InBounds checks if the tile lies inside [0,width) x [0,height)
func (t Tile) InBounds(width, height int) bool {
	return t.X >= 0 && t.X < width && t.Y >= 0 && t.Y < height
}

// ToIndex converts the tile to a row-major array index
func (t Tile) ToIndex(width int) int {
	return t.Y*width + t.X
}

// Add returns the component-wise sum of two tiles
func (t Tile) Add(other Tile) Tile {
	return Tile{X: t.X + other.X, Y: t.Y + other.Y}
}

// Sub returns the component-wise difference of two tiles
func (t Tile) Sub(other Tile) Tile {
	return Tile{X: t.X - other.X, Y: t.Y - other.Y}
}

// Step returns the neighbouring tile one step in the given direction
func (t Tile) Step(d Direction) Tile {
	return t.Add(d.Vector())
}

// Manhattan distance (rook metric)
func (t Tile) Manhattan(other Tile) int {
	return abs(t.X-other.X) + abs(t.Y-other.Y)
}

// Chebyshev distance (king metric)
func (t Tile) Chebyshev(other Tile) int {
	return max(abs(t.X-other.X), abs(t.Y-other.Y))
}

// EuclideanSq returns the squared straight-line distance
func (t Tile) EuclideanSq(other Tile) int {
	dx := t.X - other.X
	dy := t.Y - other.Y
	return dx*dx + dy*dy
}

// DirectionTo returns the direction of a neighbouring tile.
// The second result is false if other is not one king step away.
func (t Tile) DirectionTo(other Tile) (Direction, bool) {
	delta := other.Sub(t)
	for _, d := range AllDirections {
		if d.Vector() == delta {
			return d, true
		}
	}
	return North, false
}

// String returns a string representation of the tile
func (t Tile) String() string {
	return fmt.Sprintf("(%d,%d)", t.X, t.Y)
}

// Direction is one of the eight compass steps, numbered clockwise from North
type Direction int

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

const directionCount = 8

var directionVectors = [directionCount]Tile{
	North:     {X: 0, Y: -1},
	NorthEast: {X: 1, Y: -1},
	East:      {X: 1, Y: 0},
	SouthEast: {X: 1, Y: 1},
	South:     {X: 0, Y: 1},
	SouthWest: {X: -1, Y: 1},
	West:      {X: -1, Y: 0},
	NorthWest: {X: -1, Y: -1},
}

var directionNames = [directionCount]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// Canonical direction sets. Searches iterate candidates in exactly this order,
// which is what makes their tie-breaking stable.
var (
	EdgeDirections   = []Direction{North, East, South, West}
	CornerDirections = []Direction{NorthEast, SouthEast, SouthWest, NorthWest}
	AllDirections    = []Direction{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}
)

// Vector returns the unit offset of the direction
func (d Direction) Vector() Tile {
	return directionVectors[d.normalize()]
}

// Rotate turns the direction clockwise by steps*45 degrees (negative turns counter-clockwise)
func (d Direction) Rotate(steps int) Direction {
	return Direction(int(d) + steps).normalize()
}

// Clockwise45 turns the direction by one eighth
func (d Direction) Clockwise45() Direction { return d.Rotate(1) }

// Clockwise90 turns the direction by a quarter
func (d Direction) Clockwise90() Direction { return d.Rotate(2) }

// Opposite returns the direction pointing the other way
func (d Direction) Opposite() Direction { return d.Rotate(4) }

// IsEdge reports whether the direction is orthogonal
func (d Direction) IsEdge() bool { return d.normalize()%2 == 0 }

// IsCorner reports whether the direction is diagonal
func (d Direction) IsCorner() bool { return !d.IsEdge() }

func (d Direction) normalize() Direction {
	n := int(d) % directionCount
	if n < 0 {
		n += directionCount
	}
	return Direction(n)
}

func (d Direction) String() string {
	return directionNames[d.normalize()]
}

// ParseDirection converts a compass abbreviation ("N", "SE", ...) to a Direction
func ParseDirection(s string) (Direction, error) {
	for i, name := range directionNames {
		if name == s {
			return Direction(i), nil
		}
	}
	return North, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
