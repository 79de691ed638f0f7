// Package probe computes directional tile probes: the line and box casts used
// to decide how far a blast travels and whether an actor may step into a tile.
//
// The package owns the cast geometry only. Intersection tests are delegated to
// a Caster supplied by the caller.
package probe

import "math"

// Direction is one of the four grid directions.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists all directions in a fixed order.
var Directions = [...]Direction{Up, Down, Left, Right}

// IsVertical reports whether the direction travels along the Y axis.
func (d Direction) IsVertical() bool {
	return d == Up || d == Down
}

// Unit returns the unit vector for the direction. World Y grows upward.
func (d Direction) Unit() Point {
	switch d {
	case Up:
		return Point{0, 1}
	case Down:
		return Point{0, -1}
	case Left:
		return Point{-1, 0}
	case Right:
		return Point{1, 0}
	default:
		return Point{}
	}
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	default:
		return "Unknown"
	}
}

// Point is a position or vector in world space.
type Point struct {
	X, Y float64
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Scale returns p multiplied by k.
func (p Point) Scale(k float64) Point {
	return Point{p.X * k, p.Y * k}
}

// Len returns the Euclidean length of p.
func (p Point) Len() float64 {
	return math.Hypot(p.X, p.Y)
}

// Normalize returns p scaled to unit length, or the zero vector for a zero input.
func (p Point) Normalize() Point {
	l := p.Len()
	if l == 0 {
		return Point{}
	}
	return Point{p.X / l, p.Y / l}
}

// Dist returns the distance between p and q.
func (p Point) Dist(q Point) float64 {
	return p.Sub(q).Len()
}
