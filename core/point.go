package isoline

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
	"github.com/paulmach/orb"
)

// Point is an immutable 2D coordinate. Two points are equal only when both
// coordinates are bit-for-bit equal; no tolerance is applied.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Neg returns -p.
func (p Point) Neg() Point { return Point{-p.X, -p.Y} }

// Mul returns the scalar product s*p.
func (p Point) Mul(s float64) Point { return Point{p.X * s, p.Y * s} }

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) float64 { return p.X*q.X + p.Y*q.Y }

// Cross returns the z component of the cross product of p and q.
func (p Point) Cross(q Point) float64 { return p.X*q.Y - p.Y*q.X }

// LenSq returns the squared length of the vector p.
func (p Point) LenSq() float64 { return p.X*p.X + p.Y*p.Y }

// Len returns the length of the vector p.
func (p Point) Len() float64 { return math.Sqrt(p.LenSq()) }

// Dist returns the euclidean distance between p and q.
func (p Point) Dist(q Point) float64 { return p.Sub(q).Len() }

// Normalize returns the unit vector with the direction of p.
// A zero length vector has no direction and yields ErrZeroVector.
func (p Point) Normalize() (Point, error) {
	l := p.Len()
	if l == 0 {
		return Point{}, ErrZeroVector
	}
	return p.Mul(1 / l), nil
}

// Compare orders points lexicographically on X, then Y.
// It returns -1, 0 or +1. This is the canonical order used by Edge and Triangle.
func (p Point) Compare(q Point) int {
	switch {
	case p.X < q.X:
		return -1
	case p.X > q.X:
		return 1
	case p.Y < q.Y:
		return -1
	case p.Y > q.Y:
		return 1
	}
	return 0
}

// Less reports whether p sorts before q in the canonical order.
func (p Point) Less(q Point) bool { return p.Compare(q) < 0 }

// IsFinite reports whether both coordinates are finite numbers.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// R2 converts p into a golang/geo r2.Point.
func (p Point) R2() r2.Point { return r2.Point{X: p.X, Y: p.Y} }

// Orb converts p into a paulmach/orb point.
func (p Point) Orb() orb.Point { return orb.Point{p.X, p.Y} }

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}
