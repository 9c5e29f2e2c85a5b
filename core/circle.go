package isoline

import "fmt"

// Circle is used as the circumcircle of a Triangle.
type Circle struct {
	Center Point
	Radius float64
}

// Contains reports whether p lies strictly inside the circle.
// Points exactly on the circle are not contained.
func (c Circle) Contains(p Point) bool {
	return c.Center.Dist(p) < c.Radius
}

func (c Circle) String() string {
	return fmt.Sprintf("(C:%v R:%g)", c.Center, c.Radius)
}
