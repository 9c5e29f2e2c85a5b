package isoline

import "fmt"

// Edge is an unordered pair of distinct points. The endpoints are stored in
// canonical order (P1 before P2 by Point.Compare), so Edge values built from
// the same two points in either order compare and hash identically and can be
// used directly as map keys.
type Edge struct {
	p1, p2 Point
}

// NewEdge returns the canonical edge between a and b.
// It fails with ErrDegenerateEdge when a equals b.
func NewEdge(a, b Point) (Edge, error) {
	switch a.Compare(b) {
	case 0:
		return Edge{}, ErrDegenerateEdge
	case 1:
		a, b = b, a
	}
	return Edge{p1: a, p2: b}, nil
}

// MustEdge is like NewEdge but panics on equal points.
// It is meant for fixtures and literals that are known to be valid.
func MustEdge(a, b Point) Edge {
	e, err := NewEdge(a, b)
	if err != nil {
		panic(err)
	}
	return e
}

// P1 returns the endpoint that sorts first.
func (e Edge) P1() Point { return e.p1 }

// P2 returns the endpoint that sorts last.
func (e Edge) P2() Point { return e.p2 }

// Points returns both endpoints in canonical order.
func (e Edge) Points() [2]Point { return [2]Point{e.p1, e.p2} }

// Has reports whether p is one of the endpoints.
func (e Edge) Has(p Point) bool { return e.p1 == p || e.p2 == p }

// Other returns the endpoint opposite to p, and false if p is not an endpoint.
func (e Edge) Other(p Point) (Point, bool) {
	switch p {
	case e.p1:
		return e.p2, true
	case e.p2:
		return e.p1, true
	}
	return Point{}, false
}

// Vector returns P2-P1.
func (e Edge) Vector() Point { return e.p2.Sub(e.p1) }

// Len returns the edge length.
func (e Edge) Len() float64 { return e.Vector().Len() }

// Compare orders edges by their first endpoint, then by their second one.
func (e Edge) Compare(o Edge) int {
	if c := e.p1.Compare(o.p1); c != 0 {
		return c
	}
	return e.p2.Compare(o.p2)
}

// collinear reports whether p lies on the line through the edge.
func (e Edge) collinear(p Point) bool {
	return e.p2.Sub(p).Cross(e.p1.Sub(p)) == 0
}

func (e Edge) String() string {
	return fmt.Sprintf("[%v %v]", e.p1, e.p2)
}
