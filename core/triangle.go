package isoline

import (
	"fmt"
	"math"
	"sort"
)

// Triangle is a closed cycle of three edges. Edges are kept sorted in the
// canonical edge order and vertex i is the point not touched by edge i, so a
// Triangle is a comparable value whose equality does not depend on the order
// or orientation of the edges it was built from.
type Triangle struct {
	edges [3]Edge
	verts [3]Point
}

// NewTriangle builds a triangle from three edges. The edges must be distinct
// and touch exactly three distinct points, otherwise ErrInvalidTriangle is
// returned.
func NewTriangle(e1, e2, e3 Edge) (Triangle, error) {
	edges := [3]Edge{e1, e2, e3}
	sort.Slice(edges[:], func(i, j int) bool {
		return edges[i].Compare(edges[j]) < 0
	})
	if edges[0] == edges[1] || edges[1] == edges[2] {
		return Triangle{}, ErrInvalidTriangle
	}

	var (
		pts [3]Point
		n   int
	)
	for _, e := range edges {
		for _, p := range e.Points() {
			seen := false
			for _, q := range pts[:n] {
				if q == p {
					seen = true
					break
				}
			}
			if seen {
				continue
			}
			if n == len(pts) {
				return Triangle{}, ErrInvalidTriangle
			}
			pts[n] = p
			n++
		}
	}
	if n != 3 {
		return Triangle{}, ErrInvalidTriangle
	}

	t := Triangle{edges: edges}
	for i, e := range edges {
		for _, p := range pts {
			if !e.Has(p) {
				t.verts[i] = p
				break
			}
		}
	}
	return t, nil
}

// TriangleFromPoints builds the triangle with vertices a, b and c.
func TriangleFromPoints(a, b, c Point) (Triangle, error) {
	ab, err := NewEdge(a, b)
	if err != nil {
		return Triangle{}, ErrInvalidTriangle
	}
	bc, err := NewEdge(b, c)
	if err != nil {
		return Triangle{}, ErrInvalidTriangle
	}
	ca, err := NewEdge(c, a)
	if err != nil {
		return Triangle{}, ErrInvalidTriangle
	}
	return NewTriangle(ab, bc, ca)
}

// Edges returns the three edges in canonical order.
func (t Triangle) Edges() [3]Edge { return t.edges }

// Vertices returns the three vertices; Vertices()[i] is opposite to Edges()[i].
func (t Triangle) Vertices() [3]Point { return t.verts }

// OppositeVertex returns the vertex not touched by e.
func (t Triangle) OppositeVertex(e Edge) (Point, error) {
	for i, te := range t.edges {
		if te == e {
			return t.verts[i], nil
		}
	}
	return Point{}, ErrNotInTriangle
}

// OppositeEdge returns the edge that does not touch p.
func (t Triangle) OppositeEdge(p Point) (Edge, error) {
	for i, v := range t.verts {
		if v == p {
			return t.edges[i], nil
		}
	}
	return Edge{}, ErrNotInTriangle
}

// HasVertex reports whether p is one of the vertices.
func (t Triangle) HasVertex(p Point) bool {
	return t.verts[0] == p || t.verts[1] == p || t.verts[2] == p
}

// HasEdge reports whether e is one of the edges.
func (t Triangle) HasEdge(e Edge) bool {
	return t.edges[0] == e || t.edges[1] == e || t.edges[2] == e
}

// HasCommonVertex reports whether t and o share at least one vertex.
func (t Triangle) HasCommonVertex(o Triangle) bool {
	for _, v := range o.verts {
		if t.HasVertex(v) {
			return true
		}
	}
	return false
}

// ContainsPoint reports whether p lies inside the triangle or on its boundary.
// It works for either winding of the vertices.
func (t Triangle) ContainsPoint(p Point) bool {
	v1, v2, v3 := t.verts[0], t.verts[1], t.verts[2]
	c1 := v2.Sub(v1).Cross(p.Sub(v1))
	c2 := v3.Sub(v2).Cross(p.Sub(v2))
	c3 := v1.Sub(v3).Cross(p.Sub(v3))

	return (c1 >= 0 && c2 >= 0 && c3 >= 0) || (c1 <= 0 && c2 <= 0 && c3 <= 0)
}

// Circumcircle returns the circle passing through the three vertices.
//
// The center is the barycentric combination weighted by a²(b²+c²−a²) and its
// permutations, where a, b, c are the edge lengths opposite each vertex. For
// nearly collinear vertices the weight sum approaches zero and the result
// loses precision; for exactly collinear ones the center is not finite and
// Contains reports false for every point.
func (t Triangle) Circumcircle() Circle {
	v1, v2, v3 := t.verts[0], t.verts[1], t.verts[2]
	a2 := v2.Sub(v3).LenSq()
	b2 := v3.Sub(v1).LenSq()
	c2 := v1.Sub(v2).LenSq()

	wa := a2 * (b2 + c2 - a2)
	wb := b2 * (c2 + a2 - b2)
	wc := c2 * (a2 + b2 - c2)

	center := v1.Mul(wa).Add(v2.Mul(wb)).Add(v3.Mul(wc)).Mul(1 / (wa + wb + wc))
	return Circle{Center: center, Radius: center.Dist(v1)}
}

// SignedArea returns the area of the triangle, positive when the vertices
// are ordered counterclockwise.
func (t Triangle) SignedArea() float64 {
	return orient(t.verts[0], t.verts[1], t.verts[2]) / 2
}

// flatTolerance is the height of a triangle, relative to its longest edge,
// under which it counts as flat.
const flatTolerance = 1e-12

// flat reports whether the vertices are collinear or so close to it that the
// circumcircle cannot be computed meaningfully in floating point.
func (t Triangle) flat() bool {
	v := t.verts
	longest := math.Max(v[0].Sub(v[1]).LenSq(), math.Max(v[1].Sub(v[2]).LenSq(), v[2].Sub(v[0]).LenSq()))
	return math.Abs(orient(v[0], v[1], v[2])) <= flatTolerance*longest
}

// Area returns the unsigned area of the triangle.
func (t Triangle) Area() float64 {
	a := t.SignedArea()
	if a < 0 {
		return -a
	}
	return a
}

// Centroid returns the mean of the three vertices.
func (t Triangle) Centroid() Point {
	return t.verts[0].Add(t.verts[1]).Add(t.verts[2]).Mul(1.0 / 3)
}

// Compare orders triangles by their canonical edge triples.
func (t Triangle) Compare(o Triangle) int {
	for i := range t.edges {
		if c := t.edges[i].Compare(o.edges[i]); c != 0 {
			return c
		}
	}
	return 0
}

func (t Triangle) String() string {
	return fmt.Sprintf("{%v %v %v}", t.verts[0], t.verts[1], t.verts[2])
}
