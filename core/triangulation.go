package isoline

import (
	"math"
	"sort"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

const (
	// DefaultSuperMargin is the default super triangle margin, as a factor of
	// the radius of the circle enclosing the sample bounds.
	DefaultSuperMargin = 32.0
	// minSuperMargin is the absolute floor of the margin.
	minSuperMargin = 1.0
)

type config struct {
	superMargin float64
	flipLimit   int
}

// Option configures a Triangulation.
type Option func(*config)

// WithSuperMargin sets how far the super triangle extends beyond the sample
// bounds, as a factor of the bounding circle radius. Circumcircle tests that
// involve the super triangle do not depend on it; the margin only has to keep
// point location and flips away from the super vertices. Non positive values
// are ignored.
func WithSuperMargin(f float64) Option {
	return func(c *config) {
		if f > 0 {
			c.superMargin = f
		}
	}
}

// WithFlipLimit caps the number of edge flips performed while legalizing a
// single insertion. Zero selects a limit proportional to the mesh size.
func WithFlipLimit(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.flipLimit = n
		}
	}
}

// Stats reports what happened during Build.
type Stats struct {
	Inserted      int // points inserted
	Flips         int // edge flips performed
	SkippedSplits int // sub-triangles skipped because the point was on an edge
	EdgeSplits    int // neighbours split because the point was on their edge
	Truncated     int // insertions whose legalization hit the flip limit
	Dropped       int // flat triangles removed during cleanup
	Blocked       int // illegal edges kept because their quadrilateral is reflex
}

// Triangulation is an incremental Delaunay triangulation of a sample set.
// It is empty until Build is called and read-only afterwards.
//
// Point location is a linear scan over the current triangles, so Build is
// O(n²) in the worst case. It is meant for hundreds to a few thousand points.
type Triangulation struct {
	samples *Samples
	cfg     config

	mesh       *mesh
	super      Triangle
	superVerts [3]superVertex
	tris       []Triangle

	built bool
	stats Stats
}

// NewTriangulation returns an empty triangulation of samples.
func NewTriangulation(samples *Samples, opts ...Option) *Triangulation {
	if samples == nil {
		samples = NewSamples()
	}
	cfg := config{superMargin: DefaultSuperMargin}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Triangulation{
		samples: samples,
		cfg:     cfg,
		mesh:    newMesh(),
	}
}

// Triangulate is a shorthand for NewTriangulation followed by Build.
func Triangulate(samples *Samples, opts ...Option) (*Triangulation, error) {
	t := NewTriangulation(samples, opts...)
	if err := t.Build(); err != nil {
		return nil, err
	}
	return t, nil
}

// Build inserts every sample point, in insertion order, legalizing the mesh
// with edge flips after each insertion, then removes the triangles touching
// the temporary super triangle.
//
// Fewer than three points, or collinear points, produce an empty or reduced
// triangle set without error. A point that no triangle contains means the
// bounding step lost precision; Build then returns an error wrapping
// ErrPointLocation and leaves the triangulation empty.
func (t *Triangulation) Build() (err error) {
	if t.built {
		return ErrAlreadyBuilt
	}
	t.built = true

	defer func() {
		if rerr := recoverInvariant(recover()); rerr != nil {
			t.mesh = newMesh()
			t.tris = nil
			err = rerr
		}
	}()

	points := t.samples.Points()
	if len(points) < 3 {
		return nil
	}

	t.super, t.superVerts = superTriangle(t.samples.Bounds(), t.cfg.superMargin)
	t.mesh.add(t.super)

	for _, p := range points {
		t.insert(p)
	}
	t.cleanup()

	return nil
}

// superVertex pairs a vertex of the super triangle with its far form.
type superVertex struct {
	at  Point
	far farPoint
}

// superTriangle returns the equilateral triangle circumscribing the circle
// that encloses rect with the given relative margin.
func superTriangle(rect r2.Rect, margin float64) (Triangle, [3]superVertex) {
	c := rect.Center()
	r := c.Sub(rect.Lo()).Norm()
	radius := r + math.Max(r*margin, minSuperMargin)

	center := Point{c.X, c.Y}
	s3 := math.Sqrt(3)
	dirs := [3]Point{{s3, -1}, {-s3, -1}, {0, 2}}

	var sv [3]superVertex
	for i, d := range dirs {
		sv[i] = superVertex{
			at:  center.Add(d.Mul(radius)),
			far: farPoint{base: center, dir: d},
		}
	}
	tri, err := TriangleFromPoints(sv[0].at, sv[1].at, sv[2].at)
	if err != nil {
		fatalf(err, "super triangle for %v", rect)
	}
	return tri, sv
}

func (t *Triangulation) farForm(p Point) (farPoint, bool) {
	for _, v := range t.superVerts {
		if v.at == p {
			return v.far, true
		}
	}
	return farPoint{base: p}, false
}

// illegal reports whether d lies inside the circumcircle of abc. When any of
// the four points is a super triangle vertex the test is taken in the limit
// of an unbounded super triangle.
func (t *Triangulation) illegal(a, b, c, d Point) bool {
	fa, sa := t.farForm(a)
	fb, sb := t.farForm(b)
	fc, sc := t.farForm(c)
	fd, sd := t.farForm(d)
	if !sa && !sb && !sc && !sd {
		return insideCircumcircle(a, b, c, d)
	}
	return farOrient(fa, fb, fc)*farInCircle(fa, fb, fc, fd) > 0
}

// insert splits the triangle containing p and legalizes the new edges.
func (t *Triangulation) insert(p Point) {
	m := t.mesh
	i := m.locate(p)
	if i < 0 {
		fatalf(ErrPointLocation, "point %v", p)
	}
	tri := m.tris[i]
	m.remove(i)

	var stack edgeStack
	for _, e := range tri.edges {
		if e.collinear(p) {
			t.stats.SkippedSplits++
			t.splitAcross(p, e, &stack)
			continue
		}
		t.fan(p, e)
		stack.Push(e)
	}
	t.legalize(&stack)
	t.stats.Inserted++
}

// fan adds the triangle formed by e and the two segments from p to its ends.
func (t *Triangulation) fan(p Point, e Edge) {
	tri, err := TriangleFromPoints(e.p1, e.p2, p)
	if err != nil {
		fatalf(err, "fan %v to %v", e, p)
	}
	t.mesh.add(tri)
}

// splitAcross handles p lying on e: the triangle on the other side of e is
// split as well, so the mesh stays edge-to-edge.
func (t *Triangulation) splitAcross(p Point, e Edge, stack *edgeStack) {
	own := t.mesh.owners(e)
	if len(own) != 1 {
		return
	}
	n := t.mesh.tris[own[0]]
	t.mesh.remove(own[0])
	for _, ne := range n.edges {
		if ne == e || ne.collinear(p) {
			continue
		}
		t.fan(p, ne)
		stack.Push(ne)
	}
	t.stats.EdgeSplits++
}

// legalize pops edges until the stack is empty, flipping every shared edge
// whose opposite vertex lies inside the circumcircle of its neighbour.
func (t *Triangulation) legalize(stack *edgeStack) {
	m := t.mesh
	limit := t.cfg.flipLimit
	if limit == 0 {
		limit = 3*m.count + 16
	}

	flips := 0
	for !stack.Empty() {
		e := stack.Pop()
		own := m.owners(e)
		if len(own) != 2 {
			continue
		}

		abc, abd := m.tris[own[0]], m.tris[own[1]]
		if abc == abd {
			m.remove(own[0])
			m.remove(own[1])
			continue
		}

		a, b := e.p1, e.p2
		c := mustOppositeVertex(abc, e)
		d := mustOppositeVertex(abd, e)
		if !t.illegal(a, b, c, d) {
			continue
		}
		// the flipped diagonal cd must cross ab
		oa, ob := orientSign(c, d, a), orientSign(c, d, b)
		if oa == 0 || ob == 0 {
			continue
		}
		if oa == ob {
			t.stats.Blocked++
			continue
		}
		if flips >= limit {
			t.stats.Truncated++
			return
		}

		m.remove(own[0])
		m.remove(own[1])

		cd := MustEdge(c, d)
		t.addFlipped(cd, mustOppositeEdge(abc, b), mustOppositeEdge(abd, b))
		t.addFlipped(cd, mustOppositeEdge(abc, a), mustOppositeEdge(abd, a))

		for _, tri := range [2]Triangle{abc, abd} {
			for _, te := range tri.edges {
				if te != e {
					stack.Push(te)
				}
			}
		}
		flips++
		t.stats.Flips++
	}
}

func (t *Triangulation) addFlipped(e1, e2, e3 Edge) {
	tri, err := NewTriangle(e1, e2, e3)
	if err != nil {
		fatalf(err, "flip %v %v %v", e1, e2, e3)
	}
	t.mesh.add(tri)
}

// cleanup removes every triangle sharing a vertex with the super triangle
// and every flat one, then freezes the result.
func (t *Triangulation) cleanup() {
	m := t.mesh
	for i, tri := range m.tris {
		if !m.alive[i] {
			continue
		}
		switch {
		case tri.HasCommonVertex(t.super):
			m.remove(i)
		case tri.flat():
			m.remove(i)
			t.stats.Dropped++
		}
	}
	t.tris = m.triangles()
	sort.Slice(t.tris, func(i, j int) bool { return t.tris[i].Compare(t.tris[j]) < 0 })
}

func mustOppositeVertex(t Triangle, e Edge) Point {
	p, err := t.OppositeVertex(e)
	if err != nil {
		fatalf(err, "edge %v in %v", e, t)
	}
	return p
}

func mustOppositeEdge(t Triangle, p Point) Edge {
	e, err := t.OppositeEdge(p)
	if err != nil {
		fatalf(err, "vertex %v in %v", p, t)
	}
	return e
}

// Samples returns the sample set the triangulation was built from.
func (t *Triangulation) Samples() *Samples { return t.samples }

// Built reports whether Build has been called.
func (t *Triangulation) Built() bool { return t.built }

// Stats returns the counters collected by Build.
func (t *Triangulation) Stats() Stats { return t.stats }

// Len returns the number of triangles.
func (t *Triangulation) Len() int { return len(t.tris) }

// Triangles returns a copy of the triangles in canonical order.
func (t *Triangulation) Triangles() []Triangle {
	out := make([]Triangle, len(t.tris))
	copy(out, t.tris)
	return out
}

// Edges returns the distinct edges of all triangles in canonical order.
func (t *Triangulation) Edges() []Edge {
	seen := make(map[Edge]struct{}, 3*len(t.tris)/2+3)
	edges := make([]Edge, 0, 3*len(t.tris)/2+3)
	for _, tri := range t.tris {
		for _, e := range tri.edges {
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			edges = append(edges, e)
		}
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].Compare(edges[j]) < 0 })
	return edges
}

// Area returns the total area covered by the triangles.
func (t *Triangulation) Area() float64 {
	var area float64
	for _, tri := range t.tris {
		area += tri.Area()
	}
	return area
}

// Locate returns the first triangle containing p.
func (t *Triangulation) Locate(p Point) (Triangle, bool) {
	for _, tri := range t.tris {
		if tri.ContainsPoint(p) {
			return tri, true
		}
	}
	return Triangle{}, false
}

// ElevationAt interpolates the elevation at p linearly over the triangle
// containing it. Points outside the mesh yield ErrOutsideMesh.
func (t *Triangulation) ElevationAt(p Point) (float64, error) {
	if !t.built {
		return 0, ErrNotBuilt
	}
	tri, ok := t.Locate(p)
	if !ok {
		return 0, errors.Wrapf(ErrOutsideMesh, "point %v", p)
	}

	v := tri.verts
	area := orient(v[0], v[1], v[2])
	w0 := orient(p, v[1], v[2]) / area
	w1 := orient(v[0], p, v[2]) / area
	w2 := 1 - w0 - w1

	var z [3]float64
	for i, vp := range v {
		z[i], _ = t.samples.Elevation(vp)
	}
	return w0*z[0] + w1*z[1] + w2*z[2], nil
}

// Validate checks the structural and geometric invariants of a built
// triangulation: every vertex is a sample, no edge has more than two
// triangles, no sample lies inside a circumcircle and the triangles cover
// the convex hull of the samples.
func (t *Triangulation) Validate() error {
	if !t.built {
		return ErrNotBuilt
	}

	uses := make(map[Edge]int, 3*len(t.tris)/2+3)
	for _, tri := range t.tris {
		for _, v := range tri.verts {
			if _, ok := t.samples.Elevation(v); !ok {
				return errors.Errorf("isoline: vertex %v of %v is not a sample", v, tri)
			}
		}
		for _, e := range tri.edges {
			uses[e]++
			if uses[e] > 2 {
				return errors.Wrapf(ErrEdgeOwners, "edge %v", e)
			}
		}
	}

	points := t.samples.Points()
	for _, tri := range t.tris {
		v := tri.verts
		for _, p := range points {
			if !tri.HasVertex(p) && insideCircumcircle(v[0], v[1], v[2], p) {
				return errors.Errorf("isoline: %v lies inside the circumcircle %v of %v", p, tri.Circumcircle(), tri)
			}
		}
	}

	if len(t.tris) == 0 {
		return nil
	}
	hull := HullArea(points)
	area := t.Area()
	if math.Abs(hull-area) > 1e-9*math.Max(1, hull) {
		return errors.Errorf("isoline: triangles cover %g, convex hull is %g", area, hull)
	}
	return nil
}
