package isoline_test

import (
	"math"
	"testing"

	isoline "github.com/esimov/isoline/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoint_Compare_ShouldOrderLexicographically(t *testing.T) {
	assert.Equal(t, -1, isoline.Pt(1, 9).Compare(isoline.Pt(2, 0)))
	assert.Equal(t, 1, isoline.Pt(2, 1).Compare(isoline.Pt(2, 0)))
	assert.Equal(t, 0, isoline.Pt(2, 1).Compare(isoline.Pt(2, 1)))
	assert.True(t, isoline.Pt(0, 5).Less(isoline.Pt(0, 6)))
}

func TestPoint_Equality_ShouldBeExact(t *testing.T) {
	x, y := 0.1, 0.2
	p := isoline.Pt(x+y, 1)
	q := isoline.Pt(0.3, 1)
	assert.NotEqual(t, p, q)
	assert.Equal(t, isoline.Pt(0.3, 1), q)
}

func TestPoint_Normalize_ShouldRejectZeroVector(t *testing.T) {
	_, err := isoline.Pt(0, 0).Normalize()
	assert.ErrorIs(t, err, isoline.ErrZeroVector)

	u, err := isoline.Pt(3, 4).Normalize()
	require.NoError(t, err)
	assert.InDelta(t, 0.6, u.X, 1e-12)
	assert.InDelta(t, 0.8, u.Y, 1e-12)
	assert.InDelta(t, 1, u.Len(), 1e-12)
}

func TestPoint_Arithmetic(t *testing.T) {
	p, q := isoline.Pt(1, 2), isoline.Pt(3, -1)
	assert.Equal(t, isoline.Pt(4, 1), p.Add(q))
	assert.Equal(t, isoline.Pt(-2, 3), p.Sub(q))
	assert.Equal(t, isoline.Pt(-1, -2), p.Neg())
	assert.Equal(t, isoline.Pt(2, 4), p.Mul(2))
	assert.Equal(t, 1.0, p.Dot(q))
	assert.Equal(t, -7.0, p.Cross(q))
	assert.Equal(t, 5.0, isoline.Pt(0, 0).Dist(isoline.Pt(3, 4)))
	assert.False(t, isoline.Pt(math.NaN(), 0).IsFinite())
	assert.False(t, isoline.Pt(0, math.Inf(-1)).IsFinite())
}

func TestEdge_ShouldBeCanonicalInEitherOrder(t *testing.T) {
	a, b := isoline.Pt(1, 2), isoline.Pt(3, 4)
	e1, err := isoline.NewEdge(a, b)
	require.NoError(t, err)
	e2, err := isoline.NewEdge(b, a)
	require.NoError(t, err)

	assert.Equal(t, e1, e2)
	assert.Equal(t, a, e2.P1())
	assert.Equal(t, b, e2.P2())

	set := map[isoline.Edge]int{e1: 1}
	set[e2]++
	assert.Len(t, set, 1)
	assert.Equal(t, 2, set[e1])
}

func TestEdge_ShouldRejectEqualEndpoints(t *testing.T) {
	_, err := isoline.NewEdge(isoline.Pt(1, 1), isoline.Pt(1, 1))
	assert.ErrorIs(t, err, isoline.ErrDegenerateEdge)
	assert.Panics(t, func() { isoline.MustEdge(isoline.Pt(0, 0), isoline.Pt(0, 0)) })
}

func TestEdge_Other(t *testing.T) {
	e := isoline.MustEdge(isoline.Pt(5, 0), isoline.Pt(0, 0))
	q, ok := e.Other(isoline.Pt(0, 0))
	assert.True(t, ok)
	assert.Equal(t, isoline.Pt(5, 0), q)

	_, ok = e.Other(isoline.Pt(1, 1))
	assert.False(t, ok)
	assert.Equal(t, 5.0, e.Len())
	assert.True(t, e.Has(isoline.Pt(5, 0)))
}

func TestTriangle_ShouldNotDependOnEdgeOrder(t *testing.T) {
	a, b, c := isoline.Pt(0, 0), isoline.Pt(4, 0), isoline.Pt(0, 3)
	ab, bc, ca := isoline.MustEdge(a, b), isoline.MustEdge(b, c), isoline.MustEdge(c, a)

	t1, err := isoline.NewTriangle(ab, bc, ca)
	require.NoError(t, err)
	t2, err := isoline.NewTriangle(ca, ab, bc)
	require.NoError(t, err)
	t3, err := isoline.TriangleFromPoints(c, b, a)
	require.NoError(t, err)

	assert.Equal(t, t1, t2)
	assert.Equal(t, t1, t3)
	assert.Equal(t, 0, t1.Compare(t3))
}

func TestTriangle_ShouldRejectOpenOrRepeatedEdges(t *testing.T) {
	a, b, c, d := isoline.Pt(0, 0), isoline.Pt(4, 0), isoline.Pt(0, 3), isoline.Pt(9, 9)

	_, err := isoline.NewTriangle(isoline.MustEdge(a, b), isoline.MustEdge(a, b), isoline.MustEdge(b, c))
	assert.ErrorIs(t, err, isoline.ErrInvalidTriangle)

	_, err = isoline.NewTriangle(isoline.MustEdge(a, b), isoline.MustEdge(b, c), isoline.MustEdge(c, d))
	assert.ErrorIs(t, err, isoline.ErrInvalidTriangle)

	_, err = isoline.TriangleFromPoints(a, a, c)
	assert.ErrorIs(t, err, isoline.ErrInvalidTriangle)
}

func TestTriangle_OppositeLookups(t *testing.T) {
	a, b, c := isoline.Pt(0, 0), isoline.Pt(4, 0), isoline.Pt(0, 3)
	tri, err := isoline.TriangleFromPoints(a, b, c)
	require.NoError(t, err)

	v, err := tri.OppositeVertex(isoline.MustEdge(a, b))
	require.NoError(t, err)
	assert.Equal(t, c, v)

	e, err := tri.OppositeEdge(a)
	require.NoError(t, err)
	assert.Equal(t, isoline.MustEdge(b, c), e)

	_, err = tri.OppositeEdge(isoline.Pt(7, 7))
	assert.ErrorIs(t, err, isoline.ErrNotInTriangle)
	_, err = tri.OppositeVertex(isoline.MustEdge(a, isoline.Pt(7, 7)))
	assert.ErrorIs(t, err, isoline.ErrNotInTriangle)

	for i, e := range tri.Edges() {
		assert.False(t, e.Has(tri.Vertices()[i]))
	}
}

func TestTriangle_Geometry(t *testing.T) {
	tri, err := isoline.TriangleFromPoints(isoline.Pt(0, 0), isoline.Pt(4, 0), isoline.Pt(0, 3))
	require.NoError(t, err)

	assert.Equal(t, 6.0, tri.Area())
	assert.True(t, tri.ContainsPoint(isoline.Pt(1, 1)))
	assert.True(t, tri.ContainsPoint(isoline.Pt(2, 0)), "boundary")
	assert.True(t, tri.ContainsPoint(isoline.Pt(4, 0)), "vertex")
	assert.False(t, tri.ContainsPoint(isoline.Pt(3, 3)))

	circle := tri.Circumcircle()
	assert.InDelta(t, 2, circle.Center.X, 1e-12)
	assert.InDelta(t, 1.5, circle.Center.Y, 1e-12)
	assert.InDelta(t, 2.5, circle.Radius, 1e-12)
	assert.True(t, circle.Contains(isoline.Pt(2, 2)))
	assert.False(t, circle.Contains(isoline.Pt(10, 10)))

	c := tri.Centroid()
	assert.InDelta(t, 4.0/3, c.X, 1e-12)
	assert.InDelta(t, 1, c.Y, 1e-12)
}

func TestTriangle_CommonVertex(t *testing.T) {
	t1, _ := isoline.TriangleFromPoints(isoline.Pt(0, 0), isoline.Pt(4, 0), isoline.Pt(0, 3))
	t2, _ := isoline.TriangleFromPoints(isoline.Pt(4, 0), isoline.Pt(8, 0), isoline.Pt(8, 3))
	t3, _ := isoline.TriangleFromPoints(isoline.Pt(20, 0), isoline.Pt(28, 0), isoline.Pt(28, 3))

	assert.True(t, t1.HasCommonVertex(t2))
	assert.False(t, t1.HasCommonVertex(t3))
	assert.True(t, t1.HasEdge(isoline.MustEdge(isoline.Pt(0, 3), isoline.Pt(0, 0))))
}

func TestSamples_ShouldRejectDuplicatesAndNonFinite(t *testing.T) {
	s := isoline.NewSamples()
	require.NoError(t, s.Add(isoline.Pt(1, 1), 3))

	err := s.Add(isoline.Pt(1, 1), 4)
	assert.ErrorIs(t, err, isoline.ErrDuplicatePoint)
	assert.ErrorIs(t, s.Add(isoline.Pt(2, 2), math.NaN()), isoline.ErrNonFinite)
	assert.ErrorIs(t, s.Add(isoline.Pt(math.Inf(1), 2), 0), isoline.ErrNonFinite)

	z, ok := s.Elevation(isoline.Pt(1, 1))
	assert.True(t, ok)
	assert.Equal(t, 3.0, z)
	assert.Equal(t, 1, s.Len())
}

func TestSamples_ShouldKeepInsertionOrder(t *testing.T) {
	s := isoline.NewSamples().
		MustAdd(isoline.Pt(5, 5), 1).
		MustAdd(isoline.Pt(-1, 2), -4).
		MustAdd(isoline.Pt(3, 0), 9)

	assert.Equal(t, []isoline.Point{isoline.Pt(5, 5), isoline.Pt(-1, 2), isoline.Pt(3, 0)}, s.Points())

	lo, hi := s.MinMax()
	assert.Equal(t, -4.0, lo)
	assert.Equal(t, 9.0, hi)

	b := s.Bounds()
	assert.Equal(t, -1.0, b.X.Lo)
	assert.Equal(t, 5.0, b.X.Hi)
	assert.Equal(t, 0.0, b.Y.Lo)
	assert.Equal(t, 5.0, b.Y.Hi)
}

func TestConvexHull_ShouldSkipInteriorAndCollinearPoints(t *testing.T) {
	pts := []isoline.Point{
		isoline.Pt(0, 0), isoline.Pt(5, 0), isoline.Pt(10, 0),
		isoline.Pt(10, 10), isoline.Pt(0, 10), isoline.Pt(4, 6), isoline.Pt(0, 0),
	}
	hull := isoline.ConvexHull(pts)
	assert.Equal(t, []isoline.Point{
		isoline.Pt(0, 0), isoline.Pt(10, 0), isoline.Pt(10, 10), isoline.Pt(0, 10),
	}, hull)
	assert.InDelta(t, 100, isoline.HullArea(pts), 1e-12)

	assert.Len(t, isoline.ConvexHull(pts[:2]), 2)
	assert.Equal(t, 0.0, isoline.HullArea(pts[:3]))
}
