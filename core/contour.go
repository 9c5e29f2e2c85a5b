package isoline

import (
	"math"
	"sort"
)

// Levels returns the n-1 iso-levels evenly spaced strictly between lo and hi:
// lo + i*(hi-lo)/n for i = 1..n-1. There are none when n < 2 or hi <= lo.
func Levels(lo, hi float64, n int) []float64 {
	if n < 2 || !(hi > lo) {
		return nil
	}
	levels := make([]float64, 0, n-1)
	for i := 1; i < n; i++ {
		levels = append(levels, float64(i)*(hi-lo)/float64(n)+lo)
	}
	return levels
}

// ContourExtractor computes where iso-levels cross the edges of a built
// triangulation.
type ContourExtractor struct {
	tri *Triangulation
}

// NewContourExtractor returns an extractor reading from t.
func NewContourExtractor(t *Triangulation) *ContourExtractor {
	return &ContourExtractor{tri: t}
}

// Extract splits the sample elevation range into n bands and computes the
// crossings of the n-1 interior levels.
func (x *ContourExtractor) Extract(n int) (*Contours, error) {
	if n < 1 {
		return nil, ErrBandCount
	}
	lo, hi := x.tri.samples.MinMax()
	return x.ExtractLevels(Levels(lo, hi, n)...)
}

// ExtractLevels computes the crossings of the given levels. NaN levels are
// ignored and duplicates are merged.
//
// Every distinct edge of the triangulation gets an entry. Its endpoints are
// ordered by ascending elevation, and each level L with lo <= L <= hi is
// interpolated linearly between them. Edges whose endpoints have the same
// elevation register no crossing.
func (x *ContourExtractor) ExtractLevels(levels ...float64) (*Contours, error) {
	if !x.tri.built {
		return nil, ErrNotBuilt
	}

	lv := make([]float64, 0, len(levels))
	for _, l := range levels {
		if !math.IsNaN(l) {
			lv = append(lv, l)
		}
	}
	sort.Float64s(lv)
	uniq := lv[:0]
	for i, l := range lv {
		if i == 0 || l != lv[i-1] {
			uniq = append(uniq, l)
		}
	}
	lv = uniq

	edges := x.tri.Edges()
	c := &Contours{
		tri:       x.tri,
		levels:    lv,
		crossings: make(map[Edge]map[float64]Point, len(edges)),
	}
	for _, e := range edges {
		c.crossings[e] = x.crossEdge(e, lv)
	}
	return c, nil
}

func (x *ContourExtractor) crossEdge(e Edge, levels []float64) map[float64]Point {
	start, end := e.p1, e.p2
	zs, _ := x.tri.samples.Elevation(start)
	ze, _ := x.tri.samples.Elevation(end)
	if zs > ze {
		start, end = end, start
		zs, ze = ze, zs
	}

	out := make(map[float64]Point)
	if zs == ze {
		return out
	}
	// levels is sorted, skip straight to the first one not below zs.
	i := sort.SearchFloat64s(levels, zs)
	for ; i < len(levels) && levels[i] <= ze; i++ {
		l := levels[i]
		rs := (l - zs) / (ze - zs)
		re := (ze - l) / (ze - zs)
		out[l] = start.Mul(re).Add(end.Mul(rs))
	}
	return out
}

// Segment is a piece of contour line inside one triangle.
type Segment struct {
	A, B Point
}

// Polyline is a chain of contour segments. A closed line repeats its first
// point at the end.
type Polyline []Point

// Closed reports whether the line ends where it starts.
func (l Polyline) Closed() bool {
	return len(l) > 2 && l[0] == l[len(l)-1]
}

// Isoline groups the polylines of one level.
type Isoline struct {
	Level float64
	Lines []Polyline
}

// Contours holds the crossings computed by a ContourExtractor.
// It is immutable.
type Contours struct {
	tri       *Triangulation
	levels    []float64
	crossings map[Edge]map[float64]Point
}

// Levels returns the extracted levels in ascending order.
func (c *Contours) Levels() []float64 {
	out := make([]float64, len(c.levels))
	copy(out, c.levels)
	return out
}

// Crossing returns the point where level l crosses e.
func (c *Contours) Crossing(e Edge, l float64) (Point, bool) {
	p, ok := c.crossings[e][l]
	return p, ok
}

// Crossings returns a copy of the level to point map of e.
func (c *Contours) Crossings(e Edge) map[float64]Point {
	src := c.crossings[e]
	out := make(map[float64]Point, len(src))
	for l, p := range src {
		out[l] = p
	}
	return out
}

// Edges returns the edges crossed by at least one level, in canonical order.
func (c *Contours) Edges() []Edge {
	edges := make([]Edge, 0, len(c.crossings))
	for e, m := range c.crossings {
		if len(m) > 0 {
			edges = append(edges, e)
		}
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].Compare(edges[j]) < 0 })
	return edges
}

// Len returns the total number of crossing points.
func (c *Contours) Len() int {
	n := 0
	for _, m := range c.crossings {
		n += len(m)
	}
	return n
}

// Segments returns the contour segments of level l, one per crossed triangle.
//
// A vertex whose elevation equals l counts as lying above it. Only edges
// going from strictly below l to above it take part, so every triangle has
// either zero or two crossings. When both crossings are the same vertex the
// level only touches the triangle and no segment is produced. An edge lying
// on the level with lower ground on both sides is reported once.
func (c *Contours) Segments(l float64) []Segment {
	var segs []Segment
	seen := make(map[Edge]struct{})
	for _, tri := range c.tri.tris {
		var (
			pts [2]Point
			n   int
		)
		for _, e := range tri.edges {
			p, ok := c.crossings[e][l]
			if !ok || !c.below(e, l) {
				continue
			}
			if n < len(pts) {
				pts[n] = p
			}
			n++
		}
		if n != 2 || pts[0] == pts[1] {
			continue
		}
		e := MustEdge(pts[0], pts[1])
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		segs = append(segs, Segment{A: pts[0], B: pts[1]})
	}
	return segs
}

// below reports whether the lower endpoint of e is strictly below l.
func (c *Contours) below(e Edge, l float64) bool {
	z1, _ := c.tri.samples.Elevation(e.p1)
	z2, _ := c.tri.samples.Elevation(e.p2)
	return math.Min(z1, z2) < l
}

// Polylines joins the segments of level l into chains. Open chains start at
// a loose end; closed ones repeat their first point.
func (c *Contours) Polylines(l float64) []Polyline {
	segs := c.Segments(l)
	adj := make(map[Point][]int, 2*len(segs))
	for i, s := range segs {
		adj[s.A] = append(adj[s.A], i)
		adj[s.B] = append(adj[s.B], i)
	}
	used := make([]bool, len(segs))

	follow := func(p Point, si int) Polyline {
		line := Polyline{p}
		for si >= 0 {
			used[si] = true
			q := segs[si].A
			if q == p {
				q = segs[si].B
			}
			line = append(line, q)
			p = q

			si = -1
			for _, j := range adj[p] {
				if !used[j] {
					si = j
					break
				}
			}
		}
		return line
	}

	var lines []Polyline
	for i, s := range segs {
		if used[i] {
			continue
		}
		for _, end := range [2]Point{s.A, s.B} {
			if len(adj[end]) == 1 {
				lines = append(lines, follow(end, i))
				break
			}
		}
	}
	for i, s := range segs {
		if !used[i] {
			lines = append(lines, follow(s.A, i))
		}
	}
	return lines
}

// Isolines returns the polylines of every extracted level.
func (c *Contours) Isolines() []Isoline {
	out := make([]Isoline, 0, len(c.levels))
	for _, l := range c.levels {
		out = append(out, Isoline{Level: l, Lines: c.Polylines(l)})
	}
	return out
}
