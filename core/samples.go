package isoline

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// Samples is an insertion ordered collection of distinct points, each
// carrying an elevation. The insertion order is the order in which the
// triangulation inserts the points.
type Samples struct {
	points []Point
	elev   map[Point]float64
}

// NewSamples returns an empty sample collection.
func NewSamples() *Samples {
	return &Samples{elev: make(map[Point]float64)}
}

// Add appends the sample p with elevation z.
// It fails with ErrNonFinite for NaN or infinite values and with
// ErrDuplicatePoint if p was already added.
func (s *Samples) Add(p Point, z float64) error {
	if !p.IsFinite() || math.IsNaN(z) || math.IsInf(z, 0) {
		return errors.Wrapf(ErrNonFinite, "sample %v z=%g", p, z)
	}
	if _, ok := s.elev[p]; ok {
		return errors.Wrapf(ErrDuplicatePoint, "sample %v", p)
	}
	s.points = append(s.points, p)
	s.elev[p] = z
	return nil
}

// MustAdd is like Add but panics on error.
func (s *Samples) MustAdd(p Point, z float64) *Samples {
	if err := s.Add(p, z); err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of samples.
func (s *Samples) Len() int { return len(s.points) }

// Points returns a copy of the sample points in insertion order.
func (s *Samples) Points() []Point {
	pts := make([]Point, len(s.points))
	copy(pts, s.points)
	return pts
}

// Elevation returns the elevation of p and whether p is a sample.
func (s *Samples) Elevation(p Point) (float64, bool) {
	z, ok := s.elev[p]
	return z, ok
}

// MinMax returns the lowest and highest elevation.
// Both are zero for an empty collection.
func (s *Samples) MinMax() (lo, hi float64) {
	if len(s.points) == 0 {
		return 0, 0
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, p := range s.points {
		z := s.elev[p]
		lo = math.Min(lo, z)
		hi = math.Max(hi, z)
	}
	return lo, hi
}

// Bounds returns the axis aligned bounding rectangle of the sample points.
// The rectangle is empty when there are no samples.
func (s *Samples) Bounds() r2.Rect {
	rect := r2.EmptyRect()
	for _, p := range s.points {
		rect = rect.AddPoint(p.R2())
	}
	return rect
}
