package isoline

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
)

var (
	// ErrZeroVector is returned when normalizing a zero length vector.
	ErrZeroVector = errors.New("isoline: cannot normalize a zero length vector")
	// ErrDegenerateEdge indicates an edge built from two equal points.
	ErrDegenerateEdge = errors.New("isoline: edge endpoints must be distinct")
	// ErrInvalidTriangle indicates three edges that do not close a triangle.
	ErrInvalidTriangle = errors.New("isoline: edges must touch exactly three distinct points")
	// ErrNotInTriangle indicates an edge or vertex that does not belong to the triangle.
	ErrNotInTriangle = errors.New("isoline: argument does not belong to the triangle")
	// ErrDuplicatePoint indicates a sample point that was already added.
	ErrDuplicatePoint = errors.New("isoline: duplicate sample point")
	// ErrNonFinite indicates a NaN or infinite coordinate or elevation.
	ErrNonFinite = errors.New("isoline: sample values must be finite")
	// ErrBandCount indicates a contour band count lower than one.
	ErrBandCount = errors.New("isoline: band count must be at least one")
	// ErrNotBuilt indicates an operation on a triangulation that was not built yet.
	ErrNotBuilt = errors.New("isoline: triangulation has not been built")
	// ErrAlreadyBuilt indicates a second call to Build.
	ErrAlreadyBuilt = errors.New("isoline: triangulation was already built")
	// ErrOutsideMesh indicates a query point outside of every triangle.
	ErrOutsideMesh = errors.New("isoline: point lies outside the triangulation")

	// ErrPointLocation is the internal invariant violation raised when no
	// triangle contains the point being inserted.
	ErrPointLocation = errors.New("isoline: no triangle contains the inserted point")
	// ErrEdgeOwners is the internal invariant violation raised when an edge
	// would be shared by more than two triangles.
	ErrEdgeOwners = errors.New("isoline: edge shared by more than two triangles")
)

// invariantError marks panics raised by the mesh when its structural
// invariants break. Only these are recovered by the public API.
type invariantError struct {
	error
}

func (e invariantError) Unwrap() error { return e.error }

// fatalf aborts the current build with an invariant violation wrapping cause.
func fatalf(cause error, format string, args ...interface{}) {
	panic(invariantError{pkgerrors.Wrapf(cause, format, args...)})
}

// recoverInvariant converts a recovered invariant panic into an error.
// Any other panic value is re-raised.
func recoverInvariant(r interface{}) error {
	if r == nil {
		return nil
	}
	if err, ok := r.(invariantError); ok {
		return err
	}
	panic(r)
}
