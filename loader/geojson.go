package loader

import (
	"io"

	isoline "github.com/esimov/isoline/core"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
)

// elevationKeys are the feature properties holding the sample elevation,
// in lookup order.
var elevationKeys = []string{"elevation", "z"}

// ReadGeoJSON reads samples from a FeatureCollection of Point features.
// The elevation comes from the "elevation" property, or "z" when absent.
// Features of other geometry types are skipped.
func ReadGeoJSON(r io.Reader) (*isoline.Samples, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "loader: geojson")
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrap(err, "loader: geojson")
	}

	samples := isoline.NewSamples()
	for i, f := range fc.Features {
		pt, ok := f.Geometry.(orb.Point)
		if !ok {
			continue
		}
		z, ok := featureElevation(f)
		if !ok {
			return nil, errors.Errorf("loader: geojson feature %d has no elevation property", i)
		}
		if err := samples.Add(isoline.Pt(pt.X(), pt.Y()), z); err != nil {
			return nil, errors.Wrapf(err, "loader: geojson feature %d", i)
		}
	}
	return samples, nil
}

func featureElevation(f *geojson.Feature) (float64, bool) {
	for _, key := range elevationKeys {
		switch v := f.Properties[key].(type) {
		case float64:
			return v, true
		case int:
			return float64(v), true
		}
	}
	return 0, false
}

// WriteGeoJSON writes samples as a FeatureCollection of Point features with
// an "elevation" property.
func WriteGeoJSON(w io.Writer, samples *isoline.Samples) error {
	fc := geojson.NewFeatureCollection()
	for _, p := range samples.Points() {
		z, _ := samples.Elevation(p)
		f := geojson.NewFeature(p.Orb())
		f.Properties["elevation"] = z
		fc.Append(f)
	}
	data, err := fc.MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "loader: geojson")
	}
	_, err = w.Write(data)
	return errors.Wrap(err, "loader: geojson")
}
