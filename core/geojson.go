package isoline

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// FeatureCollection exports the contours as one MultiLineString feature per
// level, with the level stored in the "level" property.
func (c *Contours) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, iso := range c.Isolines() {
		mls := make(orb.MultiLineString, 0, len(iso.Lines))
		for _, line := range iso.Lines {
			ls := make(orb.LineString, 0, len(line))
			for _, p := range line {
				ls = append(ls, p.Orb())
			}
			mls = append(mls, ls)
		}
		f := geojson.NewFeature(mls)
		f.Properties["level"] = iso.Level
		fc.Append(f)
	}
	return fc
}

// FeatureCollection exports the mesh as one Polygon feature per triangle.
// The vertex elevations are stored in the "elevations" property, in ring order.
func (t *Triangulation) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, tri := range t.tris {
		v := tri.verts
		if tri.SignedArea() < 0 {
			v[1], v[2] = v[2], v[1]
		}
		ring := orb.Ring{v[0].Orb(), v[1].Orb(), v[2].Orb(), v[0].Orb()}
		elev := make([]float64, 0, 3)
		for _, p := range v {
			z, _ := t.samples.Elevation(p)
			elev = append(elev, z)
		}

		f := geojson.NewFeature(orb.Polygon{ring})
		f.Properties["elevations"] = elev
		fc.Append(f)
	}
	return fc
}
