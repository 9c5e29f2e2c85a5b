package loader

import (
	"io"
	"strconv"

	svgparser "github.com/JoshVarga/svgparser"
	isoline "github.com/esimov/isoline/core"
	"github.com/pkg/errors"
)

// ReadSVG reads samples from the <circle> elements of an SVG document. The
// center gives the position and the data-elevation attribute the elevation.
// SVG's y axis points down, so y is negated to keep north up.
//
// This is not a full SVG reader: transforms and units are ignored. It exists
// for hand-drawn sample fixtures.
func ReadSVG(r io.Reader) (*isoline.Samples, error) {
	root, err := svgparser.Parse(r, false)
	if err != nil {
		return nil, errors.Wrap(err, "loader: svg")
	}

	samples := isoline.NewSamples()
	for i, el := range root.FindAll("circle") {
		var v [3]float64
		for j, attr := range [3]string{"cx", "cy", "data-elevation"} {
			s, ok := el.Attributes[attr]
			if !ok {
				return nil, errors.Errorf("loader: svg circle %d has no %s attribute", i, attr)
			}
			if v[j], err = strconv.ParseFloat(s, 64); err != nil {
				return nil, errors.Wrapf(err, "loader: svg circle %d %s", i, attr)
			}
		}
		if err := samples.Add(isoline.Pt(v[0], -v[1]), v[2]); err != nil {
			return nil, errors.Wrapf(err, "loader: svg circle %d", i)
		}
	}
	return samples, nil
}
