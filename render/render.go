// Package render draws a triangulation and its contour lines into an image.
package render

import (
	"image"
	"image/color"
	"io"
	"math"
	"path/filepath"

	"github.com/disintegration/imaging"
	isoline "github.com/esimov/isoline/core"
	"github.com/fogleman/gg"
	"github.com/pkg/errors"
)

// Options defines the drawing parameters.
type Options struct {
	Width       int     // output width in pixels; the height follows the aspect ratio of the samples
	Margin      float64 // blank border in pixels
	Supersample int     // drawing scale factor before downsizing; values below 2 disable it
	LineWidth   float64

	Mesh   bool // stroke the triangle edges
	Fill   bool // tint each triangle by its mean elevation
	Points bool // mark the sample points

	Background color.Color
	MeshColor  color.Color
	PointColor color.Color
	// Low and High are the contour colors of the lowest and highest level;
	// levels in between are interpolated.
	Low, High color.RGBA
}

// DefaultOptions returns the options used by the command line tool.
func DefaultOptions() Options {
	return Options{
		Width:       800,
		Margin:      20,
		Supersample: 2,
		LineWidth:   1.5,
		Mesh:        true,
		Points:      true,
		Background:  color.White,
		MeshColor:   color.RGBA{R: 200, G: 200, B: 200, A: 255},
		PointColor:  color.RGBA{R: 40, G: 40, B: 40, A: 255},
		Low:         color.RGBA{R: 30, G: 90, B: 200, A: 255},
		High:        color.RGBA{R: 200, G: 40, B: 30, A: 255},
	}
}

// projection maps sample coordinates to canvas pixels with the y axis
// pointing up.
type projection struct {
	minX, maxY float64
	scale      float64
	margin     float64
}

func (p projection) apply(pt isoline.Point) (float64, float64) {
	return p.margin + (pt.X-p.minX)*p.scale, p.margin + (p.maxY-pt.Y)*p.scale
}

// Draw renders the triangulation t and, when c is not nil, its contour lines.
// The triangulation must be built.
func Draw(t *isoline.Triangulation, c *isoline.Contours, opts Options) (image.Image, error) {
	if !t.Built() {
		return nil, isoline.ErrNotBuilt
	}
	if opts.Width <= 0 {
		return nil, errors.Errorf("render: invalid width %d", opts.Width)
	}
	if opts.Margin < 0 || 2*opts.Margin >= float64(opts.Width) {
		return nil, errors.Errorf("render: margin %v does not fit width %d", opts.Margin, opts.Width)
	}
	ss := opts.Supersample
	if ss < 2 {
		ss = 1
	}

	bounds := t.Samples().Bounds()
	var dx, dy float64
	if !bounds.IsEmpty() {
		dx, dy = bounds.X.Length(), bounds.Y.Length()
	}
	span := math.Max(dx, dy)
	if span == 0 {
		span = 1
	}
	inner := float64(opts.Width) - 2*opts.Margin
	width := opts.Width
	height := int(math.Ceil(dy/span*inner + 2*opts.Margin))
	if height < 1 {
		height = 1
	}

	proj := projection{
		minX:   bounds.X.Lo,
		maxY:   bounds.Y.Hi,
		scale:  inner / span * float64(ss),
		margin: opts.Margin * float64(ss),
	}
	if bounds.IsEmpty() {
		proj.minX, proj.maxY = 0, 0
	}

	dc := gg.NewContext(width*ss, height*ss)
	if opts.Background != nil {
		dc.SetColor(opts.Background)
		dc.Clear()
	}

	lo, hi := t.Samples().MinMax()
	tris := t.Triangles()
	if opts.Fill {
		for _, tri := range tris {
			v := tri.Vertices()
			var mean float64
			for _, p := range v {
				z, _ := t.Samples().Elevation(p)
				mean += z / 3
			}
			base := lerpColor(opts.Low, opts.High, fraction(mean, lo, hi))
			tint := color.NRGBA{R: base.R, G: base.G, B: base.B, A: 64}
			tracePolygon(dc, proj, v[:])
			dc.SetFillStyle(gg.NewSolidPattern(tint))
			dc.Fill()
		}
	}
	if opts.Mesh && opts.MeshColor != nil {
		dc.SetLineWidth(float64(ss))
		dc.SetStrokeStyle(gg.NewSolidPattern(opts.MeshColor))
		for _, e := range t.Edges() {
			x1, y1 := proj.apply(e.P1())
			x2, y2 := proj.apply(e.P2())
			dc.DrawLine(x1, y1, x2, y2)
		}
		dc.Stroke()
	}

	if c != nil {
		levels := c.Levels()
		dc.SetLineWidth(opts.LineWidth * float64(ss))
		dc.SetLineCap(gg.LineCapRound)
		for i, iso := range c.Isolines() {
			f := 0.5
			if len(levels) > 1 {
				f = float64(i) / float64(len(levels)-1)
			}
			dc.SetStrokeStyle(gg.NewSolidPattern(lerpColor(opts.Low, opts.High, f)))
			for _, line := range iso.Lines {
				if len(line) < 2 {
					continue
				}
				x, y := proj.apply(line[0])
				dc.MoveTo(x, y)
				for _, p := range line[1:] {
					x, y = proj.apply(p)
					dc.LineTo(x, y)
				}
				dc.NewSubPath()
			}
			dc.Stroke()
		}
	}

	if opts.Points && opts.PointColor != nil {
		dc.SetFillStyle(gg.NewSolidPattern(opts.PointColor))
		for _, p := range t.Samples().Points() {
			x, y := proj.apply(p)
			dc.DrawCircle(x, y, 2*float64(ss))
		}
		dc.Fill()
	}

	img := dc.Image()
	if ss > 1 {
		return imaging.Resize(img, width, height, imaging.Lanczos), nil
	}
	return img, nil
}

func tracePolygon(dc *gg.Context, proj projection, pts []isoline.Point) {
	dc.NewSubPath()
	for i, p := range pts {
		x, y := proj.apply(p)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.ClosePath()
}

func fraction(v, lo, hi float64) float64 {
	if hi <= lo {
		return 0.5
	}
	return math.Min(1, math.Max(0, (v-lo)/(hi-lo)))
}

func lerpColor(a, b color.RGBA, f float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*f))
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

// Encode writes img to w in the format given by the extension of name.
// An empty name, or "-" for stdout, encodes as PNG.
func Encode(w io.Writer, img image.Image, name string) error {
	format := imaging.PNG
	if name != "" && name != "-" {
		var err error
		if format, err = imaging.FormatFromFilename(name); err != nil {
			return errors.Errorf("render: unsupported image format %q", filepath.Ext(name))
		}
	}
	switch format {
	case imaging.PNG, imaging.JPEG:
	default:
		return errors.Errorf("render: unsupported image format %q", filepath.Ext(name))
	}
	return errors.Wrap(imaging.Encode(w, img, format, imaging.JPEGQuality(100)), "render")
}
