package loader_test

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	isoline "github.com/esimov/isoline/core"
	"github.com/esimov/isoline/loader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplesCSV = `0,0,1.5
10,0,2

10,10, 3.25
0,10,-4
`

const samplesGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [0, 0]}, "properties": {"elevation": 1.5}},
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [10, 0]}, "properties": {"z": 2}},
    {"type": "Feature", "geometry": {"type": "LineString", "coordinates": [[0, 0], [1, 1]]}, "properties": {}},
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [10, 10]}, "properties": {"elevation": 3.25, "z": 99}}
  ]
}`

const samplesSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="20" height="20">
  <g>
    <circle cx="1" cy="2" r="1" data-elevation="5"/>
    <circle cx="4" cy="2" r="1" data-elevation="6.5"/>
  </g>
  <circle cx="3" cy="8" r="1" data-elevation="-1"/>
</svg>`

func elevations(s *isoline.Samples) []float64 {
	var zs []float64
	for _, p := range s.Points() {
		z, _ := s.Elevation(p)
		zs = append(zs, z)
	}
	return zs
}

func TestLoader_ReadCSV(t *testing.T) {
	s, err := loader.ReadCSV(strings.NewReader(samplesCSV))
	require.NoError(t, err)

	assert.Equal(t, []isoline.Point{
		isoline.Pt(0, 0), isoline.Pt(10, 0), isoline.Pt(10, 10), isoline.Pt(0, 10),
	}, s.Points())
	assert.Equal(t, []float64{1.5, 2, 3.25, -4}, elevations(s))
}

func TestLoader_ReadCSV_ShouldReportLine(t *testing.T) {
	_, err := loader.ReadCSV(strings.NewReader("1,2,3\n4,x,6\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")

	_, err = loader.ReadCSV(strings.NewReader("1,2,3\n1,2,4\n"))
	assert.ErrorIs(t, err, isoline.ErrDuplicatePoint)

	_, err = loader.ReadCSV(strings.NewReader("1,2\n"))
	assert.ErrorIs(t, err, csv.ErrFieldCount)

	_, err = loader.ReadCSV(strings.NewReader("1,2,3\n\"4\",5,6\n"))
	assert.ErrorIs(t, err, loader.ErrQuotedField)
	assert.Contains(t, err.Error(), "line 2")
}

func TestLoader_WriteCSV_ShouldRoundTrip(t *testing.T) {
	s, err := loader.ReadCSV(strings.NewReader(samplesCSV))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, loader.WriteCSV(&buf, s))
	assert.Equal(t, "0,0,1.5\n10,0,2\n10,10,3.25\n0,10,-4\n", buf.String())
}

func TestLoader_ReadGeoJSON(t *testing.T) {
	s, err := loader.ReadGeoJSON(strings.NewReader(samplesGeoJSON))
	require.NoError(t, err)

	assert.Equal(t, []isoline.Point{isoline.Pt(0, 0), isoline.Pt(10, 0), isoline.Pt(10, 10)}, s.Points())
	assert.Equal(t, []float64{1.5, 2, 3.25}, elevations(s))

	var buf bytes.Buffer
	require.NoError(t, loader.WriteGeoJSON(&buf, s))
	back, err := loader.ReadGeoJSON(&buf)
	require.NoError(t, err)
	assert.Equal(t, s.Points(), back.Points())
	assert.Equal(t, elevations(s), elevations(back))
}

func TestLoader_ReadGeoJSON_ShouldRequireElevation(t *testing.T) {
	doc := `{"type":"FeatureCollection","features":[{"type":"Feature","geometry":{"type":"Point","coordinates":[1,2]},"properties":{"name":"a"}}]}`
	_, err := loader.ReadGeoJSON(strings.NewReader(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "feature 0")

	_, err = loader.ReadGeoJSON(strings.NewReader("{"))
	assert.Error(t, err)
}

func TestLoader_ReadSVG_ShouldFlipYAxis(t *testing.T) {
	s, err := loader.ReadSVG(strings.NewReader(samplesSVG))
	require.NoError(t, err)

	assert.Equal(t, []isoline.Point{isoline.Pt(1, -2), isoline.Pt(4, -2), isoline.Pt(3, -8)}, s.Points())
	assert.Equal(t, []float64{5, 6.5, -1}, elevations(s))

	_, err = loader.ReadSVG(strings.NewReader(`<svg><circle cx="1" cy="2"/></svg>`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data-elevation")
}

func TestLoader_DetectFormat(t *testing.T) {
	tests := []struct {
		name string
		data string
		want loader.Format
	}{
		{"", samplesCSV, loader.FormatCSV},
		{"", samplesGeoJSON, loader.FormatGeoJSON},
		{"", samplesSVG, loader.FormatSVG},
		{"points.xyz", "1 2 3", loader.FormatCSV},
		{"", "1,2,3", loader.FormatCSV},
		{"blob.bin", "\x00\x01\x02\x03", loader.FormatUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, loader.DetectFormat([]byte(tt.data), tt.name), "%q %q", tt.name, tt.data)
	}
	assert.Equal(t, "geojson", loader.FormatGeoJSON.String())
	assert.Equal(t, "unknown", loader.FormatUnknown.String())
}

func TestLoader_Load_ShouldDispatchOnFormat(t *testing.T) {
	for _, doc := range []string{samplesCSV, samplesGeoJSON, samplesSVG} {
		s, err := loader.Load(strings.NewReader(doc), "")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, s.Len(), 3)
	}

	_, err := loader.Load(bytes.NewReader([]byte{0, 1, 2, 3}), "blob.bin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")
}

func TestLoader_LoadFile(t *testing.T) {
	s, err := loader.LoadFile(filepath.Join("../testdata", "hills.csv"))
	require.NoError(t, err)
	assert.Equal(t, 120, s.Len())

	path := filepath.Join(t.TempDir(), "samples.geojson")
	require.NoError(t, os.WriteFile(path, []byte(samplesGeoJSON), 0o644))
	s, err = loader.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())

	_, err = loader.LoadFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
