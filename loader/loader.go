// Package loader reads sample sets for the isoline core from delimited text,
// GeoJSON and SVG documents.
package loader

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	isoline "github.com/esimov/isoline/core"
	"github.com/esimov/isoline/utils"
	"github.com/pkg/errors"
)

// Format identifies a sample file format.
type Format int

const (
	// FormatUnknown is returned when the format cannot be guessed.
	FormatUnknown Format = iota
	// FormatCSV is "x,y,z" rows.
	FormatCSV
	// FormatGeoJSON is a FeatureCollection of points.
	FormatGeoJSON
	// FormatSVG is an SVG document with circle elements.
	FormatSVG
)

func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatGeoJSON:
		return "geojson"
	case FormatSVG:
		return "svg"
	}
	return "unknown"
}

// DetectFormat guesses the format from the sniffed content type of data,
// falling back to the extension of name.
func DetectFormat(data []byte, name string) Format {
	switch {
	case utils.IsContentType(data, "text/csv"):
		return FormatCSV
	case utils.IsContentType(data, "application/geo+json", "application/json"):
		return FormatGeoJSON
	case utils.IsContentType(data, "image/svg+xml"):
		return FormatSVG
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".txt", ".xyz":
		return FormatCSV
	case ".geojson", ".json":
		return FormatGeoJSON
	case ".svg":
		return FormatSVG
	}

	// A single "x,y,z" row is too short to be sniffed as csv.
	if utils.IsContentType(data, "text/plain") {
		return FormatCSV
	}
	return FormatUnknown
}

// Load reads samples from r. The name is only used as a format hint and in
// error messages; it may be empty.
func Load(r io.Reader, name string) (*isoline.Samples, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(err, "loader: reading %q", name)
	}

	switch format := DetectFormat(data, name); format {
	case FormatCSV:
		return ReadCSV(bytes.NewReader(data))
	case FormatGeoJSON:
		return ReadGeoJSON(bytes.NewReader(data))
	case FormatSVG:
		return ReadSVG(bytes.NewReader(data))
	default:
		return nil, errors.Errorf("loader: unsupported sample format %q (%s)", name, utils.DetectContentType(data))
	}
}

// LoadFile reads samples from the named file.
func LoadFile(path string) (*isoline.Samples, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "loader")
	}
	defer f.Close()

	return Load(f, path)
}
