package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	isoline "github.com/esimov/isoline/core"
	"github.com/esimov/isoline/loader"
	"github.com/esimov/isoline/render"
	"github.com/esimov/isoline/utils"
	"github.com/logrusorgru/aurora"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"golang.org/x/term"
)

const banner = `
┬┌─┐┌─┐┬  ┬┌┐┌┌─┐
│└─┐│ ││  ││││├┤
┴└─┘└─┘┴─┘┴┘└┘└─┘

Delaunay triangulation and contour lines of elevation samples.
    Version: %s

`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

// emptyName disables the image output.
const emptyName = "empty"

// Version indicates the current build version.
var Version string

type options struct {
	source      string
	destination string
	geojson     string
	bands       int
	width       int
	superMargin float64
	mesh        bool
	fill        bool
	validate    bool
	preview     bool
}

func main() {
	var (
		// Flags
		source      = flag.String("in", pipeName, "Sample file (csv, geojson or svg)")
		destination = flag.String("out", pipeName, "Destination image (png or jpg), `empty` to skip it")
		bands       = flag.Int("bands", 10, "Number of elevation bands; the contour lines are the band boundaries")
		jsonf       = flag.String("json", "", "Output the contour lines into a GeoJSON file")
		width       = flag.Int("width", 800, "Image width in pixels")
		margin      = flag.Float64("margin", isoline.DefaultSuperMargin, "Super triangle margin as a factor of the sample radius")
		mesh        = flag.Bool("mesh", true, "Draw the triangle edges")
		fill        = flag.Bool("fill", false, "Tint the triangles by elevation")
		validate    = flag.Bool("validate", false, "Check the Delaunay property of the result")
		preview     = flag.Bool("preview", false, "Show the output image in the terminal (iTerm2)")
	)

	log.SetFlags(0)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, banner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	if len(*source) == 0 || *bands < 1 {
		log.Fatal("Usage: isoline -in samples.csv -out contours.png -bands 10")
	}

	opts := options{
		source:      *source,
		destination: *destination,
		geojson:     *jsonf,
		bands:       *bands,
		width:       *width,
		superMargin: *margin,
		mesh:        *mesh,
		fill:        *fill,
		validate:    *validate,
		preview:     *preview,
	}
	if err := run(opts); err != nil {
		log.Fatalf("%v", aurora.Red(err))
	}
}

func run(opts options) error {
	start := time.Now()

	samples, err := readSamples(opts.source)
	if err != nil {
		return fmt.Errorf("reading the samples: %w", err)
	}

	ind := utils.NewProgressIndicator("Triangulating...", time.Millisecond*100)
	ind.Start()

	tri, err := isoline.Triangulate(samples, isoline.WithSuperMargin(opts.superMargin))
	if err != nil {
		ind.StopMsg = fmt.Sprintf("Triangulating... %s\n", aurora.Red("failed ✗"))
		ind.Stop()
		return err
	}
	contours, err := isoline.NewContourExtractor(tri).Extract(opts.bands)
	if err != nil {
		ind.Stop()
		return err
	}
	ind.StopMsg = fmt.Sprintf("Triangulating... %s\n", aurora.Green("finished ✔"))
	ind.Stop()

	stats := tri.Stats()
	log.Printf("%s samples, %s triangles, %s edge flips",
		aurora.Green(samples.Len()), aurora.Green(tri.Len()), aurora.Green(stats.Flips))
	if stats.Truncated > 0 {
		log.Printf("%s", aurora.Yellow(fmt.Sprintf("flip limit reached on %d insertions", stats.Truncated)))
	}
	if tri.Len() == 0 {
		log.Printf("%s", aurora.Yellow("no triangles: fewer than three samples or all samples collinear"))
	}

	if opts.validate {
		if err := tri.Validate(); err != nil {
			return err
		}
		log.Printf("Delaunay property %s", aurora.Green("verified ✔"))
	}

	if opts.destination != emptyName {
		if err := writeImage(tri, contours, opts); err != nil {
			return err
		}
	}
	if opts.geojson != "" {
		if err := writeGeoJSON(contours, opts.geojson); err != nil {
			return err
		}
	}

	log.Printf("%s contour levels, %s crossings", aurora.Green(len(contours.Levels())), aurora.Green(contours.Len()))
	log.Printf("Execution time: %s", aurora.Green(fmt.Sprintf("%.2fs", time.Since(start).Seconds())))
	return nil
}

func readSamples(source string) (*isoline.Samples, error) {
	if source == pipeName {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, fmt.Errorf("`-` should be used with a pipe for stdin")
		}
		return loader.Load(os.Stdin, "")
	}

	ctype, err := utils.DetectFileContentType(source)
	if err != nil {
		return nil, err
	}
	if strings.HasPrefix(ctype, "image/") && !strings.HasPrefix(ctype, "image/svg") {
		return nil, fmt.Errorf("%s is a raster image (%s), expected a sample file", source, ctype)
	}
	return loader.LoadFile(source)
}

func writeImage(tri *isoline.Triangulation, contours *isoline.Contours, opts options) error {
	var dst io.Writer
	if opts.destination == pipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return fmt.Errorf("`-` should be used with a pipe for stdout")
		}
		dst = os.Stdout
	} else {
		ext := filepath.Ext(opts.destination)
		if !inSlice(ext, []string{".jpg", ".jpeg", ".png"}) {
			return fmt.Errorf("output file type not supported: %v", ext)
		}
		fn, err := os.Create(opts.destination)
		if err != nil {
			return fmt.Errorf("unable to open output file: %w", err)
		}
		defer fn.Close()
		dst = fn
	}

	ropts := render.DefaultOptions()
	ropts.Width = opts.width
	ropts.Mesh = opts.mesh
	ropts.Fill = opts.fill
	img, err := render.Draw(tri, contours, ropts)
	if err != nil {
		return err
	}
	if err := render.Encode(dst, img, opts.destination); err != nil {
		return fmt.Errorf("error encoding the output image: %w", err)
	}

	if opts.preview && opts.destination != pipeName {
		if f, ok := dst.(*os.File); ok {
			if err := f.Sync(); err != nil {
				return err
			}
		}
		imgcat.CatFile(opts.destination, os.Stderr)
	}
	return nil
}

func writeGeoJSON(contours *isoline.Contours, name string) error {
	data, err := contours.FeatureCollection().MarshalJSON()
	if err != nil {
		return err
	}
	if name == pipeName {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(name, data, 0o644)
}

// inSlice checks if the item exists in the slice.
func inSlice(item string, slice []string) bool {
	for _, it := range slice {
		if it == item {
			return true
		}
	}
	return false
}
