//go:build js && wasm

package main

import (
	"bytes"
	"math"

	"github.com/esimov/isoline/loader"
	"github.com/esimov/isoline/wasm/canvas"
	"github.com/esimov/isoline/wasm/fetch"
)

func main() {
	width, height := 0.0, 0.0
	// A single hill centered on the canvas.
	field := func(x, y float64) float64 {
		dx, dy := x-width/2, y-height/2
		r := math.Min(width, height) / 3
		return 100 * math.Exp(-(dx*dx+dy*dy)/(r*r))
	}
	c := canvas.NewCanvas(field, 8)
	w, h := c.Size()
	width, height = float64(w), float64(h)

	f := fetch.NewFetcher()
	data, err := f.Fetch("samples/samples.csv")
	if err != nil {
		f.Log(err.Error())
	} else if samples, err := loader.ReadCSV(bytes.NewReader(data)); err != nil {
		c.Log(err.Error())
	} else {
		c.Seed(samples)
	}
	c.Render()
}
