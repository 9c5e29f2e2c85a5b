//go:build js && wasm

package canvas

import (
	"fmt"
	"math"
	"syscall/js"

	isoline "github.com/esimov/isoline/core"
)

// Field returns the elevation of a freshly clicked sample.
type Field func(x, y float64) float64

// Canvas struct holds the Javascript objects needed for the Canvas creation
type Canvas struct {
	done chan struct{}

	// DOM elements
	window     js.Value
	doc        js.Value
	body       js.Value
	windowSize struct{ width, height int }

	// Canvas properties
	canvas  js.Value
	ctx     js.Value
	onClick js.Func
	onKey   js.Func

	field   Field
	bands   int
	samples *isoline.Samples
}

// NewCanvas creates and initializes the new Canvas element
func NewCanvas(field Field, bands int) *Canvas {
	var c Canvas
	c.window = js.Global()
	c.doc = c.window.Get("document")
	c.body = c.doc.Get("body")

	c.windowSize.width = c.window.Get("innerWidth").Int()
	c.windowSize.height = c.window.Get("innerHeight").Int()

	c.canvas = c.doc.Call("createElement", "canvas")
	c.canvas.Set("width", c.windowSize.width)
	c.canvas.Set("height", c.windowSize.height)
	c.body.Call("appendChild", c.canvas)

	c.ctx = c.canvas.Call("getContext", "2d")

	c.field = field
	c.bands = bands
	c.samples = isoline.NewSamples()
	return &c
}

// Size returns the canvas size in pixels.
func (c *Canvas) Size() (int, int) {
	return c.windowSize.width, c.windowSize.height
}

// Seed replaces the current sample set and redraws the canvas.
func (c *Canvas) Seed(samples *isoline.Samples) {
	c.samples = samples
	c.redraw()
}

// Render registers the mouse and keyboard handlers and blocks until Stop is
// called. A click adds a sample, "c" clears the canvas, "+"/"-" change the
// number of bands and Escape stops the demo.
func (c *Canvas) Render() {
	c.done = make(chan struct{})

	c.onClick = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		x := args[0].Get("offsetX").Float()
		y := args[0].Get("offsetY").Float()
		p := isoline.Pt(x, y)
		if err := c.samples.Add(p, c.field(x, y)); err != nil {
			c.Log(err.Error())
			return nil
		}
		c.redraw()
		return nil
	})
	c.onKey = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		switch args[0].Get("key").String() {
		case "c":
			c.samples = isoline.NewSamples()
		case "+":
			c.bands++
		case "-":
			if c.bands > 1 {
				c.bands--
			}
		case "Escape":
			go c.Stop()
			return nil
		default:
			return nil
		}
		c.redraw()
		return nil
	})
	c.canvas.Call("addEventListener", "click", c.onClick)
	c.doc.Call("addEventListener", "keydown", c.onKey)

	<-c.done
}

// Stop removes the event handlers and releases Render.
func (c *Canvas) Stop() {
	c.canvas.Call("removeEventListener", "click", c.onClick)
	c.doc.Call("removeEventListener", "keydown", c.onKey)
	c.onClick.Release()
	c.onKey.Release()
	close(c.done)
}

func (c *Canvas) redraw() {
	width, height := c.windowSize.width, c.windowSize.height
	c.ctx.Call("clearRect", 0, 0, width, height)

	tri, err := isoline.Triangulate(c.samples)
	if err != nil {
		c.Log(err.Error())
		return
	}
	contours, err := isoline.NewContourExtractor(tri).Extract(c.bands)
	if err != nil {
		c.Log(err.Error())
		return
	}

	c.ctx.Set("lineWidth", 1)
	c.ctx.Set("strokeStyle", "#ccc")
	c.ctx.Call("beginPath")
	for _, e := range tri.Edges() {
		c.ctx.Call("moveTo", e.P1().X, e.P1().Y)
		c.ctx.Call("lineTo", e.P2().X, e.P2().Y)
	}
	c.ctx.Call("stroke")

	levels := contours.Levels()
	c.ctx.Set("lineWidth", 2)
	for i, iso := range contours.Isolines() {
		hue := 240.0
		if len(levels) > 1 {
			hue = 240 * (1 - float64(i)/float64(len(levels)-1))
		}
		c.ctx.Set("strokeStyle", fmt.Sprintf("hsl(%.0f, 80%%, 45%%)", hue))
		c.ctx.Call("beginPath")
		for _, line := range iso.Lines {
			for j, p := range line {
				if j == 0 {
					c.ctx.Call("moveTo", p.X, p.Y)
				} else {
					c.ctx.Call("lineTo", p.X, p.Y)
				}
			}
		}
		c.ctx.Call("stroke")
	}

	c.ctx.Set("fillStyle", "#333")
	for _, p := range c.samples.Points() {
		c.ctx.Call("beginPath")
		c.ctx.Call("arc", p.X, p.Y, 3, 0, 2*math.Pi, false)
		c.ctx.Call("fill")
	}
}

// Log calls the `console.log` Javascript function
func (c *Canvas) Log(args ...interface{}) {
	c.window.Get("console").Call("log", args...)
}
