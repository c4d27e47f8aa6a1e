//go:build js && wasm

package canvas

import (
	"math"
	"syscall/js"

	"github.com/pkg/errors"

	particle "github.com/esimov/ascii-particles/particle-system"
)

// Canvas draws onto an HTML canvas element through its 2D context.
type Canvas struct {
	window js.Value
	doc    js.Value
	canvas js.Value
	ctx    js.Value
}

// NewCanvas looks up the canvas element by id, creating one when the page has none.
func NewCanvas(id string) *Canvas {
	c := &Canvas{window: js.Global()}
	c.doc = c.window.Get("document")
	c.canvas = c.doc.Call("getElementById", id)
	if c.canvas.IsNull() {
		c.canvas = c.doc.Call("createElement", "canvas")
		c.canvas.Set("id", id)
		c.doc.Get("body").Call("appendChild", c.canvas)
	}
	c.ctx = c.canvas.Call("getContext", "2d")
	c.FitWindow()

	return c
}

// Err reports whether the browser handed out a 2D drawing context.
func (c *Canvas) Err() error {
	if c.ctx.IsNull() || c.ctx.IsUndefined() {
		return errors.New("canvas 2D context not available")
	}
	return nil
}

// FitWindow sizes the canvas to the browser window and returns the new size.
func (c *Canvas) FitWindow() (width, height float64) {
	width = c.window.Get("innerWidth").Float()
	height = c.window.Get("innerHeight").Float()
	c.canvas.Set("width", width)
	c.canvas.Set("height", height)

	return width, height
}

func (c *Canvas) Size() (float64, float64) {
	return c.canvas.Get("width").Float(), c.canvas.Get("height").Float()
}

func (c *Canvas) FillRect(x, y, w, h float64, col particle.Color) {
	c.ctx.Set("fillStyle", col.String())
	c.ctx.Call("fillRect", x, y, w, h)
}

func (c *Canvas) FillCircle(x, y, r float64, col particle.Color) {
	c.ctx.Call("beginPath")
	c.ctx.Call("arc", x, y, r, 0, math.Pi*2, false)
	c.ctx.Set("fillStyle", col.String())
	c.ctx.Call("fill")
	c.ctx.Call("closePath")
}

// Alert calls the `alert` Javascript function
func (c *Canvas) Alert(msg string) {
	c.window.Call("alert", msg)
}

// Log calls the `console.log` Javascript function
func (c *Canvas) Log(args ...interface{}) {
	c.window.Get("console").Call("log", args...)
}
