//go:build js && wasm

package canvas

import (
	"syscall/js"

	particle "github.com/esimov/ascii-particles/particle-system"
)

// Listen wires the window and canvas DOM events to post for the lifetime of the page.
// Only single touch gestures are forwarded.
func (c *Canvas) Listen(post func(particle.Event) bool) {
	on := func(target js.Value, name string, fn func(e js.Value), passive bool) {
		f := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			fn(args[0])
			return nil
		})
		if passive {
			target.Call("addEventListener", name, f, map[string]interface{}{"passive": true})
			return
		}
		target.Call("addEventListener", name, f)
	}
	pointer := func(kind particle.EventKind) func(e js.Value) {
		return func(e js.Value) {
			post(particle.Event{Kind: kind, X: e.Get("clientX").Float(), Y: e.Get("clientY").Float()})
		}
	}
	touch := func(kind particle.EventKind) func(e js.Value) {
		return func(e js.Value) {
			touches := e.Get("touches")
			if touches.Length() != 1 {
				return
			}
			t := touches.Index(0)
			post(particle.Event{Kind: kind, X: t.Get("clientX").Float(), Y: t.Get("clientY").Float()})
		}
	}
	up := func(e js.Value) { post(particle.Event{Kind: particle.EventPointerUp}) }

	on(c.window, "resize", func(e js.Value) {
		w, h := c.FitWindow()
		post(particle.Event{Kind: particle.EventResize, Width: w, Height: h})
	}, false)
	on(c.canvas, "mousedown", pointer(particle.EventPointerDown), false)
	on(c.canvas, "mousemove", pointer(particle.EventPointerMove), false)
	on(c.canvas, "mouseup", up, false)
	on(c.canvas, "touchstart", touch(particle.EventPointerDown), true)
	on(c.canvas, "touchmove", touch(particle.EventPointerMove), true)
	on(c.canvas, "touchend", up, false)
}

// Loop calls frame on every animation frame.
func (c *Canvas) Loop(frame func()) {
	var cb js.Func
	cb = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		frame()
		c.window.Call("requestAnimationFrame", cb)
		return nil
	})
	c.window.Call("requestAnimationFrame", cb)
}
