//go:build js && wasm

package main

import (
	"github.com/esimov/ascii-particles/app"
	particle "github.com/esimov/ascii-particles/particle-system"
	"github.com/esimov/ascii-particles/wasm/canvas"
)

func main() {
	c := canvas.NewCanvas("appCanvas")
	if err := c.Err(); err != nil {
		c.Alert("Canvas drawing is not supported by this browser!")
		return
	}
	w, h := c.Size()

	a := app.New(c, app.Config{
		Capacity: app.DefaultCapacity,
		Seed:     particle.DefaultSeed(w, h),
	})
	c.Listen(a.Post)
	c.Loop(a.Frame)
	c.Log("Click and drag on the screen to generate and move particles!")

	select {}
}
