package terminal

import (
	"context"
	"log"
	"math"

	"github.com/esimov/ascii-particles/app"
	particle "github.com/esimov/ascii-particles/particle-system"
)

// halfBlock paints the upper dot as foreground and the lower dot as background.
const halfBlock = '▀'

// InputKind classifies what a backend read from the terminal.
type InputKind int

const (
	InputNone InputKind = iota
	InputQuit
	InputMouse
	InputResize
)

// Input is a backend-neutral terminal event.
type Input struct {
	Kind       InputKind
	Col, Row   int
	Pressed    bool
	Cols, Rows int
}

// Backend abstracts the terminal library driving the screen.
type Backend interface {
	Init() error
	Close()
	Size() (cols, rows int)
	// Poll blocks until the next input. A backend that can be woken returns InputQuit
	// after Close; others may stay blocked, and Run never waits on a pending Poll.
	Poll() Input
	Present(c *Canvas)
}

// Options configures a terminal session.
type Options struct {
	App       app.Config
	SeedCount int
	Jitter    float64
	Scale     float64
	OnBounce  func(n int)
	Particle  []particle.Option
}

// tracker turns button level changes into pointer down, move and up events.
type tracker struct {
	pressed bool
}

func (t *tracker) translate(in Input, scale float64) particle.Event {
	x, y := toWorld(in.Col, in.Row, scale)
	switch {
	case in.Pressed && !t.pressed:
		t.pressed = true
		return particle.Event{Kind: particle.EventPointerDown, X: x, Y: y}
	case in.Pressed:
		return particle.Event{Kind: particle.EventPointerMove, X: x, Y: y}
	case t.pressed:
		t.pressed = false
		return particle.Event{Kind: particle.EventPointerUp, X: x, Y: y}
	}
	return particle.Event{Kind: particle.EventPointerMove, X: x, Y: y}
}

// Run owns the terminal until the user quits or ctx is cancelled.
func Run(ctx context.Context, b Backend, opts Options) error {
	if err := b.Init(); err != nil {
		return err
	}
	defer b.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cols, rows := b.Size()
	canvas := NewCanvas(cols, rows, opts.Scale)
	w, h := canvas.Size()

	cfg := opts.App
	cfg.Seed = particle.SeedConfig{
		Count:   opts.SeedCount,
		CenterX: w / 2,
		CenterY: h / 2,
		Jitter:  opts.Jitter,
	}
	a := app.New(canvas, cfg, opts.Particle...)
	a.OnBounce = opts.OnBounce
	a.OnFrame = func() { b.Present(canvas) }
	a.OnEvent = func(ev particle.Event) {
		if ev.Kind == particle.EventResize {
			canvas.Resize(int(math.Round(ev.Width/canvas.Scale)), int(math.Round(ev.Height/(2*canvas.Scale))))
		}
	}
	log.Printf("terminal %dx%d, world %.0fx%.0f, %d particles", cols, rows, w, h, a.System.Len())

	// Only Scale is read off the canvas here; it never changes after NewCanvas.
	scale := canvas.Scale
	go func() {
		defer cancel()

		var t tracker
		for ctx.Err() == nil {
			in := b.Poll()
			switch in.Kind {
			case InputQuit:
				return
			case InputResize:
				w, h := float64(in.Cols)*scale, float64(in.Rows*2)*scale
				a.Post(particle.Event{Kind: particle.EventResize, Width: w, Height: h})
				log.Printf("resized to %dx%d", in.Cols, in.Rows)
			case InputMouse:
				a.Post(t.translate(in, scale))
			}
		}
	}()

	if err := a.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
