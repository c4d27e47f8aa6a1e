package app

import (
	"context"
	"time"

	particle "github.com/esimov/ascii-particles/particle-system"
)

const (
	// DefaultFPS is the frame rate used when Config.FPS is not set.
	DefaultFPS = 60
	// DefaultCapacity matches the capacity the browser toy starts with.
	DefaultCapacity = 500

	queueSize = 256
)

// Config holds the startup parameters of an App.
type Config struct {
	Capacity int
	FPS      int
	// Seed is the initial burst. A zero Count leaves the system empty.
	Seed particle.SeedConfig
}

// App is the application context: it owns the particle system, the surface
// it draws on and the queue of pending input events.
type App struct {
	System  *particle.System
	surface particle.Surface
	events  chan particle.Event
	fps     int

	// OnBounce receives the number of wall bounces of every frame that had any.
	OnBounce func(n int)
	// OnFrame runs after each rendered frame, typically to present the surface.
	OnFrame func()
	// OnEvent sees every queued event on the frame goroutine, just before it is dispatched.
	OnEvent func(ev particle.Event)
}

// New creates an App drawing on surface, sized after it, and seeds it per cfg.
func New(surface particle.Surface, cfg Config, opts ...particle.Option) *App {
	if cfg.Capacity <= 0 {
		cfg.Capacity = DefaultCapacity
	}
	if cfg.FPS <= 0 {
		cfg.FPS = DefaultFPS
	}
	w, h := surface.Size()
	a := &App{
		System:  particle.NewSystem(w, h, cfg.Capacity, opts...),
		surface: surface,
		events:  make(chan particle.Event, queueSize),
		fps:     cfg.FPS,
	}
	a.System.Seed(cfg.Seed)

	return a
}

// Post queues an input event for the next frame and reports whether it was accepted.
// It never blocks; events arriving while the queue is full are dropped.
func (a *App) Post(ev particle.Event) bool {
	select {
	case a.events <- ev:
		return true
	default:
		return false
	}
}

// Frame applies all pending events in arrival order, then advances and renders the system.
func (a *App) Frame() {
	a.drain()

	if n := a.System.Update(); n > 0 && a.OnBounce != nil {
		a.OnBounce(n)
	}
	a.System.Render(a.surface)

	if a.OnFrame != nil {
		a.OnFrame()
	}
}

func (a *App) drain() {
	for {
		select {
		case ev := <-a.events:
			if a.OnEvent != nil {
				a.OnEvent(ev)
			}
			a.System.Dispatch(ev)
		default:
			return
		}
	}
}

// Run drives Frame at the configured rate until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(a.fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			a.Frame()
		}
	}
}
