package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"

	"github.com/esimov/ascii-particles/app"
	"github.com/esimov/ascii-particles/audio"
	"github.com/esimov/ascii-particles/http"
	particle "github.com/esimov/ascii-particles/particle-system"
	"github.com/esimov/ascii-particles/terminal"
	"github.com/esimov/ascii-particles/websocket"
)

var (
	mode     = flag.String("mode", "termbox", "front end: termbox, tcell or web")
	count    = flag.Int("n", 50, "number of particles spawned at startup")
	capacity = flag.Int("cap", app.DefaultCapacity, "maximum number of particles")
	fps      = flag.Int("fps", app.DefaultFPS, "frames per second")
	jitter   = flag.Float64("jitter", 50, "spread of the startup particles around the centre")
	scale    = flag.Float64("scale", 8, "world units per terminal dot")
	radius   = flag.Float64("radius", particle.DefaultInteractionRadius, "pointer interaction radius")
	sound    = flag.Bool("sound", false, "click on wall bounces")
	logFile  = flag.String("log", "debug.log", "log file used by the terminal front ends")

	defaults = http.Defaults()
	addr     = flag.String("a", defaults.Address, "address to serve(host:port)")
	prefix   = flag.String("p", defaults.Prefix, "prefix path under")
	root     = flag.String("r", defaults.Root, "root path to serve, empty for the built in client")
)

func main() {
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := app.Config{Capacity: *capacity, FPS: *fps}
	opts := []particle.Option{particle.WithInteractionRadius(*radius)}

	var onBounce func(n int)
	if *sound {
		cue := audio.NewCue()
		if err := cue.Initialize(); err != nil {
			// Non-fatal, the toy runs without sound.
			log.Printf("audio initialization failed: %v", err)
		} else {
			defer cue.Close()
			onBounce = func(n int) { cue.Bounce(n) }
		}
	}

	switch *mode {
	case "termbox", "tcell":
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return errors.Wrap(err, "opening log file")
		}
		defer f.Close()
		log.SetOutput(f)

		var backend terminal.Backend = terminal.NewTermbox()
		if *mode == "tcell" {
			if backend, err = terminal.NewTcell(); err != nil {
				return err
			}
		}
		return terminal.Run(ctx, backend, terminal.Options{
			App:       cfg,
			SeedCount: *count,
			Jitter:    *jitter,
			Scale:     *scale,
			OnBounce:  onBounce,
			Particle:  opts,
		})
	case "web":
		const width, height = 1280, 720
		cfg.Seed = particle.DefaultSeed(width, height)
		cfg.Seed.Count, cfg.Seed.Jitter = *count, *jitter

		rec := websocket.NewRecorder(width, height)
		a := app.New(rec, cfg, opts...)
		a.OnBounce = onBounce
		srv := websocket.NewServer(websocket.HttpParams{
			Address: *addr,
			Prefix:  *prefix,
			Root:    *root,
		}, a, rec)
		return srv.ListenAndServe(ctx)
	}
	return errors.Errorf("unknown mode %q", *mode)
}
