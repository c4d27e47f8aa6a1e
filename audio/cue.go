package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"
)

const (
	sampleRate = beep.SampleRate(44100)

	// MinInterval is the shortest gap between two bounce clicks.
	MinInterval = 60 * time.Millisecond

	clickLength = 25 * time.Millisecond
	baseFreq    = 660.0
)

// Cue plays a short click whenever particles hit a wall.
type Cue struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	last        time.Time
	now         func() time.Time
	initialized bool
}

// NewCue creates a silent cue; call Initialize to attach it to the speaker.
func NewCue() *Cue {
	return &Cue{
		mixer: &beep.Mixer{},
		now:   time.Now,
	}
}

// Initialize sets up the speaker. Without it Bounce only feeds the mixer.
func (c *Cue) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return errors.Wrap(err, "speaker init")
	}
	speaker.Play(c.mixer)
	c.initialized = true

	return nil
}

// Close silences the cue.
func (c *Cue) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()
	c.initialized = false
}

// Bounce queues a click for n wall contacts and reports whether one was played.
// Louder clicks mark frames with more bounces; calls closer than MinInterval are skipped.
func (c *Cue) Bounce(n int) bool {
	if n <= 0 {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if !c.last.IsZero() && now.Sub(c.last) < MinInterval {
		return false
	}
	c.last = now

	click, err := Click(n)
	if err != nil {
		return false
	}
	if c.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	c.mixer.Add(click)

	return true
}

// Click builds the click streamer for n bounces.
func Click(n int) (beep.Streamer, error) {
	tone, err := generators.SineTone(sampleRate, baseFreq)
	if err != nil {
		return nil, errors.Wrap(err, "sine tone")
	}
	volume := -3.0
	if n > 1 {
		volume = -2.0
	}
	if n > 10 {
		volume = -1.0
	}
	return &effects.Volume{
		Streamer: beep.Take(sampleRate.N(clickLength), tone),
		Base:     2,
		Volume:   volume,
	}, nil
}

// Pending returns the number of clicks still being mixed.
func (c *Cue) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.mixer.Len()
}
