package websocket

import (
	"github.com/pkg/errors"

	particle "github.com/esimov/ascii-particles/particle-system"
)

// Op is a single draw call recorded from the particle system.
type Op struct {
	Op    string  `json:"op"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	W     float64 `json:"w,omitempty"`
	H     float64 `json:"h,omitempty"`
	R     float64 `json:"r,omitempty"`
	Color string  `json:"color"`
}

// Frame is the server to client message carrying one rendered frame.
type Frame struct {
	Type   string  `json:"type"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Ops    []Op    `json:"ops"`
}

// Recorder is a particle.Surface which records draw calls for the browser to replay.
type Recorder struct {
	width, height float64
	ops           []Op
}

// NewRecorder creates a recorder for a {width, height} world.
func NewRecorder(width, height float64) *Recorder {
	return &Recorder{width: width, height: height}
}

func (r *Recorder) Size() (float64, float64) {
	return r.width, r.height
}

func (r *Recorder) FillRect(x, y, w, h float64, c particle.Color) {
	r.ops = append(r.ops, Op{Op: "rect", X: x, Y: y, W: w, H: h, Color: c.String()})
}

func (r *Recorder) FillCircle(x, y, rad float64, c particle.Color) {
	r.ops = append(r.ops, Op{Op: "circle", X: x, Y: y, R: rad, Color: c.String()})
}

// Flush returns the recorded ops as a frame of the given size and resets the recorder.
func (r *Recorder) Flush(width, height float64) Frame {
	r.width, r.height = width, height
	f := Frame{Type: "frame", Width: width, Height: height, Ops: r.ops}
	r.ops = make([]Op, 0, len(f.Ops))

	return f
}

// Message is the client to server pointer or viewport notification.
type Message struct {
	Type   string  `json:"type"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Event converts m into a particle event.
func (m Message) Event() (particle.Event, error) {
	ev := particle.Event{X: m.X, Y: m.Y, Width: m.Width, Height: m.Height}
	switch m.Type {
	case "down":
		ev.Kind = particle.EventPointerDown
	case "move":
		ev.Kind = particle.EventPointerMove
	case "up":
		ev.Kind = particle.EventPointerUp
	case "resize":
		if m.Width <= 0 || m.Height <= 0 {
			return ev, errors.Errorf("invalid viewport %gx%g", m.Width, m.Height)
		}
		ev.Kind = particle.EventResize
	default:
		return ev, errors.Errorf("unknown message type %q", m.Type)
	}
	return ev, nil
}
