package particle

// Surface is the drawing target of a frame.
type Surface interface {
	// Size returns the drawable area in world units.
	Size() (width, height float64)
	// FillRect paints a rectangle, blending with what is underneath when c is translucent.
	FillRect(x, y, w, h float64, c Color)
	// FillCircle paints a filled disc centred on {x, y}.
	FillCircle(x, y, r float64, c Color)
}

// EventKind identifies an input event.
type EventKind int

const (
	EventPointerDown EventKind = iota
	EventPointerMove
	EventPointerUp
	EventResize
)

func (k EventKind) String() string {
	switch k {
	case EventPointerDown:
		return "down"
	case EventPointerMove:
		return "move"
	case EventPointerUp:
		return "up"
	case EventResize:
		return "resize"
	}
	return "unknown"
}

// Event is a single pointer or viewport notification, expressed in world units.
type Event struct {
	Kind          EventKind
	X, Y          float64
	Width, Height float64
}

// Dispatch feeds ev to the matching system operation. Unknown kinds are dropped.
func (s *System) Dispatch(ev Event) {
	switch ev.Kind {
	case EventPointerDown:
		s.PointerDown(ev.X, ev.Y)
	case EventPointerMove:
		s.PointerMove(ev.X, ev.Y)
	case EventPointerUp:
		s.PointerUp()
	case EventResize:
		s.Resize(ev.Width, ev.Height)
	}
}
