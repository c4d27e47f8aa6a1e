package particle

// PointerState is the drag state of the single tracked pointer.
type PointerState int

const (
	PointerIdle PointerState = iota
	PointerDragging
)

func (s PointerState) String() string {
	if s == PointerDragging {
		return "dragging"
	}
	return "idle"
}

type pointer struct {
	state PointerState
	x, y  float64
}

// State returns the current pointer state.
func (s *System) State() PointerState {
	return s.pointer.state
}

// PointerDown starts a drag at {x, y}.
func (s *System) PointerDown(x, y float64) {
	s.pointer.state = PointerDragging
	s.pointer.x, s.pointer.y = x, y
}

// PointerMove pushes the particles around {x, y} along the pointer's travel
// since the last event and occasionally spawns a new particle under it.
// The pointer position is recorded whether or not a drag is in progress.
func (s *System) PointerMove(x, y float64) {
	if s.pointer.state == PointerDragging {
		s.ApplyInteraction(x, y, x-s.pointer.x, y-s.pointer.y)

		if s.rnd.Float64() < s.spawnChance && s.Len() < s.Cap() {
			s.Add(x, y)
		}
	}
	s.pointer.x, s.pointer.y = x, y
}

// PointerUp ends the drag.
func (s *System) PointerUp() {
	s.pointer.state = PointerIdle
}
