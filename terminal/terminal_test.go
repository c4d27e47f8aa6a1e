package terminal

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/nsf/termbox-go"

	"github.com/esimov/ascii-particles/app"
	particle "github.com/esimov/ascii-particles/particle-system"
)

func TestTermboxInput(t *testing.T) {
	tests := []struct {
		name string
		ev   termbox.Event
		want Input
	}{
		{"Escape quits", termbox.Event{Type: termbox.EventKey, Key: termbox.KeyEsc}, Input{Kind: InputQuit}},
		{"q quits", termbox.Event{Type: termbox.EventKey, Ch: 'q'}, Input{Kind: InputQuit}},
		{"Other keys ignored", termbox.Event{Type: termbox.EventKey, Ch: 'x'}, Input{}},
		{"Left press", termbox.Event{Type: termbox.EventMouse, Key: termbox.MouseLeft, MouseX: 3, MouseY: 4},
			Input{Kind: InputMouse, Col: 3, Row: 4, Pressed: true}},
		{"Release", termbox.Event{Type: termbox.EventMouse, Key: termbox.MouseRelease, MouseX: 5, MouseY: 6},
			Input{Kind: InputMouse, Col: 5, Row: 6}},
		{"Right button ignored", termbox.Event{Type: termbox.EventMouse, Key: termbox.MouseRight}, Input{}},
		{"Resize", termbox.Event{Type: termbox.EventResize, Width: 100, Height: 40},
			Input{Kind: InputResize, Cols: 100, Rows: 40}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := termboxInput(tt.ev); got != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestTcellInput(t *testing.T) {
	tests := []struct {
		name string
		ev   tcell.Event
		want Input
	}{
		{"Button held", tcell.NewEventMouse(7, 2, tcell.Button1, tcell.ModNone),
			Input{Kind: InputMouse, Col: 7, Row: 2, Pressed: true}},
		{"No button", tcell.NewEventMouse(8, 2, tcell.ButtonNone, tcell.ModNone),
			Input{Kind: InputMouse, Col: 8, Row: 2}},
		{"Resize", tcell.NewEventResize(120, 30), Input{Kind: InputResize, Cols: 120, Rows: 30}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tcellInput(tt.ev); got != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestTrackerTransitions(t *testing.T) {
	var tr tracker

	steps := []struct {
		pressed bool
		want    particle.EventKind
	}{
		{false, particle.EventPointerMove},
		{true, particle.EventPointerDown},
		{true, particle.EventPointerMove},
		{false, particle.EventPointerUp},
		{false, particle.EventPointerMove},
	}
	for i, step := range steps {
		ev := tr.translate(Input{Kind: InputMouse, Col: 1, Row: 1, Pressed: step.pressed}, 2)
		if ev.Kind != step.want {
			t.Errorf("Step %d: expected %v, got %v", i, step.want, ev.Kind)
		}
		if ev.X != 3 || ev.Y != 6 {
			t.Errorf("Step %d: expected world position (3, 6), got (%f, %f)", i, ev.X, ev.Y)
		}
	}
}

// mockScreen is a minimal stand-in for tcell.Screen.
type mockScreen struct {
	tcell.Screen
	cells map[[2]int]tcell.Style
	shown int
}

func (m *mockScreen) SetContent(x, y int, mainc rune, combc []rune, style tcell.Style) {
	if mainc != halfBlock {
		return
	}
	m.cells[[2]int{x, y}] = style
}

func (m *mockScreen) Show() { m.shown++ }

func TestTcellPresent(t *testing.T) {
	screen := &mockScreen{cells: make(map[[2]int]tcell.Style)}
	backend := NewTcellScreen(screen)

	c := NewCanvas(3, 2, 1)
	c.FillRect(0, 0, 1, 1, white)
	backend.Present(c)

	if screen.shown != 1 {
		t.Errorf("Expected one Show call, got %d", screen.shown)
	}
	if len(screen.cells) != 6 {
		t.Fatalf("Expected 6 cells drawn, got %d", len(screen.cells))
	}
	fg, bg, _ := screen.cells[[2]int{0, 0}].Decompose()
	if fg != tcell.NewRGBColor(255, 255, 255) {
		t.Errorf("Expected white upper dot, got %v", fg)
	}
	if bg != tcell.NewRGBColor(17, 17, 17) {
		t.Errorf("Expected trail coloured lower dot, got %v", bg)
	}
}

type fakeBackend struct {
	inputs   chan Input
	presents chan [2]int
	closed   chan struct{}
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		inputs:   make(chan Input, 8),
		presents: make(chan [2]int, 64),
		closed:   make(chan struct{}),
	}
}

func (f *fakeBackend) Init() error { return nil }
func (f *fakeBackend) Close() { close(f.closed) }
func (f *fakeBackend) Size() (cols, rows int) { return 40, 12 }

// Poll ignores Close, like a backend that cannot be woken.
func (f *fakeBackend) Poll() Input { return <-f.inputs }

func (f *fakeBackend) Present(c *Canvas) {
	cols, rows := c.Dims()
	select {
	case f.presents <- [2]int{cols, rows}:
	default:
	}
}

func waitForPresent(t *testing.T, f *fakeBackend, want [2]int) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case got := <-f.presents:
			if got == want {
				return
			}
		case <-deadline:
			t.Fatalf("Expected a frame presented at %v", want)
		}
	}
}

func testOptions() Options {
	return Options{
		App:       app.Config{Capacity: 100, FPS: 120},
		SeedCount: 10,
		Jitter:    5,
		Scale:     4,
	}
}

func TestRunUntilQuit(t *testing.T) {
	b := newFakeBackend()
	done := make(chan error, 1)
	go func() { done <- Run(context.Background(), b, testOptions()) }()

	b.inputs <- Input{Kind: InputMouse, Col: 5, Row: 5, Pressed: true}
	b.inputs <- Input{Kind: InputMouse, Col: 6, Row: 5, Pressed: true}
	waitForPresent(t, b, [2]int{40, 12})

	b.inputs <- Input{Kind: InputResize, Cols: 30, Rows: 10}
	waitForPresent(t, b, [2]int{30, 10})

	b.inputs <- Input{Kind: InputQuit}
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected clean exit, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after quit")
	}
	select {
	case <-b.closed:
	default:
		t.Errorf("Expected the backend to be closed")
	}
}

func TestRunReturnsWhilePollBlocks(t *testing.T) {
	b := newFakeBackend()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Run(ctx, b, testOptions()) }()

	waitForPresent(t, b, [2]int{40, 12})
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected clean exit on cancel, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run waited on a blocked Poll")
	}
	select {
	case <-b.closed:
	case <-time.After(time.Second):
		t.Errorf("Expected the backend to be closed")
	}
}
