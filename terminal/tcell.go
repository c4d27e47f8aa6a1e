package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	particle "github.com/esimov/ascii-particles/particle-system"
)

// Tcell renders through tcell in true colour.
type Tcell struct {
	screen tcell.Screen
}

// NewTcell creates a tcell backend on the controlling terminal.
func NewTcell() (*Tcell, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "tcell screen")
	}
	return &Tcell{screen: screen}, nil
}

// NewTcellScreen wraps an existing screen, such as a simulation screen.
func NewTcellScreen(screen tcell.Screen) *Tcell {
	return &Tcell{screen: screen}
}

func (t *Tcell) Init() error {
	if err := t.screen.Init(); err != nil {
		return errors.Wrap(err, "tcell init")
	}
	t.screen.EnableMouse()
	t.screen.HideCursor()

	return nil
}

func (t *Tcell) Close() {
	t.screen.Fini()
}

func (t *Tcell) Size() (cols, rows int) {
	return t.screen.Size()
}

func (t *Tcell) Poll() Input {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return Input{Kind: InputQuit}
		}
		if in := tcellInput(ev); in.Kind != InputNone {
			return in
		}
	}
}

func tcellInput(ev tcell.Event) Input {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
			return Input{Kind: InputQuit}
		}
	case *tcell.EventMouse:
		col, row := ev.Position()
		return Input{Kind: InputMouse, Col: col, Row: row, Pressed: ev.Buttons()&tcell.Button1 != 0}
	case *tcell.EventResize:
		cols, rows := ev.Size()
		return Input{Kind: InputResize, Cols: cols, Rows: rows}
	}
	return Input{}
}

func rgb(c particle.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Present draws the canvas with half blocks and shows the screen.
func (t *Tcell) Present(c *Canvas) {
	cols, rows := c.Dims()
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top, bottom := c.Cell(col, row)
			style := tcell.StyleDefault.Foreground(rgb(top)).Background(rgb(bottom))
			t.screen.SetContent(col, row, halfBlock, nil, style)
		}
	}
	t.screen.Show()
}
