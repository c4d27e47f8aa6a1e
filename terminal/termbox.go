package terminal

import (
	"github.com/nsf/termbox-go"
	"github.com/pkg/errors"
)

// Termbox renders through termbox-go using the xterm 256-colour palette.
type Termbox struct{}

// NewTermbox returns a termbox backend.
func NewTermbox() *Termbox {
	return &Termbox{}
}

func (t *Termbox) Init() error {
	if err := termbox.Init(); err != nil {
		return errors.Wrap(err, "termbox init")
	}
	termbox.SetInputMode(termbox.InputEsc | termbox.InputMouse)
	termbox.SetOutputMode(termbox.Output256)

	return nil
}

func (t *Termbox) Close() {
	termbox.Close()
}

func (t *Termbox) Size() (cols, rows int) {
	return termbox.Size()
}

func (t *Termbox) Poll() Input {
	for {
		if in := termboxInput(termbox.PollEvent()); in.Kind != InputNone {
			return in
		}
	}
}

func termboxInput(ev termbox.Event) Input {
	switch ev.Type {
	case termbox.EventKey:
		if ev.Key == termbox.KeyEsc || ev.Key == termbox.KeyCtrlC || ev.Ch == 'q' {
			return Input{Kind: InputQuit}
		}
	case termbox.EventMouse:
		switch ev.Key {
		case termbox.MouseLeft:
			return Input{Kind: InputMouse, Col: ev.MouseX, Row: ev.MouseY, Pressed: true}
		case termbox.MouseRelease:
			return Input{Kind: InputMouse, Col: ev.MouseX, Row: ev.MouseY}
		}
	case termbox.EventResize:
		return Input{Kind: InputResize, Cols: ev.Width, Rows: ev.Height}
	case termbox.EventInterrupt, termbox.EventError:
		return Input{Kind: InputQuit}
	}
	return Input{}
}

// Present copies the canvas into termbox's back buffer and flushes it.
func (t *Termbox) Present(c *Canvas) {
	cols, rows := c.Dims()
	w, h := termbox.Size()
	buf := termbox.CellBuffer()
	for row := 0; row < rows && row < h; row++ {
		for col := 0; col < cols && col < w; col++ {
			top, bottom := c.Cell(col, row)
			buf[row*w+col] = termbox.Cell{
				Ch: halfBlock,
				Fg: termbox.Attribute(To256(top)) + 1,
				Bg: termbox.Attribute(To256(bottom)) + 1,
			}
		}
	}
	termbox.Flush()
}
