package terminal

import (
	"math"

	particle "github.com/esimov/ascii-particles/particle-system"
)

// Canvas is a raster of square dots drawn two per terminal cell, one above the other.
// It implements particle.Surface in world units, Scale units per dot.
type Canvas struct {
	Scale      float64
	cols, rows int
	dots       []particle.Color
}

// NewCanvas allocates a canvas covering a cols×rows terminal.
func NewCanvas(cols, rows int, scale float64) *Canvas {
	if scale <= 0 {
		scale = 1
	}
	c := &Canvas{Scale: scale}
	c.Resize(cols, rows)

	return c
}

// Resize reallocates the dot buffer for a cols×rows terminal, cleared to the trail colour.
func (c *Canvas) Resize(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	c.cols, c.rows = cols, rows
	c.dots = make([]particle.Color, cols*rows*2)

	bg := particle.TrailColor
	bg.A = 1
	for i := range c.dots {
		c.dots[i] = bg
	}
}

// Dims returns the terminal size the canvas covers.
func (c *Canvas) Dims() (cols, rows int) {
	return c.cols, c.rows
}

// Size returns the canvas extent in world units.
func (c *Canvas) Size() (width, height float64) {
	return float64(c.cols) * c.Scale, float64(c.rows*2) * c.Scale
}

// ToWorld converts a terminal cell to the world coordinates of its centre.
func (c *Canvas) ToWorld(col, row int) (x, y float64) {
	return toWorld(col, row, c.Scale)
}

func toWorld(col, row int, scale float64) (x, y float64) {
	return (float64(col) + 0.5) * scale, float64(row*2+1) * scale
}

// Cell returns the colours of the upper and lower dot of a terminal cell.
func (c *Canvas) Cell(col, row int) (top, bottom particle.Color) {
	return c.dot(col, row*2), c.dot(col, row*2+1)
}

func (c *Canvas) dot(x, y int) particle.Color {
	if x < 0 || y < 0 || x >= c.cols || y >= c.rows*2 {
		return particle.Color{}
	}
	return c.dots[y*c.cols+x]
}

func (c *Canvas) blend(x, y int, col particle.Color) {
	if x < 0 || y < 0 || x >= c.cols || y >= c.rows*2 {
		return
	}
	i := y*c.cols + x
	c.dots[i] = col.Blend(c.dots[i])
}

// FillRect blends col over every dot the rectangle touches.
func (c *Canvas) FillRect(x, y, w, h float64, col particle.Color) {
	x0, y0 := int(math.Floor(x/c.Scale)), int(math.Floor(y/c.Scale))
	x1, y1 := int(math.Ceil((x+w)/c.Scale)), int(math.Ceil((y+h)/c.Scale))
	for dy := y0; dy < y1; dy++ {
		for dx := x0; dx < x1; dx++ {
			c.blend(dx, dy, col)
		}
	}
}

// FillCircle blends col over every dot whose centre lies inside the disc.
// The dot under the disc centre is always painted, however small the disc.
func (c *Canvas) FillCircle(x, y, r float64, col particle.Color) {
	cx, cy := x/c.Scale, y/c.Scale
	rd := r / c.Scale

	x0, x1 := int(math.Floor(cx-rd)), int(math.Ceil(cx+rd))
	y0, y1 := int(math.Floor(cy-rd)), int(math.Ceil(cy+rd))
	centreX, centreY := int(math.Floor(cx)), int(math.Floor(cy))
	for dy := y0; dy <= y1; dy++ {
		for dx := x0; dx <= x1; dx++ {
			ddx, ddy := float64(dx)+0.5-cx, float64(dy)+0.5-cy
			if (dx == centreX && dy == centreY) || ddx*ddx+ddy*ddy <= rd*rd {
				c.blend(dx, dy, col)
			}
		}
	}
}
