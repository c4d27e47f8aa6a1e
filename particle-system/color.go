package particle

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is an RGB colour with an opacity in [0, 1].
type Color struct {
	R, G, B uint8
	A       float64
}

// TrailColor is painted over the whole surface before each frame,
// leaving a fading trail behind every moving particle.
var TrailColor = Color{R: 17, G: 17, B: 17, A: 0.2}

// HSL converts a hue in degrees, saturation and lightness in [0, 1] into an opaque Color.
func HSL(h, s, l float64) Color {
	r, g, b := colorful.Hsl(h, s, l).Clamped().RGB255()
	return Color{R: r, G: g, B: b, A: 1}
}

// Blend composites c over dst using c's opacity and returns the opaque result.
func (c Color) Blend(dst Color) Color {
	if c.A >= 1 {
		return Color{R: c.R, G: c.G, B: c.B, A: 1}
	}
	if c.A <= 0 {
		return dst
	}
	mix := func(src, dst uint8) uint8 {
		v := float64(src)*c.A + float64(dst)*(1-c.A)
		return uint8(v + 0.5)
	}
	return Color{R: mix(c.R, dst.R), G: mix(c.G, dst.G), B: mix(c.B, dst.B), A: 1}
}

// String returns the colour in CSS rgba() notation.
func (c Color) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %g)", c.R, c.G, c.B, c.A)
}
