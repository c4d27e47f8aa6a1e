package terminal

import particle "github.com/esimov/ascii-particles/particle-system"

// Levels of the xterm 6x6x6 colour cube (indices 16-231).
var cubeLevels = [6]int{0, 95, 135, 175, 215, 255}

// grayStart is the first index of the 24 step grayscale ramp (232-255).
const grayStart = 232

func nearestLevel(v int) int {
	best, bestDist := 0, 256
	for i, l := range cubeLevels {
		if d := abs(v - l); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// To256 maps an RGB colour onto the closest xterm 256-palette index,
// picking between the colour cube and the grayscale ramp.
func To256(c particle.Color) uint8 {
	r, g, b := int(c.R), int(c.G), int(c.B)
	ri, gi, bi := nearestLevel(r), nearestLevel(g), nearestLevel(b)
	cube := 16 + 36*ri + 6*gi + bi
	cubeDist := sq(r-cubeLevels[ri]) + sq(g-cubeLevels[gi]) + sq(b-cubeLevels[bi])

	avg := (r + g + b) / 3
	step := (avg - 8 + 5) / 10
	if step < 0 {
		step = 0
	}
	if step > 23 {
		step = 23
	}
	level := 8 + 10*step
	grayDist := sq(r-level) + sq(g-level) + sq(b-level)

	if grayDist < cubeDist {
		return uint8(grayStart + step)
	}
	return uint8(cube)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sq(v int) int { return v * v }
