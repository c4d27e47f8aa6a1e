package particle

import "math/rand"

const (
	// Restitution attenuates the reflected velocity component on a wall bounce.
	Restitution = 0.9
	// Damping is applied to both velocity components on every step.
	Damping = 0.998
	// MassFactor relates a particle's radius to its mass.
	MassFactor = 0.1
)

// Particle defines the kinematic state of a single disc.
type Particle struct {
	X, Y   float64
	Vx, Vy float64
	Radius float64
	Mass   float64
	Color  Color
}

// NewParticle spawns a new particle at coordinates defined by {x, y}
// with a random velocity, radius and hue drawn from rnd.
func NewParticle(x, y float64, rnd *rand.Rand) *Particle {
	p := &Particle{
		X:  x,
		Y:  y,
		Vx: (rnd.Float64() - 0.5) * 1.5,
		Vy: (rnd.Float64() - 0.5) * 1.5,
	}
	p.Radius = rnd.Float64()*3 + 1
	p.Mass = p.Radius * MassFactor
	p.Color = HSL(rnd.Float64()*360, 0.7, 0.5)

	return p
}

// Step advances the particle by one tick inside a {width, height} box.
// It reports whether the particle bounced off a wall on either axis.
func (p *Particle) Step(width, height float64) bool {
	p.X += p.Vx
	p.Y += p.Vy

	bounced := false
	if p.X+p.Radius >= width || p.X-p.Radius <= 0 {
		p.Vx = -p.Vx * Restitution
		// An edge touching the wall counts as contact, but only a
		// centre beyond the wall is pulled back in.
		if p.X > width {
			p.X = width - p.Radius
		}
		if p.X < 0 {
			p.X = p.Radius
		}
		bounced = true
	}
	if p.Y+p.Radius >= height || p.Y-p.Radius <= 0 {
		p.Vy = -p.Vy * Restitution
		if p.Y > height {
			p.Y = height - p.Radius
		}
		if p.Y < 0 {
			p.Y = p.Radius
		}
		bounced = true
	}

	p.Vx *= Damping
	p.Vy *= Damping

	return bounced
}
