package particle

import (
	"math"
	"math/rand"
	"time"
)

const (
	// DefaultCapacity is used when a system is created with a non-positive capacity.
	DefaultCapacity = 300
	// DefaultInteractionRadius bounds the pointer push.
	DefaultInteractionRadius = 100.0
	// DefaultSpawnChance is the probability of spawning a particle on a drag move.
	DefaultSpawnChance = 0.3

	pushStrength = 0.1
)

// System owns a bounded, age-ordered collection of particles together with
// the pointer state driving them. It is not safe for concurrent use.
type System struct {
	width, height float64
	particles     *ring
	pointer       pointer

	rnd         *rand.Rand
	radius      float64
	spawnChance float64
}

// Option customises a System.
type Option func(*System)

// WithRand sets the random source used for spawning.
func WithRand(rnd *rand.Rand) Option {
	return func(s *System) {
		s.rnd = rnd
	}
}

// WithInteractionRadius sets the distance within which pointer drags push particles.
func WithInteractionRadius(r float64) Option {
	return func(s *System) {
		s.radius = r
	}
}

// WithSpawnChance sets the probability of spawning a particle on each drag move.
func WithSpawnChance(p float64) Option {
	return func(s *System) {
		s.spawnChance = p
	}
}

// NewSystem creates an empty system bounded by {width, height} holding at most capacity particles.
func NewSystem(width, height float64, capacity int, opts ...Option) *System {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	s := &System{
		width:       width,
		height:      height,
		particles:   newRing(capacity),
		radius:      DefaultInteractionRadius,
		spawnChance: DefaultSpawnChance,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rnd == nil {
		s.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return s
}

// Add spawns a new particle at {x, y}, evicting the oldest one when the system is full.
func (s *System) Add(x, y float64) {
	s.Insert(NewParticle(x, y, s.rnd))
}

// Insert appends p, evicting the oldest particle when the system is full.
func (s *System) Insert(p *Particle) {
	s.particles.push(p)
}

// ApplyInteraction pushes every particle closer than the interaction radius
// to {mx, my} by {dx, dy}, scaled by a linear falloff that vanishes at the radius.
func (s *System) ApplyInteraction(mx, my, dx, dy float64) {
	r2 := s.radius * s.radius
	for i := 0; i < s.particles.len(); i++ {
		p := s.particles.at(i)
		distSq := (p.X-mx)*(p.X-mx) + (p.Y-my)*(p.Y-my)
		if distSq >= r2 {
			continue
		}
		strength := (1 - math.Sqrt(distSq)/s.radius) * pushStrength
		p.Vx += dx * strength
		p.Vy += dy * strength
	}
}

// Update steps every particle once and returns how many of them bounced.
func (s *System) Update() int {
	bounces := 0
	for i := 0; i < s.particles.len(); i++ {
		if s.particles.at(i).Step(s.width, s.height) {
			bounces++
		}
	}
	return bounces
}

// Render paints the trail fill followed by every particle, oldest first.
func (s *System) Render(surface Surface) {
	surface.FillRect(0, 0, s.width, s.height, TrailColor)
	for i := 0; i < s.particles.len(); i++ {
		p := s.particles.at(i)
		surface.FillCircle(p.X, p.Y, p.Radius, p.Color)
	}
}

// Resize changes the bounds used by subsequent updates.
// Particles left outside are brought back by the ordinary wall bounce.
func (s *System) Resize(width, height float64) {
	s.width, s.height = width, height
}

// Bounds returns the current width and height.
func (s *System) Bounds() (width, height float64) {
	return s.width, s.height
}

// Len returns the number of live particles.
func (s *System) Len() int { return s.particles.len() }

// Cap returns the maximum number of particles.
func (s *System) Cap() int { return s.particles.cap() }

// Each calls fn for every particle, oldest first.
func (s *System) Each(fn func(i int, p *Particle)) {
	for i := 0; i < s.particles.len(); i++ {
		fn(i, s.particles.at(i))
	}
}

// Particles returns a copy of the particle states, oldest first.
func (s *System) Particles() []Particle {
	out := make([]Particle, 0, s.particles.len())
	s.Each(func(_ int, p *Particle) {
		out = append(out, *p)
	})
	return out
}
