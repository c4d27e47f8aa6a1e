package particle

// SeedConfig describes the initial burst of particles.
type SeedConfig struct {
	Count            int
	CenterX, CenterY float64
	Jitter           float64
}

// DefaultSeed returns the initial burst used for a {width, height} viewport:
// fifty particles within fifty units of its centre.
func DefaultSeed(width, height float64) SeedConfig {
	return SeedConfig{
		Count:   50,
		CenterX: width / 2,
		CenterY: height / 2,
		Jitter:  50,
	}
}

// Seed spawns cfg.Count particles scattered uniformly around the configured centre.
func (s *System) Seed(cfg SeedConfig) {
	for i := 0; i < cfg.Count; i++ {
		x := cfg.CenterX + (s.rnd.Float64()*2-1)*cfg.Jitter
		y := cfg.CenterY + (s.rnd.Float64()*2-1)*cfg.Jitter
		s.Add(x, y)
	}
}
