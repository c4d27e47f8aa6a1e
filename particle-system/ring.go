package particle

// ring is a fixed-capacity FIFO of particles. Index 0 is always the oldest entry.
type ring struct {
	buf  []*Particle
	head int
	size int
}

func newRing(capacity int) *ring {
	return &ring{buf: make([]*Particle, capacity)}
}

// push appends p and returns the evicted oldest particle when the ring was full.
func (r *ring) push(p *Particle) (evicted *Particle) {
	if r.size < len(r.buf) {
		r.buf[(r.head+r.size)%len(r.buf)] = p
		r.size++
		return nil
	}
	evicted = r.buf[r.head]
	r.buf[r.head] = p
	r.head = (r.head + 1) % len(r.buf)

	return evicted
}

func (r *ring) at(i int) *Particle {
	return r.buf[(r.head+i)%len(r.buf)]
}

func (r *ring) len() int { return r.size }

func (r *ring) cap() int { return len(r.buf) }
