package random

import "sync"

// Scripted is a Source that replays fixed values, for tests. Once a script
// runs out, Float64 returns 0.99 (every Chance below it fails) and IntN
// returns 0.
type Scripted struct {
	mu     sync.Mutex
	Floats []float64
	Ints   []int
}

// NewScripted returns a Source replaying floats and ints in order.
func NewScripted(floats []float64, ints []int) *Scripted {
	return &Scripted{Floats: floats, Ints: ints}
}

func (s *Scripted) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Floats) == 0 {
		return 0.99
	}
	f := s.Floats[0]
	s.Floats = s.Floats[1:]
	return f
}

// IntN returns the next scripted int reduced modulo n.
func (s *Scripted) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n <= 0 || len(s.Ints) == 0 {
		return 0
	}
	v := s.Ints[0]
	s.Ints = s.Ints[1:]
	return ((v % n) + n) % n
}
