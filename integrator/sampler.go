package integrator

// DefaultEpsilon catches the floating point overshoot of the sample accumulator.
const DefaultEpsilon = 1e-5

// Sampler decides when a record is due. The accumulator is reset by
// assignment, never by subtracting the period, so drift does not build up
// across samples.
type Sampler struct {
	Period  float64
	Epsilon float64
	s       float64
}

// NewSampler returns a sampler with the default epsilon.
func NewSampler(period float64) *Sampler {
	return &Sampler{Period: period, Epsilon: DefaultEpsilon}
}

// Tick accumulates h and returns whether a sample must be recorded now.
func (s *Sampler) Tick(h float64) bool {
	s.s += h
	if s.s >= s.Period-s.Epsilon {
		s.s = 0
		return true
	}
	return false
}
