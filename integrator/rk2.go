package integrator

// RK2Step advances x from t by h with the two-pass predictor/corrector:
//
//	x_e = x + h*f(x, t)
//	x'  = ½(x + x_e) + ½h*f(x_e, t+h)
//
// x is never modified; the corrector uses the derivative evaluated at the
// Euler predicted state.
func RK2Step(f Func, t, h float64, x []float64) (float64, []float64) {
	old := snapshot(x)
	k1 := f(t, old)
	euler := make([]float64, len(old))
	for i := range old {
		euler[i] = old[i] + h*k1[i]
	}
	t += h
	k2 := f(t, euler)
	next := make([]float64, len(old))
	for i := range old {
		next[i] = .5*(old[i]+euler[i]) + .5*h*k2[i]
	}
	return t, next
}

// EulerStep advances x from t by h with a single forward Euler pass.
func EulerStep(f Func, t, h float64, x []float64) (float64, []float64) {
	k1 := f(t, x)
	next := make([]float64, len(x))
	for i := range x {
		next[i] = x[i] + h*k1[i]
	}
	return t + h, next
}

func snapshot(x []float64) []float64 {
	s := make([]float64, len(x))
	copy(s, x)
	return s
}

// RK2 drives an Integrable with RK2Step.
type RK2 struct {
	X0         float64    // The initial time.
	StepSize   float64    // The step size, unless the integrable is a Stepper.
	Integrator Integrable // What is to be integrated.
}

// NewRK2 returns a new RK2 integrator instance.
func NewRK2(x0 float64, stepSize float64, inte Integrable) *RK2 {
	if stepSize <= 0 {
		panic("config StepSize must be positive")
	}
	if inte == nil {
		panic("config Integrator may not be nil")
	}
	return &RK2{X0: x0, StepSize: stepSize, Integrator: inte}
}

// Solve runs the configured RK2 until the integrable requests a stop.
// Returns the number of iterations performed and the last time, or an error.
func (r *RK2) Solve() (uint64, float64, error) {
	iterNum := uint64(0)
	t := r.X0
	stepper, adaptive := r.Integrator.(Stepper)
	for !r.Integrator.Stop(t) {
		h := r.StepSize
		state := r.Integrator.GetState()
		if adaptive {
			h = stepper.NextStep(t, state)
		}
		var next []float64
		t, next = RK2Step(r.Integrator.Func, t, h, state)
		r.Integrator.SetState(t, next)
		iterNum++
	}
	return iterNum, t, nil
}
