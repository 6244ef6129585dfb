package integrator

// Func is a right hand side: it returns the derivative of state x at time t.
// Implementations must return a new slice and never modify x.
type Func func(t float64, x []float64) []float64

// Integrable defines something which can be integrated, i.e. has a state vector.
// The method set matches the one expected by github.com/ChristopherRabotin/ode
// so the same value can be driven by RK2 or by the fourth order reference.
// WARNING: Implementation must manage its own state based on the iteration.
type Integrable interface {
	GetState() []float64                   // Get the latest state of this integrable.
	SetState(t float64, s []float64)       // Set the state s reached at time t.
	Stop(t float64) bool                   // Return whether to stop the integration at time t.
	Func(t float64, s []float64) []float64 // ODE function from time t and state s, must return a new state.
}

// Stepper is implemented by integrables which choose their own step size.
// NextStep is called before each step with the current time and state.
type Stepper interface {
	NextStep(t float64, s []float64) float64
}
