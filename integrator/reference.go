package integrator

import "github.com/ChristopherRabotin/ode"

// SolveRK4 drives the integrable with the classical fourth order Runge-Kutta
// from github.com/ChristopherRabotin/ode. It is only used as a reference
// solution to measure the RK2 error.
func SolveRK4(x0, stepSize float64, inte Integrable) (uint64, float64, error) {
	return ode.NewRK4(x0, stepSize, inte).Solve()
}
