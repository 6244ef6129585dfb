// Package predict holds the forward integrators used to predict where a body
// will be at a future instant. Every routine nests its own RK2 integration
// and is a pure function of its arguments.
package predict

import (
	"math"

	guidance "github.com/int08h/missle-guidance-sub000"
	"github.com/int08h/missle-guidance-sub000/integrator"
)

const (
	// Step is the integration step of the predictions (s).
	Step = 0.01
	// timeEps ends an integration this close to the final time.
	timeEps = 1e-5
	// maxFlight caps the integrations which stop on a state condition (s).
	maxFlight = 5000.
)

// flight is an integrator.Integrable propagated from a start time to an end
// time, or until the until condition holds on the state.
type flight struct {
	x     []float64
	end   float64
	rhs   integrator.Func
	step  func(tgo float64) float64
	until func(x []float64) bool
}

func (f *flight) GetState() []float64 { return f.x }

func (f *flight) SetState(t float64, s []float64) { f.x = s }

func (f *flight) Stop(t float64) bool {
	if f.until != nil && f.until(f.x) {
		return true
	}
	return t >= f.end-timeEps
}

func (f *flight) Func(t float64, s []float64) []float64 { return f.rhs(t, s) }

// NextStep truncates the last step so that the flight ends on f.end.
func (f *flight) NextStep(t float64, s []float64) float64 {
	tgo := f.end - t
	if f.step != nil {
		return f.step(tgo)
	}
	return math.Min(Step, tgo)
}

// run integrates from t0 and returns the final time.
func (f *flight) run(t0 float64) float64 {
	if f.Stop(t0) {
		return t0
	}
	_, t, _ := integrator.NewRK2(t0, Step, f).Solve()
	return t
}

func state2(r, v guidance.Vector2) []float64 {
	return []float64{r.X, r.Y, v.X, v.Y}
}

// coast2 is the right hand side of a planar body under central gravity.
func coast2(_ float64, x []float64) []float64 {
	g := guidance.Gravity2(guidance.Vec2From(x))
	return []float64{x[2], x[3], g.X, g.Y}
}

// coast3 is the right hand side of a body under central gravity.
func coast3(_ float64, x []float64) []float64 {
	g := guidance.Gravity3(guidance.Vec3From(x))
	return []float64{x[3], x[4], x[5], g.X, g.Y, g.Z}
}

// Point is a predicted planar state (ft, ft/s).
type Point struct {
	R, V guidance.Vector2
}

func point(x []float64) Point {
	return Point{R: guidance.Vec2From(x), V: guidance.Vec2From(x[2:])}
}
