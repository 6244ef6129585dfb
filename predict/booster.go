package predict

import (
	"fmt"

	guidance "github.com/int08h/missle-guidance-sub000"
)

// Stage is one stage of a booster. Weights are in lb, Burn in s and Isp in s.
type Stage struct {
	PropWeight   float64
	StructWeight float64
	Burn         float64
	Isp          float64
}

// Thrust returns the constant thrust of the stage (lb).
func (s Stage) Thrust() float64 {
	return s.Isp * s.PropWeight / s.Burn
}

// Booster is a two-stage rocket. TUpt is the duration of the initial
// vertical climb used by P45.
type Booster struct {
	Name    string
	Stages  [2]Stage
	Payload float64
	TUpt    float64
}

// Target classes of the boosting threats.
const (
	IRBMTarget = 1
	ICBMTarget = 2
)

var (
	// IRBM is the intermediate range threat (i_tgt=1).
	IRBM = Booster{
		Name: "IRBM",
		Stages: [2]Stage{
			{PropWeight: 20000, StructWeight: 2000, Burn: 50, Isp: 250},
			{PropWeight: 5000, StructWeight: 1000, Burn: 40, Isp: 280},
		},
		Payload: 1500,
		TUpt:    10,
	}
	// ICBM is the intercontinental threat (i_tgt=2).
	ICBM = Booster{
		Name: "ICBM",
		Stages: [2]Stage{
			{PropWeight: 45000, StructWeight: 5000, Burn: 60, Isp: 250},
			{PropWeight: 18000, StructWeight: 2000, Burn: 60, Isp: 300},
		},
		Payload: 2000,
		TUpt:    15,
	}
)

// Target returns the booster of a target class.
func Target(iTgt int) (Booster, error) {
	switch iTgt {
	case IRBMTarget:
		return IRBM, nil
	case ICBMTarget:
		return ICBM, nil
	}
	return Booster{}, fmt.Errorf("unknown target class %d", iTgt)
}

// Burnout returns the time at which the second stage burns out.
func (b Booster) Burnout() float64 {
	return b.Stages[0].Burn + b.Stages[1].Burn
}

// Weight returns the booster weight t seconds after launch (lb). The
// propellant burns linearly and the first stage structure is dropped at
// staging.
func (b Booster) Weight(t float64) float64 {
	s1, s2 := b.Stages[0], b.Stages[1]
	upper := s2.PropWeight + s2.StructWeight + b.Payload
	switch {
	case t < s1.Burn:
		return s1.PropWeight + s1.StructWeight + upper - s1.PropWeight*t/s1.Burn
	case t < b.Burnout():
		return upper - s2.PropWeight*(t-s1.Burn)/s2.Burn
	}
	return s2.StructWeight + b.Payload
}

// Accel returns the thrust acceleration magnitude t seconds after launch
// (ft/s^2), zero after burnout.
func (b Booster) Accel(t float64) float64 {
	var thrust float64
	switch {
	case t < 0:
		return 0
	case t < b.Stages[0].Burn:
		thrust = b.Stages[0].Thrust()
	case t < b.Burnout():
		thrust = b.Stages[1].Thrust()
	default:
		return 0
	}
	return guidance.G * thrust / b.Weight(t)
}

// thrustAxis is the unit velocity vector, or the local vertical while the
// body is at rest.
func thrustAxis(r, v guidance.Vector2) guidance.Vector2 {
	if v.Norm() == 0 {
		return r.Unit()
	}
	return v.Unit()
}

// boost2 is the right hand side of a booster thrusting along its velocity.
func (b Booster) boost2(t float64, x []float64) []float64 {
	r := guidance.Vec2From(x)
	v := guidance.Vec2From(x[2:])
	a := guidance.Gravity2(r).Add(thrustAxis(r, v).Scale(b.Accel(t)))
	return []float64{v.X, v.Y, a.X, a.Y}
}

// B propagates a booster for tau seconds starting t0 seconds after its
// launch. Thrust is along the velocity until burnout, then the body coasts.
func B(t0, tau float64, r, v guidance.Vector2, b Booster) Point {
	f := &flight{x: state2(r, v), end: t0 + tau, rhs: b.boost2}
	f.run(t0)
	return point(f.x)
}
