package predict

import (
	"math"

	guidance "github.com/int08h/missle-guidance-sub000"
	"github.com/int08h/missle-guidance-sub000/orbit"
)

// Aim is the Lambert aim point of a boosting threat: the position to reach
// and the booster time at which to reach it.
type Aim struct {
	R  guidance.Vector2
	TF float64
}

// lambertSteer returns the thrust axis of a Lambert steered booster: the
// velocity to be gained toward the aim point. The engine is cut (zero axis)
// once less than one step of acceleration remains to be gained, and the
// axis falls back to the velocity when no Lambert solution exists.
func lambertSteer(t float64, r, v guidance.Vector2, aim Aim, accel float64) guidance.Vector2 {
	tgo := aim.TF - t
	if tgo <= 0 {
		return thrustAxis(r, v)
	}
	sol := orbit.Lambert2D(r, aim.R, tgo, r.Angle(), aim.R.Angle())
	vg := sol.V.Sub(v)
	if math.IsNaN(vg.X) || math.IsNaN(vg.Y) {
		return thrustAxis(r, v)
	}
	if vg.Norm() <= accel*Step {
		return guidance.Vector2{}
	}
	return vg.Unit()
}

// P45 propagates a Lambert steered booster of class iTgt (IRBMTarget or
// ICBMTarget) for tau seconds from booster time t0. The booster climbs
// vertically until its TUpt, then thrusts along the velocity to be gained
// toward aim until it is gained or the booster burns out, then coasts.
// An unknown class predicts a coast.
func P45(t0, tau float64, r, v guidance.Vector2, aim Aim, iTgt int) Point {
	b, err := Target(iTgt)
	if err != nil {
		return PZ(tau, r, v)
	}
	rhs := func(t float64, x []float64) []float64 {
		r := guidance.Vec2From(x)
		v := guidance.Vec2From(x[2:])
		thrust := b.Accel(t)
		var axis guidance.Vector2
		switch {
		case t < b.TUpt:
			axis = r.Unit()
		case t < b.Burnout():
			axis = lambertSteer(t, r, v, aim, thrust)
		}
		a := guidance.Gravity2(r).Add(axis.Scale(thrust))
		return []float64{v.X, v.Y, a.X, a.Y}
	}
	f := &flight{x: state2(r, v), end: t0 + tau, rhs: rhs}
	f.run(t0)
	return point(f.x)
}
