package predict

import guidance "github.com/int08h/missle-guidance-sub000"

// Reentry is the state of a reentry vehicle when it crosses an altitude.
type Reentry struct {
	R, V guidance.Vector2
	T    float64 // time of the crossing after the initial state
}

// InitialPZ propagates a reentry vehicle of ballistic coefficient beta
// (lb/ft^2) under gravity and drag until its altitude is no longer above
// hDesired (ft). The first state at or below the altitude is returned; the
// flight is capped at 5000 s.
func InitialPZ(hDesired float64, r0, v0 guidance.Vector2, beta float64) Reentry {
	rhs := func(_ float64, x []float64) []float64 {
		r := guidance.Vec2From(x)
		v := guidance.Vec2From(x[2:])
		a := guidance.Gravity2(r).Add(guidance.DragAccel(guidance.Altitude(r), v, beta))
		return []float64{v.X, v.Y, a.X, a.Y}
	}
	f := &flight{
		x:   state2(r0, v0),
		end: maxFlight,
		rhs: rhs,
		until: func(x []float64) bool {
			return guidance.Altitude(guidance.Vec2From(x)) <= hDesired
		},
	}
	t := f.run(0)
	p := point(f.x)
	return Reentry{R: p.R, V: p.V, T: t}
}
