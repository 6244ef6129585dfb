package predict

import (
	"math"

	guidance "github.com/int08h/missle-guidance-sub000"
)

// Guided is the outcome of a dual propagation.
type Guided struct {
	RM  guidance.Vector2 // interceptor position at the final time
	ZEM guidance.Vector2 // target minus interceptor position at the final time
}

// G propagates a boosting interceptor (thrust along velocity plus gravity)
// and a ballistic target together, from booster time tStart to tEnd. The
// step is set once from the engagement time to go tgo: 0.01 s when more
// than a second remains, tgo itself otherwise. Only the last step is
// shortened to land on tEnd. A tgo that is not positive uses 0.01 s.
func G(tStart, tEnd float64, rm, vm guidance.Vector2, b Booster, rt, vt guidance.Vector2, tgo float64) Guided {
	h := Step
	if tgo > 0 && tgo <= 1 {
		h = tgo
	}
	x := append(state2(rm, vm), state2(rt, vt)...)
	rhs := func(t float64, x []float64) []float64 {
		m := b.boost2(t, x[:4])
		tg := coast2(t, x[4:])
		return append(m, tg...)
	}
	f := &flight{
		x:   x,
		end: tEnd,
		rhs: rhs,
		step: func(left float64) float64 {
			return math.Min(h, left)
		},
	}
	f.run(tStart)
	m := guidance.Vec2From(f.x)
	return Guided{RM: m, ZEM: guidance.Vec2From(f.x[4:]).Sub(m)}
}
