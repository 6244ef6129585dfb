package predict

import (
	"math"

	guidance "github.com/int08h/missle-guidance-sub000"
)

// Collision time sweep of LaunchLogic (s).
const (
	launchStep = 0.1
	launchMax  = 10.
)

// Launch is a collision solution on a flat earth.
type Launch struct {
	V     guidance.Vector2 // missile launch velocity
	Tau   float64          // collision time
	Found bool
}

// LaunchLogic finds the launch velocity of a missile at rm flying at the
// fixed speed vm toward a target at rt, vt falling under constant gravity.
// Flight times from 0.1 to 10 s are tried in 0.1 s steps; the first one the
// missile can cover (range minus vm·τ not positive) with a feasible
// elevation is kept.
func LaunchLogic(rm, rt, vt guidance.Vector2, vm float64) Launch {
	n := int(math.Round(launchMax / launchStep))
	for i := 1; i <= n; i++ {
		τ := float64(i) * launchStep
		rtf := rt.Add(vt.Scale(τ)).Add(guidance.Vec2(0, -0.5*guidance.G*τ*τ))
		d := rtf.Sub(rm)
		reach := vm * τ
		if d.Norm()-reach > 0 {
			continue
		}
		sθ := d.Y / reach
		if math.Abs(sθ) > 1 {
			continue
		}
		θ := math.Asin(sθ)
		vx := vm * math.Cos(θ)
		if d.X < 0 {
			vx = -vx
		}
		return Launch{V: guidance.Vec2(vx, vm*sθ), Tau: τ, Found: true}
	}
	return Launch{}
}
