package predict

import guidance "github.com/int08h/missle-guidance-sub000"

// PZ propagates a ballistic body under central gravity for tau seconds.
// The last step is shortened so the prediction lands exactly on tau.
func PZ(tau float64, r, v guidance.Vector2) Point {
	f := &flight{x: state2(r, v), end: tau, rhs: coast2}
	f.run(0)
	return point(f.x)
}
