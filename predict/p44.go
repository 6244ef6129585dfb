package predict

import (
	guidance "github.com/int08h/missle-guidance-sub000"
	"github.com/int08h/missle-guidance-sub000/orbit"
)

// Point3 is a predicted spatial state (ft, ft/s).
type Point3 struct {
	R, V guidance.Vector3
}

// P44 finds with Lambert 3-D the velocity at r which reaches rFinal after
// tauTotal seconds, then coasts with it for tau seconds. The branch is the
// one whose sense of travel matches the current velocity v; the short way is
// used when v is zero or radial.
func P44(tau float64, r, v guidance.Vector3, tauTotal float64, rFinal guidance.Vector3) Point3 {
	sw := orbit.ShortWay
	if r.Cross(v).Dot(r.Cross(rFinal)) < 0 {
		sw = orbit.LongWay
	}
	sol := orbit.Lambert3D(r, rFinal, tauTotal, sw)
	f := &flight{x: append(r.Slice(), sol.V.Slice()...), end: tau, rhs: coast3}
	f.run(0)
	return Point3{R: guidance.Vec3From(f.x), V: guidance.Vec3From(f.x[3:])}
}
