package orbit

import (
	"fmt"

	guidance "github.com/int08h/missle-guidance-sub000"
)

// Body is a central body for two-body propagation. Radius and GM must be
// expressed in the same length unit, which is also the unit of every state
// passed to the body's methods.
type Body struct {
	Name   string
	Radius float64
	GM     float64
}

// EarthKm is the Earth in kilometers, used by the Kepler propagator.
var EarthKm = Body{"Earth (km)", guidance.EarthRadiusKm, guidance.GMKm}

// EarthFt is the Earth in feet, used by the Lambert solvers and predictions.
var EarthFt = Body{"Earth (ft)", guidance.EarthRadiusFt, guidance.GMFt}

// String implements the Stringer interface.
func (b Body) String() string {
	return b.Name
}

// State is a position and velocity in the units of the body it orbits.
type State struct {
	R, V guidance.Vector3
}

// Energy returns the specific orbital energy v²/2 - μ/r.
func (s State) Energy(b Body) float64 {
	v := s.V.Norm()
	return v*v/2 - b.GM/s.R.Norm()
}

// H returns the specific angular momentum vector.
func (s State) H() guidance.Vector3 {
	return s.R.Cross(s.V)
}

func (s State) String() string {
	return fmt.Sprintf("R=%s V=%s", s.R, s.V)
}
