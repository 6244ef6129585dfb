package guidance

import "math"

// Breakpoint of the two-branch exponential atmosphere, in feet.
const atmosphereBreak = 30000.

// Density returns the air density in slug/ft^3 at altitude h (ft).
// The model is discontinuous at 30 kft and is used unchanged.
func Density(h float64) float64 {
	if h <= atmosphereBreak {
		return 0.002378 * math.Exp(-h/30000)
	}
	return 0.0034 * math.Exp(-h/22000)
}

// DynamicPressure returns ½ρv² in lb/ft^2.
func DynamicPressure(h, v float64) float64 {
	return 0.5 * Density(h) * v * v
}

// DragDecel returns the drag deceleration magnitude (ft/s^2) for a body of
// ballistic coefficient β (lb/ft^2) at altitude h and speed v.
// A non-positive β disables drag.
func DragDecel(h, v, β float64) float64 {
	if β <= 0 {
		return 0
	}
	return G * DynamicPressure(h, v) / β
}

// DragAccel returns the drag acceleration vector, anti-parallel to vel.
func DragAccel(h float64, vel Vector2, β float64) Vector2 {
	v := vel.Norm()
	if v == 0 {
		return Vector2{}
	}
	return vel.Scale(-DragDecel(h, v, β) / v)
}

// Gravity2 returns the central Newtonian gravity acceleration at r (ft).
func Gravity2(r Vector2) Vector2 {
	n := r.Norm()
	return r.Scale(-GMFt / (n * n * n))
}

// Gravity3 returns the central Newtonian gravity acceleration at r (ft).
func Gravity3(r Vector3) Vector3 {
	n := r.Norm()
	return r.Scale(-GMFt / (n * n * n))
}

// Altitude returns the height above the spherical Earth of an earth-centred position (ft).
func Altitude(r Vector2) float64 {
	return r.Norm() - EarthRadiusFt
}
