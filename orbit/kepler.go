package orbit

import "math"

// keplerIterations is fixed: the solver never tests for convergence.
const keplerIterations = 10

// Kepler propagates s (km, km/s) by dt seconds around the Earth.
func Kepler(s State, dt float64) State {
	return EarthKm.Kepler(s, dt)
}

// Kepler propagates s by dt seconds with the universal variable formulation,
// valid for any conic. The state is normalised by the body radius and the
// time unit sqrt(R³/GM) so that μ=1 inside the solver.
// A zero dt returns s unchanged.
func (b Body) Kepler(s State, dt float64) State {
	if dt == 0 {
		return s
	}
	tu := math.Sqrt(b.Radius * b.Radius * b.Radius / b.GM)
	vu := b.Radius / tu
	R := s.R.Scale(1 / b.Radius)
	V := s.V.Scale(1 / vu)
	τ := dt / tu

	r0 := R.Norm()
	v0 := V.Norm()
	σ0 := R.Dot(V)
	α := 2/r0 - v0*v0

	var x float64
	if α <= 0 {
		x = 0.1 * τ / r0
	} else {
		x = α * τ
	}

	var u1, u2, u3 float64
	for i := 0; i < keplerIterations; i++ {
		y := α * x * x
		c, sf := stumpff(y)
		u1 = x * (1 - y*sf)
		u2 = x * x * c
		u3 = x * x * x * sf
		f := r0*u1 + σ0*u2 + u3 - τ
		df := σ0*u1 + (1-α*r0)*u2 + r0
		ddf := σ0*(1-y*c) + (1-α*r0)*u1
		δ2 := 16*df*df - 20*f*ddf
		if δ2 <= 0 {
			x *= 0.5
			continue
		}
		x -= 5 * f / (df + math.Copysign(math.Sqrt(δ2), df))
	}
	// Universal functions at the final iterate.
	y := α * x * x
	c, sf := stumpff(y)
	u1 = x * (1 - y*sf)
	u2 = x * x * c
	u3 = x * x * x * sf

	rn := σ0*u1 + (1-α*r0)*u2 + r0
	f := 1 - u2/r0
	g := τ - u3
	fdot := -u1 / (rn * r0)
	gdot := 1 - u2/rn
	return State{
		R: R.Scale(f).Add(V.Scale(g)).Scale(b.Radius),
		V: R.Scale(fdot).Add(V.Scale(gdot)).Scale(vu),
	}
}

// stumpff returns c(y) and s(y). The three branches must stay separate: a
// single continued form fails for y exactly zero.
func stumpff(y float64) (c, s float64) {
	switch {
	case y < 0:
		sy := math.Sqrt(-y)
		c = (1 - math.Cosh(sy)) / y
		s = (math.Sinh(sy) - sy) / (sy * sy * sy)
	case y == 0:
		c = 0.5
		s = 1. / 6
	default:
		sy := math.Sqrt(y)
		c = (1 - math.Cos(sy)) / y
		s = (sy - math.Sin(sy)) / (sy * sy * sy)
	}
	return
}
