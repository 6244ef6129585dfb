package orbit

import (
	"math"

	guidance "github.com/int08h/missle-guidance-sub000"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r2"
)

// parabolicBand is the half width around λ=2 treated as a parabola.
const parabolicBand = 1e-7

// Branch selects the transfer angle of a Lambert 3-D solve.
type Branch uint8

const (
	// ShortWay transfers through an angle below π.
	ShortWay Branch = iota
	// LongWay transfers through an angle above π.
	LongWay
)

func (b Branch) String() string {
	if b == LongWay {
		return "long way"
	}
	return "short way"
}

// Solution3D is the result of a spatial Lambert solve.
type Solution3D struct {
	V          guidance.Vector3
	Gamma      float64 // flight path angle above the local horizontal (rad)
	FlightTime float64
	Iterations int
	Converged  bool
}

// Lambert3D returns the velocity at ric (ft) which reaches rf after tau
// seconds around the Earth on the requested branch.
func Lambert3D(ric, rf guidance.Vector3, tau float64, sw Branch) Solution3D {
	return EarthFt.Lambert3D(ric, rf, tau, sw)
}

// spatialBracket returns the transfer angle of the branch and the flight
// path angles bounding the search: from the chord direction to the vertical
// for the short way, from the downward vertical to the mirrored chord
// direction for the long way.
func spatialBracket(ric, rf guidance.Vector3, sw Branch) (θ, γmin, γmax float64) {
	r0 := ric.Norm()
	cφ := math.Max(-1, math.Min(1, ric.Dot(rf)/(r0*rf.Norm())))
	θ = math.Acos(cφ)
	if sw == LongWay {
		θ = 2*math.Pi - θ
	}
	diff := rf.Sub(ric)
	chord := math.Acos(math.Max(-1, math.Min(1, ric.Dot(diff)/(r0*diff.Norm()))))
	if sw == ShortWay {
		return θ, guidance.HalfPi - chord, guidance.HalfPi
	}
	return θ, -guidance.HalfPi, -guidance.HalfPi + chord
}

// Lambert3D solves the spatial Lambert problem for the launch flight path
// angle γ inside the spatialBracket of the branch. Invalid trials (no real
// speed or a flight time that is not positive) shrink the bracket on the
// side away from the last valid trial, from above if none was valid yet.
// The invalid trials of both branches lie above the valid ones (lofted
// transfers escaping on a hyperbola), so this is the collapse γmax = γ in
// practice; γmin only moves if an invalid trial falls under a valid one.
// On non convergence the last candidate velocity is returned.
func (b Body) Lambert3D(ric, rf guidance.Vector3, tau float64, sw Branch) Solution3D {
	r0 := ric.Norm()
	r1 := rf.Norm()
	θ, γmin, γmax := spatialBracket(ric, rf, sw)

	var sol Solution3D
	var v float64
	var γold, told float64
	γvalid := math.NaN()
	hasOld, secant := false, false
	width := γmax - γmin
	γ := (γmin + γmax) / 2
	for sol.Iterations < lambertMaxIters {
		sol.Iterations++
		sol.Gamma = γ
		speed, tf, ok := b.spatialTime(r0, r1, θ, γ)
		if !ok {
			if !math.IsNaN(γvalid) && γ < γvalid {
				γmin = γ
			} else {
				γmax = γ
			}
			γ = (γmin + γmax) / 2
			hasOld, secant = false, false
			continue
		}
		v, γvalid = speed, γ
		sol.FlightTime = tf
		if math.Abs(tau-tf) <= lambertTol*tau {
			sol.Converged = true
			break
		}
		if tf > tau {
			γmax = γ
		} else {
			γmin = γ
		}
		// A secant step which did not halve the bracket is followed by a bisection.
		slow := secant && γmax-γmin > width/2
		width = γmax - γmin
		next := (γmax + γmin) / 2
		secant = false
		if hasOld && tf != told && !slow {
			s := γ + (tau-tf)*(γ-γold)/(tf-told)
			if s > γmin && s < γmax {
				next, secant = s, true
			}
		}
		γold, told, hasOld = γ, tf, true
		γ = next
	}
	if !math.IsNaN(γvalid) {
		sol.Gamma = γvalid
		sol.V = transferVelocity(ric, rf, v, γvalid, sw)
	}
	return sol
}

// spatialTime returns the launch speed and flight time of trial γ through
// the transfer angle θ.
func (b Body) spatialTime(r0, r1, θ, γ float64) (v, tf float64, ok bool) {
	cγ := math.Cos(γ)
	v2 := b.GM * (1 - math.Cos(θ)) / (r0 * cγ * (r0*cγ/r1 - math.Cos(θ+γ)))
	if !(v2 > 0) || math.IsInf(v2, 0) {
		return 0, 0, false
	}
	v = math.Sqrt(v2)
	tf = b.FlightTime(r0, v, γ, θ)
	if !(tf > 0) || math.IsInf(tf, 0) {
		return v, tf, false
	}
	return v, tf, true
}

// transferVelocity builds the launch velocity of speed v in the plane of ric
// and rf, at the flight path angle γ above the local horizontal.
func transferVelocity(ric, rf guidance.Vector3, v, γ float64, sw Branch) guidance.Vector3 {
	angle := guidance.HalfPi - γ
	if sw == LongWay {
		angle = γ - guidance.HalfPi
	}
	m1 := ric.Norm()
	crossmag := ric.Cross(rf).Norm()
	dot := ric.Dot(rf)
	c2 := m1 * math.Sin(angle) / crossmag
	c1 := math.Cos(angle)/m1 - dot*c2/(m1*m1)
	return ric.Scale(c1).Add(rf.Scale(c2)).Scale(v)
}

// FlightTime returns the time to sweep the transfer angle θ (rad, in (0, 2π))
// from radius r0 with speed v and flight path angle γ above the local
// horizontal. The conic is chosen from λ = r0·v²/μ: elliptic below 2,
// hyperbolic above and parabolic within 1e-7 of 2. NaN is returned when the
// angle cannot be swept without going through infinity.
func (b Body) FlightTime(r0, v, γ, θ float64) float64 {
	sγ, cγ := math.Sincos(γ)
	λ := r0 * v * v / b.GM
	ecν := λ*cγ*cγ - 1
	esν := λ * sγ * cγ
	ν0 := math.Atan2(esν, ecν)
	ν1 := ν0 + θ
	e := r2.Norm(r2.Vec{X: ecν, Y: esν})
	switch {
	case scalar.EqualWithinAbs(λ, 2, parabolicBand):
		if ν1 >= math.Pi {
			return math.NaN()
		}
		p := r0 * λ * cγ * cγ
		d0 := math.Tan(ν0 / 2)
		d1 := math.Tan(ν1 / 2)
		return 0.5 * math.Sqrt(p*p*p/b.GM) * ((d1 - d0) + (d1*d1*d1-d0*d0*d0)/3)
	case λ < 2:
		a := r0 / (2 - λ)
		q := math.Sqrt(1 - e*e)
		E0 := math.Atan2(q*math.Sin(ν0), e+math.Cos(ν0))
		E1 := math.Atan2(q*math.Sin(ν1), e+math.Cos(ν1))
		dE := E1 - E0
		if dE < 0 {
			dE += 2 * math.Pi
		}
		dM := dE - e*(math.Sin(E1)-math.Sin(E0))
		return dM * math.Sqrt(a*a*a/b.GM)
	default:
		if ν1 >= math.Acos(-1/e) {
			return math.NaN()
		}
		a := r0 / (λ - 2)
		k := math.Sqrt((e - 1) / (e + 1))
		anomaly := func(ν float64) float64 {
			z := k * math.Tan(ν/2)
			return math.Log1p(z) - math.Log1p(-z)
		}
		F0, F1 := anomaly(ν0), anomaly(ν1)
		dM := e*(math.Sinh(F1)-math.Sinh(F0)) - (F1 - F0)
		return dM * math.Sqrt(a*a*a/b.GM)
	}
}
