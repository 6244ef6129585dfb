package orbit

import (
	"math"

	guidance "github.com/int08h/missle-guidance-sub000"
)

const (
	lambertTol      = 1e-8 // relative flight time tolerance
	lambertMaxIters = 100
)

// Solution2D is the result of a planar Lambert solve.
type Solution2D struct {
	V          guidance.Vector2 // velocity required at the initial position
	Gamma      float64          // flight path angle above the local horizontal (rad)
	FlightTime float64          // flight time of the last trial (s)
	Iterations int
	Converged  bool
}

// Lambert2D returns the velocity at ric (ft) which reaches rf after tau
// seconds around the Earth. The longitudes only decide the direction of
// travel: eastward when lonF > lonIC.
func Lambert2D(ric, rf guidance.Vector2, tau, lonIC, lonF float64) Solution2D {
	return EarthFt.Lambert2D(ric, rf, tau, lonIC, lonF)
}

// Lambert2D solves the planar Lambert problem by iterating on the launch
// flight path angle between the two parabolic bounds. The iteration is a
// secant with a bisection fallback; the first step always bisects.
// If the iteration cap is reached, the last velocity is returned and
// Converged is false.
func (b Body) Lambert2D(ric, rf guidance.Vector2, tau, lonIC, lonF float64) Solution2D {
	p := newPlanar(ric, rf)
	γmin, γmax := p.bracket()
	γ := (γmin + γmax) / 2
	var sol Solution2D
	var γold, told float64
	for sol.Iterations < lambertMaxIters {
		sol.Iterations++
		v, tf, ok := b.planarTime(p, γ)
		sol.Gamma = γ
		if !ok {
			// Degenerate trial: collapse the bracket from above and re-bisect.
			γmax = γ
			γ = (γmin + γmax) / 2
			continue
		}
		sol.V = planarVelocity(v, γ, lonIC, lonF)
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
		next := (γmax + γmin) / 2
		if sol.Iterations > 1 && tf != told {
			next = γ + (γ-γold)*(tau-tf)/(tf-told)
			if next > γmax || next < γmin {
				next = (γmax + γmin) / 2
			}
		}
		γold, told = γ, tf
		γ = next
	}
	return sol
}

// planar holds the transfer geometry shared by every trial.
type planar struct {
	r0, rf   float64
	cφ, sφ   float64
	φ        float64
	halfTanφ float64
}

func newPlanar(ric, rf guidance.Vector2) planar {
	r0 := ric.Norm()
	r1 := rf.Norm()
	cφ := ric.Dot(rf) / (r0 * r1)
	cφ = math.Max(-1, math.Min(1, cφ))
	φ := math.Acos(cφ)
	return planar{r0: r0, rf: r1, cφ: cφ, sφ: math.Sin(φ), φ: φ, halfTanφ: math.Tan(φ / 2)}
}

// bracket returns the flight path angles of the two parabolic transfers.
func (p planar) bracket() (float64, float64) {
	d := math.Sqrt(2 * p.r0 * (1 - p.cφ) / p.rf)
	return math.Atan2(p.sφ-d, 1-p.cφ), math.Atan2(p.sφ+d, 1-p.cφ)
}

// planarSpeed returns the launch speed squared for the flight path angle γ.
func (b Body) planarSpeed(p planar, γ float64) float64 {
	cγ := math.Cos(γ)
	return b.GM * (1 - p.cφ) / (p.r0 * cγ * (p.r0*cγ/p.rf - math.Cos(p.φ+γ)))
}

// planarTime returns the speed and flight time of the trial γ. ok is false
// when v² is not positive or the transfer is not elliptic.
func (b Body) planarTime(p planar, γ float64) (v, tf float64, ok bool) {
	v2 := b.planarSpeed(p, γ)
	if !(v2 > 0) || math.IsInf(v2, 0) {
		return 0, 0, false
	}
	v = math.Sqrt(v2)
	λ := p.r0 * v2 / b.GM
	q := 2/λ - 1
	if q < 0 {
		return v, 0, false
	}
	sγ, cγ := math.Sincos(γ)
	top1 := sγ/cγ*(1-p.cφ) + (1-λ)*p.sφ
	bot1 := (2 - λ) * ((1-p.cφ)/(λ*cγ*cγ) + math.Cos(γ+p.φ)/cγ)
	top2 := 2 * cγ
	bot2 := λ * math.Pow(q, 1.5)
	temp := top2 / bot2 * math.Atan2(math.Sqrt(q), cγ/p.halfTanφ-sγ)
	tf = p.r0 * (top1/bot1 + temp) / (v * cγ)
	if math.IsNaN(tf) {
		return v, 0, false
	}
	return v, tf, true
}

// planarVelocity orients the launch speed v at flight path angle γ above the
// local horizontal of the launch longitude.
func planarVelocity(v, γ, lonIC, lonF float64) guidance.Vector2 {
	if lonF > lonIC {
		return guidance.Polar2(v, guidance.HalfPi-γ+lonIC)
	}
	return guidance.Polar2(v, -guidance.HalfPi+γ+lonIC)
}
