package orbit

import (
	"math"

	guidance "github.com/int08h/missle-guidance-sub000"
)

// Sweep resolutions of OLambert, in degrees.
const (
	coarseStepDeg = 0.1
	fineStepDeg   = 0.0001
)

// Trace is the history of an OLambert sweep. Only trials with a real speed,
// an elliptic transfer and a flight time no longer than the target are kept.
type Trace struct {
	Velocities  []guidance.Vector2
	FlightTimes []float64
	Gammas      []float64 // rad
	Count       int
}

func (t *Trace) record(v guidance.Vector2, tf, γ float64) {
	t.Velocities = append(t.Velocities, v)
	t.FlightTimes = append(t.FlightTimes, tf)
	t.Gammas = append(t.Gammas, γ)
	t.Count++
}

// OLambert is Lambert2D by exhaustive sweep around the Earth, see Body.OLambert.
func OLambert(ric, rf guidance.Vector2, tau, lonIC, lonF float64) (guidance.Vector2, *Trace) {
	return EarthFt.OLambert(ric, rf, tau, lonIC, lonF)
}

// OLambert sweeps the flight path angle from -90° to +90° by 0.1° and stops
// at the first trial whose flight time exceeds tau. The sweep is then refined
// by 0.0001° from the last recorded angle. The velocity of the last recorded
// trial is returned with the full trace; it is the zero vector if no trial
// was recorded.
func (b Body) OLambert(ric, rf guidance.Vector2, tau, lonIC, lonF float64) (guidance.Vector2, *Trace) {
	p := newPlanar(ric, rf)
	tr := &Trace{}
	var last guidance.Vector2
	sweep := func(from, step float64, n int) (float64, bool) {
		found := math.NaN()
		for i := 0; i <= n; i++ {
			γdeg := from + float64(i)*step
			γ := γdeg * guidance.Deg2Rad
			v, tf, ok := b.planarTime(p, γ)
			if !ok {
				continue
			}
			if tf > tau {
				return found, true
			}
			last = planarVelocity(v, γ, lonIC, lonF)
			tr.record(last, tf, γ)
			found = γdeg
		}
		return found, false
	}
	γdeg, crossed := sweep(-90, coarseStepDeg, int(math.Round(180/coarseStepDeg)))
	if !crossed || math.IsNaN(γdeg) {
		return last, tr
	}
	sweep(γdeg+fineStepDeg, fineStepDeg, int(math.Round(coarseStepDeg/fineStepDeg)))
	return last, tr
}
