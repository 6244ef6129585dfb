// Package engage simulates a planar proportional navigation engagement
// between a missile and a constant speed, possibly maneuvering target.
package engage

import (
	"math"

	guidance "github.com/int08h/missle-guidance-sub000"
	"github.com/int08h/missle-guidance-sub000/integrator"
)

// Step sizes (s) and the range (ft) below which the fine step is used.
const (
	CoarseStep = 0.01
	FineStep   = 0.0002
	FineRange  = 1000.
)

// Params describes an engagement. Positions are in ft, speeds in ft/s and
// angles in degrees.
type Params struct {
	VM      float64 `mapstructure:"vm"`      // missile speed
	VT      float64 `mapstructure:"vt"`      // target speed
	XNT     float64 `mapstructure:"xnt"`     // target acceleration (ft/s^2)
	HE      float64 `mapstructure:"he"`      // heading error
	XNP     float64 `mapstructure:"xnp"`     // effective navigation ratio
	RM1     float64 `mapstructure:"rm1"`     // missile downrange
	RM2     float64 `mapstructure:"rm2"`     // missile altitude
	RT1     float64 `mapstructure:"rt1"`     // target downrange
	RT2     float64 `mapstructure:"rt2"`     // target altitude
	Beta    float64 `mapstructure:"beta"`    // target flight path angle
	Drag    float64 `mapstructure:"drag"`    // missile ballistic coefficient (lb/ft^2), 0 for none
	Sample  float64 `mapstructure:"sample"`  // sample period (s)
	MaxTime float64 `mapstructure:"maxtime"` // simulated time cap (s)
}

// Default is the reference head-on engagement.
func Default() Params {
	return Params{
		VM: 3000, VT: 1000, XNT: 0, HE: -20, XNP: 4,
		RM1: 0, RM2: 10000, RT1: 40000, RT2: 10000,
		Beta: 0, Sample: 0.1, MaxTime: 1000,
	}
}

// Sample is one recorded instant of the engagement.
type Sample struct {
	T   float64
	RT  guidance.Vector2
	RM  guidance.Vector2
	NcG float64 // commanded acceleration in g
	RTM float64 // range
}

// Result is the outcome of Run.
type Result struct {
	Samples []Sample
	// Miss is the range of the last evaluated state, when the closing
	// velocity changed sign.
	Miss float64
	// TF is the simulated time at the end of the engagement.
	TF float64
	// Steps counts the integration steps and FineSteps those taken with
	// the fine step size.
	Steps, FineSteps int
	// Capped is set when the time cap ended the engagement.
	Capped bool
}

// MinRange returns the smallest recorded range.
func (r Result) MinRange() float64 {
	m := math.Inf(1)
	for _, s := range r.Samples {
		m = math.Min(m, s.RTM)
	}
	return m
}

// observables of the last evaluation of the right hand side.
type observables struct {
	vc, nc, rtm float64
}

// Run simulates the engagement until the closing velocity becomes negative
// or the time cap is reached. A sample is recorded every Sample seconds and
// at the final state.
func Run(p Params) Result {
	he := p.HE * guidance.Deg2Rad
	β := p.Beta * guidance.Deg2Rad
	rt := guidance.Vec2(p.RT1, p.RT2)
	rm := guidance.Vec2(p.RM1, p.RM2)
	rtm := rt.Sub(rm)
	λ := rtm.Angle()
	α := math.Asin(p.VT * math.Sin(β+λ) / p.VM)
	vm := guidance.Polar2(p.VM, λ+α+he)

	var obs observables
	f := func(_ float64, x []float64) []float64 {
		β := x[0]
		rt := guidance.Vec2(x[1], x[2])
		rm := guidance.Vec2(x[3], x[4])
		vm := guidance.Vec2(x[5], x[6])
		vt := guidance.Vec2(-p.VT*math.Cos(β), p.VT*math.Sin(β))
		rtm := rt.Sub(rm)
		vtm := vt.Sub(vm)
		r := rtm.Norm()
		vc := -rtm.Dot(vtm) / r
		λ := rtm.Angle()
		λd := rtm.Cross(vtm) / (r * r)
		nc := p.XNP * vc * λd
		sλ, cλ := math.Sincos(λ)
		am := guidance.Vec2(-nc*sλ, nc*cλ)
		if p.Drag > 0 {
			am = am.Add(guidance.DragAccel(rm.Y, vm, p.Drag))
		}
		obs = observables{vc: vc, nc: nc, rtm: r}
		return []float64{p.XNT / p.VT, vt.X, vt.Y, vm.X, vm.Y, am.X, am.Y}
	}

	x := []float64{β, rt.X, rt.Y, rm.X, rm.Y, vm.X, vm.Y}
	f(0, x)
	var res Result
	sampler := integrator.NewSampler(p.Sample)
	record := func(t float64, x []float64) {
		res.Samples = append(res.Samples, Sample{
			T:   t,
			RT:  guidance.Vec2(x[1], x[2]),
			RM:  guidance.Vec2(x[3], x[4]),
			NcG: obs.nc / guidance.G,
			RTM: obs.rtm,
		})
	}
	t := 0.
	sampled := false
	// The closing velocity tested is the one of the corrector pass.
	for obs.vc >= 0 {
		if t >= p.MaxTime {
			res.Capped = true
			break
		}
		h := CoarseStep
		if obs.rtm < FineRange {
			h = FineStep
			res.FineSteps++
		}
		t, x = integrator.RK2Step(f, t, h, x)
		res.Steps++
		if sampled = sampler.Tick(h); sampled {
			record(t, x)
		}
	}
	if !sampled {
		record(t, x)
	}
	res.Miss = obs.rtm
	res.TF = t
	return res
}
