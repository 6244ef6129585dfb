package lesson

import (
	"math"

	"github.com/int08h/missle-guidance-sub000/export"
	"github.com/int08h/missle-guidance-sub000/integrator"
)

// oscillatorParams describe x'' = -ω²x started on the sine x(0)=0, x'(0)=ω.
type oscillatorParams struct {
	W      float64 `mapstructure:"w"`      // natural frequency (rad/s)
	H      float64 `mapstructure:"h"`      // integration step (s)
	TF     float64 `mapstructure:"tf"`     // final time (s)
	Sample float64 `mapstructure:"sample"` // sample period (s)
}

func oscillatorDefaults() oscillatorParams {
	return oscillatorParams{W: 2, H: 0.01, TF: 10, Sample: 0.1}
}

func (p oscillatorParams) check() error {
	return positive("w h tf sample", p.W, p.H, p.TF, p.Sample)
}

func (p oscillatorParams) rhs(_ float64, x []float64) []float64 {
	return []float64{x[1], -p.W * p.W * x[0]}
}

type stepFunc func(f integrator.Func, t, h float64, x []float64) (float64, []float64)

// oscillate integrates the oscillator with step and samples x, x' and the
// closed form sin(ωt).
func oscillate(p oscillatorParams, step stepFunc, name string) (*Result, error) {
	res := newResult("t", "x", "xd", "xth")
	x := []float64{0, p.W}
	t := 0.
	sampler := integrator.NewSampler(p.Sample)
	maxErr := 0.
	for t <= p.TF {
		t, x = step(p.rhs, t, p.H, x)
		if sampler.Tick(p.H) {
			th := math.Sin(p.W * t)
			maxErr = math.Max(maxErr, math.Abs(x[0]-th))
			res.add(t, x[0], x[1], th)
		}
	}
	res.note("%s: largest sampled error %.3e", name, maxErr)
	res.Plots = []export.Plot{{
		Name: "x", Title: "Harmonic oscillator, " + name,
		XLabel: "Time (s)", YLabel: "x", Legend: true,
		Lines: []export.Line{res.line("Numerical", "t", "x"), res.line("Theory", "t", "xth")},
	}}
	return res, nil
}

// oscillator is the integrable of the RK2 versus RK4 comparison; it records
// the state at every sample instant.
type oscillator struct {
	p       oscillatorParams
	x       []float64
	sampler *integrator.Sampler
	ts, xs  []float64 // sampled times and positions
}

func newOscillator(p oscillatorParams) *oscillator {
	return &oscillator{p: p, x: []float64{0, p.W}, sampler: integrator.NewSampler(p.Sample)}
}

func (o *oscillator) GetState() []float64 { return o.x }

func (o *oscillator) SetState(t float64, s []float64) {
	o.x = s
	if o.sampler.Tick(o.p.H) {
		o.ts = append(o.ts, t)
		o.xs = append(o.xs, s[0])
	}
}

func (o *oscillator) Stop(t float64) bool { return t > o.p.TF }

func (o *oscillator) Func(t float64, s []float64) []float64 { return o.p.rhs(t, s) }

// compareRK4 integrates the oscillator with the RK2 driver and with the
// fourth order reference and tabulates both errors.
func compareRK4(p oscillatorParams) (*Result, error) {
	rk2 := newOscillator(p)
	if _, _, err := integrator.NewRK2(0, p.H, rk2).Solve(); err != nil {
		return nil, err
	}
	rk4 := newOscillator(p)
	if _, _, err := integrator.SolveRK4(0, p.H, rk4); err != nil {
		return nil, err
	}
	res := newResult("t", "x2", "x4", "err2", "err4")
	n := len(rk2.ts)
	if len(rk4.ts) < n {
		n = len(rk4.ts)
	}
	var max2, max4 float64
	for i := 0; i < n; i++ {
		th := math.Sin(p.W * rk2.ts[i])
		e2 := rk2.xs[i] - th
		e4 := rk4.xs[i] - math.Sin(p.W*rk4.ts[i])
		max2 = math.Max(max2, math.Abs(e2))
		max4 = math.Max(max4, math.Abs(e4))
		res.add(rk2.ts[i], rk2.xs[i], rk4.xs[i], e2, e4)
	}
	res.note("largest error: RK2 %.3e, RK4 %.3e", max2, max4)
	res.Plots = []export.Plot{{
		Name: "error", Title: "Integration error",
		XLabel: "Time (s)", YLabel: "Error", Legend: true,
		Lines: []export.Line{res.line("RK2", "t", "err2"), res.line("RK4", "t", "err4")},
	}}
	return res, nil
}

var (
	c1l1 = define("c1l1", "Harmonic oscillator, Euler integration", oscillatorDefaults, oscillatorParams.check,
		func(p oscillatorParams) (*Result, error) { return oscillate(p, integrator.EulerStep, "Euler") })
	c1l2 = define("c1l2", "Harmonic oscillator, second order Runge-Kutta", oscillatorDefaults, oscillatorParams.check,
		func(p oscillatorParams) (*Result, error) { return oscillate(p, integrator.RK2Step, "RK2") })
	c1l3 = define("c1l3", "Second order Runge-Kutta against a fourth order reference", oscillatorDefaults, oscillatorParams.check,
		compareRK4)
)
