package integrator

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

const ω = 2.0

func oscillator(t float64, x []float64) []float64 {
	return []float64{x[1], -ω * ω * x[0]}
}

// integrateOscillator returns the absolute error at t=10.
func integrateOscillator(h float64) float64 {
	x := []float64{0, ω}
	t := 0.0
	steps := int(math.Round(10 / h))
	for i := 0; i < steps; i++ {
		t, x = RK2Step(oscillator, t, h, x)
	}
	return math.Abs(x[0] - math.Sin(ω*t))
}

func TestRK2Oscillator(t *testing.T) {
	x := []float64{0, ω}
	tm := 0.0
	h := 0.01
	for tm <= 10 {
		tm, x = RK2Step(oscillator, tm, h, x)
		if err := math.Abs(x[0] - math.Sin(ω*tm)); err >= 1e-2 {
			t.Fatalf("error %g at t=%f", err, tm)
		}
	}
}

func TestRK2Order(t *testing.T) {
	h := 0.01
	prev := integrateOscillator(h)
	for i := 0; i < 5; i++ {
		h /= 2
		cur := integrateOscillator(h)
		ratio := prev / cur
		if ratio < 3.2 || ratio > 4.8 {
			t.Fatalf("error ratio %f at h=%g is not second order", ratio, h)
		}
		prev = cur
	}
}

func TestRK2DoesNotMutate(t *testing.T) {
	x := []float64{1, 2}
	orig := []float64{1, 2}
	_, next := RK2Step(oscillator, 0, 0.1, x)
	if !floats.Equal(x, orig) {
		t.Fatal("RK2Step modified its input")
	}
	if floats.Equal(next, orig) {
		t.Fatal("RK2Step did not advance")
	}
	_, _ = EulerStep(oscillator, 0, 0.1, x)
	if !floats.Equal(x, orig) {
		t.Fatal("EulerStep modified its input")
	}
}

func TestRK2TwoPass(t *testing.T) {
	// dx/dt = t: the corrector uses the derivative at t+h, so the exact
	// quadrature ½h(t + t+h) is recovered.
	f := func(t float64, x []float64) []float64 { return []float64{t} }
	tm, x := RK2Step(f, 1, 0.5, []float64{0})
	if tm != 1.5 || !scalar.EqualWithinAbs(x[0], 0.5*0.5*(1+1.5), 1e-15) {
		t.Fatalf("t=%f x=%f", tm, x[0])
	}
	// dx/dt = x: corrector evaluated at the predicted state.
	g := func(t float64, x []float64) []float64 { return []float64{x[0]} }
	h := 0.1
	_, y := RK2Step(g, 0, h, []float64{1})
	exp := .5*(1+(1+h)) + .5*h*(1+h)
	if !scalar.EqualWithinAbs(y[0], exp, 1e-15) {
		t.Fatalf("got %f exp %f", y[0], exp)
	}
}

func TestEulerFirstSample(t *testing.T) {
	x := []float64{0, ω}
	tm := 0.0
	for i := 0; i < 10; i++ {
		tm, x = EulerStep(oscillator, tm, 0.01, x)
	}
	if !scalar.EqualWithinAbs(x[0], 0.1974, 3e-3) {
		t.Fatalf("x(0.1)=%f", x[0])
	}
}

func TestSamplerRegularity(t *testing.T) {
	for _, h := range []float64{0.01, 0.0002, 0.001, 0.005} {
		s := NewSampler(0.1)
		tm := 0.0
		i := 0
		for tm < 50 {
			tm += h
			if s.Tick(h) {
				i++
				if math.Abs(tm-float64(i)*0.1) >= h {
					t.Fatalf("h=%g sample %d at %f", h, i, tm)
				}
			}
		}
		if i < 490 {
			t.Fatalf("h=%g only %d samples recorded", h, i)
		}
	}
}

type oscIntegrable struct {
	x       []float64
	end     float64
	history []float64
	small   float64
}

func (o *oscIntegrable) GetState() []float64 { return o.x }
func (o *oscIntegrable) SetState(t float64, s []float64) {
	o.x = s
	o.history = append(o.history, t)
}
func (o *oscIntegrable) Stop(t float64) bool                   { return t >= o.end-1e-9 }
func (o *oscIntegrable) Func(t float64, s []float64) []float64 { return oscillator(t, s) }

type adaptiveOsc struct {
	oscIntegrable
}

func (a *adaptiveOsc) NextStep(t float64, s []float64) float64 {
	if t >= 1-1e-9 {
		return a.small
	}
	return 0.01
}

func TestRK2Driver(t *testing.T) {
	o := &oscIntegrable{x: []float64{0, ω}, end: 2}
	n, tf, err := NewRK2(0, 0.01, o).Solve()
	if err != nil {
		t.Fatal(err)
	}
	if n != 200 || !scalar.EqualWithinAbs(tf, 2, 1e-9) {
		t.Fatalf("n=%d tf=%f", n, tf)
	}
	if !scalar.EqualWithinAbs(o.x[0], math.Sin(ω*tf), 1e-3) {
		t.Fatalf("x=%f", o.x[0])
	}

	a := &adaptiveOsc{oscIntegrable{x: []float64{0, ω}, end: 1.5, small: 0.001}}
	n, _, _ = NewRK2(0, 0.01, a).Solve()
	if n < 590 || n > 610 {
		t.Fatalf("adaptive step not honored: %d iterations", n)
	}
}

func TestRK2Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on non positive step")
		}
	}()
	NewRK2(0, 0, &oscIntegrable{})
}

func TestRK4Reference(t *testing.T) {
	o := &oscIntegrable{x: []float64{0, ω}, end: 10}
	_, tf, err := SolveRK4(0, 0.01, o)
	if err != nil {
		t.Fatal(err)
	}
	ref := math.Abs(o.x[0] - math.Sin(ω*tf))
	rk2 := integrateOscillator(0.01)
	if ref >= rk2 {
		t.Fatalf("fourth order error %g should be below RK2 error %g", ref, rk2)
	}
}
