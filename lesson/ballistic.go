package lesson

import (
	"math"

	guidance "github.com/int08h/missle-guidance-sub000"
	"github.com/int08h/missle-guidance-sub000/export"
	"github.com/int08h/missle-guidance-sub000/integrator"
)

// ballisticParams describe a shell fired over a flat earth through the
// exponential atmosphere.
type ballisticParams struct {
	VM      float64 `mapstructure:"vm"`    // launch speed (ft/s)
	Beta    float64 `mapstructure:"beta"`  // ballistic coefficient (lb/ft^2), 0 for vacuum
	Gamma   float64 `mapstructure:"gamma"` // launch angle (deg)
	H       float64 `mapstructure:"h"`
	Sample  float64 `mapstructure:"sample"`
	MaxTime float64 `mapstructure:"maxtime"`
}

func ballisticDefaults() ballisticParams {
	return ballisticParams{VM: 3000, Beta: 1000, Gamma: 45, H: 0.01, Sample: 0.1, MaxTime: 1000}
}

func (p ballisticParams) check() error {
	return positive("vm h sample maxtime", p.VM, p.H, p.Sample, p.MaxTime)
}

// fly integrates the shell until it hits the ground and returns the sampled
// (t, x, y, v) rows, the last one being the impact.
func (p ballisticParams) fly(beta float64) [][]float64 {
	rhs := func(_ float64, x []float64) []float64 {
		v := guidance.Vec2(x[2], x[3])
		a := guidance.DragAccel(x[1], v, beta).Add(guidance.Vec2(0, -guidance.G))
		return []float64{v.X, v.Y, a.X, a.Y}
	}
	v0 := guidance.Polar2(p.VM, p.Gamma*guidance.Deg2Rad)
	x := []float64{0, 0, v0.X, v0.Y}
	t := 0.
	sampler := integrator.NewSampler(p.Sample)
	var rows [][]float64
	sampled := false
	for x[1] >= 0 && t < p.MaxTime {
		t, x = integrator.RK2Step(rhs, t, p.H, x)
		if sampled = sampler.Tick(p.H); sampled {
			rows = append(rows, []float64{t, x[0], x[1], math.Hypot(x[2], x[3])})
		}
	}
	if !sampled {
		rows = append(rows, []float64{t, x[0], x[1], math.Hypot(x[2], x[3])})
	}
	return rows
}

// ballistic flies the shell with drag and in vacuum.
func ballistic(p ballisticParams) (*Result, error) {
	drag := p.fly(p.Beta)
	vac := p.fly(0)
	res := newResult("t", "x", "y", "v")
	for _, row := range drag {
		res.add(row...)
	}
	impact := drag[len(drag)-1]
	vacImpact := vac[len(vac)-1]
	res.Miss = math.Abs(impact[2])
	res.note("impact after %.2f s at %.0f ft downrange, %.0f ft in vacuum", impact[0], impact[1], vacImpact[1])
	if impact[2] >= 0 {
		res.note("time cap of %g s reached before impact", p.MaxTime)
	}
	vacLine := export.Line{Label: "Vacuum"}
	for _, row := range vac {
		vacLine.X = append(vacLine.X, row[1])
		vacLine.Y = append(vacLine.Y, row[2])
	}
	res.Plots = []export.Plot{{
		Name: "trajectory", Title: "Ballistic trajectory",
		XLabel: "Downrange (ft)", YLabel: "Altitude (ft)", Legend: true,
		Lines: []export.Line{res.line("Drag", "x", "y"), vacLine},
	}}
	return res, nil
}

var c10l1 = define("c10l1", "Ballistic flight with drag", ballisticDefaults, ballisticParams.check, ballistic)
