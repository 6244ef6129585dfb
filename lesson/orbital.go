package lesson

import (
	"fmt"
	"math"

	guidance "github.com/int08h/missle-guidance-sub000"
	"github.com/int08h/missle-guidance-sub000/export"
	"github.com/int08h/missle-guidance-sub000/integrator"
	"github.com/int08h/missle-guidance-sub000/orbit"
	"github.com/int08h/missle-guidance-sub000/predict"
)

// circularParams describe a circular orbit propagated with Kepler (km).
type circularParams struct {
	Alt    float64 `mapstructure:"alt"`    // altitude (nmi)
	Orbits float64 `mapstructure:"orbits"` // number of periods
	Sample float64 `mapstructure:"sample"` // s
}

func circularDefaults() circularParams {
	return circularParams{Alt: 1000, Orbits: 1, Sample: 60}
}

func (p circularParams) check() error {
	return positive("alt orbits sample", p.Alt, p.Orbits, p.Sample)
}

func circular(p circularParams) (*Result, error) {
	r := guidance.EarthRadiusKm + guidance.Km(p.Alt*guidance.FtPerNmi)
	s0 := orbit.State{R: guidance.Vec3(r, 0, 0), V: guidance.Vec3(0, math.Sqrt(guidance.GMKm/r), 0)}
	period := 2 * math.Pi * math.Sqrt(r*r*r/guidance.GMKm)
	tf := p.Orbits * period
	res := newResult("t", "x", "y", "vx", "vy", "r")
	n := int(math.Ceil(tf / p.Sample))
	for i := 0; i <= n; i++ {
		t := math.Min(float64(i)*p.Sample, tf)
		s := orbit.Kepler(s0, t)
		res.add(t, s.R.X, s.R.Y, s.V.X, s.V.Y, s.R.Norm())
	}
	end := orbit.Kepler(s0, tf)
	dr := end.R.Sub(s0.R).Norm()
	dv := end.V.Sub(s0.V).Norm()
	res.Miss = guidance.Ft(dr)
	res.note("period %.2f s, after %g orbits: %.3e km, %.3e km/s", period, p.Orbits, dr, dv)
	res.Plots = []export.Plot{{
		Name: "orbit", Title: "Kepler propagation",
		XLabel: "x (km)", YLabel: "y (km)",
		Lines: []export.Line{res.line("Orbit", "x", "y")},
	}}
	return res, nil
}

// transferParams describe a planar transfer between two earth-centred
// points: an initial point on the surface at longitude 0 and a final point
// at longitude LonF and radius RF (earth radii).
type transferParams struct {
	RF     float64 `mapstructure:"rf"`
	LonF   float64 `mapstructure:"lonf"` // rad
	Tau    float64 `mapstructure:"tau"`  // s
	Sample float64 `mapstructure:"sample"`
}

func transferDefaults() transferParams {
	return transferParams{RF: 1, LonF: math.Atan2(0.6, 0.8), Tau: 1000, Sample: 10}
}

func (p transferParams) check() error {
	if err := positive("rf tau sample", p.RF, p.Tau, p.Sample); err != nil {
		return err
	}
	if math.Abs(math.Mod(p.LonF, 2*math.Pi)) < 1e-9 {
		return fmt.Errorf("final longitude %g is on the initial point", p.LonF)
	}
	return nil
}

func (p transferParams) ends() (ric, rf guidance.Vector2) {
	re := guidance.EarthRadiusFt
	return guidance.Vec2(re, 0), guidance.Polar2(p.RF*re, p.LonF)
}

// sweep tabulates the OLambert trace.
func sweep(p transferParams) (*Result, error) {
	ric, rf := p.ends()
	v, tr := orbit.OLambert(ric, rf, p.Tau, 0, p.LonF)
	res := newResult("n", "gamma", "tf", "vx", "vy")
	for i := 0; i < tr.Count; i++ {
		vi := tr.Velocities[i]
		res.add(float64(i+1), tr.Gammas[i]*guidance.Rad2Deg, tr.FlightTimes[i], vi.X, vi.Y)
	}
	if tr.Count == 0 {
		return nil, fmt.Errorf("%w: no transfer reaches the final point in %g s", ErrBadParams, p.Tau)
	}
	res.Miss = predict.PZ(p.Tau, ric, v).R.Sub(rf).Norm()
	res.note("%d recorded trials, last flight time %.4f s, speed %.2f ft/s", tr.Count, tr.FlightTimes[tr.Count-1], v.Norm())
	res.Plots = []export.Plot{{
		Name: "sweep", Title: "Flight time against flight path angle",
		XLabel: "Flight path angle (deg)", YLabel: "Flight time (s)",
		Lines: []export.Line{res.line("Trials", "gamma", "tf")},
	}}
	return res, nil
}

// intercept solves the transfer with Lambert2D, flies it with RK2 and
// checks the end point with PZ.
func intercept(p transferParams) (*Result, error) {
	ric, rf := p.ends()
	sol := orbit.Lambert2D(ric, rf, p.Tau, 0, p.LonF)
	res := newResult("t", "x", "y", "alt")
	coast := func(_ float64, x []float64) []float64 {
		a := guidance.Gravity2(guidance.Vec2From(x))
		return []float64{x[2], x[3], a.X, a.Y}
	}
	x := []float64{ric.X, ric.Y, sol.V.X, sol.V.Y}
	t := 0.
	res.add(t, x[0], x[1], 0)
	sampler := integrator.NewSampler(p.Sample)
	for t < p.Tau-1e-5 {
		h := math.Min(predict.Step, p.Tau-t)
		t, x = integrator.RK2Step(coast, t, h, x)
		if sampler.Tick(h) || t >= p.Tau-1e-5 {
			r := guidance.Vec2From(x)
			res.add(t, r.X, r.Y, guidance.Altitude(r))
		}
	}
	end := predict.PZ(p.Tau, ric, sol.V)
	res.Miss = end.R.Sub(rf).Norm()
	res.note("speed %.2f ft/s, flight path angle %.4f deg, %d iterations, converged %v",
		sol.V.Norm(), sol.Gamma*guidance.Rad2Deg, sol.Iterations, sol.Converged)
	res.note("terminal miss %.3f ft", res.Miss)
	res.Plots = []export.Plot{{
		Name: "trajectory", Title: "Lambert transfer",
		XLabel: "x (ft)", YLabel: "y (ft)",
		Lines: []export.Line{res.line("Transfer", "x", "y")},
	}}
	return res, nil
}

// spatialParams describe a short way and a long way spatial transfer from
// (R, 0, 0); target positions are in earth radii.
type spatialParams struct {
	Short   [3]float64 `mapstructure:"short"`
	Tau     float64    `mapstructure:"tau"`
	Long    [3]float64 `mapstructure:"long"`
	TauLong float64    `mapstructure:"tau_long"`
	Points  int        `mapstructure:"points"` // samples per arc
}

func spatialDefaults() spatialParams {
	return spatialParams{
		Short: [3]float64{0, 1.5, 0}, Tau: 1000,
		Long: [3]float64{0, 1.2, 0}, TauLong: 5000,
		Points: 50,
	}
}

func (p spatialParams) check() error {
	if p.Points < 2 {
		return fmt.Errorf("points must be at least 2, got %d", p.Points)
	}
	return positive("tau tau_long", p.Tau, p.TauLong)
}

// spatial solves both branches with Lambert3D and cross-checks the
// solutions with Kepler and P44.
func spatial(p spatialParams) (*Result, error) {
	re := guidance.EarthRadiusFt
	ric := guidance.Vec3(re, 0, 0)
	res := newResult("branch", "t", "x", "y", "z")
	var lines []export.Line
	cases := []struct {
		sw  orbit.Branch
		rf  guidance.Vector3
		tau float64
	}{
		{orbit.ShortWay, guidance.Vec3(p.Short[0], p.Short[1], p.Short[2]).Scale(re), p.Tau},
		{orbit.LongWay, guidance.Vec3(p.Long[0], p.Long[1], p.Long[2]).Scale(re), p.TauLong},
	}
	for _, c := range cases {
		sol := orbit.Lambert3D(ric, c.rf, c.tau, c.sw)
		s0 := orbit.State{R: ric, V: sol.V}
		line := export.Line{Label: c.sw.String()}
		for i := 0; i < p.Points; i++ {
			t := c.tau * float64(i) / float64(p.Points-1)
			s := orbit.EarthFt.Kepler(s0, t)
			res.add(float64(c.sw), t, s.R.X, s.R.Y, s.R.Z)
			line.X = append(line.X, s.R.X)
			line.Y = append(line.Y, s.R.Y)
		}
		lines = append(lines, line)
		kepler := orbit.EarthFt.Kepler(s0, c.tau).R.Sub(c.rf).Norm()
		// P44 picks the branch from the sense of the velocity.
		v := ric.Cross(c.rf).Cross(ric).Unit()
		if c.sw == orbit.LongWay {
			v = v.Scale(-1)
		}
		p44 := predict.P44(c.tau, ric, v, c.tau, c.rf).R.Sub(c.rf).Norm()
		res.Miss = math.Max(res.Miss, math.Max(kepler, p44))
		res.note("%s: v=%s, %d iterations, Kepler miss %.3f ft, P44 miss %.3f ft",
			c.sw, sol.V, sol.Iterations, kepler, p44)
	}
	res.Plots = []export.Plot{{
		Name: "transfer", Title: "Spatial Lambert transfers",
		XLabel: "x (ft)", YLabel: "y (ft)", Legend: true,
		Lines: lines,
	}}
	return res, nil
}

var (
	c13l1 = define("c13l1", "Kepler propagation of a circular orbit", circularDefaults, circularParams.check, circular)
	c14l1 = define("c14l1", "Lambert flight path angle sweep", transferDefaults, transferParams.check, sweep)
	c14l2 = define("c14l2", "Lambert intercept verified by prediction", transferDefaults, transferParams.check, intercept)
	c14l3 = define("c14l3", "Spatial Lambert on both branches", spatialDefaults, spatialParams.check, spatial)
)
