package lesson

import (
	"fmt"
	"math"

	guidance "github.com/int08h/missle-guidance-sub000"
	"github.com/int08h/missle-guidance-sub000/export"
	"github.com/int08h/missle-guidance-sub000/predict"
)

// launchState returns the state of a booster leaving the pad at (R, 0)
// with speed v0 (ft/s) at elevation gamma (deg) toward positive longitudes.
func launchState(v0, gamma float64) (guidance.Vector2, guidance.Vector2) {
	return guidance.Vec2(guidance.EarthRadiusFt, 0), guidance.Polar2(v0, (90-gamma)*guidance.Deg2Rad)
}

// downrange returns the ground range (nmi) and altitude (nmi) of r.
func downrange(r guidance.Vector2) (float64, float64) {
	return guidance.EarthRadiusFt * r.Angle() / guidance.FtPerNmi, guidance.Altitude(r) / guidance.FtPerNmi
}

// boosterParams describe gravity turn flights of both threat classes and
// a Lambert steered flight of one of them.
type boosterParams struct {
	V0      float64 `mapstructure:"v0"`    // launch kick speed (ft/s)
	Gamma   float64 `mapstructure:"gamma"` // launch elevation (deg)
	Sample  float64 `mapstructure:"sample"`
	MaxTime float64 `mapstructure:"maxtime"`
	Class   int     `mapstructure:"class"`   // class of the steered flight
	AimLon  float64 `mapstructure:"aim_lon"` // rad
	AimTF   float64 `mapstructure:"aim_tf"`  // s
}

func boosterDefaults() boosterParams {
	return boosterParams{
		V0: 100, Gamma: 85, Sample: 10, MaxTime: 3000,
		Class: predict.IRBMTarget, AimLon: 0.15, AimTF: 500,
	}
}

func (p boosterParams) check() error {
	if _, err := predict.Target(p.Class); err != nil {
		return err
	}
	return positive("v0 gamma sample maxtime aim_lon aim_tf", p.V0, p.Gamma, p.Sample, p.MaxTime, p.AimLon, p.AimTF)
}

// boosters flies both classes with B until impact, then flies the steered
// class with P45 toward its aim point.
func boosters(p boosterParams) (*Result, error) {
	res := newResult("class", "t", "down", "alt")
	var lines []export.Line
	for _, class := range []int{predict.IRBMTarget, predict.ICBMTarget} {
		b, _ := predict.Target(class)
		r, v := launchState(p.V0, p.Gamma)
		line := export.Line{Label: b.Name}
		apogee := 0.
		for t := 0.; t < p.MaxTime; t += p.Sample {
			pt := predict.B(t, p.Sample, r, v, b)
			r, v = pt.R, pt.V
			d, h := downrange(r)
			res.add(float64(class), t+p.Sample, d, h)
			line.X = append(line.X, d)
			line.Y = append(line.Y, h)
			apogee = math.Max(apogee, h)
			if h < 0 {
				break
			}
		}
		d, h := downrange(r)
		res.note("%s: burnout at %g s, apogee %.1f nmi, range %.1f nmi", b.Name, b.Burnout(), apogee, d)
		if h >= 0 {
			res.note("%s: time cap of %g s reached before impact", b.Name, p.MaxTime)
		}
		lines = append(lines, line)
	}

	b, _ := predict.Target(p.Class)
	re := guidance.EarthRadiusFt
	aim := predict.Aim{R: guidance.Polar2(re, p.AimLon), TF: p.AimTF}
	r := guidance.Vec2(re, 0)
	var v guidance.Vector2
	steered := export.Line{Label: b.Name + " Lambert steered"}
	for t := 0.; t < aim.TF-1e-9; t += p.Sample {
		dt := math.Min(p.Sample, aim.TF-t)
		pt := predict.P45(t, dt, r, v, aim, p.Class)
		r, v = pt.R, pt.V
		d, h := downrange(r)
		steered.X = append(steered.X, d)
		steered.Y = append(steered.Y, h)
	}
	lines = append(lines, steered)
	res.Miss = r.Sub(aim.R).Norm()
	res.note("%s Lambert steered: %.1f ft from the aim point at %g s", b.Name, res.Miss, aim.TF)
	res.Plots = []export.Plot{{
		Name: "trajectory", Title: "Booster trajectories",
		XLabel: "Downrange (nmi)", YLabel: "Altitude (nmi)", Legend: true,
		Lines: lines,
	}}
	return res, nil
}

// reentryParams describe a reentry vehicle at Alt0 (ft) with speed V0 and
// flight path angle Gamma (deg, negative down), followed down to HMin for
// each ballistic coefficient.
type reentryParams struct {
	Alt0  float64   `mapstructure:"alt0"`
	V0    float64   `mapstructure:"v0"`
	Gamma float64   `mapstructure:"gamma"`
	HStep float64   `mapstructure:"hstep"`
	HMin  float64   `mapstructure:"hmin"`
	Betas []float64 `mapstructure:"betas"` // lb/ft^2, 0 for vacuum
}

func reentryDefaults() reentryParams {
	return reentryParams{
		Alt0: 200000, V0: 20000, Gamma: -45, HStep: 10000, HMin: 10000,
		Betas: []float64{0, 5000, 2000, 1000, 500},
	}
}

func (p reentryParams) check() error {
	if err := positive("alt0 v0 hstep", p.Alt0, p.V0, p.HStep); err != nil {
		return err
	}
	if p.HMin >= p.Alt0 {
		return fmt.Errorf("hmin %g is not below alt0 %g", p.HMin, p.Alt0)
	}
	if len(p.Betas) == 0 {
		return fmt.Errorf("no ballistic coefficient")
	}
	return nil
}

// reentry chains InitialPZ from one altitude crossing to the next.
func reentry(p reentryParams) (*Result, error) {
	res := newResult("beta", "h", "t", "v", "gamma")
	var lines []export.Line
	for _, beta := range p.Betas {
		r := guidance.Vec2(guidance.EarthRadiusFt+p.Alt0, 0)
		v := guidance.Polar2(p.V0, (90-p.Gamma)*guidance.Deg2Rad)
		t := 0.
		label := fmt.Sprintf("β=%g", beta)
		if beta <= 0 {
			label = "Vacuum"
		}
		line := export.Line{Label: label}
		for h := p.Alt0 - p.HStep; h >= p.HMin; h -= p.HStep {
			c := predict.InitialPZ(h, r, v, beta)
			r, v, t = c.R, c.V, t+c.T
			// Flight path angle above the local horizontal.
			γ := math.Asin(r.Unit().Dot(v.Unit())) * guidance.Rad2Deg
			res.add(beta, guidance.Altitude(r), t, v.Norm(), γ)
			line.X = append(line.X, v.Norm())
			line.Y = append(line.Y, guidance.Altitude(r))
		}
		res.note("%s: %.0f ft/s after %.2f s", label, v.Norm(), t)
		lines = append(lines, line)
	}
	res.Plots = []export.Plot{{
		Name: "speed", Title: "Reentry vehicle speed",
		XLabel: "Speed (ft/s)", YLabel: "Altitude (ft)", Legend: true,
		Lines: lines,
	}}
	return res, nil
}

// zemParams describe a boosting interceptor launched against a ballistic
// reentry vehicle.
type zemParams struct {
	Class  int     `mapstructure:"class"` // interceptor booster
	V0     float64 `mapstructure:"v0"`
	Gamma  float64 `mapstructure:"gamma"`
	TDown  float64 `mapstructure:"tdown"`  // target downrange (ft)
	TAlt   float64 `mapstructure:"talt"`   // target altitude (ft)
	TV     float64 `mapstructure:"tv"`     // target speed (ft/s)
	TGamma float64 `mapstructure:"tgamma"` // target flight path angle (deg, negative down)
	TF     float64 `mapstructure:"tf"`     // prediction horizon (s)
	Sample float64 `mapstructure:"sample"`
}

func zemDefaults() zemParams {
	return zemParams{
		Class: predict.IRBMTarget, V0: 100, Gamma: 85,
		TDown: 1000000, TAlt: 300000, TV: 18000, TGamma: -30,
		TF: 60, Sample: 1,
	}
}

func (p zemParams) check() error {
	if _, err := predict.Target(p.Class); err != nil {
		return err
	}
	return positive("v0 gamma tv tf sample", p.V0, p.Gamma, p.TV, p.TF, p.Sample)
}

// target returns the initial state of the reentry vehicle, flying back
// toward the launch site.
func (p zemParams) target() (guidance.Vector2, guidance.Vector2) {
	θ := p.TDown / guidance.EarthRadiusFt
	up := guidance.Polar2(1, θ)
	back := guidance.Polar2(1, θ-math.Pi/2)
	γ := p.TGamma * guidance.Deg2Rad
	r := up.Scale(guidance.EarthRadiusFt + p.TAlt)
	v := back.Scale(p.TV * math.Cos(γ)).Add(up.Scale(p.TV * math.Sin(γ)))
	return r, v
}

// zem flies the interceptor with B and the target with PZ and, at every
// sample, predicts with G the zero effort miss at the horizon.
func zem(p zemParams) (*Result, error) {
	b, _ := predict.Target(p.Class)
	rm, vm := launchState(p.V0, p.Gamma)
	rt, vt := p.target()
	res := newResult("t", "zem1", "zem2", "zem", "alt")
	for t := 0.; ; t += p.Sample {
		if t > p.TF {
			t = p.TF
		}
		g := predict.G(t, p.TF, rm, vm, b, rt, vt, p.TF-t)
		res.add(t, g.ZEM.X, g.ZEM.Y, g.ZEM.Norm(), guidance.Altitude(rm))
		if t >= p.TF-1e-9 {
			break
		}
		dt := math.Min(p.Sample, p.TF-t)
		m := predict.B(t, dt, rm, vm, b)
		tg := predict.PZ(dt, rt, vt)
		rm, vm, rt, vt = m.R, m.V, tg.R, tg.V
	}
	first := res.Series.Rows[0]
	res.Miss = rt.Sub(rm).Norm()
	res.note("predicted separation at %g s: %.0f ft, flown %.0f ft", p.TF, first[3], res.Miss)
	res.Plots = []export.Plot{{
		Name: "zem", Title: "Zero effort miss",
		XLabel: "Time (s)", YLabel: "ZEM (ft)", Legend: true,
		Lines: []export.Line{res.line("ZEM 1", "t", "zem1"), res.line("ZEM 2", "t", "zem2")},
	}}
	return res, nil
}

// collisionParams describe a flat earth launch against targets spread in
// downrange at a fixed altitude.
type collisionParams struct {
	VM     float64 `mapstructure:"vm"`
	TAlt   float64 `mapstructure:"talt"`
	TVX    float64 `mapstructure:"tvx"`
	TVY    float64 `mapstructure:"tvy"`
	XStart float64 `mapstructure:"xstart"`
	XStep  float64 `mapstructure:"xstep"`
	XEnd   float64 `mapstructure:"xend"`
}

func collisionDefaults() collisionParams {
	return collisionParams{VM: 1000, TAlt: 1000, TVX: -100, XStart: 1000, XStep: 1000, XEnd: 12000}
}

func (p collisionParams) check() error {
	if err := positive("vm xstep", p.VM, p.XStep); err != nil {
		return err
	}
	if p.XEnd < p.XStart {
		return fmt.Errorf("xend %g is before xstart %g", p.XEnd, p.XStart)
	}
	return nil
}

// collision solves the launch logic for each target position and flies the
// straight line missile to the collision time.
func collision(p collisionParams) (*Result, error) {
	res := newResult("x", "found", "tau", "vx", "vy", "elev", "miss")
	rm := guidance.Vector2{}
	vt := guidance.Vec2(p.TVX, p.TVY)
	var found int
	for x := p.XStart; x <= p.XEnd+1e-9; x += p.XStep {
		rt := guidance.Vec2(x, p.TAlt)
		l := predict.LaunchLogic(rm, rt, vt, p.VM)
		if !l.Found {
			res.add(x, 0, 0, 0, 0, 0, 0)
			continue
		}
		found++
		rtf := rt.Add(vt.Scale(l.Tau)).Add(guidance.Vec2(0, -0.5*guidance.G*l.Tau*l.Tau))
		miss := rm.Add(l.V.Scale(l.Tau)).Sub(rtf).Norm()
		res.Miss = math.Max(res.Miss, miss)
		res.add(x, 1, l.Tau, l.V.X, l.V.Y, l.V.Angle()*guidance.Rad2Deg, miss)
	}
	res.note("%d of %d targets reachable, largest miss %.1f ft", found, res.Series.Len(), res.Miss)
	res.Plots = []export.Plot{{
		Name: "elevation", Title: "Launch elevation",
		XLabel: "Target downrange (ft)", YLabel: "Elevation (deg)",
		Lines: []export.Line{res.line("Elevation", "x", "elev")},
	}}
	return res, nil
}

var (
	c15l1 = define("c15l1", "Two-stage booster trajectories", boosterDefaults, boosterParams.check, boosters)
	c16l1 = define("c16l1", "Reentry vehicle altitude crossings", reentryDefaults, reentryParams.check, reentry)
	c17l1 = define("c17l1", "Zero effort miss of a boosting interceptor", zemDefaults, zemParams.check, zem)
	c18l1 = define("c18l1", "Launch logic collision solution", collisionDefaults, collisionParams.check, collision)
)
