package predict

import (
	"math"
	"testing"

	guidance "github.com/int08h/missle-guidance-sub000"
	"github.com/int08h/missle-guidance-sub000/integrator"
	"github.com/int08h/missle-guidance-sub000/orbit"
	"gonum.org/v1/gonum/floats/scalar"
)

// kepler2 is the reference coast of a planar state.
func kepler2(tau float64, r, v guidance.Vector2) guidance.Vector2 {
	s := orbit.EarthFt.Kepler(orbit.State{R: guidance.Vec3(r.X, r.Y, 0), V: guidance.Vec3(v.X, v.Y, 0)}, tau)
	return s.R.XY()
}

func TestPZCircular(t *testing.T) {
	re := guidance.EarthRadiusFt
	r := guidance.Vec2(re, 0)
	vc := math.Sqrt(guidance.GMFt / re)
	quarter := math.Pi / 2 * re / vc
	p := PZ(quarter, r, guidance.Vec2(0, vc))
	if miss := p.R.Sub(guidance.Vec2(0, re)).Norm(); miss >= 10 {
		t.Fatalf("quarter orbit off by %f ft", miss)
	}
	if !scalar.EqualWithinRel(p.V.Norm(), vc, 1e-6) {
		t.Fatalf("speed %f, expected %f", p.V.Norm(), vc)
	}
}

func TestPZKepler(t *testing.T) {
	re := guidance.EarthRadiusFt
	r := guidance.Vec2(re, 0)
	v := guidance.Polar2(20000, 1.2)
	// Not a multiple of the step: the last step is truncated.
	for _, tau := range []float64{123.456, 700, 1000.005} {
		p := PZ(tau, r, v)
		if miss := p.R.Sub(kepler2(tau, r, v)).Norm(); miss >= 10 {
			t.Fatalf("τ=%f: prediction %f ft from the Kepler reference", tau, miss)
		}
	}
	if PZ(0, r, v).R != r {
		t.Fatal("zero horizon should not move the body")
	}
}

func TestPZLambertRoundTrip(t *testing.T) {
	re := guidance.EarthRadiusFt
	ric := guidance.Vec2(re, 0)
	rf := guidance.Vec2(0.8*re, 0.6*re)
	sol := orbit.Lambert2D(ric, rf, 1000, 0, 0.5)
	p := PZ(1000, ric, sol.V)
	if miss := p.R.Sub(rf).Norm(); miss >= 10 {
		t.Fatalf("terminal miss %f ft", miss)
	}
}

func TestBoosterWeight(t *testing.T) {
	for _, b := range []Booster{IRBM, ICBM} {
		s1, s2 := b.Stages[0], b.Stages[1]
		total := s1.PropWeight + s1.StructWeight + s2.PropWeight + s2.StructWeight + b.Payload
		if b.Weight(0) != total {
			t.Fatalf("%s: launch weight %f", b.Name, b.Weight(0))
		}
		if w := b.Weight(s1.Burn); w != s2.PropWeight+s2.StructWeight+b.Payload {
			t.Fatalf("%s: weight after staging %f", b.Name, w)
		}
		if w := b.Weight(b.Burnout() + 100); w != s2.StructWeight+b.Payload {
			t.Fatalf("%s: burnout weight %f", b.Name, w)
		}
		if b.Accel(b.Burnout()) != 0 || b.Accel(-1) != 0 {
			t.Fatalf("%s: thrust outside the burn", b.Name)
		}
		if a := b.Accel(0); a <= guidance.G {
			t.Fatalf("%s: cannot lift off (%f ft/s^2)", b.Name, a)
		}
		// Acceleration grows as propellant burns.
		if b.Accel(s1.Burn-1) <= b.Accel(1) {
			t.Fatalf("%s: first stage acceleration should grow", b.Name)
		}
	}
}

func TestTarget(t *testing.T) {
	if b, err := Target(IRBMTarget); err != nil || b.Name != "IRBM" {
		t.Fatal("IRBM")
	}
	if b, err := Target(ICBMTarget); err != nil || b.Name != "ICBM" {
		t.Fatal("ICBM")
	}
	if _, err := Target(3); err == nil {
		t.Fatal("expected an error for an unknown class")
	}
}

func TestBCoast(t *testing.T) {
	re := guidance.EarthRadiusFt
	r := guidance.Vec2(re+500000, 0)
	v := guidance.Polar2(15000, 1.0)
	// Past burnout the booster is ballistic.
	b := B(IRBM.Burnout()+10, 200, r, v, IRBM)
	p := PZ(200, r, v)
	if d := b.R.Sub(p.R).Norm(); d >= 1e-3 {
		t.Fatalf("coasting booster %f ft from ballistic prediction", d)
	}
}

func TestBBoost(t *testing.T) {
	re := guidance.EarthRadiusFt
	r := guidance.Vec2(re, 0)
	for _, bo := range []Booster{IRBM, ICBM} {
		// Launch at rest: the booster climbs along the local vertical.
		p := B(0, bo.Burnout(), r, guidance.Vector2{}, bo)
		if p.V.Y != 0 || p.R.Y != 0 {
			t.Fatalf("%s: vertical launch left the vertical: %s", bo.Name, p.V)
		}
		s1, s2 := bo.Stages[0], bo.Stages[1]
		w0 := s1.PropWeight + s1.StructWeight + s2.PropWeight + s2.StructWeight + bo.Payload
		ideal := guidance.G * (s1.Isp*math.Log(w0/(w0-s1.PropWeight)) +
			s2.Isp*math.Log((s2.PropWeight+s2.StructWeight+bo.Payload)/(s2.StructWeight+bo.Payload)))
		loss := guidance.G * bo.Burnout()
		if v := p.V.Norm(); v >= ideal || v <= ideal-loss {
			t.Fatalf("%s: burnout speed %f outside (%f, %f)", bo.Name, v, ideal-loss, ideal)
		}
	}
}

func TestG(t *testing.T) {
	re := guidance.EarthRadiusFt
	rm := guidance.Vec2(re, 0)
	vm := guidance.Polar2(12000, 0.9)
	rt := guidance.Vec2(re+300000, 1000000)
	vt := guidance.Polar2(18000, -0.2)
	// A burnt out interceptor coasts like the target.
	start := IRBM.Burnout()
	g := G(start, start+30.5, rm, vm, IRBM, rt, vt, 30.5)
	if d := g.RM.Sub(PZ(30.5, rm, vm).R).Norm(); d >= 1 {
		t.Fatalf("interceptor %f ft from its ballistic prediction", d)
	}
	if d := g.ZEM.Sub(PZ(30.5, rt, vt).R.Sub(g.RM)).Norm(); d >= 1 {
		t.Fatalf("ZEM off by %f ft", d)
	}
	// Boosting moves the interceptor further along its velocity.
	boost := G(0, 30.5, rm, vm, IRBM, rt, vt, 30.5)
	if boost.RM.Sub(rm).Dot(vm) <= g.RM.Sub(rm).Dot(vm) {
		t.Fatal("boosting interceptor should outrun the coasting one")
	}
}

func TestGStep(t *testing.T) {
	re := guidance.EarthRadiusFt
	rm := guidance.Vec2(re, 0)
	vm := guidance.Polar2(3000, 1.2)
	rt := guidance.Vec2(re+300000, 1000000)
	vt := guidance.Polar2(18000, -0.2)
	// Straddle the IRBM staging, where the thrust jumps.
	start := IRBM.Stages[0].Burn - 0.25
	// More than a second to go: the 0.01 s steps of B.
	fine := B(start, 1, rm, vm, IRBM).R
	if d := G(start, start+1, rm, vm, IRBM, rt, vt, 5).RM.Sub(fine).Norm(); d >= 1e-6 {
		t.Fatalf("fine stepping off B by %g ft", d)
	}
	// Within the last second the step is the time to go, the last one cut
	// to end on time.
	x := state2(rm, vm)
	tt := start
	for _, h := range []float64{0.4, 0.4, 0.2} {
		tt, x = integrator.RK2Step(IRBM.boost2, tt, h, x)
	}
	coarse := G(start, start+1, rm, vm, IRBM, rt, vt, 0.4).RM
	if d := coarse.Sub(guidance.Vec2From(x)).Norm(); d >= 1e-6 {
		t.Fatalf("coarse stepping off by %g ft", d)
	}
	if coarse.Sub(fine).Norm() < 1e-4 {
		t.Fatal("the time to go should set the step")
	}
	// The target coasts with the same step.
	g := G(start, start+1, rm, vm, IRBM, rt, vt, 0.4)
	y := state2(rt, vt)
	tt = start
	for _, h := range []float64{0.4, 0.4, 0.2} {
		tt, y = integrator.RK2Step(coast2, tt, h, y)
	}
	if d := g.ZEM.Sub(guidance.Vec2From(y).Sub(coarse)).Norm(); d >= 1e-6 {
		t.Fatalf("ZEM off by %g ft", d)
	}
}

func TestP45(t *testing.T) {
	re := guidance.EarthRadiusFt
	r := guidance.Vec2(re, 0)
	aim := Aim{R: guidance.Polar2(re, 0.15), TF: 500}
	climb := P45(0, IRBM.TUpt, r, guidance.Vector2{}, aim, IRBMTarget)
	if climb.R.Y != 0 || climb.R.X <= re {
		t.Fatalf("the booster should climb vertically first: %s", climb.R)
	}
	p := P45(0, aim.TF, r, guidance.Vector2{}, aim, IRBMTarget)
	if miss := p.R.Sub(aim.R).Norm(); miss >= 5000 {
		t.Fatalf("Lambert steered booster misses the aim point by %f ft", miss)
	}
	// An unknown class coasts.
	v := guidance.Vec2(0, 100)
	if P45(0, 10, r, v, aim, 7) != PZ(10, r, v) {
		t.Fatal("unknown class should coast")
	}
}

func TestP44(t *testing.T) {
	re := guidance.EarthRadiusFt
	r := guidance.Vec3(re, 0, 0)
	rf := guidance.Vec3(0.3*re, 1.1*re, 0.4*re)
	v := guidance.Vec3(0, 1000, 0)
	p := P44(1200, r, v, 1200, rf)
	if miss := p.R.Sub(rf).Norm(); miss >= 100 {
		t.Fatalf("terminal miss %f ft", miss)
	}
	// Halfway the body is on the Lambert arc.
	half := P44(600, r, v, 1200, rf)
	sol := orbit.Lambert3D(r, rf, 1200, orbit.ShortWay)
	ref := orbit.EarthFt.Kepler(orbit.State{R: r, V: sol.V}, 600)
	if d := half.R.Sub(ref.R).Norm(); d >= 10 {
		t.Fatalf("midcourse %f ft off the Lambert arc", d)
	}
	// A retrograde velocity selects the long way.
	back := P44(4000, r, v.Scale(-1), 4000, rf)
	if miss := back.R.Sub(rf).Norm(); miss >= 100 {
		t.Fatalf("long way terminal miss %f ft", miss)
	}
	if back.R.Cross(back.V).Dot(r.Cross(rf)) >= 0 {
		t.Fatal("long way should travel in the opposite sense")
	}
}

func TestInitialPZ(t *testing.T) {
	re := guidance.EarthRadiusFt
	r0 := guidance.Vec2(re+200000, 0)
	v0 := guidance.Polar2(20000, math.Pi+0.4)
	hd := 100000.
	rv := InitialPZ(hd, r0, v0, 1000)
	h := guidance.Altitude(rv.R)
	if h > hd || h < hd-rv.V.Norm()*Step {
		t.Fatalf("crossing altitude %f", h)
	}
	if rv.T <= 0 || rv.T > 20 {
		t.Fatalf("crossing time %f", rv.T)
	}
	vac := InitialPZ(hd, r0, v0, 0)
	if rv.V.Norm() >= vac.V.Norm() {
		t.Fatal("drag should slow the vehicle")
	}
	// Already below the altitude.
	if below := InitialPZ(hd, guidance.Vec2(re+50000, 0), v0, 1000); below.T != 0 {
		t.Fatalf("expected an immediate crossing, got %f", below.T)
	}
}

func TestLaunchLogic(t *testing.T) {
	rm := guidance.Vec2(0, 0)
	rt := guidance.Vec2(2000, 1000)
	vt := guidance.Vec2(-100, 0)
	vm := 1000.
	l := LaunchLogic(rm, rt, vt, vm)
	if !l.Found {
		t.Fatal("no solution found")
	}
	if l.Tau < 1.5 || l.Tau > 3 {
		t.Fatalf("collision time %f", l.Tau)
	}
	if !scalar.EqualWithinRel(l.V.Norm(), vm, 1e-12) || l.V.X <= 0 {
		t.Fatalf("launch velocity %s", l.V)
	}
	rtf := rt.Add(vt.Scale(l.Tau)).Add(guidance.Vec2(0, -0.5*guidance.G*l.Tau*l.Tau))
	if miss := rm.Add(l.V.Scale(l.Tau)).Sub(rtf).Norm(); miss > vm*launchStep+1 {
		t.Fatalf("missile passes %f ft from the target", miss)
	}
	// Target behind the launcher.
	left := LaunchLogic(rm, guidance.Vec2(-2000, 1000), guidance.Vector2{}, vm)
	if !left.Found || left.V.X >= 0 {
		t.Fatalf("expected a westward launch: %+v", left)
	}
	if far := LaunchLogic(rm, guidance.Vec2(1e6, 0), guidance.Vector2{}, vm); far.Found {
		t.Fatal("target out of reach")
	}
}
