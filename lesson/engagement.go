package lesson

import (
	"fmt"
	"math/rand/v2"

	"github.com/int08h/missle-guidance-sub000/engage"
	"github.com/int08h/missle-guidance-sub000/export"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

func checkEngagement(p engage.Params) error {
	if err := positive("vm vt sample maxtime", p.VM, p.VT, p.Sample, p.MaxTime); err != nil {
		return err
	}
	if p.VT > p.VM {
		return fmt.Errorf("target speed %g exceeds the missile speed %g", p.VT, p.VM)
	}
	return nil
}

// engagement runs the proportional navigation engagement and tabulates
// its samples.
func engagement(p engage.Params) (*Result, error) {
	run := engage.Run(p)
	res := newResult("t", "rt1", "rt2", "rm1", "rm2", "ncg", "rtm")
	for _, s := range run.Samples {
		res.add(s.T, s.RT.X, s.RT.Y, s.RM.X, s.RM.Y, s.NcG, s.RTM)
	}
	res.Miss = run.MinRange()
	res.note("miss %.2f ft at %.4f s (%d steps, %d fine)", res.Miss, run.TF, run.Steps, run.FineSteps)
	if run.Capped {
		res.note("time cap of %g s reached", p.MaxTime)
	}
	res.Plots = []export.Plot{
		{
			Name: "trajectory", Title: "Engagement geometry",
			XLabel: "Downrange (ft)", YLabel: "Altitude (ft)", Legend: true,
			Lines: []export.Line{res.line("Missile", "rm1", "rm2"), res.line("Target", "rt1", "rt2")},
		},
		{
			Name: "accel", Title: "Commanded acceleration",
			XLabel: "Time (s)", YLabel: "Acceleration (g)",
			Lines: []export.Line{res.line("nc", "t", "ncg")},
		},
	}
	return res, nil
}

func dragDefaults() engage.Params {
	p := engage.Default()
	p.Drag = 1000
	return p
}

// monteCarloParams draw the heading error of each run from a normal law.
type monteCarloParams struct {
	Runs       int           `mapstructure:"runs"`
	Seed       uint64        `mapstructure:"seed"`
	HESigma    float64       `mapstructure:"he_sigma"` // deg
	Engagement engage.Params `mapstructure:"engagement"`
}

func monteCarloDefaults() monteCarloParams {
	p := engage.Default()
	p.Sample = 1
	return monteCarloParams{Runs: 50, Seed: 1, HESigma: 5, Engagement: p}
}

func (p monteCarloParams) check() error {
	if p.Runs <= 0 {
		return fmt.Errorf("runs must be positive, got %d", p.Runs)
	}
	if p.HESigma < 0 {
		return fmt.Errorf("he_sigma must not be negative, got %g", p.HESigma)
	}
	return checkEngagement(p.Engagement)
}

// monteCarlo runs the engagement with a random heading error; the generator
// is seeded so the runs are reproducible.
func monteCarlo(p monteCarloParams) (*Result, error) {
	he := distuv.Normal{
		Mu:    p.Engagement.HE,
		Sigma: p.HESigma,
		Src:   rand.NewPCG(p.Seed, p.Seed),
	}
	res := newResult("run", "he", "miss")
	misses := make([]float64, p.Runs)
	for i := range misses {
		e := p.Engagement
		e.HE = he.Rand()
		run := engage.Run(e)
		misses[i] = run.MinRange()
		res.add(float64(i+1), e.HE, misses[i])
	}
	mean, std := stat.MeanStdDev(misses, nil)
	res.Miss = mean
	res.note("%d runs: miss mean %.2f ft, standard deviation %.2f ft", p.Runs, mean, std)
	res.Plots = []export.Plot{{
		Name: "miss", Title: fmt.Sprintf("Miss distance, %d runs", p.Runs),
		XLabel: "Heading error (deg)", YLabel: "Miss (ft)", Scatter: true,
		Lines: []export.Line{res.line("Miss", "he", "miss")},
	}}
	return res, nil
}

var (
	c2l1 = define("c2l1", "Proportional navigation engagement", engage.Default, checkEngagement, engagement)
	c2l2 = define("c2l2", "Proportional navigation with missile drag", dragDefaults, checkEngagement, engagement)
	c4l1 = define("c4l1", "Monte Carlo miss distance with random heading error", monteCarloDefaults,
		monteCarloParams.check, monteCarlo)
)
