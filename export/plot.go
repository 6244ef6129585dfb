package export

import (
	"fmt"
	"image/color"
	"math"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Palette is the fallback order of the series colors.
var Palette = []color.Color{
	color.RGBA{R: 255, A: 255},         // red
	color.RGBA{B: 255, A: 255},         // blue
	color.RGBA{G: 160, A: 255},         // green
	color.RGBA{R: 255, B: 255, A: 255}, // magenta
	color.RGBA{G: 255, B: 255, A: 255}, // cyan
	color.RGBA{A: 255},                 // black
}

// Range is an optional axis range.
type Range struct {
	Min, Max float64
}

// Line is one labelled series of a plot.
type Line struct {
	Label string
	X, Y  []float64
}

// Plot describes one figure of a lesson.
type Plot struct {
	Name           string // file suffix
	Title          string
	XLabel, YLabel string
	XRange, YRange *Range
	Legend         bool
	// Scatter draws the first line as points, as done for Monte Carlo results.
	Scatter bool
	Lines   []Line
}

// xys returns the finite points of the line.
func (l Line) xys() (plotter.XYs, error) {
	if len(l.X) != len(l.Y) {
		return nil, fmt.Errorf("%w: %q has %d abscissas and %d ordinates", ErrDimension, l.Label, len(l.X), len(l.Y))
	}
	pts := make(plotter.XYs, 0, len(l.X))
	for i := range l.X {
		if math.IsNaN(l.X[i]) || math.IsInf(l.X[i], 0) || math.IsNaN(l.Y[i]) || math.IsInf(l.Y[i], 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: l.X[i], Y: l.Y[i]})
	}
	return pts, nil
}

// build returns the gonum plot of the description.
func (d Plot) build() (*plot.Plot, error) {
	if len(d.Lines) == 0 {
		return nil, fmt.Errorf("plot %s: %w", d.Name, ErrEmpty)
	}
	p := plot.New()
	p.Title.Text = d.Title
	p.X.Label.Text = d.XLabel
	p.Y.Label.Text = d.YLabel
	p.Add(plotter.NewGrid())
	for i, l := range d.Lines {
		pts, err := l.xys()
		if err != nil {
			return nil, fmt.Errorf("plot %s: %w", d.Name, err)
		}
		c := Palette[i%len(Palette)]
		if d.Scatter {
			s, err := plotter.NewScatter(pts)
			if err != nil {
				return nil, err
			}
			s.GlyphStyle.Color = c
			s.GlyphStyle.Radius = vg.Points(2)
			s.GlyphStyle.Shape = draw.CircleGlyph{}
			p.Add(s)
			if d.Legend {
				p.Legend.Add(l.Label, s)
			}
			continue
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}
		line.LineStyle.Color = c
		line.LineStyle.Width = vg.Points(1)
		p.Add(line)
		if d.Legend {
			p.Legend.Add(l.Label, line)
		}
	}
	if d.XRange != nil {
		p.X.Min, p.X.Max = d.XRange.Min, d.XRange.Max
	}
	if d.YRange != nil {
		p.Y.Min, p.Y.Max = d.YRange.Min, d.YRange.Max
	}
	p.Legend.Top = true
	return p, nil
}

// WritePlot renders the plot to <lesson>_<plot>.png and returns its path.
func (c Config) WritePlot(d Plot) (string, error) {
	p, err := d.build()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return "", err
	}
	name := c.PlotName(d.Name)
	if err := p.Save(6*vg.Inch, 4*vg.Inch, name); err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return name, nil
}

// Write exports the series and the plots as configured and returns the
// paths of the written files. A useless config touches nothing.
func (c Config) Write(s *Series, plots []Plot) ([]string, error) {
	if c.IsUseless() {
		return nil, nil
	}
	var written []string
	if c.Data && s != nil {
		name, err := c.WriteDatfile(s)
		if err != nil {
			return written, err
		}
		written = append(written, name)
	}
	if c.Plots {
		for _, d := range plots {
			name, err := c.WritePlot(d)
			if err != nil {
				return written, err
			}
			written = append(written, name)
		}
	}
	return written, nil
}
