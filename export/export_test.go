package export

import (
	"bytes"
	"errors"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gonum.org/v1/gonum/floats"
)

func TestSeries(t *testing.T) {
	s := NewSeries("t", "x", "y")
	for i := 0; i < 5; i++ {
		if err := s.Append(float64(i)*0.1, float64(i), float64(i*i)); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Append(1, 2); !errors.Is(err, ErrDimension) {
		t.Fatalf("expected a dimension error, got %v", err)
	}
	if s.Len() != 5 {
		t.Fatalf("%d rows", s.Len())
	}
	if y := s.Column("y"); !floats.Equal(y, []float64{0, 1, 4, 9, 16}) {
		t.Fatalf("column y: %v", y)
	}
	if s.Column("z") != nil {
		t.Fatal("unknown column should be nil")
	}
}

func TestWriteRows(t *testing.T) {
	var buf bytes.Buffer
	rows := [][]float64{{0, 1.5, -2}, {0.1, 1e7, 3.25e-9}}
	if err := WriteRows(&buf, rows); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasSuffix(out, "\n") || strings.Count(out, "\n") != 2 {
		t.Fatalf("unexpected layout %q", out)
	}
	if first := strings.Split(out, "\n")[0]; first != "0 1.5 -2" {
		t.Fatalf("first row %q", first)
	}
	back, err := ReadRows(strings.NewReader(out))
	if err != nil {
		t.Fatal(err)
	}
	for i := range rows {
		if !floats.EqualApprox(back[i], rows[i], 1e-9) {
			t.Fatalf("row %d read back as %v", i, back[i])
		}
	}
	if err := WriteRows(&buf, [][]float64{{1, 2}, {3}}); !errors.Is(err, ErrDimension) {
		t.Fatalf("expected a dimension error, got %v", err)
	}
	if err := WriteRows(&buf, nil); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected an empty error, got %v", err)
	}
}

func TestReadRowsComments(t *testing.T) {
	rows, err := ReadRows(strings.NewReader("# t x\n0 1\n1 NaN\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 || !math.IsNaN(rows[1][1]) {
		t.Fatalf("read %v", rows)
	}
	if _, err := ReadRows(strings.NewReader("0 1\n1\n")); !errors.Is(err, ErrDimension) {
		t.Fatalf("expected a dimension error, got %v", err)
	}
}

func TestConfig(t *testing.T) {
	if !(Config{Dir: "out", Lesson: "c2l1"}).IsUseless() {
		t.Fatal("nothing to write")
	}
	c := Config{Dir: "out", Lesson: "c2l1", Data: true}
	if c.DatfileName() != filepath.Join("out", "c2l1_datfil.txt") {
		t.Fatal(c.DatfileName())
	}
	if c.PlotName("miss") != filepath.Join("out", "c2l1_miss.png") {
		t.Fatal(c.PlotName("miss"))
	}
}

func TestWriteUseless(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "never")
	s := NewSeries("t")
	s.Append(0)
	written, err := (Config{Dir: dir, Lesson: "c1l1"}).Write(s, []Plot{{Name: "x", Lines: []Line{{X: []float64{0, 1}, Y: []float64{0, 1}}}}})
	if err != nil || len(written) != 0 {
		t.Fatalf("wrote %v: %v", written, err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatal("useless config created the output directory")
	}
}

func TestWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	c := Config{Dir: dir, Lesson: "c1l2", Data: true, Plots: true}
	s := NewSeries("t", "x")
	var ts, xs []float64
	for i := 0; i <= 100; i++ {
		tt := float64(i) * 0.1
		s.Append(tt, math.Sin(tt))
		ts = append(ts, tt)
		xs = append(xs, math.Sin(tt))
	}
	// A NaN ordinate is dropped from the plot, not an error.
	xs[50] = math.NaN()
	plots := []Plot{
		{
			Name: "x", Title: "Oscillator", XLabel: "Time (s)", YLabel: "x",
			YRange: &Range{Min: -1.5, Max: 1.5}, Legend: true,
			Lines: []Line{{Label: "sin", X: ts, Y: xs}, {Label: "zero", X: []float64{0, 10}, Y: []float64{0, 0}}},
		},
		{
			Name: "scatter", Title: "Points", Scatter: true,
			Lines: []Line{{Label: "pts", X: ts[:10], Y: ts[:10]}},
		},
	}
	written, err := c.Write(s, plots)
	if err != nil {
		t.Fatal(err)
	}
	if len(written) != 3 {
		t.Fatalf("wrote %v", written)
	}
	f, err := os.Open(c.DatfileName())
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := ReadRows(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 101 || len(rows[0]) != 2 {
		t.Fatalf("read %d rows", len(rows))
	}
	for _, name := range written[1:] {
		img, err := os.Open(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := png.Decode(img); err != nil {
			t.Fatalf("%s: %s", name, err)
		}
		img.Close()
	}
}

func TestWritePlotErrors(t *testing.T) {
	c := Config{Dir: t.TempDir(), Lesson: "c1l1", Plots: true}
	if _, err := c.WritePlot(Plot{Name: "empty"}); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected an empty error, got %v", err)
	}
	bad := Plot{Name: "bad", Lines: []Line{{Label: "l", X: []float64{1, 2}, Y: []float64{1}}}}
	if _, err := c.WritePlot(bad); !errors.Is(err, ErrDimension) {
		t.Fatalf("expected a dimension error, got %v", err)
	}
}
