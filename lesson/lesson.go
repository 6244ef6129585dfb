// Package lesson holds the simulations of the book, one per lesson
// identifier c<chapter>l<lesson>. Each lesson binds its parameters from a
// viper instance, runs single threaded and returns its sampled series with
// the plots to render from it.
package lesson

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/int08h/missle-guidance-sub000/export"
	"github.com/spf13/viper"
)

var (
	// ErrUnknownLesson is returned for an identifier missing from the registry.
	ErrUnknownLesson = errors.New("unknown lesson")
	// ErrBadParams is returned when the parameters of a lesson cannot be
	// decoded or are out of their domain.
	ErrBadParams = errors.New("bad lesson parameters")
)

// Result is the outcome of a lesson run.
type Result struct {
	Series *export.Series
	Plots  []export.Plot
	// Miss is the scalar summary of the lesson (ft), zero when it has none.
	Miss  float64
	Notes []string
}

func newResult(columns ...string) *Result {
	return &Result{Series: export.NewSeries(columns...)}
}

// add appends a row; a width mismatch is a programming error.
func (r *Result) add(row ...float64) {
	if err := r.Series.Append(row...); err != nil {
		panic(err)
	}
}

func (r *Result) note(format string, args ...interface{}) {
	r.Notes = append(r.Notes, fmt.Sprintf(format, args...))
}

// line returns a plot line of column y against column x of the series.
func (r *Result) line(label, x, y string) export.Line {
	return export.Line{Label: label, X: r.Series.Column(x), Y: r.Series.Column(y)}
}

// Lesson is a registered simulation.
type Lesson struct {
	ID    string
	Title string
	// params returns a fresh copy of the default parameters.
	params func() interface{}
	run    func(v *viper.Viper) (*Result, error)
}

func (l Lesson) String() string {
	return l.ID + ": " + l.Title
}

// Run binds the parameters of the lesson from v and runs it.
func (l Lesson) Run(v *viper.Viper) (*Result, error) {
	return l.run(v)
}

// Defaults returns the default parameters of the lesson as a map.
func (l Lesson) Defaults() map[string]interface{} {
	m := map[string]interface{}{}
	if err := mapstructure.Decode(l.params(), &m); err != nil {
		panic(err)
	}
	return m
}

// define builds a lesson from its default parameters, an optional domain
// check and the simulation itself.
func define[P any](id, title string, defaults func() P, check func(P) error, sim func(P) (*Result, error)) Lesson {
	return Lesson{
		ID:     id,
		Title:  title,
		params: func() interface{} { return defaults() },
		run: func(v *viper.Viper) (*Result, error) {
			p := defaults()
			if err := v.UnmarshalKey(id, &p, strict); err != nil {
				return nil, fmt.Errorf("%s: %w: %s", id, ErrBadParams, err)
			}
			if check != nil {
				if err := check(p); err != nil {
					return nil, fmt.Errorf("%s: %w: %s", id, ErrBadParams, err)
				}
			}
			return sim(p)
		},
	}
}

// strict rejects parameters which no field consumes.
func strict(c *mapstructure.DecoderConfig) {
	c.ErrorUnused = true
}

// positive returns an error naming the first non positive value.
func positive(names string, vals ...float64) error {
	for i, name := range strings.Fields(names) {
		if !(vals[i] > 0) {
			return fmt.Errorf("%s must be positive, got %g", name, vals[i])
		}
	}
	return nil
}

// Lookup returns the lesson registered under id.
func Lookup(id string) (Lesson, error) {
	for _, l := range registry {
		if l.ID == id {
			return l, nil
		}
	}
	return Lesson{}, fmt.Errorf("%w %q", ErrUnknownLesson, id)
}

// All returns every registered lesson, by chapter then lesson number.
func All() []Lesson {
	out := make([]Lesson, len(registry))
	copy(out, registry)
	sort.SliceStable(out, func(i, j int) bool {
		ci, li := parseID(out[i].ID)
		cj, lj := parseID(out[j].ID)
		if ci != cj {
			return ci < cj
		}
		return li < lj
	})
	return out
}

// IDs returns the identifiers of All.
func IDs() []string {
	var ids []string
	for _, l := range All() {
		ids = append(ids, l.ID)
	}
	return ids
}

// parseID splits c<chapter>l<lesson>; malformed identifiers sort last.
func parseID(id string) (int, int) {
	rest, ok := strings.CutPrefix(id, "c")
	if !ok {
		return 1 << 30, 0
	}
	ch, ls, ok := strings.Cut(rest, "l")
	if !ok {
		return 1 << 30, 0
	}
	c, err1 := strconv.Atoi(ch)
	l, err2 := strconv.Atoi(ls)
	if err1 != nil || err2 != nil {
		return 1 << 30, 0
	}
	return c, l
}

// NewParams returns a viper instance holding the defaults of every lesson,
// under a key named after the lesson.
func NewParams() *viper.Viper {
	v := viper.New()
	for _, l := range registry {
		for k, val := range l.Defaults() {
			v.SetDefault(l.ID+"."+k, val)
		}
	}
	return v
}

// LoadParams returns the defaults overridden by the TOML (or any format
// viper reads) file, when it is not empty.
func LoadParams(file string) (*viper.Viper, error) {
	v := NewParams()
	if file == "" {
		return v, nil
	}
	v.SetConfigFile(file)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return v, nil
}

// Run runs the lesson id with the parameters of v.
func Run(v *viper.Viper, id string) (*Result, error) {
	l, err := Lookup(id)
	if err != nil {
		return nil, err
	}
	return l.Run(v)
}
