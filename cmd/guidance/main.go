package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/int08h/missle-guidance-sub000/export"
	"github.com/int08h/missle-guidance-sub000/lesson"
	"github.com/int08h/missle-guidance-sub000/metrics"
	"golang.org/x/sync/errgroup"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Runs the requested lessons and writes their data files and plots.

const (
	exitOK    = 0
	exitIO    = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	out      string
	params   string
	jobs     int
	metrics  bool
	data     bool
	plots    bool
	verbose  bool
	logfile  string
	list     bool
	lessons  []string
	logger   log.Logger
	recorder *metrics.Recorder
}

func run(args []string, stdout, stderr io.Writer) int {
	var o options
	fs := flag.NewFlagSet("guidance", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.out, "out", ".", "output directory")
	fs.StringVar(&o.params, "params", "", "TOML file overriding the lesson parameters")
	fs.IntVar(&o.jobs, "j", 1, "number of lessons run concurrently")
	fs.BoolVar(&o.metrics, "metrics", false, "write <out>/metrics.prom")
	fs.BoolVar(&o.data, "data", true, "write <out>/<lesson>_datfil.txt")
	fs.BoolVar(&o.plots, "plots", true, "render <out>/<lesson>_<plot>.png")
	fs.BoolVar(&o.verbose, "verbose", false, "debug logging")
	fs.StringVar(&o.logfile, "logfile", "", "also log to this size rotated file")
	fs.BoolVar(&o.list, "list", false, "list the lessons and exit")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: guidance [flags] c<chapter>l<lesson>... | all\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	if o.list {
		for _, l := range lesson.All() {
			fmt.Fprintf(stdout, "%s\t%s\n", l.ID, l.Title)
		}
		return exitOK
	}

	logw := stderr
	if o.logfile != "" {
		lj := &lumberjack.Logger{Filename: o.logfile, MaxSize: 10, MaxBackups: 3}
		defer lj.Close()
		logw = io.MultiWriter(stderr, lj)
	}
	o.logger = newLogger(logw, o.verbose)

	ids, err := expand(fs.Args())
	if err != nil {
		level.Error(o.logger).Log("msg", "bad lesson list", "err", err)
		fs.Usage()
		return exitUsage
	}
	o.lessons = ids
	if o.jobs < 1 {
		o.jobs = 1
	}
	// Fail on an unreadable parameter file before running anything.
	if _, err := lesson.LoadParams(o.params); err != nil {
		level.Error(o.logger).Log("msg", "cannot load parameters", "err", err)
		return exitUsage
	}
	if err := os.MkdirAll(o.out, 0o755); err != nil {
		level.Error(o.logger).Log("msg", "cannot create output directory", "err", err)
		return exitIO
	}
	if o.metrics {
		o.recorder = metrics.New()
	}

	code := runAll(o)
	if o.recorder != nil {
		name := filepath.Join(o.out, "metrics.prom")
		if err := o.recorder.WriteToTextfile(name); err != nil {
			level.Error(o.logger).Log("msg", "cannot write metrics", "err", err)
			code = exitIO
		} else {
			level.Debug(o.logger).Log("msg", "metrics written", "file", name)
		}
	}
	return code
}

func newLogger(w io.Writer, verbose bool) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
	if verbose {
		return level.NewFilter(logger, level.AllowDebug())
	}
	return level.NewFilter(logger, level.AllowInfo())
}

// expand validates the lesson identifiers; "all" stands for every lesson.
func expand(args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, errors.New("no lesson requested")
	}
	var ids []string
	seen := map[string]bool{}
	for _, arg := range args {
		names := []string{strings.ToLower(arg)}
		if names[0] == "all" {
			names = lesson.IDs()
		}
		for _, id := range names {
			if _, err := lesson.Lookup(id); err != nil {
				return nil, err
			}
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids, nil
}

// runAll runs the lessons at most o.jobs at a time. Every lesson runs even
// when another one failed; the exit code is the one of the worst failure.
func runAll(o options) int {
	codes := make([]int, len(o.lessons))
	g := new(errgroup.Group)
	g.SetLimit(o.jobs)
	for i, id := range o.lessons {
		g.Go(func() error {
			codes[i] = runLesson(o, id)
			return nil
		})
	}
	g.Wait()
	code := exitOK
	for _, c := range codes {
		if c == exitUsage || (c == exitIO && code == exitOK) {
			code = c
		}
	}
	return code
}

func runLesson(o options, id string) int {
	logger := log.With(o.logger, "lesson", id)
	observe := func(outcome string, d time.Duration, res *lesson.Result) {
		if o.recorder == nil {
			return
		}
		var n int
		var miss float64
		if res != nil {
			n, miss = res.Series.Len(), res.Miss
		}
		o.recorder.Observe(id, outcome, d, n, miss)
	}
	// Each lesson binds its parameters from its own viper instance.
	v, err := lesson.LoadParams(o.params)
	if err != nil {
		level.Error(logger).Log("msg", "cannot load parameters", "err", err)
		observe(metrics.Failed, 0, nil)
		return exitUsage
	}
	start := time.Now()
	res, err := lesson.Run(v, id)
	elapsed := time.Since(start)
	if err != nil {
		level.Error(logger).Log("msg", "lesson failed", "err", err)
		if errors.Is(err, lesson.ErrUnknownLesson) {
			observe(metrics.Unknown, elapsed, nil)
		} else {
			observe(metrics.Failed, elapsed, nil)
		}
		return exitUsage
	}
	for _, n := range res.Notes {
		level.Info(logger).Log("msg", n)
	}
	conf := export.Config{Dir: o.out, Lesson: id, Data: o.data, Plots: o.plots}
	if conf.IsUseless() {
		level.Debug(logger).Log("msg", "data and plots disabled, nothing exported")
	}
	written, err := conf.Write(res.Series, res.Plots)
	for _, name := range written {
		level.Debug(logger).Log("msg", "written", "file", name)
	}
	if err != nil {
		level.Error(logger).Log("msg", "cannot write output", "err", err)
		observe(metrics.IOFailed, elapsed, res)
		return exitIO
	}
	level.Info(logger).Log("msg", "done", "rows", res.Series.Len(), "miss", res.Miss, "elapsed", elapsed)
	observe(metrics.OK, elapsed, res)
	return exitOK
}
