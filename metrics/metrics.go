// Package metrics counts lesson runs and their durations. The registry is
// dumped in the Prometheus text format at the end of a driver run.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels of a lesson run.
const (
	OK       = "ok"
	Failed   = "failed"
	Unknown  = "unknown"
	IOFailed = "io_failed"
)

// Recorder holds the lesson metrics of one driver run.
type Recorder struct {
	reg      *prometheus.Registry
	runs     *prometheus.CounterVec
	duration *prometheus.HistogramVec
	samples  *prometheus.GaugeVec
	miss     *prometheus.GaugeVec
}

// New returns a recorder with its own registry.
func New() *Recorder {
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "guidance_lesson_runs_total",
				Help: "Total number of lesson runs.",
			},
			[]string{"lesson", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "guidance_lesson_duration_seconds",
				Help:    "Lesson simulation duration in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"lesson"},
		),
		samples: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "guidance_lesson_samples",
				Help: "Number of rows recorded by the last run of a lesson.",
			},
			[]string{"lesson"},
		),
		miss: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "guidance_lesson_miss_feet",
				Help: "Miss distance reported by the last run of a lesson.",
			},
			[]string{"lesson"},
		),
	}
	r.reg.MustRegister(r.runs, r.duration, r.samples, r.miss)
	return r
}

// Observe records one lesson run.
func (r *Recorder) Observe(lesson, outcome string, d time.Duration, samples int, miss float64) {
	r.runs.WithLabelValues(lesson, outcome).Inc()
	if outcome != OK {
		return
	}
	r.duration.WithLabelValues(lesson).Observe(d.Seconds())
	r.samples.WithLabelValues(lesson).Set(float64(samples))
	r.miss.WithLabelValues(lesson).Set(miss)
}

// WriteToTextfile dumps the registry to filename in the text exposition
// format.
func (r *Recorder) WriteToTextfile(filename string) error {
	return prometheus.WriteToTextfile(filename, r.reg)
}
