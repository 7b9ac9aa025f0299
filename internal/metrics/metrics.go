// Package metrics counts drill activity in a per-session Prometheus
// registry, which the CLI can dump to a node_exporter textfile.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "flashdeck"

// Recorder holds the drill metrics. A nil *Recorder discards everything.
type Recorder struct {
	registry *prometheus.Registry

	answers     *prometheus.CounterVec
	rounds      prometheus.Counter
	skipped     prometheus.Counter
	released    *prometheus.CounterVec
	rescheduled *prometheus.CounterVec
	intervals   prometheus.Histogram
	sessions    prometheus.Counter
}

// New creates a Recorder with its own registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Recorder{
		registry: reg,

		// Labels: outcome (correct, wrong, unrecognized)
		answers: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "drill",
			Name:      "answers_total",
			Help:      "Answers submitted by outcome",
		}, []string{"outcome"}),

		rounds: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "drill",
			Name:      "rounds_total",
			Help:      "Scheduler rounds advanced",
		}),

		skipped: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "drill",
			Name:      "skipped_rounds_total",
			Help:      "Rounds in which no card could be shown",
		}),

		// Labels: category
		released: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "supplier",
			Name:      "cards_released_total",
			Help:      "Cards released into the session by category",
		}, []string{"category"}),

		// Labels: result (stretched, relearn)
		rescheduled: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "spacedrep",
			Name:      "words_rescheduled_total",
			Help:      "Words given a new long-term due date at session close",
		}, []string{"result"}),

		intervals: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "spacedrep",
			Name:      "interval_days",
			Help:      "Long-term delay assigned at session close",
			Buckets:   []float64{1, 2, 4, 7, 14, 30, 60, 120, 365},
		}),

		sessions: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "drill",
			Name:      "sessions_closed_total",
			Help:      "Sessions closed and saved",
		}),
	}
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// Answer counts one submitted answer.
func (r *Recorder) Answer(outcome string) {
	if r == nil {
		return
	}
	r.answers.WithLabelValues(outcome).Inc()
}

// Round counts one advanced round. skipped marks a round with no card.
func (r *Recorder) Round(skipped bool) {
	if r == nil {
		return
	}
	r.rounds.Inc()
	if skipped {
		r.skipped.Inc()
	}
}

// Released counts n cards entering play from category.
func (r *Recorder) Released(category string, n int) {
	if r == nil || n <= 0 {
		return
	}
	r.released.WithLabelValues(category).Add(float64(n))
}

// Rescheduled records a word's new long-term delay.
func (r *Recorder) Rescheduled(delay float64, relearn bool) {
	if r == nil {
		return
	}
	result := "stretched"
	if relearn {
		result = "relearn"
	}
	r.rescheduled.WithLabelValues(result).Inc()
	r.intervals.Observe(delay)
}

// SessionClosed counts a saved session.
func (r *Recorder) SessionClosed() {
	if r == nil {
		return
	}
	r.sessions.Inc()
}

// WriteTextfile writes every metric to path in the Prometheus text format.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}
