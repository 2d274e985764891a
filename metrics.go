package grfm

import (
	"time"

	"github.com/adammck/grfm/gait"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace = "grfm"

	// Phase label used for samples solved before the detector was ready.
	notReadyLabel = "not_ready"
)

// Metrics counts what the engine does. A nil *Metrics records nothing.
type Metrics struct {
	samples    *prometheus.CounterVec
	violations prometheus.Counter
	anchors    prometheus.Counter
	duration   prometheus.Histogram
}

// NewMetrics registers the engine metrics with reg. Engines sharing a
// registry must share the Metrics too.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		samples: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "samples_total",
			Help:      "Samples solved, by gait phase.",
		}, []string{"phase"}),
		violations: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "detector_violations_total",
			Help:      "Double-support samples reported without a valid leading leg.",
		}),
		anchors: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "heel_strike_anchors_total",
			Help:      "Reactions latched at a new heel-strike.",
		}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "solve_duration_seconds",
			Help:      "Time spent solving one ready sample.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
		}),
	}
}

func (m *Metrics) sample(phase string) {
	if m == nil {
		return
	}
	m.samples.WithLabelValues(phase).Inc()
}

func (m *Metrics) solved(phase gait.Phase, start time.Time) {
	if m == nil {
		return
	}
	m.samples.WithLabelValues(phase.String()).Inc()
	m.duration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) violation() {
	if m == nil {
		return
	}
	m.violations.Inc()
}

func (m *Metrics) anchor() {
	if m == nil {
		return
	}
	m.anchors.Inc()
}
