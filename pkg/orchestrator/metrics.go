package orchestrator

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics tracks pipeline stage activity.
type Metrics struct {
	stageTotal    *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers the pipeline metrics. Pass
// prometheus.DefaultRegisterer for the process-wide registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		stageTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "labscript",
			Subsystem: "pipeline",
			Name:      "stage_total",
			Help:      "Pipeline stage calls by stage and result.",
		}, []string{"stage", "result"}),
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "labscript",
			Subsystem: "pipeline",
			Name:      "stage_duration_seconds",
			Help:      "Wall time of pipeline stage calls.",
			Buckets:   prometheus.ExponentialBuckets(0.25, 2, 12),
		}, []string{"stage"}),
	}
	if reg != nil {
		reg.MustRegister(m.stageTotal, m.stageDuration)
	}
	return m
}

// Observe records one stage call.
func (m *Metrics) Observe(stage Stage, elapsed time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	m.stageTotal.WithLabelValues(string(stage), result).Inc()
	m.stageDuration.WithLabelValues(string(stage)).Observe(elapsed.Seconds())
}
