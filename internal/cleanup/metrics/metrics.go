package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Runs             *prometheus.CounterVec
	RecordsDeleted   *prometheus.CounterVec
	CategoryFailures *prometheus.CounterVec
	CategoryDuration *prometheus.HistogramVec
	SkippedRuns      *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Runs: f.NewCounterVec(prometheus.CounterOpts{
			Name: "quorum_cleanup_runs_total",
			Help: "Completed cleanup passes by trigger and outcome",
		}, []string{"trigger", "outcome"}),
		RecordsDeleted: f.NewCounterVec(prometheus.CounterOpts{
			Name: "quorum_cleanup_records_deleted_total",
			Help: "Expired records removed by category",
		}, []string{"category"}),
		CategoryFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "quorum_cleanup_category_failures_total",
			Help: "Failed category purges",
		}, []string{"category"}),
		CategoryDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "quorum_cleanup_category_duration_seconds",
			Help:    "Time spent purging one category",
			Buckets: prometheus.DefBuckets,
		}, []string{"category"}),
		SkippedRuns: f.NewCounterVec(prometheus.CounterOpts{
			Name: "quorum_cleanup_skipped_runs_total",
			Help: "Passes skipped because another was in progress",
		}, []string{"trigger"}),
	}
}

func (m *Metrics) ObserveCategory(category string, deleted int64, failed bool, d time.Duration) {
	if m == nil {
		return
	}
	m.RecordsDeleted.WithLabelValues(category).Add(float64(deleted))
	m.CategoryDuration.WithLabelValues(category).Observe(d.Seconds())
	if failed {
		m.CategoryFailures.WithLabelValues(category).Inc()
	}
}

func (m *Metrics) IncRun(trigger, outcome string) {
	if m == nil {
		return
	}
	m.Runs.WithLabelValues(trigger, outcome).Inc()
}

func (m *Metrics) IncSkipped(trigger string) {
	if m == nil {
		return
	}
	m.SkippedRuns.WithLabelValues(trigger).Inc()
}
