package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the vote ledger.
type Metrics struct {
	ElectionsCreated prometheus.Counter

	// Accepted casts, labelled "first" or "change"
	VotesCast *prometheus.CounterVec

	// Rejected casts by error code
	CastRejections *prometheus.CounterVec

	// Commit attempts lost to a concurrent cast of the same ballot
	CastConflicts prometheus.Counter

	ReceiptVerifications *prometheus.CounterVec
	VerificationDuration prometheus.Histogram
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ElectionsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "quorum_elections_created_total",
			Help: "Total elections created",
		}),
		VotesCast: f.NewCounterVec(prometheus.CounterOpts{
			Name: "quorum_votes_cast_total",
			Help: "Accepted votes by kind",
		}, []string{"kind"}),
		CastRejections: f.NewCounterVec(prometheus.CounterOpts{
			Name: "quorum_vote_cast_rejections_total",
			Help: "Rejected casts by reason",
		}, []string{"reason"}),
		CastConflicts: f.NewCounter(prometheus.CounterOpts{
			Name: "quorum_vote_cast_conflicts_total",
			Help: "Cast commits that lost a compare-and-swap race",
		}),
		ReceiptVerifications: f.NewCounterVec(prometheus.CounterOpts{
			Name: "quorum_receipt_verifications_total",
			Help: "Receipt verifications by result",
		}, []string{"status"}),
		VerificationDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "quorum_receipt_verification_duration_seconds",
			Help:    "Time to replay the chain and check a receipt",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
	}
}

func (m *Metrics) IncElectionCreated() {
	if m != nil {
		m.ElectionsCreated.Inc()
	}
}

func (m *Metrics) IncVoteCast(kind string) {
	if m != nil {
		m.VotesCast.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) IncCastRejection(reason string) {
	if m != nil {
		m.CastRejections.WithLabelValues(reason).Inc()
	}
}

func (m *Metrics) IncCastConflict() {
	if m != nil {
		m.CastConflicts.Inc()
	}
}

func (m *Metrics) ObserveVerification(status string, d time.Duration) {
	if m != nil {
		m.ReceiptVerifications.WithLabelValues(status).Inc()
		m.VerificationDuration.Observe(d.Seconds())
	}
}
