package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks one-time code issuance and verification.
type Metrics struct {
	Issued          prometheus.Counter
	DeliveryFailure prometheus.Counter
	// Verification outcomes by code ("ok" on success)
	Verifications *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Issued: f.NewCounter(prometheus.CounterOpts{
			Name: "quorum_otp_issued_total",
			Help: "Total one-time codes issued",
		}),
		DeliveryFailure: f.NewCounter(prometheus.CounterOpts{
			Name: "quorum_otp_delivery_failures_total",
			Help: "One-time codes stored but not delivered",
		}),
		Verifications: f.NewCounterVec(prometheus.CounterOpts{
			Name: "quorum_otp_verifications_total",
			Help: "One-time code verification attempts by outcome",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) IncIssued() {
	if m != nil {
		m.Issued.Inc()
	}
}

func (m *Metrics) IncDeliveryFailure() {
	if m != nil {
		m.DeliveryFailure.Inc()
	}
}

func (m *Metrics) IncVerification(outcome string) {
	if m != nil {
		m.Verifications.WithLabelValues(outcome).Inc()
	}
}
