package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for bearer sessions.
type Metrics struct {
	SessionsIssued  prometheus.Counter
	SessionsRevoked prometheus.Counter

	// Rejected validations by error code
	ValidationFailures *prometheus.CounterVec

	Logins *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		SessionsIssued: f.NewCounter(prometheus.CounterOpts{
			Name: "quorum_sessions_issued_total",
			Help: "Total bearer sessions issued",
		}),
		SessionsRevoked: f.NewCounter(prometheus.CounterOpts{
			Name: "quorum_sessions_revoked_total",
			Help: "Total sessions revoked by logout",
		}),
		ValidationFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "quorum_session_validation_failures_total",
			Help: "Session validations rejected, by reason",
		}, []string{"reason"}),
		Logins: f.NewCounterVec(prometheus.CounterOpts{
			Name: "quorum_session_logins_total",
			Help: "Login attempts by outcome",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) IncIssued() {
	if m != nil {
		m.SessionsIssued.Inc()
	}
}

func (m *Metrics) IncRevoked() {
	if m != nil {
		m.SessionsRevoked.Inc()
	}
}

func (m *Metrics) IncValidationFailure(reason string) {
	if m != nil {
		m.ValidationFailures.WithLabelValues(reason).Inc()
	}
}

func (m *Metrics) IncLogin(outcome string) {
	if m != nil {
		m.Logins.WithLabelValues(outcome).Inc()
	}
}
