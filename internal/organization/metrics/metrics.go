package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for organization admission.
type Metrics struct {
	OrganizationsCreated prometheus.Counter

	// Memberships created, labelled by how the member joined
	MembersJoined *prometheus.CounterVec

	InvitationsCreated prometheus.Counter

	// Redemption attempts by outcome code ("ok" on success)
	RedemptionOutcomes *prometheus.CounterVec

	// Compensating deletes and releases that themselves failed
	CompensationFailures *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		OrganizationsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "quorum_organizations_created_total",
			Help: "Total organizations created",
		}),
		MembersJoined: f.NewCounterVec(prometheus.CounterOpts{
			Name: "quorum_members_joined_total",
			Help: "Total memberships created by admission path",
		}, []string{"via"}),
		InvitationsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "quorum_invitations_created_total",
			Help: "Total invitation tokens issued",
		}),
		RedemptionOutcomes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "quorum_invitation_redemptions_total",
			Help: "Invitation redemption attempts by outcome",
		}, []string{"outcome"}),
		CompensationFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "quorum_organization_compensation_failures_total",
			Help: "Compensating actions that failed and left partial state",
		}, []string{"step"}),
	}
}

func (m *Metrics) IncOrganizationCreated() {
	if m != nil {
		m.OrganizationsCreated.Inc()
	}
}

func (m *Metrics) IncMemberJoined(via string) {
	if m != nil {
		m.MembersJoined.WithLabelValues(via).Inc()
	}
}

func (m *Metrics) IncInvitationCreated() {
	if m != nil {
		m.InvitationsCreated.Inc()
	}
}

func (m *Metrics) IncRedemption(outcome string) {
	if m != nil {
		m.RedemptionOutcomes.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) IncCompensationFailure(step string) {
	if m != nil {
		m.CompensationFailures.WithLabelValues(step).Inc()
	}
}
