package audit

import (
	"context"
	"time"

	id "quorum/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose so sinks can
// route and retain them differently.
type EventCategory string

const (
	// CategoryCompliance covers membership and ballot changes.
	CategoryCompliance EventCategory = "compliance"
	// CategorySecurity covers failed proofs, revocations and lockouts.
	CategorySecurity EventCategory = "security"
	// CategoryOperations covers routine activity.
	CategoryOperations EventCategory = "operations"
)

// Action names what happened.
type Action string

const (
	ActionOrganizationCreated Action = "organization_created"
	ActionMemberJoined        Action = "member_joined"
	ActionInvitationCreated   Action = "invitation_created"
	ActionInvitationRedeemed  Action = "invitation_redeemed"
	ActionInvitationRevoked   Action = "invitation_revoked"

	ActionOTPIssued   Action = "otp_issued"
	ActionOTPVerified Action = "otp_verified"
	ActionOTPRejected Action = "otp_rejected"

	ActionSessionCreated Action = "session_created"
	ActionSessionRevoked Action = "session_revoked"

	ActionElectionCreated Action = "election_created"
	ActionVoteCast        Action = "vote_cast"
	ActionVoteChanged     Action = "vote_changed"

	ActionCleanupCompleted Action = "cleanup_completed"
)

var actionCategories = map[Action]EventCategory{
	ActionOrganizationCreated: CategoryCompliance,
	ActionMemberJoined:        CategoryCompliance,
	ActionInvitationRedeemed:  CategoryCompliance,
	ActionVoteCast:            CategoryCompliance,
	ActionVoteChanged:         CategoryCompliance,
	ActionElectionCreated:     CategoryCompliance,

	ActionOTPRejected:       CategorySecurity,
	ActionSessionRevoked:    CategorySecurity,
	ActionInvitationRevoked: CategorySecurity,
}

// Category returns the category for a, defaulting to operations.
func (a Action) Category() EventCategory {
	if cat, ok := actionCategories[a]; ok {
		return cat
	}
	return CategoryOperations
}

// Event is emitted from domain logic to capture key actions. It never carries
// a ballot choice or a secret.
type Event struct {
	Category       EventCategory     `json:"category"`
	Action         Action            `json:"action"`
	Timestamp      time.Time         `json:"timestamp"`
	UserID         id.UserID         `json:"user_id"`
	OrganizationID id.OrganizationID `json:"organization_id"`
	// Subject identifies the affected record, e.g. an election or session id.
	Subject   string `json:"subject,omitempty"`
	Decision  string `json:"decision,omitempty"`
	Reason    string `json:"reason,omitempty"`
	Email     string `json:"email,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	ActorID   string `json:"actor_id,omitempty"`
}

// Store persists or forwards audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// Emitter is what services depend on.
type Emitter interface {
	Emit(ctx context.Context, event Event) error
}
