package models

import (
	"strings"
	"time"

	id "quorum/pkg/domain"
	dErrors "quorum/pkg/domain-errors"
)

const (
	DefaultInvitationDays = 7
	DefaultInvitationUses = 1
	MaxInvitationDays     = 365
	MaxInvitationUsageCap = 10000
)

// InvitationToken is a usage-limited, expiring credential granting Role in
// OrganizationID. Only the digest of the opaque token is stored.
type InvitationToken struct {
	TokenDigest    string
	OrganizationID id.OrganizationID
	Role           Role
	// Email binds the invitation to one address when non-empty.
	Email      string
	UsageLimit int
	UsedCount  int
	ExpiresAt  time.Time
	IsActive   bool
	CreatedBy  id.UserID
	CreatedAt  time.Time
}

// NewInvitationToken applies defaults and bounds. Zero expiresInDays and
// usageLimit select the defaults.
func NewInvitationToken(digest string, orgID id.OrganizationID, role Role, email string, expiresInDays, usageLimit int, createdBy id.UserID, now time.Time) (*InvitationToken, error) {
	if expiresInDays == 0 {
		expiresInDays = DefaultInvitationDays
	}
	if usageLimit == 0 {
		usageLimit = DefaultInvitationUses
	}
	if expiresInDays < 1 || expiresInDays > MaxInvitationDays {
		return nil, dErrors.New(dErrors.CodeValidation, "expires_in_days must be between 1 and 365")
	}
	if usageLimit < 1 || usageLimit > MaxInvitationUsageCap {
		return nil, dErrors.New(dErrors.CodeValidation, "usage_limit must be between 1 and 10000")
	}
	if role != RoleVoter && role != RoleAdmin {
		return nil, dErrors.New(dErrors.CodeValidation, "role must be voter or admin")
	}
	return &InvitationToken{
		TokenDigest:    digest,
		OrganizationID: orgID,
		Role:           role,
		Email:          strings.ToLower(strings.TrimSpace(email)),
		UsageLimit:     usageLimit,
		ExpiresAt:      now.Add(time.Duration(expiresInDays) * 24 * time.Hour),
		IsActive:       true,
		CreatedBy:      createdBy,
		CreatedAt:      now,
	}, nil
}

// CanRedeem checks every redemption precondition in the order callers see
// them: revoked, expired, exhausted, then the email binding.
func (t *InvitationToken) CanRedeem(email string, now time.Time) error {
	if !t.IsActive {
		return dErrors.New(dErrors.CodeRevoked, "invitation has been revoked")
	}
	if now.After(t.ExpiresAt) {
		return dErrors.New(dErrors.CodeExpired, "invitation has expired")
	}
	if t.UsedCount >= t.UsageLimit {
		return dErrors.New(dErrors.CodeExhausted, "invitation has no uses left")
	}
	if t.Email != "" && !strings.EqualFold(t.Email, strings.TrimSpace(email)) {
		return dErrors.New(dErrors.CodeEmailMismatch, "invitation is bound to a different email")
	}
	return nil
}

// Remaining returns the number of uses left.
func (t *InvitationToken) Remaining() int {
	return max(t.UsageLimit-t.UsedCount, 0)
}

// InvitationRequest describes an invitation an administrator wants to issue.
type InvitationRequest struct {
	OrganizationID id.OrganizationID
	Role           string
	Email          string
	ExpiresInDays  int
	UsageLimit     int
	CreatedBy      id.UserID
}

// IssuedInvitation pairs the stored invitation with its opaque token, which is
// only available at creation time.
type IssuedInvitation struct {
	Token      string
	Invitation *InvitationToken
}
