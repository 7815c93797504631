package adapters

import (
	"context"

	"quorum/internal/organization/models"
	sessionModels "quorum/internal/session/models"
	id "quorum/pkg/domain"
)

// sessionIssuer is implemented by the session service.
type sessionIssuer interface {
	Issue(ctx context.Context, userID id.UserID, orgID id.OrganizationID) (*sessionModels.Issued, error)
}

// SessionIssuer adapts the session service to organization.SessionIssuer so a
// new owner is signed in as part of organization creation.
type SessionIssuer struct {
	sessions sessionIssuer
}

func NewSessionIssuer(sessions sessionIssuer) *SessionIssuer {
	return &SessionIssuer{sessions: sessions}
}

func (a *SessionIssuer) IssueSession(ctx context.Context, userID id.UserID, orgID id.OrganizationID) (*models.SessionGrant, error) {
	issued, err := a.sessions.Issue(ctx, userID, orgID)
	if err != nil {
		return nil, err
	}
	return &models.SessionGrant{Token: issued.Token, ExpiresAt: issued.Session.ExpiresAt}, nil
}
