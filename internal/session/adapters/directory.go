package adapters

import (
	"context"

	orgModels "quorum/internal/organization/models"
	"quorum/internal/session/models"
	id "quorum/pkg/domain"
)

// userFinder and membershipFinder are implemented by the organization stores.
// Defined locally so session does not depend on the organization service.
type userFinder interface {
	FindByEmail(ctx context.Context, email string) (*orgModels.User, error)
}

type membershipFinder interface {
	Find(ctx context.Context, userID id.UserID, orgID id.OrganizationID) (*orgModels.Membership, error)
}

// OrganizationDirectory adapts the organization stores to session.Directory,
// mapping organization models to session-local DTOs at the boundary.
type OrganizationDirectory struct {
	users       userFinder
	memberships membershipFinder
}

func NewOrganizationDirectory(users userFinder, memberships membershipFinder) *OrganizationDirectory {
	return &OrganizationDirectory{users: users, memberships: memberships}
}

// UserIDByEmail passes sentinel.ErrNotFound through unchanged.
func (d *OrganizationDirectory) UserIDByEmail(ctx context.Context, email string) (id.UserID, error) {
	user, err := d.users.FindByEmail(ctx, email)
	if err != nil {
		return id.UserID{}, err
	}
	return user.ID, nil
}

func (d *OrganizationDirectory) Membership(ctx context.Context, userID id.UserID, orgID id.OrganizationID) (*models.Member, error) {
	m, err := d.memberships.Find(ctx, userID, orgID)
	if err != nil {
		return nil, err
	}
	return &models.Member{Role: string(m.Role), IsActive: m.IsActive}, nil
}
