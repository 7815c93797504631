package membership

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"quorum/internal/organization/models"
	"quorum/internal/platform/postgres"
	id "quorum/pkg/domain"
	"quorum/pkg/platform/sentinel"
)

type Postgres struct {
	db *postgres.DB
}

func NewPostgres(db *postgres.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Create(ctx context.Context, m *models.Membership) error {
	ctx, q, cancel := s.db.Scope(ctx)
	defer cancel()
	res, err := q.ExecContext(ctx, `
		INSERT INTO memberships (id, user_id, organization_id, role, joined_via, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT ON CONSTRAINT memberships_user_org_key DO NOTHING`,
		m.ID, m.UserID, m.OrganizationID, m.Role, m.JoinedVia, m.IsActive, m.CreatedAt)
	if postgres.ForeignKeyViolation(err) {
		return fmt.Errorf("membership references missing user or organization: %w", sentinel.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("insert membership: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrAlreadyMember
	}
	return nil
}

func (s *Postgres) Find(ctx context.Context, userID id.UserID, orgID id.OrganizationID) (*models.Membership, error) {
	ctx, q, cancel := s.db.Scope(ctx)
	defer cancel()
	var m models.Membership
	err := q.QueryRowContext(ctx, `
		SELECT id, user_id, organization_id, role, joined_via, is_active, created_at
		FROM memberships WHERE user_id = $1 AND organization_id = $2`, userID, orgID).
		Scan(&m.ID, &m.UserID, &m.OrganizationID, &m.Role, &m.JoinedVia, &m.IsActive, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("membership: %w", sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find membership: %w", err)
	}
	return &m, nil
}

func (s *Postgres) SetActive(ctx context.Context, userID id.UserID, orgID id.OrganizationID, active bool) error {
	ctx, q, cancel := s.db.Scope(ctx)
	defer cancel()
	res, err := q.ExecContext(ctx, `
		UPDATE memberships SET is_active = $3 WHERE user_id = $1 AND organization_id = $2`, userID, orgID, active)
	if err != nil {
		return fmt.Errorf("update membership: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("membership: %w", sentinel.ErrNotFound)
	}
	return nil
}

func (s *Postgres) Delete(ctx context.Context, membershipID id.MembershipID) error {
	ctx, q, cancel := s.db.Scope(ctx)
	defer cancel()
	if _, err := q.ExecContext(ctx, `DELETE FROM memberships WHERE id = $1`, membershipID); err != nil {
		return fmt.Errorf("delete membership: %w", err)
	}
	return nil
}
