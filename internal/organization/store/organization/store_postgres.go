package organization

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

// Postgres persists organizations.
type Postgres struct {
	db *postgres.DB
}

func NewPostgres(db *postgres.DB) *Postgres {
	return &Postgres{db: db}
}

const orgColumns = `id, name, slug, voter_access_code, admin_access_code, is_active, created_at`

func (s *Postgres) Create(ctx context.Context, org *models.Organization) error {
	ctx, q, cancel := s.db.Scope(ctx)
	defer cancel()
	_, err := q.ExecContext(ctx, `
		INSERT INTO organizations (`+orgColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		org.ID, org.Name, org.Slug, org.VoterAccessCode, org.AdminAccessCode, org.IsActive, org.CreatedAt)
	if constraint, ok := postgres.UniqueViolation(err); ok {
		if constraint == "organizations_slug_key" {
			return models.ErrSlugTaken
		}
		return models.ErrAccessCodeTaken
	}
	if err != nil {
		return fmt.Errorf("insert organization: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, orgID id.OrganizationID) (*models.Organization, error) {
	ctx, q, cancel := s.db.Scope(ctx)
	defer cancel()
	row := q.QueryRowContext(ctx, `SELECT `+orgColumns+` FROM organizations WHERE id = $1`, orgID)
	return scanOrganization(row)
}

func (s *Postgres) SlugExists(ctx context.Context, slug string) (bool, error) {
	ctx, q, cancel := s.db.Scope(ctx)
	defer cancel()
	var exists bool
	err := q.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM organizations WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check slug: %w", err)
	}
	return exists, nil
}

func (s *Postgres) FindByAccessCode(ctx context.Context, code string) (*models.Organization, error) {
	ctx, q, cancel := s.db.Scope(ctx)
	defer cancel()
	row := q.QueryRowContext(ctx, `
		SELECT `+orgColumns+` FROM organizations
		WHERE is_active AND (voter_access_code = $1 OR admin_access_code = $1)`, code)
	return scanOrganization(row)
}

func (s *Postgres) Delete(ctx context.Context, orgID id.OrganizationID) error {
	ctx, q, cancel := s.db.Scope(ctx)
	defer cancel()
	if _, err := q.ExecContext(ctx, `DELETE FROM organizations WHERE id = $1`, orgID); err != nil {
		return fmt.Errorf("delete organization: %w", err)
	}
	return nil
}

func scanOrganization(row *sql.Row) (*models.Organization, error) {
	var org models.Organization
	err := row.Scan(&org.ID, &org.Name, &org.Slug, &org.VoterAccessCode, &org.AdminAccessCode, &org.IsActive, &org.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("organization: %w", sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scan organization: %w", err)
	}
	return &org, nil
}
