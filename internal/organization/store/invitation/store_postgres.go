package invitation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"quorum/internal/organization/models"
	"quorum/internal/platform/postgres"
	"quorum/pkg/platform/sentinel"
)

type Postgres struct {
	db *postgres.DB
}

func NewPostgres(db *postgres.DB) *Postgres {
	return &Postgres{db: db}
}

const invitationColumns = `token, organization_id, role, email, usage_limit, used_count, expires_at, is_active, created_by, created_at`

func (s *Postgres) Create(ctx context.Context, t *models.InvitationToken) error {
	ctx, q, cancel := s.db.Scope(ctx)
	defer cancel()
	var email sql.NullString
	if t.Email != "" {
		email = sql.NullString{String: t.Email, Valid: true}
	}
	_, err := q.ExecContext(ctx, `
		INSERT INTO invitation_tokens (`+invitationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		t.TokenDigest, t.OrganizationID, t.Role, email, t.UsageLimit, t.UsedCount, t.ExpiresAt, t.IsActive, t.CreatedBy, t.CreatedAt)
	if _, ok := postgres.UniqueViolation(err); ok {
		return fmt.Errorf("invitation: %w", sentinel.ErrAlreadyUsed)
	}
	if err != nil {
		return fmt.Errorf("insert invitation: %w", err)
	}
	return nil
}

func (s *Postgres) FindByDigest(ctx context.Context, digest string) (*models.InvitationToken, error) {
	ctx, q, cancel := s.db.Scope(ctx)
	defer cancel()
	return scanInvitation(q.QueryRowContext(ctx, `SELECT `+invitationColumns+` FROM invitation_tokens WHERE token = $1`, digest))
}

// IncrementUsage is a compare-and-swap on used_count.
func (s *Postgres) IncrementUsage(ctx context.Context, digest string, expectedUsed int) (*models.InvitationToken, error) {
	ctx, q, cancel := s.db.Scope(ctx)
	defer cancel()
	t, err := scanInvitation(q.QueryRowContext(ctx, `
		UPDATE invitation_tokens SET used_count = used_count + 1
		WHERE token = $1 AND used_count = $2 AND used_count < usage_limit AND is_active
		RETURNING `+invitationColumns, digest, expectedUsed))
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, fmt.Errorf("invitation usage changed: %w", sentinel.ErrConflict)
	}
	return t, err
}

func (s *Postgres) ReleaseUsage(ctx context.Context, digest string) error {
	ctx, q, cancel := s.db.Scope(ctx)
	defer cancel()
	_, err := q.ExecContext(ctx, `
		UPDATE invitation_tokens SET used_count = used_count - 1
		WHERE token = $1 AND used_count > 0`, digest)
	if err != nil {
		return fmt.Errorf("release invitation use: %w", err)
	}
	return nil
}

func (s *Postgres) Deactivate(ctx context.Context, digest string) (*models.InvitationToken, error) {
	ctx, q, cancel := s.db.Scope(ctx)
	defer cancel()
	return scanInvitation(q.QueryRowContext(ctx, `
		UPDATE invitation_tokens SET is_active = FALSE WHERE token = $1
		RETURNING `+invitationColumns, digest))
}

func (s *Postgres) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx, q, cancel := s.db.Scope(ctx)
	defer cancel()
	res, err := q.ExecContext(ctx, `DELETE FROM invitation_tokens WHERE expires_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete expired invitations: %w", err)
	}
	return res.RowsAffected()
}

func scanInvitation(row *sql.Row) (*models.InvitationToken, error) {
	var (
		t     models.InvitationToken
		email sql.NullString
	)
	err := row.Scan(&t.TokenDigest, &t.OrganizationID, &t.Role, &email, &t.UsageLimit, &t.UsedCount,
		&t.ExpiresAt, &t.IsActive, &t.CreatedBy, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("invitation: %w", sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scan invitation: %w", err)
	}
	t.Email = email.String
	return &t, nil
}
