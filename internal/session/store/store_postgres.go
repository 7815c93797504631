package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"quorum/internal/platform/postgres"
	"quorum/internal/session/models"
	"quorum/pkg/platform/sentinel"
)

type Postgres struct {
	db *postgres.DB
}

func NewPostgres(db *postgres.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Create(ctx context.Context, session *models.Session) error {
	ctx, q, cancel := s.db.Scope(ctx)
	defer cancel()
	_, err := q.ExecContext(ctx, `
		INSERT INTO sessions (id, token_digest, user_id, organization_id, created_at, expires_at,
			ip_address, user_agent, device_label, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		session.ID, session.TokenDigest, session.UserID, session.OrganizationID, session.CreatedAt,
		session.ExpiresAt, session.IPAddress, session.UserAgent, session.DeviceLabel, session.IsActive)
	if _, ok := postgres.UniqueViolation(err); ok {
		return fmt.Errorf("session: %w", sentinel.ErrAlreadyUsed)
	}
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (s *Postgres) FindByDigest(ctx context.Context, digest string) (*models.Session, error) {
	ctx, q, cancel := s.db.Scope(ctx)
	defer cancel()
	var (
		session   models.Session
		revokedAt sql.NullTime
	)
	err := q.QueryRowContext(ctx, `
		SELECT id, token_digest, user_id, organization_id, created_at, expires_at,
			ip_address, user_agent, device_label, is_active, revoked_at
		FROM sessions WHERE token_digest = $1`, digest).
		Scan(&session.ID, &session.TokenDigest, &session.UserID, &session.OrganizationID, &session.CreatedAt,
			&session.ExpiresAt, &session.IPAddress, &session.UserAgent, &session.DeviceLabel, &session.IsActive, &revokedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session: %w", sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	if revokedAt.Valid {
		session.RevokedAt = &revokedAt.Time
	}
	return &session, nil
}

func (s *Postgres) Revoke(ctx context.Context, digest string, now time.Time) (bool, error) {
	ctx, q, cancel := s.db.Scope(ctx)
	defer cancel()
	res, err := q.ExecContext(ctx, `
		UPDATE sessions SET is_active = FALSE, revoked_at = $2
		WHERE token_digest = $1 AND is_active`, digest, now)
	if err != nil {
		return false, fmt.Errorf("revoke session: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (s *Postgres) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx, q, cancel := s.db.Scope(ctx)
	defer cancel()
	res, err := q.ExecContext(ctx, `DELETE FROM sessions WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return res.RowsAffected()
}
