package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"quorum/internal/otp/models"
	"quorum/internal/platform/postgres"
	"quorum/pkg/platform/sentinel"
)

type Postgres struct {
	db *postgres.DB
}

func NewPostgres(db *postgres.DB) *Postgres {
	return &Postgres{db: db}
}

// Replace upserts on the email primary key so issuance is a single atomic
// statement regardless of concurrent issuers.
func (s *Postgres) Replace(ctx context.Context, otp *models.OTP) error {
	ctx, q, cancel := s.db.Scope(ctx)
	defer cancel()
	_, err := q.ExecContext(ctx, `
		INSERT INTO otps (email, id, code, expires_at, is_verified, verified_at, consumed_at, attempts, created_at)
		VALUES ($1, $2, $3, $4, FALSE, NULL, NULL, 0, $5)
		ON CONFLICT (email) DO UPDATE SET
			id = EXCLUDED.id,
			replaced = CASE WHEN otps.is_verified THEN NULL ELSE otps.code END,
			code = EXCLUDED.code,
			expires_at = EXCLUDED.expires_at,
			is_verified = FALSE,
			verified_at = NULL,
			consumed_at = NULL,
			attempts = 0,
			created_at = EXCLUDED.created_at`,
		otp.Email, otp.ID, otp.CodeDigest, otp.ExpiresAt, otp.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert otp: %w", err)
	}
	return nil
}

func (s *Postgres) Find(ctx context.Context, email string) (*models.OTP, error) {
	ctx, q, cancel := s.db.Scope(ctx)
	defer cancel()
	var (
		o                      models.OTP
		replaced               sql.NullString
		verifiedAt, consumedAt sql.NullTime
	)
	err := q.QueryRowContext(ctx, `
		SELECT id, email, code, replaced, expires_at, is_verified, verified_at, consumed_at, attempts, created_at
		FROM otps WHERE email = $1`, email).
		Scan(&o.ID, &o.Email, &o.CodeDigest, &replaced, &o.ExpiresAt, &o.IsVerified, &verifiedAt, &consumedAt, &o.Attempts, &o.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("otp: %w", sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find otp: %w", err)
	}
	o.ReplacedDigest = replaced.String
	if verifiedAt.Valid {
		o.VerifiedAt = &verifiedAt.Time
	}
	if consumedAt.Valid {
		o.ConsumedAt = &consumedAt.Time
	}
	return &o, nil
}

func (s *Postgres) IncrementAttempts(ctx context.Context, email string, otpID uuid.UUID) (int, error) {
	ctx, q, cancel := s.db.Scope(ctx)
	defer cancel()
	var attempts int
	err := q.QueryRowContext(ctx, `
		UPDATE otps SET attempts = attempts + 1
		WHERE email = $1 AND id = $2
		RETURNING attempts`, email, otpID).Scan(&attempts)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("otp replaced: %w", sentinel.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("increment otp attempts: %w", err)
	}
	return attempts, nil
}

func (s *Postgres) MarkVerified(ctx context.Context, email string, otpID uuid.UUID, maxAttempts int, now time.Time) error {
	ctx, q, cancel := s.db.Scope(ctx)
	defer cancel()
	res, err := q.ExecContext(ctx, `
		UPDATE otps SET is_verified = TRUE, verified_at = $4
		WHERE email = $1 AND id = $2 AND NOT is_verified AND attempts < $3 AND expires_at >= $4`,
		email, otpID, maxAttempts, now)
	if err != nil {
		return fmt.Errorf("mark otp verified: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("otp state changed: %w", sentinel.ErrConflict)
	}
	return nil
}

func (s *Postgres) Consume(ctx context.Context, email string, verifiedSince, now time.Time) error {
	ctx, q, cancel := s.db.Scope(ctx)
	defer cancel()
	res, err := q.ExecContext(ctx, `
		UPDATE otps SET consumed_at = $3
		WHERE email = $1 AND is_verified AND consumed_at IS NULL AND verified_at >= $2`,
		email, verifiedSince, now)
	if err != nil {
		return fmt.Errorf("consume otp: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("no verification to consume: %w", sentinel.ErrNotFound)
	}
	return nil
}

func (s *Postgres) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx, q, cancel := s.db.Scope(ctx)
	defer cancel()
	res, err := q.ExecContext(ctx, `DELETE FROM otps WHERE expires_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete expired otps: %w", err)
	}
	return res.RowsAffected()
}
