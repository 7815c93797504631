package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

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

func (s *Postgres) Create(ctx context.Context, u *models.User) error {
	ctx, q, cancel := s.db.Scope(ctx)
	defer cancel()
	var hash sql.NullString
	if u.PasswordHash != "" {
		hash = sql.NullString{String: u.PasswordHash, Valid: true}
	}
	// ON CONFLICT keeps an enclosing transaction usable when the email is taken.
	res, err := q.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO NOTHING`,
		u.ID, u.Name, strings.ToLower(u.Email), hash, u.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrEmailTaken
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, userID id.UserID) (*models.User, error) {
	ctx, q, cancel := s.db.Scope(ctx)
	defer cancel()
	return scanUser(q.QueryRowContext(ctx, `SELECT id, name, email, password_hash, created_at FROM users WHERE id = $1`, userID))
}

func (s *Postgres) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, q, cancel := s.db.Scope(ctx)
	defer cancel()
	return scanUser(q.QueryRowContext(ctx, `SELECT id, name, email, password_hash, created_at FROM users WHERE email = $1`, strings.ToLower(email)))
}

func (s *Postgres) Delete(ctx context.Context, userID id.UserID) error {
	ctx, q, cancel := s.db.Scope(ctx)
	defer cancel()
	if _, err := q.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, userID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	var (
		u    models.User
		hash sql.NullString
	)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &hash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user: %w", sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	u.PasswordHash = hash.String
	return &u, nil
}
