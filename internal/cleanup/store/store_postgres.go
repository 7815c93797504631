package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"quorum/internal/cleanup/models"
	"quorum/internal/platform/postgres"
)

type Postgres struct {
	db *postgres.DB
}

func NewPostgres(db *postgres.DB) *Postgres {
	return &Postgres{db: db}
}

// Append writes one row per category in a single transaction.
func (s *Postgres) Append(ctx context.Context, runs []models.Run) error {
	return s.db.RunInTx(ctx, func(ctx context.Context) error {
		ctx, q, cancel := s.db.Scope(ctx)
		defer cancel()
		for _, r := range runs {
			_, err := q.ExecContext(ctx, `
				INSERT INTO cleanup_runs (id, run_id, category, run_trigger, records_affected, duration_ms, status, error_message, started_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
				r.ID, r.RunID, r.Category, r.Trigger, r.RecordsAffected, r.Duration.Milliseconds(), r.Status,
				sql.NullString{String: r.Error, Valid: r.Error != ""}, r.StartedAt)
			if err != nil {
				return fmt.Errorf("insert cleanup run: %w", err)
			}
		}
		return nil
	})
}

func (s *Postgres) Recent(ctx context.Context, limit int) ([]models.Run, error) {
	ctx, q, cancel := s.db.Scope(ctx)
	defer cancel()
	rows, err := q.QueryContext(ctx, `
		SELECT id, run_id, category, run_trigger, records_affected, duration_ms, status, error_message, started_at
		FROM cleanup_runs ORDER BY started_at DESC, category LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list cleanup runs: %w", err)
	}
	defer rows.Close()

	var out []models.Run
	for rows.Next() {
		var (
			r      models.Run
			ms     int64
			errMsg sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.RunID, &r.Category, &r.Trigger, &r.RecordsAffected, &ms, &r.Status, &errMsg, &r.StartedAt); err != nil {
			return nil, fmt.Errorf("scan cleanup run: %w", err)
		}
		r.Duration = time.Duration(ms) * time.Millisecond
		r.Error = errMsg.String
		out = append(out, r)
	}
	return out, rows.Err()
}
