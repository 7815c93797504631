package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"quorum/internal/ballot/models"
	"quorum/internal/platform/postgres"
	id "quorum/pkg/domain"
	"quorum/pkg/platform/sentinel"
	"quorum/pkg/platform/tx"
)

// Postgres serialises commits per election with SELECT ... FOR UPDATE on the
// election row, which also guards the chain head.
type Postgres struct {
	db *postgres.DB
}

func NewPostgres(db *postgres.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) CreateElection(ctx context.Context, e *models.Election) error {
	return s.db.RunInTx(ctx, func(ctx context.Context) error {
		ctx, q, cancel := s.db.Scope(ctx)
		defer cancel()

		_, err := q.ExecContext(ctx, `
			INSERT INTO elections (id, organization_id, name, start_time, end_time, is_active,
				created_by, created_at, chain_head, chain_length)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 0)`,
			e.ID, e.OrganizationID, e.Name, e.StartTime, e.EndTime, e.IsActive,
			e.CreatedBy, e.CreatedAt, models.Genesis(e.ID))
		if _, ok := postgres.UniqueViolation(err); ok {
			return fmt.Errorf("election %s: %w", e.ID, sentinel.ErrAlreadyUsed)
		}
		if postgres.ForeignKeyViolation(err) {
			return fmt.Errorf("organization %s: %w", e.OrganizationID, sentinel.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("insert election: %w", err)
		}

		for _, c := range e.Candidates {
			if _, err := q.ExecContext(ctx, `
				INSERT INTO candidates (id, election_id, name, position) VALUES ($1, $2, $3, $4)`,
				c.ID, e.ID, c.Name, c.Position); err != nil {
				return fmt.Errorf("insert candidate: %w", err)
			}
		}
		return nil
	})
}

func (s *Postgres) FindElection(ctx context.Context, electionID id.ElectionID) (*models.Election, error) {
	ctx, q, cancel := s.db.Scope(ctx)
	defer cancel()

	var e models.Election
	err := q.QueryRowContext(ctx, `
		SELECT id, organization_id, name, start_time, end_time, is_active, created_by, created_at
		FROM elections WHERE id = $1`, electionID).
		Scan(&e.ID, &e.OrganizationID, &e.Name, &e.StartTime, &e.EndTime, &e.IsActive, &e.CreatedBy, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("election %s: %w", electionID, sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find election: %w", err)
	}

	rows, err := q.QueryContext(ctx, `
		SELECT id, election_id, name, position FROM candidates
		WHERE election_id = $1 ORDER BY position`, electionID)
	if err != nil {
		return nil, fmt.Errorf("find candidates: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(&c.ID, &c.ElectionID, &c.Name, &c.Position); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		e.Candidates = append(e.Candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate candidates: %w", err)
	}
	return &e, nil
}

func (s *Postgres) FindBallot(ctx context.Context, electionID id.ElectionID, voterID id.UserID) (*models.Ballot, error) {
	ctx, q, cancel := s.db.Scope(ctx)
	defer cancel()
	var b models.Ballot
	err := q.QueryRowContext(ctx, `
		SELECT election_id, voter_id, vote_id, change_count, first_cast_at, last_cast_at, can_change_until
		FROM ballots WHERE election_id = $1 AND voter_id = $2`, electionID, voterID).
		Scan(&b.ElectionID, &b.VoterID, &b.VoteID, &b.ChangeCount, &b.FirstCastAt, &b.LastCastAt, &b.CanChangeUntil)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("ballot: %w", sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find ballot: %w", err)
	}
	return &b, nil
}

func (s *Postgres) CommitCast(ctx context.Context, c *models.CastCommit) error {
	return s.db.RunInTx(ctx, func(ctx context.Context) error {
		ctx, q, cancel := s.db.Scope(ctx)
		defer cancel()

		electionID := c.Vote.ElectionID
		var (
			head   []byte
			length int64
		)
		err := q.QueryRowContext(ctx, `
			SELECT chain_head, chain_length FROM elections WHERE id = $1 FOR UPDATE`, electionID).
			Scan(&head, &length)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("election %s: %w", electionID, sentinel.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("lock chain head: %w", err)
		}

		if c.PreviousVoteID != nil {
			res, err := q.ExecContext(ctx, `
				UPDATE votes SET superseded = TRUE WHERE id = $1 AND NOT superseded`, *c.PreviousVoteID)
			if err != nil {
				return fmt.Errorf("supersede vote: %w", err)
			}
			if n, _ := res.RowsAffected(); n == 0 {
				return fmt.Errorf("previous vote already superseded: %w", sentinel.ErrConflict)
			}
		}

		link := models.Link(head, c.Vote.Leaf)
		v := c.Vote
		_, err = q.ExecContext(ctx, `
			INSERT INTO votes (id, election_id, voter_id, candidate_id, cast_at, payload, signature,
				leaf, chain_index, chain_digest, superseded)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, FALSE)
			ON CONFLICT DO NOTHING`,
			v.ID, v.ElectionID, v.VoterID, v.CandidateID, v.CastAt, v.Payload, v.Signature,
			v.Leaf, length, link)
		if err != nil {
			return fmt.Errorf("insert vote: %w", err)
		}

		if err := s.moveBallot(ctx, q, c); err != nil {
			return err
		}

		r := c.Receipt
		if _, err := q.ExecContext(ctx, `
			INSERT INTO receipts (id, vote_id, election_id, voter_id, cast_at, can_change_until,
				change_count, max_changes, chain_index, chain_digest)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			r.ID, r.VoteID, r.ElectionID, r.VoterID, r.CastAt, r.CanChangeUntil,
			r.ChangeCount, r.MaxChanges, length, link); err != nil {
			return fmt.Errorf("insert receipt: %w", err)
		}

		if _, err := q.ExecContext(ctx, `
			UPDATE elections SET chain_head = $2, chain_length = $3 WHERE id = $1`,
			electionID, link, length+1); err != nil {
			return fmt.Errorf("advance chain head: %w", err)
		}

		c.Vote.ChainIndex, c.Vote.ChainDigest = length, link
		c.Receipt.ChainIndex, c.Receipt.ChainDigest = length, link
		return nil
	})
}

// moveBallot is the compare-and-swap on change_count. A first cast inserts;
// a change updates only if the count is still the one the caller observed.
// The vote insert above used ON CONFLICT DO NOTHING, so a lost race surfaces
// here as zero affected rows rather than an aborted transaction.
func (s *Postgres) moveBallot(ctx context.Context, q tx.Executor, c *models.CastCommit) error {
	b := c.Ballot
	var (
		res sql.Result
		err error
	)
	if c.ExpectedChangeCount < 0 {
		res, err = q.ExecContext(ctx, `
			INSERT INTO ballots (election_id, voter_id, vote_id, change_count, first_cast_at, last_cast_at, can_change_until)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (election_id, voter_id) DO NOTHING`,
			b.ElectionID, b.VoterID, b.VoteID, b.ChangeCount, b.FirstCastAt, b.LastCastAt, b.CanChangeUntil)
	} else {
		res, err = q.ExecContext(ctx, `
			UPDATE ballots SET vote_id = $3, change_count = $4, last_cast_at = $5, can_change_until = $6
			WHERE election_id = $1 AND voter_id = $2 AND change_count = $7`,
			b.ElectionID, b.VoterID, b.VoteID, b.ChangeCount, b.LastCastAt, b.CanChangeUntil, c.ExpectedChangeCount)
	}
	if err != nil {
		return fmt.Errorf("update ballot: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("ballot changed concurrently: %w", sentinel.ErrConflict)
	}
	return nil
}

func (s *Postgres) FindReceipt(ctx context.Context, receiptID string) (*models.Receipt, error) {
	ctx, q, cancel := s.db.Scope(ctx)
	defer cancel()
	var r models.Receipt
	err := q.QueryRowContext(ctx, `
		SELECT id, vote_id, election_id, voter_id, cast_at, can_change_until, change_count,
			max_changes, chain_index, chain_digest
		FROM receipts WHERE id = $1`, receiptID).
		Scan(&r.ID, &r.VoteID, &r.ElectionID, &r.VoterID, &r.CastAt, &r.CanChangeUntil, &r.ChangeCount,
			&r.MaxChanges, &r.ChainIndex, &r.ChainDigest)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("receipt: %w", sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find receipt: %w", err)
	}
	return &r, nil
}

const voteColumns = `id, election_id, voter_id, candidate_id, cast_at, payload, signature,
	leaf, chain_index, chain_digest, superseded`

func scanVote(row interface{ Scan(dest ...any) error }) (*models.Vote, error) {
	var v models.Vote
	err := row.Scan(&v.ID, &v.ElectionID, &v.VoterID, &v.CandidateID, &v.CastAt, &v.Payload, &v.Signature,
		&v.Leaf, &v.ChainIndex, &v.ChainDigest, &v.Superseded)
	return &v, err
}

func (s *Postgres) FindVote(ctx context.Context, voteID id.VoteID) (*models.Vote, error) {
	ctx, q, cancel := s.db.Scope(ctx)
	defer cancel()
	v, err := scanVote(q.QueryRowContext(ctx, `SELECT `+voteColumns+` FROM votes WHERE id = $1`, voteID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("vote %s: %w", voteID, sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find vote: %w", err)
	}
	return v, nil
}

func (s *Postgres) ChainPrefix(ctx context.Context, electionID id.ElectionID, through int64) ([]*models.Vote, error) {
	ctx, q, cancel := s.db.Scope(ctx)
	defer cancel()
	rows, err := q.QueryContext(ctx, `SELECT `+voteColumns+` FROM votes
		WHERE election_id = $1 AND chain_index <= $2 ORDER BY chain_index`, electionID, through)
	if err != nil {
		return nil, fmt.Errorf("load chain: %w", err)
	}
	defer rows.Close()

	var votes []*models.Vote
	for rows.Next() {
		v, err := scanVote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vote: %w", err)
		}
		votes = append(votes, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chain: %w", err)
	}
	if through < 0 || int64(len(votes)) <= through {
		return nil, fmt.Errorf("chain index %d: %w", through, sentinel.ErrNotFound)
	}
	return votes, nil
}
