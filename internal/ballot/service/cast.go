package service

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"quorum/internal/ballot/models"
	id "quorum/pkg/domain"
	dErrors "quorum/pkg/domain-errors"
	"quorum/pkg/platform/audit"
	"quorum/pkg/platform/retry"
	"quorum/pkg/platform/sentinel"
	"quorum/pkg/requestcontext"
)

// CastResult is a committed vote's receipt plus its portable token.
type CastResult struct {
	Receipt *models.Receipt
	Token   string
	Changed bool
}

// Cast records the principal's vote for candidateID. The first cast opens a
// change window; each permitted change re-opens it from the time of the
// change. A commit that loses a race to another cast of the same ballot is
// re-evaluated against the new state, up to the retry policy.
func (s *Service) Cast(ctx context.Context, p requestcontext.Principal, electionID id.ElectionID, candidateID id.CandidateID) (res *CastResult, err error) {
	ctx, span := s.tracer.Start(ctx, "ballot.Cast",
		trace.WithAttributes(attribute.String("election_id", electionID.String())))
	defer func() { endSpan(span, err) }()

	res, err = retry.OnConflict(ctx, s.cfg.Retry, func() (*CastResult, error) {
		return s.castOnce(ctx, p, electionID, candidateID)
	})
	if err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			err = dErrors.Wrap(err, dErrors.CodeConflict, "ballot changed concurrently, please retry")
		}
		s.metrics.IncCastRejection(string(dErrors.CodeOf(err)))
		return nil, err
	}

	kind, action := "first", audit.ActionVoteCast
	if res.Changed {
		kind, action = "change", audit.ActionVoteChanged
	}
	span.SetAttributes(attribute.Int("change_count", res.Receipt.ChangeCount))
	s.metrics.IncVoteCast(kind)
	s.emit(ctx, audit.Event{
		Action:         action,
		UserID:         p.UserID,
		OrganizationID: p.OrganizationID,
		Subject:        electionID.String(),
	})
	return res, nil
}

func (s *Service) castOnce(ctx context.Context, p requestcontext.Principal, electionID id.ElectionID, candidateID id.CandidateID) (*CastResult, error) {
	// The ledger stores microseconds; signing at that precision keeps
	// signatures reproducible from stored values.
	now := requestcontext.Now(ctx).UTC().Truncate(time.Microsecond)

	election, err := s.loadElection(ctx, p, electionID)
	if err != nil {
		return nil, err
	}
	if election.StatusAt(now) != models.StatusActive {
		return nil, dErrors.New(dErrors.CodeElectionNotActive, "election is not accepting votes")
	}
	if _, ok := election.Candidate(candidateID); !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "candidate not found")
	}

	ballot, err := s.store.FindBallot(ctx, electionID, p.UserID)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.FromStore(err, "failed to load ballot")
	}

	commit := &models.CastCommit{ExpectedChangeCount: -1}
	next := &models.Ballot{
		ElectionID:     electionID,
		VoterID:        p.UserID,
		FirstCastAt:    now,
		LastCastAt:     now,
		CanChangeUntil: now.Add(s.cfg.ChangeWindow),
	}
	if ballot != nil {
		if ballot.IsFinalAt(now) {
			return nil, dErrors.New(dErrors.CodeAlreadyFinal, "the change window for this vote has closed")
		}
		if ballot.ChangeCount >= s.cfg.MaxChanges {
			return nil, dErrors.New(dErrors.CodeChangeLimitExceeded, "no vote changes remaining")
		}
		commit.ExpectedChangeCount = ballot.ChangeCount
		commit.PreviousVoteID = &ballot.VoteID
		next.ChangeCount = ballot.ChangeCount + 1
		next.FirstCastAt = ballot.FirstCastAt
	}

	vote, err := s.seal(&models.Vote{
		ID:          id.NewVoteID(),
		ElectionID:  electionID,
		VoterID:     p.UserID,
		CandidateID: candidateID,
		CastAt:      now,
	})
	if err != nil {
		return nil, err
	}
	next.VoteID = vote.ID
	commit.Vote = vote
	commit.Ballot = next
	commit.Receipt = &models.Receipt{
		ID:             models.ReceiptID(vote.ID, vote.Signature),
		VoteID:         vote.ID,
		ElectionID:     electionID,
		VoterID:        p.UserID,
		CastAt:         now,
		CanChangeUntil: next.CanChangeUntil,
		ChangeCount:    next.ChangeCount,
		MaxChanges:     s.cfg.MaxChanges,
	}

	if err := s.store.CommitCast(ctx, commit); err != nil {
		switch {
		case errors.Is(err, sentinel.ErrConflict):
			s.metrics.IncCastConflict()
			return nil, err
		case errors.Is(err, sentinel.ErrNotFound):
			return nil, dErrors.New(dErrors.CodeNotFound, "election not found")
		default:
			return nil, dErrors.FromStore(err, "failed to record vote")
		}
	}

	token, err := s.tokens.Issue(commit.Receipt, now)
	if err != nil {
		// The vote is committed; the receipt id alone still verifies.
		s.logger.ErrorContext(ctx, "failed to sign receipt token",
			"request_id", requestcontext.RequestID(ctx),
			"receipt_id", commit.Receipt.ID,
			"error", err,
		)
	}
	return &CastResult{Receipt: commit.Receipt, Token: token, Changed: ballot != nil}, nil
}

// seal signs, encrypts and commits to v. The leaf excludes the candidate.
func (s *Service) seal(v *models.Vote) (*models.Vote, error) {
	payload := models.PayloadOf(v)
	sig, err := s.sealer.Sign(payload)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign vote")
	}
	v.Signature = sig
	if v.Payload, err = s.sealer.Seal(v.ID, payload); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to encrypt vote")
	}
	if v.Leaf, err = models.Leaf(v); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to commit vote")
	}
	return v, nil
}
