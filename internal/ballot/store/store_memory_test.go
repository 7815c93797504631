package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quorum/internal/ballot/models"
	id "quorum/pkg/domain"
	"quorum/pkg/platform/sentinel"
)

func newElection(t *testing.T, now time.Time) *models.Election {
	t.Helper()
	e, err := models.NewElection(id.NewOrganizationID(), "Board", now, now.Add(time.Hour), []string{"A", "B"}, id.NewUserID(), now)
	require.NoError(t, err)
	return e
}

func newCommit(t *testing.T, e *models.Election, voter id.UserID, expected int, prev *id.VoteID, now time.Time) *models.CastCommit {
	t.Helper()
	v := &models.Vote{
		ID:          id.NewVoteID(),
		ElectionID:  e.ID,
		VoterID:     voter,
		CandidateID: e.Candidates[0].ID,
		CastAt:      now,
		Signature:   []byte("sig"),
	}
	leaf, err := models.Leaf(v)
	require.NoError(t, err)
	v.Leaf = leaf
	return &models.CastCommit{
		Vote:                v,
		Ballot:              &models.Ballot{ElectionID: e.ID, VoterID: voter, VoteID: v.ID, ChangeCount: expected + 1, CanChangeUntil: now.Add(time.Minute)},
		Receipt:             &models.Receipt{ID: models.ReceiptID(v.ID, v.Signature), VoteID: v.ID, ElectionID: e.ID, VoterID: voter, CastAt: now},
		PreviousVoteID:      prev,
		ExpectedChangeCount: expected,
	}
}

func TestInMemoryCommitCast(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	t.Run("appends to the chain and writes the position back", func(t *testing.T) {
		s := NewInMemory()
		e := newElection(t, now)
		require.NoError(t, s.CreateElection(ctx, e))

		first := newCommit(t, e, id.NewUserID(), -1, nil, now)
		require.NoError(t, s.CommitCast(ctx, first))
		second := newCommit(t, e, id.NewUserID(), -1, nil, now)
		require.NoError(t, s.CommitCast(ctx, second))

		assert.Equal(t, int64(0), first.Receipt.ChainIndex)
		assert.Equal(t, int64(1), second.Receipt.ChainIndex)

		chain, err := s.ChainPrefix(ctx, e.ID, 1)
		require.NoError(t, err)
		head, err := models.Replay(e.ID, chain)
		require.NoError(t, err)
		assert.Equal(t, second.Receipt.ChainDigest, head)

		r, err := s.FindReceipt(ctx, second.Receipt.ID)
		require.NoError(t, err)
		assert.Equal(t, second.Vote.ID, r.VoteID)
	})

	t.Run("second first-cast for the same voter conflicts", func(t *testing.T) {
		s := NewInMemory()
		e := newElection(t, now)
		require.NoError(t, s.CreateElection(ctx, e))
		voter := id.NewUserID()

		require.NoError(t, s.CommitCast(ctx, newCommit(t, e, voter, -1, nil, now)))
		assert.ErrorIs(t, s.CommitCast(ctx, newCommit(t, e, voter, -1, nil, now)), sentinel.ErrConflict)
	})

	t.Run("change with stale count conflicts and leaves the chain alone", func(t *testing.T) {
		s := NewInMemory()
		e := newElection(t, now)
		require.NoError(t, s.CreateElection(ctx, e))
		voter := id.NewUserID()

		first := newCommit(t, e, voter, -1, nil, now)
		require.NoError(t, s.CommitCast(ctx, first))
		require.NoError(t, s.CommitCast(ctx, newCommit(t, e, voter, 0, &first.Vote.ID, now)))

		stale := newCommit(t, e, voter, 0, &first.Vote.ID, now)
		assert.ErrorIs(t, s.CommitCast(ctx, stale), sentinel.ErrConflict)

		_, err := s.ChainPrefix(ctx, e.ID, 2)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)

		old, err := s.FindVote(ctx, first.Vote.ID)
		require.NoError(t, err)
		assert.True(t, old.Superseded)
	})

	t.Run("unknown election", func(t *testing.T) {
		s := NewInMemory()
		e := newElection(t, now)
		assert.ErrorIs(t, s.CommitCast(ctx, newCommit(t, e, id.NewUserID(), -1, nil, now)), sentinel.ErrNotFound)
	})

	t.Run("returned votes are copies", func(t *testing.T) {
		s := NewInMemory()
		e := newElection(t, now)
		require.NoError(t, s.CreateElection(ctx, e))
		c := newCommit(t, e, id.NewUserID(), -1, nil, now)
		require.NoError(t, s.CommitCast(ctx, c))

		v, err := s.FindVote(ctx, c.Vote.ID)
		require.NoError(t, err)
		v.Signature[0] = 'X'

		again, err := s.FindVote(ctx, c.Vote.ID)
		require.NoError(t, err)
		assert.Equal(t, []byte("sig"), again.Signature)
	})
}

func TestInMemoryLookups(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()

	_, err := s.FindElection(ctx, id.NewElectionID())
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
	_, err = s.FindBallot(ctx, id.NewElectionID(), id.NewUserID())
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
	_, err = s.FindReceipt(ctx, "missing")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
	_, err = s.ChainPrefix(ctx, id.NewElectionID(), -1)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}
