package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "quorum/pkg/domain"
	dErrors "quorum/pkg/domain-errors"
)

var t0 = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

func TestNewElection(t *testing.T) {
	org := id.NewOrganizationID()
	creator := id.NewUserID()

	cases := []struct {
		name       string
		title      string
		start, end time.Time
		candidates []string
		code       dErrors.Code
	}{
		{"empty name", " ", t0, t0.Add(time.Hour), []string{"A", "B"}, dErrors.CodeValidation},
		{"start equals end", "Board", t0, t0, []string{"A", "B"}, dErrors.CodeValidation},
		{"end before start", "Board", t0, t0.Add(-time.Hour), []string{"A", "B"}, dErrors.CodeValidation},
		{"one candidate", "Board", t0, t0.Add(time.Hour), []string{"A"}, dErrors.CodeValidation},
		{"duplicate candidates", "Board", t0, t0.Add(time.Hour), []string{"Ada", "ada "}, dErrors.CodeValidation},
		{"blank candidate", "Board", t0, t0.Add(time.Hour), []string{"Ada", ""}, dErrors.CodeValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewElection(org, tc.title, tc.start, tc.end, tc.candidates, creator, t0)
			assert.True(t, dErrors.HasCode(err, tc.code), "got %v", err)
		})
	}

	t.Run("candidates keep their order", func(t *testing.T) {
		e, err := NewElection(org, "Board", t0, t0.Add(time.Hour), []string{"Ada", "Grace", "Linus"}, creator, t0)
		require.NoError(t, err)
		require.Len(t, e.Candidates, 3)
		assert.Equal(t, "Grace", e.Candidates[1].Name)
		assert.Equal(t, 1, e.Candidates[1].Position)
		assert.Equal(t, e.ID, e.Candidates[1].ElectionID)

		c, ok := e.Candidate(e.Candidates[2].ID)
		require.True(t, ok)
		assert.Equal(t, "Linus", c.Name)
		_, ok = e.Candidate(id.NewCandidateID())
		assert.False(t, ok)
	})
}

func TestStatusAt(t *testing.T) {
	e := &Election{StartTime: t0, EndTime: t0.Add(time.Hour), IsActive: true}

	assert.Equal(t, StatusUpcoming, e.StatusAt(t0.Add(-time.Second)))
	assert.Equal(t, StatusActive, e.StatusAt(t0))
	assert.Equal(t, StatusActive, e.StatusAt(t0.Add(time.Hour)), "end is inclusive")
	assert.Equal(t, StatusEnded, e.StatusAt(t0.Add(time.Hour+time.Second)))

	e.IsActive = false
	assert.Equal(t, StatusEnded, e.StatusAt(t0.Add(time.Minute)), "disabled elections are ended")
}

func TestBallotIsFinalAt(t *testing.T) {
	b := &Ballot{CanChangeUntil: t0.Add(10 * time.Minute)}
	assert.False(t, b.IsFinalAt(t0.Add(10*time.Minute)))
	assert.True(t, b.IsFinalAt(t0.Add(10*time.Minute+time.Nanosecond)))
}

func chainOf(t *testing.T, electionID id.ElectionID, n int) []*Vote {
	t.Helper()
	head := Genesis(electionID)
	votes := make([]*Vote, n)
	for i := range votes {
		v := &Vote{
			ID:         id.NewVoteID(),
			ElectionID: electionID,
			VoterID:    id.NewUserID(),
			CastAt:     t0.Add(time.Duration(i) * time.Second),
			Signature:  []byte{byte(i), 0xAA},
			ChainIndex: int64(i),
		}
		leaf, err := Leaf(v)
		require.NoError(t, err)
		head = Link(head, leaf)
		v.Leaf = leaf
		v.ChainDigest = head
		votes[i] = v
	}
	return votes
}

func TestReplay(t *testing.T) {
	electionID := id.NewElectionID()

	t.Run("intact chain replays to the last digest", func(t *testing.T) {
		votes := chainOf(t, electionID, 4)
		head, err := Replay(electionID, votes)
		require.NoError(t, err)
		assert.Equal(t, votes[3].ChainDigest, head)

		again, err := Replay(electionID, votes)
		require.NoError(t, err)
		assert.Equal(t, head, again)
	})

	t.Run("leaf ignores the candidate", func(t *testing.T) {
		votes := chainOf(t, electionID, 1)
		before, err := Leaf(votes[0])
		require.NoError(t, err)
		votes[0].CandidateID = id.NewCandidateID()
		after, err := Leaf(votes[0])
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("altered earlier vote is detected", func(t *testing.T) {
		votes := chainOf(t, electionID, 4)
		votes[1].CastAt = votes[1].CastAt.Add(time.Minute)
		_, err := Replay(electionID, votes)
		assert.Error(t, err)
	})

	t.Run("removed vote is detected", func(t *testing.T) {
		votes := chainOf(t, electionID, 3)
		_, err := Replay(electionID, append(votes[:1:1], votes[2]))
		assert.Error(t, err)
	})

	t.Run("genesis is per election", func(t *testing.T) {
		assert.NotEqual(t, Genesis(electionID), Genesis(id.NewElectionID()))
	})
}

func TestReceiptID(t *testing.T) {
	voteID := id.NewVoteID()
	a := ReceiptID(voteID, []byte("sig-a"))
	assert.Len(t, a, 32)
	assert.Equal(t, a, ReceiptID(voteID, []byte("sig-a")))
	assert.NotEqual(t, a, ReceiptID(voteID, []byte("sig-b")))
	assert.NotEqual(t, a, ReceiptID(id.NewVoteID(), []byte("sig-a")))
}
