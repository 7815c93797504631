//go:build integration

package store_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"quorum/internal/ballot/models"
	"quorum/internal/ballot/store"
	orgmodels "quorum/internal/organization/models"
	"quorum/internal/organization/store/organization"
	"quorum/internal/platform/postgres"
	id "quorum/pkg/domain"
	"quorum/pkg/platform/sentinel"
	"quorum/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.Postgres
	orgs     *organization.Postgres
	now      time.Time
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	db := postgres.NewDB(s.postgres.DB, 5*time.Second)
	s.store = store.NewPostgres(db)
	s.orgs = organization.NewPostgres(db)
	s.now = time.Now().UTC().Truncate(time.Microsecond)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "receipts", "ballots", "votes", "candidates", "elections", "organizations"))
}

func (s *PostgresStoreSuite) newElection() *models.Election {
	ctx := context.Background()
	suffix := id.NewOrganizationID().String()[:8]
	org, err := orgmodels.NewOrganization(id.NewOrganizationID(), "Org "+suffix, "V"+suffix, "A"+suffix, s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.orgs.Create(ctx, org))

	e, err := models.NewElection(org.ID, "Board", s.now, s.now.Add(time.Hour), []string{"A", "B"}, id.NewUserID(), s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.store.CreateElection(ctx, e))
	return e
}

func (s *PostgresStoreSuite) commit(e *models.Election, voter id.UserID, expected int, prev *id.VoteID) *models.CastCommit {
	v := &models.Vote{
		ID:          id.NewVoteID(),
		ElectionID:  e.ID,
		VoterID:     voter,
		CandidateID: e.Candidates[0].ID,
		CastAt:      s.now,
		Payload:     []byte{0x01},
		Signature:   []byte("sig"),
	}
	leaf, err := models.Leaf(v)
	s.Require().NoError(err)
	v.Leaf = leaf
	return &models.CastCommit{
		Vote:                v,
		Ballot:              &models.Ballot{ElectionID: e.ID, VoterID: voter, VoteID: v.ID, ChangeCount: expected + 1, FirstCastAt: s.now, LastCastAt: s.now, CanChangeUntil: s.now.Add(time.Minute)},
		Receipt:             &models.Receipt{ID: models.ReceiptID(v.ID, v.Signature), VoteID: v.ID, ElectionID: e.ID, VoterID: voter, CastAt: s.now, CanChangeUntil: s.now.Add(time.Minute), ChangeCount: expected + 1, MaxChanges: 3},
		PreviousVoteID:      prev,
		ExpectedChangeCount: expected,
	}
}

func (s *PostgresStoreSuite) TestElectionRoundTrip() {
	e := s.newElection()
	got, err := s.store.FindElection(context.Background(), e.ID)
	s.Require().NoError(err)
	s.Equal(e.Name, got.Name)
	s.Equal(e.Candidates, got.Candidates)
}

func (s *PostgresStoreSuite) TestChainReplaysFromStoredRows() {
	ctx := context.Background()
	e := s.newElection()

	var last *models.CastCommit
	for range 5 {
		last = s.commit(e, id.NewUserID(), -1, nil)
		s.Require().NoError(s.store.CommitCast(ctx, last))
	}

	chain, err := s.store.ChainPrefix(ctx, e.ID, last.Receipt.ChainIndex)
	s.Require().NoError(err)
	s.Len(chain, 5)
	head, err := models.Replay(e.ID, chain)
	s.Require().NoError(err)
	s.Equal(last.Receipt.ChainDigest, head)

	r, err := s.store.FindReceipt(ctx, last.Receipt.ID)
	s.Require().NoError(err)
	s.Equal(last.Receipt.ChainDigest, r.ChainDigest)
}

// TestConcurrentChangesCommitOnce races changes keyed on the same observed
// change count; exactly one may commit.
func (s *PostgresStoreSuite) TestConcurrentChangesCommitOnce() {
	ctx := context.Background()
	e := s.newElection()
	voter := id.NewUserID()
	first := s.commit(e, voter, -1, nil)
	s.Require().NoError(s.store.CommitCast(ctx, first))

	const racers = 10
	errs := make([]error, racers)
	var wg sync.WaitGroup
	for i := range racers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.store.CommitCast(ctx, s.commit(e, voter, 0, &first.Vote.ID))
		}(i)
	}
	wg.Wait()

	var ok int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, sentinel.ErrConflict):
		default:
			s.Failf("unexpected error", "%v", err)
		}
	}
	s.Equal(1, ok)

	b, err := s.store.FindBallot(ctx, e.ID, voter)
	s.Require().NoError(err)
	s.Equal(1, b.ChangeCount)

	old, err := s.store.FindVote(ctx, first.Vote.ID)
	s.Require().NoError(err)
	s.True(old.Superseded)
}
