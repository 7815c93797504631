// Package store persists elections and the per-election vote ledger.
package store

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"quorum/internal/ballot/models"
	id "quorum/pkg/domain"
	"quorum/pkg/platform/sentinel"
)

type ballotKey struct {
	election id.ElectionID
	voter    id.UserID
}

// InMemory serialises every commit under one lock, which gives the same
// per-election ordering the PostgreSQL store gets from row locks.
type InMemory struct {
	mu        sync.RWMutex
	elections map[id.ElectionID]*models.Election
	ledgers   map[id.ElectionID][]*models.Vote
	heads     map[id.ElectionID][]byte
	votes     map[id.VoteID]*models.Vote
	ballots   map[ballotKey]*models.Ballot
	receipts  map[string]*models.Receipt
}

func NewInMemory() *InMemory {
	return &InMemory{
		elections: make(map[id.ElectionID]*models.Election),
		ledgers:   make(map[id.ElectionID][]*models.Vote),
		heads:     make(map[id.ElectionID][]byte),
		votes:     make(map[id.VoteID]*models.Vote),
		ballots:   make(map[ballotKey]*models.Ballot),
		receipts:  make(map[string]*models.Receipt),
	}
}

func (s *InMemory) CreateElection(_ context.Context, e *models.Election) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.elections[e.ID]; ok {
		return fmt.Errorf("election %s: %w", e.ID, sentinel.ErrAlreadyUsed)
	}
	s.elections[e.ID] = cloneElection(e)
	s.heads[e.ID] = models.Genesis(e.ID)
	return nil
}

func (s *InMemory) FindElection(_ context.Context, electionID id.ElectionID) (*models.Election, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.elections[electionID]
	if !ok {
		return nil, fmt.Errorf("election %s: %w", electionID, sentinel.ErrNotFound)
	}
	return cloneElection(e), nil
}

func (s *InMemory) FindBallot(_ context.Context, electionID id.ElectionID, voterID id.UserID) (*models.Ballot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.ballots[ballotKey{electionID, voterID}]
	if !ok {
		return nil, fmt.Errorf("ballot: %w", sentinel.ErrNotFound)
	}
	cp := *b
	return &cp, nil
}

// CommitCast appends c.Vote to the election chain and moves the ballot to it.
// It fails with sentinel.ErrConflict when the ballot's change count is no
// longer c.ExpectedChangeCount. On success the chain position is written
// back into c.Vote and c.Receipt.
func (s *InMemory) CommitCast(_ context.Context, c *models.CastCommit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	electionID := c.Vote.ElectionID
	if _, ok := s.elections[electionID]; !ok {
		return fmt.Errorf("election %s: %w", electionID, sentinel.ErrNotFound)
	}
	key := ballotKey{electionID, c.Vote.VoterID}
	current, exists := s.ballots[key]
	switch {
	case c.ExpectedChangeCount < 0 && exists:
		return fmt.Errorf("ballot already cast: %w", sentinel.ErrConflict)
	case c.ExpectedChangeCount >= 0 && (!exists || current.ChangeCount != c.ExpectedChangeCount):
		return fmt.Errorf("ballot changed concurrently: %w", sentinel.ErrConflict)
	}

	index := int64(len(s.ledgers[electionID]))
	link := models.Link(s.heads[electionID], c.Vote.Leaf)
	c.Vote.ChainIndex, c.Vote.ChainDigest = index, link
	c.Receipt.ChainIndex, c.Receipt.ChainDigest = index, link

	if exists {
		s.votes[current.VoteID].Superseded = true
	}
	v := cloneVote(c.Vote)
	s.ledgers[electionID] = append(s.ledgers[electionID], v)
	s.votes[v.ID] = v
	s.heads[electionID] = link

	b := *c.Ballot
	s.ballots[key] = &b
	r := *c.Receipt
	r.ChainDigest = slices.Clone(link)
	s.receipts[r.ID] = &r
	return nil
}

func (s *InMemory) FindReceipt(_ context.Context, receiptID string) (*models.Receipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.receipts[receiptID]
	if !ok {
		return nil, fmt.Errorf("receipt: %w", sentinel.ErrNotFound)
	}
	cp := *r
	cp.ChainDigest = slices.Clone(r.ChainDigest)
	return &cp, nil
}

func (s *InMemory) FindVote(_ context.Context, voteID id.VoteID) (*models.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.votes[voteID]
	if !ok {
		return nil, fmt.Errorf("vote %s: %w", voteID, sentinel.ErrNotFound)
	}
	return cloneVote(v), nil
}

// ChainPrefix returns the election's votes at indexes 0..through in order.
func (s *InMemory) ChainPrefix(_ context.Context, electionID id.ElectionID, through int64) ([]*models.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ledger := s.ledgers[electionID]
	if through < 0 || through >= int64(len(ledger)) {
		return nil, fmt.Errorf("chain index %d: %w", through, sentinel.ErrNotFound)
	}
	out := make([]*models.Vote, 0, through+1)
	for _, v := range ledger[:through+1] {
		out = append(out, cloneVote(v))
	}
	return out, nil
}

func cloneElection(e *models.Election) *models.Election {
	cp := *e
	cp.Candidates = slices.Clone(e.Candidates)
	return &cp
}

func cloneVote(v *models.Vote) *models.Vote {
	cp := *v
	cp.Payload = slices.Clone(v.Payload)
	cp.Signature = slices.Clone(v.Signature)
	cp.Leaf = slices.Clone(v.Leaf)
	cp.ChainDigest = slices.Clone(v.ChainDigest)
	return &cp
}
