// Package models defines elections, votes and receipts for the ballot ledger.
package models

import (
	"strings"
	"time"

	id "quorum/pkg/domain"
	dErrors "quorum/pkg/domain-errors"
	liststrings "quorum/pkg/platform/strings"
)

// Status is derived from the clock and never stored.
type Status string

const (
	StatusUpcoming Status = "upcoming"
	StatusActive   Status = "active"
	StatusEnded    Status = "ended"
)

const MinCandidates = 2

type Election struct {
	ID             id.ElectionID
	OrganizationID id.OrganizationID
	Name           string
	StartTime      time.Time
	EndTime        time.Time
	IsActive       bool
	CreatedBy      id.UserID
	CreatedAt      time.Time
	Candidates     []Candidate
}

type Candidate struct {
	ID         id.CandidateID
	ElectionID id.ElectionID
	Name       string
	Position   int
}

// NewElection validates the voting window and candidate list. Candidates keep
// the order given and must have distinct names.
func NewElection(orgID id.OrganizationID, name string, start, end time.Time, candidates []string, createdBy id.UserID, now time.Time) (*Election, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "election name is required")
	}
	if !start.Before(end) {
		return nil, dErrors.New(dErrors.CodeValidation, "start_time must be before end_time")
	}
	if len(candidates) < MinCandidates {
		return nil, dErrors.New(dErrors.CodeValidation, "an election needs at least two candidates")
	}

	e := &Election{
		ID:             id.NewElectionID(),
		OrganizationID: orgID,
		Name:           name,
		StartTime:      start.UTC(),
		EndTime:        end.UTC(),
		IsActive:       true,
		CreatedBy:      createdBy,
		CreatedAt:      now,
	}
	names := liststrings.TrimAll(candidates)
	if len(names) != len(candidates) {
		return nil, dErrors.New(dErrors.CodeValidation, "candidate names must not be empty")
	}
	if dup, ok := liststrings.FirstDuplicateFold(names); ok {
		return nil, dErrors.New(dErrors.CodeValidation, "duplicate candidate: "+dup)
	}
	for i, c := range names {
		e.Candidates = append(e.Candidates, Candidate{
			ID:         id.NewCandidateID(),
			ElectionID: e.ID,
			Name:       c,
			Position:   i,
		})
	}
	return e, nil
}

// StatusAt is upcoming before start, active within [start, end] while the
// election is enabled, and ended otherwise.
func (e *Election) StatusAt(now time.Time) Status {
	switch {
	case now.Before(e.StartTime):
		return StatusUpcoming
	case e.IsActive && !now.After(e.EndTime):
		return StatusActive
	default:
		return StatusEnded
	}
}

func (e *Election) Candidate(candidateID id.CandidateID) (*Candidate, bool) {
	for i := range e.Candidates {
		if e.Candidates[i].ID == candidateID {
			return &e.Candidates[i], true
		}
	}
	return nil, false
}

// ElectionRequest carries the caller's input to CreateElection.
type ElectionRequest struct {
	Name       string
	StartTime  time.Time
	EndTime    time.Time
	Candidates []string
}
