package handler

import (
	"strings"
	"time"

	dErrors "quorum/pkg/domain-errors"
)

// CreateElectionRequest is the body of POST /elections.
type CreateElectionRequest struct {
	Name       string    `json:"name" validate:"required,max=200"`
	StartTime  time.Time `json:"start_time" validate:"required"`
	EndTime    time.Time `json:"end_time" validate:"required"`
	Candidates []string  `json:"candidates" validate:"required,min=2,max=100,dive,required,max=200"`
}

func (r *CreateElectionRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	for i, c := range r.Candidates {
		r.Candidates[i] = strings.TrimSpace(c)
	}
}

func (r *CreateElectionRequest) Validate() error {
	if !r.StartTime.Before(r.EndTime) {
		return dErrors.New(dErrors.CodeValidation, "start_time must be before end_time")
	}
	return nil
}

// CastRequest is the body of POST /votes/cast.
type CastRequest struct {
	ElectionID  string `json:"election_id" validate:"required,uuid"`
	CandidateID string `json:"candidate_id" validate:"required,uuid"`
}

func (r *CastRequest) Normalize() {
	r.ElectionID = strings.TrimSpace(r.ElectionID)
	r.CandidateID = strings.TrimSpace(r.CandidateID)
}

// VerifyTokenRequest is the body of POST /votes/receipt/verify-token.
type VerifyTokenRequest struct {
	Token string `json:"token" validate:"required,max=2048"`
}

func (r *VerifyTokenRequest) Normalize() {
	r.Token = strings.TrimSpace(r.Token)
}
