package handler

import (
	"encoding/hex"
	"time"

	"quorum/internal/ballot/models"
)

type CandidateResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}

type ElectionResponse struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	StartTime  time.Time           `json:"start_time"`
	EndTime    time.Time           `json:"end_time"`
	Status     string              `json:"status"`
	Candidates []CandidateResponse `json:"candidates"`
}

func toElectionResponse(e *models.Election, status models.Status) ElectionResponse {
	out := ElectionResponse{
		ID:         e.ID.String(),
		Name:       e.Name,
		StartTime:  e.StartTime,
		EndTime:    e.EndTime,
		Status:     string(status),
		Candidates: make([]CandidateResponse, 0, len(e.Candidates)),
	}
	for _, c := range e.Candidates {
		out.Candidates = append(out.Candidates, CandidateResponse{ID: c.ID.String(), Name: c.Name, Position: c.Position})
	}
	return out
}

// ReceiptResponse never names the candidate.
type ReceiptResponse struct {
	ReceiptID        string    `json:"receipt_id"`
	ElectionID       string    `json:"election_id"`
	CastAt           time.Time `json:"cast_at"`
	CanChangeUntil   time.Time `json:"can_change_until"`
	ChangeCount      int       `json:"change_count"`
	ChangesRemaining int       `json:"changes_remaining"`
	ChainIndex       int64     `json:"chain_index"`
	ChainDigest      string    `json:"chain_digest"`
	ReceiptToken     string    `json:"receipt_token,omitempty"`
}

func toReceiptResponse(r *models.Receipt, token string) ReceiptResponse {
	return ReceiptResponse{
		ReceiptID:        r.ID,
		ElectionID:       r.ElectionID.String(),
		CastAt:           r.CastAt,
		CanChangeUntil:   r.CanChangeUntil,
		ChangeCount:      r.ChangeCount,
		ChangesRemaining: max(r.MaxChanges-r.ChangeCount, 0),
		ChainIndex:       r.ChainIndex,
		ChainDigest:      hex.EncodeToString(r.ChainDigest),
		ReceiptToken:     token,
	}
}

type VerificationResponse struct {
	Status     string           `json:"status"`
	Superseded bool             `json:"superseded,omitempty"`
	Receipt    *ReceiptResponse `json:"receipt,omitempty"`
}

func toVerificationResponse(v *models.Verification) VerificationResponse {
	out := VerificationResponse{Status: string(v.Status), Superseded: v.Superseded}
	if v.Status == models.VerificationValid && v.Receipt != nil {
		r := toReceiptResponse(v.Receipt, "")
		out.Receipt = &r
	}
	return out
}
