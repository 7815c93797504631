package models

import (
	"encoding/hex"
	"time"

	"github.com/google/uuid"

	id "quorum/pkg/domain"
	"quorum/pkg/platform/digest"
)

// Vote is one entry in an election's ledger. Superseded votes stay in the
// chain; at most one vote per (election, voter) is not superseded.
type Vote struct {
	ID          id.VoteID
	ElectionID  id.ElectionID
	VoterID     id.UserID
	CandidateID id.CandidateID
	CastAt      time.Time
	Payload     []byte
	Signature   []byte
	Leaf        []byte
	ChainIndex  int64
	ChainDigest []byte
	Superseded  bool
}

// Ballot is the per-(election, voter) state. ChangeCount is 0 after the first
// cast and grows by one with each permitted change.
type Ballot struct {
	ElectionID     id.ElectionID
	VoterID        id.UserID
	VoteID         id.VoteID
	ChangeCount    int
	FirstCastAt    time.Time
	LastCastAt     time.Time
	CanChangeUntil time.Time
}

// IsFinalAt reports whether the change window has closed.
func (b *Ballot) IsFinalAt(now time.Time) bool {
	return now.After(b.CanChangeUntil)
}

type Receipt struct {
	ID             string
	VoteID         id.VoteID
	ElectionID     id.ElectionID
	VoterID        id.UserID
	CastAt         time.Time
	CanChangeUntil time.Time
	ChangeCount    int
	MaxChanges     int
	ChainIndex     int64
	ChainDigest    []byte
}

var receiptDomain = []byte("quorum.receipt.v1")

// ReceiptID derives the receipt identifier from a vote and its signature.
// The signature is keyed, so the id cannot be guessed from public vote data.
func ReceiptID(voteID id.VoteID, signature []byte) string {
	u := uuid.UUID(voteID)
	return hex.EncodeToString(digest.Sum(receiptDomain, u[:], signature)[:16])
}

// Payload is the sealed and signed content of a vote. CastAt is Unix
// microseconds, the precision the ledger stores.
type Payload struct {
	VoterID     id.UserID      `cbor:"1,keyasint"`
	ElectionID  id.ElectionID  `cbor:"2,keyasint"`
	CandidateID id.CandidateID `cbor:"3,keyasint"`
	CastAt      int64          `cbor:"4,keyasint"`
}

func PayloadOf(v *Vote) Payload {
	return Payload{
		VoterID:     v.VoterID,
		ElectionID:  v.ElectionID,
		CandidateID: v.CandidateID,
		CastAt:      v.CastAt.UnixMicro(),
	}
}

// CastCommit is everything the store writes for one accepted cast.
// ExpectedChangeCount is -1 for a first cast.
type CastCommit struct {
	Vote                *Vote
	Ballot              *Ballot
	Receipt             *Receipt
	PreviousVoteID      *id.VoteID
	ExpectedChangeCount int
}

type VerificationStatus string

const (
	VerificationValid    VerificationStatus = "valid"
	VerificationTampered VerificationStatus = "tampered"
	VerificationNotFound VerificationStatus = "not_found"
)

type Verification struct {
	Status  VerificationStatus
	Receipt *Receipt
	// Superseded is set when a later change replaced this vote.
	Superseded bool
}
