package models

import (
	"bytes"
	"fmt"

	"github.com/google/uuid"

	id "quorum/pkg/domain"
	"quorum/pkg/platform/codec"
	"quorum/pkg/platform/digest"
)

// Domain separation prefixes for the per-election hash chain.
var (
	leafPrefix    = []byte{0x00}
	linkPrefix    = []byte{0x01}
	genesisPrefix = []byte{0x02}
)

// Genesis is the chain value before the first vote of an election.
func Genesis(electionID id.ElectionID) []byte {
	u := uuid.UUID(electionID)
	return digest.Sum(genesisPrefix, u[:])
}

type leafRecord struct {
	VoteID     id.VoteID     `cbor:"1,keyasint"`
	ElectionID id.ElectionID `cbor:"2,keyasint"`
	VoterID    id.UserID     `cbor:"3,keyasint"`
	CastAt     int64         `cbor:"4,keyasint"`
	Signature  []byte        `cbor:"5,keyasint"`
}

// Leaf commits to a vote without revealing its candidate.
func Leaf(v *Vote) ([]byte, error) {
	data, err := codec.Marshal(leafRecord{
		VoteID:     v.ID,
		ElectionID: v.ElectionID,
		VoterID:    v.VoterID,
		CastAt:     v.CastAt.UnixMicro(),
		Signature:  v.Signature,
	})
	if err != nil {
		return nil, fmt.Errorf("encode leaf: %w", err)
	}
	return digest.Sum(leafPrefix, data), nil
}

// Link extends the chain by one leaf.
func Link(prev, leaf []byte) []byte {
	return digest.Sum(linkPrefix, prev, leaf)
}

// Replay recomputes the chain over votes, which must be the election's votes
// at indexes 0..n-1 in order, and returns the final link. Stored leaves and
// links are ignored; every value is rebuilt from vote fields.
func Replay(electionID id.ElectionID, votes []*Vote) ([]byte, error) {
	head := Genesis(electionID)
	for i, v := range votes {
		if v.ChainIndex != int64(i) || v.ElectionID != electionID {
			return nil, fmt.Errorf("vote %s out of sequence at %d", v.ID, i)
		}
		leaf, err := Leaf(v)
		if err != nil {
			return nil, err
		}
		head = Link(head, leaf)
		if !bytes.Equal(head, v.ChainDigest) {
			return nil, fmt.Errorf("chain diverges at index %d", i)
		}
	}
	return head, nil
}
