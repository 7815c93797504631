package sealer

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quorum/internal/ballot/models"
	id "quorum/pkg/domain"
)

func newSealer(t *testing.T) *Sealer {
	t.Helper()
	s, err := New(bytes.Repeat([]byte{1}, KeySize), bytes.Repeat([]byte{2}, KeySize))
	require.NoError(t, err)
	return s
}

func payload() models.Payload {
	return models.Payload{
		VoterID:     id.NewUserID(),
		ElectionID:  id.NewElectionID(),
		CandidateID: id.NewCandidateID(),
		CastAt:      time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC).UnixMicro(),
	}
}

func TestSealOpen(t *testing.T) {
	s := newSealer(t)
	voteID := id.NewVoteID()
	p := payload()

	sealed, err := s.Seal(voteID, p)
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		got, err := s.Open(voteID, sealed)
		require.NoError(t, err)
		assert.Equal(t, p, got)
	})

	t.Run("nonces differ between seals", func(t *testing.T) {
		again, err := s.Seal(voteID, p)
		require.NoError(t, err)
		assert.NotEqual(t, sealed, again)
	})

	t.Run("payload bound to its vote", func(t *testing.T) {
		_, err := s.Open(id.NewVoteID(), sealed)
		assert.Error(t, err)
	})

	t.Run("flipped ciphertext bit", func(t *testing.T) {
		tampered := append([]byte(nil), sealed...)
		tampered[len(tampered)-1] ^= 0x01
		_, err := s.Open(voteID, tampered)
		assert.Error(t, err)
	})

	t.Run("truncated", func(t *testing.T) {
		_, err := s.Open(voteID, sealed[:10])
		assert.ErrorIs(t, err, ErrMalformed)
	})
}

func TestSign(t *testing.T) {
	s := newSealer(t)
	p := payload()

	sig, err := s.Sign(p)
	require.NoError(t, err)
	again, err := s.Sign(p)
	require.NoError(t, err)
	assert.Equal(t, sig, again, "signature is deterministic")
	assert.True(t, s.VerifySignature(p, sig))

	changed := p
	changed.CandidateID = id.NewCandidateID()
	assert.False(t, s.VerifySignature(changed, sig))

	other, err := New(bytes.Repeat([]byte{1}, KeySize), bytes.Repeat([]byte{3}, KeySize))
	require.NoError(t, err)
	assert.False(t, other.VerifySignature(p, sig), "signature depends on the key")
}

func TestNewRejectsShortKeys(t *testing.T) {
	_, err := New([]byte("short"), bytes.Repeat([]byte{2}, KeySize))
	assert.Error(t, err)
}
