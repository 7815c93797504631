package receipttoken

import (
	"bytes"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quorum/internal/ballot/models"
	id "quorum/pkg/domain"
	dErrors "quorum/pkg/domain-errors"
)

var now = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

func receipt() *models.Receipt {
	return &models.Receipt{
		ID:          "0123456789abcdef0123456789abcdef",
		ElectionID:  id.NewElectionID(),
		CastAt:      now,
		ChainIndex:  7,
		ChainDigest: bytes.Repeat([]byte{0xAB}, 32),
	}
}

func newIssuer(t *testing.T, key byte) *Issuer {
	t.Helper()
	i, err := NewIssuer(bytes.Repeat([]byte{key}, 32), "quorum", time.Hour)
	require.NoError(t, err)
	return i
}

func TestIssueAndParse(t *testing.T) {
	issuer := newIssuer(t, 1)
	r := receipt()

	token, err := issuer.Issue(r, now)
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		claims, err := issuer.Parse(token, now.Add(time.Minute))
		require.NoError(t, err)
		assert.Equal(t, r.ID, claims.ReceiptID)
		assert.True(t, claims.Matches(r))
	})

	t.Run("claims no longer match a changed receipt", func(t *testing.T) {
		claims, err := issuer.Parse(token, now)
		require.NoError(t, err)
		changed := *r
		changed.ChainDigest = bytes.Repeat([]byte{0xCD}, 32)
		assert.False(t, claims.Matches(&changed))
	})

	t.Run("expired", func(t *testing.T) {
		_, err := issuer.Parse(token, now.Add(2*time.Hour))
		assert.True(t, dErrors.HasCode(err, dErrors.CodeExpired))
	})

	t.Run("wrong key", func(t *testing.T) {
		_, err := newIssuer(t, 2).Parse(token, now)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidToken))
	})

	t.Run("none algorithm is rejected", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{ReceiptID: r.ID})
		s, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = issuer.Parse(s, now)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidToken))
	})
}

func TestNewIssuerRejectsShortKey(t *testing.T) {
	_, err := NewIssuer([]byte("short"), "quorum", time.Hour)
	assert.Error(t, err)
}
