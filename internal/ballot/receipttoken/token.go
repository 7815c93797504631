// Package receipttoken issues portable HS256 tokens that carry a vote
// receipt, so a voter can keep the receipt outside the service.
package receipttoken

import (
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"quorum/internal/ballot/models"
	dErrors "quorum/pkg/domain-errors"
)

const audience = "quorum-receipt"

// Claims identify a receipt and pin the values it was issued with. The
// candidate is never included.
type Claims struct {
	ReceiptID   string `json:"rid"`
	ElectionID  string `json:"eid"`
	CastAt      int64  `json:"cast_at"`
	ChainIndex  int64  `json:"idx"`
	ChainDigest string `json:"chain"`
	jwt.RegisteredClaims
}

// Issuer signs and parses receipt tokens.
type Issuer struct {
	signingKey []byte
	issuer     string
	ttl        time.Duration
}

func NewIssuer(signingKey []byte, issuer string, ttl time.Duration) (*Issuer, error) {
	if len(signingKey) < 32 {
		return nil, errors.New("receipt token key must be at least 32 bytes")
	}
	return &Issuer{signingKey: signingKey, issuer: issuer, ttl: ttl}, nil
}

func (i *Issuer) Issue(r *models.Receipt, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		ReceiptID:   r.ID,
		ElectionID:  r.ElectionID.String(),
		CastAt:      r.CastAt.UnixMicro(),
		ChainIndex:  r.ChainIndex,
		ChainDigest: hex.EncodeToString(r.ChainDigest),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    i.issuer,
			Audience:  []string{audience},
			Subject:   r.ID,
		},
	})
	return token.SignedString(i.signingKey)
}

// Parse validates the signature, issuer, audience and expiry at now.
func (i *Issuer) Parse(tokenString string, now time.Time) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		return i.signingKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithAudience(audience),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeExpired, "receipt token has expired")
		}
		return nil, dErrors.New(dErrors.CodeInvalidToken, "invalid receipt token")
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeInvalidToken, "invalid receipt token claims")
	}
	return claims, nil
}

// Matches reports whether the claims still describe r.
func (c *Claims) Matches(r *models.Receipt) bool {
	return c.ReceiptID == r.ID &&
		c.ElectionID == r.ElectionID.String() &&
		c.CastAt == r.CastAt.UnixMicro() &&
		c.ChainIndex == r.ChainIndex &&
		c.ChainDigest == hex.EncodeToString(r.ChainDigest)
}
