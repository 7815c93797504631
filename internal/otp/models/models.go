// Package models defines one-time email verification codes.
package models

import (
	"crypto/subtle"
	"time"

	"github.com/google/uuid"

	"quorum/pkg/platform/digest"
)

// CodeDigits is the length of every issued code.
const CodeDigits = 6

// OTP is the single live code for an email. Issuing a new code replaces the
// row, which changes ID; conditional updates are keyed on ID so a stale
// request can never touch a newer code.
type OTP struct {
	ID             uuid.UUID
	Email          string
	CodeDigest     string
	// ReplacedDigest is the digest of the code this one superseded.
	ReplacedDigest string
	ExpiresAt      time.Time
	IsVerified     bool
	VerifiedAt     *time.Time
	ConsumedAt     *time.Time
	Attempts       int
	CreatedAt      time.Time
}

// NewOTP builds a fresh, unverified code record.
func NewOTP(email, code string, ttl time.Duration, now time.Time) *OTP {
	return &OTP{
		ID:         uuid.New(),
		Email:      email,
		CodeDigest: DigestCode(email, code),
		ExpiresAt:  now.Add(ttl),
		CreatedAt:  now,
	}
}

// DigestCode binds a code to its email so equal codes for different
// addresses never share a digest.
func DigestCode(email, code string) string {
	return digest.Token(email + "\x00" + code)
}

// Matches compares code against the stored digest in constant time.
func (o *OTP) Matches(code string) bool {
	return subtle.ConstantTimeCompare([]byte(o.CodeDigest), []byte(DigestCode(o.Email, code))) == 1
}

// WasReplaced reports whether code belongs to the superseded code.
func (o *OTP) WasReplaced(code string) bool {
	return o.ReplacedDigest != "" &&
		subtle.ConstantTimeCompare([]byte(o.ReplacedDigest), []byte(DigestCode(o.Email, code))) == 1
}

// IsExpired reports whether now is strictly after the expiry instant.
func (o *OTP) IsExpired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}

// Issued is returned to callers of Issue; it never contains the code.
type Issued struct {
	Email     string
	ExpiresAt time.Time
}
