// Package store persists one-time codes.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"quorum/internal/otp/models"
	"quorum/pkg/platform/sentinel"
)

// InMemory holds at most one code per email.
type InMemory struct {
	mu    sync.Mutex
	codes map[string]*models.OTP
}

func NewInMemory() *InMemory {
	return &InMemory{codes: make(map[string]*models.OTP)}
}

// Replace stores otp, discarding any previous code for the same email.
func (s *InMemory) Replace(_ context.Context, otp *models.OTP) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *otp
	cp.ReplacedDigest = ""
	if prev, ok := s.codes[otp.Email]; ok && !prev.IsVerified {
		cp.ReplacedDigest = prev.CodeDigest
	}
	s.codes[otp.Email] = &cp
	return nil
}

func (s *InMemory) Find(_ context.Context, email string) (*models.OTP, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.codes[email]
	if !ok {
		return nil, fmt.Errorf("otp: %w", sentinel.ErrNotFound)
	}
	cp := *o
	return &cp, nil
}

// IncrementAttempts adds one failed attempt to the code identified by otpID
// and returns the new count.
func (s *InMemory) IncrementAttempts(_ context.Context, email string, otpID uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.codes[email]
	if !ok || o.ID != otpID {
		return 0, fmt.Errorf("otp replaced: %w", sentinel.ErrNotFound)
	}
	o.Attempts++
	return o.Attempts, nil
}

// MarkVerified flips is_verified only while the code is unverified, unexpired
// and below maxAttempts.
func (s *InMemory) MarkVerified(_ context.Context, email string, otpID uuid.UUID, maxAttempts int, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.codes[email]
	if !ok || o.ID != otpID || o.IsVerified || o.Attempts >= maxAttempts || o.IsExpired(now) {
		return fmt.Errorf("otp state changed: %w", sentinel.ErrConflict)
	}
	o.IsVerified = true
	verifiedAt := now
	o.VerifiedAt = &verifiedAt
	return nil
}

// Consume marks a verified code as spent if it was verified at or after
// verifiedSince and has not been spent yet.
func (s *InMemory) Consume(_ context.Context, email string, verifiedSince, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.codes[email]
	if !ok || !o.IsVerified || o.ConsumedAt != nil || o.VerifiedAt == nil || o.VerifiedAt.Before(verifiedSince) {
		return fmt.Errorf("no verification to consume: %w", sentinel.ErrNotFound)
	}
	consumedAt := now
	o.ConsumedAt = &consumedAt
	return nil
}

// DeleteExpiredBefore removes codes that expired before cutoff.
func (s *InMemory) DeleteExpiredBefore(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for email, o := range s.codes {
		if o.ExpiresAt.Before(cutoff) {
			delete(s.codes, email)
			n++
		}
	}
	return n, nil
}
