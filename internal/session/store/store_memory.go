// Package store persists bearer sessions by token digest.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"quorum/internal/session/models"
	"quorum/pkg/platform/sentinel"
)

type InMemory struct {
	mu       sync.RWMutex
	byDigest map[string]*models.Session
}

func NewInMemory() *InMemory {
	return &InMemory{byDigest: make(map[string]*models.Session)}
}

func (s *InMemory) Create(_ context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byDigest[session.TokenDigest]; ok {
		return fmt.Errorf("session: %w", sentinel.ErrAlreadyUsed)
	}
	cp := *session
	s.byDigest[session.TokenDigest] = &cp
	return nil
}

func (s *InMemory) FindByDigest(_ context.Context, digest string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.byDigest[digest]
	if !ok {
		return nil, fmt.Errorf("session: %w", sentinel.ErrNotFound)
	}
	cp := *session
	return &cp, nil
}

// Revoke deactivates the session. Revoking an unknown or revoked session is
// not an error.
func (s *InMemory) Revoke(_ context.Context, digest string, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.byDigest[digest]
	if !ok || !session.IsActive {
		return false, nil
	}
	session.IsActive = false
	revokedAt := now
	session.RevokedAt = &revokedAt
	return true, nil
}

// DeleteCreatedBefore removes sessions created before cutoff.
func (s *InMemory) DeleteCreatedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for digest, session := range s.byDigest {
		if session.CreatedAt.Before(cutoff) {
			delete(s.byDigest, digest)
			n++
		}
	}
	return n, nil
}
