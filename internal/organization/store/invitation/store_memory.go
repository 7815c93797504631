package invitation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"quorum/internal/organization/models"
	"quorum/pkg/platform/sentinel"
)

// InMemory keys invitations by token digest.
type InMemory struct {
	mu     sync.RWMutex
	tokens map[string]*models.InvitationToken
}

func NewInMemory() *InMemory {
	return &InMemory{tokens: make(map[string]*models.InvitationToken)}
}

func (s *InMemory) Create(_ context.Context, t *models.InvitationToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tokens[t.TokenDigest]; ok {
		return fmt.Errorf("invitation: %w", sentinel.ErrAlreadyUsed)
	}
	cp := *t
	s.tokens[t.TokenDigest] = &cp
	return nil
}

func (s *InMemory) FindByDigest(_ context.Context, digest string) (*models.InvitationToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tokens[digest]
	if !ok {
		return nil, fmt.Errorf("invitation: %w", sentinel.ErrNotFound)
	}
	cp := *t
	return &cp, nil
}

// IncrementUsage bumps used_count only if it still equals expectedUsed and a
// use remains. Any other state is a conflict the caller re-reads and retries.
func (s *InMemory) IncrementUsage(_ context.Context, digest string, expectedUsed int) (*models.InvitationToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tokens[digest]
	if !ok {
		return nil, fmt.Errorf("invitation: %w", sentinel.ErrNotFound)
	}
	if !t.IsActive || t.UsedCount != expectedUsed || t.UsedCount >= t.UsageLimit {
		return nil, fmt.Errorf("invitation usage changed: %w", sentinel.ErrConflict)
	}
	t.UsedCount++
	cp := *t
	return &cp, nil
}

// ReleaseUsage returns one use after a failed membership insert.
func (s *InMemory) ReleaseUsage(_ context.Context, digest string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tokens[digest]
	if !ok {
		return fmt.Errorf("invitation: %w", sentinel.ErrNotFound)
	}
	if t.UsedCount > 0 {
		t.UsedCount--
	}
	return nil
}

func (s *InMemory) Deactivate(_ context.Context, digest string) (*models.InvitationToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tokens[digest]
	if !ok {
		return nil, fmt.Errorf("invitation: %w", sentinel.ErrNotFound)
	}
	t.IsActive = false
	cp := *t
	return &cp, nil
}

// DeleteExpiredBefore removes invitations that expired before cutoff.
func (s *InMemory) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for digest, t := range s.tokens {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		if t.ExpiresAt.Before(cutoff) {
			delete(s.tokens, digest)
			n++
		}
	}
	return n, nil
}
