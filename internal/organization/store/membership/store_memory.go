package membership

import (
	"context"
	"fmt"
	"sync"

	"quorum/internal/organization/models"
	id "quorum/pkg/domain"
	"quorum/pkg/platform/sentinel"
)

type key struct {
	user id.UserID
	org  id.OrganizationID
}

// InMemory enforces one membership per (user, organization).
type InMemory struct {
	mu    sync.RWMutex
	byKey map[key]*models.Membership
}

func NewInMemory() *InMemory {
	return &InMemory{byKey: make(map[key]*models.Membership)}
}

func (s *InMemory) Create(_ context.Context, m *models.Membership) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key{user: m.UserID, org: m.OrganizationID}
	if _, ok := s.byKey[k]; ok {
		return models.ErrAlreadyMember
	}
	cp := *m
	s.byKey[k] = &cp
	return nil
}

func (s *InMemory) Find(_ context.Context, userID id.UserID, orgID id.OrganizationID) (*models.Membership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.byKey[key{user: userID, org: orgID}]
	if !ok {
		return nil, fmt.Errorf("membership: %w", sentinel.ErrNotFound)
	}
	cp := *m
	return &cp, nil
}

// SetActive toggles a membership; deactivated members lose their sessions on
// the next validation.
func (s *InMemory) SetActive(_ context.Context, userID id.UserID, orgID id.OrganizationID, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.byKey[key{user: userID, org: orgID}]
	if !ok {
		return fmt.Errorf("membership: %w", sentinel.ErrNotFound)
	}
	m.IsActive = active
	return nil
}

func (s *InMemory) Delete(_ context.Context, membershipID id.MembershipID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, m := range s.byKey {
		if m.ID == membershipID {
			delete(s.byKey, k)
			return nil
		}
	}
	return nil
}
