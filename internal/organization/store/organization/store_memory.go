package organization

import (
	"context"
	"fmt"
	"sync"

	"quorum/internal/organization/models"
	id "quorum/pkg/domain"
	"quorum/pkg/platform/sentinel"
)

// InMemory keeps organizations in a map guarded by one lock.
type InMemory struct {
	mu   sync.RWMutex
	orgs map[id.OrganizationID]*models.Organization
}

func NewInMemory() *InMemory {
	return &InMemory{orgs: make(map[id.OrganizationID]*models.Organization)}
}

// Create inserts org unless its slug or either access code is already used.
func (s *InMemory) Create(_ context.Context, org *models.Organization) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.orgs {
		if existing.Slug == org.Slug {
			return models.ErrSlugTaken
		}
		if existing.VoterAccessCode == org.VoterAccessCode || existing.AdminAccessCode == org.AdminAccessCode ||
			existing.VoterAccessCode == org.AdminAccessCode || existing.AdminAccessCode == org.VoterAccessCode {
			return models.ErrAccessCodeTaken
		}
	}
	cp := *org
	s.orgs[org.ID] = &cp
	return nil
}

func (s *InMemory) FindByID(_ context.Context, orgID id.OrganizationID) (*models.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	org, ok := s.orgs[orgID]
	if !ok {
		return nil, fmt.Errorf("organization %s: %w", orgID, sentinel.ErrNotFound)
	}
	cp := *org
	return &cp, nil
}

func (s *InMemory) SlugExists(_ context.Context, slug string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, org := range s.orgs {
		if org.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

// FindByAccessCode returns the active organization holding code.
func (s *InMemory) FindByAccessCode(_ context.Context, code string) (*models.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, org := range s.orgs {
		if !org.IsActive {
			continue
		}
		if org.VoterAccessCode == code || org.AdminAccessCode == code {
			cp := *org
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("access code: %w", sentinel.ErrNotFound)
}

func (s *InMemory) Delete(_ context.Context, orgID id.OrganizationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.orgs, orgID)
	return nil
}
