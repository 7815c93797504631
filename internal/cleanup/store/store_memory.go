// Package store keeps the cleanup run log.
package store

import (
	"context"
	"slices"
	"sync"

	"quorum/internal/cleanup/models"
)

const memoryCapacity = 1000

// InMemory keeps the most recent runs, dropping the oldest past capacity.
type InMemory struct {
	mu   sync.Mutex
	runs []models.Run
}

func NewInMemory() *InMemory {
	return &InMemory{}
}

func (s *InMemory) Append(_ context.Context, runs []models.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append(s.runs, runs...)
	if over := len(s.runs) - memoryCapacity; over > 0 {
		s.runs = slices.Delete(s.runs, 0, over)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (s *InMemory) Recent(_ context.Context, limit int) ([]models.Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Run, 0, min(limit, len(s.runs)))
	for i := len(s.runs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.runs[i])
	}
	return out, nil
}
