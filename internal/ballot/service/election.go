package service

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"quorum/internal/ballot/models"
	id "quorum/pkg/domain"
	dErrors "quorum/pkg/domain-errors"
	"quorum/pkg/platform/audit"
	"quorum/pkg/platform/sentinel"
	"quorum/pkg/requestcontext"
)

func canManage(role string) bool {
	return role == "admin" || role == "owner"
}

// CreateElection opens an election in the caller's organization. Only admins
// and owners may create elections.
func (s *Service) CreateElection(ctx context.Context, p requestcontext.Principal, req models.ElectionRequest) (e *models.Election, err error) {
	ctx, span := s.tracer.Start(ctx, "ballot.CreateElection",
		trace.WithAttributes(attribute.String("organization_id", p.OrganizationID.String())))
	defer func() { endSpan(span, err) }()

	if !canManage(p.Role) {
		return nil, dErrors.New(dErrors.CodeForbidden, "only admins and owners can create elections")
	}
	e, err = models.NewElection(p.OrganizationID, req.Name, req.StartTime, req.EndTime, req.Candidates, p.UserID, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if err := s.store.CreateElection(ctx, e); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "organization not found")
		}
		return nil, dErrors.FromStore(err, "failed to create election")
	}

	s.metrics.IncElectionCreated()
	s.emit(ctx, audit.Event{
		Action:         audit.ActionElectionCreated,
		UserID:         p.UserID,
		OrganizationID: p.OrganizationID,
		Subject:        e.ID.String(),
	})
	return e, nil
}

// GetElection returns an election of the caller's organization and its
// status at request time.
func (s *Service) GetElection(ctx context.Context, p requestcontext.Principal, electionID id.ElectionID) (*models.Election, models.Status, error) {
	e, err := s.loadElection(ctx, p, electionID)
	if err != nil {
		return nil, "", err
	}
	return e, e.StatusAt(requestcontext.Now(ctx)), nil
}

func (s *Service) loadElection(ctx context.Context, p requestcontext.Principal, electionID id.ElectionID) (*models.Election, error) {
	e, err := s.store.FindElection(ctx, electionID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "election not found")
		}
		return nil, dErrors.FromStore(err, "failed to load election")
	}
	if e.OrganizationID != p.OrganizationID {
		return nil, dErrors.New(dErrors.CodeForbidden, "election belongs to another organization")
	}
	return e, nil
}
