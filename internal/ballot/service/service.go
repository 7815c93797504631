// Package service runs the vote ledger: elections, casting with a bounded
// change window, and receipt verification against the per-election chain.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	ballotmetrics "quorum/internal/ballot/metrics"
	"quorum/internal/ballot/models"
	"quorum/internal/ballot/receipttoken"
	id "quorum/pkg/domain"
	"quorum/pkg/platform/audit"
	"quorum/pkg/platform/retry"
)

type Store interface {
	CreateElection(ctx context.Context, e *models.Election) error
	FindElection(ctx context.Context, electionID id.ElectionID) (*models.Election, error)
	FindBallot(ctx context.Context, electionID id.ElectionID, voterID id.UserID) (*models.Ballot, error)
	CommitCast(ctx context.Context, c *models.CastCommit) error
	FindReceipt(ctx context.Context, receiptID string) (*models.Receipt, error)
	FindVote(ctx context.Context, voteID id.VoteID) (*models.Vote, error)
	ChainPrefix(ctx context.Context, electionID id.ElectionID, through int64) ([]*models.Vote, error)
}

// Sealer encrypts and signs vote payloads.
type Sealer interface {
	Seal(voteID id.VoteID, p models.Payload) ([]byte, error)
	Open(voteID id.VoteID, sealed []byte) (models.Payload, error)
	Sign(p models.Payload) ([]byte, error)
	VerifySignature(p models.Payload, signature []byte) bool
}

type Config struct {
	ChangeWindow time.Duration
	MaxChanges   int
	Retry        retry.Policy
}

const (
	DefaultChangeWindow = 10 * time.Minute
	DefaultMaxChanges   = 3
)

type Service struct {
	store   Store
	sealer  Sealer
	tokens  *receipttoken.Issuer
	cfg     Config
	logger  *slog.Logger
	auditor audit.Emitter
	metrics *ballotmetrics.Metrics
	tracer  trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(emitter audit.Emitter) Option {
	return func(s *Service) {
		s.auditor = emitter
	}
}

func WithMetrics(m *ballotmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithTracer overrides the global otel tracer.
func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

func New(store Store, sealer Sealer, tokens *receipttoken.Issuer, cfg Config, opts ...Option) (*Service, error) {
	if store == nil || sealer == nil || tokens == nil {
		return nil, errors.New("ballot store, sealer and receipt token issuer are required")
	}
	if cfg.ChangeWindow <= 0 {
		cfg.ChangeWindow = DefaultChangeWindow
	}
	if cfg.MaxChanges < 0 {
		return nil, errors.New("max changes must not be negative")
	}
	s := &Service{
		store:  store,
		sealer: sealer,
		tokens: tokens,
		cfg:    cfg,
		logger: slog.Default(),
		tracer: otel.Tracer("quorum/internal/ballot"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event", "action", event.Action, "error", err)
	}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
