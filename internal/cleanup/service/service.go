// Package service runs the periodic purge of expired sessions, invitation
// tokens and one-time codes.
package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	cleanupmetrics "quorum/internal/cleanup/metrics"
	"quorum/internal/cleanup/models"
	dErrors "quorum/pkg/domain-errors"
	"quorum/pkg/platform/audit"
	"quorum/pkg/platform/sentinel"
	"quorum/pkg/requestcontext"
)

// RunLog records one row per category per pass.
type RunLog interface {
	Append(ctx context.Context, runs []models.Run) error
	Recent(ctx context.Context, limit int) ([]models.Run, error)
}

// Locker guards a pass across instances. Acquire fails with an error
// matching sentinel.ErrConflict when another instance holds the lease.
type Locker interface {
	Acquire(ctx context.Context) (func(context.Context) error, error)
}

type SessionPurger interface {
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type ExpiryPurger interface {
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type Config struct {
	Interval        time.Duration
	CategoryTimeout time.Duration
	SessionTTL      time.Duration
	SessionGrace    time.Duration
	TokenGrace      time.Duration
	OTPGrace        time.Duration
}

func DefaultConfig() Config {
	return Config{
		Interval:        5 * time.Minute,
		CategoryTimeout: 30 * time.Second,
		SessionTTL:      24 * time.Hour,
		SessionGrace:    24 * time.Hour,
		TokenGrace:      7 * 24 * time.Hour,
		OTPGrace:        time.Hour,
	}
}

type category struct {
	name   models.Category
	cutoff time.Duration
	purge  func(ctx context.Context, cutoff time.Time) (int64, error)
}

type Scheduler struct {
	runLog     RunLog
	categories []category
	cfg        Config
	locker     Locker
	running    atomic.Bool

	mu    sync.Mutex
	stats models.Stats

	logger  *slog.Logger
	auditor audit.Emitter
	metrics *cleanupmetrics.Metrics
	tracer  trace.Tracer
}

type Option func(*Scheduler)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

func WithAuditPublisher(emitter audit.Emitter) Option {
	return func(s *Scheduler) {
		s.auditor = emitter
	}
}

func WithMetrics(m *cleanupmetrics.Metrics) Option {
	return func(s *Scheduler) {
		s.metrics = m
	}
}

// WithLocker adds a cross-instance lease on top of the in-process guard.
func WithLocker(l Locker) Option {
	return func(s *Scheduler) {
		s.locker = l
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Scheduler) {
		s.tracer = t
	}
}

func New(runLog RunLog, sessions SessionPurger, invitations, otps ExpiryPurger, cfg Config, opts ...Option) (*Scheduler, error) {
	if runLog == nil || sessions == nil || invitations == nil || otps == nil {
		return nil, errors.New("run log and all purgers are required")
	}
	def := DefaultConfig()
	if cfg.Interval <= 0 {
		cfg.Interval = def.Interval
	}
	if cfg.CategoryTimeout <= 0 {
		cfg.CategoryTimeout = def.CategoryTimeout
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = def.SessionTTL
	}

	s := &Scheduler{
		runLog: runLog,
		cfg:    cfg,
		logger: slog.Default(),
		tracer: otel.Tracer("quorum/internal/cleanup"),
	}
	// Sessions carry no expiry column of their own; their age is measured
	// from creation.
	s.categories = []category{
		{name: models.CategorySessions, cutoff: cfg.SessionTTL + cfg.SessionGrace, purge: sessions.DeleteCreatedBefore},
		{name: models.CategoryInvitations, cutoff: cfg.TokenGrace, purge: invitations.DeleteExpiredBefore},
		{name: models.CategoryOTPs, cutoff: cfg.OTPGrace, purge: otps.DeleteExpiredBefore},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Start runs a pass every interval until ctx is cancelled. A tick that finds
// a pass still in progress is skipped; failed categories wait for the next
// tick.
func (s *Scheduler) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := s.Run(ctx, models.TriggerScheduled); err != nil {
				if dErrors.HasCode(err, dErrors.CodeConflict) {
					s.logger.DebugContext(ctx, "cleanup tick skipped", "reason", err)
					continue
				}
				s.logger.ErrorContext(ctx, "cleanup pass failed", "error", err)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Run executes one pass over every category concurrently. It fails with
// Conflict when a pass is already running here or on another instance.
// Category failures are reported in the result, not as an error.
func (s *Scheduler) Run(ctx context.Context, trigger models.Trigger) (report *models.Report, err error) {
	if !s.running.CompareAndSwap(false, true) {
		s.metrics.IncSkipped(string(trigger))
		return nil, dErrors.New(dErrors.CodeConflict, "cleanup already running")
	}
	defer s.running.Store(false)

	ctx, span := s.tracer.Start(ctx, "cleanup.Run",
		trace.WithAttributes(attribute.String("trigger", string(trigger))))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if s.locker != nil {
		release, err := s.locker.Acquire(ctx)
		if err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				s.metrics.IncSkipped(string(trigger))
				return nil, dErrors.Wrap(err, dErrors.CodeConflict, "cleanup already running on another instance")
			}
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to acquire cleanup lock")
		}
		defer func() {
			if err := release(context.WithoutCancel(ctx)); err != nil {
				s.logger.WarnContext(ctx, "failed to release cleanup lock", "error", err)
			}
		}()
	}

	now := requestcontext.Now(ctx)
	report = &models.Report{RunID: uuid.New(), Trigger: trigger, StartedAt: now}
	report.Runs = make([]models.Run, len(s.categories))

	started := time.Now()
	var g errgroup.Group
	for i, c := range s.categories {
		g.Go(func() error {
			report.Runs[i] = s.purge(ctx, c, report, now)
			return nil
		})
	}
	_ = g.Wait()
	report.Duration = time.Since(started)

	if err := s.runLog.Append(context.WithoutCancel(ctx), report.Runs); err != nil {
		s.logger.ErrorContext(ctx, "failed to write cleanup run log", "run_id", report.RunID, "error", err)
	}
	s.record(ctx, report)
	return report, nil
}

func (s *Scheduler) purge(ctx context.Context, c category, report *models.Report, now time.Time) models.Run {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.CategoryTimeout)
	defer cancel()
	ctx, span := s.tracer.Start(ctx, "cleanup.purge", trace.WithAttributes(attribute.String("category", string(c.name))))
	defer span.End()

	start := time.Now()
	n, err := c.purge(ctx, now.Add(-c.cutoff))
	run := models.Run{
		ID:              uuid.New(),
		RunID:           report.RunID,
		Category:        c.name,
		Trigger:         report.Trigger,
		RecordsAffected: n,
		Duration:        time.Since(start),
		Status:          models.RunSucceeded,
		StartedAt:       now,
	}
	if err != nil {
		run.Status = models.RunFailed
		run.Error = err.Error()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.ErrorContext(ctx, "cleanup category failed",
			"run_id", report.RunID,
			"category", c.name,
			"error", err,
		)
	}
	span.SetAttributes(attribute.Int64("records_affected", n))
	s.metrics.ObserveCategory(string(c.name), n, err != nil, run.Duration)
	return run
}

func (s *Scheduler) record(ctx context.Context, report *models.Report) {
	outcome := "succeeded"
	if report.Failed() {
		outcome = "failed"
	}

	s.mu.Lock()
	s.stats.Runs++
	if report.Failed() {
		s.stats.Failures++
	}
	s.stats.LastRunAt = report.StartedAt
	s.stats.LastReport = report
	s.mu.Unlock()

	s.metrics.IncRun(string(report.Trigger), outcome)
	s.logger.InfoContext(ctx, "cleanup pass completed",
		"run_id", report.RunID,
		"trigger", report.Trigger,
		"records_affected", report.Total(),
		"outcome", outcome,
		"duration", report.Duration,
	)
	if s.auditor != nil {
		event := audit.Event{
			Action:   audit.ActionCleanupCompleted,
			Subject:  report.RunID.String(),
			Decision: outcome,
		}
		if err := s.auditor.Emit(ctx, event); err != nil {
			s.logger.WarnContext(ctx, "failed to emit audit event", "action", event.Action, "error", err)
		}
	}
}

// Stats returns the counters accumulated since the scheduler was built.
func (s *Scheduler) Stats() models.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.stats
	st.Running = s.running.Load()
	return st
}

// RecentRuns returns the newest log rows.
func (s *Scheduler) RecentRuns(ctx context.Context, limit int) ([]models.Run, error) {
	runs, err := s.runLog.Recent(ctx, limit)
	if err != nil {
		return nil, dErrors.FromStore(err, "failed to load cleanup runs")
	}
	return runs, nil
}
