// Package publisher delivers audit events to a Store, synchronously or through
// a bounded in-process queue.
package publisher

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	audit "quorum/pkg/platform/audit"
	"quorum/pkg/requestcontext"
)

// Metrics counts audit delivery outcomes.
type Metrics struct {
	Emitted *prometheus.CounterVec
	Dropped prometheus.Counter
	Failed  prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Emitted: f.NewCounterVec(prometheus.CounterOpts{
			Name: "quorum_audit_events_total",
			Help: "Audit events delivered by category",
		}, []string{"category"}),
		Dropped: f.NewCounter(prometheus.CounterOpts{
			Name: "quorum_audit_events_dropped_total",
			Help: "Audit events dropped because the async queue was full",
		}),
		Failed: f.NewCounter(prometheus.CounterOpts{
			Name: "quorum_audit_events_failed_total",
			Help: "Audit events the store rejected",
		}),
	}
}

// Publisher emits events to a store.
type Publisher struct {
	store   audit.Store
	logger  *slog.Logger
	metrics *Metrics

	queue   chan audit.Event
	wg      sync.WaitGroup
	closeMu sync.Once
}

type Option func(*Publisher)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func WithMetrics(m *Metrics) Option {
	return func(p *Publisher) {
		p.metrics = m
	}
}

// WithAsyncBuffer makes Emit non-blocking. Events beyond size are dropped and
// counted rather than stalling the request.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		if size > 0 {
			p.queue = make(chan audit.Event, size)
		}
	}
}

func NewPublisher(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	if p.queue != nil {
		p.wg.Add(1)
		go p.run()
	}
	return p
}

// Emit fills in defaults and delivers the event. In async mode it only
// returns an error when ctx is already done.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.Category == "" {
		event.Category = event.Action.Category()
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}

	if p.queue == nil {
		return p.deliver(ctx, event)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case p.queue <- event:
	default:
		if p.metrics != nil {
			p.metrics.Dropped.Inc()
		}
		p.logger.WarnContext(ctx, "audit queue full, event dropped",
			"action", event.Action,
			"request_id", event.RequestID,
		)
	}
	return nil
}

func (p *Publisher) run() {
	defer p.wg.Done()
	for event := range p.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = p.deliver(ctx, event)
		cancel()
	}
}

func (p *Publisher) deliver(ctx context.Context, event audit.Event) error {
	if err := p.store.Append(ctx, event); err != nil {
		if p.metrics != nil {
			p.metrics.Failed.Inc()
		}
		p.logger.ErrorContext(ctx, "audit append failed",
			"action", event.Action,
			"request_id", event.RequestID,
			"error", err,
		)
		return err
	}
	if p.metrics != nil {
		p.metrics.Emitted.WithLabelValues(string(event.Category)).Inc()
	}
	return nil
}

// Close drains the async queue. Emit must not be called after Close.
func (p *Publisher) Close() error {
	p.closeMu.Do(func() {
		if p.queue != nil {
			close(p.queue)
			p.wg.Wait()
		}
	})
	return nil
}
