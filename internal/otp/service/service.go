// Package service issues and verifies one-time email codes.
package service

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"log/slog"
	"time"

	"github.com/google/uuid"

	otpmetrics "quorum/internal/otp/metrics"
	"quorum/internal/otp/models"
	dErrors "quorum/pkg/domain-errors"
	"quorum/pkg/email"
	"quorum/pkg/platform/audit"
	"quorum/pkg/platform/secrets"
	"quorum/pkg/platform/sentinel"
	"quorum/pkg/requestcontext"
)

type Store interface {
	Replace(ctx context.Context, otp *models.OTP) error
	Find(ctx context.Context, email string) (*models.OTP, error)
	IncrementAttempts(ctx context.Context, email string, otpID uuid.UUID) (int, error)
	MarkVerified(ctx context.Context, email string, otpID uuid.UUID, maxAttempts int, now time.Time) error
	Consume(ctx context.Context, email string, verifiedSince, now time.Time) error
}

type Config struct {
	TTL         time.Duration
	MaxAttempts int
	SendTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{TTL: 5 * time.Minute, MaxAttempts: 5, SendTimeout: 10 * time.Second}
}

type Service struct {
	store   Store
	sender  email.Sender
	cfg     Config
	logger  *slog.Logger
	auditor audit.Emitter
	metrics *otpmetrics.Metrics
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

func WithMetrics(m *otpmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(store Store, sender email.Sender, cfg Config, opts ...Option) (*Service, error) {
	if store == nil || sender == nil {
		return nil, errors.New("otp store and email sender are required")
	}
	def := DefaultConfig()
	if cfg.TTL <= 0 {
		cfg.TTL = def.TTL
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = def.SendTimeout
	}
	s := &Service{store: store, sender: sender, cfg: cfg, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Issue replaces any code for address with a fresh one and mails it. The
// stored code stays valid when delivery fails so the caller can resend.
func (s *Service) Issue(ctx context.Context, address string) (*models.Issued, error) {
	address = email.Normalize(address)
	if address == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "email is required")
	}
	code, err := secrets.NumericCode(models.CodeDigits)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate code")
	}
	otp := models.NewOTP(address, code, s.cfg.TTL, requestcontext.Now(ctx))
	if err := s.store.Replace(ctx, otp); err != nil {
		return nil, dErrors.FromStore(err, "failed to store code")
	}
	s.metrics.IncIssued()
	s.emit(ctx, audit.ActionOTPIssued, address, "")

	issued := &models.Issued{Email: address, ExpiresAt: otp.ExpiresAt}
	if err := s.send(ctx, address, code); err != nil {
		s.metrics.IncDeliveryFailure()
		s.logger.ErrorContext(ctx, "failed to deliver verification code",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		return issued, dErrors.Wrap(err, dErrors.CodeDeliveryFailed, "could not send verification email, please retry")
	}
	return issued, nil
}

func (s *Service) send(ctx context.Context, address, code string) error {
	body, err := renderCode(code, s.cfg.TTL)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, s.cfg.SendTimeout)
	defer cancel()
	return s.sender.Send(ctx, email.Message{
		To:       address,
		Subject:  "Your verification code",
		HTMLBody: body,
	})
}

// Verify checks code for address. Failures are reported in a fixed order:
// missing, already used, locked out, expired, then mismatch.
func (s *Service) Verify(ctx context.Context, address, code string) error {
	address = email.Normalize(address)
	now := requestcontext.Now(ctx)

	otp, err := s.store.Find(ctx, address)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return s.reject(ctx, address, dErrors.New(dErrors.CodeNotFound, "no verification code for this email"))
		}
		return dErrors.FromStore(err, "failed to load code")
	}
	if otp.IsVerified {
		return s.reject(ctx, address, dErrors.New(dErrors.CodeAlreadyUsed, "verification code already used"))
	}
	if otp.Attempts >= s.cfg.MaxAttempts {
		return s.reject(ctx, address, dErrors.New(dErrors.CodeTooManyAttempts, "too many attempts, request a new code"))
	}
	if otp.IsExpired(now) {
		return s.reject(ctx, address, dErrors.New(dErrors.CodeExpired, "verification code expired"))
	}
	if !otp.Matches(code) {
		if otp.WasReplaced(code) {
			return s.reject(ctx, address, dErrors.New(dErrors.CodeNotFound, "verification code was replaced, use the latest code"))
		}
		if _, err := s.store.IncrementAttempts(ctx, address, otp.ID); err != nil && !errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.FromStore(err, "failed to record attempt")
		}
		return s.reject(ctx, address, dErrors.New(dErrors.CodeMismatch, "verification code does not match"))
	}

	if err := s.store.MarkVerified(ctx, address, otp.ID, s.cfg.MaxAttempts, now); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			// Lost a race with another verification or a re-issue; re-read
			// once to report the state that won.
			return s.reportRace(ctx, address, otp.ID)
		}
		return dErrors.FromStore(err, "failed to mark code verified")
	}

	s.metrics.IncVerification("ok")
	s.emit(ctx, audit.ActionOTPVerified, address, "")
	return nil
}

func (s *Service) reportRace(ctx context.Context, address string, otpID uuid.UUID) error {
	current, err := s.store.Find(ctx, address)
	switch {
	case err != nil && errors.Is(err, sentinel.ErrNotFound):
		return s.reject(ctx, address, dErrors.New(dErrors.CodeNotFound, "no verification code for this email"))
	case err != nil:
		return dErrors.FromStore(err, "failed to load code")
	case current.ID != otpID:
		return s.reject(ctx, address, dErrors.New(dErrors.CodeNotFound, "verification code was replaced"))
	case current.IsVerified:
		return s.reject(ctx, address, dErrors.New(dErrors.CodeAlreadyUsed, "verification code already used"))
	case current.Attempts >= s.cfg.MaxAttempts:
		return s.reject(ctx, address, dErrors.New(dErrors.CodeTooManyAttempts, "too many attempts, request a new code"))
	default:
		return s.reject(ctx, address, dErrors.New(dErrors.CodeExpired, "verification code expired"))
	}
}

// ConsumeVerification spends the proof produced by a successful Verify. It
// succeeds once per verification and only within the code TTL of verifying.
func (s *Service) ConsumeVerification(ctx context.Context, address string) error {
	address = email.Normalize(address)
	now := requestcontext.Now(ctx)
	if err := s.store.Consume(ctx, address, now.Add(-s.cfg.TTL), now); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeUnauthorized, "email has not been verified")
		}
		return dErrors.FromStore(err, "failed to consume verification")
	}
	return nil
}

func (s *Service) reject(ctx context.Context, address string, err *dErrors.Error) error {
	s.metrics.IncVerification(string(err.Code))
	s.emit(ctx, audit.ActionOTPRejected, address, string(err.Code))
	return err
}

func (s *Service) emit(ctx context.Context, action audit.Action, address, reason string) {
	if s.auditor == nil {
		return
	}
	if err := s.auditor.Emit(ctx, audit.Event{Action: action, Email: address, Reason: reason}); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event", "action", action, "error", err)
	}
}

var codeTemplate = template.Must(template.New("otp").Parse(
	`<p>Your verification code is <strong>{{.Code}}</strong>.</p><p>It expires in {{.Minutes}} minutes.</p>`))

func renderCode(code string, ttl time.Duration) (string, error) {
	var buf bytes.Buffer
	err := codeTemplate.Execute(&buf, struct {
		Code    string
		Minutes int
	}{Code: code, Minutes: int(ttl.Minutes())})
	return buf.String(), err
}
