// Package service issues and validates opaque bearer sessions bound to a
// single organization membership.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"quorum/internal/session/device"
	sessionmetrics "quorum/internal/session/metrics"
	"quorum/internal/session/models"
	id "quorum/pkg/domain"
	dErrors "quorum/pkg/domain-errors"
	"quorum/pkg/email"
	"quorum/pkg/platform/audit"
	"quorum/pkg/platform/digest"
	"quorum/pkg/platform/secrets"
	"quorum/pkg/platform/sentinel"
	"quorum/pkg/requestcontext"
)

type Store interface {
	Create(ctx context.Context, session *models.Session) error
	FindByDigest(ctx context.Context, digest string) (*models.Session, error)
	Revoke(ctx context.Context, digest string, now time.Time) (bool, error)
}

// Directory resolves users and memberships owned by the organization context.
type Directory interface {
	UserIDByEmail(ctx context.Context, email string) (id.UserID, error)
	Membership(ctx context.Context, userID id.UserID, orgID id.OrganizationID) (*models.Member, error)
}

// EmailVerifier checks and spends one-time email codes.
type EmailVerifier interface {
	Verify(ctx context.Context, email, code string) error
	ConsumeVerification(ctx context.Context, email string) error
}

type Config struct {
	TTL time.Duration
}

const DefaultTTL = 24 * time.Hour

type Service struct {
	store     Store
	directory Directory
	verifier  EmailVerifier
	cfg       Config
	logger    *slog.Logger
	auditor   audit.Emitter
	metrics   *sessionmetrics.Metrics
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

func WithMetrics(m *sessionmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(store Store, directory Directory, verifier EmailVerifier, cfg Config, opts ...Option) (*Service, error) {
	if store == nil || directory == nil || verifier == nil {
		return nil, errors.New("session store, directory and email verifier are required")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	s := &Service{store: store, directory: directory, verifier: verifier, cfg: cfg, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Issue opens a session for an active member of orgID. Client IP and user
// agent are taken from the request context.
func (s *Service) Issue(ctx context.Context, userID id.UserID, orgID id.OrganizationID) (*models.Issued, error) {
	member, err := s.directory.Membership(ctx, userID, orgID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "not a member of this organization")
		}
		return nil, dErrors.FromStore(err, "failed to load membership")
	}
	if !member.IsActive {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "membership is not active")
	}

	token, err := secrets.Generate()
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate session token")
	}
	now := requestcontext.Now(ctx)
	userAgent := requestcontext.UserAgent(ctx)
	session := &models.Session{
		ID:             id.NewSessionID(),
		TokenDigest:    digest.Token(token),
		UserID:         userID,
		OrganizationID: orgID,
		CreatedAt:      now,
		ExpiresAt:      now.Add(s.cfg.TTL),
		IPAddress:      requestcontext.ClientIP(ctx),
		UserAgent:      userAgent,
		DeviceLabel:    device.ParseUserAgent(userAgent),
		IsActive:       true,
	}
	if err := s.store.Create(ctx, session); err != nil {
		return nil, dErrors.FromStore(err, "failed to store session")
	}

	s.metrics.IncIssued()
	s.emit(ctx, audit.Event{
		Action:         audit.ActionSessionCreated,
		UserID:         userID,
		OrganizationID: orgID,
		Subject:        session.ID.String(),
	})
	return &models.Issued{Token: token, Session: session, Role: member.Role}, nil
}

// Validate resolves token to its principal. It never writes: expiry is fixed
// at creation and a deactivated membership invalidates the session at once.
func (s *Service) Validate(ctx context.Context, token string) (requestcontext.Principal, error) {
	if token == "" {
		return requestcontext.Principal{}, s.invalid(dErrors.CodeInvalidToken, "invalid session")
	}
	session, err := s.store.FindByDigest(ctx, digest.Token(token))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return requestcontext.Principal{}, s.invalid(dErrors.CodeInvalidToken, "invalid session")
		}
		return requestcontext.Principal{}, dErrors.FromStore(err, "failed to load session")
	}
	if !session.IsActive {
		return requestcontext.Principal{}, s.invalid(dErrors.CodeInvalidToken, "session revoked")
	}
	if session.ExpiredAt(requestcontext.Now(ctx), s.cfg.TTL) {
		return requestcontext.Principal{}, s.invalid(dErrors.CodeExpired, "session expired")
	}

	member, err := s.directory.Membership(ctx, session.UserID, session.OrganizationID)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return requestcontext.Principal{}, dErrors.FromStore(err, "failed to load membership")
	}
	if member == nil || !member.IsActive {
		return requestcontext.Principal{}, s.invalid(dErrors.CodeInvalidToken, "membership is no longer active")
	}

	return requestcontext.Principal{
		UserID:         session.UserID,
		OrganizationID: session.OrganizationID,
		SessionID:      session.ID,
		Role:           member.Role,
	}, nil
}

// Revoke ends the session identified by token. Unknown or already revoked
// tokens succeed silently.
func (s *Service) Revoke(ctx context.Context, token string) error {
	revoked, err := s.store.Revoke(ctx, digest.Token(token), requestcontext.Now(ctx))
	if err != nil {
		return dErrors.FromStore(err, "failed to revoke session")
	}
	if revoked {
		s.metrics.IncRevoked()
		p, _ := requestcontext.PrincipalFrom(ctx)
		s.emit(ctx, audit.Event{
			Action:         audit.ActionSessionRevoked,
			UserID:         p.UserID,
			OrganizationID: p.OrganizationID,
			Subject:        p.SessionID.String(),
		})
	}
	return nil
}

// Login exchanges a verified email proof for a session in orgID. When code is
// set it is verified first; otherwise a proof from an earlier verify-otp call
// is spent.
func (s *Service) Login(ctx context.Context, address string, orgID id.OrganizationID, code string) (*models.Issued, error) {
	issued, err := s.login(ctx, email.Normalize(address), orgID, code)
	if err != nil {
		s.metrics.IncLogin(string(dErrors.CodeOf(err)))
		return nil, err
	}
	s.metrics.IncLogin("ok")
	return issued, nil
}

func (s *Service) login(ctx context.Context, address string, orgID id.OrganizationID, code string) (*models.Issued, error) {
	if address == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "email is required")
	}
	if code != "" {
		if err := s.verifier.Verify(ctx, address, code); err != nil {
			return nil, err
		}
	}
	if err := s.verifier.ConsumeVerification(ctx, address); err != nil {
		return nil, err
	}

	userID, err := s.directory.UserIDByEmail(ctx, address)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "not a member of this organization")
		}
		return nil, dErrors.FromStore(err, "failed to load user")
	}
	return s.Issue(ctx, userID, orgID)
}

func (s *Service) invalid(code dErrors.Code, msg string) error {
	s.metrics.IncValidationFailure(string(code))
	return dErrors.New(code, msg)
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event", "action", event.Action, "error", err)
	}
}
