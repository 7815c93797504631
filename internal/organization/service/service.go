// Package service implements organization admission: access codes,
// invitation tokens and owner sign-up.
package service

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	orgmetrics "quorum/internal/organization/metrics"
	"quorum/internal/organization/models"
	id "quorum/pkg/domain"
	dErrors "quorum/pkg/domain-errors"
	"quorum/pkg/platform/audit"
	"quorum/pkg/platform/retry"
	"quorum/pkg/platform/sentinel"
	"quorum/pkg/platform/tx"
	"quorum/pkg/requestcontext"
)

type OrganizationStore interface {
	Create(ctx context.Context, org *models.Organization) error
	FindByID(ctx context.Context, orgID id.OrganizationID) (*models.Organization, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	FindByAccessCode(ctx context.Context, code string) (*models.Organization, error)
	Delete(ctx context.Context, orgID id.OrganizationID) error
}

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, userID id.UserID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Delete(ctx context.Context, userID id.UserID) error
}

type MembershipStore interface {
	Create(ctx context.Context, m *models.Membership) error
	Find(ctx context.Context, userID id.UserID, orgID id.OrganizationID) (*models.Membership, error)
	SetActive(ctx context.Context, userID id.UserID, orgID id.OrganizationID, active bool) error
	Delete(ctx context.Context, membershipID id.MembershipID) error
}

type InvitationStore interface {
	Create(ctx context.Context, t *models.InvitationToken) error
	FindByDigest(ctx context.Context, digest string) (*models.InvitationToken, error)
	IncrementUsage(ctx context.Context, digest string, expectedUsed int) (*models.InvitationToken, error)
	ReleaseUsage(ctx context.Context, digest string) error
	Deactivate(ctx context.Context, digest string) (*models.InvitationToken, error)
}

// VerificationConsumer spends a verified email proof exactly once.
type VerificationConsumer interface {
	ConsumeVerification(ctx context.Context, email string) error
}

// SessionIssuer opens a bearer session for a freshly created owner.
type SessionIssuer interface {
	IssueSession(ctx context.Context, userID id.UserID, orgID id.OrganizationID) (*models.SessionGrant, error)
}

// Config holds tunables read from the environment.
type Config struct {
	BcryptCost int
	Retry      retry.Policy
}

// Service orchestrates organization admission.
type Service struct {
	orgs          OrganizationStore
	users         UserStore
	memberships   MembershipStore
	invitations   InvitationStore
	tx            tx.Runner
	verifications VerificationConsumer
	sessions      SessionIssuer
	cfg           Config
	logger        *slog.Logger
	auditor       audit.Emitter
	metrics       *orgmetrics.Metrics
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

func WithMetrics(m *orgmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithTxRunner makes invitation redemption atomic on transactional stores.
func WithTxRunner(r tx.Runner) Option {
	return func(s *Service) {
		s.tx = r
	}
}

// WithSessionIssuer lets CreateOrganization sign the new owner in.
func WithSessionIssuer(issuer SessionIssuer) Option {
	return func(s *Service) {
		s.sessions = issuer
	}
}

// New constructs a Service. The verification consumer is required because
// organization creation cannot proceed without a proven owner email.
func New(
	orgs OrganizationStore,
	users UserStore,
	memberships MembershipStore,
	invitations InvitationStore,
	verifications VerificationConsumer,
	cfg Config,
	opts ...Option,
) (*Service, error) {
	if orgs == nil || users == nil || memberships == nil || invitations == nil {
		return nil, errors.New("organization, user, membership and invitation stores are required")
	}
	if verifications == nil {
		return nil, errors.New("verification consumer is required")
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry = retry.DefaultPolicy()
	}
	s := &Service{
		orgs:          orgs,
		users:         users,
		memberships:   memberships,
		invitations:   invitations,
		verifications: verifications,
		cfg:           cfg,
		tx:            tx.NoTx{},
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// requireManager returns the caller's membership when it may administer orgID.
func (s *Service) requireManager(ctx context.Context, userID id.UserID, orgID id.OrganizationID) (*models.Membership, error) {
	m, err := s.memberships.Find(ctx, userID, orgID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "only organization admins may manage invitations")
		}
		return nil, dErrors.FromStore(err, "failed to load membership")
	}
	if !m.IsActive || !m.Role.CanManage() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "only organization admins may manage invitations")
	}
	return m, nil
}

// findOrCreateUser resolves identity by email, creating a user on first sight.
// A concurrent creation of the same email is resolved by re-reading.
func (s *Service) findOrCreateUser(ctx context.Context, identity models.Identity) (*models.User, error) {
	u, err := s.users.FindByEmail(ctx, identity.Email)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.FromStore(err, "failed to load user")
	}

	u = &models.User{
		ID:        id.NewUserID(),
		Name:      identity.Name,
		Email:     identity.Email,
		CreatedAt: requestcontext.Now(ctx),
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, models.ErrEmailTaken) {
			existing, findErr := s.users.FindByEmail(ctx, identity.Email)
			if findErr != nil {
				return nil, dErrors.FromStore(findErr, "failed to load user")
			}
			return existing, nil
		}
		return nil, dErrors.FromStore(err, "failed to create user")
	}
	return u, nil
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"action", event.Action,
			"error", err,
		)
	}
}
