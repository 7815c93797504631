package service

import (
	"context"
	"errors"
	"strings"

	"quorum/internal/organization/models"
	id "quorum/pkg/domain"
	dErrors "quorum/pkg/domain-errors"
	"quorum/pkg/email"
	"quorum/pkg/platform/audit"
	"quorum/pkg/platform/secrets"
	"quorum/pkg/platform/sentinel"
	"quorum/pkg/requestcontext"
)

const (
	accessCodeLength    = 8
	accessCodeAttempts  = 3
	minPasswordLength   = 8
	maxOwnerNameLength  = 128
	maxAccessCodeLength = 64
)

// ValidateAccessCode resolves a standing access code to its organization and
// the role it grants.
func (s *Service) ValidateAccessCode(ctx context.Context, code string) (*models.Organization, models.Role, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || len(code) > maxAccessCodeLength {
		return nil, "", dErrors.New(dErrors.CodeValidation, "access code is required")
	}
	org, err := s.orgs.FindByAccessCode(ctx, code)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, "", dErrors.New(dErrors.CodeNotFound, "access code not recognised")
		}
		return nil, "", dErrors.FromStore(err, "failed to look up access code")
	}
	role, ok := org.RoleForAccessCode(code)
	if !ok {
		return nil, "", dErrors.New(dErrors.CodeNotFound, "access code not recognised")
	}
	return org, role, nil
}

// JoinWithAccessCode admits identity into the organization owning code.
func (s *Service) JoinWithAccessCode(ctx context.Context, code string, identity models.Identity) (*models.JoinResult, error) {
	identity, err := normalizeIdentity(identity)
	if err != nil {
		return nil, err
	}
	org, role, err := s.ValidateAccessCode(ctx, code)
	if err != nil {
		return nil, err
	}

	user, err := s.findOrCreateUser(ctx, identity)
	if err != nil {
		return nil, err
	}
	membership, err := s.createMembership(ctx, user.ID, org.ID, role, models.JoinedViaAccessCode)
	if err != nil {
		return nil, err
	}

	s.metrics.IncMemberJoined(string(models.JoinedViaAccessCode))
	s.emit(ctx, audit.Event{
		Action:         audit.ActionMemberJoined,
		UserID:         user.ID,
		OrganizationID: org.ID,
		Subject:        membership.ID.String(),
		Reason:         string(models.JoinedViaAccessCode),
	})
	return &models.JoinResult{Organization: org, User: user, Membership: membership, Role: role}, nil
}

// CreateOrganization registers an organization with its owner. The owner's
// email must carry a verified, unconsumed one-time code, which is consumed
// after the rows are written so a failed attempt leaves it usable. Partial
// state is rolled back by compensating deletes; a failed session is reported
// through LoginRequired rather than failing the whole operation.
func (s *Service) CreateOrganization(ctx context.Context, reg models.OwnerRegistration) (*models.CreatedOrganization, error) {
	reg, err := normalizeRegistration(reg)
	if err != nil {
		return nil, err
	}
	now := requestcontext.Now(ctx)

	org, err := models.NewOrganization(id.NewOrganizationID(), reg.OrganizationName, "", "", now)
	if err != nil {
		return nil, err
	}
	taken, err := s.orgs.SlugExists(ctx, org.Slug)
	if err != nil {
		return nil, dErrors.FromStore(err, "failed to check organization name")
	}
	if taken {
		return nil, dErrors.New(dErrors.CodeConflict, "an organization with this name already exists")
	}
	if _, err := s.users.FindByEmail(ctx, reg.OwnerEmail); err == nil {
		return nil, dErrors.New(dErrors.CodeConflict, "an account with this email already exists")
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.FromStore(err, "failed to check owner email")
	}

	passwordHash, err := secrets.HashCost(reg.OwnerPassword, s.cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	if err := s.insertOrganization(ctx, org); err != nil {
		return nil, err
	}

	owner := &models.User{
		ID:           id.NewUserID(),
		Name:         reg.OwnerName,
		Email:        reg.OwnerEmail,
		PasswordHash: passwordHash,
		CreatedAt:    now,
	}
	if err := s.users.Create(ctx, owner); err != nil {
		s.compensate(ctx, "delete_organization", func(ctx context.Context) error { return s.orgs.Delete(ctx, org.ID) })
		if errors.Is(err, models.ErrEmailTaken) {
			return nil, dErrors.New(dErrors.CodeConflict, "an account with this email already exists")
		}
		return nil, dErrors.FromStore(err, "failed to create owner")
	}

	membership, err := s.createMembership(ctx, owner.ID, org.ID, models.RoleOwner, models.JoinedViaOrganizationCreation)
	if err != nil {
		s.compensate(ctx, "delete_owner", func(ctx context.Context) error { return s.users.Delete(ctx, owner.ID) })
		s.compensate(ctx, "delete_organization", func(ctx context.Context) error { return s.orgs.Delete(ctx, org.ID) })
		return nil, err
	}

	// The proof is spent only once every row exists.
	if err := s.verifications.ConsumeVerification(ctx, reg.OwnerEmail); err != nil {
		s.compensate(ctx, "delete_membership", func(ctx context.Context) error { return s.memberships.Delete(ctx, membership.ID) })
		s.compensate(ctx, "delete_owner", func(ctx context.Context) error { return s.users.Delete(ctx, owner.ID) })
		s.compensate(ctx, "delete_organization", func(ctx context.Context) error { return s.orgs.Delete(ctx, org.ID) })
		return nil, err
	}

	s.metrics.IncOrganizationCreated()
	s.metrics.IncMemberJoined(string(models.JoinedViaOrganizationCreation))
	s.emit(ctx, audit.Event{
		Action:         audit.ActionOrganizationCreated,
		UserID:         owner.ID,
		OrganizationID: org.ID,
		Subject:        org.Slug,
		Email:          owner.Email,
	})

	result := &models.CreatedOrganization{
		JoinResult: models.JoinResult{Organization: org, User: owner, Membership: membership, Role: models.RoleOwner},
	}
	if s.sessions == nil {
		result.LoginRequired = true
		return result, nil
	}
	grant, err := s.sessions.IssueSession(ctx, owner.ID, org.ID)
	if err != nil {
		s.logger.WarnContext(ctx, "organization created without session",
			"organization_id", org.ID,
			"error", err,
		)
		result.LoginRequired = true
		return result, nil
	}
	result.Session = grant
	return result, nil
}

// DeactivateMember suspends a member; their sessions stop validating at once.
func (s *Service) DeactivateMember(ctx context.Context, actor id.UserID, orgID id.OrganizationID, member id.UserID) error {
	if _, err := s.requireManager(ctx, actor, orgID); err != nil {
		return err
	}
	if actor == member {
		return dErrors.New(dErrors.CodeValidation, "cannot deactivate your own membership")
	}
	target, err := s.memberships.Find(ctx, member, orgID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "membership not found")
		}
		return dErrors.FromStore(err, "failed to load membership")
	}
	if target.Role == models.RoleOwner {
		return dErrors.New(dErrors.CodeForbidden, "the owner cannot be deactivated")
	}
	if err := s.memberships.SetActive(ctx, member, orgID, false); err != nil {
		return dErrors.FromStore(err, "failed to deactivate membership")
	}
	return nil
}

// insertOrganization assigns fresh access codes and retries when a generated
// code collides with an existing one.
func (s *Service) insertOrganization(ctx context.Context, org *models.Organization) error {
	for range accessCodeAttempts {
		voter, err := secrets.AccessCode(accessCodeLength)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate access code")
		}
		admin, err := secrets.AccessCode(accessCodeLength)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate access code")
		}
		if voter == admin {
			continue
		}
		org.VoterAccessCode, org.AdminAccessCode = voter, admin

		err = s.orgs.Create(ctx, org)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, models.ErrSlugTaken):
			return dErrors.New(dErrors.CodeConflict, "an organization with this name already exists")
		case errors.Is(err, models.ErrAccessCodeTaken):
			continue
		default:
			return dErrors.FromStore(err, "failed to create organization")
		}
	}
	return dErrors.New(dErrors.CodeConflict, "could not allocate unique access codes")
}

func (s *Service) createMembership(ctx context.Context, userID id.UserID, orgID id.OrganizationID, role models.Role, via models.JoinedVia) (*models.Membership, error) {
	m := &models.Membership{
		ID:             id.NewMembershipID(),
		UserID:         userID,
		OrganizationID: orgID,
		Role:           role,
		JoinedVia:      via,
		IsActive:       true,
		CreatedAt:      requestcontext.Now(ctx),
	}
	if err := s.memberships.Create(ctx, m); err != nil {
		if errors.Is(err, models.ErrAlreadyMember) {
			return nil, dErrors.New(dErrors.CodeConflict, "already a member of this organization")
		}
		return nil, dErrors.FromStore(err, "failed to create membership")
	}
	return m, nil
}

// compensate runs an undo step detached from the caller's cancellation so a
// timed-out request still cleans up.
func (s *Service) compensate(ctx context.Context, step string, undo func(ctx context.Context) error) {
	if err := undo(context.WithoutCancel(ctx)); err != nil {
		s.metrics.IncCompensationFailure(step)
		s.logger.ErrorContext(ctx, "compensation failed",
			"step", step,
			"error", err,
		)
	}
}

func normalizeIdentity(identity models.Identity) (models.Identity, error) {
	identity.Email = email.Normalize(identity.Email)
	identity.Name = strings.TrimSpace(identity.Name)
	local, domain, ok := strings.Cut(identity.Email, "@")
	if !ok || local == "" || domain == "" {
		return identity, dErrors.New(dErrors.CodeValidation, "a valid email is required")
	}
	if identity.Name == "" {
		identity.Name = email.DisplayName(identity.Email)
	}
	if len(identity.Name) > maxOwnerNameLength {
		return identity, dErrors.New(dErrors.CodeValidation, "name must be 128 characters or less")
	}
	return identity, nil
}

func normalizeRegistration(reg models.OwnerRegistration) (models.OwnerRegistration, error) {
	reg.OrganizationName = strings.TrimSpace(reg.OrganizationName)
	identity, err := normalizeIdentity(models.Identity{Email: reg.OwnerEmail, Name: reg.OwnerName})
	if err != nil {
		return reg, err
	}
	reg.OwnerEmail, reg.OwnerName = identity.Email, identity.Name
	if len(reg.OwnerPassword) < minPasswordLength {
		return reg, dErrors.New(dErrors.CodeValidation, "password must be at least 8 characters")
	}
	return reg, nil
}
