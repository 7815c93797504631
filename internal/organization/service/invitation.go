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
	"quorum/pkg/platform/digest"
	"quorum/pkg/platform/retry"
	"quorum/pkg/platform/secrets"
	"quorum/pkg/platform/sentinel"
	"quorum/pkg/requestcontext"
)

// CreateInvitationToken issues an invitation on behalf of an administrator.
// The returned token is the only copy of the secret; the store keeps its digest.
func (s *Service) CreateInvitationToken(ctx context.Context, req models.InvitationRequest) (*models.IssuedInvitation, error) {
	role, err := models.ParseInvitableRole(req.Role)
	if err != nil {
		return nil, err
	}
	boundEmail := email.Normalize(req.Email)
	if boundEmail != "" && !strings.Contains(boundEmail, "@") {
		return nil, dErrors.New(dErrors.CodeValidation, "email must be a valid address")
	}
	if _, err := s.requireManager(ctx, req.CreatedBy, req.OrganizationID); err != nil {
		return nil, err
	}

	token, err := secrets.Generate()
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate invitation token")
	}
	invitation, err := models.NewInvitationToken(digest.Token(token), req.OrganizationID, role, boundEmail,
		req.ExpiresInDays, req.UsageLimit, req.CreatedBy, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if err := s.invitations.Create(ctx, invitation); err != nil {
		return nil, dErrors.FromStore(err, "failed to store invitation")
	}

	s.metrics.IncInvitationCreated()
	s.emit(ctx, audit.Event{
		Action:         audit.ActionInvitationCreated,
		UserID:         req.CreatedBy,
		OrganizationID: req.OrganizationID,
		Subject:        string(role),
		Email:          boundEmail,
	})
	return &models.IssuedInvitation{Token: token, Invitation: invitation}, nil
}

// RedeemInvitationToken admits identity using an invitation. Each attempt
// re-reads the invitation, checks it, and claims one use with a
// compare-and-swap on used_count; a lost race retries with backoff.
func (s *Service) RedeemInvitationToken(ctx context.Context, token string, identity models.Identity) (*models.JoinResult, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "invitation token is required")
	}
	identity, err := normalizeIdentity(identity)
	if err != nil {
		return nil, err
	}
	tokenDigest := digest.Token(token)

	result, err := retry.OnConflict(ctx, s.cfg.Retry, func() (*models.JoinResult, error) {
		var joined *models.JoinResult
		txErr := s.tx.RunInTx(ctx, func(ctx context.Context) error {
			var err error
			joined, err = s.redeemOnce(ctx, tokenDigest, identity)
			return err
		})
		return joined, txErr
	})
	if err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			err = dErrors.Wrap(err, dErrors.CodeConflict, "invitation is busy, try again")
		}
		s.metrics.IncRedemption(string(dErrors.CodeOf(err)))
		return nil, err
	}

	s.metrics.IncRedemption("ok")
	s.metrics.IncMemberJoined(string(models.JoinedViaInvitation))
	s.emit(ctx, audit.Event{
		Action:         audit.ActionInvitationRedeemed,
		UserID:         result.User.ID,
		OrganizationID: result.Organization.ID,
		Subject:        result.Membership.ID.String(),
		Email:          identity.Email,
	})
	return result, nil
}

// redeemOnce is a single redemption attempt. It returns sentinel.ErrConflict
// only when the usage counter moved underneath it.
func (s *Service) redeemOnce(ctx context.Context, tokenDigest string, identity models.Identity) (*models.JoinResult, error) {
	invitation, err := s.invitations.FindByDigest(ctx, tokenDigest)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "invitation not found")
		}
		return nil, dErrors.FromStore(err, "failed to load invitation")
	}
	if err := invitation.CanRedeem(identity.Email, requestcontext.Now(ctx)); err != nil {
		return nil, err
	}

	org, err := s.orgs.FindByID(ctx, invitation.OrganizationID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "invitation not found")
		}
		return nil, dErrors.FromStore(err, "failed to load organization")
	}
	if !org.IsActive {
		return nil, dErrors.New(dErrors.CodeRevoked, "organization is no longer active")
	}

	// A known member must not burn a use.
	if existing, err := s.users.FindByEmail(ctx, identity.Email); err == nil {
		if _, err := s.memberships.Find(ctx, existing.ID, org.ID); err == nil {
			return nil, dErrors.New(dErrors.CodeConflict, "already a member of this organization")
		} else if !errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.FromStore(err, "failed to load membership")
		}
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.FromStore(err, "failed to load user")
	}

	if _, err := s.invitations.IncrementUsage(ctx, tokenDigest, invitation.UsedCount); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, err
		}
		return nil, dErrors.FromStore(err, "failed to claim invitation use")
	}

	user, err := s.findOrCreateUser(ctx, identity)
	if err != nil {
		s.releaseUse(ctx, tokenDigest)
		return nil, err
	}
	membership, err := s.createMembership(ctx, user.ID, org.ID, invitation.Role, models.JoinedViaInvitation)
	if err != nil {
		s.releaseUse(ctx, tokenDigest)
		return nil, err
	}
	return &models.JoinResult{Organization: org, User: user, Membership: membership, Role: invitation.Role}, nil
}

func (s *Service) releaseUse(ctx context.Context, tokenDigest string) {
	s.compensate(ctx, "release_invitation_use", func(ctx context.Context) error {
		return s.invitations.ReleaseUsage(ctx, tokenDigest)
	})
}

// RevokeInvitationToken deactivates an invitation. Revoking twice is a no-op.
func (s *Service) RevokeInvitationToken(ctx context.Context, token string, actor id.UserID) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return dErrors.New(dErrors.CodeValidation, "invitation token is required")
	}
	tokenDigest := digest.Token(token)
	invitation, err := s.invitations.FindByDigest(ctx, tokenDigest)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "invitation not found")
		}
		return dErrors.FromStore(err, "failed to load invitation")
	}
	if _, err := s.requireManager(ctx, actor, invitation.OrganizationID); err != nil {
		return err
	}
	if !invitation.IsActive {
		return nil
	}
	if _, err := s.invitations.Deactivate(ctx, tokenDigest); err != nil {
		return dErrors.FromStore(err, "failed to revoke invitation")
	}
	s.emit(ctx, audit.Event{
		Action:         audit.ActionInvitationRevoked,
		UserID:         actor,
		OrganizationID: invitation.OrganizationID,
		ActorID:        actor.String(),
	})
	return nil
}
