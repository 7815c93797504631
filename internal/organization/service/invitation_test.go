package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"quorum/internal/organization/models"
	"quorum/internal/organization/service/mocks"
	invitationstore "quorum/internal/organization/store/invitation"
	membershipstore "quorum/internal/organization/store/membership"
	orgstore "quorum/internal/organization/store/organization"
	userstore "quorum/internal/organization/store/user"
	id "quorum/pkg/domain"
	dErrors "quorum/pkg/domain-errors"
	"quorum/pkg/platform/retry"
	"quorum/pkg/requestcontext"
)

// admissionFixture wires the service to in-memory stores with one
// organization owned by ownerID.
type admissionFixture struct {
	service     *Service
	org         *models.Organization
	ownerID     id.UserID
	memberships *membershipstore.InMemory
	invitations *invitationstore.InMemory
	now         time.Time
}

func newAdmissionFixture(t *testing.T) *admissionFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	verifications := mocks.NewMockVerificationConsumer(ctrl)
	verifications.EXPECT().ConsumeVerification(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f := &admissionFixture{
		memberships: membershipstore.NewInMemory(),
		invitations: invitationstore.NewInMemory(),
		now:         time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC),
	}
	svc, err := New(orgstore.NewInMemory(), userstore.NewInMemory(), f.memberships, f.invitations, verifications,
		Config{BcryptCost: 4, Retry: retry.Policy{MaxAttempts: 4, InitialInterval: time.Millisecond, MaxInterval: 5 * time.Millisecond}})
	require.NoError(t, err)
	f.service = svc

	created, err := svc.CreateOrganization(f.ctx(), models.OwnerRegistration{
		OrganizationName: "Acme",
		OwnerName:        "Owner",
		OwnerEmail:       "owner@acme.test",
		OwnerPassword:    "password123",
	})
	require.NoError(t, err)
	require.True(t, created.LoginRequired)
	f.org = created.Organization
	f.ownerID = created.User.ID
	return f
}

func (f *admissionFixture) ctx() context.Context {
	return requestcontext.WithTime(context.Background(), f.now)
}

func (f *admissionFixture) at(offset time.Duration) context.Context {
	return requestcontext.WithTime(context.Background(), f.now.Add(offset))
}

func (f *admissionFixture) invite(t *testing.T, req models.InvitationRequest) string {
	t.Helper()
	req.OrganizationID = f.org.ID
	req.CreatedBy = f.ownerID
	issued, err := f.service.CreateInvitationToken(f.ctx(), req)
	require.NoError(t, err)
	return issued.Token
}

func TestAccessCodes(t *testing.T) {
	f := newAdmissionFixture(t)

	t.Run("voter and admin codes map to their roles", func(t *testing.T) {
		_, role, err := f.service.ValidateAccessCode(f.ctx(), f.org.VoterAccessCode)
		require.NoError(t, err)
		assert.Equal(t, models.RoleVoter, role)

		org, role, err := f.service.ValidateAccessCode(f.ctx(), " "+f.org.AdminAccessCode+" ")
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, role)
		assert.Equal(t, f.org.ID, org.ID)
	})

	t.Run("unknown code is not found", func(t *testing.T) {
		_, _, err := f.service.ValidateAccessCode(f.ctx(), "NOPE0000")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	t.Run("joining twice is a conflict", func(t *testing.T) {
		identity := models.Identity{Email: "jane.doe@acme.test"}
		joined, err := f.service.JoinWithAccessCode(f.ctx(), f.org.VoterAccessCode, identity)
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", joined.User.Name)
		assert.Equal(t, models.JoinedViaAccessCode, joined.Membership.JoinedVia)

		_, err = f.service.JoinWithAccessCode(f.ctx(), f.org.VoterAccessCode, identity)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
	})

	t.Run("address without a local part is rejected", func(t *testing.T) {
		for _, address := range []string{"@acme.test", "voter@", "voter"} {
			_, err := f.service.JoinWithAccessCode(f.ctx(), f.org.VoterAccessCode, models.Identity{Email: address})
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation), address)
		}
	})
}

func TestCreateOrganizationSlugConflict(t *testing.T) {
	f := newAdmissionFixture(t)

	_, err := f.service.CreateOrganization(f.ctx(), models.OwnerRegistration{
		OrganizationName: "Acme!!!",
		OwnerName:        "Other",
		OwnerEmail:       "other@acme.test",
		OwnerPassword:    "password123",
	})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
}

func TestRedeemInvitationToken(t *testing.T) {
	t.Run("redeems into the invited role", func(t *testing.T) {
		f := newAdmissionFixture(t)
		token := f.invite(t, models.InvitationRequest{Role: "admin"})

		joined, err := f.service.RedeemInvitationToken(f.ctx(), token, models.Identity{Email: "new@acme.test", Name: "New"})
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, joined.Role)
		assert.Equal(t, models.JoinedViaInvitation, joined.Membership.JoinedVia)
	})

	t.Run("second use of a single-use token is exhausted", func(t *testing.T) {
		f := newAdmissionFixture(t)
		token := f.invite(t, models.InvitationRequest{})

		_, err := f.service.RedeemInvitationToken(f.ctx(), token, models.Identity{Email: "a@acme.test"})
		require.NoError(t, err)
		_, err = f.service.RedeemInvitationToken(f.ctx(), token, models.Identity{Email: "b@acme.test"})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeExhausted))
	})

	t.Run("expired after the configured days", func(t *testing.T) {
		f := newAdmissionFixture(t)
		token := f.invite(t, models.InvitationRequest{ExpiresInDays: 1})

		_, err := f.service.RedeemInvitationToken(f.at(25*time.Hour), token, models.Identity{Email: "late@acme.test"})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeExpired))
	})

	t.Run("email binding is case-insensitive", func(t *testing.T) {
		f := newAdmissionFixture(t)
		token := f.invite(t, models.InvitationRequest{Email: "Bound@Acme.test", UsageLimit: 2})

		_, err := f.service.RedeemInvitationToken(f.ctx(), token, models.Identity{Email: "someone@acme.test"})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeEmailMismatch))

		_, err = f.service.RedeemInvitationToken(f.ctx(), token, models.Identity{Email: "BOUND@acme.TEST"})
		assert.NoError(t, err)
	})

	t.Run("revoked token is rejected and revoke is idempotent", func(t *testing.T) {
		f := newAdmissionFixture(t)
		token := f.invite(t, models.InvitationRequest{})

		require.NoError(t, f.service.RevokeInvitationToken(f.ctx(), token, f.ownerID))
		require.NoError(t, f.service.RevokeInvitationToken(f.ctx(), token, f.ownerID))

		_, err := f.service.RedeemInvitationToken(f.ctx(), token, models.Identity{Email: "x@acme.test"})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeRevoked))
	})

	t.Run("unknown token is not found", func(t *testing.T) {
		f := newAdmissionFixture(t)
		_, err := f.service.RedeemInvitationToken(f.ctx(), "does-not-exist", models.Identity{Email: "x@acme.test"})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	t.Run("existing member does not consume a use", func(t *testing.T) {
		f := newAdmissionFixture(t)
		token := f.invite(t, models.InvitationRequest{})

		_, err := f.service.RedeemInvitationToken(f.ctx(), token, models.Identity{Email: "owner@acme.test"})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))

		_, err = f.service.RedeemInvitationToken(f.ctx(), token, models.Identity{Email: "fresh@acme.test"})
		assert.NoError(t, err)
	})
}

// TestConcurrentRedemption verifies a token with three uses admits exactly
// three of ten simultaneous redeemers; the rest see Exhausted.
func TestConcurrentRedemption(t *testing.T) {
	f := newAdmissionFixture(t)
	token := f.invite(t, models.InvitationRequest{UsageLimit: 3})

	const redeemers = 10
	var wg sync.WaitGroup
	errs := make([]error, redeemers)
	for i := range redeemers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.service.RedeemInvitationToken(f.ctx(), token,
				models.Identity{Email: fmt.Sprintf("voter%d@acme.test", i)})
		}(i)
	}
	wg.Wait()

	var ok, exhausted int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case dErrors.HasCode(err, dErrors.CodeExhausted):
			exhausted++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 3, ok)
	assert.Equal(t, 7, exhausted)
}

func TestDeactivateMember(t *testing.T) {
	f := newAdmissionFixture(t)
	joined, err := f.service.JoinWithAccessCode(f.ctx(), f.org.VoterAccessCode, models.Identity{Email: "v@acme.test"})
	require.NoError(t, err)

	t.Run("voters cannot deactivate others", func(t *testing.T) {
		err := f.service.DeactivateMember(f.ctx(), joined.User.ID, f.org.ID, f.ownerID)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("owner deactivates a voter", func(t *testing.T) {
		require.NoError(t, f.service.DeactivateMember(f.ctx(), f.ownerID, f.org.ID, joined.User.ID))
		m, err := f.memberships.Find(f.ctx(), joined.User.ID, f.org.ID)
		require.NoError(t, err)
		assert.False(t, m.IsActive)
	})
}
