//go:build integration

package invitation_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"quorum/internal/organization/models"
	"quorum/internal/organization/store/invitation"
	"quorum/internal/organization/store/organization"
	"quorum/internal/platform/postgres"
	id "quorum/pkg/domain"
	"quorum/pkg/platform/sentinel"
	"quorum/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *invitation.Postgres
	orgs     *organization.Postgres
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	db := postgres.NewDB(s.postgres.DB, 5*time.Second)
	s.store = invitation.NewPostgres(db)
	s.orgs = organization.NewPostgres(db)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "invitation_tokens", "organizations"))
}

func (s *PostgresStoreSuite) newToken(digest string, limit int) *models.InvitationToken {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)
	org, err := models.NewOrganization(id.NewOrganizationID(), "Org "+digest, "V"+digest, "A"+digest, now)
	s.Require().NoError(err)
	s.Require().NoError(s.orgs.Create(ctx, org))

	t, err := models.NewInvitationToken(digest, org.ID, models.RoleVoter, "", 7, limit, id.NewUserID(), now)
	s.Require().NoError(err)
	s.Require().NoError(s.store.Create(ctx, t))
	return t
}

// TestConcurrentIncrementUsage verifies the conditional update admits exactly
// usage_limit increments under contention.
func (s *PostgresStoreSuite) TestConcurrentIncrementUsage() {
	ctx := context.Background()
	s.newToken("concurrent", 3)

	var wg sync.WaitGroup
	var wins atomic.Int32
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				cur, err := s.store.FindByDigest(ctx, "concurrent")
				if err != nil || cur.Remaining() == 0 {
					return
				}
				if _, err := s.store.IncrementUsage(ctx, "concurrent", cur.UsedCount); err == nil {
					wins.Add(1)
					return
				}
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(3), wins.Load())
}

func (s *PostgresStoreSuite) TestLifecycle() {
	ctx := context.Background()
	created := s.newToken("lifecycle", 1)

	found, err := s.store.FindByDigest(ctx, "lifecycle")
	s.Require().NoError(err)
	s.Equal(created.OrganizationID, found.OrganizationID)
	s.Empty(found.Email)

	_, err = s.store.IncrementUsage(ctx, "lifecycle", 0)
	s.Require().NoError(err)
	_, err = s.store.IncrementUsage(ctx, "lifecycle", 1)
	s.ErrorIs(err, sentinel.ErrConflict)

	s.Require().NoError(s.store.ReleaseUsage(ctx, "lifecycle"))
	revoked, err := s.store.Deactivate(ctx, "lifecycle")
	s.Require().NoError(err)
	s.False(revoked.IsActive)
	s.Equal(0, revoked.UsedCount)

	n, err := s.store.DeleteExpiredBefore(ctx, time.Now().Add(30*24*time.Hour))
	s.Require().NoError(err)
	s.Equal(int64(1), n)
}
