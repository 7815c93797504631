package membership

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quorum/internal/organization/models"
	id "quorum/pkg/domain"
	"quorum/pkg/platform/sentinel"
)

func TestMembershipStore(t *testing.T) {
	ctx := context.Background()
	store := NewInMemory()
	m := &models.Membership{
		ID:             id.NewMembershipID(),
		UserID:         id.NewUserID(),
		OrganizationID: id.NewOrganizationID(),
		Role:           models.RoleVoter,
		JoinedVia:      models.JoinedViaAccessCode,
		IsActive:       true,
		CreatedAt:      time.Now(),
	}
	require.NoError(t, store.Create(ctx, m))

	t.Run("one membership per user and organization", func(t *testing.T) {
		dup := *m
		dup.ID = id.NewMembershipID()
		assert.ErrorIs(t, store.Create(ctx, &dup), models.ErrAlreadyMember)
	})

	t.Run("deactivate", func(t *testing.T) {
		require.NoError(t, store.SetActive(ctx, m.UserID, m.OrganizationID, false))
		found, err := store.Find(ctx, m.UserID, m.OrganizationID)
		require.NoError(t, err)
		assert.False(t, found.IsActive)
	})

	t.Run("unknown pair", func(t *testing.T) {
		err := store.SetActive(ctx, id.NewUserID(), m.OrganizationID, true)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, m.ID))
		_, err := store.Find(ctx, m.UserID, m.OrganizationID)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})
}
