package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quorum/internal/session/models"
	id "quorum/pkg/domain"
	"quorum/pkg/platform/sentinel"
)

func newSession(digest string, createdAt time.Time) *models.Session {
	return &models.Session{
		ID:             id.NewSessionID(),
		TokenDigest:    digest,
		UserID:         id.NewUserID(),
		OrganizationID: id.NewOrganizationID(),
		CreatedAt:      createdAt,
		ExpiresAt:      createdAt.Add(24 * time.Hour),
		IsActive:       true,
	}
}

func TestInMemory(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	t.Run("find returns a copy", func(t *testing.T) {
		s := NewInMemory()
		require.NoError(t, s.Create(ctx, newSession("d1", now)))

		got, err := s.FindByDigest(ctx, "d1")
		require.NoError(t, err)
		got.IsActive = false

		again, err := s.FindByDigest(ctx, "d1")
		require.NoError(t, err)
		assert.True(t, again.IsActive)
	})

	t.Run("duplicate digest is rejected", func(t *testing.T) {
		s := NewInMemory()
		require.NoError(t, s.Create(ctx, newSession("d1", now)))
		assert.ErrorIs(t, s.Create(ctx, newSession("d1", now)), sentinel.ErrAlreadyUsed)
	})

	t.Run("revoke reports whether anything changed", func(t *testing.T) {
		s := NewInMemory()
		require.NoError(t, s.Create(ctx, newSession("d1", now)))

		revoked, err := s.Revoke(ctx, "d1", now)
		require.NoError(t, err)
		assert.True(t, revoked)

		revoked, err = s.Revoke(ctx, "d1", now.Add(time.Minute))
		require.NoError(t, err)
		assert.False(t, revoked)

		got, err := s.FindByDigest(ctx, "d1")
		require.NoError(t, err)
		require.NotNil(t, got.RevokedAt)
		assert.Equal(t, now, *got.RevokedAt)
	})

	t.Run("delete created before cutoff", func(t *testing.T) {
		s := NewInMemory()
		require.NoError(t, s.Create(ctx, newSession("old", now.Add(-48*time.Hour))))
		require.NoError(t, s.Create(ctx, newSession("new", now)))

		n, err := s.DeleteCreatedBefore(ctx, now.Add(-time.Hour))
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		_, err = s.FindByDigest(ctx, "old")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
		_, err = s.FindByDigest(ctx, "new")
		assert.NoError(t, err)
	})
}
