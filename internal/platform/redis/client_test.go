package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quorum/internal/platform/config"
)

func TestNewWithoutURLIsDisabled(t *testing.T) {
	client, err := New(context.Background(), config.RedisConfig{})
	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestOptions(t *testing.T) {
	t.Run("config overrides URL defaults", func(t *testing.T) {
		opts, err := Options(config.RedisConfig{
			URL:         "redis://:secret@cache.internal:6380/2",
			PoolSize:    7,
			ReadTimeout: 250 * time.Millisecond,
		})
		require.NoError(t, err)
		assert.Equal(t, "cache.internal:6380", opts.Addr)
		assert.Equal(t, "secret", opts.Password)
		assert.Equal(t, 2, opts.DB)
		assert.Equal(t, 7, opts.PoolSize)
		assert.Equal(t, 250*time.Millisecond, opts.ReadTimeout)
		assert.Equal(t, "quorum", opts.ClientName)
	})

	t.Run("malformed URL", func(t *testing.T) {
		_, err := Options(config.RedisConfig{URL: "http://not-redis"})
		assert.Error(t, err)
	})
}
