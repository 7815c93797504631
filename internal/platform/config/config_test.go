package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 5*time.Minute, cfg.Auth.OTPTTL)
	assert.Equal(t, 5, cfg.Auth.OTPMaxAttempts)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, 10*time.Minute, cfg.Ballot.ChangeWindow)
	assert.Equal(t, 5*time.Minute, cfg.Cleanup.Interval)
	assert.Equal(t, 7*24*time.Hour, cfg.Cleanup.TokenGrace)
	assert.Len(t, cfg.Ballot.EncryptionKey, keySize, "development generates keys")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("VOTE_CHANGE_WINDOW", "600s")
	t.Setenv("VOTE_MAX_CHANGES", "1")
	t.Setenv("KAFKA_BROKERS", "a:9092,b:9092")
	t.Setenv("VOTE_SIGNING_KEY", strings.Repeat("ab", keySize))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 600*time.Second, cfg.Ballot.ChangeWindow)
	assert.Equal(t, 1, cfg.Ballot.MaxChanges)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, byte(0xab), cfg.Ballot.SigningKey[0])
}

func TestLoadErrors(t *testing.T) {
	t.Run("unparseable duration", func(t *testing.T) {
		t.Setenv("OTP_TTL", "soon")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse env:")
	})

	t.Run("short key", func(t *testing.T) {
		t.Setenv("VOTE_ENCRYPTION_KEY", "abcd")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must decode to 32 bytes")
	})

	t.Run("production requires keys", func(t *testing.T) {
		t.Setenv("QUORUM_ENV", "production")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "required in production")
	})
}
