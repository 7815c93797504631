package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("QUORUM_ADDR", ":9000")
	t.Setenv("QUORUM_LOG_LEVEL", "warn")
	t.Setenv("DATABASE_URL", "postgres://quorum@localhost/quorum")

	f, fs, err := parseFlags([]string{"--addr", ":7000", "--in-memory", "--env-file", filepath.Join(t.TempDir(), "absent.env")})
	require.NoError(t, err)

	_, err = loadConfig(f, fs)
	assert.Error(t, err, "an explicitly named env file must exist")

	f, fs, err = parseFlags([]string{"--addr", ":7000", "--in-memory"})
	require.NoError(t, err)
	f.envFile = filepath.Join(t.TempDir(), "absent.env")

	cfg, err := loadConfig(f, fs)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Empty(t, cfg.Database.URL)
}

func TestEnvFileIsLoaded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("VOTE_MAX_CHANGES=7\n"), 0o600))
	t.Setenv("VOTE_MAX_CHANGES", "")
	require.NoError(t, os.Unsetenv("VOTE_MAX_CHANGES"))

	f, fs, err := parseFlags([]string{"--env-file", path})
	require.NoError(t, err)

	cfg, err := loadConfig(f, fs)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Ballot.MaxChanges)
}
