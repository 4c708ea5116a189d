package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvAPIURL, EnvLogLevel, EnvUsername, EnvPassword} {
		t.Setenv(key, "")
	}
}

func TestLoadFromPathMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := loadFromPath(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFromPathReadsYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `api:
  url: https://events.example.com/api/v1
  timeout: 5s
log:
  level: debug
digest:
  days: 3
  schedule: "0 8 * * *"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := loadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "https://events.example.com/api/v1", cfg.API.URL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 3, cfg.Digest.Days)
	assert.Equal(t, "0 8 * * *", cfg.Digest.Schedule)
}

func TestLoadFromPathPartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: info\n"), 0644))

	cfg, err := loadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIURL, cfg.API.URL)
	assert.Equal(t, DefaultAPITimeout, cfg.API.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, DefaultDigestDays, cfg.Digest.Days)
}

func TestLoadFromPathInvalidYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: [unterminated"), 0644))

	_, err := loadFromPath(path)
	assert.Error(t, err)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAPIURL, "  http://override:9000/api  ")
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvUsername, "dave")
	t.Setenv(EnvPassword, "open the pod bay doors")

	cfg, err := loadFromPath(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "http://override:9000/api", cfg.API.URL)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, "dave", cfg.Username)
	assert.Equal(t, "open the pod bay doors", cfg.Password)
}

func TestLoadIsCached(t *testing.T) {
	clearEnv(t)
	ResetForTesting()
	t.Cleanup(ResetForTesting)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: info\n"), 0644))
	UsePath(path)

	first, err := Load()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0644))
	second, err := Load()
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, "info", second.Log.Level)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".config", "todolist"), ExpandPath("~/.config/todolist"))
	assert.Equal(t, "/etc/todolist.yaml", ExpandPath("/etc/todolist.yaml"))
	assert.Equal(t, "relative.yaml", ExpandPath("relative.yaml"))
}
