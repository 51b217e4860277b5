package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME at an empty temp dir and clears LOOPA_* variables so
// each test sees only what it sets itself.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{
		"LOOPA_API_URL", "LOOPA_SESSION", "LOOPA_TIMEOUT_SECONDS",
		"LOOPA_POLL_INTERVAL_MS", "LOOPA_DATA_DIR",
	} {
		t.Setenv(key, "")
	}
	return home
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api", cfg.APIURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 2500*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, filepath.Join(home, ".loopa"), cfg.DataDir)
	assert.Empty(t, cfg.Session)
}

func TestLoadEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("LOOPA_API_URL", "https://loopa.example.com/api")
	t.Setenv("LOOPA_SESSION", "sess-42")
	t.Setenv("LOOPA_TIMEOUT_SECONDS", "5")
	t.Setenv("LOOPA_POLL_INTERVAL_MS", "100")
	t.Setenv("LOOPA_DATA_DIR", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://loopa.example.com/api", cfg.APIURL)
	assert.Equal(t, "sess-42", cfg.Session)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 100*time.Millisecond, cfg.PollInterval)
}

func TestLoadIgnoresMalformedEnvNumbers(t *testing.T) {
	isolate(t)
	t.Setenv("LOOPA_TIMEOUT_SECONDS", "not-a-number")
	t.Setenv("LOOPA_POLL_INTERVAL_MS", "-50")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 2500*time.Millisecond, cfg.PollInterval)
}

func TestLoadConfigFile(t *testing.T) {
	home := isolate(t)
	yaml := "api_url: https://file.example.com/api\nsession: from-file\n"
	require.NoError(t, os.WriteFile(filepath.Join(home, ".loopa.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://file.example.com/api", cfg.APIURL)
	assert.Equal(t, "from-file", cfg.Session)
}

func TestEnvBeatsConfigFile(t *testing.T) {
	home := isolate(t)
	yaml := "api_url: https://file.example.com/api\n"
	require.NoError(t, os.WriteFile(filepath.Join(home, ".loopa.yaml"), []byte(yaml), 0o644))
	t.Setenv("LOOPA_API_URL", "https://env.example.com/api")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com/api", cfg.APIURL)
}

func TestLoadRejectsInvalidURL(t *testing.T) {
	isolate(t)
	t.Setenv("LOOPA_API_URL", "not a url")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestArchivePathCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	cfg := &Config{DataDir: dir}

	path, err := cfg.ArchivePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "archive.db"), path)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
