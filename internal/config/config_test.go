package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 10, cfg.MaxRedirects)
	assert.Equal(t, 50, cfg.MaxRedirectsLimit)
	assert.Equal(t, 10*time.Second, cfg.HopTimeout)
	assert.Equal(t, "purls", cfg.UserAgent)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 4, cfg.Concurrency)
}

func TestLoad_Environment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PURLS_PORT", "9090")
	t.Setenv("PURLS_MAX_REDIRECTS", "3")
	t.Setenv("PURLS_HOP_TIMEOUT", "1500ms")
	t.Setenv("PURLS_CONCURRENCY", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 3, cfg.MaxRedirects)
	assert.Equal(t, 1500*time.Millisecond, cfg.HopTimeout)
	assert.Equal(t, 1, cfg.Concurrency)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("PURLS_USER_AGENT=dotenv-agent\nPURLS_MAX_REDIRECTS=80\n"), 0644))
	t.Cleanup(func() {
		os.Unsetenv("PURLS_USER_AGENT")
		os.Unsetenv("PURLS_MAX_REDIRECTS")
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "dotenv-agent", cfg.UserAgent)
	assert.Equal(t, 50, cfg.MaxRedirects, "clamped to the limit")
}

func TestLoad_Invalid(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PURLS_PORT", "not-a-number")

	_, err := Load()
	assert.Error(t, err)
}
