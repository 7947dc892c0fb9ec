package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithoutFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Defaults(), c)
}

func TestLoadFileThenEnvironment(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)
	require.NoError(t, os.MkdirAll(filepath.Join(base, "synbalance"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(base, "synbalance", "config.json"), []byte(`{
		"base_url": "https://login.synbalance.com.br",
		"cookie": {"name": "sid"},
		"endpoints": {"profile": "/v2/perfil"}
	}`), 0o600))
	t.Setenv("SYNBALANCE_HTTP_TIMEOUT", "3s")
	t.Setenv("SYNBALANCE_COOKIE_DOMAIN", ".example.test")

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://login.synbalance.com.br", c.BaseURL)
	assert.Equal(t, "sid", c.Cookie.Name)
	assert.Equal(t, ".example.test", c.Cookie.Domain)
	assert.Equal(t, "/v2/perfil", c.Endpoints.Profile)
	assert.Equal(t, 3*time.Second, c.HTTPTimeout)
	assert.Equal(t, "warn", c.LogLevel)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)
	require.NoError(t, os.MkdirAll(filepath.Join(base, "synbalance"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(base, "synbalance", "config.json"), []byte("{"), 0o600))

	_, err := Load()
	require.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	c := Defaults()
	c.BaseURL = "http://127.0.0.1:8080"

	require.NoError(t, Save(c))
	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestLoadFileIgnoresEnvironment(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	c := Defaults()
	c.BaseURL = "https://login.synbalance.com.br"
	require.NoError(t, Save(c))
	t.Setenv("SYNBALANCE_URL", "http://127.0.0.1:9")

	got, err := LoadFile()
	require.NoError(t, err)
	assert.Equal(t, "https://login.synbalance.com.br", got.BaseURL)

	got, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9", got.BaseURL)
}

func TestLocationFallsBackToUTC(t *testing.T) {
	c := Defaults()
	c.Timezone = "Nowhere/Atlantis"
	assert.Equal(t, time.UTC, c.Location())

	c.Timezone = ""
	assert.Equal(t, time.UTC, c.Location())
}
