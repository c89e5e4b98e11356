package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv(EnvBaseURL, "")
	return dir
}

func writeRaw(t *testing.T, dir, content string) {
	t.Helper()
	cfgDir := filepath.Join(dir, ".backoffice")
	require.NoError(t, os.MkdirAll(cfgDir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config"), []byte(content), 0600))
}

func TestSaveConfigCreatesDirectories(t *testing.T) {
	withHome(t)

	cfg := Default()
	require.NoError(t, cfg.Save())

	// Verify file exists and has correct permissions
	info, err := os.Stat(Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestLoadConfigNonExistentUsesDefaults(t *testing.T) {
	withHome(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, DefaultPageSize, cfg.PageSize)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, float64(DefaultRequestsPerSecond), cfg.RequestsPerSecond)
}

func TestSaveLoadRoundtripWithAllFields(t *testing.T) {
	withHome(t)

	original := Config{
		BaseURL:           "https://api.example.com/api",
		Timeout:           5 * time.Second,
		PageSize:          25,
		Theme:             "light",
		VimKeys:           true,
		LogLevel:          "debug",
		RequestsPerSecond: 4,
	}
	require.NoError(t, original.Save())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, original, *loaded)
}

func TestSaveConfigOverwritesExisting(t *testing.T) {
	withHome(t)

	require.NoError(t, (&Config{PageSize: 5}).Save())
	require.NoError(t, (&Config{PageSize: 50}).Save())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 50, loaded.PageSize)
}

func TestLoadConfigEmptyFileUsesDefaults(t *testing.T) {
	dir := withHome(t)
	writeRaw(t, dir, "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	dir := withHome(t)
	writeRaw(t, dir, "invalid: yaml: content:")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"negative page size": "page_size: -1\n",
		"negative rps":       "requests_per_second: -2\n",
		"bad url":            "base_url: ftp://example\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			dir := withHome(t)
			writeRaw(t, dir, content)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigParsesDurations(t *testing.T) {
	dir := withHome(t)
	writeRaw(t, dir, "timeout: 45s\npage_size: 15\n")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
	assert.Equal(t, 15, cfg.PageSize)
}

func TestEnvOverridesBaseURL(t *testing.T) {
	dir := withHome(t)
	writeRaw(t, dir, "base_url: http://from-file/api\n")
	t.Setenv(EnvBaseURL, "http://from-env/api")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://from-env/api", cfg.BaseURL)
}

func TestConfigPermissionsStrictlyEnforced(t *testing.T) {
	withHome(t)

	require.NoError(t, Default().Save())

	// Try to make it world-readable
	require.NoError(t, os.Chmod(Path(), 0644))

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "permissions")
}

func TestPathReturnsCorrectLocation(t *testing.T) {
	path := Path()
	assert.Contains(t, path, ".backoffice")
	assert.Contains(t, path, "config")
	assert.Contains(t, SessionPath(), "session.db")
}
