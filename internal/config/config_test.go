package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	return root
}

func TestDefaultConfig_Validates(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 10, cfg.API.PageSize)
	assert.Equal(t, "authToken", cfg.Credential.Key)
	assert.Equal(t, "FireRockie2", cfg.Rockie.DefaultName)
	assert.Zero(t, cfg.HTTP.Timeout)
}

func TestLoad_MissingDefaultFileUsesDefaults(t *testing.T) {
	root := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig().API, cfg.API)
	dataDir := filepath.Join(root, "data", "beplus")
	assert.Equal(t, filepath.Join(dataDir, "secrets"), cfg.Credential.Dir)
	assert.Equal(t, filepath.Join(dataDir, "beplus.db"), cfg.Store.Path)
	assert.Equal(t, filepath.Join(dataDir, "beplus.log"), cfg.Log.File)
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestLoad_FileThenEnvPrecedence(t *testing.T) {
	root := isolate(t)
	path := filepath.Join(root, "config", "beplus", "config.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte(`
[api]
activities_url = "http://localhost:8787/activities"
page_size = 25

[http]
timeout = "15s"

[credential]
backend = "file"
`), 0o600))

	t.Setenv("BEPLUS_API_PAGE_SIZE", "5")
	t.Setenv("BEPLUS_ROCKIE_DEFAULT_NAME", "Pebbles")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8787/activities", cfg.API.ActivitiesURL)
	assert.Equal(t, DefaultConfig().API.RockieURL, cfg.API.RockieURL)
	assert.Equal(t, 5, cfg.API.PageSize)
	assert.Equal(t, 15*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, BackendFile, cfg.Credential.Backend)
	assert.Equal(t, "Pebbles", cfg.Rockie.DefaultName)
}

func TestLoad_InvalidValuesRejected(t *testing.T) {
	isolate(t)
	t.Setenv("BEPLUS_CREDENTIAL_BACKEND", "keyring")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown backend "keyring"`)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad scheme", func(c *Config) { c.API.RockieURL = "ftp://example.com/rockie" }, "api.rockie_url"},
		{"missing host", func(c *Config) { c.API.ActivitiesURL = "https:///activities" }, "api.activities_url"},
		{"zero page size", func(c *Config) { c.API.PageSize = 0 }, "api.page_size"},
		{"negative timeout", func(c *Config) { c.HTTP.Timeout = -time.Second }, "http.timeout"},
		{"blank key", func(c *Config) { c.Credential.Key = "  " }, "credential.key"},
		{"blank rockie name", func(c *Config) { c.Rockie.DefaultName = "" }, "rockie.default_name"},
		{"unknown level", func(c *Config) { c.Log.Level = "trace" }, "log.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestWriteFile_LoadsBack(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := DefaultConfig()
	cfg.API.PageSize = 20
	cfg.HTTP.Timeout = 30 * time.Second
	cfg.Log.Level = "debug"
	require.NoError(t, WriteFile(path, cfg, false))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 20, loaded.API.PageSize)
	assert.Equal(t, 30*time.Second, loaded.HTTP.Timeout)
	assert.Equal(t, slog.LevelDebug, loaded.Log.SlogLevel())
}

func TestWriteFile_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, WriteFile(path, DefaultConfig(), false))

	err := WriteFile(path, DefaultConfig(), false)
	require.ErrorIs(t, err, ErrExists)

	require.NoError(t, WriteFile(path, DefaultConfig(), true))
}

func TestSlogLevel_Fallback(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, LogConfig{Level: "bogus"}.SlogLevel())
	assert.Equal(t, slog.LevelWarn, LogConfig{Level: "warn"}.SlogLevel())
}
