package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeTemp(t, "app:\n  port: 0\n"))
	require.NoError(t, err)

	assert.Equal(t, 38472, cfg.App.Port)
	assert.Equal(t, 20, cfg.Search.DefaultLimit)
	assert.Equal(t, 100, cfg.Search.MaxLimit)
	assert.Equal(t, 10, cfg.Search.PageSize)
	assert.Equal(t, 1.0, cfg.Fetch.HostRatePerSec)
	assert.Equal(t, 60, cfg.Alerts.IntervalMinutes)
}

func TestLoadReadsSources(t *testing.T) {
	cfg, err := Load(writeTemp(t, `
sources:
  alljobs:
    enabled: true
    weight: 40
    rate_per_min: 30
  gsearch:
    enabled: true
    weight: 20
    cx: "abc123"
    site: "linkedin.com"
`))
	require.NoError(t, err)

	assert.True(t, cfg.Sources.AllJobs.Enabled)
	assert.Equal(t, 40, cfg.Sources.AllJobs.Weight)
	assert.Equal(t, 30, cfg.Sources.AllJobs.RatePerMin)
	assert.True(t, cfg.Sources.GSearch.Enabled)
	assert.Equal(t, "abc123", cfg.Sources.GSearch.CX)
	assert.Equal(t, "linkedin.com", cfg.Sources.GSearch.Site)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("GSEARCH_API_KEY", "secret-key")
	t.Setenv("JOBPILOT_PORT", "9999")
	t.Setenv("TELEGRAM_CHAT_ID", "12345")

	cfg, err := Load(writeTemp(t, "app:\n  port: 38472\n"))
	require.NoError(t, err)

	assert.Equal(t, "secret-key", cfg.GSearchAPIKey)
	assert.Equal(t, 9999, cfg.App.Port)
	assert.Equal(t, int64(12345), cfg.Alerts.TelegramChatID)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		var c Config
		c.App.Port = 38472
		c.Search.DefaultLimit = 20
		c.Search.MaxLimit = 100
		c.Search.PageSize = 10
		return c
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"bad port", func(c *Config) { c.App.Port = -1 }, "app.port"},
		{"max below default", func(c *Config) { c.Search.MaxLimit = 5 }, "max_limit"},
		{"huge page size", func(c *Config) { c.Search.PageSize = 500 }, "page_size"},
		{"negative weight", func(c *Config) { c.Sources.AllJobs.Weight = -1 }, "alljobs.weight"},
		{"gsearch enabled without cx", func(c *Config) { c.Sources.GSearch.Enabled = true }, "gsearch.cx"},
		{"alerts without keywords", func(c *Config) {
			c.Alerts.Enabled = true
			c.Alerts.IntervalMinutes = 60
		}, "alerts.keywords"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestSaveAtomicRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")

	var cfg Config
	cfg.App.Port = 38472
	cfg.Search.DefaultLimit = 20
	cfg.Search.MaxLimit = 100
	cfg.Search.PageSize = 10
	cfg.Sources.AllJobs.Enabled = true
	cfg.Sources.AllJobs.Weight = 40

	require.NoError(t, SaveAtomic(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 40, loaded.Sources.AllJobs.Weight)

	// a second save keeps a backup of the first
	cfg.Sources.AllJobs.Weight = 55
	require.NoError(t, SaveAtomic(path, cfg))
	_, err = os.Stat(path + ".bak")
	assert.NoError(t, err)
}

func TestSaveAtomicRejectsInvalid(t *testing.T) {
	var cfg Config // everything zero: invalid
	err := SaveAtomic(filepath.Join(t.TempDir(), "config.yml"), cfg)
	assert.Error(t, err)
}

func TestEnsureUserConfig(t *testing.T) {
	dir := t.TempDir()

	path, err := EnsureUserConfig(dir, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.yml"), path)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Sources.AllJobs.Enabled)
	assert.True(t, cfg.Sources.Synthetic.Enabled)
	assert.False(t, cfg.Sources.Drushim.Enabled)

	// second call leaves the existing file alone
	require.NoError(t, os.WriteFile(path, []byte("app:\n  port: 1234\n"), 0o644))
	again, err := EnsureUserConfig(dir, "")
	require.NoError(t, err)
	assert.Equal(t, path, again)
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1234, cfg.App.Port)
}
