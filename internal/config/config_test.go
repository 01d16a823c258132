package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"NEWSGUARD_ENDPOINT",
	"NEWSGUARD_TIMEOUT",
	"NEWSGUARD_STALE_POLICY",
	"NEWSGUARD_TOAST_DURATION",
	"NEWSGUARD_HISTORY",
	"NEWSGUARD_PREFS_BACKEND",
	"NEWSGUARD_PREFS",
	"NEWSGUARD_LOG_FILE",
	"NEWSGUARD_LOG_LEVEL",
}

// isolate points config discovery at an empty directory and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
	return dir
}

func writeFile(t *testing.T, path, body string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 60*time.Second, cfg.Timeout.Duration)
	assert.Equal(t, "last-resolved", cfg.StalePolicy)
}

func TestLoadDiscoversXDGConfig(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "xdg", "newsguard", "config.toml"), `
endpoint = "http://localhost:9000/api/usercheck/title/"
timeout = "15s"

[prefs]
backend = "sqlite"
`)

	cfg, err := Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/api/usercheck/title/", cfg.Endpoint)
	assert.Equal(t, 15*time.Second, cfg.Timeout.Duration)
	assert.Equal(t, "sqlite", cfg.Prefs.Backend)
}

func TestLoadPrecedence(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, filepath.Join(dir, "custom.toml"), `
endpoint = "http://from-file.test/check"
stale_policy = "last-issued"

[log]
level = "debug"
`)
	dotenv := writeFile(t, filepath.Join(dir, "app.env"), strings.Join([]string{
		"NEWSGUARD_ENDPOINT=http://from-dotenv.test/check",
		"NEWSGUARD_LOG_LEVEL=warn",
		"NEWSGUARD_TOAST_DURATION=2s",
	}, "\n"))
	t.Setenv("NEWSGUARD_ENDPOINT", "http://from-env.test/check")

	cfg, err := Load(Options{Path: path, DotEnv: dotenv})
	require.NoError(t, err)
	assert.Equal(t, "http://from-env.test/check", cfg.Endpoint, "environment beats .env")
	assert.Equal(t, "warn", cfg.Log.Level, ".env beats the file")
	assert.Equal(t, "last-issued", cfg.StalePolicy, "file beats defaults")
	assert.Equal(t, 2*time.Second, cfg.ToastDuration.Duration)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	dir := isolate(t)

	_, err := Load(Options{Path: filepath.Join(dir, "nope.toml")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	_, err = Load(Options{DotEnv: filepath.Join(dir, "nope.env")})
	require.Error(t, err)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, filepath.Join(dir, "c.toml"), `endpont = "http://typo.test"`)

	_, err := Load(Options{Path: path})
	assert.ErrorContains(t, err, `unknown key "endpont"`)
}

func TestLoadRejectsBadEnvDuration(t *testing.T) {
	isolate(t)
	t.Setenv("NEWSGUARD_TIMEOUT", "soon")

	_, err := Load(Options{})
	assert.ErrorContains(t, err, "NEWSGUARD_TIMEOUT")
}

func TestLoadLeavesValidationToCaller(t *testing.T) {
	isolate(t)
	t.Setenv("NEWSGUARD_LOG_LEVEL", "verbose")

	cfg, err := Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, "verbose", cfg.Log.Level)
	assert.ErrorContains(t, Validate(cfg), "log.level")

	cfg.Log.Level = "debug"
	assert.NoError(t, Validate(cfg))
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"missing endpoint", func(c *Config) { c.Endpoint = "" }, "endpoint"},
		{"non http endpoint", func(c *Config) { c.Endpoint = "ftp://example.com/x" }, "endpoint"},
		{"bad policy", func(c *Config) { c.StalePolicy = "first-wins" }, "stalepolicy"},
		{"bad backend", func(c *Config) { c.Prefs.Backend = "redis" }, "prefs.backend"},
		{"bad level", func(c *Config) { c.Log.Level = "trace" }, "log.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.mutate(cfg)
			err := Validate(cfg)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	assert.NoError(t, Validate(Default()))
}

func TestDurationText(t *testing.T) {
	t.Parallel()

	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("1m30s")))
	assert.Equal(t, 90*time.Second, d.Duration)
	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1m30s", string(text))

	assert.Error(t, d.UnmarshalText([]byte("-5s")))
	assert.Error(t, d.UnmarshalText([]byte("later")))
}

func TestLoadFromReader(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFromReader(strings.NewReader(`history = "/tmp/history.json"`))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/history.json", cfg.History)
	assert.Equal(t, Default().Endpoint, cfg.Endpoint)
}
