package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csheth/newsguard/internal/checker"
	"github.com/csheth/newsguard/internal/config"
	"github.com/csheth/newsguard/internal/history"
	"github.com/csheth/newsguard/internal/logging"
	"github.com/csheth/newsguard/internal/prefs"
	"github.com/csheth/newsguard/internal/theme"
)

func isolateEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("NO_COLOR", "1")
	for _, key := range []string{
		"NEWSGUARD_ENDPOINT", "NEWSGUARD_TIMEOUT", "NEWSGUARD_STALE_POLICY", "NEWSGUARD_TOAST_DURATION",
		"NEWSGUARD_HISTORY", "NEWSGUARD_PREFS_BACKEND", "NEWSGUARD_PREFS", "NEWSGUARD_LOG_FILE", "NEWSGUARD_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
	return dir
}

func fakeEndpoint(t *testing.T, body map[string]interface{}) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload["user_news"] == "" {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestParseArgsFlagsOverrideConfig(t *testing.T) {
	isolateEnv(t)
	t.Setenv("NEWSGUARD_ENDPOINT", "http://from-env.test/check")

	cfg, opts, err := parseArgs([]string{
		"-endpoint", "http://from-flag.test/check",
		"-timeout", "5s",
		"-prefs-backend", "sqlite",
		"-stale-policy", "last-issued",
		"-headline", "Rates held steady",
	}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "http://from-flag.test/check", cfg.Endpoint)
	assert.Equal(t, 5*time.Second, cfg.Timeout.Duration)
	assert.Equal(t, "sqlite", cfg.Prefs.Backend)
	assert.Equal(t, "last-issued", cfg.StalePolicy)
	assert.True(t, opts.oneShot)
	assert.Equal(t, "Rates held steady", opts.headline)
}

func TestParseArgsKeepsEnvWhenFlagUnset(t *testing.T) {
	isolateEnv(t)
	t.Setenv("NEWSGUARD_ENDPOINT", "http://from-env.test/check")

	cfg, opts, err := parseArgs(nil, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "http://from-env.test/check", cfg.Endpoint)
	assert.False(t, opts.oneShot)
}

func TestParseArgsRejectsInvalidValues(t *testing.T) {
	isolateEnv(t)

	_, _, err := parseArgs([]string{"-stale-policy", "first-wins"}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "stalepolicy")

	_, _, err = parseArgs([]string{"-endpoint", "not a url"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestParseArgsFlagOverridesInvalidEnv(t *testing.T) {
	isolateEnv(t)
	t.Setenv("NEWSGUARD_LOG_LEVEL", "verbose")

	cfg, _, err := parseArgs([]string{"-log-level", "debug"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)

	_, _, err = parseArgs(nil, &bytes.Buffer{})
	assert.ErrorContains(t, err, "log.level")
}

func TestOpenPrefsRewritesCorruptFile(t *testing.T) {
	dir := isolateEnv(t)
	path := filepath.Join(dir, "prefs.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	var logs bytes.Buffer
	logger, _, err := logging.New(logging.Options{Writer: &logs})
	require.NoError(t, err)

	store := openPrefs(config.Prefs{Backend: prefs.BackendFile, Path: path}, logger)
	_, isFile := store.(*prefs.FileStore)
	require.True(t, isFile, "a damaged file keeps the file backend")
	assert.Contains(t, logs.String(), "preferences file unreadable")

	themes := theme.Load(store, theme.Options{Logger: logger})
	assert.Equal(t, theme.Default, themes.Current())
	assert.Equal(t, theme.Blue, themes.Toggle())
	require.NoError(t, store.Close())

	reopened := openPrefs(config.Prefs{Backend: prefs.BackendFile, Path: path}, logging.Discard())
	t.Cleanup(func() { _ = reopened.Close() })
	assert.Equal(t, theme.Blue, theme.Load(reopened, theme.Options{}).Current())
}

func TestRunRecentListsNewestFirst(t *testing.T) {
	dir := isolateEnv(t)
	historyPath := filepath.Join(dir, "history.json")
	older := history.NewEntry("Aliens land in NYC", checker.State{Label: checker.LabelFalse})
	older.CheckedAt = time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	newer := history.NewEntry("Rates held steady", checker.State{Label: checker.LabelTrue})
	newer.CheckedAt = time.Date(2026, 10, 2, 9, 0, 0, 0, time.UTC)
	require.NoError(t, history.Append(historyPath, older, newer))

	var stdout, stderr bytes.Buffer
	code := run([]string{
		"-recent", "5",
		"-history", historyPath,
		"-prefs-backend", "memory",
		"-log-file", filepath.Join(dir, "newsguard.log"),
	}, &stdout, &stderr)

	require.Equal(t, 0, code, "stderr: %s", stderr.String())
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "✔ Real news!"), lines[0])
	assert.True(t, strings.HasSuffix(lines[0], "Rates held steady"), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "✘ Fake news!"), lines[1])
	assert.True(t, strings.HasSuffix(lines[1], "Aliens land in NYC"), lines[1])
}

func TestRunRecentWithoutHistory(t *testing.T) {
	dir := isolateEnv(t)

	var stdout, stderr bytes.Buffer
	code := run([]string{
		"-recent", "3",
		"-history", filepath.Join(dir, "missing.json"),
		"-prefs-backend", "memory",
		"-log-file", filepath.Join(dir, "newsguard.log"),
	}, &stdout, &stderr)
	assert.Equal(t, 0, code)
	assert.Equal(t, "No checks recorded yet.\n", stdout.String())

	stdout.Reset()
	code = run([]string{
		"-recent", "3",
		"-prefs-backend", "memory",
		"-log-file", filepath.Join(dir, "newsguard.log"),
	}, &stdout, &stderr)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "no history file configured")
}

func TestRunOneShotDegradedAnalysis(t *testing.T) {
	dir := isolateEnv(t)
	srv := fakeEndpoint(t, map[string]interface{}{"prediction": false, "analysis_error": "LLM unavailable"})
	historyPath := filepath.Join(dir, "history.json")

	var stdout, stderr bytes.Buffer
	code := run([]string{
		"-headline", "Aliens land in NYC",
		"-endpoint", srv.URL,
		"-prefs-backend", "memory",
		"-history", historyPath,
		"-log-file", filepath.Join(dir, "newsguard.log"),
	}, &stdout, &stderr)

	require.Equal(t, 0, code, "stderr: %s", stderr.String())
	out := stdout.String()
	fake := strings.Index(out, "Fake news!")
	warn := strings.Index(out, "Unable to fetch LLM insight at the moment.")
	require.GreaterOrEqual(t, fake, 0, out)
	require.Greater(t, warn, fake, "verdict toast precedes the warning")
	assert.Contains(t, out, "Predicted as fake news!")
	assert.Contains(t, out, "LLM unavailable")
	assert.NotContains(t, out, "LLM Insight")

	entries, err := history.Load(historyPath)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Aliens land in NYC", entries[0].Headline)
	assert.Equal(t, "False", entries[0].Label)
}

func TestRunOneShotEmptyInput(t *testing.T) {
	dir := isolateEnv(t)

	var stdout, stderr bytes.Buffer
	code := run([]string{
		"-headline", "  ",
		"-prefs-backend", "memory",
		"-log-file", filepath.Join(dir, "newsguard.log"),
	}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Equal(t, "! Enter some text!\n", stdout.String())
}

func TestRunOneShotTransportFailure(t *testing.T) {
	dir := isolateEnv(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	var stdout, stderr bytes.Buffer
	code := run([]string{
		"-headline", "Aliens land in NYC",
		"-endpoint", srv.URL,
		"-prefs-backend", "memory",
		"-log-file", filepath.Join(dir, "newsguard.log"),
	}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stdout.String(), "Unable to check this headline right now.")
	assert.NotContains(t, stdout.String(), "Predicted as")
}

func TestRunRejectsUnknownFlag(t *testing.T) {
	isolateEnv(t)

	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run([]string{"-zettel", "x"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "flag provided but not defined")
}
