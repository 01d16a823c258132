// Package config resolves newsguard settings from defaults, a TOML file, a
// .env file and NEWSGUARD_* environment variables. Command-line flags are
// applied on top by the caller before Validate.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/csheth/newsguard/internal/checker"
	"github.com/csheth/newsguard/internal/classify"
	"github.com/csheth/newsguard/internal/prefs"
)

const appDir = "newsguard"

// Config is the resolved application configuration.
type Config struct {
	Endpoint      string   `toml:"endpoint" validate:"required,url"`
	Timeout       Duration `toml:"timeout"`
	StalePolicy   string   `toml:"stale_policy" validate:"omitempty,oneof=last-resolved last-issued"`
	ToastDuration Duration `toml:"toast_duration"`
	History       string   `toml:"history"`
	Prefs         Prefs    `toml:"prefs"`
	Log           Log      `toml:"log"`
}

// Prefs selects the preference backend.
type Prefs struct {
	Backend string `toml:"backend" validate:"omitempty,oneof=file sqlite memory"`
	Path    string `toml:"path"`
}

// Log configures the file logger.
type Log struct {
	File  string `toml:"file"`
	Level string `toml:"level" validate:"omitempty,oneof=debug info warn error"`
}

// Options locates the inputs for Load. Empty fields use the standard
// locations; an explicit Path that does not exist is an error.
type Options struct {
	Path   string
	DotEnv string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Endpoint:      classify.DefaultEndpoint,
		Timeout:       Duration{60 * time.Second},
		StalePolicy:   string(checker.LastResolvedWins),
		ToastDuration: Duration{4 * time.Second},
		Prefs:         Prefs{Backend: prefs.BackendFile},
		Log:           Log{Level: "info"},
	}
}

// Load layers the config file, .env and the environment over Default. It does
// not validate: callers apply their own overrides and then call Validate.
func Load(opts Options) (*Config, error) {
	cfg := Default()

	path := opts.Path
	explicit := path != ""
	if !explicit {
		path = searchConfigFile()
	}
	if path != "" {
		f, err := os.Open(path)
		switch {
		case err == nil:
			decodeErr := decode(f, cfg)
			f.Close()
			if decodeErr != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, decodeErr)
			}
		case explicit || !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("failed to open config: %w", err)
		}
	}

	dotenv, err := readDotEnv(opts.DotEnv)
	if err != nil {
		return nil, err
	}
	if err := applyEnv(cfg, func(key string) (string, bool) {
		v, ok := dotenv[key]
		return v, ok
	}); err != nil {
		return nil, fmt.Errorf(".env: %w", err)
	}
	if err := applyEnv(cfg, os.LookupEnv); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	return cfg, nil
}

// LoadFromReader decodes TOML over the defaults without consulting the
// environment.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	if err := decode(r, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(r io.Reader, cfg *Config) error {
	md, err := toml.NewDecoder(r).Decode(cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown key %q", undecoded[0].String())
	}
	return nil
}

func readDotEnv(path string) (map[string]string, error) {
	explicit := path != ""
	if !explicit {
		path = ".env"
	}
	if _, err := os.Stat(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open .env: %w", err)
	}
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return values, nil
}

type lookupFunc func(string) (string, bool)

func applyEnv(cfg *Config, lookup lookupFunc) error {
	strs := map[string]*string{
		"NEWSGUARD_ENDPOINT":      &cfg.Endpoint,
		"NEWSGUARD_STALE_POLICY":  &cfg.StalePolicy,
		"NEWSGUARD_HISTORY":       &cfg.History,
		"NEWSGUARD_PREFS_BACKEND": &cfg.Prefs.Backend,
		"NEWSGUARD_PREFS":         &cfg.Prefs.Path,
		"NEWSGUARD_LOG_FILE":      &cfg.Log.File,
		"NEWSGUARD_LOG_LEVEL":     &cfg.Log.Level,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	durations := map[string]*Duration{
		"NEWSGUARD_TIMEOUT":        &cfg.Timeout,
		"NEWSGUARD_TOAST_DURATION": &cfg.ToastDuration,
	}
	for key, dst := range durations {
		v, ok := lookup(key)
		if !ok || v == "" {
			continue
		}
		parsed, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		dst.Duration = parsed
	}
	return nil
}

// SearchPaths returns the config file locations tried when no path is given.
func SearchPaths() []string {
	home, _ := os.UserHomeDir()
	xdg := os.Getenv("XDG_CONFIG_HOME")
	fallback := filepath.Join(home, ".config")
	if xdg == "" {
		xdg = fallback
	}
	paths := []string{filepath.Join(xdg, appDir, "config.toml")}
	if xdg != fallback {
		paths = append(paths, filepath.Join(fallback, appDir, "config.toml"))
	}
	return paths
}

func searchConfigFile() string {
	for _, p := range SearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
