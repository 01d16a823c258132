// Package prefs is a small persistent key/value store for user preferences.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
)

// Supported backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

const (
	pathEnvVar = "NEWSGUARD_PREFS"
	appSubdir  = "newsguard"
)

// Store reads and writes string preferences. Set must be durable by the time
// it returns.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Close() error
}

// Config selects and locates a backend.
type Config struct {
	Backend string
	Path    string
}

// Open builds the configured store. An empty backend selects the file store;
// an empty path selects DefaultPath.
func Open(cfg Config) (Store, error) {
	backend := cfg.Backend
	if backend == "" {
		backend = BackendFile
	}
	path := cfg.Path
	if path == "" && backend != BackendMemory {
		path = DefaultPath(backend)
	}
	switch backend {
	case BackendFile:
		return OpenFile(path)
	case BackendSQLite:
		return OpenSQLite(path)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown preferences backend %q", backend)
	}
}

// DefaultPath returns NEWSGUARD_PREFS when set, otherwise a backend-specific
// file under the user config directory.
func DefaultPath(backend string) string {
	if env := os.Getenv(pathEnvVar); env != "" {
		return env
	}
	base, err := os.UserConfigDir()
	if err != nil {
		base = filepath.Join(os.TempDir(), "newsguard-config")
	}
	name := "prefs.json"
	if backend == BackendSQLite {
		name = "prefs.db"
	}
	return filepath.Join(base, appSubdir, name)
}
