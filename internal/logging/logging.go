// Package logging builds the charmbracelet/log logger shared by newsguard's
// components. The terminal belongs to the UI, so output goes to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Options configures New. Writer takes precedence over File.
type Options struct {
	File      string
	Level     string
	Writer    io.Writer
	Formatter log.Formatter
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a logger and the closer for its output. With neither Writer nor
// File set, it writes to DefaultFile.
func New(opts Options) (*log.Logger, io.Closer, error) {
	level := log.InfoLevel
	if opts.Level != "" {
		parsed, err := log.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, nil, fmt.Errorf("parse log level: %w", err)
		}
		level = parsed
	}

	var (
		writer io.Writer = opts.Writer
		closer io.Closer = nopCloser{}
	)
	if writer == nil {
		path := opts.File
		if path == "" {
			path = DefaultFile()
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		writer, closer = f, f
	}

	logger := log.NewWithOptions(writer, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       opts.Formatter,
	})
	return logger, closer, nil
}

// Discard returns a logger that drops everything. It runs at debug level so
// every call site still formats its fields.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.DebugLevel})
}

// DefaultFile is $XDG_STATE_HOME/newsguard/newsguard.log, falling back to the
// user cache directory.
func DefaultFile() string {
	if state := os.Getenv("XDG_STATE_HOME"); state != "" {
		return filepath.Join(state, "newsguard", "newsguard.log")
	}
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "newsguard", "newsguard.log")
}
