// Package history keeps a local log of checked headlines as a JSON array.
package history

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/csheth/newsguard/internal/checker"
)

// Entry is one recorded classification.
type Entry struct {
	ID            string    `json:"id"`
	Headline      string    `json:"headline"`
	Label         string    `json:"label"`
	Analysis      string    `json:"analysis,omitempty"`
	AnalysisError string    `json:"analysisError,omitempty"`
	CheckedAt     time.Time `json:"checkedAt"`
}

// NewEntry captures the outcome held in state for headline.
func NewEntry(headline string, state checker.State) Entry {
	return Entry{
		ID:            uuid.NewString(),
		Headline:      headline,
		Label:         string(state.Label),
		Analysis:      state.Analysis,
		AnalysisError: state.AnalysisError,
		CheckedAt:     time.Now().UTC(),
	}
}

// Real reports whether the entry was classified as real news.
func (e Entry) Real() bool {
	return e.Label == string(checker.LabelTrue)
}

// Append adds entries to the file at path, creating it if necessary.
func Append(path string, entries ...Entry) error {
	if path == "" || len(entries) == 0 {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	existing, err := Load(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return write(path, append(existing, entries...))
}

// Load returns every stored entry, oldest first.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Recent returns up to n entries, newest first.
func Recent(entries []Entry, n int) []Entry {
	if n <= 0 || len(entries) == 0 {
		return nil
	}
	if n > len(entries) {
		n = len(entries)
	}
	out := make([]Entry, 0, n)
	for i := len(entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, entries[i])
	}
	return out
}

func write(path string, entries []Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
