package history

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/csheth/newsguard/internal/checker"
)

func TestAppendAndLoadRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "history.json")
	first := NewEntry("Aliens land in NYC", checker.State{Label: checker.LabelFalse, AnalysisError: "LLM unavailable"})
	second := NewEntry("Rates held steady", checker.State{Label: checker.LabelTrue, Analysis: "Matches wire reports."})

	if err := Append(path, first); err != nil {
		t.Fatalf("append first: %v", err)
	}
	if err := Append(path, second); err != nil {
		t.Fatalf("append second: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].Headline != "Aliens land in NYC" || got[0].Real() {
		t.Fatalf("unexpected first entry %+v", got[0])
	}
	if got[0].AnalysisError != "LLM unavailable" || got[0].Analysis != "" {
		t.Fatalf("expected degraded analysis to persist, got %+v", got[0])
	}
	if !got[1].Real() || got[1].Analysis != "Matches wire reports." {
		t.Fatalf("unexpected second entry %+v", got[1])
	}
	if got[0].ID == got[1].ID {
		t.Fatalf("expected distinct ids, got %q twice", got[0].ID)
	}
	if _, err := uuid.Parse(got[0].ID); err != nil {
		t.Fatalf("expected uuid id, got %q: %v", got[0].ID, err)
	}
}

func TestAppendWithoutPathIsNoop(t *testing.T) {
	t.Parallel()

	if err := Append("", NewEntry("x", checker.State{})); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "history.json")
	if err := os.WriteFile(path, []byte("\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := Load(path)
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty history, got %v, %v", got, err)
	}
}

func TestRecentNewestFirst(t *testing.T) {
	t.Parallel()

	entries := []Entry{{Headline: "a"}, {Headline: "b"}, {Headline: "c"}}
	got := Recent(entries, 2)
	if len(got) != 2 || got[0].Headline != "c" || got[1].Headline != "b" {
		t.Fatalf("unexpected recent entries %+v", got)
	}
	if len(Recent(entries, 10)) != 3 {
		t.Fatal("expected all entries when n exceeds length")
	}
	if Recent(entries, 0) != nil {
		t.Fatal("expected nil for n=0")
	}
}
