package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/csheth/newsguard/internal/checker"
	"github.com/csheth/newsguard/internal/history"
	"github.com/csheth/newsguard/internal/notify"
	"github.com/csheth/newsguard/internal/present"
	"github.com/csheth/newsguard/internal/theme"
)

const recentTimeLayout = "2006-01-02 15:04"

type recentOptions struct {
	HistoryPath string
	Limit       int
	Palette     theme.Palette
	Colour      bool
}

// listRecent prints the newest history entries, one per line.
func listRecent(opts recentOptions, stdout, stderr io.Writer) int {
	if opts.HistoryPath == "" {
		fmt.Fprintln(stderr, "no history file configured: set -history or NEWSGUARD_HISTORY")
		return 2
	}
	entries, err := history.Load(opts.HistoryPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(stderr, "failed to read history %s: %v\n", opts.HistoryPath, err)
		return 1
	}
	recent := history.Recent(entries, opts.Limit)
	if len(recent) == 0 {
		fmt.Fprintln(stdout, "No checks recorded yet.")
		return 0
	}
	for _, e := range recent {
		note := verdictNote(e)
		line := present.RenderNotification(note)
		if opts.Colour {
			line = lipgloss.NewStyle().Foreground(kindColour(opts.Palette, note.Kind)).Render(line)
		}
		fmt.Fprintf(stdout, "%s  %s  %s\n", line, e.CheckedAt.Local().Format(recentTimeLayout), e.Headline)
	}
	return 0
}

func verdictNote(e history.Entry) notify.Notification {
	if e.Real() {
		return notify.Success(checker.MessageRealNews).WithIcon(notify.IconCheck)
	}
	return notify.Failure(checker.MessageFakeNews).WithIcon(notify.IconX)
}
