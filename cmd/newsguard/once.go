package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/csheth/newsguard/internal/checker"
	"github.com/csheth/newsguard/internal/history"
	"github.com/csheth/newsguard/internal/notify"
	"github.com/csheth/newsguard/internal/present"
	"github.com/csheth/newsguard/internal/theme"
)

type onceOptions struct {
	Headline    string
	HistoryPath string
	Palette     theme.Palette
	Colour      bool
}

// checkOnce runs a single submission and prints notifications followed by
// the result. Input and request errors exit with status 1.
func checkOnce(ctx context.Context, controller *checker.Controller, opts onceOptions, w io.Writer) int {
	err := controller.Submit(ctx, opts.Headline)

	for _, n := range controller.Notifications() {
		line := present.RenderNotification(n)
		if opts.Colour {
			line = lipgloss.NewStyle().Foreground(kindColour(opts.Palette, n.Kind)).Render(line)
		}
		fmt.Fprintln(w, line)
	}

	var reqErr *checker.RequestError
	if errors.Is(err, checker.ErrEmptyInput) || errors.As(err, &reqErr) {
		return 1
	}

	state := controller.State()
	if body := present.RenderPlain(present.Present(state), 0); body != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, body)
	}
	if opts.HistoryPath != "" {
		if err := history.Append(opts.HistoryPath, history.NewEntry(opts.Headline, state)); err != nil {
			fmt.Fprintln(w, present.RenderNotification(notify.Warning("Could not save this check to history.")))
		}
	}
	return 0
}

func kindColour(p theme.Palette, kind notify.Kind) lipgloss.Color {
	switch kind {
	case notify.KindSuccess:
		return p.Success
	case notify.KindWarning:
		return p.Warning
	default:
		return p.Danger
	}
}

// colourEnabled is true only for a real terminal without NO_COLOR.
func colourEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
