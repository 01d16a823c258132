package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/csheth/newsguard/internal/checker"
	"github.com/csheth/newsguard/internal/classify"
	"github.com/csheth/newsguard/internal/clipping"
	"github.com/csheth/newsguard/internal/config"
	"github.com/csheth/newsguard/internal/logging"
	"github.com/csheth/newsguard/internal/prefs"
	"github.com/csheth/newsguard/internal/theme"
	"github.com/csheth/newsguard/internal/tui"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	configPath  string
	clipping    string
	headline    string
	recent      int
	oneShot     bool
	noAltScreen bool
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, opts, err := parseArgs(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 2
	}

	logger, closer, err := logging.New(logging.Options{File: cfg.Log.File, Level: cfg.Log.Level})
	if err != nil {
		fmt.Fprintln(stderr, "failed to start logging:", err)
		return 1
	}
	defer closer.Close()

	policy, err := checker.ParsePolicy(cfg.StalePolicy)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	client, err := classify.NewFromEnv(classify.Config{Endpoint: cfg.Endpoint, Timeout: cfg.Timeout.Duration})
	if err != nil {
		fmt.Fprintln(stderr, "failed to configure classifier:", err)
		return 1
	}
	controller := checker.New(client, checker.Options{Policy: policy, Logger: logger})
	logger.Info("starting", "endpoint", client.Endpoint(), "policy", policy, "prefs", cfg.Prefs.Backend)

	store := openPrefs(cfg.Prefs, logger)
	defer store.Close()
	themes := theme.Load(store, theme.Options{Logger: logger})

	if opts.recent > 0 {
		return listRecent(recentOptions{
			HistoryPath: cfg.History,
			Limit:       opts.recent,
			Palette:     themes.Palette(),
			Colour:      colourEnabled(stdout),
		}, stdout, stderr)
	}

	if opts.oneShot {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return checkOnce(ctx, controller, onceOptions{
			Headline:    opts.headline,
			HistoryPath: cfg.History,
			Palette:     themes.Palette(),
			Colour:      colourEnabled(stdout),
		}, stdout)
	}

	initial := ""
	if opts.clipping != "" {
		initial, err = clipping.Headline(opts.clipping)
		if err != nil {
			fmt.Fprintln(stderr, "failed to read clipping:", err)
			return 1
		}
	}

	programOpts := []tea.ProgramOption{}
	if !opts.noAltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	program := tea.NewProgram(
		tui.New(tui.Config{
			Controller:    controller,
			Theme:         themes,
			HistoryPath:   cfg.History,
			ToastDuration: cfg.ToastDuration.Duration,
			InitialText:   initial,
			Logger:        logger,
		}),
		programOpts...,
	)
	if _, err := program.Run(); err != nil {
		logger.Error("program error", "err", err)
		fmt.Fprintln(stderr, "program error:", err)
		return 1
	}
	return 0
}

// parseArgs loads the configuration and layers explicitly set flags on top.
func parseArgs(args []string, stderr io.Writer) (*config.Config, options, error) {
	fs := flag.NewFlagSet("newsguard", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	fs.StringVar(&opts.configPath, "config", "", "path to a TOML config file")
	endpoint := fs.String("endpoint", "", "classification endpoint URL")
	timeout := fs.Duration("timeout", 0, "HTTP timeout for classification requests")
	prefsBackend := fs.String("prefs-backend", "", "preference store: file, sqlite or memory")
	prefsPath := fs.String("prefs", "", "path to the preference store")
	historyPath := fs.String("history", "", "append checked headlines to this JSON file")
	logFile := fs.String("log-file", "", "log file path")
	logLevel := fs.String("log-level", "", "log level: debug, info, warn or error")
	stalePolicy := fs.String("stale-policy", "", "which overlapping result wins: last-resolved or last-issued")
	toastDuration := fs.Duration("toast-duration", 0, "how long notifications stay on screen")
	fs.StringVar(&opts.clipping, "clipping", "", "prefill the headline from a PDF clipping")
	fs.StringVar(&opts.headline, "headline", "", "check one headline, print the result and exit")
	fs.IntVar(&opts.recent, "recent", 0, "print the N most recent history entries and exit")
	fs.BoolVar(&opts.noAltScreen, "no-alt-screen", false, "disable the alternate screen buffer")
	if err := fs.Parse(args); err != nil {
		return nil, opts, err
	}

	cfg, err := config.Load(config.Options{Path: opts.configPath})
	if err != nil {
		return nil, opts, err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "endpoint":
			cfg.Endpoint = *endpoint
		case "timeout":
			cfg.Timeout.Duration = *timeout
		case "prefs-backend":
			cfg.Prefs.Backend = *prefsBackend
		case "prefs":
			cfg.Prefs.Path = *prefsPath
		case "history":
			cfg.History = *historyPath
		case "log-file":
			cfg.Log.File = *logFile
		case "log-level":
			cfg.Log.Level = *logLevel
		case "stale-policy":
			cfg.StalePolicy = *stalePolicy
		case "toast-duration":
			cfg.ToastDuration.Duration = *toastDuration
		case "headline":
			opts.oneShot = true
		}
	})
	if err := config.Validate(cfg); err != nil {
		return nil, opts, err
	}
	return cfg, opts, nil
}

// openPrefs falls back to an in-memory store when the backend cannot be
// opened at all. A damaged preferences file is not such a case: it opens
// empty and the next Set replaces it.
func openPrefs(cfg config.Prefs, logger *log.Logger) prefs.Store {
	store, err := prefs.Open(prefs.Config{Backend: cfg.Backend, Path: cfg.Path})
	if err != nil {
		logger.Warn("preferences unavailable, using memory store", "backend", cfg.Backend, "err", err)
		return prefs.NewMemory()
	}
	if fs, ok := store.(*prefs.FileStore); ok {
		if err := fs.Recovered(); err != nil {
			logger.Warn("preferences file unreadable, rewriting on next change", "path", fs.Path(), "err", err)
		}
	}
	return store
}
