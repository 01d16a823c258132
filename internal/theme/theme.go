// Package theme owns the persisted colour-theme preference. The preference is
// read once at start, changes only through Toggle, and is written through to
// the backing store on every change.
package theme

import (
	"github.com/charmbracelet/log"

	"github.com/csheth/newsguard/internal/logging"
	"github.com/csheth/newsguard/internal/prefs"
)

// Name is one of the four supported themes.
type Name string

const (
	Light  Name = "light"
	Dark   Name = "dark"
	Blue   Name = "blue"
	Purple Name = "purple"
)

// Default is used when nothing valid is stored.
const Default = Dark

// StorageKey is the preference key the theme is persisted under.
const StorageKey = "theme"

var order = [...]Name{Light, Dark, Blue, Purple}

// Names returns the themes in cycle order.
func Names() []Name {
	out := make([]Name, len(order))
	copy(out, order[:])
	return out
}

// Parse accepts only the exact lowercase names.
func Parse(raw string) (Name, bool) {
	for _, n := range order {
		if string(n) == raw {
			return n, true
		}
	}
	return "", false
}

func (n Name) index() int {
	for i, candidate := range order {
		if candidate == n {
			return i
		}
	}
	return -1
}

// Next returns the theme after n in the fixed cycle. Unknown values restart
// the cycle at the first entry.
func (n Name) Next() Name {
	return order[(n.index()+1)%len(order)]
}

func (n Name) String() string {
	return string(n)
}

// Applier is a rendering context that reacts to theme changes.
type Applier interface {
	ApplyTheme(Name)
}

// ApplierFunc adapts a function to Applier.
type ApplierFunc func(Name)

func (f ApplierFunc) ApplyTheme(n Name) { f(n) }

// Options tunes Load.
type Options struct {
	Logger *log.Logger
}

// Store holds the current theme for the application.
type Store struct {
	kv       prefs.Store
	current  Name
	appliers []Applier
	logger   *log.Logger
}

// Load reads the persisted theme once. Missing, unreadable and unrecognized
// values all fall back to Default; nothing is written back until Toggle.
func Load(kv prefs.Store, opts Options) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	s := &Store{kv: kv, current: Default, logger: logger.WithPrefix("theme")}
	if kv == nil {
		return s
	}
	raw, ok, err := kv.Get(StorageKey)
	switch {
	case err != nil:
		s.logger.Warn("failed to read theme preference", "err", err)
	case !ok:
	default:
		if name, valid := Parse(raw); valid {
			s.current = name
		} else {
			s.logger.Warn("ignoring unrecognized theme preference", "value", raw)
		}
	}
	return s
}

// Current returns the active theme.
func (s *Store) Current() Name {
	return s.current
}

// Palette returns the colours for the active theme.
func (s *Store) Palette() Palette {
	return PaletteFor(s.current)
}

// Attach registers a rendering context and applies the current theme to it
// immediately.
func (s *Store) Attach(a Applier) {
	if a == nil {
		return
	}
	s.appliers = append(s.appliers, a)
	a.ApplyTheme(s.current)
}

// Toggle advances to the next theme, applies it to every attached context and
// persists it. A failed write is logged; the in-memory theme still changes.
func (s *Store) Toggle() Name {
	next := s.current.Next()
	s.current = next
	for _, a := range s.appliers {
		a.ApplyTheme(next)
	}
	if s.kv != nil {
		if err := s.kv.Set(StorageKey, string(next)); err != nil {
			s.logger.Error("failed to persist theme preference", "theme", next, "err", err)
		}
	}
	s.logger.Debug("theme toggled", "theme", next)
	return next
}
