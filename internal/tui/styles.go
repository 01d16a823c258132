package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/csheth/newsguard/internal/notify"
	"github.com/csheth/newsguard/internal/present"
	"github.com/csheth/newsguard/internal/theme"
)

// styles is rebuilt whenever the theme changes.
type styles struct {
	hero        lipgloss.Style
	tagline     lipgloss.Style
	helper      lipgloss.Style
	err         lipgloss.Style
	inputBox    lipgloss.Style
	button      lipgloss.Style
	buttonBusy  lipgloss.Style
	verdictReal lipgloss.Style
	verdictFake lipgloss.Style
	blockTitle  lipgloss.Style
	block       lipgloss.Style
	blockError  lipgloss.Style
	toastBase   lipgloss.Style
	toastColors map[notify.Kind]lipgloss.Color
	key         lipgloss.Style
	keyDesc     lipgloss.Style
}

func newStyles(p theme.Palette) styles {
	return styles{
		hero:        lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		tagline:     lipgloss.NewStyle().Italic(true).Foreground(p.Muted),
		helper:      lipgloss.NewStyle().Foreground(p.Muted),
		err:         lipgloss.NewStyle().Foreground(p.Danger),
		inputBox:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Border).Padding(0, 1),
		button:      lipgloss.NewStyle().Bold(true).Foreground(p.Background).Background(p.Accent).Padding(0, 2),
		buttonBusy:  lipgloss.NewStyle().Foreground(p.Muted).Background(p.Surface).Padding(0, 2),
		verdictReal: lipgloss.NewStyle().Bold(true).Foreground(p.Success).Border(lipgloss.RoundedBorder()).BorderForeground(p.Success).Padding(0, 2),
		verdictFake: lipgloss.NewStyle().Bold(true).Foreground(p.Danger).Border(lipgloss.RoundedBorder()).BorderForeground(p.Danger).Padding(0, 2),
		blockTitle:  lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		block:       lipgloss.NewStyle().Foreground(p.Foreground).PaddingLeft(2),
		blockError:  lipgloss.NewStyle().Foreground(p.Warning).PaddingLeft(2),
		toastBase:   lipgloss.NewStyle().Padding(0, 1).Foreground(p.Background),
		toastColors: map[notify.Kind]lipgloss.Color{
			notify.KindSuccess: p.Success,
			notify.KindFailure: p.Danger,
			notify.KindWarning: p.Warning,
		},
		key:     lipgloss.NewStyle().Bold(true).Foreground(p.Background).Background(p.Muted).Padding(0, 1),
		keyDesc: lipgloss.NewStyle().Foreground(p.Foreground),
	}
}

func (s styles) verdict(v present.Variant) lipgloss.Style {
	if v == present.VariantReal {
		return s.verdictReal
	}
	return s.verdictFake
}

func (s styles) toast(kind notify.Kind) lipgloss.Style {
	color, ok := s.toastColors[kind]
	if !ok {
		color = s.toastColors[notify.KindFailure]
	}
	return s.toastBase.Background(color)
}
