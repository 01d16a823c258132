package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/newsguard/internal/present"
)

func (m *model) View() string {
	if m.quitting {
		return ""
	}
	view := present.Present(m.controller.State())
	return joinNonEmpty([]string{
		m.heroView(),
		m.inputView(view),
		m.resultView(view),
		m.toastView(),
		m.footerView(),
	})
}

func (m *model) heroView() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.hero.Render(heroTitle),
		m.styles.tagline.Render(heroTagline),
	)
}

func (m *model) inputView(view present.View) string {
	button := m.styles.button.Render(view.ButtonLabel)
	if view.Loading {
		button = m.styles.buttonBusy.Render(fmt.Sprintf("%s %s", m.spinner.View(), view.ButtonLabel))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.inputBox.Render(m.input.View()),
		button,
	)
}

func (m *model) resultView(view present.View) string {
	wrap := m.width - horizontalPadding
	parts := []string{}
	if v := view.Verdict; v != nil {
		parts = append(parts, m.styles.verdict(v.Variant).Render(present.Glyph(v.Icon)+" "+v.Caption))
	}
	if b := view.Narrative; b != nil {
		parts = append(parts, lipgloss.JoinVertical(lipgloss.Left,
			m.styles.blockTitle.Render(b.Title),
			m.styles.block.Render(wordwrap.String(b.Text, wrap)),
		))
	}
	if b := view.NarrativeError; b != nil {
		parts = append(parts, m.styles.blockError.Render(wordwrap.String(b.Text, wrap)))
	}
	return joinNonEmpty(parts)
}

func (m *model) toastView() string {
	if len(m.toasts) == 0 {
		return ""
	}
	lines := make([]string, 0, len(m.toasts))
	for _, t := range m.toasts {
		lines = append(lines, m.styles.toast(t.note.Kind).Render(present.RenderNotification(t.note)))
	}
	return strings.Join(lines, "\n")
}

func (m *model) footerView() string {
	keys := []struct{ key, desc string }{
		{"enter", "check"},
		{"ctrl+t", fmt.Sprintf("theme (%s)", m.themeName)},
		{"esc", "quit"},
	}
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, m.styles.key.Render(k.key)+" "+m.styles.keyDesc.Render(k.desc))
	}
	footer := strings.Join(parts, "  ")
	if status := m.jobStatusLine(); status != "" {
		footer = m.styles.helper.Render(status) + "\n" + footer
	}
	return footer
}

func (m *model) jobStatusLine() string {
	if m.lastJob.Kind != jobKindCheck {
		return ""
	}
	switch m.lastJob.Status {
	case jobStatusSucceeded:
		return fmt.Sprintf("Last check took %s.", m.lastJob.Duration.Round(time.Millisecond))
	case jobStatusFailed:
		return fmt.Sprintf("Last check failed after %s.", m.lastJob.Duration.Round(time.Millisecond))
	default:
		return ""
	}
}

func joinNonEmpty(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "\n\n")
}
