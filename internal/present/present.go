// Package present derives what to display from the checker state. Nothing in
// here touches a terminal; renderers consume View.
package present

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/newsguard/internal/checker"
	"github.com/csheth/newsguard/internal/notify"
)

// Variant distinguishes the two verdict renderings.
type Variant int

const (
	VariantReal Variant = iota + 1
	VariantFake
)

const (
	captionReal      = "Predicted as real news!"
	captionFake      = "Predicted as fake news!"
	insightTitle     = "LLM Insight"
	buttonIdle       = "Check"
	buttonBusy       = "Checking..."
	defaultWrapWidth = 72
)

// Verdict is the populated verdict area.
type Verdict struct {
	Variant Variant
	Icon    string
	Caption string
}

// Block is a narrative section.
type Block struct {
	Title string
	Text  string
}

// View is everything a renderer needs for the result area.
type View struct {
	Verdict        *Verdict
	Narrative      *Block
	NarrativeError *Block
	ButtonLabel    string
	Loading        bool
}

// Present maps a state to its view. The verdict area is either fully
// populated or absent, and the error narrative is only shown when no
// narrative text exists.
func Present(state checker.State) View {
	view := View{
		ButtonLabel: buttonIdle,
		Loading:     state.Loading(),
	}
	if view.Loading {
		view.ButtonLabel = buttonBusy
	}

	switch state.Label {
	case checker.LabelTrue:
		view.Verdict = &Verdict{Variant: VariantReal, Icon: notify.IconCheck, Caption: captionReal}
	case checker.LabelFalse:
		view.Verdict = &Verdict{Variant: VariantFake, Icon: notify.IconX, Caption: captionFake}
	}

	switch {
	case state.Analysis != "":
		view.Narrative = &Block{Title: insightTitle, Text: state.Analysis}
	case state.AnalysisError != "":
		view.NarrativeError = &Block{Text: state.AnalysisError}
	}
	return view
}

// Glyph returns the terminal glyph for an icon tag.
func Glyph(icon string) string {
	switch icon {
	case notify.IconCheck:
		return "✔"
	case notify.IconX:
		return "✘"
	case notify.IconWarning:
		return "⚠"
	default:
		return ""
	}
}

// NotificationGlyph picks the glyph for a notification, falling back to the
// default glyph of its kind.
func NotificationGlyph(n notify.Notification) string {
	if g := Glyph(n.Icon); g != "" {
		return g
	}
	switch n.Kind {
	case notify.KindSuccess:
		return Glyph(notify.IconCheck)
	case notify.KindWarning:
		return Glyph(notify.IconWarning)
	default:
		return "!"
	}
}

// RenderPlain renders the view without styling, wrapping narrative text at width.
func RenderPlain(view View, width int) string {
	if width <= 0 {
		width = defaultWrapWidth
	}
	var parts []string
	if view.Loading {
		parts = append(parts, view.ButtonLabel)
	}
	if view.Verdict != nil {
		parts = append(parts, Glyph(view.Verdict.Icon)+" "+view.Verdict.Caption)
	}
	if view.Narrative != nil {
		parts = append(parts, view.Narrative.Title+"\n"+wordwrap.String(view.Narrative.Text, width))
	}
	if view.NarrativeError != nil {
		parts = append(parts, wordwrap.String(view.NarrativeError.Text, width))
	}
	return strings.Join(parts, "\n\n")
}

// RenderNotification renders a notification as a single plain line.
func RenderNotification(n notify.Notification) string {
	return NotificationGlyph(n) + " " + n.Message
}
