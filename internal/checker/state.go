// Package checker owns the headline submission lifecycle: input validation,
// issuing the classification call, and folding the outcome into UI state and
// notifications.
//
// The lifecycle is expressed as a pure transition function (Step) so it can be
// exercised without a renderer. Controller is the thin stateful shell used by
// the terminal UI and the one-shot CLI.
package checker

import (
	"fmt"

	"github.com/csheth/newsguard/internal/classify"
)

// Phase is the submission lifecycle state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseError:
		return "error"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Label is the predicted verdict shown to the user.
type Label string

const (
	LabelNone  Label = ""
	LabelTrue  Label = "True"
	LabelFalse Label = "False"
)

// LabelFor maps the service prediction to a label.
func LabelFor(prediction bool) Label {
	if prediction {
		return LabelTrue
	}
	return LabelFalse
}

// State is the UI-facing submission state. It is replaced wholesale by Step.
type State struct {
	Phase         Phase
	Label         Label
	Analysis      string
	AnalysisError string
	// RequestError holds the last transport failure, cleared on submit.
	RequestError string
	// Headline is the most recently submitted text.
	Headline string
	// Token identifies the most recently issued request.
	Token uint64
}

// Loading reports whether a submission is outstanding.
func (s State) Loading() bool {
	return s.Phase == PhaseLoading
}

// Ticket is handed out for every issued request and must be presented back
// when the call resolves.
type Ticket struct {
	Token   uint64
	Request classify.Request
}
