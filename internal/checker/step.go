package checker

import (
	"fmt"
	"strings"

	"github.com/csheth/newsguard/internal/classify"
	"github.com/csheth/newsguard/internal/notify"
)

// User-facing notification copy.
const (
	MessageEmptyInput    = "Enter some text!"
	MessageRealNews      = "Real news!"
	MessageFakeNews      = "Fake news!"
	MessageInsightFailed = "Unable to fetch LLM insight at the moment."
	MessageRequestFailed = "Unable to check this headline right now."
)

// Policy decides which resolved responses may write state when several
// requests overlap.
type Policy string

const (
	// LastResolvedWins applies every response as it arrives; whichever
	// resolves last overwrites the state.
	LastResolvedWins Policy = "last-resolved"
	// LastIssuedWins only applies the response matching the newest token.
	LastIssuedWins Policy = "last-issued"
)

// ParsePolicy validates a policy name. An empty value selects LastResolvedWins.
func ParsePolicy(value string) (Policy, error) {
	switch Policy(strings.TrimSpace(value)) {
	case "", LastResolvedWins:
		return LastResolvedWins, nil
	case LastIssuedWins:
		return LastIssuedWins, nil
	default:
		return "", fmt.Errorf("unknown stale policy %q (want %s or %s)", value, LastResolvedWins, LastIssuedWins)
	}
}

// Action is an input to Step.
type Action interface {
	isAction()
}

// Submit asks for a headline to be classified.
type Submit struct {
	Text string
}

// Resolve carries a decoded classification response.
type Resolve struct {
	Token    uint64
	Response classify.Response
}

// Fail carries a transport or decoding failure.
type Fail struct {
	Token uint64
	Err   error
}

func (Submit) isAction()  {}
func (Resolve) isAction() {}
func (Fail) isAction()    {}

// Outcome is the result of a single transition.
type Outcome struct {
	State         State
	Notifications []notify.Notification
	// Ticket is set when the transition requires a network call.
	Ticket *Ticket
	// Err classifies the transition: ErrEmptyInput, *RequestError,
	// *AnalysisDegradedError or ErrDiscarded.
	Err error
}

// Applied reports whether the transition was allowed to touch state.
func (o Outcome) Applied() bool {
	return o.Err != ErrDiscarded
}

// Step folds an action into the state. It performs no I/O.
func Step(state State, action Action, policy Policy) Outcome {
	switch a := action.(type) {
	case Submit:
		return stepSubmit(state, a)
	case Resolve:
		if stale(state, a.Token, policy) {
			return Outcome{State: state, Err: ErrDiscarded}
		}
		return stepResolve(state, a)
	case Fail:
		if stale(state, a.Token, policy) {
			return Outcome{State: state, Err: ErrDiscarded}
		}
		return stepFail(state, a)
	default:
		return Outcome{State: state}
	}
}

func stepSubmit(state State, a Submit) Outcome {
	if strings.TrimSpace(a.Text) == "" {
		return Outcome{
			State:         state,
			Notifications: []notify.Notification{notify.Failure(MessageEmptyInput)},
			Err:           ErrEmptyInput,
		}
	}
	next := state
	next.Phase = PhaseLoading
	next.Analysis = ""
	next.AnalysisError = ""
	next.RequestError = ""
	next.Headline = a.Text
	next.Token = state.Token + 1
	return Outcome{
		State: next,
		Ticket: &Ticket{
			Token:   next.Token,
			Request: classify.Request{Text: a.Text},
		},
	}
}

func stepResolve(state State, a Resolve) Outcome {
	next := state
	next.Phase = PhaseSuccess
	next.Label = LabelFor(a.Response.Prediction)

	var notes []notify.Notification
	if a.Response.Prediction {
		notes = append(notes, notify.Success(MessageRealNews).WithIcon(notify.IconCheck))
	} else {
		notes = append(notes, notify.Failure(MessageFakeNews).WithIcon(notify.IconX))
	}

	if a.Response.Analysis != "" {
		next.Analysis = a.Response.Analysis
	}
	var err error
	if a.Response.AnalysisError != "" {
		next.AnalysisError = a.Response.AnalysisError
		notes = append(notes, notify.Warning(MessageInsightFailed))
		err = &AnalysisDegradedError{Message: a.Response.AnalysisError}
	}
	return Outcome{State: next, Notifications: notes, Err: err}
}

func stepFail(state State, a Fail) Outcome {
	next := state
	next.Phase = PhaseError
	cause := a.Err
	if cause == nil {
		cause = errInterrupted
	}
	next.RequestError = cause.Error()
	return Outcome{
		State:         next,
		Notifications: []notify.Notification{notify.Failure(MessageRequestFailed)},
		Err:           &RequestError{Err: cause},
	}
}

// stale reports whether a result for token may not write state. Tokens that
// were never issued are always rejected.
func stale(state State, token uint64, policy Policy) bool {
	if token == 0 || token > state.Token {
		return true
	}
	return policy == LastIssuedWins && token != state.Token
}
