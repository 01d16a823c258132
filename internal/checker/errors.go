package checker

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when the submitted headline is blank.
	ErrEmptyInput = errors.New("headline is empty")

	// ErrDiscarded is returned when a result arrives for a request that is no
	// longer allowed to write state: the controller was retired, or the
	// last-issued policy rejected a stale token.
	ErrDiscarded = errors.New("classification result discarded")

	errInterrupted = errors.New("classification call did not complete")
)

// RequestError reports that no classification was obtained.
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("classification request failed: %v", e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// AnalysisDegradedError reports a successful verdict whose narrative could not
// be produced. It is informational; the verdict is still applied.
type AnalysisDegradedError struct {
	Message string
}

func (e *AnalysisDegradedError) Error() string {
	return fmt.Sprintf("analysis unavailable: %s", e.Message)
}
