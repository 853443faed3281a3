package filter

import (
	"fmt"

	"github.com/s0up4200/tvdb-episodes/episode"
)

// CompilationError is returned by Compile when expr rejects the expression.
// Column and Snippet are only set when expr reports a source location.
type CompilationError struct {
	Expression string
	Reason     string
	Column     int
	Snippet    string
	Err        error
}

func (e *CompilationError) Error() string {
	if e.Snippet != "" {
		return fmt.Sprintf("invalid filter %q: %s (column %d)%s", e.Expression, e.Reason, e.Column, e.Snippet)
	}
	return fmt.Sprintf("invalid filter %q: %s", e.Expression, e.Reason)
}

func (e *CompilationError) Unwrap() error {
	return e.Err
}

// EvaluationError means a compiled filter failed at runtime for one entry
type EvaluationError struct {
	Expression string
	Season     int64
	Number     int64
	Label      string
	Err        error
}

func newEvaluationError(expression string, entry episode.Entry, err error) *EvaluationError {
	return &EvaluationError{
		Expression: expression,
		Season:     entry.Season,
		Number:     entry.Number,
		Label:      entry.Label,
		Err:        err,
	}
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("filter %q failed on s%02de%02d (%s): %v", e.Expression, e.Season, e.Number, e.Label, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}
