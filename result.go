package squish

import (
	"errors"
	"fmt"

	"squish/internal/diag"
)

// Result is what a completed run hands back: the rendered text plus the
// diagnostics that passed the warning-level threshold, in emission order.
// The diagnostic slice is a snapshot; it does not alias pipeline state.
type Result struct {
	Text        string
	Diagnostics []diag.Diagnostic
}

// HasErrors reports whether any diagnostic passed the threshold.
func (r *Result) HasErrors() bool {
	return len(r.Diagnostics) > 0
}

// ErrNoSource is returned when the source argument is nil. No resources
// are acquired and no diagnostics are produced in that case.
var ErrNoSource = errors.New("squish: no source provided")

// FatalError reports a collaborator failure the pipeline could not turn
// into an ordinary diagnostic result. The failure is still registered as
// a severity-0 diagnostic; Diagnostics carries the run's snapshot,
// including that registration.
type FatalError struct {
	Msg         string
	Diagnostics []diag.Diagnostic
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("squish: fatal: %s", e.Msg)
}
