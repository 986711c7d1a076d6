package diag

// Severity ranks a diagnostic's seriousness. Lower values are more severe;
// zero is the most severe class, used for errors and for diagnostics
// synthesized at the pipeline boundary.
type Severity int

const (
	// SevError is the most severe class: parse errors, emission failures,
	// fatal-origin synthesized diagnostics.
	SevError Severity = 0
	// SevWarning is for conditions that are almost certainly mistakes.
	SevWarning Severity = 1
	// SevSuggestion is for constructs the minifier could do better with.
	SevSuggestion Severity = 2
	// SevHint is for purely informational notices.
	SevHint Severity = 3
)

func (s Severity) String() string {
	switch s {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	case SevSuggestion:
		return "suggestion"
	case SevHint:
		return "hint"
	}
	return "unknown"
}
