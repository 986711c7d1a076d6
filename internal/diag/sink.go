package diag

import "squish/internal/source"

// Sink accumulates the diagnostics of one pipeline run, in emission order,
// keeping only those at or below the configured severity threshold
// (lower number = more severe; the threshold is inclusive).
//
// A Sink is created empty at the start of a run, filled during parse and
// emit, snapshotted into the run's result, and then discarded. It is never
// reused across runs and is not safe for concurrent use — each invocation
// owns its own Sink.
type Sink struct {
	file      string
	threshold Severity
	items     []Diagnostic
}

// NewSink creates an empty sink for one run. file is the logical file
// identifier stamped onto every collected diagnostic; threshold is the
// warning level (diagnostics with a numerically larger severity are
// dropped).
func NewSink(file string, threshold Severity) *Sink {
	return &Sink{
		file:      file,
		threshold: threshold,
	}
}

// Register appends d if its severity passes the threshold. Registration is
// infallible and append-only; filtering never raises.
func (s *Sink) Register(d Diagnostic) {
	if d.Severity > s.threshold {
		return
	}
	if d.File == "" {
		d.File = s.file
	}
	s.items = append(s.items, d)
}

// Report implements Reporter, routing producer callbacks into the sink.
func (s *Sink) Report(sev Severity, code Code, span source.Span, msg string) {
	s.Register(Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Span:     span,
	})
}

// Snapshot returns a copy of the accumulated sequence. The copy does not
// alias the sink's storage, so later registrations do not mutate earlier
// snapshots.
func (s *Sink) Snapshot() []Diagnostic {
	if len(s.items) == 0 {
		return nil
	}
	out := make([]Diagnostic, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of collected diagnostics.
func (s *Sink) Len() int {
	return len(s.items)
}

// HasErrors reports whether any diagnostic was collected. The sink already
// filters by threshold, so non-empty means the run surfaced at least one
// condition the caller asked to see.
func (s *Sink) HasErrors() bool {
	return len(s.items) > 0
}
