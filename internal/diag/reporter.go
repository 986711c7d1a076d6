package diag

import "squish/internal/source"

// Reporter is the minimal contract producers use to emit diagnostics.
// Implementations: *Sink (threshold-filtered collection), NopReporter.
// A Reporter is handed to each parser/emitter instance explicitly; there
// is no process-wide registration.
type Reporter interface {
	Report(sev Severity, code Code, span source.Span, msg string)
}

// NopReporter drops every diagnostic.
type NopReporter struct{}

func (NopReporter) Report(Severity, Code, source.Span, string) {}

// ReportError is a shortcut for SevError diagnostics.
func ReportError(r Reporter, code Code, span source.Span, msg string) {
	if r != nil {
		r.Report(SevError, code, span, msg)
	}
}

// ReportWarning is a shortcut for SevWarning diagnostics.
func ReportWarning(r Reporter, code Code, span source.Span, msg string) {
	if r != nil {
		r.Report(SevWarning, code, span, msg)
	}
}
