package diag

import (
	"squish/internal/source"
)

// Diagnostic is one reported condition. Immutable once created.
type Diagnostic struct {
	Severity Severity
	Code     Code
	File     string
	Message  string
	Span     source.Span // zero Span means "no position"
}

// New constructs a Diagnostic value.
func New(sev Severity, code Code, file, msg string, span source.Span) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		File:     file,
		Message:  msg,
		Span:     span,
	}
}

// HasSpan reports whether the diagnostic carries a source position.
func (d Diagnostic) HasSpan() bool {
	return !d.Span.Empty() || d.Span.Start != 0
}
