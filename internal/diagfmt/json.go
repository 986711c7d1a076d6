package diagfmt

import (
	"encoding/json"
	"io"

	"squish/internal/diag"
)

// LocationJSON is a source position in JSON output.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
}

// DiagnosticJSON is one diagnostic in JSON output.
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// DiagnosticsOutput is the root of the JSON document.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

// JSON writes the machine-readable form. Count reflects the full set even
// when opts.Max truncates the list. contents may be nil; positions are
// then byte offsets only.
func JSON(w io.Writer, diags []diag.Diagnostic, contents map[string][]byte, opts JSONOpts) error {
	out := DiagnosticsOutput{
		Diagnostics: make([]DiagnosticJSON, 0, len(diags)),
		Count:       len(diags),
	}
	for i, d := range diags {
		if opts.Max > 0 && i >= opts.Max {
			break
		}
		loc := LocationJSON{
			File:      d.File,
			StartByte: d.Span.Start,
			EndByte:   d.Span.End,
		}
		if opts.IncludePositions && d.HasSpan() {
			if content, ok := contents[d.File]; ok {
				loc.StartLine, loc.StartCol = lineCol(content, d.Span.Start)
			}
		}
		out.Diagnostics = append(out.Diagnostics, DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
			Location: loc,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
