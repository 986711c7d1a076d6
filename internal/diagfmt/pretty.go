// Package diagfmt renders pipeline diagnostics for people and for tools.
// Pretty writes the classic one-line-per-diagnostic text form; JSON writes
// a machine-readable document. Both resolve byte offsets against the raw
// source content handed in by the caller.
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"squish/internal/diag"
)

var severityColors = map[diag.Severity]*color.Color{
	diag.SevError:      color.New(color.FgRed, color.Bold),
	diag.SevWarning:    color.New(color.FgYellow, color.Bold),
	diag.SevSuggestion: color.New(color.FgCyan),
	diag.SevHint:       color.New(color.FgHiBlack),
}

// Pretty formats diagnostics in their emission order. For each one it
// prints:
//
//	<path>:<line>:<col>: <severity> <CODE>: <message>
//
// followed, when opts.Context is set and source content is available, by
// the offending line with a ^~~~ underline. contents maps diagnostic file
// names to their raw source and may be nil.
func Pretty(w io.Writer, diags []diag.Diagnostic, contents map[string][]byte, opts PrettyOpts) {
	for _, d := range diags {
		writePretty(w, d, contents[d.File], opts)
	}
}

func writePretty(w io.Writer, d diag.Diagnostic, content []byte, opts PrettyOpts) {
	loc := d.File
	var line, col uint32
	if content != nil && d.HasSpan() {
		line, col = lineCol(content, d.Span.Start)
		loc = fmt.Sprintf("%s:%d:%d", d.File, line, col)
	}

	sev := d.Severity.String()
	if opts.Color {
		if c, ok := severityColors[d.Severity]; ok {
			sev = c.Sprint(sev)
		}
	}
	fmt.Fprintf(w, "%s: %s %s: %s\n", loc, sev, d.Code.ID(), d.Message)

	if !opts.Context || content == nil || !d.HasSpan() {
		return
	}
	text := lineText(content, line)
	if text == "" {
		return
	}
	fmt.Fprintf(w, "  %s\n", text)
	pad := strings.Repeat(" ", int(col-1))
	width := int(d.Span.Len())
	if rest := len(text) - int(col-1); width > rest {
		width = rest
	}
	if width < 1 {
		width = 1
	}
	marker := "^" + strings.Repeat("~", width-1)
	if opts.Color {
		marker = severityColors[diag.SevError].Sprint(marker)
	}
	fmt.Fprintf(w, "  %s%s\n", pad, marker)
}

// lineCol converts a byte offset into 1-based line and column.
func lineCol(content []byte, off uint32) (line, col uint32) {
	line, col = 1, 1
	end := int(off)
	if end > len(content) {
		end = len(content)
	}
	for _, c := range content[:end] {
		if c == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

// lineText returns the 1-based line without its terminator.
func lineText(content []byte, lineNum uint32) string {
	lines := strings.Split(string(content), "\n")
	if lineNum == 0 || int(lineNum) > len(lines) {
		return ""
	}
	return strings.TrimRight(lines[lineNum-1], "\r")
}
