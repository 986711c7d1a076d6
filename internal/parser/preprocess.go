package parser

import (
	"fmt"
	"strings"

	"squish/internal/diag"
	"squish/internal/source"
)

// Preprocess resolves the conditional-comment directives understood by the
// script pipeline:
//
//	///#DEFINE name
//	///#IF name
//	///#ELSE
//	///#END
//
// Directive lines are removed from the output; lines inside an inactive
// branch are dropped. Names given through opts (the Defines configuration
// option) count as defined before the first line. Unbalanced directives
// are reported through the reporter and treated leniently: a stray ELSE or
// END is skipped, an unterminated IF runs to end of input.
//
// The returned bytes are what the parser tokenizes; in preprocess-only
// mode they are also the pipeline's entire output.
func Preprocess(file *source.File, defines []string, reporter diag.Reporter) []byte {
	content := file.Content
	if !strings.Contains(string(content), "///#") {
		return content
	}

	defined := make(map[string]bool, len(defines))
	for _, name := range defines {
		defined[name] = true
	}

	report := func(start, end uint32, msg string) {
		if reporter != nil {
			sp := source.Span{File: file.ID, Start: start, End: end}
			reporter.Report(diag.SevError, diag.SynBadDirective, sp, msg)
		}
	}

	var out []byte
	// active[i] is whether the branch at nesting depth i emits lines
	active := []bool{true}
	// taken[i] remembers whether any branch at depth i was taken, so ELSE
	// knows whether to activate
	taken := []bool{true}

	offset := uint32(0)
	lines := strings.SplitAfter(string(content), "\n")
	for _, line := range lines {
		lineStart := offset
		offset += uint32(len(line))

		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "///#") {
			if active[len(active)-1] {
				out = append(out, line...)
			}
			continue
		}

		word, arg, _ := strings.Cut(strings.TrimPrefix(trimmed, "///#"), " ")
		arg = strings.TrimSpace(arg)
		lineEnd := lineStart + uint32(len(strings.TrimRight(line, "\n")))

		switch word {
		case "DEFINE":
			if arg == "" {
				report(lineStart, lineEnd, "DEFINE directive needs a name")
				continue
			}
			if active[len(active)-1] {
				defined[arg] = true
			}
		case "IF":
			if arg == "" {
				report(lineStart, lineEnd, "IF directive needs a name")
				arg = "\x00undefined"
			}
			on := active[len(active)-1] && defined[arg]
			active = append(active, on)
			taken = append(taken, on)
		case "ELSE":
			if len(active) == 1 {
				report(lineStart, lineEnd, "ELSE without matching IF")
				continue
			}
			on := active[len(active)-2] && !taken[len(taken)-1]
			active[len(active)-1] = on
			if on {
				taken[len(taken)-1] = true
			}
		case "END":
			if len(active) == 1 {
				report(lineStart, lineEnd, "END without matching IF")
				continue
			}
			active = active[:len(active)-1]
			taken = taken[:len(taken)-1]
		default:
			report(lineStart, lineEnd, fmt.Sprintf("unknown directive ///#%s", word))
		}
	}

	if len(active) > 1 {
		end := uint32(len(content))
		report(end, end, "IF directive never closed")
	}
	return out
}
