package diagfmt

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	// Color enables ANSI severity coloring.
	Color bool
	// Context prints the offending source line with a caret underline.
	Context bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	// IncludePositions adds line/col fields resolved from the source.
	IncludePositions bool
	// Max truncates the output list; 0 means no limit.
	Max int
}
