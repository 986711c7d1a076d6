package squish

import "squish/internal/sourcemap"

// OutputFormat selects how the script pipeline renders the parsed tree.
type OutputFormat int

const (
	// FormatStandard is the general minified rendering.
	FormatStandard OutputFormat = iota
	// FormatJSON restricts the output to the data-interchange subset; a
	// tree outside that subset fails emission with a diagnostic.
	FormatJSON
)

// Options configures one script run. The zero value minifies with the
// standard format, keeps only severity-0 diagnostics, and names the
// source "input".
type Options struct {
	// FileName stamps diagnostics and the symbol map; empty means "input".
	FileName string

	// WarningLevel is the inclusive severity threshold: a diagnostic is
	// kept iff its severity is <= WarningLevel. 0 keeps only the most
	// severe class.
	WarningLevel int

	// Format selects the emitter.
	Format OutputFormat

	// PreprocessOnly skips parsing and emission entirely: the result text
	// is the source after conditional-comment resolution, regardless of
	// Format.
	PreprocessOnly bool

	// Defines names conditional-comment symbols that count as defined
	// before the first line.
	Defines []string

	// SymbolMap, when set, is finalized after standard emission with
	// EndFile. A value that also implements sourcemap.Mapper (V3Map does)
	// additionally receives per-identifier mappings during emission.
	SymbolMap sourcemap.Finalizer

	// LineTerminator is used for trailing metadata the finalizer appends;
	// empty means "\n".
	LineTerminator string

	// MaxErrors caps syntax diagnostics before the parser gives up; 0
	// means unlimited.
	MaxErrors uint
}

// StyleOptions configures one stylesheet run.
type StyleOptions struct {
	// FileName stamps diagnostics; empty means "input".
	FileName string

	// WarningLevel is the inclusive severity threshold, as in Options.
	WarningLevel int

	// ColorNames swaps color literals for whichever of the name and hex
	// spellings is shorter.
	ColorNames bool

	// LineTerminator is accepted for configuration symmetry; single-rule
	// output carries no line breaks to terminate.
	LineTerminator string

	// Script configures the nested script pipeline used to minify
	// embedded expression(...) values. It governs only those fragments,
	// never the stylesheet's own emission; nil uses zero-value defaults.
	Script *Options
}
