// Package squish minifies script and stylesheet sources. The two
// pipelines share one diagnostic model, one buffer-lifetime discipline,
// and one result contract: recoverable problems become diagnostics on the
// Result, collaborator failures become a FatalError, and the borrowed
// output buffer is returned to the pool on every exit path.
package squish

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"squish/internal/css"
	"squish/internal/diag"
	"squish/internal/emit"
	"squish/internal/lexer"
	"squish/internal/parser"
	"squish/internal/source"
	"squish/internal/sourcemap"
	"squish/internal/textpool"
)

// MinifyScript runs the script pipeline over src. A nil src returns
// ErrNoSource before anything is acquired. Recoverable syntax problems
// come back as diagnostics on the Result; a non-nil error means the run
// failed fatally and no Result exists.
func MinifyScript(src []byte, opts *Options) (res *Result, err error) {
	if src == nil {
		return nil, ErrNoSource
	}
	if opts == nil {
		opts = &Options{}
	}
	name := opts.FileName
	if name == "" {
		name = "input"
	}

	sink := diag.NewSink(name, diag.Severity(opts.WarningLevel))
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(name, src))

	buf := textpool.Default.Acquire()
	defer textpool.Default.Release(buf)
	defer func() {
		if r := recover(); r != nil {
			res, err = fatal(sink, name, r)
		}
	}()

	pre := parser.Preprocess(file, opts.Defines, sink)
	if opts.PreprocessOnly {
		buf.WriteString(string(pre))
		return &Result{Text: buf.String(), Diagnostics: sink.Snapshot()}, nil
	}
	if !bytes.Equal(pre, file.Content) {
		// spans must point into what the lexer actually sees
		file = fs.Get(fs.AddVirtual(name, pre))
	}

	lx := lexer.New(file, lexer.Options{Reporter: sink})
	prog := parser.ParseFile(file, lx, parser.Options{Reporter: sink, MaxErrors: opts.MaxErrors})
	if prog == nil {
		// error budget exhausted; the diagnostics tell the story
		return &Result{Diagnostics: sink.Snapshot()}, nil
	}

	switch opts.Format {
	case FormatJSON:
		if !emit.JSONStrict().Emit(buf, prog) {
			sink.Register(diag.Diagnostic{
				Severity: diag.SevError,
				Code:     diag.EmitNotJSON,
				File:     name,
				Message:  "invalid output for requested format",
			})
		}
	default:
		e := emit.Standard(symbolMapper(opts.SymbolMap, name))
		e.Emit(buf, prog)
		if opts.SymbolMap != nil {
			if r, ok := opts.SymbolMap.(offsetResolver); ok {
				r.Resolve(fs, file.ID)
			}
			opts.SymbolMap.EndFile(buf, opts.LineTerminator)
		}
	}
	return &Result{Text: buf.String(), Diagnostics: sink.Snapshot()}, nil
}

// MinifyStyleSheet runs the stylesheet pipeline over src. Argument and
// fatal-failure rules match MinifyScript. Embedded expression(...) values
// are minified by re-entering the script pipeline with opts.Script; the
// stylesheet's own emission happens inside the parser, which returns
// finished text directly.
func MinifyStyleSheet(src []byte, opts *StyleOptions) (res *Result, err error) {
	if src == nil {
		return nil, ErrNoSource
	}
	if opts == nil {
		opts = &StyleOptions{}
	}
	name := opts.FileName
	if name == "" {
		name = "input"
	}

	sink := diag.NewSink(name, diag.Severity(opts.WarningLevel))
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(name, src))

	defer func() {
		if r := recover(); r != nil {
			res, err = fatal(sink, name, r)
		}
	}()

	text, _ := css.Minify(file, css.Options{
		Reporter:     sink,
		ColorNames:   opts.ColorNames,
		ExprMinifier: embeddedMinifier(sink, name, opts.Script),
	})
	return &Result{Text: text, Diagnostics: sink.Snapshot()}, nil
}

// embeddedMinifier adapts the script pipeline into the callback the
// stylesheet parser invokes for expression(...) values. Diagnostics from
// the nested run are forwarded into the outer sink; a failed nested run
// keeps the raw fragment.
func embeddedMinifier(sink *diag.Sink, name string, script *Options) func(string) (string, bool) {
	return func(fragment string) (string, bool) {
		nested := Options{}
		if script != nil {
			nested = *script
		}
		nested.FileName = name
		nested.Format = FormatStandard
		nested.PreprocessOnly = false
		nested.SymbolMap = nil

		r, err := MinifyScript([]byte(fragment), &nested)
		if err != nil {
			var fe *FatalError
			if errors.As(err, &fe) {
				for _, d := range fe.Diagnostics {
					sink.Register(d)
				}
			}
			return "", false
		}
		bad := false
		for _, d := range r.Diagnostics {
			sink.Register(d)
			if d.Severity == diag.SevError {
				bad = true
			}
		}
		if bad {
			return "", false
		}
		// the fragment is an expression; drop the statement terminator
		return strings.TrimSuffix(r.Text, ";"), true
	}
}

// fatal converts a recovered collaborator panic into the fatal-path
// result: the failure is registered at severity 0, and the caller gets no
// Result.
func fatal(sink *diag.Sink, name string, r any) (*Result, error) {
	msg := fmt.Sprintf("internal failure: %v", r)
	sink.Register(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.UnknownCode,
		File:     name,
		Message:  msg,
	})
	return nil, &FatalError{Msg: msg, Diagnostics: sink.Snapshot()}
}

// offsetResolver is the optional mapper capability of rewriting stored
// byte offsets into line/column pairs once emission finished.
type offsetResolver interface {
	Resolve(fs *source.FileSet, id source.FileID)
}

// sourceAdder is the optional capability of registering the source path
// mappings refer to.
type sourceAdder interface {
	AddSource(path string) int
}

// symbolMapper extracts the Mapper half of the configured finalizer, when
// it has one, registering the source file up front.
func symbolMapper(fin sourcemap.Finalizer, name string) sourcemap.Mapper {
	m, ok := fin.(sourcemap.Mapper)
	if !ok {
		return nil
	}
	if a, ok := fin.(sourceAdder); ok {
		a.AddSource(name)
	}
	return m
}
