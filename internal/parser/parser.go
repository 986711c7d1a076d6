// Package parser turns script tokens into an ast.Program, reporting
// syntax diagnostics through the diag.Reporter handed to each instance.
// The parser recovers from statement-level errors by resynchronizing on
// the next semicolon or closing brace, so a malformed statement costs one
// diagnostic and the rest of the program still parses.
package parser

import (
	"fmt"

	"squish/internal/ast"
	"squish/internal/diag"
	"squish/internal/lexer"
	"squish/internal/source"
	"squish/internal/token"
)

// Options configures one Parser instance. The Reporter receives syntax
// diagnostics for the duration of the parse; there is no global
// registration, so concurrent parses stay isolated.
type Options struct {
	Reporter  diag.Reporter
	MaxErrors uint // 0 means unlimited
}

// Parser holds the state for parsing a single file.
type Parser struct {
	lx       *lexer.Lexer
	file     *source.File
	opts     Options
	errors   uint
	bailed   bool
	lastSpan source.Span
}

// ParseFile parses one file and returns the program, or nil when the
// error budget was exhausted before reaching the end of the input. All
// failures are reported as diagnostics either way.
func ParseFile(file *source.File, lx *lexer.Lexer, opts Options) *ast.Program {
	p := Parser{
		lx:   lx,
		file: file,
		opts: opts,
	}

	body := p.parseStatements(token.EOF)
	if p.bailed {
		return nil
	}
	return &ast.Program{
		Body: body,
		Loc:  source.Span{File: file.ID, Start: 0, End: uint32(len(file.Content))},
	}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) bump() token.Token {
	tok := p.lx.Next()
	p.lastSpan = tok.Span
	return tok
}

// expect consumes a token of kind k or reports code with a generated
// message and returns false without consuming.
func (p *Parser) expect(k token.Kind, code diag.Code) (token.Token, bool) {
	if p.at(k) {
		return p.bump(), true
	}
	got := p.lx.Peek()
	p.report(code, got.Span, fmt.Sprintf("expected %q, found %q", k.String(), describe(got)))
	return got, false
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of input"
	case token.Ident, token.Number, token.String, token.Invalid:
		return tok.Text
	default:
		return tok.Kind.String()
	}
}

func (p *Parser) report(code diag.Code, sp source.Span, msg string) {
	if p.bailed {
		return
	}
	p.errors++
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(diag.SevError, code, sp, msg)
	}
	if p.opts.MaxErrors != 0 && p.errors >= p.opts.MaxErrors {
		if p.opts.Reporter != nil {
			p.opts.Reporter.Report(diag.SevError, diag.SynTooManyErrors, sp, "too many syntax errors, giving up")
		}
		p.bailed = true
	}
}

// resync skips ahead to just after the next semicolon, or to (not past)
// the next closing brace or EOF, keeping brace depth balanced so recovery
// does not escape the enclosing block.
func (p *Parser) resync() {
	depth := 0
	for {
		switch p.lx.Peek().Kind {
		case token.EOF:
			return
		case token.Semicolon:
			if depth == 0 {
				p.bump()
				return
			}
			p.bump()
		case token.LBrace:
			depth++
			p.bump()
		case token.RBrace:
			if depth == 0 {
				return
			}
			depth--
			p.bump()
		default:
			p.bump()
		}
	}
}
