// Package css tokenizes, parses, and re-emits a stylesheet in one pass.
// Unlike the script pipeline the emission happens inside the parser and
// the finished text is returned directly; diagnostics still flow through
// the shared reporter.
package css

import (
	"strings"

	"squish/internal/diag"
	"squish/internal/source"
)

// Options configures one stylesheet run.
type Options struct {
	// Reporter receives scan and parse diagnostics; nil discards them.
	Reporter diag.Reporter

	// ColorNames enables swapping color literals for whichever of the
	// name/hex spellings is shorter.
	ColorNames bool

	// ExprMinifier minifies the script fragment inside an expression(...)
	// value. A false result keeps the raw fragment; nil disables embedded
	// minification entirely.
	ExprMinifier func(src string) (string, bool)
}

// Minify parses the file and returns its minified rendering. The boolean
// result is false when a syntax error was reported; the text is still the
// best-effort rendering of what parsed.
func Minify(file *source.File, opts Options) (string, bool) {
	m := &minifier{file: file, opts: opts}
	m.toks = scan(file, m)
	m.rules(true)
	return m.out.String(), !m.errored
}

// Glue classes: a pending space between two tokens is dropped when the
// byte on either side belongs to the context's glue set. Selectors glue
// combinators; values and at-rule preludes glue only list punctuation.
const (
	selGlueL = "(,[=>+~:"
	selGlueR = ")],=>+~{"
	valGlueL = "(,:="
	valGlueR = "),:="
)

type minifier struct {
	file *source.File
	opts Options
	toks []tok
	pos  int

	out     sheet
	errored bool
}

// Report forwards to the configured reporter and records whether the run
// produced a hard error.
func (m *minifier) Report(sev diag.Severity, code diag.Code, span source.Span, msg string) {
	if sev == diag.SevError {
		m.errored = true
	}
	if m.opts.Reporter != nil {
		m.opts.Reporter.Report(sev, code, span, msg)
	}
}

func (m *minifier) peek() tok {
	if m.pos >= len(m.toks) {
		return tok{kind: tokEOF, span: source.Span{File: m.file.ID, Start: uint32(len(m.file.Content)), End: uint32(len(m.file.Content))}}
	}
	return m.toks[m.pos]
}

func (m *minifier) bump() tok {
	t := m.peek()
	if m.pos < len(m.toks) {
		m.pos++
	}
	return t
}

func (m *minifier) skipWS() {
	for m.peek().kind == tokWS {
		m.pos++
	}
}

func (m *minifier) isDelim(t tok, c byte) bool {
	return t.kind == tokDelim && len(t.text) == 1 && t.text[0] == c
}

// rules parses a run of rule sets and at-rules, at the top level or
// inside a grouping at-rule block.
func (m *minifier) rules(topLevel bool) {
	for {
		m.skipWS()
		t := m.peek()
		switch {
		case t.kind == tokEOF:
			if !topLevel {
				m.Report(diag.SevError, diag.CSSUnclosedBlock, t.span, "unexpected end of file inside block")
			}
			return
		case m.isDelim(t, '}'):
			if !topLevel {
				return
			}
			m.Report(diag.SevError, diag.CSSUnexpectedToken, t.span, "unexpected '}'")
			m.bump()
		case t.kind == tokAtKeyword:
			m.atRule()
		default:
			m.ruleSet()
		}
	}
}

// declBlockAtRules names the at-rules whose block holds declarations
// rather than nested rules.
var declBlockAtRules = map[string]bool{
	"font-face": true,
	"page":      true,
}

func (m *minifier) atRule() {
	at := m.bump()
	m.out.space = false
	m.out.put(strings.ToLower(at.text), valGlueL, valGlueR)

	for {
		t := m.peek()
		switch {
		case t.kind == tokEOF:
			m.Report(diag.SevError, diag.CSSUnexpectedToken, t.span, "unterminated at-rule")
			return
		case t.kind == tokWS:
			m.out.ws()
			m.bump()
		case m.isDelim(t, ';'):
			m.bump()
			m.out.putRaw(";")
			return
		case m.isDelim(t, '{'):
			open := m.bump()
			m.out.putRaw("{")
			name := strings.TrimPrefix(strings.ToLower(at.text), "@")
			if declBlockAtRules[name] {
				m.declarations()
			} else {
				m.rules(false)
			}
			if m.isDelim(m.peek(), '}') {
				m.bump()
			} else {
				m.Report(diag.SevError, diag.CSSUnclosedBlock, open.span, "unclosed block")
			}
			m.out.putRaw("}")
			return
		case t.kind == tokFunction:
			m.function(&m.out, t)
		default:
			m.bump()
			m.valueToken(&m.out, t)
		}
	}
}

func (m *minifier) ruleSet() {
	m.out.space = false
	for {
		t := m.peek()
		switch {
		case t.kind == tokEOF:
			m.Report(diag.SevError, diag.CSSUnexpectedToken, t.span, "expected '{' after selector")
			return
		case t.kind == tokWS:
			m.out.ws()
			m.bump()
		case m.isDelim(t, '{'):
			open := m.bump()
			m.out.putRaw("{")
			m.declarations()
			if m.isDelim(m.peek(), '}') {
				m.bump()
			} else {
				m.Report(diag.SevError, diag.CSSUnclosedBlock, open.span, "unclosed block")
			}
			m.out.putRaw("}")
			return
		case m.isDelim(t, '}') || m.isDelim(t, ';'):
			m.Report(diag.SevError, diag.CSSUnexpectedToken, t.span, "unexpected "+quoteTok(t)+" in selector")
			m.bump()
		default:
			m.bump()
			m.out.put(t.text, selGlueL, selGlueR)
		}
	}
}

// declarations emits the body of a declaration block. The separator goes
// before each declaration after the first, which drops the final
// semicolon for free.
func (m *minifier) declarations() {
	first := true
	for {
		m.skipWS()
		t := m.peek()
		if t.kind == tokEOF || m.isDelim(t, '}') {
			if t.kind == tokEOF {
				m.Report(diag.SevError, diag.CSSUnclosedBlock, t.span, "unexpected end of file inside block")
			}
			return
		}
		if m.isDelim(t, ';') {
			m.bump()
			continue
		}

		prop, propSpan, ok := m.property()
		if !ok {
			continue
		}
		var val sheet
		m.value(&val)
		if val.b.Len() == 0 {
			m.Report(diag.SevWarning, diag.CSSEmptyDeclaration, propSpan, "declaration for '"+prop+"' has no value")
			continue
		}
		if !first {
			m.out.putRaw(";")
		}
		first = false
		m.out.putRaw(prop)
		m.out.putRaw(":")
		m.out.putRaw(val.String())
	}
}

// property reads the name up to the colon and consumes the colon. On a
// missing colon it reports and resyncs to the next ';' or '}'.
func (m *minifier) property() (string, source.Span, bool) {
	var name strings.Builder
	span := m.peek().span
	for {
		t := m.peek()
		if t.kind == tokIdent || (t.kind == tokDelim && !strings.ContainsAny(t.text, ":;{}")) {
			name.WriteString(strings.ToLower(t.text))
			span = span.Cover(t.span)
			m.bump()
			continue
		}
		break
	}
	m.skipWS()
	if !m.isDelim(m.peek(), ':') {
		m.Report(diag.SevError, diag.CSSExpectColon, m.peek().span, "expected ':' after property name")
		for {
			t := m.peek()
			if t.kind == tokEOF || m.isDelim(t, '}') {
				break
			}
			m.bump()
			if m.isDelim(t, ';') {
				break
			}
		}
		return "", span, false
	}
	m.bump()
	m.skipWS()
	return name.String(), span, true
}

// value emits a declaration value into out, stopping before the ';' or
// '}' that ends it. Semicolons inside parens (data URLs) do not end the
// value.
func (m *minifier) value(out *sheet) {
	depth := 0
	for {
		t := m.peek()
		switch {
		case t.kind == tokEOF, m.isDelim(t, '}'):
			return
		case m.isDelim(t, ';') && depth == 0:
			return
		case t.kind == tokWS:
			out.ws()
			m.bump()
		case m.isDelim(t, '!'):
			m.bump()
			m.skipWS()
			if bang := m.peek(); bang.kind == tokIdent {
				m.bump()
				out.space = false
				out.putRaw("!" + strings.ToLower(bang.text))
			} else {
				out.put("!", valGlueL, valGlueR)
			}
		case m.isDelim(t, '('):
			depth++
			m.bump()
			out.put("(", valGlueL, valGlueR)
		case m.isDelim(t, ')'):
			if depth > 0 {
				depth--
			}
			m.bump()
			out.put(")", valGlueL, valGlueR)
		case t.kind == tokFunction:
			m.function(out, t)
		default:
			m.bump()
			m.valueToken(out, t)
		}
	}
}

// valueToken writes one already-consumed value token with the context's
// shortening applied.
func (m *minifier) valueToken(out *sheet, t tok) {
	switch t.kind {
	case tokHash:
		out.put(shortenHex(t.text, m.opts.ColorNames), valGlueL, valGlueR)
	case tokNumber:
		out.put(shortenNumber(t.text), valGlueL, valGlueR)
	case tokIdent:
		s := t.text
		if m.opts.ColorNames {
			s = shortenColorName(s)
		}
		out.put(s, valGlueL, valGlueR)
	default:
		out.put(t.text, valGlueL, valGlueR)
	}
}

// function handles a name-plus-paren token inside a value. url(...) and
// expression(...) capture their raw argument text from the source; other
// functions fall back to normal token emission via the caller's loop.
func (m *minifier) function(out *sheet, fn tok) {
	name := strings.ToLower(fn.text)
	switch name {
	case "expression(":
		m.bump()
		raw, ok := m.rawArgument(fn)
		if !ok {
			out.put("expression("+strings.TrimSpace(raw), valGlueL, valGlueR)
			return
		}
		body := strings.TrimSpace(raw)
		if m.opts.ExprMinifier != nil {
			if min, ok := m.opts.ExprMinifier(body); ok {
				body = min
			}
		}
		out.put("expression("+body+")", valGlueL, valGlueR)
	case "url(":
		m.bump()
		raw, ok := m.rawArgument(fn)
		out.put("url("+strings.TrimSpace(raw), valGlueL, valGlueR)
		if ok {
			out.putRaw(")")
		}
	default:
		m.bump()
		out.put(name, valGlueL, valGlueR)
		depth := 1
		for depth > 0 {
			t := m.peek()
			switch {
			case t.kind == tokEOF, m.isDelim(t, '}'), m.isDelim(t, ';'):
				m.Report(diag.SevError, diag.CSSUnexpectedToken, t.span, "unterminated function value")
				return
			case t.kind == tokWS:
				out.ws()
				m.bump()
			case t.kind == tokFunction, m.isDelim(t, '('):
				depth++
				m.bump()
				out.put(strings.ToLower(t.text), valGlueL, valGlueR)
			case m.isDelim(t, ')'):
				depth--
				m.bump()
				out.put(")", valGlueL, valGlueR)
			default:
				m.bump()
				m.valueToken(out, t)
			}
		}
	}
}

// rawArgument returns the source text between fn's opening paren and the
// matching close paren, consuming through the close paren. ok is false
// when the close paren is missing.
func (m *minifier) rawArgument(fn tok) (string, bool) {
	depth := 1
	start := fn.span.End
	for {
		t := m.peek()
		switch {
		case t.kind == tokEOF:
			m.Report(diag.SevError, diag.CSSBadExpression, fn.span, "unterminated "+fn.text+"...) value")
			return string(m.file.Content[start:]), false
		case t.kind == tokFunction, m.isDelim(t, '('):
			depth++
		case m.isDelim(t, ')'):
			depth--
			if depth == 0 {
				m.bump()
				return string(m.file.Content[start:t.span.Start]), true
			}
		}
		m.bump()
	}
}

func quoteTok(t tok) string {
	if t.text == "" {
		return "token"
	}
	return "'" + t.text + "'"
}

// shortenNumber compacts a numeric token: fraction zeros trimmed, the
// zero before a bare fraction point dropped, units lowercased, and length
// units removed from a plain zero.
func shortenNumber(s string) string {
	i := 0
	for i < len(s) && (isDigit(s[i]) || s[i] == '.') {
		i++
	}
	num, unit := s[:i], strings.ToLower(s[i:])
	if strings.Contains(num, ".") {
		num = strings.TrimRight(num, "0")
		num = strings.TrimSuffix(num, ".")
		if strings.HasPrefix(num, "0.") {
			num = num[1:]
		}
	}
	if num == "" {
		num = "0"
	}
	if num == "0" && zeroUnits[unit] {
		return "0"
	}
	return num + unit
}

var zeroUnits = map[string]bool{
	"px": true, "em": true, "ex": true, "pt": true, "pc": true,
	"in": true, "cm": true, "mm": true, "rem": true,
}

// sheet accumulates minified output, holding one pending space that the
// next put decides to keep or drop based on the glue classes.
type sheet struct {
	b     strings.Builder
	last  byte
	space bool
}

func (o *sheet) String() string {
	return o.b.String()
}

func (o *sheet) ws() {
	if o.b.Len() > 0 {
		o.space = true
	}
}

func (o *sheet) put(s, glueL, glueR string) {
	if s == "" {
		return
	}
	if o.space && !strings.ContainsAny(glueL, string(o.last)) && !strings.ContainsAny(glueR, string(s[0])) {
		o.b.WriteByte(' ')
	}
	o.space = false
	o.b.WriteString(s)
	o.last = s[len(s)-1]
}

func (o *sheet) putRaw(s string) {
	if s == "" {
		return
	}
	o.space = false
	o.b.WriteString(s)
	o.last = s[len(s)-1]
}
