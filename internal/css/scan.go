package css

import (
	"squish/internal/diag"
	"squish/internal/source"
)

type tokKind uint8

const (
	tokEOF tokKind = iota
	tokWS
	tokIdent
	tokAtKeyword // @media, @import
	tokHash      // #fff, #header
	tokNumber    // 12, .5em, 100%
	tokString
	tokFunction // ident plus the opening paren: url(, rgb(, expression(
	tokDelim
)

type tok struct {
	kind tokKind
	text string
	span source.Span
}

// scan tokenizes the whole file up front. Comments are dropped as trivia
// and whitespace runs collapse into a single tokWS; everything the parser
// sees is significant.
func scan(file *source.File, rep diag.Reporter) []tok {
	s := &scanner{file: file, rep: rep}
	var toks []tok
	for {
		t := s.next()
		if t.kind == tokEOF {
			return toks
		}
		toks = append(toks, t)
	}
}

type scanner struct {
	file *source.File
	rep  diag.Reporter
	off  int
}

func (s *scanner) peek() byte {
	if s.off >= len(s.file.Content) {
		return 0
	}
	return s.file.Content[s.off]
}

func (s *scanner) peekAt(n int) byte {
	if s.off+n >= len(s.file.Content) {
		return 0
	}
	return s.file.Content[s.off+n]
}

func (s *scanner) span(start int) source.Span {
	return source.Span{File: s.file.ID, Start: uint32(start), End: uint32(s.off)}
}

func (s *scanner) make(kind tokKind, start int) tok {
	return tok{kind: kind, text: string(s.file.Content[start:s.off]), span: s.span(start)}
}

func (s *scanner) next() tok {
	for {
		start := s.off
		c := s.peek()
		switch {
		case c == 0:
			return tok{kind: tokEOF, span: s.span(start)}
		case isSpaceByte(c):
			for isSpaceByte(s.peek()) {
				s.off++
			}
			return tok{kind: tokWS, text: " ", span: s.span(start)}
		case c == '/' && s.peekAt(1) == '*':
			s.skipComment(start)
		case c == '\'' || c == '"':
			return s.scanString(c)
		case c == '@' && isIdentStart(s.peekAt(1)):
			s.off++
			s.scanIdentTail()
			return s.make(tokAtKeyword, start)
		case c == '#' && isIdentByte(s.peekAt(1)):
			s.off++
			s.scanIdentTail()
			return s.make(tokHash, start)
		case isDigit(c) || (c == '.' && isDigit(s.peekAt(1))):
			return s.scanNumber(start)
		case isIdentStart(c):
			s.scanIdentTail()
			if s.peek() == '(' {
				s.off++
				return s.make(tokFunction, start)
			}
			return s.make(tokIdent, start)
		default:
			s.off++
			return s.make(tokDelim, start)
		}
	}
}

func (s *scanner) skipComment(start int) {
	s.off += 2
	for {
		c := s.peek()
		if c == 0 {
			s.rep.Report(diag.SevError, diag.CSSUnterminatedComment, s.span(start), "unterminated comment")
			return
		}
		if c == '*' && s.peekAt(1) == '/' {
			s.off += 2
			return
		}
		s.off++
	}
}

// scanString keeps the quotes and any escapes verbatim; stylesheet strings
// pass through unmodified.
func (s *scanner) scanString(quote byte) tok {
	start := s.off
	s.off++
	for {
		c := s.peek()
		switch {
		case c == 0 || c == '\n':
			s.rep.Report(diag.SevError, diag.CSSUnterminatedString, s.span(start), "unterminated string")
			return s.make(tokString, start)
		case c == '\\' && s.peekAt(1) != 0:
			s.off += 2
		case c == quote:
			s.off++
			return s.make(tokString, start)
		default:
			s.off++
		}
	}
}

// scanNumber consumes the numeric part plus any trailing unit or percent
// sign as one token, so "1.50em" travels as a unit.
func (s *scanner) scanNumber(start int) tok {
	for isDigit(s.peek()) {
		s.off++
	}
	if s.peek() == '.' && isDigit(s.peekAt(1)) {
		s.off++
		for isDigit(s.peek()) {
			s.off++
		}
	}
	if s.peek() == '%' {
		s.off++
	} else if isIdentStart(s.peek()) {
		s.scanIdentTail()
	}
	return s.make(tokNumber, start)
}

func (s *scanner) scanIdentTail() {
	for isIdentByte(s.peek()) {
		s.off++
	}
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '-' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentByte(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
