package lexer

import (
	"squish/internal/diag"
	"squish/internal/token"
)

// scanNumber accepts decimal integers, fractions, exponents, and 0x hex
// literals. The caller guarantees the current byte starts a number.
func (lx *Lexer) scanNumber() token.Token {
	mark := lx.cursor.Mark()

	if lx.cursor.Peek() == '0' && (lx.cursor.PeekAt(1) == 'x' || lx.cursor.PeekAt(1) == 'X') {
		lx.cursor.Bump()
		lx.cursor.Bump()
		digits := 0
		for !lx.cursor.EOF() && isHexDigit(lx.cursor.Peek()) {
			lx.cursor.Bump()
			digits++
		}
		if digits == 0 {
			lx.report(diag.LexBadNumber, lx.cursor.SpanFrom(mark), "hex literal has no digits")
			return token.Token{Kind: token.Invalid, Span: lx.cursor.SpanFrom(mark), Text: lx.cursor.TextFrom(mark)}
		}
		return lx.finishNumber(mark)
	}

	for !lx.cursor.EOF() && isDigit(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		for !lx.cursor.EOF() && isDigit(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}
	if ch := lx.cursor.Peek(); ch == 'e' || ch == 'E' {
		save := lx.cursor.Off
		lx.cursor.Bump()
		if ch := lx.cursor.Peek(); ch == '+' || ch == '-' {
			lx.cursor.Bump()
		}
		digits := 0
		for !lx.cursor.EOF() && isDigit(lx.cursor.Peek()) {
			lx.cursor.Bump()
			digits++
		}
		if digits == 0 {
			// "1e" followed by a non-digit: the e belongs to the next token
			lx.cursor.Off = save
		}
	}
	return lx.finishNumber(mark)
}

func (lx *Lexer) finishNumber(mark Mark) token.Token {
	// a number immediately followed by an identifier character is malformed
	if !lx.cursor.EOF() && isIdentStart(lx.cursor.Peek()) {
		for !lx.cursor.EOF() && isIdentPart(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(mark)
		lx.report(diag.LexBadNumber, sp, "malformed numeric literal")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.cursor.TextFrom(mark)}
	}
	return token.Token{
		Kind: token.Number,
		Span: lx.cursor.SpanFrom(mark),
		Text: lx.cursor.TextFrom(mark),
	}
}
