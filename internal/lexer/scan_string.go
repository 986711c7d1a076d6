package lexer

import (
	"squish/internal/diag"
	"squish/internal/token"
)

// scanString consumes a quoted literal including both quotes. The token
// text is the raw quoted form; the emitter decodes and requotes it.
func (lx *Lexer) scanString() token.Token {
	mark := lx.cursor.Mark()
	quote := lx.cursor.Bump()

	for !lx.cursor.EOF() {
		ch := lx.cursor.Peek()
		if ch == '\n' {
			break
		}
		lx.cursor.Bump()
		if ch == quote {
			return token.Token{
				Kind: token.String,
				Span: lx.cursor.SpanFrom(mark),
				Text: lx.cursor.TextFrom(mark),
			}
		}
		if ch == '\\' && !lx.cursor.EOF() {
			lx.cursor.Bump()
		}
	}

	sp := lx.cursor.SpanFrom(mark)
	lx.report(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.cursor.TextFrom(mark)}
}
