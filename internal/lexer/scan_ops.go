package lexer

import (
	"fmt"

	"squish/internal/diag"
	"squish/internal/token"
)

// operator spellings ordered longest-first so maximal munch falls out of
// the table scan.
var operators = []struct {
	text string
	kind token.Kind
}{
	{">>>=", token.UShrAssign},
	{"===", token.EqEqEq},
	{"!==", token.NotEqEq},
	{">>>", token.UShr},
	{"<<=", token.ShlAssign},
	{">>=", token.ShrAssign},
	{"==", token.EqEq},
	{"!=", token.NotEq},
	{"<=", token.LtEq},
	{">=", token.GtEq},
	{"&&", token.AndAnd},
	{"||", token.OrOr},
	{"<<", token.Shl},
	{">>", token.Shr},
	{"++", token.PlusPlus},
	{"--", token.MinusMinus},
	{"+=", token.PlusAssign},
	{"-=", token.MinusAssign},
	{"*=", token.StarAssign},
	{"/=", token.SlashAssign},
	{"%=", token.PctAssign},
	{"&=", token.AmpAssign},
	{"|=", token.PipeAssign},
	{"^=", token.CaretAssign},
	{"{", token.LBrace},
	{"}", token.RBrace},
	{"(", token.LParen},
	{")", token.RParen},
	{"[", token.LBracket},
	{"]", token.RBracket},
	{";", token.Semicolon},
	{",", token.Comma},
	{".", token.Dot},
	{"?", token.Question},
	{":", token.Colon},
	{"=", token.Assign},
	{"<", token.Lt},
	{">", token.Gt},
	{"!", token.Bang},
	{"~", token.Tilde},
	{"&", token.Amp},
	{"|", token.Pipe},
	{"^", token.Caret},
	{"+", token.Plus},
	{"-", token.Minus},
	{"*", token.Star},
	{"/", token.Slash},
	{"%", token.Percent},
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	mark := lx.cursor.Mark()
	for _, op := range operators {
		if lx.matches(op.text) {
			for range op.text {
				lx.cursor.Bump()
			}
			return token.Token{
				Kind: op.kind,
				Span: lx.cursor.SpanFrom(mark),
				Text: op.text,
			}
		}
	}

	ch := lx.cursor.Bump()
	sp := lx.cursor.SpanFrom(mark)
	lx.report(diag.LexUnknownChar, sp, fmt.Sprintf("unexpected character %q", ch))
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(ch)}
}

func (lx *Lexer) matches(text string) bool {
	for i := 0; i < len(text); i++ {
		if lx.cursor.PeekAt(uint32(i)) != text[i] {
			return false
		}
	}
	return true
}
