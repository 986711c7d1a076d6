package token

import (
	"squish/internal/source"
)

// Token represents a single script token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwVar && t.Kind <= KwThrow
}

// IsAssignOp reports whether the token is an assignment operator.
func (t Token) IsAssignOp() bool {
	return t.Kind >= Assign && t.Kind <= UShrAssign
}

var keywords = map[string]Kind{
	"var":        KwVar,
	"function":   KwFunction,
	"return":     KwReturn,
	"if":         KwIf,
	"else":       KwElse,
	"for":        KwFor,
	"while":      KwWhile,
	"do":         KwDo,
	"break":      KwBreak,
	"continue":   KwContinue,
	"new":        KwNew,
	"delete":     KwDelete,
	"typeof":     KwTypeof,
	"instanceof": KwInstanceof,
	"in":         KwIn,
	"this":       KwThis,
	"true":       KwTrue,
	"false":      KwFalse,
	"null":       KwNull,
	"void":       KwVoid,
	"throw":      KwThrow,
}

// LookupKeyword maps an identifier spelling to its keyword kind, or Ident
// when the spelling is not reserved.
func LookupKeyword(name string) Kind {
	if k, ok := keywords[name]; ok {
		return k
	}
	return Ident
}
