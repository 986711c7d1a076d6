package diag

import (
	"fmt"
)

type Code uint16

const (
	// UnknownCode marks diagnostics synthesized at the pipeline boundary.
	UnknownCode Code = 0

	// Lexical (script)
	LexUnknownChar         Code = 1001
	LexUnterminatedString  Code = 1002
	LexUnterminatedComment Code = 1003
	LexBadNumber           Code = 1004
	LexBadEscape           Code = 1005

	// Syntax (script)
	SynUnexpectedToken  Code = 2001
	SynExpectExpression Code = 2002
	SynExpectSemicolon  Code = 2003
	SynUnclosedParen    Code = 2004
	SynUnclosedBrace    Code = 2005
	SynUnclosedBracket  Code = 2006
	SynExpectIdentifier Code = 2007
	SynBadForHeader     Code = 2008
	SynBadDirective     Code = 2009
	SynTooManyErrors    Code = 2010

	// Emission
	EmitNotJSON Code = 3001

	// Stylesheet
	CSSUnexpectedToken     Code = 4001
	CSSExpectColon         Code = 4002
	CSSUnclosedBlock       Code = 4003
	CSSUnterminatedString  Code = 4004
	CSSUnterminatedComment Code = 4005
	CSSEmptyDeclaration    Code = 4006
	CSSBadExpression       Code = 4007
)

// ID renders the compact stable identifier used in rendered output.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("EMIT%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("CSS%04d", ic)
	}
	return "E0000"
}

func (c Code) String() string {
	return c.ID()
}
