package parser

import (
	"squish/internal/token"
)

// Binary operator precedence; larger binds tighter.
const (
	precLowest         = 0
	precLogicalOr      = 1  // ||
	precLogicalAnd     = 2  // &&
	precBitwiseOr      = 3  // |
	precBitwiseXor     = 4  // ^
	precBitwiseAnd     = 5  // &
	precEquality       = 6  // == != === !==
	precRelational     = 7  // < <= > >= in instanceof
	precShift          = 8  // << >> >>>
	precAdditive       = 9  // + -
	precMultiplicative = 10 // * / %
)

// binaryPrec returns the precedence of kind as an infix operator, or
// precLowest when kind is not one. noIn suppresses the `in` operator
// inside for-statement headers.
func binaryPrec(kind token.Kind, noIn bool) int {
	switch kind {
	case token.OrOr:
		return precLogicalOr
	case token.AndAnd:
		return precLogicalAnd
	case token.Pipe:
		return precBitwiseOr
	case token.Caret:
		return precBitwiseXor
	case token.Amp:
		return precBitwiseAnd
	case token.EqEq, token.NotEq, token.EqEqEq, token.NotEqEq:
		return precEquality
	case token.Lt, token.LtEq, token.Gt, token.GtEq, token.KwInstanceof:
		return precRelational
	case token.KwIn:
		if noIn {
			return precLowest
		}
		return precRelational
	case token.Shl, token.Shr, token.UShr:
		return precShift
	case token.Plus, token.Minus:
		return precAdditive
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative
	}
	return precLowest
}
