package emit

import (
	"squish/internal/ast"
	"squish/internal/token"
)

// Emitter-side precedence; larger binds tighter. Children with a lower
// level than their context get wrapped in parens, which reconstructs the
// minimal parenthesization the parser discarded.
const (
	precComma   = 0
	precAssign  = 1
	precCond    = 2
	precOr      = 3
	precAnd     = 4
	precBitOr   = 5
	precBitXor  = 6
	precBitAnd  = 7
	precEq      = 8
	precRel     = 9
	precShift   = 10
	precAdd     = 11
	precMul     = 12
	precUnary   = 13
	precPostfix = 14
	precCallMem = 15
	precPrimary = 16
)

func binaryLevel(op token.Kind) int {
	switch op {
	case token.OrOr:
		return precOr
	case token.AndAnd:
		return precAnd
	case token.Pipe:
		return precBitOr
	case token.Caret:
		return precBitXor
	case token.Amp:
		return precBitAnd
	case token.EqEq, token.NotEq, token.EqEqEq, token.NotEqEq:
		return precEq
	case token.Lt, token.LtEq, token.Gt, token.GtEq, token.KwIn, token.KwInstanceof:
		return precRel
	case token.Shl, token.Shr, token.UShr:
		return precShift
	case token.Plus, token.Minus:
		return precAdd
	default:
		return precMul
	}
}

func exprLevel(x ast.Expr) int {
	switch x := x.(type) {
	case *ast.Seq:
		return precComma
	case *ast.Assign:
		return precAssign
	case *ast.Cond:
		return precCond
	case *ast.Binary:
		return binaryLevel(x.Op)
	case *ast.Unary:
		if x.Postfix {
			return precPostfix
		}
		return precUnary
	case *ast.Call, *ast.Member, *ast.Index, *ast.New:
		return precCallMem
	default:
		return precPrimary
	}
}

// expr emits x, wrapping it in parens when its level is below the
// context's minimum.
func (e *standard) expr(w *writer, x ast.Expr, min int) {
	if exprLevel(x) < min {
		w.byteTok('(')
		e.exprInner(w, x)
		w.byteTok(')')
		return
	}
	e.exprInner(w, x)
}

func (e *standard) exprInner(w *writer, x ast.Expr) {
	switch x := x.(type) {
	case *ast.Ident:
		if w.mapper != nil {
			col := w.col()
			if needSpace(w.last, x.Name[0]) {
				col++
			}
			w.mapper.AddMapping(0, col, x.Loc, x.Name)
		}
		w.token(x.Name)
	case *ast.NumberLit:
		w.token(renderNumber(x.Raw, x.Value))
	case *ast.StringLit:
		w.token(quoteString(x.Value))
	case *ast.BoolLit:
		if x.Value {
			w.token("true")
		} else {
			w.token("false")
		}
	case *ast.NullLit:
		w.token("null")
	case *ast.ThisLit:
		w.token("this")
	case *ast.Seq:
		for i, elem := range x.Exprs {
			if i > 0 {
				w.byteTok(',')
			}
			e.expr(w, elem, precAssign)
		}
	case *ast.Assign:
		e.expr(w, x.L, precPostfix)
		w.token(x.Op.String())
		e.expr(w, x.R, precAssign)
	case *ast.Cond:
		e.expr(w, x.Test, precCond+1)
		w.byteTok('?')
		e.expr(w, x.Then, precAssign)
		w.byteTok(':')
		e.expr(w, x.Alt, precAssign)
	case *ast.Binary:
		level := binaryLevel(x.Op)
		e.expr(w, x.L, level)
		w.token(x.Op.String())
		e.expr(w, x.R, level+1)
	case *ast.Unary:
		if x.Postfix {
			e.expr(w, x.X, precPostfix)
			w.token(x.Op.String())
		} else {
			w.token(x.Op.String())
			e.expr(w, x.X, precUnary)
		}
	case *ast.Call:
		if _, ok := x.Callee.(*ast.FuncLit); ok {
			w.byteTok('(')
			e.exprInner(w, x.Callee)
			w.byteTok(')')
		} else {
			e.expr(w, x.Callee, precCallMem)
		}
		e.arguments(w, x.Args)
	case *ast.New:
		w.token("new")
		if _, ok := x.Callee.(*ast.Call); ok {
			w.byteTok('(')
			e.exprInner(w, x.Callee)
			w.byteTok(')')
		} else {
			e.expr(w, x.Callee, precCallMem)
		}
		if x.Args != nil {
			e.arguments(w, x.Args)
		}
	case *ast.Member:
		if _, ok := x.X.(*ast.NumberLit); ok {
			// 1..toString is fragile; parens are clearer and always valid
			w.byteTok('(')
			e.exprInner(w, x.X)
			w.byteTok(')')
		} else {
			e.expr(w, x.X, precCallMem)
		}
		w.byteTok('.')
		w.token(x.Name)
	case *ast.Index:
		e.expr(w, x.X, precCallMem)
		w.byteTok('[')
		e.expr(w, x.Idx, precComma)
		w.byteTok(']')
	case *ast.ArrayLit:
		w.byteTok('[')
		for i, elem := range x.Elems {
			if i > 0 {
				w.byteTok(',')
			}
			e.expr(w, elem, precAssign)
		}
		w.byteTok(']')
	case *ast.ObjectLit:
		w.byteTok('{')
		for i, prop := range x.Props {
			if i > 0 {
				w.byteTok(',')
			}
			w.token(renderPropertyKey(prop))
			w.byteTok(':')
			e.expr(w, prop.Value, precAssign)
		}
		w.byteTok('}')
	case *ast.FuncLit:
		e.function(w, x.Name, x.Params, x.Body)
	}
}

func (e *standard) arguments(w *writer, args []ast.Expr) {
	w.byteTok('(')
	for i, arg := range args {
		if i > 0 {
			w.byteTok(',')
		}
		e.expr(w, arg, precAssign)
	}
	w.byteTok(')')
}

// renderPropertyKey writes a key unquoted when the spelling is a plain,
// non-reserved identifier or a numeric key; everything else is requoted.
func renderPropertyKey(prop ast.Property) string {
	key := prop.Key
	if !prop.IsStr {
		return key
	}
	if isPlainIdent(key) && token.LookupKeyword(key) == token.Ident {
		return key
	}
	return quoteString(key)
}

func isPlainIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		ok := c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (i > 0 && c >= '0' && c <= '9')
		if !ok {
			return false
		}
	}
	return true
}
