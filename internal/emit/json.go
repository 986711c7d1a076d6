package emit

import (
	"strconv"
	"strings"

	"squish/internal/ast"
	"squish/internal/textpool"
	"squish/internal/token"
)

// JSONStrict returns the emitter for the data-interchange output mode.
// It succeeds only when the program is a single expression statement
// whose tree stays inside the JSON grammar: object, array, string,
// number, boolean, and null literals, plus unary minus on numbers.
// On failure the buffer keeps whatever partial rendering was written.
func JSONStrict() Emitter {
	return jsonStrict{}
}

type jsonStrict struct{}

func (jsonStrict) Emit(buf *textpool.Buffer, prog *ast.Program) bool {
	if len(prog.Body) != 1 {
		return false
	}
	stmt, ok := prog.Body[0].(*ast.ExprStmt)
	if !ok {
		return false
	}
	return jsonValue(buf, stmt.X)
}

func jsonValue(buf *textpool.Buffer, x ast.Expr) bool {
	switch x := x.(type) {
	case *ast.NullLit:
		buf.WriteString("null")
		return true
	case *ast.BoolLit:
		if x.Value {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
		return true
	case *ast.NumberLit:
		buf.WriteString(jsonNumber(x.Value))
		return true
	case *ast.StringLit:
		buf.WriteString(jsonString(x.Value))
		return true
	case *ast.Unary:
		num, ok := x.X.(*ast.NumberLit)
		if !ok || x.Postfix || x.Op != token.Minus {
			return false
		}
		buf.WriteByte('-')
		buf.WriteString(jsonNumber(num.Value))
		return true
	case *ast.ArrayLit:
		buf.WriteByte('[')
		for i, elem := range x.Elems {
			if i > 0 {
				buf.WriteByte(',')
			}
			if !jsonValue(buf, elem) {
				return false
			}
		}
		buf.WriteByte(']')
		return true
	case *ast.ObjectLit:
		buf.WriteByte('{')
		for i, prop := range x.Props {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(jsonString(prop.Key))
			buf.WriteByte(':')
			if !jsonValue(buf, prop.Value) {
				return false
			}
		}
		buf.WriteByte('}')
		return true
	default:
		return false
	}
}

// jsonNumber renders a plain decimal: JSON has no hex and no bare
// leading fraction point.
func jsonNumber(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	return shortenExponent(s)
}

func jsonString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			b.WriteString(`\"`)
		case c == '\\':
			b.WriteString(`\\`)
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\r':
			b.WriteString(`\r`)
		case c == '\t':
			b.WriteString(`\t`)
		case c < 0x20:
			b.WriteString(`\u00`)
			const hex = "0123456789abcdef"
			b.WriteByte(hex[c>>4])
			b.WriteByte(hex[c&0xf])
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
