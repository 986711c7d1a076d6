package parser

import (
	"fmt"
	"strconv"
	"strings"

	"squish/internal/ast"
	"squish/internal/diag"
	"squish/internal/token"
)

func (p *Parser) parsePrimary(noIn bool) ast.Expr {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Ident:
		p.bump()
		return &ast.Ident{Name: tok.Text, Loc: tok.Span}
	case token.Number:
		p.bump()
		return p.numberLit(tok)
	case token.String:
		p.bump()
		return &ast.StringLit{Value: decodeString(tok.Text), Loc: tok.Span}
	case token.KwTrue:
		p.bump()
		return &ast.BoolLit{Value: true, Loc: tok.Span}
	case token.KwFalse:
		p.bump()
		return &ast.BoolLit{Value: false, Loc: tok.Span}
	case token.KwNull:
		p.bump()
		return &ast.NullLit{Loc: tok.Span}
	case token.KwThis:
		p.bump()
		return &ast.ThisLit{Loc: tok.Span}
	case token.LParen:
		p.bump()
		x := p.parseExpression()
		if x == nil {
			return nil
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen); !ok {
			return nil
		}
		// explicit parens are dropped; the emitter re-derives the minimal set
		return x
	case token.LBracket:
		return p.parseArrayLit()
	case token.LBrace:
		return p.parseObjectLit()
	case token.KwFunction:
		return p.parseFunctionExpr()
	case token.EOF:
		p.report(diag.SynExpectExpression, tok.Span, "expected expression, found end of input")
		return nil
	default:
		p.report(diag.SynExpectExpression, tok.Span, fmt.Sprintf("expected expression, found %q", describe(tok)))
		return nil
	}
}

func (p *Parser) numberLit(tok token.Token) ast.Expr {
	raw := tok.Text
	var value float64
	if strings.HasPrefix(raw, "0x") || strings.HasPrefix(raw, "0X") {
		if v, err := strconv.ParseUint(raw[2:], 16, 64); err == nil {
			value = float64(v)
		}
	} else if v, err := strconv.ParseFloat(raw, 64); err == nil {
		value = v
	}
	return &ast.NumberLit{Raw: raw, Value: value, Loc: tok.Span}
}

func (p *Parser) parseArrayLit() ast.Expr {
	open := p.bump() // [
	var elems []ast.Expr
	for !p.at(token.RBracket) {
		elem := p.parseAssignExpr()
		if elem == nil {
			return nil
		}
		elems = append(elems, elem)
		if !p.at(token.Comma) {
			break
		}
		p.bump()
	}
	closeTok, ok := p.expect(token.RBracket, diag.SynUnclosedBracket)
	if !ok {
		return nil
	}
	return &ast.ArrayLit{Elems: elems, Loc: open.Span.Cover(closeTok.Span)}
}

func (p *Parser) parseObjectLit() ast.Expr {
	open := p.bump() // {
	var props []ast.Property
	for !p.at(token.RBrace) {
		keyTok := p.lx.Peek()
		var key string
		var isStr bool
		switch {
		case keyTok.Kind == token.Ident || keyTok.IsKeyword():
			p.bump()
			key = keyTok.Text
		case keyTok.Kind == token.String:
			p.bump()
			key = decodeString(keyTok.Text)
			isStr = true
		case keyTok.Kind == token.Number:
			p.bump()
			key = keyTok.Text
		default:
			p.report(diag.SynUnexpectedToken, keyTok.Span, fmt.Sprintf("expected property name, found %q", describe(keyTok)))
			return nil
		}
		if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken); !ok {
			return nil
		}
		value := p.parseAssignExpr()
		if value == nil {
			return nil
		}
		props = append(props, ast.Property{Key: key, IsStr: isStr, Value: value})
		if !p.at(token.Comma) {
			break
		}
		p.bump()
	}
	closeTok, ok := p.expect(token.RBrace, diag.SynUnclosedBrace)
	if !ok {
		return nil
	}
	return &ast.ObjectLit{Props: props, Loc: open.Span.Cover(closeTok.Span)}
}

func (p *Parser) parseFunctionExpr() ast.Expr {
	kw := p.bump() // function
	name := ""
	if p.at(token.Ident) {
		name = p.bump().Text
	}
	params, body, end, ok := p.parseFunctionRest()
	if !ok {
		return nil
	}
	return &ast.FuncLit{Name: name, Params: params, Body: body, Loc: kw.Span.Cover(end)}
}

// decodeString strips the quotes from a raw literal and resolves escapes.
// Unknown escapes keep the escaped character, matching how engines treat
// them.
func decodeString(raw string) string {
	if len(raw) < 2 {
		return ""
	}
	body := raw[1 : len(raw)-1]
	if !strings.ContainsRune(body, '\\') {
		return body
	}
	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 >= len(body) {
			b.WriteByte(c)
			continue
		}
		i++
		switch body[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		case 'x':
			if i+2 < len(body) {
				if v, err := strconv.ParseUint(body[i+1:i+3], 16, 8); err == nil {
					b.WriteByte(byte(v))
					i += 2
					continue
				}
			}
			b.WriteByte('x')
		case 'u':
			if i+4 < len(body) {
				if v, err := strconv.ParseUint(body[i+1:i+5], 16, 32); err == nil {
					b.WriteRune(rune(v))
					i += 4
					continue
				}
			}
			b.WriteByte('u')
		default:
			b.WriteByte(body[i])
		}
	}
	return b.String()
}
