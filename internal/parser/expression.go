package parser

import (
	"squish/internal/ast"
	"squish/internal/diag"
	"squish/internal/source"
	"squish/internal/token"
)

// parseExpression parses a full expression including the comma operator.
func (p *Parser) parseExpression() ast.Expr {
	return p.parseSequence(false)
}

// parseExpressionNoIn is the for-header variant where `in` is not an
// operator.
func (p *Parser) parseExpressionNoIn() ast.Expr {
	return p.parseSequence(true)
}

func (p *Parser) parseSequence(noIn bool) ast.Expr {
	first := p.parseAssignExpr2(noIn)
	if first == nil {
		return nil
	}
	if !p.at(token.Comma) {
		return first
	}
	exprs := []ast.Expr{first}
	loc := first.Span()
	for p.at(token.Comma) {
		p.bump()
		next := p.parseAssignExpr2(noIn)
		if next == nil {
			return nil
		}
		exprs = append(exprs, next)
		loc = loc.Cover(next.Span())
	}
	return &ast.Seq{Exprs: exprs, Loc: loc}
}

// parseAssignExpr parses one assignment-level expression (no comma).
func (p *Parser) parseAssignExpr() ast.Expr {
	return p.parseAssignExpr2(false)
}

func (p *Parser) parseAssignExpr2(noIn bool) ast.Expr {
	left := p.parseConditional(noIn)
	if left == nil {
		return nil
	}
	tok := p.lx.Peek()
	if !tok.IsAssignOp() {
		return left
	}
	if !isAssignTarget(left) {
		p.report(diag.SynUnexpectedToken, tok.Span, "invalid assignment target")
		return nil
	}
	p.bump()
	right := p.parseAssignExpr2(noIn) // right-associative
	if right == nil {
		return nil
	}
	return &ast.Assign{
		Op:  tok.Kind,
		L:   left,
		R:   right,
		Loc: left.Span().Cover(right.Span()),
	}
}

func isAssignTarget(x ast.Expr) bool {
	switch x.(type) {
	case *ast.Ident, *ast.Member, *ast.Index:
		return true
	}
	return false
}

func (p *Parser) parseConditional(noIn bool) ast.Expr {
	test := p.parseBinary(precLowest+1, noIn)
	if test == nil || !p.at(token.Question) {
		return test
	}
	p.bump()
	then := p.parseAssignExpr2(false)
	if then == nil {
		return nil
	}
	if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken); !ok {
		return nil
	}
	alt := p.parseAssignExpr2(noIn)
	if alt == nil {
		return nil
	}
	return &ast.Cond{Test: test, Then: then, Alt: alt, Loc: test.Span().Cover(alt.Span())}
}

// parseBinary is precedence climbing over the op table. All binary
// operators in the subset are left-associative.
func (p *Parser) parseBinary(minPrec int, noIn bool) ast.Expr {
	left := p.parseUnary(noIn)
	if left == nil {
		return nil
	}
	for {
		tok := p.lx.Peek()
		prec := binaryPrec(tok.Kind, noIn)
		if prec < minPrec {
			return left
		}
		p.bump()
		right := p.parseBinary(prec+1, noIn)
		if right == nil {
			return nil
		}
		left = &ast.Binary{
			Op:  tok.Kind,
			L:   left,
			R:   right,
			Loc: left.Span().Cover(right.Span()),
		}
	}
}

func (p *Parser) parseUnary(noIn bool) ast.Expr {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Bang, token.Tilde, token.Plus, token.Minus,
		token.PlusPlus, token.MinusMinus,
		token.KwTypeof, token.KwVoid, token.KwDelete:
		p.bump()
		x := p.parseUnary(noIn)
		if x == nil {
			return nil
		}
		return &ast.Unary{Op: tok.Kind, X: x, Loc: tok.Span.Cover(x.Span())}
	}
	return p.parsePostfix(noIn)
}

func (p *Parser) parsePostfix(noIn bool) ast.Expr {
	x := p.parseCallOrMember(noIn, true)
	if x == nil {
		return nil
	}
	if tok := p.lx.Peek(); tok.Kind == token.PlusPlus || tok.Kind == token.MinusMinus {
		p.bump()
		return &ast.Unary{Op: tok.Kind, X: x, Postfix: true, Loc: x.Span().Cover(tok.Span)}
	}
	return x
}

// parseCallOrMember parses a primary expression followed by any chain of
// member access, indexing, and (when allowCall) call suffixes.
func (p *Parser) parseCallOrMember(noIn bool, allowCall bool) ast.Expr {
	var x ast.Expr
	if p.at(token.KwNew) {
		x = p.parseNew(noIn)
	} else {
		x = p.parsePrimary(noIn)
	}
	if x == nil {
		return nil
	}

	for {
		switch p.lx.Peek().Kind {
		case token.Dot:
			p.bump()
			name, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
			if !ok {
				return nil
			}
			x = &ast.Member{X: x, Name: name.Text, Loc: x.Span().Cover(name.Span)}
		case token.LBracket:
			p.bump()
			idx := p.parseExpression()
			if idx == nil {
				return nil
			}
			closeTok, ok := p.expect(token.RBracket, diag.SynUnclosedBracket)
			if !ok {
				return nil
			}
			x = &ast.Index{X: x, Idx: idx, Loc: x.Span().Cover(closeTok.Span)}
		case token.LParen:
			if !allowCall {
				return x
			}
			args, endSpan, ok := p.parseArguments()
			if !ok {
				return nil
			}
			x = &ast.Call{Callee: x, Args: args, Loc: x.Span().Cover(endSpan)}
		default:
			return x
		}
	}
}

// parseNew parses `new Callee(args)`. The callee part may not consume a
// call suffix — that parenthesized list belongs to the new expression.
func (p *Parser) parseNew(noIn bool) ast.Expr {
	kw := p.bump() // new
	callee := p.parseCallOrMember(noIn, false)
	if callee == nil {
		return nil
	}
	loc := kw.Span.Cover(callee.Span())
	var args []ast.Expr
	if p.at(token.LParen) {
		var endSpan = loc
		var ok bool
		args, endSpan, ok = p.parseArguments()
		if !ok {
			return nil
		}
		if args == nil {
			// non-nil marks an explicit (possibly empty) argument list
			args = []ast.Expr{}
		}
		loc = loc.Cover(endSpan)
	}
	return &ast.New{Callee: callee, Args: args, Loc: loc}
}

// parseArguments parses `(a,b,...)` and returns the closing paren's span.
func (p *Parser) parseArguments() ([]ast.Expr, source.Span, bool) {
	p.bump() // (
	var args []ast.Expr
	for !p.at(token.RParen) {
		arg := p.parseAssignExpr()
		if arg == nil {
			return nil, source.Span{}, false
		}
		args = append(args, arg)
		if !p.at(token.Comma) {
			break
		}
		p.bump()
	}
	closeTok, ok := p.expect(token.RParen, diag.SynUnclosedParen)
	if !ok {
		return nil, source.Span{}, false
	}
	return args, closeTok.Span, true
}
