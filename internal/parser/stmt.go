package parser

import (
	"squish/internal/ast"
	"squish/internal/diag"
	"squish/internal/source"
	"squish/internal/token"
)

// parseStatements parses until the closing kind (RBrace or EOF). The
// closer itself is not consumed.
func (p *Parser) parseStatements(until token.Kind) []ast.Stmt {
	var out []ast.Stmt
	for !p.bailed && !p.at(until) && !p.at(token.EOF) {
		if stmt := p.parseStatement(); stmt != nil {
			out = append(out, stmt)
		}
	}
	return out
}

// parseStatement returns nil after reporting and resyncing on a malformed
// statement.
func (p *Parser) parseStatement() ast.Stmt {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Semicolon:
		sp := p.bump().Span
		return &ast.EmptyStmt{Loc: sp}
	case token.LBrace:
		return p.parseBlock()
	case token.KwVar:
		return p.parseVarStatement(true)
	case token.KwFunction:
		return p.parseFunctionDecl()
	case token.KwReturn:
		return p.parseReturn()
	case token.KwIf:
		return p.parseIf()
	case token.KwFor:
		return p.parseFor()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwDo:
		return p.parseDoWhile()
	case token.KwBreak:
		sp := p.bump().Span
		p.finishStatement()
		return &ast.BreakStmt{Loc: sp}
	case token.KwContinue:
		sp := p.bump().Span
		p.finishStatement()
		return &ast.ContinueStmt{Loc: sp}
	case token.KwThrow:
		sp := p.bump().Span
		arg := p.parseExpression()
		if arg == nil {
			p.resync()
			return nil
		}
		p.finishStatement()
		return &ast.ThrowStmt{Arg: arg, Loc: sp.Cover(arg.Span())}
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseBlock() ast.Stmt {
	open, _ := p.expect(token.LBrace, diag.SynUnexpectedToken)
	body := p.parseStatements(token.RBrace)
	closeTok, ok := p.expect(token.RBrace, diag.SynUnclosedBrace)
	loc := open.Span
	if ok {
		loc = loc.Cover(closeTok.Span)
	}
	return &ast.BlockStmt{Body: body, Loc: loc}
}

// parseVarStatement parses `var a=1,b`. When consumeSemi is false the
// statement is a for-header clause and the terminator stays untouched.
func (p *Parser) parseVarStatement(consumeSemi bool) ast.Stmt {
	kw := p.bump() // var
	loc := kw.Span

	var decls []ast.VarDecl
	for {
		name, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
		if !ok {
			p.resync()
			if len(decls) == 0 {
				return nil
			}
			return &ast.VarStmt{Decls: decls, Loc: loc}
		}
		decl := ast.VarDecl{Name: name.Text, Loc: name.Span}

		if p.at(token.Assign) {
			p.bump()
			init := p.parseAssignExpr()
			if init == nil {
				p.resync()
				if len(decls) == 0 {
					return nil
				}
				return &ast.VarStmt{Decls: decls, Loc: loc}
			}
			decl.Init = init
			decl.Loc = decl.Loc.Cover(init.Span())
		}
		decls = append(decls, decl)
		loc = loc.Cover(decl.Loc)

		if !p.at(token.Comma) {
			break
		}
		p.bump()
	}

	if consumeSemi {
		p.finishStatement()
	}
	return &ast.VarStmt{Decls: decls, Loc: loc}
}

func (p *Parser) parseFunctionDecl() ast.Stmt {
	kw := p.bump() // function
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
	if !ok {
		p.resync()
		return nil
	}
	params, body, end, ok := p.parseFunctionRest()
	if !ok {
		return nil
	}
	return &ast.FuncDecl{
		Name:   name.Text,
		Params: params,
		Body:   body,
		Loc:    kw.Span.Cover(end),
	}
}

// parseFunctionRest parses `(params){body}` shared by declarations and
// function expressions.
func (p *Parser) parseFunctionRest() (params []string, body []ast.Stmt, end source.Span, ok bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnclosedParen); !ok {
		p.resync()
		return nil, nil, source.Span{}, false
	}
	for !p.at(token.RParen) {
		name, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
		if !ok {
			p.resync()
			return nil, nil, source.Span{}, false
		}
		params = append(params, name.Text)
		if !p.at(token.Comma) {
			break
		}
		p.bump()
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen); !ok {
		p.resync()
		return nil, nil, source.Span{}, false
	}
	if _, ok := p.expect(token.LBrace, diag.SynUnclosedBrace); !ok {
		p.resync()
		return nil, nil, source.Span{}, false
	}
	body = p.parseStatements(token.RBrace)
	closeTok, closed := p.expect(token.RBrace, diag.SynUnclosedBrace)
	if !closed {
		return nil, nil, source.Span{}, false
	}
	return params, body, closeTok.Span, true
}

func (p *Parser) parseReturn() ast.Stmt {
	kw := p.bump()
	loc := kw.Span
	var arg ast.Expr
	if !p.at(token.Semicolon) && !p.at(token.RBrace) && !p.at(token.EOF) {
		arg = p.parseExpression()
		if arg == nil {
			p.resync()
			return nil
		}
		loc = loc.Cover(arg.Span())
	}
	p.finishStatement()
	return &ast.ReturnStmt{Arg: arg, Loc: loc}
}

func (p *Parser) parseIf() ast.Stmt {
	kw := p.bump()
	cond, ok := p.parseParenExpr()
	if !ok {
		return nil
	}
	then := p.parseStatement()
	if then == nil {
		return nil
	}
	loc := kw.Span.Cover(then.Span())

	var alt ast.Stmt
	if p.at(token.KwElse) {
		p.bump()
		alt = p.parseStatement()
		if alt == nil {
			return nil
		}
		loc = loc.Cover(alt.Span())
	}
	return &ast.IfStmt{Cond: cond, Then: then, Else: alt, Loc: loc}
}

func (p *Parser) parseFor() ast.Stmt {
	kw := p.bump()
	if _, ok := p.expect(token.LParen, diag.SynBadForHeader); !ok {
		p.resync()
		return nil
	}

	// init clause: empty, var declaration, or expression
	var init ast.Stmt
	switch {
	case p.at(token.Semicolon):
		// nothing
	case p.at(token.KwVar):
		init = p.parseVarStatement(false)
		if init == nil {
			return nil
		}
	default:
		x := p.parseExpressionNoIn()
		if x == nil {
			p.resync()
			return nil
		}
		init = &ast.ExprStmt{X: x, Loc: x.Span()}
	}

	// for-in form
	if p.at(token.KwIn) && init != nil {
		p.bump()
		right := p.parseExpression()
		if right == nil {
			p.resync()
			return nil
		}
		if _, ok := p.expect(token.RParen, diag.SynBadForHeader); !ok {
			p.resync()
			return nil
		}
		body := p.parseStatement()
		if body == nil {
			return nil
		}
		return &ast.ForInStmt{Left: init, Right: right, Body: body, Loc: kw.Span.Cover(body.Span())}
	}

	if _, ok := p.expect(token.Semicolon, diag.SynBadForHeader); !ok {
		p.resync()
		return nil
	}
	var cond ast.Expr
	if !p.at(token.Semicolon) {
		cond = p.parseExpression()
		if cond == nil {
			p.resync()
			return nil
		}
	}
	if _, ok := p.expect(token.Semicolon, diag.SynBadForHeader); !ok {
		p.resync()
		return nil
	}
	var post ast.Expr
	if !p.at(token.RParen) {
		post = p.parseExpression()
		if post == nil {
			p.resync()
			return nil
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynBadForHeader); !ok {
		p.resync()
		return nil
	}
	body := p.parseStatement()
	if body == nil {
		return nil
	}
	return &ast.ForStmt{Init: init, Cond: cond, Post: post, Body: body, Loc: kw.Span.Cover(body.Span())}
}

func (p *Parser) parseWhile() ast.Stmt {
	kw := p.bump()
	cond, ok := p.parseParenExpr()
	if !ok {
		return nil
	}
	body := p.parseStatement()
	if body == nil {
		return nil
	}
	return &ast.WhileStmt{Cond: cond, Body: body, Loc: kw.Span.Cover(body.Span())}
}

func (p *Parser) parseDoWhile() ast.Stmt {
	kw := p.bump()
	body := p.parseStatement()
	if body == nil {
		return nil
	}
	if _, ok := p.expect(token.KwWhile, diag.SynUnexpectedToken); !ok {
		p.resync()
		return nil
	}
	cond, ok := p.parseParenExpr()
	if !ok {
		return nil
	}
	loc := kw.Span.Cover(cond.Span())
	p.finishStatement()
	return &ast.DoWhileStmt{Body: body, Cond: cond, Loc: loc}
}

func (p *Parser) parseExpressionStatement() ast.Stmt {
	x := p.parseExpression()
	if x == nil {
		p.resync()
		return nil
	}
	p.finishStatement()
	return &ast.ExprStmt{X: x, Loc: x.Span()}
}

// parseParenExpr parses `(expr)` used by if/while headers.
func (p *Parser) parseParenExpr() (ast.Expr, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnclosedParen); !ok {
		p.resync()
		return nil, false
	}
	x := p.parseExpression()
	if x == nil {
		p.resync()
		return nil, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen); !ok {
		p.resync()
		return nil, false
	}
	return x, true
}

// finishStatement consumes the statement terminator. A closing brace or
// EOF terminates the statement without a semicolon; anything else is a
// missing-semicolon diagnostic (the offending token is left for the next
// statement).
func (p *Parser) finishStatement() {
	switch p.lx.Peek().Kind {
	case token.Semicolon:
		p.bump()
	case token.RBrace, token.EOF:
		// implicit terminator
	default:
		got := p.lx.Peek()
		p.report(diag.SynExpectSemicolon, got.Span, "expected \";\" after statement")
	}
}
