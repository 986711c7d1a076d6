package emit

import (
	"squish/internal/ast"
	"squish/internal/sourcemap"
	"squish/internal/textpool"
)

// Emitter renders a program into the run's buffer. The boolean result is
// false when the tree holds a construct the emitter's output format cannot
// represent; the buffer then keeps whatever partial text was written.
type Emitter interface {
	Emit(buf *textpool.Buffer, prog *ast.Program) bool
}

// Standard returns the general minifying emitter. mapper may be nil; when
// set it receives one mapping per emitted identifier.
func Standard(mapper sourcemap.Mapper) Emitter {
	return &standard{mapper: mapper}
}

type standard struct {
	mapper sourcemap.Mapper
}

func (e *standard) Emit(buf *textpool.Buffer, prog *ast.Program) bool {
	w := newWriter(buf, e.mapper)
	for _, stmt := range prog.Body {
		e.stmt(w, stmt)
		e.terminate(w, stmt)
	}
	return true
}

// terminate writes the statement separator. It is elided only after a
// statement that is syntactically a block (or ends in one), never merely
// because the last emitted byte was `}`: an expression statement ending in
// an object or function literal still needs its `;`.
func (e *standard) terminate(w *writer, s ast.Stmt) {
	if w.last == ';' || w.last == 0 {
		return
	}
	if _, ok := s.(*ast.EmptyStmt); ok {
		// emitted nothing, nothing to separate
		return
	}
	if endsWithBlock(s) {
		return
	}
	w.byteTok(';')
}

// endsWithBlock reports whether the statement's rendering ends in a block
// close brace, after which the grammar needs no separator.
func endsWithBlock(s ast.Stmt) bool {
	switch s := s.(type) {
	case *ast.BlockStmt, *ast.FuncDecl:
		return true
	case *ast.IfStmt:
		if s.Else != nil {
			return endsWithBlock(s.Else)
		}
		return endsWithBlock(s.Then)
	case *ast.ForStmt:
		return endsWithBlock(s.Body)
	case *ast.ForInStmt:
		return endsWithBlock(s.Body)
	case *ast.WhileStmt:
		return endsWithBlock(s.Body)
	}
	return false
}

// blockBody emits a statement list inside braces.
func (e *standard) blockBody(w *writer, body []ast.Stmt) {
	w.byteTok('{')
	for i, stmt := range body {
		e.stmt(w, stmt)
		if i < len(body)-1 {
			e.terminate(w, stmt)
		}
	}
	w.byteTok('}')
}

func (e *standard) stmt(w *writer, s ast.Stmt) {
	switch s := s.(type) {
	case *ast.EmptyStmt:
		// dropped from the output entirely
	case *ast.BlockStmt:
		e.blockBody(w, s.Body)
	case *ast.VarStmt:
		w.token("var")
		for i, d := range s.Decls {
			if i > 0 {
				w.byteTok(',')
			}
			w.token(d.Name)
			if d.Init != nil {
				w.byteTok('=')
				e.expr(w, d.Init, precAssign)
			}
		}
	case *ast.FuncDecl:
		e.function(w, s.Name, s.Params, s.Body)
	case *ast.ReturnStmt:
		w.token("return")
		if s.Arg != nil {
			e.expr(w, s.Arg, precComma)
		}
	case *ast.ThrowStmt:
		w.token("throw")
		e.expr(w, s.Arg, precComma)
	case *ast.BreakStmt:
		w.token("break")
	case *ast.ContinueStmt:
		w.token("continue")
	case *ast.IfStmt:
		e.ifStmt(w, s)
	case *ast.ForStmt:
		w.token("for")
		w.byteTok('(')
		if s.Init != nil {
			e.stmt(w, s.Init)
		}
		w.byteTok(';')
		if s.Cond != nil {
			e.expr(w, s.Cond, precComma)
		}
		w.byteTok(';')
		if s.Post != nil {
			e.expr(w, s.Post, precComma)
		}
		w.byteTok(')')
		e.nested(w, s.Body)
	case *ast.ForInStmt:
		w.token("for")
		w.byteTok('(')
		e.stmt(w, s.Left)
		w.token("in")
		e.expr(w, s.Right, precComma)
		w.byteTok(')')
		e.nested(w, s.Body)
	case *ast.WhileStmt:
		w.token("while")
		w.byteTok('(')
		e.expr(w, s.Cond, precComma)
		w.byteTok(')')
		e.nested(w, s.Body)
	case *ast.DoWhileStmt:
		w.token("do")
		e.nested(w, s.Body)
		e.terminate(w, s.Body)
		w.token("while")
		w.byteTok('(')
		e.expr(w, s.Cond, precComma)
		w.byteTok(')')
	case *ast.ExprStmt:
		if startsWithBraceOrFunction(s.X) {
			w.byteTok('(')
			e.expr(w, s.X, precComma)
			w.byteTok(')')
		} else {
			e.expr(w, s.X, precComma)
		}
	}
}

// nested emits a statement used as a loop or branch body. An empty body
// becomes a bare semicolon so the surrounding construct stays valid.
func (e *standard) nested(w *writer, s ast.Stmt) {
	if _, ok := s.(*ast.EmptyStmt); ok {
		w.byteTok(';')
		return
	}
	e.stmt(w, s)
}

func (e *standard) ifStmt(w *writer, s *ast.IfStmt) {
	w.token("if")
	w.byteTok('(')
	e.expr(w, s.Cond, precComma)
	w.byteTok(')')

	then := s.Then
	braced := s.Else != nil && endsWithDanglingIf(then)
	if braced {
		// brace the branch so the else binds to this if
		if block, ok := then.(*ast.BlockStmt); ok {
			e.blockBody(w, block.Body)
		} else {
			e.blockBody(w, []ast.Stmt{then})
		}
	} else {
		e.nested(w, then)
	}

	if s.Else == nil {
		return
	}
	if !braced {
		e.terminate(w, then)
	}
	w.token("else")
	e.nested(w, s.Else)
}

func endsWithDanglingIf(s ast.Stmt) bool {
	switch s := s.(type) {
	case *ast.IfStmt:
		if s.Else == nil {
			return true
		}
		return endsWithDanglingIf(s.Else)
	case *ast.ForStmt:
		return endsWithDanglingIf(s.Body)
	case *ast.ForInStmt:
		return endsWithDanglingIf(s.Body)
	case *ast.WhileStmt:
		return endsWithDanglingIf(s.Body)
	}
	return false
}

func (e *standard) function(w *writer, name string, params []string, body []ast.Stmt) {
	w.token("function")
	if name != "" {
		w.token(name)
	}
	w.byteTok('(')
	for i, p := range params {
		if i > 0 {
			w.byteTok(',')
		}
		w.token(p)
	}
	w.byteTok(')')
	e.blockBody(w, body)
}

// startsWithBraceOrFunction reports whether the expression's leftmost
// token would be `{` or `function`, which the statement grammar would
// misparse without wrapping parens.
func startsWithBraceOrFunction(x ast.Expr) bool {
	for {
		switch v := x.(type) {
		case *ast.ObjectLit, *ast.FuncLit:
			return true
		case *ast.Assign:
			x = v.L
		case *ast.Binary:
			x = v.L
		case *ast.Cond:
			x = v.Test
		case *ast.Seq:
			x = v.Exprs[0]
		case *ast.Call:
			x = v.Callee
		case *ast.Member:
			x = v.X
		case *ast.Index:
			x = v.X
		case *ast.Unary:
			if !v.Postfix {
				return false
			}
			x = v.X
		default:
			return false
		}
	}
}
