// Package ast defines the script syntax tree the parser builds and the
// emitters walk. Nodes are plain immutable-by-convention structs carrying
// the source span they cover; every tree is walked exactly once per run,
// so there is no arena or id indirection.
package ast

import (
	"squish/internal/source"
)

// Node is implemented by every syntax tree node.
type Node interface {
	Span() source.Span
}

// Stmt is implemented by statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is implemented by expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Program is the root of a parsed script.
type Program struct {
	Body []Stmt
	Loc  source.Span
}

func (p *Program) Span() source.Span { return p.Loc }

// ---- statements ----

// VarDecl is one name[=init] entry of a var statement.
type VarDecl struct {
	Name string
	Init Expr // nil when the declaration has no initializer
	Loc  source.Span
}

// VarStmt is `var a=1,b;`.
type VarStmt struct {
	Decls []VarDecl
	Loc   source.Span
}

// FuncDecl is a top-level or nested `function name(params){}` declaration.
type FuncDecl struct {
	Name   string
	Params []string
	Body   []Stmt
	Loc    source.Span
}

// ReturnStmt is `return [expr];`.
type ReturnStmt struct {
	Arg Expr // nil for a bare return
	Loc source.Span
}

// IfStmt is `if(cond)then[else alt]`.
type IfStmt struct {
	Cond Expr
	Then Stmt
	Else Stmt // nil when absent
	Loc  source.Span
}

// ForStmt is the three-clause `for(init;cond;post)body` form. Init is
// either a *VarStmt or an *ExprStmt; any clause may be nil.
type ForStmt struct {
	Init Stmt
	Cond Expr
	Post Expr
	Body Stmt
	Loc  source.Span
}

// ForInStmt is `for(left in right)body`. Left is a *VarStmt with a single
// declaration or an *ExprStmt.
type ForInStmt struct {
	Left  Stmt
	Right Expr
	Body  Stmt
	Loc   source.Span
}

// WhileStmt is `while(cond)body`.
type WhileStmt struct {
	Cond Expr
	Body Stmt
	Loc  source.Span
}

// DoWhileStmt is `do body while(cond);`.
type DoWhileStmt struct {
	Body Stmt
	Cond Expr
	Loc  source.Span
}

// BlockStmt is `{...}`.
type BlockStmt struct {
	Body []Stmt
	Loc  source.Span
}

// ExprStmt wraps an expression used as a statement.
type ExprStmt struct {
	X   Expr
	Loc source.Span
}

// EmptyStmt is a lone `;`.
type EmptyStmt struct {
	Loc source.Span
}

// BreakStmt is `break;`.
type BreakStmt struct {
	Loc source.Span
}

// ContinueStmt is `continue;`.
type ContinueStmt struct {
	Loc source.Span
}

// ThrowStmt is `throw expr;`.
type ThrowStmt struct {
	Arg Expr
	Loc source.Span
}

func (s *VarStmt) Span() source.Span      { return s.Loc }
func (s *FuncDecl) Span() source.Span     { return s.Loc }
func (s *ReturnStmt) Span() source.Span   { return s.Loc }
func (s *IfStmt) Span() source.Span       { return s.Loc }
func (s *ForStmt) Span() source.Span      { return s.Loc }
func (s *ForInStmt) Span() source.Span    { return s.Loc }
func (s *WhileStmt) Span() source.Span    { return s.Loc }
func (s *DoWhileStmt) Span() source.Span  { return s.Loc }
func (s *BlockStmt) Span() source.Span    { return s.Loc }
func (s *ExprStmt) Span() source.Span     { return s.Loc }
func (s *EmptyStmt) Span() source.Span    { return s.Loc }
func (s *BreakStmt) Span() source.Span    { return s.Loc }
func (s *ContinueStmt) Span() source.Span { return s.Loc }
func (s *ThrowStmt) Span() source.Span    { return s.Loc }

func (*VarStmt) stmtNode()      {}
func (*FuncDecl) stmtNode()     {}
func (*ReturnStmt) stmtNode()   {}
func (*IfStmt) stmtNode()       {}
func (*ForStmt) stmtNode()      {}
func (*ForInStmt) stmtNode()    {}
func (*WhileStmt) stmtNode()    {}
func (*DoWhileStmt) stmtNode()  {}
func (*BlockStmt) stmtNode()    {}
func (*ExprStmt) stmtNode()     {}
func (*EmptyStmt) stmtNode()    {}
func (*BreakStmt) stmtNode()    {}
func (*ContinueStmt) stmtNode() {}
func (*ThrowStmt) stmtNode()    {}
