package ast

import (
	"squish/internal/source"
	"squish/internal/token"
)

// Ident is a name reference.
type Ident struct {
	Name string
	Loc  source.Span
}

// NumberLit is a numeric literal. Raw preserves the source spelling (the
// emitter renders the shortest equivalent form); Value is the parsed
// decimal value, NaN-free for hex literals too.
type NumberLit struct {
	Raw   string
	Value float64
	Loc   source.Span
}

// StringLit is a string literal. Value is the decoded text.
type StringLit struct {
	Value string
	Loc   source.Span
}

// BoolLit is `true` or `false`.
type BoolLit struct {
	Value bool
	Loc   source.Span
}

// NullLit is `null`.
type NullLit struct {
	Loc source.Span
}

// ThisLit is `this`.
type ThisLit struct {
	Loc source.Span
}

// ArrayLit is `[a,b,...]`.
type ArrayLit struct {
	Elems []Expr
	Loc   source.Span
}

// Property is one key:value pair of an object literal. Key keeps the raw
// spelling (identifier, string, or number).
type Property struct {
	Key   string
	IsStr bool // key was written as a string literal
	Value Expr
}

// ObjectLit is `{k:v,...}`.
type ObjectLit struct {
	Props []Property
	Loc   source.Span
}

// FuncLit is a function expression, possibly named.
type FuncLit struct {
	Name   string // "" for anonymous
	Params []string
	Body   []Stmt
	Loc    source.Span
}

// Unary is a prefix or postfix unary operation.
type Unary struct {
	Op      token.Kind
	X       Expr
	Postfix bool // x++ / x--
	Loc     source.Span
}

// Binary is an infix operation, including `in` and `instanceof`.
type Binary struct {
	Op   token.Kind
	L, R Expr
	Loc  source.Span
}

// Assign is `l op r` for = and the compound assignment operators.
type Assign struct {
	Op   token.Kind
	L, R Expr
	Loc  source.Span
}

// Cond is `test?then:alt`.
type Cond struct {
	Test, Then, Alt Expr
	Loc             source.Span
}

// Call is `callee(args)`.
type Call struct {
	Callee Expr
	Args   []Expr
	Loc    source.Span
}

// New is `new callee(args)`; Args is nil when the argument list is absent.
type New struct {
	Callee Expr
	Args   []Expr
	Loc    source.Span
}

// Member is `x.name`.
type Member struct {
	X    Expr
	Name string
	Loc  source.Span
}

// Index is `x[idx]`.
type Index struct {
	X, Idx Expr
	Loc    source.Span
}

// Seq is the comma operator `a,b,...`.
type Seq struct {
	Exprs []Expr
	Loc   source.Span
}

func (e *Ident) Span() source.Span     { return e.Loc }
func (e *NumberLit) Span() source.Span { return e.Loc }
func (e *StringLit) Span() source.Span { return e.Loc }
func (e *BoolLit) Span() source.Span   { return e.Loc }
func (e *NullLit) Span() source.Span   { return e.Loc }
func (e *ThisLit) Span() source.Span   { return e.Loc }
func (e *ArrayLit) Span() source.Span  { return e.Loc }
func (e *ObjectLit) Span() source.Span { return e.Loc }
func (e *FuncLit) Span() source.Span   { return e.Loc }
func (e *Unary) Span() source.Span     { return e.Loc }
func (e *Binary) Span() source.Span    { return e.Loc }
func (e *Assign) Span() source.Span    { return e.Loc }
func (e *Cond) Span() source.Span      { return e.Loc }
func (e *Call) Span() source.Span      { return e.Loc }
func (e *New) Span() source.Span       { return e.Loc }
func (e *Member) Span() source.Span    { return e.Loc }
func (e *Index) Span() source.Span     { return e.Loc }
func (e *Seq) Span() source.Span       { return e.Loc }

func (*Ident) exprNode()     {}
func (*NumberLit) exprNode() {}
func (*StringLit) exprNode() {}
func (*BoolLit) exprNode()   {}
func (*NullLit) exprNode()   {}
func (*ThisLit) exprNode()   {}
func (*ArrayLit) exprNode()  {}
func (*ObjectLit) exprNode() {}
func (*FuncLit) exprNode()   {}
func (*Unary) exprNode()     {}
func (*Binary) exprNode()    {}
func (*Assign) exprNode()    {}
func (*Cond) exprNode()      {}
func (*Call) exprNode()      {}
func (*New) exprNode()       {}
func (*Member) exprNode()    {}
func (*Index) exprNode()     {}
func (*Seq) exprNode()       {}
