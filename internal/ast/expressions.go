package ast

import (
	"strconv"

	"github.com/atlas-lang/atlas/internal/span"
)

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
}

// LiteralKind tags the payload of a Literal node.
type LiteralKind int

const (
	LitNumber LiteralKind = iota
	LitString
	LitBool
	LitNull
)

// Literal is a number, string, bool, or null constant.
type Literal struct {
	Kind   LiteralKind
	Number float64
	Str    string
	Bool   bool
	Sp     span.Span
}

func (l *Literal) Span() span.Span { return l.Sp }
func (l *Literal) String() string {
	switch l.Kind {
	case LitNumber:
		return strconv.FormatFloat(l.Number, 'g', -1, 64)
	case LitString:
		return strconv.Quote(l.Str)
	case LitBool:
		return strconv.FormatBool(l.Bool)
	default:
		return "null"
	}
}

func (l *Literal) exprNode()       {}

// Identifier is a bound-or-unbound name reference. DeclSpan is filled
// in by the binder once resolution succeeds (spec §3 invariant: "every
// identifier carries its declaration span by the end of binding").
type Identifier struct {
	Name     string
	DeclSpan span.Span
	Sp       span.Span
}

func (i *Identifier) Span() span.Span { return i.Sp }
func (i *Identifier) String() string  { return i.Name }
func (i *Identifier) exprNode()       {}

// UnaryOp enumerates the two unary operators.
type UnaryOp string

const (
	OpNot    UnaryOp = "!"
	OpNegate UnaryOp = "-"
)

// Unary is `!x` or `-x`.
type Unary struct {
	Op      UnaryOp
	Operand Expr
	Sp      span.Span
}

func (u *Unary) Span() span.Span { return u.Sp }
func (u *Unary) String() string  { return string(u.Op) + u.Operand.String() }
func (u *Unary) exprNode()       {}

// BinaryOp enumerates every binary operator in the surface grammar.
type BinaryOp string

const (
	OpAdd          BinaryOp = "+"
	OpSub          BinaryOp = "-"
	OpMul          BinaryOp = "*"
	OpDiv          BinaryOp = "/"
	OpMod          BinaryOp = "%"
	OpEq           BinaryOp = "=="
	OpNe           BinaryOp = "!="
	OpLt           BinaryOp = "<"
	OpLe           BinaryOp = "<="
	OpGt           BinaryOp = ">"
	OpGe           BinaryOp = ">="
	OpLogicalAnd   BinaryOp = "&&"
	OpLogicalOr    BinaryOp = "||"
)

// Binary is `left op right`.
type Binary struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
	Sp    span.Span
}

func (b *Binary) Span() span.Span { return b.Sp }
func (b *Binary) String() string  { return "(" + b.Left.String() + " " + string(b.Op) + " " + b.Right.String() + ")" }
func (b *Binary) exprNode()       {}

// Call is `callee(args...)`.
type Call struct {
	Callee Expr
	Args   []Expr
	Sp     span.Span
}

func (c *Call) Span() span.Span { return c.Sp }
func (c *Call) String() string  { return c.Callee.String() + "(...)" }
func (c *Call) exprNode()       {}

// Index is `target[index]`.
type Index struct {
	Target Expr
	Idx    Expr
	Sp     span.Span
}

func (i *Index) Span() span.Span { return i.Sp }
func (i *Index) String() string  { return i.Target.String() + "[...]" }
func (i *Index) exprNode()       {}

// ArrayLiteral is `[e, e, ...]`.
type ArrayLiteral struct {
	Elems []Expr
	Sp    span.Span
}

func (a *ArrayLiteral) Span() span.Span { return a.Sp }
func (a *ArrayLiteral) String() string  { return "[...]" }
func (a *ArrayLiteral) exprNode()       {}

// Group is a parenthesized expression, kept in the tree so that span
// information and precedence intent survive for tooling.
type Group struct {
	Inner Expr
	Sp    span.Span
}

func (g *Group) Span() span.Span { return g.Sp }
func (g *Group) String() string  { return g.Inner.String() }
func (g *Group) exprNode()       {}

// ErrorExpr is a parser error-recovery placeholder (see ErrorStmt).
type ErrorExpr struct{ Sp span.Span }

func (e *ErrorExpr) Span() span.Span { return e.Sp }
func (e *ErrorExpr) String() string  { return "<error>" }
func (e *ErrorExpr) exprNode()       {}
