package ast

import "github.com/atlas-lang/atlas/internal/span"

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Block is a brace-delimited sequence of statements; it always opens
// a fresh lexical scope (spec §4.3).
type Block struct {
	Stmts []Stmt
	Sp    span.Span
}

func (b *Block) Span() span.Span { return b.Sp }
func (b *Block) String() string  { return "{ ... }" }
func (b *Block) stmtNode()       {}

// VarDecl is `let`/`var` name[: Type] = init;
type VarDecl struct {
	Name    string
	Type    TypeRef // nil if no annotation
	Init    Expr
	Mutable bool // true for `var`, false for `let`
	Sp      span.Span
}

func (v *VarDecl) Span() span.Span { return v.Sp }
func (v *VarDecl) String() string  { return "var " + v.Name }
func (v *VarDecl) stmtNode()       {}

// AssignTarget is the left-hand side of an assignment statement.
type AssignTarget interface {
	Node
	assignTargetNode()
}

// NameTarget assigns directly to a bound name.
type NameTarget struct {
	Name string
	Sp   span.Span
}

func (n *NameTarget) Span() span.Span { return n.Sp }
func (n *NameTarget) String() string  { return n.Name }
func (n *NameTarget) assignTargetNode() {}

// IndexTarget assigns to target[Index].
type IndexTarget struct {
	Target Expr
	Index  Expr
	Sp     span.Span
}

func (n *IndexTarget) Span() span.Span { return n.Sp }
func (n *IndexTarget) String() string  { return n.Target.String() + "[...]" }
func (n *IndexTarget) assignTargetNode() {}

// Assign is `target = value;`.
type Assign struct {
	Target AssignTarget
	Value  Expr
	Sp     span.Span
}

func (a *Assign) Span() span.Span { return a.Sp }
func (a *Assign) String() string  { return a.Target.String() + " = ..." }
func (a *Assign) stmtNode()       {}

// CompoundOp enumerates +=, -=, *=, /=, %=.
type CompoundOp string

const (
	OpAddAssign CompoundOp = "+="
	OpSubAssign CompoundOp = "-="
	OpMulAssign CompoundOp = "*="
	OpDivAssign CompoundOp = "/="
	OpModAssign CompoundOp = "%="
)

// CompoundAssign is `target += value;` and friends.
type CompoundAssign struct {
	Target AssignTarget
	Op     CompoundOp
	Value  Expr
	Sp     span.Span
}

func (a *CompoundAssign) Span() span.Span { return a.Sp }
func (a *CompoundAssign) String() string  { return a.Target.String() + " " + string(a.Op) + " ..." }
func (a *CompoundAssign) stmtNode()       {}

// IncDecOp distinguishes ++ from --.
type IncDecOp string

const (
	OpIncrement IncDecOp = "++"
	OpDecrement IncDecOp = "--"
)

// IncDec is `target++;` or `target--;`.
type IncDec struct {
	Target AssignTarget
	Op     IncDecOp
	Sp     span.Span
}

func (i *IncDec) Span() span.Span { return i.Sp }
func (i *IncDec) String() string  { return i.Target.String() + string(i.Op) }
func (i *IncDec) stmtNode()       {}

// If is `if (cond) { ... } else { ... }`; Else may be nil.
type If struct {
	Cond Expr
	Then *Block
	Else Stmt // *Block or *If (else-if chain), nil if absent
	Sp   span.Span
}

func (s *If) Span() span.Span { return s.Sp }
func (s *If) String() string  { return "if (...)" }
func (s *If) stmtNode()       {}

// While is `while (cond) { ... }`.
type While struct {
	Cond Expr
	Body *Block
	Sp   span.Span
}

func (s *While) Span() span.Span { return s.Sp }
func (s *While) String() string  { return "while (...)" }
func (s *While) stmtNode()       {}

// For is `for (init; cond; step) { ... }`. Any clause may be nil.
type For struct {
	Init Stmt
	Cond Expr
	Step Stmt
	Body *Block
	Sp   span.Span
}

func (s *For) Span() span.Span { return s.Sp }
func (s *For) String() string  { return "for (...)" }
func (s *For) stmtNode()       {}

// Return is `return [value];`.
type Return struct {
	Value Expr // nil for a Void return
	Sp    span.Span
}

func (s *Return) Span() span.Span { return s.Sp }
func (s *Return) String() string  { return "return ..." }
func (s *Return) stmtNode()       {}

// Break is `break;`.
type Break struct{ Sp span.Span }

func (s *Break) Span() span.Span { return s.Sp }
func (s *Break) String() string  { return "break" }
func (s *Break) stmtNode()       {}

// Continue is `continue;`.
type Continue struct{ Sp span.Span }

func (s *Continue) Span() span.Span { return s.Sp }
func (s *Continue) String() string  { return "continue" }
func (s *Continue) stmtNode()       {}

// ExprStmt is an expression evaluated for its side effect, e.g. a
// bare call `print(x);`.
type ExprStmt struct {
	Expr Expr
	Sp   span.Span
}

func (s *ExprStmt) Span() span.Span { return s.Sp }
func (s *ExprStmt) String() string  { return s.Expr.String() }
func (s *ExprStmt) stmtNode()       {}

// ErrorStmt is a parser error-recovery placeholder: a statement-shaped
// hole left behind after a parse error so that binding/type checking
// can skip it without cascading diagnostics (spec §4.2, §9).
type ErrorStmt struct{ Sp span.Span }

func (s *ErrorStmt) Span() span.Span { return s.Sp }
func (s *ErrorStmt) String() string  { return "<error>" }
func (s *ErrorStmt) stmtNode()       {}
