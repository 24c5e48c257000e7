// Package ast defines the immutable syntax tree produced by the
// parser. Every node carries a span.Span; nodes are never mutated
// after construction by the binder or type checker, which instead
// attach resolution metadata into side tables keyed by node identity.
package ast

import "github.com/atlas-lang/atlas/internal/span"

// Node is implemented by every AST node.
type Node interface {
	Span() span.Span
	String() string
}

// Program is the root of a compilation unit.
type Program struct {
	Items []Item
	Sp    span.Span
}

func (p *Program) Span() span.Span { return p.Sp }

// Item is a top-level member of a Program: either a function
// declaration or a statement (so top-level `let`/`print(...)` are
// legal, matching a scripting-language surface).
type Item interface {
	Node
	itemNode()
}

// Param is a single typed function parameter.
type Param struct {
	Name string
	Type TypeRef
	Sp   span.Span
}

// FunctionDecl declares a named, typed top-level function.
type FunctionDecl struct {
	Name       string
	Params     []Param
	ReturnType TypeRef
	Body       *Block
	DocComment string
	Sp         span.Span
}

func (f *FunctionDecl) Span() span.Span { return f.Sp }
func (f *FunctionDecl) String() string  { return "fn " + f.Name }
func (f *FunctionDecl) itemNode()       {}

// StatementItem wraps a top-level Stmt so it can appear directly in
// Program.Items without a surrounding function.
type StatementItem struct {
	Stmt Stmt
}

func (s *StatementItem) Span() span.Span { return s.Stmt.Span() }
func (s *StatementItem) String() string  { return s.Stmt.String() }
func (s *StatementItem) itemNode()       {}

// TypeRef is a syntactic type annotation, resolved to a types.Type by
// the binder via resolve_type_ref.
type TypeRef interface {
	Node
	typeRefNode()
}

// NamedType is a bare type name, e.g. "number" or an unresolved name
// (which becomes types.Unknown).
type NamedType struct {
	Name string
	Sp   span.Span
}

func (t *NamedType) Span() span.Span { return t.Sp }
func (t *NamedType) String() string  { return t.Name }
func (t *NamedType) typeRefNode()    {}

// ArrayType is `T[]`.
type ArrayType struct {
	Elem TypeRef
	Sp   span.Span
}

func (t *ArrayType) Span() span.Span { return t.Sp }
func (t *ArrayType) String() string  { return t.Elem.String() + "[]" }
func (t *ArrayType) typeRefNode()    {}
