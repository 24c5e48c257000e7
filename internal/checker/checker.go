// Package checker implements the flow-insensitive static type checker
// described in spec §4.4, grounded on the teacher's internal/semantic
// analyze_*.go per-node-kind files, narrowed to Atlas's closed type
// set.
//
// Type mismatches become AT0001 diagnostics but never abort checking:
// once a subexpression's type is Unknown, its parents suppress
// cascading errors (spec §4.4, §9 "error recovery").
package checker

import (
	"fmt"

	"github.com/atlas-lang/atlas/internal/ast"
	"github.com/atlas-lang/atlas/internal/span"
	"github.com/atlas-lang/atlas/internal/symbols"
	"github.com/atlas-lang/atlas/internal/types"
)

// Checker walks a bound AST and assigns a types.Type to every
// expression, recording mismatches as diagnostics.
type Checker struct {
	diags     span.List
	scopes    []map[string]*types.Type
	functions map[string]types.Type
	exprTypes map[ast.Expr]types.Type
	retStack  []types.Type
}

// New creates a Checker seeded with the function signatures hoisted by
// the binder (table.Functions()). Prelude builtins are not seeded; a
// name found in neither scopes nor functions checks as Unknown.
func New(table *symbols.Table) *Checker {
	c := &Checker{
		scopes:    []map[string]*types.Type{{}},
		functions: map[string]types.Type{},
		exprTypes: map[ast.Expr]types.Type{},
	}
	for name, sym := range table.Functions() {
		c.functions[name] = sym.Type
	}
	return c
}

// TypeOf returns the type recorded for expr, or Unknown if expr was
// never visited (it should always have been visited for a checked
// program — spec §8 invariant).
func (c *Checker) TypeOf(expr ast.Expr) types.Type {
	if t, ok := c.exprTypes[expr]; ok {
		return t
	}
	return types.Unknown
}

// Diagnostics returns every AT0001 (and related) diagnostic collected.
func (c *Checker) Diagnostics() span.List { return c.diags }

func (c *Checker) errorf(sp span.Span, label, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	c.diags = append(c.diags, span.New(span.ErrTypeMismatch).Message(msg).At(sp).Label(label).Build())
}

func (c *Checker) pushScope() { c.scopes = append(c.scopes, map[string]*types.Type{}) }
func (c *Checker) popScope()  { c.scopes = c.scopes[:len(c.scopes)-1] }

func (c *Checker) declare(name string, t types.Type) {
	tt := t
	c.scopes[len(c.scopes)-1][name] = &tt
}

func (c *Checker) lookup(name string) (types.Type, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if t, ok := c.scopes[i][name]; ok {
			return *t, true
		}
	}
	if t, ok := c.functions[name]; ok {
		return t, true
	}
	return types.Unknown, false
}

// setType sets the binding's type in the innermost scope that already
// declares it, implementing "propagates inferred types into
// variable-declaration symbols" (spec §4.4) against this checker's own
// scope mirror.
func (c *Checker) setType(name string, t types.Type) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if existing, ok := c.scopes[i][name]; ok {
			*existing = t
			return
		}
	}
}

// CheckProgram type-checks every item and returns the diagnostics.
func (c *Checker) CheckProgram(prog *ast.Program) span.List {
	for _, item := range prog.Items {
		switch it := item.(type) {
		case *ast.FunctionDecl:
			c.checkFunction(it)
		case *ast.StatementItem:
			c.checkStmt(it.Stmt, types.Void)
		}
	}
	return c.diags
}

func (c *Checker) checkFunction(fn *ast.FunctionDecl) {
	c.pushScope()
	defer c.popScope()

	for _, p := range fn.Params {
		c.declare(p.Name, types.ResolveTypeRef(p.Type))
	}
	retType := types.ResolveTypeRef(fn.ReturnType)
	c.retStack = append(c.retStack, retType)
	defer func() { c.retStack = c.retStack[:len(c.retStack)-1] }()

	c.checkBlock(fn.Body)
}

func (c *Checker) checkBlock(block *ast.Block) {
	c.pushScope()
	defer c.popScope()
	for _, s := range block.Stmts {
		retType := types.Void
		if len(c.retStack) > 0 {
			retType = c.retStack[len(c.retStack)-1]
		}
		c.checkStmt(s, retType)
	}
}
