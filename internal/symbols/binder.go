package symbols

import (
	"fmt"

	"github.com/atlas-lang/atlas/internal/ast"
	"github.com/atlas-lang/atlas/internal/span"
	"github.com/atlas-lang/atlas/internal/types"
)

// Binder performs the two-pass resolution described in spec §4.3. It
// does not evaluate anything; it only validates names and records
// resolution metadata (the declaration span written back onto each
// Identifier use).
type Binder struct {
	table *Table
	diags span.List
}

// NewBinder creates a Binder over an existing Table (typically one
// pre-seeded with prelude builtins via DeclareBuiltin).
func NewBinder(table *Table) *Binder {
	return &Binder{table: table}
}

// Bind runs both passes over prog and returns the accumulated
// diagnostics. Binding is resumable across REPL turns: pass the same
// Table in on the next call and previously bound globals remain
// visible (spec §4.10).
func (b *Binder) Bind(prog *ast.Program) span.List {
	b.hoistPass(prog)
	b.bindPass(prog)
	return b.diags
}

func (b *Binder) errorf(code span.Code, sp span.Span, label string, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	bld := span.New(code).Message(msg).At(sp)
	if label != "" {
		bld = bld.Label(label)
	}
	b.diags = append(b.diags, bld.Build())
}

// hoistPass registers every top-level function declaration into the
// function namespace before any body is walked, so mutual recursion
// needs no forward declarations (spec §4.3, §9).
func (b *Binder) hoistPass(prog *ast.Program) {
	for _, item := range prog.Items {
		fn, ok := item.(*ast.FunctionDecl)
		if !ok {
			continue
		}
		paramTypes := make([]types.Type, len(fn.Params))
		for i, p := range fn.Params {
			paramTypes[i] = types.ResolveTypeRef(p.Type)
		}
		retType := types.ResolveTypeRef(fn.ReturnType)
		sym := &Symbol{
			Name: fn.Name,
			Type: types.NewFunction(paramTypes, retType),
			Kind: KindFunction,
			Span: fn.Sp,
		}
		if prior, ok := b.table.DeclareFunction(sym); !ok {
			b.errorf(span.ErrDuplicateSymbol, fn.Sp, fmt.Sprintf("'%s' redefined here", fn.Name),
				"function '%s' is already declared", fn.Name)
			_ = prior
		}
	}
}

// bindPass walks every item, declaring/referencing symbols.
func (b *Binder) bindPass(prog *ast.Program) {
	for _, item := range prog.Items {
		switch it := item.(type) {
		case *ast.FunctionDecl:
			b.bindFunction(it)
		case *ast.StatementItem:
			b.bindStmt(it.Stmt)
		}
	}
}

func (b *Binder) bindFunction(fn *ast.FunctionDecl) {
	b.table.PushScope()
	defer b.table.PopScope()

	for _, p := range fn.Params {
		sym := &Symbol{Name: p.Name, Type: types.ResolveTypeRef(p.Type), Mutable: true, Kind: KindParameter, Span: p.Sp}
		if _, ok := b.table.Declare(sym); !ok {
			b.errorf(span.ErrDuplicateSymbol, p.Sp, "", "parameter '%s' is already declared", p.Name)
		}
	}
	b.bindBlock(fn.Body)
}

func (b *Binder) bindBlock(block *ast.Block) {
	b.table.PushScope()
	defer b.table.PopScope()
	for _, s := range block.Stmts {
		b.bindStmt(s)
	}
}

func (b *Binder) bindStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		if s.Init != nil {
			b.bindExpr(s.Init)
		}
		typ := types.ResolveTypeRef(s.Type)
		if s.Type == nil {
			typ = types.Unknown // inferred by the type checker from the initializer
		}
		sym := &Symbol{Name: s.Name, Type: typ, Mutable: s.Mutable, Kind: KindVariable, Span: s.Sp}
		if _, ok := b.table.Declare(sym); !ok {
			b.errorf(span.ErrDuplicateSymbol, s.Sp, fmt.Sprintf("'%s' redefined here", s.Name),
				"'%s' is already declared in this scope", s.Name)
		}
	case *ast.Assign:
		b.bindAssignTarget(s.Target)
		b.bindExpr(s.Value)
	case *ast.CompoundAssign:
		b.bindAssignTarget(s.Target)
		b.bindExpr(s.Value)
	case *ast.IncDec:
		b.bindAssignTarget(s.Target)
	case *ast.If:
		b.bindExpr(s.Cond)
		b.bindBlock(s.Then)
		if s.Else != nil {
			b.bindStmt(s.Else)
		}
	case *ast.While:
		b.bindExpr(s.Cond)
		b.bindBlock(s.Body)
	case *ast.For:
		b.table.PushScope()
		defer b.table.PopScope()
		if s.Init != nil {
			b.bindStmt(s.Init)
		}
		if s.Cond != nil {
			b.bindExpr(s.Cond)
		}
		if s.Step != nil {
			b.bindStmt(s.Step)
		}
		b.bindBlock(s.Body)
	case *ast.Return:
		if s.Value != nil {
			b.bindExpr(s.Value)
		}
	case *ast.ExprStmt:
		b.bindExpr(s.Expr)
	case *ast.Block:
		b.bindBlock(s)
	case *ast.Break, *ast.Continue, *ast.ErrorStmt, nil:
		// nothing to resolve
	}
}

func (b *Binder) bindAssignTarget(t ast.AssignTarget) {
	switch target := t.(type) {
	case *ast.NameTarget:
		if _, ok := b.table.Resolve(target.Name); !ok {
			b.errorf(span.ErrUnknownSymbol, target.Sp, fmt.Sprintf("Unknown symbol '%s'", target.Name),
				"unknown symbol '%s'", target.Name)
		}
	case *ast.IndexTarget:
		b.bindExpr(target.Target)
		b.bindExpr(target.Index)
	}
}

func (b *Binder) bindExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Identifier:
		sym, ok := b.table.Resolve(e.Name)
		if !ok {
			b.errorf(span.ErrUnknownSymbol, e.Sp, fmt.Sprintf("Unknown symbol '%s'", e.Name),
				"unknown symbol '%s'", e.Name)
			return
		}
		e.DeclSpan = sym.Span
	case *ast.Unary:
		b.bindExpr(e.Operand)
	case *ast.Binary:
		b.bindExpr(e.Left)
		b.bindExpr(e.Right)
	case *ast.Call:
		b.bindExpr(e.Callee)
		for _, a := range e.Args {
			b.bindExpr(a)
		}
	case *ast.Index:
		b.bindExpr(e.Target)
		b.bindExpr(e.Idx)
	case *ast.ArrayLiteral:
		for _, el := range e.Elems {
			b.bindExpr(el)
		}
	case *ast.Group:
		b.bindExpr(e.Inner)
	case *ast.Literal, *ast.ErrorExpr, nil:
		// nothing to resolve
	}
}
