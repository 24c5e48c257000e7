// Package interp implements the tree-walking interpreter described in
// spec §4.6, sharing its Value model, Environment, and native registry
// with the bytecode VM in internal/bytecode so both engines produce
// identical observable behavior (spec §4.9 parity contract).
//
// Grounded on the teacher's internal/interp/runner.Runner facade
// wiring (Environment + Evaluator composed behind one entry point) and
// its tree-walking Evaluator dispatch shape, narrowed to Atlas's closed
// AST.
package interp

import (
	"github.com/atlas-lang/atlas/internal/ast"
	"github.com/atlas-lang/atlas/internal/native"
	"github.com/atlas-lang/atlas/internal/span"
	"github.com/atlas-lang/atlas/internal/value"
)

// controlKind distinguishes normal fallthrough from break/continue/
// return propagation up the statement-execution recursion (spec §4.6).
type controlKind int

const (
	ctrlNormal controlKind = iota
	ctrlBreak
	ctrlContinue
	ctrlReturn
)

type control struct {
	kind  controlKind
	value value.Value
}

var normalControl = control{kind: ctrlNormal}

// Interpreter executes a bound, type-checked *ast.Program directly
// against the AST.
type Interpreter struct {
	registry  *native.Registry
	globals   *value.Env
	callStack *value.CallStack
	ctx       *native.Context
	functions map[string]*ast.FunctionDecl
}

// New creates an Interpreter sharing registry and ctx with whatever
// other engine (or façade) constructed them, so a single Runtime can
// swap between the interpreter and the VM without re-registering
// natives (spec §4.9).
func New(registry *native.Registry, ctx *native.Context, maxCallDepth int) *Interpreter {
	it := &Interpreter{
		registry:  registry,
		globals:   value.NewEnv(),
		callStack: value.NewCallStack(maxCallDepth),
		ctx:       ctx,
		functions: map[string]*ast.FunctionDecl{},
	}
	ctx.Caller = it
	return it
}

// Run executes every item in prog against the Interpreter's persistent
// global environment, so REPL-style repeated calls see prior globals
// and function declarations (spec §4.10).
func (it *Interpreter) Run(prog *ast.Program) *span.Diagnostic {
	for _, item := range prog.Items {
		if fn, ok := item.(*ast.FunctionDecl); ok {
			it.functions[fn.Name] = fn
			it.globals.Define(fn.Name, value.NewFunction(&value.Function{
				Name: fn.Name, Params: paramNames(fn.Params), Body: fn.Body, Closure: it.globals,
			}))
		}
	}
	for _, item := range prog.Items {
		if si, ok := item.(*ast.StatementItem); ok {
			ctrl, diag := it.execStmt(si.Stmt, it.globals)
			if diag != nil {
				return diag
			}
			if ctrl.kind == ctrlReturn {
				return nil // a bare top-level return ends the script
			}
		}
	}
	return nil
}

// DefineGlobal binds name to v in the persistent global environment,
// used by pkg/atlas to make every registered native callable by name
// (natives live in the native.Registry, but identifier lookup at
// runtime goes through the Env chain like any other value).
func (it *Interpreter) DefineGlobal(name string, v value.Value) { it.globals.Define(name, v) }

// CallFunction invokes a top-level function by name, for
// pkg/atlas.Runtime.CallFunction (spec §4.10).
func (it *Interpreter) CallFunction(name string, args []value.Value) (value.Value, *span.Diagnostic) {
	fnVal, ok := it.globals.Get(name)
	if !ok {
		return value.Null, span.New(span.ErrUnknownSymbol).Message("unknown function '" + name + "'").Build()
	}
	return it.CallValue(fnVal, args)
}

// CallValue implements native.Caller so intrinsics (Array.forEach and
// friends) can invoke a user-supplied callback through the same call
// convention as a direct source-level call (spec §4.7, §9).
func (it *Interpreter) CallValue(fn value.Value, args []value.Value) (value.Value, *span.Diagnostic) {
	switch fn.Kind {
	case value.KindFunction:
		return it.callUserFunction(fn.Data.(*value.Function), args)
	case value.KindNative:
		n := fn.Data.(*value.Native)
		entry, ok := it.registry.Lookup(n.Name)
		if !ok {
			return value.Null, span.New(span.ErrUnknownSymbol).Message("unknown native '" + n.Name + "'").Build()
		}
		return it.registry.Call(it.ctx, entry, args, resourceArg(args))
	default:
		return value.Null, span.New(span.ErrTypeMismatch).Message("value is not callable").Build()
	}
}

func resourceArg(args []value.Value) string {
	if len(args) > 0 && args[0].Kind == value.KindString {
		return args[0].Data.(string)
	}
	return ""
}

func (it *Interpreter) callUserFunction(fn *value.Function, args []value.Value) (value.Value, *span.Diagnostic) {
	if err := it.callStack.Push(fn.Name); err != nil {
		return value.Null, span.New(span.ErrStackOverflow).Message(err.Error()).Build()
	}
	defer it.callStack.Pop()

	frame := fn.Closure.Child()
	for i, p := range fn.Params {
		if i < len(args) {
			frame.Define(p, args[i])
		} else {
			frame.Define(p, value.Null)
		}
	}
	body := fn.Body.(*ast.Block)
	ctrl, diag := it.execBlock(body, frame)
	if diag != nil {
		return value.Null, diag
	}
	if ctrl.kind == ctrlReturn {
		return ctrl.value, nil
	}
	return value.Null, nil
}

func paramNames(params []ast.Param) []string {
	out := make([]string, len(params))
	for i, p := range params {
		out[i] = p.Name
	}
	return out
}
