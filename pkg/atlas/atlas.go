// Package atlas is the embedding façade described in spec §4.10: one
// entry point composing the lexer, parser, binder, checker, and either
// engine behind Eval/EvalFile/CallFunction, the way the teacher's
// internal/interp/runner.Runner composes Environment+TypeSystem+
// Evaluator+Interpreter behind a single constructor.
package atlas

import (
	"io"
	"os"

	"github.com/atlas-lang/atlas/internal/bytecode"
	"github.com/atlas-lang/atlas/internal/checker"
	"github.com/atlas-lang/atlas/internal/config"
	"github.com/atlas-lang/atlas/internal/interp"
	"github.com/atlas-lang/atlas/internal/native"
	"github.com/atlas-lang/atlas/internal/parser"
	"github.com/atlas-lang/atlas/internal/permissions"
	"github.com/atlas-lang/atlas/internal/span"
	"github.com/atlas-lang/atlas/internal/stdlib"
	"github.com/atlas-lang/atlas/internal/symbols"
	"github.com/atlas-lang/atlas/internal/types"
	"github.com/atlas-lang/atlas/internal/value"
	"github.com/google/uuid"
)

// Engine selects which execution backend a Runtime drives; both must
// agree on every observable outcome (spec §4.9 parity contract).
type Engine int

const (
	EngineInterpreter Engine = iota
	EngineVM
)

// Option configures a Runtime at construction time, grounded on the
// teacher's LexerOption functional-options pattern.
type Option func(*Runtime)

// WithStdout routes `print` and other stdout-writing natives to w.
func WithStdout(w io.Writer) Option { return func(r *Runtime) { r.ctx.Stdout = w } }

// WithStderr sets the Stderr writer on the native.Context handed to
// natives; no prelude native writes to it.
func WithStderr(w io.Writer) Option { return func(r *Runtime) { r.ctx.Stderr = w } }

// WithPermissions installs a capability policy (spec §4.8). The
// default is permissions.DenyAll().
func WithPermissions(p permissions.Policy) Option {
	return func(r *Runtime) { r.ctx.Policy = &p }
}

// WithEngine selects the interpreter or the bytecode VM. The default
// is the interpreter.
func WithEngine(e Engine) Option { return func(r *Runtime) { r.engine = e } }

// WithMaxCallDepth overrides the default recursion ceiling
// (value.MaxCallDepth) before AT0105 is raised.
func WithMaxCallDepth(n int) Option { return func(r *Runtime) { r.maxCallDepth = n } }

// WithTraceID overrides the random google/uuid-generated correlation id
// stamped onto every diagnostic raised by a native call (spec §3), for
// embedders that want to tie Atlas diagnostics to their own request id.
func WithTraceID(id string) Option { return func(r *Runtime) { r.ctx.TraceID = id } }

// WithoutDefaultPrelude skips registering internal/stdlib's reference
// prelude, letting an embedder supply its own native surface via
// InjectNative (SPEC_FULL.md §15 escape hatch).
func WithoutDefaultPrelude() Option { return func(r *Runtime) { r.skipPrelude = true } }

// WithConfigFile loads path as an atlas.yaml overlay (SPEC_FULL.md §1)
// and applies MaxCallDepth, DefaultPrelude, Engine, and Permissions onto
// the Runtime. A missing file is silently ignored; a malformed one
// panics at construction time since it reflects a broken embedding, not
// a runtime condition a caller should need to recover from.
func WithConfigFile(path string) Option {
	return func(r *Runtime) {
		f, ok, err := config.Load(path)
		if err != nil {
			panic("atlas: loading config file '" + path + "': " + err.Error())
		}
		if !ok {
			return
		}
		if f.DefaultPrelude != nil && !*f.DefaultPrelude {
			r.skipPrelude = true
		}
		if f.Engine == "vm" {
			r.engine = EngineVM
		}
		policy := permissions.DenyAll()
		applyCapability(&policy.Filesystem, f.Permissions.Filesystem)
		applyCapability(&policy.Network, f.Permissions.Network)
		applyCapability(&policy.Process, f.Permissions.Process)
		applyCapability(&policy.FFI, f.Permissions.FFI)
		applyCapability(&policy.Environment, f.Permissions.Environment)
		applyCapability(&policy.Reflection, f.Permissions.Reflection)
		r.ctx.Policy = &policy
		if f.MaxCallDepth > 0 {
			r.maxCallDepth = f.MaxCallDepth
		}
	}
}

// applyCapability turns a PermissionConfig field into a
// permissions.Capability: an empty list denies, a single "*" entry
// grants everything, any other list is a glob allow-list.
func applyCapability(cap *permissions.Capability, patterns []string) {
	switch {
	case len(patterns) == 0:
		*cap = permissions.Capability{Mode: permissions.Deny}
	case len(patterns) == 1 && patterns[0] == "*":
		*cap = permissions.Capability{Mode: permissions.AllowAll}
	default:
		*cap = permissions.Capability{Mode: permissions.AllowList, Patterns: patterns}
	}
}

// Runtime is a persistent Atlas execution context: symbol table and
// global environment survive across repeated Eval calls, matching
// spec §4.10's REPL-state requirement.
type Runtime struct {
	engine       Engine
	skipPrelude  bool
	maxCallDepth int

	registry *native.Registry
	ctx      *native.Context

	table *symbols.Table

	it *interp.Interpreter
	vm *bytecode.VM
}

// New constructs a Runtime with the default engine (interpreter), deny-all
// permissions, stdout/stderr wired to os.Stdout/os.Stderr, and the
// default prelude registered.
func New(opts ...Option) *Runtime {
	r := &Runtime{
		registry: native.NewRegistry(),
		ctx:      &native.Context{Stdout: os.Stdout, Stderr: os.Stderr, TraceID: uuid.NewString()},
		table:    symbols.NewTable(),
	}
	deny := permissions.DenyAll()
	r.ctx.Policy = &deny

	for _, opt := range opts {
		opt(r)
	}

	if !r.skipPrelude {
		stdlib.Register(r.registry)
	}

	r.it = interp.New(r.registry, r.ctx, r.maxCallDepth)
	r.vm = bytecode.NewVM(r.registry, r.ctx, r.maxCallDepth)
	for _, name := range r.registry.Names() {
		r.bindBuiltin(name)
	}
	return r
}

// InjectNative registers an additional native function at runtime
// (spec §4.7, §4.10), overriding any prelude entry of the same name.
func (r *Runtime) InjectNative(e *native.Entry) {
	r.registry.Register(e)
	r.bindBuiltin(e.Name)
}

// bindBuiltin makes name resolvable both statically (the binder's
// builtin namespace, typed Unknown so the checker defers argument
// validation to the registry's real arity check at the call boundary)
// and at runtime (a KindNative value in both engines' globals).
func (r *Runtime) bindBuiltin(name string) {
	entry, _ := r.registry.Lookup(name)
	r.table.DeclareBuiltin(name, types.Unknown)
	nv := value.NewNative(&value.Native{Name: name, Kind: entry.Kind})
	r.it.DefineGlobal(name, nv)
	r.vm.DefineGlobal(name, nv)
}

// Result is the outcome of compiling/running a program. Eval does not
// populate Value, so it stays the zero Value; Diagnostics holds every
// diagnostic collected up to and including the first stage that failed
// (spec §4.10).
type Result struct {
	Value       value.Value
	Diagnostics span.List
}

// Ok reports whether Diagnostics contains no Error-level entries.
func (r Result) Ok() bool { return !r.Diagnostics.HasErrors() }

// Eval compiles and runs source under fileID, threading diagnostics
// through lexing, parsing, binding, and checking before execution
// (spec §4.2–§4.6).
func (rt *Runtime) Eval(fileID, source string) Result {
	prog, diags := parser.Parse(fileID, source)
	if diags.HasErrors() {
		return Result{Diagnostics: diags}
	}

	binder := symbols.NewBinder(rt.table)
	bindDiags := binder.Bind(prog)
	diags = append(diags, bindDiags...)
	if bindDiags.HasErrors() {
		return Result{Diagnostics: diags}
	}

	chk := checker.New(rt.table)
	checkDiags := chk.CheckProgram(prog)
	diags = append(diags, checkDiags...)
	if checkDiags.HasErrors() {
		return Result{Diagnostics: diags}
	}

	var runDiag *span.Diagnostic
	switch rt.engine {
	case EngineVM:
		compiled := bytecode.Compile(prog, rt.registry.Names())
		runDiag = rt.vm.Run(compiled)
	default:
		runDiag = rt.it.Run(prog)
	}
	if runDiag != nil {
		diags = append(diags, runDiag)
		return Result{Diagnostics: diags}
	}
	return Result{Diagnostics: diags}
}

// EvalFile reads path and evaluates it, using path as the file ID for
// diagnostics.
func (rt *Runtime) EvalFile(path string) Result {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{Diagnostics: span.List{
			span.New(span.ErrRuntimeGeneric).Message("cannot read '" + path + "': " + err.Error()).Build(),
		}}
	}
	return rt.Eval(path, string(data))
}

// CallFunction invokes a previously-declared top-level function by
// name against this Runtime's persistent globals (spec §4.10).
func (rt *Runtime) CallFunction(name string, args ...value.Value) (value.Value, *span.Diagnostic) {
	if rt.engine == EngineVM {
		return rt.vm.CallFunction(name, args)
	}
	return rt.it.CallFunction(name, args)
}
