// Package native implements the native-function registry described in
// spec §4.7: fixed-arity Go functions registered under a name, callable
// identically from the tree-walking interpreter and the bytecode VM.
//
// Grounded on the teacher's examples/ffi Engine.RegisterFunction
// pattern (a name/arity/Go-closure triple recorded in a map and
// dispatched by the call opcode/AST node alike).
package native

import (
	"fmt"
	"io"

	"github.com/atlas-lang/atlas/internal/permissions"
	"github.com/atlas-lang/atlas/internal/span"
	"github.com/atlas-lang/atlas/internal/value"
)

// Caller is the minimal surface a native function needs to re-enter
// the engine's own call convention — required by intrinsics like
// Array.forEach/map/filter that invoke a user-supplied callback
// (spec §4.7, §9).
type Caller interface {
	CallValue(fn value.Value, args []value.Value) (value.Value, *span.Diagnostic)
}

// Context is threaded through every native call: IO streams, the
// capability policy, and a Caller for re-entrant intrinsics.
type Context struct {
	Stdout  io.Writer
	Stderr  io.Writer
	Policy  *permissions.Policy
	Caller  Caller
	TraceID string
}

// Func is the signature every registered native function implements.
// Errors must be *span.Diagnostic so callers don't need a type switch.
type Func func(ctx *Context, args []value.Value) (value.Value, *span.Diagnostic)

// Entry is one registered native function.
type Entry struct {
	Name  string
	Arity int // -1 means variadic; checked by Call before Fn runs
	Kind  string // capability kind consulted against Context.Policy
	Fn    Func
}

// Registry holds every native function available to a Runtime. The
// same Registry instance is shared by the interpreter and the VM so
// that parity holds by construction (spec §4.9 parity contract).
type Registry struct {
	entries map[string]*Entry
}

func NewRegistry() *Registry { return &Registry{entries: map[string]*Entry{}} }

// Register adds e, overwriting any prior registration under the same
// name — pkg/atlas's InjectNative relies on this to replace a prelude
// entry with an embedder-supplied one.
func (r *Registry) Register(e *Entry) { r.entries[e.Name] = e }

func (r *Registry) Lookup(name string) (*Entry, bool) {
	e, ok := r.entries[name]
	return e, ok
}

func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.entries))
	for n := range r.entries {
		out = append(out, n)
	}
	return out
}

// Call validates arity, checks the capability policy for gated kinds,
// and invokes e.Fn. resource identifies what's being accessed for
// AllowList matching (a file path, URL, env var name); "pure" natives
// pass "" since it's never consulted.
func (r *Registry) Call(ctx *Context, e *Entry, args []value.Value, resource string) (value.Value, *span.Diagnostic) {
	if e.Arity >= 0 && len(args) != e.Arity {
		return value.Null, ctx.stamp(span.New(span.ErrNativeWrongType).
			Message(fmt.Sprintf("'%s' expects %d argument(s), found %d", e.Name, e.Arity, len(args))).Build())
	}
	if ctx.Policy != nil {
		if diag := ctx.Policy.Check(e.Kind, e.Name, resource); diag != nil {
			return value.Null, ctx.stamp(diag)
		}
	}
	v, diag := e.Fn(ctx, args)
	return v, ctx.stamp(diag)
}

// stamp attaches ctx.TraceID to d (spec §3's host-correlation field)
// when both are set, so every diagnostic a native call raises can be
// tied back to the Runtime.Eval invocation that produced it.
func (ctx *Context) stamp(d *span.Diagnostic) *span.Diagnostic {
	if d != nil && ctx.TraceID != "" {
		d.TraceID = ctx.TraceID
	}
	return d
}
