// Package symbols implements the two-pass binder described in spec
// §4.3: pass 1 hoists top-level function declarations into a separate
// function namespace, pass 2 walks the program resolving identifiers
// against a stack of lexical scopes plus that namespace.
//
// Grounded on the teacher's internal/semantic.SymbolTable scope-stack
// design, narrowed from class/unit-aware scoping to Atlas's flat
// global + function + block scoping.
package symbols

import (
	"github.com/atlas-lang/atlas/internal/span"
	"github.com/atlas-lang/atlas/internal/types"
)

// Kind classifies what declared a Symbol.
type Kind int

const (
	KindVariable Kind = iota
	KindParameter
	KindFunction
	KindBuiltin
)

// Symbol is a single declaration record.
type Symbol struct {
	Name    string
	Type    types.Type
	Mutable bool
	Kind    Kind
	Span    span.Span
}

// Scope is one level of the lexical scope stack.
type Scope struct {
	names map[string]*Symbol
}

func newScope() *Scope {
	return &Scope{names: map[string]*Symbol{}}
}

// Table is the full binder-time symbol environment: a stack of lexical
// scopes (index 0 is global) plus a separate top-level function
// namespace that mutual recursion resolves against regardless of
// declaration order (spec §4.3, §9).
type Table struct {
	scopes    []*Scope
	functions map[string]*Symbol
	builtins  map[string]*Symbol
}

// NewTable creates a Table seeded with the global scope and an empty
// function namespace. Prelude names should be registered via
// DeclareBuiltin before binding begins.
func NewTable() *Table {
	return &Table{
		scopes:    []*Scope{newScope()},
		functions: map[string]*Symbol{},
		builtins:  map[string]*Symbol{},
	}
}

// PushScope opens a fresh lexical scope (function body, block, loop
// body, if/else arm — spec §4.3).
func (t *Table) PushScope() {
	t.scopes = append(t.scopes, newScope())
}

// PopScope closes the innermost scope. Popping leaves the stack depth
// unchanged across a matched Push/Pop pair (spec §8 invariant).
func (t *Table) PopScope() {
	if len(t.scopes) > 1 {
		t.scopes = t.scopes[:len(t.scopes)-1]
	}
}

// Depth reports the current scope-stack depth, for round-trip tests.
func (t *Table) Depth() int { return len(t.scopes) }

func (t *Table) innermost() *Scope { return t.scopes[len(t.scopes)-1] }
func (t *Table) isGlobal() bool    { return len(t.scopes) == 1 }

// DeclareBuiltin registers a prelude name, always resolvable at top
// level without import (spec §8).
func (t *Table) DeclareBuiltin(name string, typ types.Type) {
	t.builtins[name] = &Symbol{Name: name, Type: typ, Kind: KindBuiltin}
}

// DeclareFunction registers name into the hoisted function namespace.
// ok is false if name was already present (AT0003 duplicate
// declaration — spec §4.3); the first declaration wins and remains
// the one later calls bind to.
func (t *Table) DeclareFunction(sym *Symbol) (existing *Symbol, ok bool) {
	if prior, dup := t.functions[sym.Name]; dup {
		return prior, false
	}
	t.functions[sym.Name] = sym
	return nil, true
}

// Declare adds sym to the innermost scope. It reports AT0003-worthy
// duplication only against the *innermost* scope; shadowing an outer
// scope is permitted (spec §4.3). Shadowing a builtin is rejected only
// when declaring directly into the global scope.
func (t *Table) Declare(sym *Symbol) (existing *Symbol, ok bool) {
	scope := t.innermost()
	if prior, dup := scope.names[sym.Name]; dup {
		return prior, false
	}
	if t.isGlobal() {
		if prior, dup := t.builtins[sym.Name]; dup {
			return prior, false
		}
	}
	scope.names[sym.Name] = sym
	return nil, true
}

// Resolve searches scopes innermost-to-outermost, then the function
// namespace, then builtins (spec §4.3).
func (t *Table) Resolve(name string) (*Symbol, bool) {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if sym, ok := t.scopes[i].names[name]; ok {
			return sym, true
		}
	}
	if sym, ok := t.functions[name]; ok {
		return sym, true
	}
	if sym, ok := t.builtins[name]; ok {
		return sym, true
	}
	return nil, false
}

// ResolveFunction looks up name only in the hoisted function
// namespace, ignoring local and builtin scopes.
func (t *Table) ResolveFunction(name string) (*Symbol, bool) {
	sym, ok := t.functions[name]
	return sym, ok
}

// Functions returns every hoisted top-level function symbol, in
// insertion order is not guaranteed (map iteration); callers that need
// determinism should sort on Symbol.Span.
func (t *Table) Functions() map[string]*Symbol { return t.functions }
