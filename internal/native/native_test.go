package native

import (
	"testing"

	"github.com/atlas-lang/atlas/internal/permissions"
	"github.com/atlas-lang/atlas/internal/span"
	"github.com/atlas-lang/atlas/internal/value"
)

func TestRegisterAndLookup(t *testing.T) {
	r := NewRegistry()
	entry := &Entry{Name: "double", Arity: 1, Kind: "pure", Fn: func(ctx *Context, args []value.Value) (value.Value, *span.Diagnostic) {
		return value.Number(args[0].Data.(float64) * 2), nil
	}}
	r.Register(entry)

	got, ok := r.Lookup("double")
	if !ok || got != entry {
		t.Fatalf("expected to find the registered entry")
	}
	if _, ok := r.Lookup("missing"); ok {
		t.Fatal("expected lookup of an unregistered name to fail")
	}
}

func TestRegisterOverwritesSameName(t *testing.T) {
	r := NewRegistry()
	r.Register(&Entry{Name: "f", Arity: 0, Kind: "pure", Fn: func(ctx *Context, args []value.Value) (value.Value, *span.Diagnostic) {
		return value.Number(1), nil
	}})
	r.Register(&Entry{Name: "f", Arity: 0, Kind: "pure", Fn: func(ctx *Context, args []value.Value) (value.Value, *span.Diagnostic) {
		return value.Number(2), nil
	}})
	e, _ := r.Lookup("f")
	v, _ := e.Fn(&Context{}, nil)
	if v.Data.(float64) != 2 {
		t.Fatalf("expected the later registration to win, got %v", v)
	}
}

func TestCallArityMismatch(t *testing.T) {
	r := NewRegistry()
	e := &Entry{Name: "f", Arity: 2, Kind: "pure", Fn: func(ctx *Context, args []value.Value) (value.Value, *span.Diagnostic) {
		return value.Null, nil
	}}
	_, diag := r.Call(&Context{}, e, []value.Value{value.Number(1)}, "")
	if diag == nil {
		t.Fatal("expected an arity-mismatch diagnostic")
	}
	if diag.Code != span.ErrNativeWrongType {
		t.Errorf("Code = %v, want %v (AT0001 is the static type-error code, not a runtime native diagnostic)", diag.Code, span.ErrNativeWrongType)
	}
}

func TestCallVariadicSkipsArityCheck(t *testing.T) {
	r := NewRegistry()
	called := false
	e := &Entry{Name: "f", Arity: -1, Kind: "pure", Fn: func(ctx *Context, args []value.Value) (value.Value, *span.Diagnostic) {
		called = true
		return value.Number(float64(len(args))), nil
	}}
	_, diag := r.Call(&Context{}, e, []value.Value{value.Number(1), value.Number(2), value.Number(3)}, "")
	if diag != nil {
		t.Fatalf("unexpected diagnostic: %v", diag)
	}
	if !called {
		t.Fatal("expected the variadic function to be invoked")
	}
}

func TestCallConsultsPolicyBeforeInvoking(t *testing.T) {
	r := NewRegistry()
	invoked := false
	policy := permissions.DenyAll()
	e := &Entry{Name: "readFile", Arity: 1, Kind: "fs", Fn: func(ctx *Context, args []value.Value) (value.Value, *span.Diagnostic) {
		invoked = true
		return value.Null, nil
	}}
	_, diag := r.Call(&Context{Policy: &policy}, e, []value.Value{value.String("/etc/passwd")}, "/etc/passwd")
	if diag == nil {
		t.Fatal("expected a permission-denied diagnostic")
	}
	if invoked {
		t.Fatal("the native function must not run once permission is denied")
	}
}

func TestCallStampsTraceID(t *testing.T) {
	r := NewRegistry()
	e := &Entry{Name: "boom", Arity: 0, Kind: "pure", Fn: func(ctx *Context, args []value.Value) (value.Value, *span.Diagnostic) {
		return value.Null, span.New(span.ErrTypeMismatch).Message("boom").Build()
	}}
	_, diag := r.Call(&Context{TraceID: "trace-123"}, e, nil, "")
	if diag == nil {
		t.Fatal("expected a diagnostic")
	}
	if diag.TraceID != "trace-123" {
		t.Errorf("TraceID = %q, want trace-123", diag.TraceID)
	}
}

func TestCallDoesNotStampWithoutTraceID(t *testing.T) {
	r := NewRegistry()
	e := &Entry{Name: "boom", Arity: 0, Kind: "pure", Fn: func(ctx *Context, args []value.Value) (value.Value, *span.Diagnostic) {
		return value.Null, span.New(span.ErrTypeMismatch).Message("boom").Build()
	}}
	_, diag := r.Call(&Context{}, e, nil, "")
	if diag.TraceID != "" {
		t.Errorf("expected empty TraceID, got %q", diag.TraceID)
	}
}
