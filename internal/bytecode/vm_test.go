package bytecode

import (
	"bytes"
	"testing"

	"github.com/atlas-lang/atlas/internal/native"
	"github.com/atlas-lang/atlas/internal/parser"
	"github.com/atlas-lang/atlas/internal/permissions"
	"github.com/atlas-lang/atlas/internal/span"
	"github.com/atlas-lang/atlas/internal/value"
)

func newTestVM(stdout *bytes.Buffer, maxCallDepth int) (*VM, *native.Registry) {
	reg := native.NewRegistry()
	reg.Register(&native.Entry{Name: "print", Arity: 1, Kind: "pure", Fn: func(ctx *native.Context, args []value.Value) (value.Value, *span.Diagnostic) {
		stdout.WriteString(value.Inspect(args[0]) + "\n")
		return value.Null, nil
	}})
	deny := permissions.TrustAll()
	ctx := &native.Context{Stdout: stdout, Policy: &deny}
	vm := NewVM(reg, ctx, maxCallDepth)
	vm.DefineGlobal("print", value.NewNative(&value.Native{Name: "print", Kind: "pure"}))
	return vm, reg
}

func runVM(t *testing.T, src string) (*VM, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	vm, _ := newTestVM(&out, 0)
	prog, errs := parser.Parse("<test>", src)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	compiled := Compile(prog, []string{"print"})
	if diag := vm.Run(compiled); diag != nil {
		t.Fatalf("unexpected run diagnostic: %v", diag)
	}
	return vm, &out
}

func TestVMArithmetic(t *testing.T) {
	_, out := runVM(t, `print(1 + 2 * 3);`)
	if out.String() != "7\n" {
		t.Errorf("stdout = %q, want %q", out.String(), "7\n")
	}
}

func TestVMStringConcat(t *testing.T) {
	_, out := runVM(t, `print("foo" + "bar");`)
	if out.String() != "foobar\n" {
		t.Errorf("stdout = %q, want %q", out.String(), "foobar\n")
	}
}

func TestVMIfElse(t *testing.T) {
	_, out := runVM(t, `
var x = 5;
if (x > 3) {
    print("big");
} else {
    print("small");
}
`)
	if out.String() != "big\n" {
		t.Errorf("stdout = %q, want %q", out.String(), "big\n")
	}
}

func TestVMWhileLoop(t *testing.T) {
	_, out := runVM(t, `
var i = 0;
var total = 0;
while (i < 5) {
    total = total + i;
    i = i + 1;
}
print(total);
`)
	if out.String() != "10\n" {
		t.Errorf("stdout = %q, want %q", out.String(), "10\n")
	}
}

func TestVMForLoopBreak(t *testing.T) {
	_, out := runVM(t, `
var found = -1;
for (var i = 0; i < 100; i = i + 1) {
    if (i == 17) {
        found = i;
        break;
    }
}
print(found);
`)
	if out.String() != "17\n" {
		t.Errorf("stdout = %q, want %q", out.String(), "17\n")
	}
}

func TestVMForLoopContinueRunsStepBeforeLooping(t *testing.T) {
	_, out := runVM(t, `
var total = 0;
for (var i = 0; i < 5; i = i + 1) {
    if (i == 2) {
        continue;
    }
    total = total + i;
}
print(total);
`)
	if out.String() != "8\n" {
		t.Errorf("stdout = %q, want %q (0+1+3+4)", out.String(), "8\n")
	}
}

func TestVMNestedLoopsIndependentBreak(t *testing.T) {
	_, out := runVM(t, `
var total = 0;
for (var i = 0; i < 3; i = i + 1) {
    for (var j = 0; j < 3; j = j + 1) {
        if (j == 1) {
            break;
        }
        total = total + 1;
    }
}
print(total);
`)
	if out.String() != "3\n" {
		t.Errorf("stdout = %q, want %q", out.String(), "3\n")
	}
}

func TestVMFunctionCallAndReturn(t *testing.T) {
	_, out := runVM(t, `
fn add(a: number, b: number) -> number {
    return a + b;
}
print(add(3, 4));
`)
	if out.String() != "7\n" {
		t.Errorf("stdout = %q, want %q", out.String(), "7\n")
	}
}

func TestVMRecursiveFunction(t *testing.T) {
	_, out := runVM(t, `
fn fib(n: number) -> number {
    if (n < 2) {
        return n;
    }
    return fib(n - 1) + fib(n - 2);
}
print(fib(10));
`)
	if out.String() != "55\n" {
		t.Errorf("stdout = %q, want %q", out.String(), "55\n")
	}
}

func TestVMFunctionPassedAsValue(t *testing.T) {
	_, out := runVM(t, `
fn double(x: number) -> number {
    return x * 2;
}
fn apply(f: Function, x: number) -> number {
    return f(x);
}
print(apply(double, 21));
`)
	if out.String() != "42\n" {
		t.Errorf("stdout = %q, want %q", out.String(), "42\n")
	}
}

func TestVMArrayIndexingAndAssignment(t *testing.T) {
	_, out := runVM(t, `
var xs = [1, 2, 3];
xs[1] = 99;
print(xs[1]);
`)
	if out.String() != "99\n" {
		t.Errorf("stdout = %q, want %q", out.String(), "99\n")
	}
}

func TestVMFunctionLocalShadowingGlobalDoesNotClobberIt(t *testing.T) {
	_, out := runVM(t, `
var n = 100;
fn f(x: number) -> number {
    var n = x + 1;
    return n;
}
print(f(5));
print(n);
`)
	want := "6\n100\n"
	if out.String() != want {
		t.Errorf("stdout = %q, want %q (the function-local 'n' must not alias the global slot)", out.String(), want)
	}
}

func TestVMFunctionLocalShadowingNativeDoesNotClobberIt(t *testing.T) {
	var out bytes.Buffer
	reg := native.NewRegistry()
	reg.Register(&native.Entry{Name: "print", Arity: 1, Kind: "pure", Fn: func(ctx *native.Context, args []value.Value) (value.Value, *span.Diagnostic) {
		out.WriteString(value.Inspect(args[0]) + "\n")
		return value.Null, nil
	}})
	reg.Register(&native.Entry{Name: "len", Arity: 1, Kind: "pure", Fn: func(ctx *native.Context, args []value.Value) (value.Value, *span.Diagnostic) {
		return value.Number(float64(len(args[0].Data.(string)))), nil
	}})
	deny := permissions.TrustAll()
	vm := NewVM(reg, &native.Context{Stdout: &out, Policy: &deny}, 0)
	vm.DefineGlobal("print", value.NewNative(&value.Native{Name: "print", Kind: "pure"}))
	vm.DefineGlobal("len", value.NewNative(&value.Native{Name: "len", Kind: "pure"}))

	prog, errs := parser.Parse("<test>", `
fn f() -> number {
    var len = 3;
    return len;
}
print(f());
print(len("hello"));
`)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	compiled := Compile(prog, []string{"print", "len"})
	if diag := vm.Run(compiled); diag != nil {
		t.Fatalf("unexpected run diagnostic: %v", diag)
	}
	want := "3\n5\n"
	if out.String() != want {
		t.Errorf("stdout = %q, want %q (the function-local 'len' must not alias the native global)", out.String(), want)
	}
}

func TestVMArrayIndexOutOfRangeDiagnostic(t *testing.T) {
	var out bytes.Buffer
	vm, _ := newTestVM(&out, 0)
	prog, errs := parser.Parse("<test>", `var xs = [1, 2]; print(xs[9]);`)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	compiled := Compile(prog, []string{"print"})
	if diag := vm.Run(compiled); diag == nil {
		t.Fatal("expected an index-out-of-range diagnostic")
	}
}

func TestVMShortCircuitAndDoesNotEvaluateRight(t *testing.T) {
	_, out := runVM(t, `
fn sideEffect() -> bool {
    print("called");
    return true;
}
print(false && sideEffect());
`)
	if out.String() != "false\n" {
		t.Errorf("stdout = %q, want %q (right side must never run)", out.String(), "false\n")
	}
}

func TestVMShortCircuitOrDoesNotEvaluateRight(t *testing.T) {
	_, out := runVM(t, `
fn sideEffect() -> bool {
    print("called");
    return false;
}
print(true || sideEffect());
`)
	if out.String() != "true\n" {
		t.Errorf("stdout = %q, want %q (right side must never run)", out.String(), "true\n")
	}
}

func TestVMCallFunctionByName(t *testing.T) {
	var out bytes.Buffer
	vm, _ := newTestVM(&out, 0)
	prog, errs := parser.Parse("<test>", `
fn square(x: number) -> number {
    return x * x;
}
`)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	compiled := Compile(prog, []string{"print"})
	if diag := vm.Run(compiled); diag != nil {
		t.Fatalf("unexpected run diagnostic: %v", diag)
	}
	v, diag := vm.CallFunction("square", []value.Value{value.Number(6)})
	if diag != nil {
		t.Fatalf("unexpected diagnostic: %v", diag)
	}
	if v.Data.(float64) != 36 {
		t.Errorf("square(6) = %v, want 36", v)
	}
}

func TestVMCallFunctionUnknownName(t *testing.T) {
	var out bytes.Buffer
	vm, _ := newTestVM(&out, 0)
	_, diag := vm.CallFunction("doesNotExist", nil)
	if diag == nil {
		t.Fatal("expected an unknown-symbol diagnostic")
	}
}

func TestVMStackOverflowProducesDiagnostic(t *testing.T) {
	var out bytes.Buffer
	vm, _ := newTestVM(&out, 4)
	prog, errs := parser.Parse("<test>", `
fn loop(n: number) -> number {
    return loop(n + 1);
}
`)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	compiled := Compile(prog, []string{"print"})
	if diag := vm.Run(compiled); diag != nil {
		t.Fatalf("unexpected run diagnostic: %v", diag)
	}
	_, diag := vm.CallFunction("loop", []value.Value{value.Number(0)})
	if diag == nil {
		t.Fatal("expected a stack-overflow diagnostic")
	}
}
