package bytecode

import (
	"testing"

	"github.com/atlas-lang/atlas/internal/parser"
)

func compileSource(t *testing.T, src string, nativeNames ...string) *Program {
	t.Helper()
	prog, errs := parser.Parse("<test>", src)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	return Compile(prog, nativeNames)
}

func TestCompileConstantPooling(t *testing.T) {
	p := compileSource(t, `print(1); print(1); print(2);`, "print")
	if len(p.Main.Chunk.Constants) != 3 {
		t.Fatalf("expected one constant per literal occurrence (no deduplication), got %d: %v",
			len(p.Main.Chunk.Constants), p.Main.Chunk.Constants)
	}
}

func TestCompileIfEmitsJumpOverElse(t *testing.T) {
	p := compileSource(t, `if (true) { print(1); } else { print(2); }`, "print")
	code := p.Main.Chunk.Code
	var sawJumpIfFalse, sawJump bool
	for _, inst := range code {
		if inst.Op == OpJumpIfFalse {
			sawJumpIfFalse = true
		}
		if inst.Op == OpJump {
			sawJump = true
		}
	}
	if !sawJumpIfFalse {
		t.Error("expected a JUMP_IF_FALSE for the if condition")
	}
	if !sawJump {
		t.Error("expected a JUMP skipping over the else branch")
	}
}

func TestCompileWhileLoopBackEdge(t *testing.T) {
	p := compileSource(t, `var i = 0; while (i < 3) { i = i + 1; }`)
	code := p.Main.Chunk.Code
	foundBackEdge := false
	for idx, inst := range code {
		if inst.Op == OpJump && inst.Operand < idx {
			foundBackEdge = true
		}
	}
	if !foundBackEdge {
		t.Error("expected a backward JUMP closing the while loop")
	}
}

func TestCompileBreakPatchesToLoopExit(t *testing.T) {
	p := compileSource(t, `
for (var i = 0; i < 10; i = i + 1) {
    if (i == 5) {
        break;
    }
}
`)
	code := p.Main.Chunk.Code
	// every JUMP whose target lies beyond the last instruction of the loop body
	// must have been patched (no -1 placeholders survive compilation).
	for _, inst := range code {
		if inst.Op == OpJump && inst.Operand == -1 {
			t.Fatal("found an unpatched JUMP placeholder (operand -1) after compilation")
		}
		if inst.Op == OpJumpIfFalse && inst.Operand == -1 {
			t.Fatal("found an unpatched JUMP_IF_FALSE placeholder (operand -1) after compilation")
		}
	}
}

func TestCompileContinueInForPatchesToStep(t *testing.T) {
	p := compileSource(t, `
for (var i = 0; i < 10; i = i + 1) {
    if (i == 5) {
        continue;
    }
}
`)
	for _, inst := range p.Main.Chunk.Code {
		if inst.Operand == -1 {
			t.Fatal("found an unpatched jump placeholder after compiling a for-loop continue")
		}
	}
}

func TestCompileFunctionDeclIsNotEmittedInMain(t *testing.T) {
	p := compileSource(t, `
fn f() -> number { return 1; }
print(f());
`, "print")
	if _, ok := p.Functions["f"]; !ok {
		t.Fatal("expected 'f' to be compiled as its own CompiledFunction")
	}
	if p.Functions["f"].Arity != 0 {
		t.Errorf("expected arity 0, got %d", p.Functions["f"].Arity)
	}
	// main must reference f via LOAD_FN, never inline its body.
	foundLoadFn := false
	for _, inst := range p.Main.Chunk.Code {
		if inst.Op == OpLoadFn {
			foundLoadFn = true
		}
	}
	if !foundLoadFn {
		t.Error("expected main to reference the function via LOAD_FN")
	}
}

func TestCompileLocalVsGlobalStorage(t *testing.T) {
	p := compileSource(t, `
var g = 1;
fn f() -> number {
    var local = 2;
    return local;
}
`)
	foundStoreGlobal := false
	for _, inst := range p.Main.Chunk.Code {
		if inst.Op == OpStoreGlobal {
			foundStoreGlobal = true
		}
	}
	if !foundStoreGlobal {
		t.Error("expected the top-level 'var g' to compile to STORE_GLOBAL")
	}

	foundStoreLocal := false
	for _, inst := range p.Functions["f"].Chunk.Code {
		if inst.Op == OpStoreLocal {
			foundStoreLocal = true
		}
		if inst.Op == OpStoreGlobal {
			t.Error("a function-local 'var' must never compile to STORE_GLOBAL")
		}
	}
	if !foundStoreLocal {
		t.Error("expected the function-local 'var local' to compile to STORE_LOCAL")
	}
}

func TestCompileFunctionLocalShadowingGlobalNameStaysLocal(t *testing.T) {
	// a function body is compiled at scope depth 1, the same depth the
	// top-level script uses for its own globals — a local whose name
	// collides with a global or a native must still compile to
	// STORE_LOCAL/LOAD_LOCAL, never alias the global's slot.
	p := compileSource(t, `
var n = 100;
fn f(x: number) -> number {
    var n = x + 1;
    return n;
}
`, "len")
	for _, inst := range p.Functions["f"].Chunk.Code {
		if inst.Op == OpStoreGlobal || inst.Op == OpLoadGlobal {
			t.Errorf("function-local 'n' shadowing a global must never compile to %v", inst.Op)
		}
	}

	p2 := compileSource(t, `
fn f() -> number {
    var len = 3;
    return len;
}
`, "len")
	for _, inst := range p2.Functions["f"].Chunk.Code {
		if inst.Op == OpStoreGlobal || inst.Op == OpLoadGlobal {
			t.Errorf("function-local 'len' shadowing a native name must never compile to %v", inst.Op)
		}
	}
}

func TestCompileIndexAssignmentStatementPopsResult(t *testing.T) {
	// OpIndexSet pushes the stored value back (so it could in principle
	// feed an expression context); every caller here is a statement and
	// must pop it, or the operand stack grows unboundedly across a loop.
	p := compileSource(t, `
var xs = [1, 2, 3];
xs[0] = 9;
`)
	ops := make([]OpCode, len(p.Main.Chunk.Code))
	for i, inst := range p.Main.Chunk.Code {
		ops[i] = inst.Op
	}
	foundSet := -1
	for i, op := range ops {
		if op == OpIndexSet {
			foundSet = i
		}
	}
	if foundSet == -1 {
		t.Fatal("expected an OpIndexSet instruction")
	}
	if foundSet+1 >= len(ops) || ops[foundSet+1] != OpPop {
		t.Errorf("expected OpIndexSet to be immediately followed by OpPop in a statement context, got %v", ops[foundSet:])
	}
}

func TestCompileNestedLoopsPatchIndependently(t *testing.T) {
	p := compileSource(t, `
for (var i = 0; i < 3; i = i + 1) {
    for (var j = 0; j < 3; j = j + 1) {
        if (j == 1) {
            break;
        }
        if (i == 2) {
            continue;
        }
    }
}
`)
	for _, inst := range p.Main.Chunk.Code {
		if inst.Operand == -1 {
			t.Fatal("found an unpatched jump placeholder in nested-loop codegen")
		}
	}
}

func TestCompileFunctionBodyEndsWithReturn(t *testing.T) {
	p := compileSource(t, `fn f() { }`)
	code := p.Functions["f"].Chunk.Code
	if len(code) == 0 || code[len(code)-1].Op != OpRetVoid {
		t.Fatalf("expected an implicit RET_VOID at the end of a void function body, got: %v", code)
	}
}

func TestOpCodeString(t *testing.T) {
	if OpAdd.String() != "ADD" {
		t.Errorf("OpAdd.String() = %q, want ADD", OpAdd.String())
	}
	if OpCode(255).String() != "?" {
		t.Errorf("out-of-range opcode should stringify to '?', got %q", OpCode(255).String())
	}
}
