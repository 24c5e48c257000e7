package parser

import (
	"testing"
	"time"

	"github.com/atlas-lang/atlas/internal/ast"
)

func TestParseVarDecl(t *testing.T) {
	prog, errs := Parse("<test>", "var x = 5;")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(prog.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(prog.Items))
	}
	si, ok := prog.Items[0].(*ast.StatementItem)
	if !ok {
		t.Fatalf("expected StatementItem, got %T", prog.Items[0])
	}
	vd, ok := si.Stmt.(*ast.VarDecl)
	if !ok {
		t.Fatalf("expected VarDecl, got %T", si.Stmt)
	}
	if vd.Name != "x" {
		t.Errorf("name = %q, want x", vd.Name)
	}
	lit, ok := vd.Init.(*ast.Literal)
	if !ok || lit.Number != 5 {
		t.Errorf("init = %#v, want literal 5", vd.Init)
	}
}

func TestParseFunctionDecl(t *testing.T) {
	prog, errs := Parse("<test>", `fn add(a: number, b: number) -> number { return a + b; }`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	fn, ok := prog.Items[0].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("expected FunctionDecl, got %T", prog.Items[0])
	}
	if fn.Name != "add" {
		t.Errorf("name = %q, want add", fn.Name)
	}
	if len(fn.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(fn.Params))
	}
	if fn.Params[0].Name != "a" || fn.Params[0].Type.String() != "number" {
		t.Errorf("param[0] = %+v", fn.Params[0])
	}
	if fn.ReturnType.String() != "number" {
		t.Errorf("return type = %s, want number", fn.ReturnType.String())
	}
	if len(fn.Body.Stmts) != 1 {
		t.Fatalf("expected 1 body statement, got %d", len(fn.Body.Stmts))
	}
}

func TestParseFunctionDeclDefaultsToVoidReturn(t *testing.T) {
	prog, errs := Parse("<test>", `fn noop() { }`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	fn := prog.Items[0].(*ast.FunctionDecl)
	if fn.ReturnType.String() != "void" {
		t.Errorf("return type = %s, want void", fn.ReturnType.String())
	}
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2 * 3;", "(1 + (2 * 3))"},
		{"(1 + 2) * 3;", "((1 + 2) * 3)"},
		{"1 < 2 == 3 < 4;", "((1 < 2) == (3 < 4))"},
		{"a && b || c;", "((a && b) || c)"},
		{"-a * b;", "(-a * b)"},
		{"!a == b;", "(!a == b)"},
	}
	for _, tt := range tests {
		prog, errs := Parse("<test>", tt.input)
		if len(errs) != 0 {
			t.Fatalf("input %q: unexpected errors: %v", tt.input, errs)
		}
		si := prog.Items[0].(*ast.StatementItem)
		es := si.Stmt.(*ast.ExprStmt)
		if es.Expr.String() != tt.want {
			t.Errorf("input %q: got %s, want %s", tt.input, es.Expr.String(), tt.want)
		}
	}
}

func TestParseCallAndIndex(t *testing.T) {
	prog, errs := Parse("<test>", "foo(1, 2)[0];")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	es := prog.Items[0].(*ast.StatementItem).Stmt.(*ast.ExprStmt)
	idx, ok := es.Expr.(*ast.Index)
	if !ok {
		t.Fatalf("expected Index, got %T", es.Expr)
	}
	call, ok := idx.Target.(*ast.Call)
	if !ok {
		t.Fatalf("expected Call, got %T", idx.Target)
	}
	if len(call.Args) != 2 {
		t.Errorf("expected 2 args, got %d", len(call.Args))
	}
}

func TestParseArrayLiteral(t *testing.T) {
	prog, errs := Parse("<test>", "[1, 2, 3];")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	es := prog.Items[0].(*ast.StatementItem).Stmt.(*ast.ExprStmt)
	arr, ok := es.Expr.(*ast.ArrayLiteral)
	if !ok {
		t.Fatalf("expected ArrayLiteral, got %T", es.Expr)
	}
	if len(arr.Elems) != 3 {
		t.Errorf("expected 3 elements, got %d", len(arr.Elems))
	}
}

func TestParseIfElse(t *testing.T) {
	prog, errs := Parse("<test>", `if (x < 1) { print(x); } else { print(0); }`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	ifs, ok := prog.Items[0].(*ast.StatementItem).Stmt.(*ast.If)
	if !ok {
		t.Fatalf("expected If, got %T", prog.Items[0].(*ast.StatementItem).Stmt)
	}
	if ifs.Else == nil {
		t.Fatalf("expected else branch")
	}
}

func TestParseWhileAndFor(t *testing.T) {
	prog, errs := Parse("<test>", `
while (i < 10) { i = i + 1; }
for (var j = 0; j < 10; j = j + 1) { print(j); }
`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if _, ok := prog.Items[0].(*ast.StatementItem).Stmt.(*ast.While); !ok {
		t.Errorf("expected While, got %T", prog.Items[0].(*ast.StatementItem).Stmt)
	}
	if _, ok := prog.Items[1].(*ast.StatementItem).Stmt.(*ast.For); !ok {
		t.Errorf("expected For, got %T", prog.Items[1].(*ast.StatementItem).Stmt)
	}
}

func TestParseBreakContinue(t *testing.T) {
	prog, errs := Parse("<test>", `while (true) { break; continue; }`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	w := prog.Items[0].(*ast.StatementItem).Stmt.(*ast.While)
	if len(w.Body.Stmts) != 2 {
		t.Fatalf("expected 2 statements in loop body, got %d", len(w.Body.Stmts))
	}
	if _, ok := w.Body.Stmts[0].(*ast.Break); !ok {
		t.Errorf("expected Break, got %T", w.Body.Stmts[0])
	}
	if _, ok := w.Body.Stmts[1].(*ast.Continue); !ok {
		t.Errorf("expected Continue, got %T", w.Body.Stmts[1])
	}
}

func TestParseCompoundAssignAndIncDec(t *testing.T) {
	prog, errs := Parse("<test>", `x += 1; x++; x--;`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if _, ok := prog.Items[0].(*ast.StatementItem).Stmt.(*ast.CompoundAssign); !ok {
		t.Errorf("expected CompoundAssign, got %T", prog.Items[0].(*ast.StatementItem).Stmt)
	}
	if _, ok := prog.Items[1].(*ast.StatementItem).Stmt.(*ast.IncDec); !ok {
		t.Errorf("expected IncDec, got %T", prog.Items[1].(*ast.StatementItem).Stmt)
	}
}

func TestParseErrorRecoversAtSemicolon(t *testing.T) {
	prog, errs := Parse("<test>", "let = ; let y = 2;")
	if len(errs) == 0 {
		t.Fatalf("expected at least one parse error")
	}
	// recovery should still surface the second, valid declaration.
	found := false
	for _, item := range prog.Items {
		if si, ok := item.(*ast.StatementItem); ok {
			if vd, ok := si.Stmt.(*ast.VarDecl); ok && vd.Name == "y" {
				found = true
			}
		}
	}
	if !found {
		t.Errorf("expected recovery to parse the second declaration, items=%v", prog.Items)
	}
}

// TestParseProgramTerminatesOnDegenerateInput guards against a parse
// function ever returning without consuming a token (ParseProgram and
// parseBlock both force progress via synchronize() when that happens).
func TestParseProgramTerminatesOnDegenerateInput(t *testing.T) {
	inputs := []string{
		"fn (", ")))))", "{{{{{", "let = ; let y = 2;", ":::",
	}
	done := make(chan struct{})
	go func() {
		for _, in := range inputs {
			Parse("<test>", in)
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("ParseProgram did not terminate on degenerate input")
	}
}

func TestParseArrayType(t *testing.T) {
	prog, errs := Parse("<test>", `fn f(xs: number[]) { }`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	fn := prog.Items[0].(*ast.FunctionDecl)
	at, ok := fn.Params[0].Type.(*ast.ArrayType)
	if !ok {
		t.Fatalf("expected ArrayType, got %T", fn.Params[0].Type)
	}
	if at.Elem.String() != "number" {
		t.Errorf("elem type = %s, want number", at.Elem.String())
	}
}
