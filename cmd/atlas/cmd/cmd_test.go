package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atlas-lang/atlas/internal/span"
	"github.com/atlas-lang/atlas/internal/value"
)

// resetFlags restores the package-level flag variables to their
// zero/default values so tests don't leak state through the shared
// rootCmd tree.
func resetFlags(t *testing.T) {
	t.Helper()
	prevConfig, prevVM, prevTrust, prevDepth, prevFormat, prevCall := configPath, useVM, trustAll, maxCallDepth, outputFormat, callFn
	configPath, useVM, trustAll, maxCallDepth, outputFormat, callFn = "", false, false, 0, "human", ""
	t.Cleanup(func() {
		configPath, useVM, trustAll, maxCallDepth, outputFormat, callFn = prevConfig, prevVM, prevTrust, prevDepth, prevFormat, prevCall
	})
}

func TestNewRuntimeDefaultsToInterpreterAndDenyAll(t *testing.T) {
	resetFlags(t)
	rt := newRuntime()
	if rt == nil {
		t.Fatal("expected a non-nil Runtime")
	}
	result := rt.Eval("<test>", `print(1 + 1);`)
	if !result.Ok() {
		t.Fatalf("unexpected diagnostics: %v", result.Diagnostics)
	}
}

func TestNewRuntimeHonorsVMFlag(t *testing.T) {
	resetFlags(t)
	useVM = true
	rt := newRuntime()
	result := rt.Eval("<test>", `fn square(x: number) -> number { return x * x; }`)
	if !result.Ok() {
		t.Fatalf("unexpected diagnostics: %v", result.Diagnostics)
	}
	v, diag := rt.CallFunction("square", value.Number(6))
	if diag != nil {
		t.Fatalf("unexpected diagnostic: %v", diag)
	}
	if v.Data.(float64) != 36 {
		t.Errorf("square(6) = %v, want 36", v)
	}
}

func TestNewRuntimeTrustAllGrantsCapabilities(t *testing.T) {
	resetFlags(t)
	trustAll = true
	dir := t.TempDir()
	path := filepath.Join(dir, "scratch.txt")
	rt := newRuntime()
	result := rt.Eval("<test>", `var w = writeFile("`+path+`", "x"); print(isOk(w));`)
	if !result.Ok() {
		t.Fatalf("unexpected diagnostics: %v", result.Diagnostics)
	}
}

func TestNewRuntimeMaxCallDepthZeroLeavesDefault(t *testing.T) {
	resetFlags(t)
	maxCallDepth = 0
	rt := newRuntime()
	result := rt.Eval("<test>", `
fn loop(n: number) -> number {
    return loop(n + 1);
}
loop(0);
`)
	if result.Ok() {
		t.Fatal("expected unbounded recursion to eventually overflow under the default depth")
	}
}

func TestNewRuntimeMaxCallDepthOverride(t *testing.T) {
	resetFlags(t)
	maxCallDepth = 3
	rt := newRuntime()
	result := rt.Eval("<test>", `
fn loop(n: number) -> number {
    return loop(n + 1);
}
loop(0);
`)
	if result.Ok() {
		t.Fatal("expected a stack-overflow diagnostic with a shallow max call depth")
	}
}

func TestNewRuntimeAppliesConfigOverlay(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "atlas.yaml")
	if err := os.WriteFile(path, []byte("engine: vm\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	configPath = path
	rt := newRuntime()
	result := rt.Eval("<test>", `fn id(x: number) -> number { return x; }`)
	if !result.Ok() {
		t.Fatalf("unexpected diagnostics: %v", result.Diagnostics)
	}
	v, diag := rt.CallFunction("id", value.Number(5))
	if diag != nil {
		t.Fatalf("unexpected diagnostic: %v", diag)
	}
	if v.Data.(float64) != 5 {
		t.Errorf("id(5) = %v, want 5", v)
	}
}

func TestReportDiagnosticsEmptyListReturnsNil(t *testing.T) {
	resetFlags(t)
	if err := reportDiagnostics(nil); err != nil {
		t.Errorf("expected nil error for an empty diagnostic list, got %v", err)
	}
}

func TestReportDiagnosticsHumanFormatWritesToStderr(t *testing.T) {
	resetFlags(t)
	outputFormat = "human"
	diags := span.List{span.New(span.ErrRuntimeGeneric).Message("boom").Build()}
	stderr := captureStderr(t, func() {
		if err := reportDiagnostics(diags); err == nil {
			t.Error("expected an error for an error-level diagnostic")
		}
	})
	if !strings.Contains(stderr, "boom") {
		t.Errorf("stderr = %q, want it to mention the diagnostic message", stderr)
	}
}

func TestReportDiagnosticsJSONFormatWritesToStderr(t *testing.T) {
	resetFlags(t)
	outputFormat = "json"
	diags := span.List{span.New(span.ErrRuntimeGeneric).Message("boom").Build()}
	stderr := captureStderr(t, func() {
		if err := reportDiagnostics(diags); err == nil {
			t.Error("expected an error for an error-level diagnostic")
		}
	})
	if !strings.Contains(stderr, `"message"`) {
		t.Errorf("stderr = %q, want JSON output containing a message field", stderr)
	}
}

func TestReportDiagnosticsNoErrorsReturnsNilDespiteWarnings(t *testing.T) {
	resetFlags(t)
	outputFormat = "human"
	diags := span.List{span.Warn(span.ErrRuntimeGeneric).Message("heads up").Build()}
	captureStderr(t, func() {
		if err := reportDiagnostics(diags); err != nil {
			t.Errorf("expected nil error when no diagnostic is error-level, got %v", err)
		}
	})
}

func TestRunCommandExecutesFile(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.atlas")
	if err := os.WriteFile(path, []byte(`print(40 + 2);`), 0o644); err != nil {
		t.Fatalf("failed to write test program: %v", err)
	}
	stdout, _ := executeRoot(t, "run", path)
	if stdout != "42\n" {
		t.Errorf("stdout = %q, want %q", stdout, "42\n")
	}
}

func TestRunCommandMissingFileReportsError(t *testing.T) {
	resetFlags(t)
	_, stderr := executeRootExpectingError(t, "run", filepath.Join(t.TempDir(), "missing.atlas"))
	if stderr == "" {
		t.Error("expected diagnostic output on stderr for a missing file")
	}
}

func TestEvalCommandEvaluatesInlineSource(t *testing.T) {
	resetFlags(t)
	stdout, _ := executeRoot(t, "eval", `print(1 + 2);`)
	if stdout != "3\n" {
		t.Errorf("stdout = %q, want %q", stdout, "3\n")
	}
}

func TestEvalCommandWithCallFlagPrintsResult(t *testing.T) {
	resetFlags(t)
	stdout, _ := executeRoot(t, "eval", "--call", "main", `fn main() -> number { return 42; }`)
	if !strings.Contains(stdout, "42") {
		t.Errorf("stdout = %q, want it to contain the call result 42", stdout)
	}
}

func TestEvalCommandWithCallFlagUnknownFunctionReportsError(t *testing.T) {
	resetFlags(t)
	_, stderr := executeRootExpectingError(t, "eval", "--call", "doesNotExist", `var x = 1;`)
	if stderr == "" {
		t.Error("expected diagnostic output on stderr for an unknown function")
	}
}

// executeRoot runs rootCmd with the given args, capturing the child
// Runtime's os.Stdout/os.Stderr writes (newRuntime wires the real
// process streams, not cobra's command streams).
func executeRoot(t *testing.T, args ...string) (stdout, stderr string) {
	t.Helper()
	rootCmd.SetArgs(args)
	stdout = captureStdout(t, func() {
		stderr = captureStderr(t, func() {
			if err := rootCmd.Execute(); err != nil {
				t.Fatalf("unexpected error executing %v: %v", args, err)
			}
		})
	})
	return stdout, stderr
}

func executeRootExpectingError(t *testing.T, args ...string) (stdout, stderr string) {
	t.Helper()
	rootCmd.SetArgs(args)
	stdout = captureStdout(t, func() {
		stderr = captureStderr(t, func() {
			if err := rootCmd.Execute(); err == nil {
				t.Fatalf("expected an error executing %v", args)
			}
		})
	})
	return stdout, stderr
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	return captureFD(t, &os.Stdout, fn)
}

func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	return captureFD(t, &os.Stderr, fn)
}

func captureFD(t *testing.T, target **os.File, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	orig := *target
	*target = w
	defer func() { *target = orig }()

	fn()

	w.Close()
	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}
