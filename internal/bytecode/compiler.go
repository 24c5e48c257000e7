package bytecode

import (
	"github.com/atlas-lang/atlas/internal/ast"
	"github.com/atlas-lang/atlas/internal/value"
)

// compilerScope maps a name to its local slot within the current
// function; index 0 of scopes is the function's outermost block.
type compilerScope struct{ names map[string]int }

// funcCompiler compiles a single function body (or the top-level
// script, treated as a zero-arity function named "").
type funcCompiler struct {
	chunk      *Chunk
	scopes     []compilerScope
	localCount int
	globals    map[string]bool // top-level var names, addressed by name not slot
	loops      []loopCtx
	isMain     bool // compiling the top-level statement sequence, not a function body
}

// loopCtx tracks the patch points a break/continue inside the
// enclosing loop needs to resolve, so nested loops each patch their
// own jumps independently (spec §4.9 parity: the VM must honor
// break/continue exactly like the interpreter's ctrlBreak/ctrlContinue
// control values).
type loopCtx struct {
	continueTarget  int   // known backward-jump address, or -1 to use continuePatches
	continuePatches []int // forward jumps (for-loops: patched to the step's address)
	breakPatches    []int // forward jumps, patched to the address right after the loop
}

func (fc *funcCompiler) pushLoop(continueTarget int) {
	fc.loops = append(fc.loops, loopCtx{continueTarget: continueTarget})
}

func (fc *funcCompiler) popLoop() loopCtx {
	lc := fc.loops[len(fc.loops)-1]
	fc.loops = fc.loops[:len(fc.loops)-1]
	return lc
}

func (fc *funcCompiler) currentLoop() *loopCtx { return &fc.loops[len(fc.loops)-1] }

func newFuncCompiler(globals map[string]bool, isMain bool) *funcCompiler {
	return &funcCompiler{chunk: NewChunk(), scopes: []compilerScope{{names: map[string]int{}}}, globals: globals, isMain: isMain}
}

func (fc *funcCompiler) pushScope() { fc.scopes = append(fc.scopes, compilerScope{names: map[string]int{}}) }
func (fc *funcCompiler) popScope()  { fc.scopes = fc.scopes[:len(fc.scopes)-1] }

func (fc *funcCompiler) declareLocal(name string) int {
	slot := fc.localCount
	fc.localCount++
	fc.scopes[len(fc.scopes)-1].names[name] = slot
	return slot
}

func (fc *funcCompiler) resolveLocal(name string) (int, bool) {
	for i := len(fc.scopes) - 1; i >= 0; i-- {
		if slot, ok := fc.scopes[i].names[name]; ok {
			return slot, true
		}
	}
	return 0, false
}

func (fc *funcCompiler) globalIndex(name string) int {
	for i, n := range fc.chunk.Names {
		if n == name {
			return i
		}
	}
	fc.chunk.Names = append(fc.chunk.Names, name)
	return len(fc.chunk.Names) - 1
}

// Compiler compiles a whole *ast.Program into a CompiledFunction per
// top-level function plus a "main" CompiledFunction for the top-level
// statement sequence (spec §4.9).
type Compiler struct {
	globals map[string]bool
}

func NewCompiler() *Compiler { return &Compiler{globals: map[string]bool{}} }

// Program is the compiled output: every top-level function plus the
// top-level statement sequence compiled as "main".
type Program struct {
	Functions map[string]*CompiledFunction
	Main      *CompiledFunction
}

// Compile lowers prog into a Program. nativeNames lists every name the
// host has bound as a runtime global ahead of time (spec §4.7's native
// registry) so identifier codegen emits LOAD_GLOBAL rather than
// mistaking a native for an unresolved top-level function.
func Compile(prog *ast.Program, nativeNames []string) *Program {
	c := NewCompiler()
	for _, name := range nativeNames {
		c.globals[name] = true
	}
	// pre-scan top-level var declarations so forward references within
	// "main" resolve as globals, matching the binder's global scope.
	for _, item := range prog.Items {
		if si, ok := item.(*ast.StatementItem); ok {
			if vd, ok := si.Stmt.(*ast.VarDecl); ok {
				c.globals[vd.Name] = true
			}
		}
	}

	out := &Program{Functions: map[string]*CompiledFunction{}}
	for _, item := range prog.Items {
		if fn, ok := item.(*ast.FunctionDecl); ok {
			out.Functions[fn.Name] = c.compileFunction(fn)
		}
	}

	mainFC := newFuncCompiler(c.globals, true)
	for _, item := range prog.Items {
		if si, ok := item.(*ast.StatementItem); ok {
			c.compileStmt(mainFC, si.Stmt, 0)
		}
	}
	mainFC.chunk.Emit(OpRetVoid, 0, 0)
	out.Main = &CompiledFunction{Name: "", Chunk: mainFC.chunk, LocalsCount: mainFC.localCount}
	return out
}

func (c *Compiler) compileFunction(fn *ast.FunctionDecl) *CompiledFunction {
	fc := newFuncCompiler(c.globals, false)
	names := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		fc.declareLocal(p.Name)
		names[i] = p.Name
	}
	for _, s := range fn.Body.Stmts {
		c.compileStmt(fc, s, 0)
	}
	fc.chunk.Emit(OpRetVoid, 0, 0)
	return &CompiledFunction{
		Name: fn.Name, Arity: len(fn.Params), ParamNames: names,
		LocalsCount: fc.localCount, Chunk: fc.chunk,
	}
}

// emitConst appends v to the chunk's constant pool (no deduplication)
// and emits an OpPushConst for it.
func emitConst(fc *funcCompiler, v value.Value, ln int) {
	idx := fc.chunk.AddConstant(v)
	fc.chunk.Emit(OpPushConst, idx, ln)
}
