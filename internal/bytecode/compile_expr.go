package bytecode

import (
	"github.com/atlas-lang/atlas/internal/ast"
	"github.com/atlas-lang/atlas/internal/value"
)

func nullValue() value.Value    { return value.Null }
func numberValue(n float64) value.Value { return value.Number(n) }

func (c *Compiler) compileIdentifier(fc *funcCompiler, name string) {
	if slot, ok := fc.resolveLocal(name); ok {
		fc.chunk.Emit(OpLoadLocal, slot, 0)
		return
	}
	if fc.globals[name] {
		fc.chunk.Emit(OpLoadGlobal, fc.globalIndex(name), 0)
		return
	}
	// otherwise assume a top-level function reference (spec §4.3
	// function namespace resolves regardless of declaration order).
	fc.chunk.Emit(OpLoadFn, fc.globalIndex(name), 0)
}

func (c *Compiler) compileExpr(fc *funcCompiler, expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Literal:
		switch e.Kind {
		case ast.LitNumber:
			emitConst(fc, value.Number(e.Number), 0)
		case ast.LitString:
			emitConst(fc, value.String(e.Str), 0)
		case ast.LitBool:
			emitConst(fc, value.Bool(e.Bool), 0)
		case ast.LitNull:
			emitConst(fc, value.Null, 0)
		}

	case *ast.Identifier:
		c.compileIdentifier(fc, e.Name)

	case *ast.Unary:
		c.compileExpr(fc, e.Operand)
		if e.Op == ast.OpNot {
			fc.chunk.Emit(OpNot, 0, 0)
		} else {
			fc.chunk.Emit(OpNeg, 0, 0)
		}

	case *ast.Binary:
		c.compileBinary(fc, e)

	case *ast.Call:
		c.compileExpr(fc, e.Callee)
		for _, a := range e.Args {
			c.compileExpr(fc, a)
		}
		fc.chunk.Emit(OpCall, len(e.Args), 0)

	case *ast.Index:
		c.compileExpr(fc, e.Target)
		c.compileExpr(fc, e.Idx)
		fc.chunk.Emit(OpIndexGet, 0, 0)

	case *ast.ArrayLiteral:
		for _, el := range e.Elems {
			c.compileExpr(fc, el)
		}
		fc.chunk.Emit(OpMakeArray, len(e.Elems), 0)

	case *ast.Group:
		c.compileExpr(fc, e.Inner)

	case *ast.ErrorExpr:
		emitConst(fc, value.Null, 0)
	}
}

func (c *Compiler) compileBinary(fc *funcCompiler, e *ast.Binary) {
	// && and || compile to non-popping JUMP_IF_FALSE/JUMP_IF_TRUE that
	// peek the left operand: on short-circuit it's left on the stack as
	// the result (already the correct bool since the checker requires
	// both operands to be bool); otherwise it's popped and the right
	// operand's value becomes the result.
	if e.Op == ast.OpLogicalAnd {
		c.compileExpr(fc, e.Left)
		shortCircuit := fc.chunk.Emit(OpJumpIfFalse, -1, 0)
		fc.chunk.Emit(OpPop, 0, 0)
		c.compileExpr(fc, e.Right)
		fc.chunk.PatchJump(shortCircuit)
		return
	}
	if e.Op == ast.OpLogicalOr {
		c.compileExpr(fc, e.Left)
		shortCircuit := fc.chunk.Emit(OpJumpIfTrue, -1, 0)
		fc.chunk.Emit(OpPop, 0, 0)
		c.compileExpr(fc, e.Right)
		fc.chunk.PatchJump(shortCircuit)
		return
	}

	c.compileExpr(fc, e.Left)
	c.compileExpr(fc, e.Right)
	switch e.Op {
	case ast.OpAdd:
		fc.chunk.Emit(OpAdd, 0, 0)
	case ast.OpSub:
		fc.chunk.Emit(OpSub, 0, 0)
	case ast.OpMul:
		fc.chunk.Emit(OpMul, 0, 0)
	case ast.OpDiv:
		fc.chunk.Emit(OpDiv, 0, 0)
	case ast.OpMod:
		fc.chunk.Emit(OpMod, 0, 0)
	case ast.OpEq:
		fc.chunk.Emit(OpEq, 0, 0)
	case ast.OpNe:
		fc.chunk.Emit(OpNe, 0, 0)
	case ast.OpLt:
		fc.chunk.Emit(OpLt, 0, 0)
	case ast.OpLe:
		fc.chunk.Emit(OpLe, 0, 0)
	case ast.OpGt:
		fc.chunk.Emit(OpGt, 0, 0)
	case ast.OpGe:
		fc.chunk.Emit(OpGe, 0, 0)
	}
}
