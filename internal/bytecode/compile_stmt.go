package bytecode

import "github.com/atlas-lang/atlas/internal/ast"

func (c *Compiler) compileStmt(fc *funcCompiler, stmt ast.Stmt, ln int) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		if s.Init != nil {
			c.compileExpr(fc, s.Init)
		} else {
			emitConst(fc, nullValue(), ln)
		}
		c.declare(fc, s.Name)

	case *ast.Assign:
		c.compileExpr(fc, s.Value)
		c.compileStoreTarget(fc, s.Target)

	case *ast.CompoundAssign:
		c.compileCompoundAssign(fc, s)

	case *ast.IncDec:
		c.compileIncDec(fc, s)

	case *ast.If:
		c.compileExpr(fc, s.Cond)
		jumpElse := fc.chunk.Emit(OpJumpIfFalse, -1, ln)
		fc.chunk.Emit(OpPop, 0, ln)
		c.compileBlock(fc, s.Then)
		jumpEnd := fc.chunk.Emit(OpJump, -1, ln)
		fc.chunk.PatchJump(jumpElse)
		fc.chunk.Emit(OpPop, 0, ln)
		if s.Else != nil {
			c.compileStmt(fc, s.Else, ln)
		}
		fc.chunk.PatchJump(jumpEnd)

	case *ast.While:
		loopStart := len(fc.chunk.Code)
		c.compileExpr(fc, s.Cond)
		exitJump := fc.chunk.Emit(OpJumpIfFalse, -1, ln)
		fc.chunk.Emit(OpPop, 0, ln)
		fc.pushLoop(loopStart) // continue re-checks the condition directly
		c.compileBlock(fc, s.Body)
		lc := fc.popLoop()
		fc.chunk.Emit(OpJump, loopStart, ln)
		fc.chunk.PatchJump(exitJump)
		fc.chunk.Emit(OpPop, 0, ln)
		exitAddr := len(fc.chunk.Code)
		for _, p := range lc.breakPatches {
			fc.chunk.PatchJumpTo(p, exitAddr)
		}

	case *ast.For:
		fc.pushScope()
		defer fc.popScope()
		if s.Init != nil {
			c.compileStmt(fc, s.Init, ln)
		}
		loopStart := len(fc.chunk.Code)
		exitJump := -1
		if s.Cond != nil {
			c.compileExpr(fc, s.Cond)
			exitJump = fc.chunk.Emit(OpJumpIfFalse, -1, ln)
			fc.chunk.Emit(OpPop, 0, ln)
		}
		fc.pushLoop(-1) // continue must run the step, compiled below, before looping
		c.compileBlock(fc, s.Body)
		lc := fc.popLoop()
		stepAddr := len(fc.chunk.Code)
		for _, p := range lc.continuePatches {
			fc.chunk.PatchJumpTo(p, stepAddr)
		}
		if s.Step != nil {
			c.compileStmt(fc, s.Step, ln)
		}
		fc.chunk.Emit(OpJump, loopStart, ln)
		if exitJump >= 0 {
			fc.chunk.PatchJump(exitJump)
			fc.chunk.Emit(OpPop, 0, ln)
		}
		exitAddr := len(fc.chunk.Code)
		for _, p := range lc.breakPatches {
			fc.chunk.PatchJumpTo(p, exitAddr)
		}

	case *ast.Return:
		if s.Value != nil {
			c.compileExpr(fc, s.Value)
			fc.chunk.Emit(OpRet, 0, ln)
		} else {
			fc.chunk.Emit(OpRetVoid, 0, ln)
		}

	case *ast.ExprStmt:
		c.compileExpr(fc, s.Expr)
		fc.chunk.Emit(OpPop, 0, ln)

	case *ast.Block:
		c.compileBlock(fc, s)

	case *ast.Break:
		if len(fc.loops) == 0 {
			break // outside any loop: matches the interpreter's Control fizzling out unused
		}
		lc := fc.currentLoop()
		jump := fc.chunk.Emit(OpJump, -1, ln)
		lc.breakPatches = append(lc.breakPatches, jump)

	case *ast.Continue:
		if len(fc.loops) == 0 {
			break
		}
		lc := fc.currentLoop()
		if lc.continueTarget >= 0 {
			fc.chunk.Emit(OpJump, lc.continueTarget, ln)
		} else {
			jump := fc.chunk.Emit(OpJump, -1, ln)
			lc.continuePatches = append(lc.continuePatches, jump)
		}

	case *ast.ErrorStmt, nil:
		// parse-error placeholder; never reached for a checked program.
	}
}

func (c *Compiler) compileBlock(fc *funcCompiler, block *ast.Block) {
	fc.pushScope()
	defer fc.popScope()
	for _, s := range block.Stmts {
		c.compileStmt(fc, s, 0)
	}
}

func (c *Compiler) declare(fc *funcCompiler, name string) {
	if fc.isMain && len(fc.scopes) == 1 && fc.globals[name] {
		fc.chunk.Emit(OpStoreGlobal, fc.globalIndex(name), 0)
		fc.chunk.Emit(OpPop, 0, 0)
		return
	}
	fc.declareLocal(name)
	fc.chunk.Emit(OpStoreLocal, fc.localCount-1, 0)
	fc.chunk.Emit(OpPop, 0, 0)
}

func (c *Compiler) compileStoreTarget(fc *funcCompiler, target ast.AssignTarget) {
	switch t := target.(type) {
	case *ast.NameTarget:
		if slot, ok := fc.resolveLocal(t.Name); ok {
			fc.chunk.Emit(OpStoreLocal, slot, 0)
		} else {
			fc.chunk.Emit(OpStoreGlobal, fc.globalIndex(t.Name), 0)
		}
		fc.chunk.Emit(OpPop, 0, 0)
	case *ast.IndexTarget:
		// stack convention for INDEX_SET, value already pushed by the
		// caller: [..., value, container, index]. The VM pops index,
		// container, value in that order and pushes value back; every
		// caller here is a statement, so pop it like the NameTarget case
		// above instead of stranding it under the next statement's work.
		c.compileExpr(fc, t.Target)
		c.compileExpr(fc, t.Index)
		fc.chunk.Emit(OpIndexSet, 0, 0)
		fc.chunk.Emit(OpPop, 0, 0)
	}
}

func (c *Compiler) compileCompoundAssign(fc *funcCompiler, s *ast.CompoundAssign) {
	c.compileLoadTarget(fc, s.Target)
	c.compileExpr(fc, s.Value)
	switch s.Op {
	case ast.OpAddAssign:
		fc.chunk.Emit(OpAdd, 0, 0)
	case ast.OpSubAssign:
		fc.chunk.Emit(OpSub, 0, 0)
	case ast.OpMulAssign:
		fc.chunk.Emit(OpMul, 0, 0)
	case ast.OpDivAssign:
		fc.chunk.Emit(OpDiv, 0, 0)
	case ast.OpModAssign:
		fc.chunk.Emit(OpMod, 0, 0)
	}
	c.compileStoreTarget(fc, s.Target)
}

func (c *Compiler) compileIncDec(fc *funcCompiler, s *ast.IncDec) {
	c.compileLoadTarget(fc, s.Target)
	emitConst(fc, numberValue(1), 0)
	if s.Op == ast.OpIncrement {
		fc.chunk.Emit(OpAdd, 0, 0)
	} else {
		fc.chunk.Emit(OpSub, 0, 0)
	}
	c.compileStoreTarget(fc, s.Target)
}

func (c *Compiler) compileLoadTarget(fc *funcCompiler, target ast.AssignTarget) {
	switch t := target.(type) {
	case *ast.NameTarget:
		c.compileIdentifier(fc, t.Name)
	case *ast.IndexTarget:
		c.compileExpr(fc, t.Target)
		c.compileExpr(fc, t.Index)
		fc.chunk.Emit(OpIndexGet, 0, 0)
	}
}
