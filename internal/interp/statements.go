package interp

import (
	"github.com/atlas-lang/atlas/internal/ast"
	"github.com/atlas-lang/atlas/internal/span"
	"github.com/atlas-lang/atlas/internal/value"
)

func (it *Interpreter) execBlock(block *ast.Block, env *value.Env) (control, *span.Diagnostic) {
	frame := env.Child()
	for _, s := range block.Stmts {
		ctrl, diag := it.execStmt(s, frame)
		if diag != nil {
			return normalControl, diag
		}
		if ctrl.kind != ctrlNormal {
			return ctrl, nil
		}
	}
	return normalControl, nil
}

func (it *Interpreter) execStmt(stmt ast.Stmt, env *value.Env) (control, *span.Diagnostic) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		var v value.Value = value.Null
		if s.Init != nil {
			var diag *span.Diagnostic
			v, diag = it.evalExpr(s.Init, env)
			if diag != nil {
				return normalControl, diag
			}
		}
		env.Define(s.Name, v)
		return normalControl, nil

	case *ast.Assign:
		v, diag := it.evalExpr(s.Value, env)
		if diag != nil {
			return normalControl, diag
		}
		return normalControl, it.assignTo(s.Target, v, env)

	case *ast.CompoundAssign:
		return normalControl, it.execCompoundAssign(s, env)

	case *ast.IncDec:
		return normalControl, it.execIncDec(s, env)

	case *ast.If:
		cond, diag := it.evalExpr(s.Cond, env)
		if diag != nil {
			return normalControl, diag
		}
		if value.Truthy(cond) {
			return it.execBlock(s.Then, env)
		}
		if s.Else != nil {
			return it.execStmt(s.Else, env)
		}
		return normalControl, nil

	case *ast.While:
		for {
			cond, diag := it.evalExpr(s.Cond, env)
			if diag != nil {
				return normalControl, diag
			}
			if !value.Truthy(cond) {
				break
			}
			ctrl, diag := it.execBlock(s.Body, env)
			if diag != nil {
				return normalControl, diag
			}
			if ctrl.kind == ctrlBreak {
				break
			}
			if ctrl.kind == ctrlReturn {
				return ctrl, nil
			}
		}
		return normalControl, nil

	case *ast.For:
		frame := env.Child()
		if s.Init != nil {
			if _, diag := it.execStmt(s.Init, frame); diag != nil {
				return normalControl, diag
			}
		}
		for {
			if s.Cond != nil {
				cond, diag := it.evalExpr(s.Cond, frame)
				if diag != nil {
					return normalControl, diag
				}
				if !value.Truthy(cond) {
					break
				}
			}
			ctrl, diag := it.execBlock(s.Body, frame)
			if diag != nil {
				return normalControl, diag
			}
			if ctrl.kind == ctrlBreak {
				break
			}
			if ctrl.kind == ctrlReturn {
				return ctrl, nil
			}
			if s.Step != nil {
				if _, diag := it.execStmt(s.Step, frame); diag != nil {
					return normalControl, diag
				}
			}
		}
		return normalControl, nil

	case *ast.Return:
		if s.Value == nil {
			return control{kind: ctrlReturn, value: value.Null}, nil
		}
		v, diag := it.evalExpr(s.Value, env)
		if diag != nil {
			return normalControl, diag
		}
		return control{kind: ctrlReturn, value: v}, nil

	case *ast.Break:
		return control{kind: ctrlBreak}, nil

	case *ast.Continue:
		return control{kind: ctrlContinue}, nil

	case *ast.ExprStmt:
		_, diag := it.evalExpr(s.Expr, env)
		return normalControl, diag

	case *ast.Block:
		return it.execBlock(s, env)

	case *ast.ErrorStmt, nil:
		return normalControl, nil
	}
	return normalControl, nil
}

func (it *Interpreter) assignTo(target ast.AssignTarget, v value.Value, env *value.Env) *span.Diagnostic {
	switch t := target.(type) {
	case *ast.NameTarget:
		if !env.Assign(t.Name, v) {
			return span.New(span.ErrUnknownSymbol).Message("unknown symbol '" + t.Name + "'").Build()
		}
		return nil
	case *ast.IndexTarget:
		targetVal, diag := it.evalExpr(t.Target, env)
		if diag != nil {
			return diag
		}
		idxVal, diag := it.evalExpr(t.Index, env)
		if diag != nil {
			return diag
		}
		return it.indexSet(targetVal, idxVal, v)
	}
	return nil
}

func (it *Interpreter) indexSet(target, idx, v value.Value) *span.Diagnostic {
	if target.Kind != value.KindArray {
		return span.New(span.ErrTypeMismatch).Message("cannot index-assign a non-array value").Build()
	}
	arr := target.Data.(*value.Array)
	i := int(idx.Data.(float64))
	if i < 0 || i >= len(arr.Elems) {
		return span.New(span.ErrIndexOutOfRange).Message("array index out of range").Build()
	}
	arr.Elems[i] = v
	return nil
}

func (it *Interpreter) execCompoundAssign(s *ast.CompoundAssign, env *value.Env) *span.Diagnostic {
	cur, diag := it.evalTarget(s.Target, env)
	if diag != nil {
		return diag
	}
	rhs, diag := it.evalExpr(s.Value, env)
	if diag != nil {
		return diag
	}
	var result value.Value
	switch s.Op {
	case ast.OpAddAssign:
		if cur.Kind == value.KindString && rhs.Kind == value.KindString {
			result = value.String(cur.Data.(string) + rhs.Data.(string))
		} else {
			result = value.Number(cur.Data.(float64) + rhs.Data.(float64))
		}
	case ast.OpSubAssign:
		result = value.Number(cur.Data.(float64) - rhs.Data.(float64))
	case ast.OpMulAssign:
		result = value.Number(cur.Data.(float64) * rhs.Data.(float64))
	case ast.OpDivAssign:
		result = value.Number(cur.Data.(float64) / rhs.Data.(float64))
	case ast.OpModAssign:
		result = value.Number(mod(cur.Data.(float64), rhs.Data.(float64)))
	}
	return it.assignTo(s.Target, result, env)
}

func (it *Interpreter) execIncDec(s *ast.IncDec, env *value.Env) *span.Diagnostic {
	cur, diag := it.evalTarget(s.Target, env)
	if diag != nil {
		return diag
	}
	delta := 1.0
	if s.Op == ast.OpDecrement {
		delta = -1.0
	}
	return it.assignTo(s.Target, value.Number(cur.Data.(float64)+delta), env)
}

// evalTarget reads the current value an AssignTarget denotes, used by
// compound-assign and inc/dec which need both the old and new value.
func (it *Interpreter) evalTarget(target ast.AssignTarget, env *value.Env) (value.Value, *span.Diagnostic) {
	switch t := target.(type) {
	case *ast.NameTarget:
		v, ok := env.Get(t.Name)
		if !ok {
			return value.Null, span.New(span.ErrUnknownSymbol).Message("unknown symbol '" + t.Name + "'").Build()
		}
		return v, nil
	case *ast.IndexTarget:
		targetVal, diag := it.evalExpr(t.Target, env)
		if diag != nil {
			return value.Null, diag
		}
		idxVal, diag := it.evalExpr(t.Index, env)
		if diag != nil {
			return value.Null, diag
		}
		return it.indexGet(targetVal, idxVal)
	}
	return value.Null, nil
}
