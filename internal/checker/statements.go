package checker

import (
	"github.com/atlas-lang/atlas/internal/ast"
	"github.com/atlas-lang/atlas/internal/types"
)

func (c *Checker) checkStmt(stmt ast.Stmt, enclosingReturn types.Type) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		c.checkVarDecl(s)
	case *ast.Assign:
		c.checkAssign(s)
	case *ast.CompoundAssign:
		c.checkCompoundAssign(s)
	case *ast.IncDec:
		t := c.checkAssignTarget(s.Target)
		if t.Kind != types.KindUnknown && !t.IsNumeric() {
			c.errorf(s.Sp, "", "'++'/'--' require a number, found %s", t)
		}
	case *ast.If:
		c.checkCondition(s.Cond)
		c.checkBlock(s.Then)
		if s.Else != nil {
			c.checkStmt(s.Else, enclosingReturn)
		}
	case *ast.While:
		c.checkCondition(s.Cond)
		c.checkBlock(s.Body)
	case *ast.For:
		c.pushScope()
		defer c.popScope()
		if s.Init != nil {
			c.checkStmt(s.Init, enclosingReturn)
		}
		if s.Cond != nil {
			c.checkCondition(s.Cond)
		}
		if s.Step != nil {
			c.checkStmt(s.Step, enclosingReturn)
		}
		c.checkBlock(s.Body)
	case *ast.Return:
		var got types.Type = types.Void
		if s.Value != nil {
			got = c.checkExpr(s.Value)
		}
		if got.Kind != types.KindUnknown && enclosingReturn.Kind != types.KindUnknown &&
			!types.IsAssignable(got, enclosingReturn) {
			c.errorf(s.Sp, "", "return type mismatch: expected %s, found %s", enclosingReturn, got)
		}
	case *ast.ExprStmt:
		c.checkExpr(s.Expr)
	case *ast.Block:
		c.checkBlock(s)
	case *ast.Break, *ast.Continue, *ast.ErrorStmt, nil:
		// nothing to type-check
	}
}

func (c *Checker) checkCondition(cond ast.Expr) {
	t := c.checkExpr(cond)
	if t.Kind != types.KindUnknown && t.Kind != types.KindBool {
		c.errorf(cond.Span(), "", "condition must be bool, found %s", t)
	}
}

func (c *Checker) checkVarDecl(s *ast.VarDecl) {
	declared := types.ResolveTypeRef(s.Type)
	var initType types.Type = types.Unknown
	if s.Init != nil {
		initType = c.checkExpr(s.Init)
	}
	switch {
	case s.Type == nil:
		// inferred: the variable's type becomes the initializer's type
		c.declare(s.Name, initType)
	default:
		if initType.Kind != types.KindUnknown && !types.IsAssignable(initType, declared) {
			c.errorf(s.Sp, "", "cannot assign %s to variable '%s' of type %s", initType, s.Name, declared)
		}
		c.declare(s.Name, declared)
	}
}

func (c *Checker) checkAssign(s *ast.Assign) {
	targetType := c.checkAssignTarget(s.Target)
	valueType := c.checkExpr(s.Value)
	if targetType.Kind != types.KindUnknown && valueType.Kind != types.KindUnknown &&
		!types.IsAssignable(valueType, targetType) {
		c.errorf(s.Sp, "", "cannot assign %s to target of type %s", valueType, targetType)
	}
}

func (c *Checker) checkCompoundAssign(s *ast.CompoundAssign) {
	targetType := c.checkAssignTarget(s.Target)
	valueType := c.checkExpr(s.Value)
	if targetType.Kind == types.KindUnknown || valueType.Kind == types.KindUnknown {
		return
	}
	switch s.Op {
	case ast.OpAddAssign:
		if targetType.Kind == types.KindString && valueType.Kind == types.KindString {
			return
		}
		if !targetType.IsNumeric() || !valueType.IsNumeric() {
			c.errorf(s.Sp, "", "'+=' requires matching number or string operands, found %s and %s", targetType, valueType)
		}
	default:
		if !targetType.IsNumeric() || !valueType.IsNumeric() {
			c.errorf(s.Sp, "", "compound assignment requires numbers, found %s and %s", targetType, valueType)
		}
	}
}

// checkAssignTarget type-checks an AssignTarget and returns its type.
func (c *Checker) checkAssignTarget(t ast.AssignTarget) types.Type {
	switch target := t.(type) {
	case *ast.NameTarget:
		if ty, ok := c.lookup(target.Name); ok {
			return ty
		}
		return types.Unknown
	case *ast.IndexTarget:
		targetType := c.checkExpr(target.Target)
		idxType := c.checkExpr(target.Index)
		if idxType.Kind != types.KindUnknown && !idxType.IsNumeric() {
			c.errorf(target.Sp, "", "array index must be a number, found %s", idxType)
		}
		if targetType.Kind == types.KindArray {
			return *targetType.Elem
		}
		return types.Unknown
	}
	return types.Unknown
}
