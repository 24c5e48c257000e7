package checker

import (
	"github.com/atlas-lang/atlas/internal/ast"
	"github.com/atlas-lang/atlas/internal/types"
)

// checkExpr computes expr's type, records it, and emits AT0001
// diagnostics for any mismatch. It always returns a Type so callers
// never need a nil check; Unknown means "already diagnosed or
// undecidable" and suppresses further cascading errors.
func (c *Checker) checkExpr(expr ast.Expr) types.Type {
	t := c.computeExpr(expr)
	c.exprTypes[expr] = t
	return t
}

func (c *Checker) computeExpr(expr ast.Expr) types.Type {
	switch e := expr.(type) {
	case *ast.Literal:
		switch e.Kind {
		case ast.LitNumber:
			return types.Number
		case ast.LitString:
			return types.String
		case ast.LitBool:
			return types.Bool
		case ast.LitNull:
			return types.Null
		}
		return types.Unknown

	case *ast.Identifier:
		if t, ok := c.lookup(e.Name); ok {
			return t
		}
		return types.Unknown

	case *ast.Unary:
		operand := c.checkExpr(e.Operand)
		if operand.Kind == types.KindUnknown {
			return types.Unknown
		}
		switch e.Op {
		case ast.OpNot:
			if operand.Kind != types.KindBool {
				c.errorf(e.Sp, "", "'!' requires bool, found %s", operand)
				return types.Unknown
			}
			return types.Bool
		case ast.OpNegate:
			if !operand.IsNumeric() {
				c.errorf(e.Sp, "", "unary '-' requires number, found %s", operand)
				return types.Unknown
			}
			return types.Number
		}
		return types.Unknown

	case *ast.Binary:
		return c.checkBinary(e)

	case *ast.Call:
		return c.checkCall(e)

	case *ast.Index:
		targetType := c.checkExpr(e.Target)
		idxType := c.checkExpr(e.Idx)
		if idxType.Kind != types.KindUnknown && !idxType.IsNumeric() {
			c.errorf(e.Sp, "", "array index must be a number, found %s", idxType)
		}
		switch targetType.Kind {
		case types.KindArray:
			return *targetType.Elem
		case types.KindString:
			return types.String
		case types.KindUnknown:
			return types.Unknown
		default:
			c.errorf(e.Sp, "", "type %s is not indexable", targetType)
			return types.Unknown
		}

	case *ast.ArrayLiteral:
		if len(e.Elems) == 0 {
			return types.NewArray(types.Unknown)
		}
		elem := c.checkExpr(e.Elems[0])
		for _, rest := range e.Elems[1:] {
			t := c.checkExpr(rest)
			if elem.Kind != types.KindUnknown && t.Kind != types.KindUnknown && !elem.Equal(t) {
				c.errorf(rest.Span(), "", "array element type mismatch: expected %s, found %s", elem, t)
			}
		}
		return types.NewArray(elem)

	case *ast.Group:
		return c.checkExpr(e.Inner)

	case *ast.ErrorExpr:
		return types.Unknown
	}
	return types.Unknown
}

var comparisonOps = map[ast.BinaryOp]bool{
	ast.OpLt: true, ast.OpLe: true, ast.OpGt: true, ast.OpGe: true,
}

func (c *Checker) checkBinary(e *ast.Binary) types.Type {
	left := c.checkExpr(e.Left)
	right := c.checkExpr(e.Right)

	switch e.Op {
	case ast.OpLogicalAnd, ast.OpLogicalOr:
		if left.Kind != types.KindUnknown && left.Kind != types.KindBool {
			c.errorf(e.Left.Span(), "", "'%s' requires bool, found %s", e.Op, left)
		}
		if right.Kind != types.KindUnknown && right.Kind != types.KindBool {
			c.errorf(e.Right.Span(), "", "'%s' requires bool, found %s", e.Op, right)
		}
		return types.Bool

	case ast.OpEq, ast.OpNe:
		if left.Kind != types.KindUnknown && right.Kind != types.KindUnknown {
			if !left.Equal(right) {
				c.errorf(e.Sp, "", "cannot compare %s and %s", left, right)
			} else if left.Kind == types.KindFunction || left.Kind == types.KindArray {
				c.errorf(e.Sp, "", "'%s' is not supported on %s; use reflect_deep_equals for structural comparison", e.Op, left)
			}
		}
		return types.Bool

	case ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		if left.Kind == types.KindUnknown || right.Kind == types.KindUnknown {
			return types.Bool
		}
		if !left.IsOrdered() || !right.IsOrdered() || !left.Equal(right) {
			c.errorf(e.Sp, "", "'%s' requires two numbers or two strings, found %s and %s", e.Op, left, right)
		}
		return types.Bool

	case ast.OpAdd:
		if left.Kind == types.KindUnknown || right.Kind == types.KindUnknown {
			return types.Unknown
		}
		if left.Kind == types.KindString && right.Kind == types.KindString {
			return types.String
		}
		if left.IsNumeric() && right.IsNumeric() {
			return types.Number
		}
		c.errorf(e.Sp, "", "'+' requires two numbers or two strings, found %s and %s", left, right)
		return types.Unknown

	case ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod:
		if left.Kind == types.KindUnknown || right.Kind == types.KindUnknown {
			return types.Unknown
		}
		if !left.IsNumeric() || !right.IsNumeric() {
			c.errorf(e.Sp, "", "'%s' requires two numbers, found %s and %s", e.Op, left, right)
			return types.Unknown
		}
		return types.Number
	}
	return types.Unknown
}

func (c *Checker) checkCall(e *ast.Call) types.Type {
	calleeType := c.checkExpr(e.Callee)

	argTypes := make([]types.Type, len(e.Args))
	for i, a := range e.Args {
		argTypes[i] = c.checkExpr(a)
	}

	if calleeType.Kind == types.KindUnknown {
		return types.Unknown
	}
	if calleeType.Kind != types.KindFunction {
		c.errorf(e.Sp, "", "%s is not callable", calleeType)
		return types.Unknown
	}
	if len(argTypes) != len(calleeType.Params) {
		c.errorf(e.Sp, "", "expected %d argument(s), found %d", len(calleeType.Params), len(argTypes))
		return *calleeType.Return
	}
	for i, want := range calleeType.Params {
		got := argTypes[i]
		if got.Kind != types.KindUnknown && !types.IsAssignable(got, want) {
			c.errorf(e.Args[i].Span(), "", "argument %d: expected %s, found %s", i+1, want, got)
		}
	}
	return *calleeType.Return
}
