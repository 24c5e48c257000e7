package interp

import (
	"math"

	"github.com/atlas-lang/atlas/internal/ast"
	"github.com/atlas-lang/atlas/internal/span"
	"github.com/atlas-lang/atlas/internal/value"
)

func (it *Interpreter) evalExpr(expr ast.Expr, env *value.Env) (value.Value, *span.Diagnostic) {
	switch e := expr.(type) {
	case *ast.Literal:
		switch e.Kind {
		case ast.LitNumber:
			return value.Number(e.Number), nil
		case ast.LitString:
			return value.String(e.Str), nil
		case ast.LitBool:
			return value.Bool(e.Bool), nil
		case ast.LitNull:
			return value.Null, nil
		}
		return value.Null, nil

	case *ast.Identifier:
		v, ok := env.Get(e.Name)
		if !ok {
			return value.Null, span.New(span.ErrUnknownSymbol).Message("unknown symbol '" + e.Name + "'").Build()
		}
		return v, nil

	case *ast.Unary:
		operand, diag := it.evalExpr(e.Operand, env)
		if diag != nil {
			return value.Null, diag
		}
		if e.Op == ast.OpNot {
			return value.Bool(!value.Truthy(operand)), nil
		}
		return value.Number(-operand.Data.(float64)), nil

	case *ast.Binary:
		return it.evalBinary(e, env)

	case *ast.Call:
		return it.evalCall(e, env)

	case *ast.Index:
		targetVal, diag := it.evalExpr(e.Target, env)
		if diag != nil {
			return value.Null, diag
		}
		idxVal, diag := it.evalExpr(e.Idx, env)
		if diag != nil {
			return value.Null, diag
		}
		return it.indexGet(targetVal, idxVal)

	case *ast.ArrayLiteral:
		elems := make([]value.Value, len(e.Elems))
		for i, el := range e.Elems {
			v, diag := it.evalExpr(el, env)
			if diag != nil {
				return value.Null, diag
			}
			elems[i] = v
		}
		return value.NewArray(elems), nil

	case *ast.Group:
		return it.evalExpr(e.Inner, env)

	case *ast.ErrorExpr:
		return value.Null, nil
	}
	return value.Null, nil
}

func (it *Interpreter) indexGet(target, idx value.Value) (value.Value, *span.Diagnostic) {
	switch target.Kind {
	case value.KindArray:
		arr := target.Data.(*value.Array)
		i := int(idx.Data.(float64))
		if i < 0 || i >= len(arr.Elems) {
			return value.Null, span.New(span.ErrIndexOutOfRange).Message("array index out of range").Build()
		}
		return arr.Elems[i], nil
	case value.KindString:
		s := target.Data.(string)
		runes := []rune(s)
		i := int(idx.Data.(float64))
		if i < 0 || i >= len(runes) {
			return value.Null, span.New(span.ErrIndexOutOfRange).Message("string index out of range").Build()
		}
		return value.String(string(runes[i])), nil
	default:
		return value.Null, span.New(span.ErrTypeMismatch).Message("value is not indexable").Build()
	}
}

func mod(a, b float64) float64 { return math.Mod(a, b) }

func (it *Interpreter) evalBinary(e *ast.Binary, env *value.Env) (value.Value, *span.Diagnostic) {
	if e.Op == ast.OpLogicalAnd {
		left, diag := it.evalExpr(e.Left, env)
		if diag != nil {
			return value.Null, diag
		}
		if !value.Truthy(left) {
			return value.Bool(false), nil
		}
		right, diag := it.evalExpr(e.Right, env)
		if diag != nil {
			return value.Null, diag
		}
		return value.Bool(value.Truthy(right)), nil
	}
	if e.Op == ast.OpLogicalOr {
		left, diag := it.evalExpr(e.Left, env)
		if diag != nil {
			return value.Null, diag
		}
		if value.Truthy(left) {
			return value.Bool(true), nil
		}
		right, diag := it.evalExpr(e.Right, env)
		if diag != nil {
			return value.Null, diag
		}
		return value.Bool(value.Truthy(right)), nil
	}

	left, diag := it.evalExpr(e.Left, env)
	if diag != nil {
		return value.Null, diag
	}
	right, diag := it.evalExpr(e.Right, env)
	if diag != nil {
		return value.Null, diag
	}

	switch e.Op {
	case ast.OpEq:
		return value.Bool(scalarEqual(left, right)), nil
	case ast.OpNe:
		return value.Bool(!scalarEqual(left, right)), nil
	case ast.OpLt:
		return compareOp(left, right, func(c int) bool { return c < 0 }), nil
	case ast.OpLe:
		return compareOp(left, right, func(c int) bool { return c <= 0 }), nil
	case ast.OpGt:
		return compareOp(left, right, func(c int) bool { return c > 0 }), nil
	case ast.OpGe:
		return compareOp(left, right, func(c int) bool { return c >= 0 }), nil
	case ast.OpAdd:
		if left.Kind == value.KindString {
			return value.String(left.Data.(string) + right.Data.(string)), nil
		}
		return value.Number(left.Data.(float64) + right.Data.(float64)), nil
	case ast.OpSub:
		return value.Number(left.Data.(float64) - right.Data.(float64)), nil
	case ast.OpMul:
		return value.Number(left.Data.(float64) * right.Data.(float64)), nil
	case ast.OpDiv:
		// division by zero follows IEEE-754: ±Inf or NaN, never a
		// diagnostic (spec §4.6, §9 edge case).
		return value.Number(left.Data.(float64) / right.Data.(float64)), nil
	case ast.OpMod:
		return value.Number(mod(left.Data.(float64), right.Data.(float64))), nil
	}
	return value.Null, nil
}

func scalarEqual(a, b value.Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	if a.Kind == value.KindArray || a.Kind == value.KindFunction {
		return a.Data == b.Data // identity, per SPEC_FULL.md §17 Open Question decision
	}
	return a.Data == b.Data
}

func compareOp(a, b value.Value, pred func(int) bool) value.Value {
	var c int
	if a.Kind == value.KindString {
		as, bs := a.Data.(string), b.Data.(string)
		switch {
		case as < bs:
			c = -1
		case as > bs:
			c = 1
		}
	} else {
		af, bf := a.Data.(float64), b.Data.(float64)
		switch {
		case af < bf:
			c = -1
		case af > bf:
			c = 1
		}
	}
	return value.Bool(pred(c))
}

func (it *Interpreter) evalCall(e *ast.Call, env *value.Env) (value.Value, *span.Diagnostic) {
	callee, diag := it.evalExpr(e.Callee, env)
	if diag != nil {
		return value.Null, diag
	}
	args := make([]value.Value, len(e.Args))
	for i, a := range e.Args {
		v, diag := it.evalExpr(a, env)
		if diag != nil {
			return value.Null, diag
		}
		args[i] = v
	}
	return it.CallValue(callee, args)
}
