package stdlib

import (
	"github.com/atlas-lang/atlas/internal/native"
	"github.com/atlas-lang/atlas/internal/span"
	"github.com/atlas-lang/atlas/internal/value"
)

func asArray(v value.Value) (*value.Array, *span.Diagnostic) {
	if v.Kind != value.KindArray {
		return nil, span.New(span.ErrNativeWrongType).Message("expected an array").Build()
	}
	return v.Data.(*value.Array), nil
}

// registerArray installs the array intrinsics that re-enter the
// engine's own call convention through native.Context.Caller — the
// same mechanism the teacher's FFI examples use for callback-shaped
// natives (spec §4.7, §9).
func registerArray(reg *native.Registry) {
	reg.Register(&native.Entry{Name: "push", Arity: 2, Kind: "pure", Fn: func(ctx *native.Context, args []value.Value) (value.Value, *span.Diagnostic) {
		arr, diag := asArray(args[0])
		if diag != nil {
			return value.Null, diag
		}
		arr.Elems = append(arr.Elems, args[1])
		return args[0], nil
	}})

	reg.Register(&native.Entry{Name: "pop", Arity: 1, Kind: "pure", Fn: func(ctx *native.Context, args []value.Value) (value.Value, *span.Diagnostic) {
		arr, diag := asArray(args[0])
		if diag != nil {
			return value.Null, diag
		}
		if len(arr.Elems) == 0 {
			return value.Null, span.New(span.ErrIndexOutOfRange).Message("'pop' on an empty array").Build()
		}
		last := arr.Elems[len(arr.Elems)-1]
		arr.Elems = arr.Elems[:len(arr.Elems)-1]
		return last, nil
	}})

	reg.Register(&native.Entry{Name: "slice", Arity: 3, Kind: "pure", Fn: func(ctx *native.Context, args []value.Value) (value.Value, *span.Diagnostic) {
		arr, diag := asArray(args[0])
		if diag != nil {
			return value.Null, diag
		}
		start, end := int(args[1].Data.(float64)), int(args[2].Data.(float64))
		if start < 0 {
			start = 0
		}
		if end > len(arr.Elems) {
			end = len(arr.Elems)
		}
		if start > end {
			start = end
		}
		out := make([]value.Value, end-start)
		copy(out, arr.Elems[start:end])
		return value.NewArray(out), nil
	}})

	reg.Register(&native.Entry{Name: "indexOf", Arity: 2, Kind: "pure", Fn: func(ctx *native.Context, args []value.Value) (value.Value, *span.Diagnostic) {
		arr, diag := asArray(args[0])
		if diag != nil {
			return value.Null, diag
		}
		for i, e := range arr.Elems {
			if value.DeepEqual(e, args[1]) {
				return value.Number(float64(i)), nil
			}
		}
		return value.Number(-1), nil
	}})

	reg.Register(&native.Entry{Name: "map", Arity: 2, Kind: "pure", Fn: func(ctx *native.Context, args []value.Value) (value.Value, *span.Diagnostic) {
		arr, diag := asArray(args[0])
		if diag != nil {
			return value.Null, diag
		}
		out := make([]value.Value, len(arr.Elems))
		for i, e := range arr.Elems {
			v, diag := ctx.Caller.CallValue(args[1], []value.Value{e})
			if diag != nil {
				return value.Null, diag
			}
			out[i] = v
		}
		return value.NewArray(out), nil
	}})

	reg.Register(&native.Entry{Name: "filter", Arity: 2, Kind: "pure", Fn: func(ctx *native.Context, args []value.Value) (value.Value, *span.Diagnostic) {
		arr, diag := asArray(args[0])
		if diag != nil {
			return value.Null, diag
		}
		var out []value.Value
		for _, e := range arr.Elems {
			keep, diag := ctx.Caller.CallValue(args[1], []value.Value{e})
			if diag != nil {
				return value.Null, diag
			}
			if value.Truthy(keep) {
				out = append(out, e)
			}
		}
		return value.NewArray(out), nil
	}})

	reg.Register(&native.Entry{Name: "forEach", Arity: 2, Kind: "pure", Fn: func(ctx *native.Context, args []value.Value) (value.Value, *span.Diagnostic) {
		arr, diag := asArray(args[0])
		if diag != nil {
			return value.Null, diag
		}
		for _, e := range arr.Elems {
			if _, diag := ctx.Caller.CallValue(args[1], []value.Value{e}); diag != nil {
				return value.Null, diag
			}
		}
		return value.Null, nil
	}})
}
