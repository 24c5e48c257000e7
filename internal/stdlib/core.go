package stdlib

import (
	"fmt"

	"github.com/atlas-lang/atlas/internal/native"
	"github.com/atlas-lang/atlas/internal/span"
	"github.com/atlas-lang/atlas/internal/value"
	"github.com/google/uuid"
)

func registerCore(reg *native.Registry) {
	reg.Register(&native.Entry{Name: "print", Arity: 1, Kind: "pure", Fn: func(ctx *native.Context, args []value.Value) (value.Value, *span.Diagnostic) {
		fmt.Fprintln(ctx.Stdout, value.Inspect(args[0]))
		return value.Null, nil
	}})

	reg.Register(&native.Entry{Name: "len", Arity: 1, Kind: "pure", Fn: func(ctx *native.Context, args []value.Value) (value.Value, *span.Diagnostic) {
		switch v := args[0]; v.Kind {
		case value.KindString:
			return value.Number(float64(len([]rune(v.Data.(string))))), nil
		case value.KindArray:
			return value.Number(float64(len(v.Data.(*value.Array).Elems))), nil
		default:
			return value.Null, span.New(span.ErrNativeWrongType).Message("'len' requires a string or array").Build()
		}
	}})

	reg.Register(&native.Entry{Name: "str", Arity: 1, Kind: "pure", Fn: func(ctx *native.Context, args []value.Value) (value.Value, *span.Diagnostic) {
		return value.String(value.Inspect(args[0])), nil
	}})

	reg.Register(&native.Entry{Name: "assert", Arity: 1, Kind: "pure", Fn: func(ctx *native.Context, args []value.Value) (value.Value, *span.Diagnostic) {
		if !value.Truthy(args[0]) {
			return value.Null, span.New(span.ErrRuntimeGeneric).Message("assertion failed").Build()
		}
		return value.Null, nil
	}})

	reg.Register(&native.Entry{Name: "reflect_deep_equals", Arity: 2, Kind: "reflection", Fn: func(ctx *native.Context, args []value.Value) (value.Value, *span.Diagnostic) {
		return value.Bool(value.DeepEqual(args[0], args[1])), nil
	}})

	// random is flagged nondeterministic (spec §8): it draws from a
	// uuid-derived byte stream rather than math/rand so repeated calls
	// within one process are not reproducible via a seed the script can
	// observe or control.
	reg.Register(&native.Entry{Name: "random", Arity: 0, Kind: "pure", Fn: func(ctx *native.Context, args []value.Value) (value.Value, *span.Diagnostic) {
		id := uuid.New()
		n := float64(id[0])/256 + float64(id[1])/256/256
		return value.Number(n), nil
	}})
}
