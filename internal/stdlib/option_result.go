package stdlib

import (
	"github.com/atlas-lang/atlas/internal/native"
	"github.com/atlas-lang/atlas/internal/span"
	"github.com/atlas-lang/atlas/internal/value"
	"github.com/google/uuid"
)

// registerOptionResult installs Option/Result/Future helpers. Future
// is a pure value and combinator surface only — futureThen calls its
// callback inline and immediately wraps the result as resolved, since
// Atlas has no scheduler or spawn primitive (SPEC_FULL.md §17 Open
// Question decision).
func registerOptionResult(reg *native.Registry) {
	reg.Register(&native.Entry{Name: "isSome", Arity: 1, Kind: "pure", Fn: func(ctx *native.Context, args []value.Value) (value.Value, *span.Diagnostic) {
		o, ok := args[0].Data.(*value.Option)
		if !ok {
			return value.Null, wrongType("'isSome' requires an Option")
		}
		return value.Bool(o.Present), nil
	}})

	reg.Register(&native.Entry{Name: "unwrap", Arity: 1, Kind: "pure", Fn: func(ctx *native.Context, args []value.Value) (value.Value, *span.Diagnostic) {
		switch v := args[0].Data.(type) {
		case *value.Option:
			if !v.Present {
				return value.Null, span.New(span.ErrRuntimeGeneric).Message("called 'unwrap' on None").Build()
			}
			return v.Inner, nil
		case *value.Result:
			if !v.IsOk {
				return value.Null, span.New(span.ErrRuntimeGeneric).Message("called 'unwrap' on Err").Build()
			}
			return v.Inner, nil
		default:
			return value.Null, wrongType("'unwrap' requires an Option or Result")
		}
	}})

	reg.Register(&native.Entry{Name: "unwrap_or", Arity: 2, Kind: "pure", Fn: func(ctx *native.Context, args []value.Value) (value.Value, *span.Diagnostic) {
		switch v := args[0].Data.(type) {
		case *value.Option:
			if v.Present {
				return v.Inner, nil
			}
			return args[1], nil
		case *value.Result:
			if v.IsOk {
				return v.Inner, nil
			}
			return args[1], nil
		default:
			return value.Null, wrongType("'unwrap_or' requires an Option or Result")
		}
	}})

	reg.Register(&native.Entry{Name: "isOk", Arity: 1, Kind: "pure", Fn: func(ctx *native.Context, args []value.Value) (value.Value, *span.Diagnostic) {
		r, ok := args[0].Data.(*value.Result)
		if !ok {
			return value.Null, wrongType("'isOk' requires a Result")
		}
		return value.Bool(r.IsOk), nil
	}})

	reg.Register(&native.Entry{Name: "futureResolved", Arity: 1, Kind: "pure", Fn: func(ctx *native.Context, args []value.Value) (value.Value, *span.Diagnostic) {
		return value.Value{Kind: value.KindFuture, Data: &future{id: uuid.New(), resolved: true, inner: args[0]}}, nil
	}})

	reg.Register(&native.Entry{Name: "futureThen", Arity: 2, Kind: "pure", Fn: func(ctx *native.Context, args []value.Value) (value.Value, *span.Diagnostic) {
		f, ok := args[0].Data.(*future)
		if !ok || !f.resolved {
			return value.Null, wrongType("'futureThen' requires an already-resolved Future")
		}
		result, diag := ctx.Caller.CallValue(args[1], []value.Value{f.inner})
		if diag != nil {
			return value.Null, diag
		}
		return value.Value{Kind: value.KindFuture, Data: &future{id: uuid.New(), resolved: true, inner: result}}, nil
	}})
}

// future is the opaque payload behind value.KindFuture. It carries a
// google/uuid identity so two distinct Futures never alias even if
// they wrap equal inner values.
type future struct {
	id       uuid.UUID
	resolved bool
	inner    value.Value
}
