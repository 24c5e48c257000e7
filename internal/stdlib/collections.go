package stdlib

import (
	"github.com/atlas-lang/atlas/internal/native"
	"github.com/atlas-lang/atlas/internal/span"
	"github.com/atlas-lang/atlas/internal/value"
)

func wrongType(msg string) *span.Diagnostic {
	return span.New(span.ErrNativeWrongType).Message(msg).Build()
}

// registerCollections installs the HashMap/HashSet/Queue/Stack
// families the core type system doesn't name but the prelude exposes
// as opaque Value kinds (SPEC_FULL.md §9 supplement).
func registerCollections(reg *native.Registry) {
	reg.Register(&native.Entry{Name: "hashMapNew", Arity: 0, Kind: "pure", Fn: func(ctx *native.Context, args []value.Value) (value.Value, *span.Diagnostic) {
		return value.NewHashMap(), nil
	}})
	reg.Register(&native.Entry{Name: "hashMapPut", Arity: 3, Kind: "pure", Fn: func(ctx *native.Context, args []value.Value) (value.Value, *span.Diagnostic) {
		m, ok := args[0].Data.(*value.HashMap)
		if !ok {
			return value.Null, wrongType("'hashMapPut' requires a HashMap")
		}
		m.Put(args[1].Data.(string), args[2])
		return value.Null, nil
	}})
	reg.Register(&native.Entry{Name: "hashMapGet", Arity: 2, Kind: "pure", Fn: func(ctx *native.Context, args []value.Value) (value.Value, *span.Diagnostic) {
		m, ok := args[0].Data.(*value.HashMap)
		if !ok {
			return value.Null, wrongType("'hashMapGet' requires a HashMap")
		}
		if v, found := m.Get(args[1].Data.(string)); found {
			return value.Some(v), nil
		}
		return value.None(), nil
	}})
	reg.Register(&native.Entry{Name: "hashMapHas", Arity: 2, Kind: "pure", Fn: func(ctx *native.Context, args []value.Value) (value.Value, *span.Diagnostic) {
		m := args[0].Data.(*value.HashMap)
		_, found := m.Get(args[1].Data.(string))
		return value.Bool(found), nil
	}})
	reg.Register(&native.Entry{Name: "hashMapDelete", Arity: 2, Kind: "pure", Fn: func(ctx *native.Context, args []value.Value) (value.Value, *span.Diagnostic) {
		m := args[0].Data.(*value.HashMap)
		return value.Bool(m.Delete(args[1].Data.(string))), nil
	}})
	reg.Register(&native.Entry{Name: "hashMapSize", Arity: 1, Kind: "pure", Fn: func(ctx *native.Context, args []value.Value) (value.Value, *span.Diagnostic) {
		m := args[0].Data.(*value.HashMap)
		return value.Number(float64(m.Size())), nil
	}})
	reg.Register(&native.Entry{Name: "hashMapKeys", Arity: 1, Kind: "pure", Fn: func(ctx *native.Context, args []value.Value) (value.Value, *span.Diagnostic) {
		m := args[0].Data.(*value.HashMap)
		keys := m.Keys()
		out := make([]value.Value, len(keys))
		for i, k := range keys {
			out[i] = value.String(k)
		}
		return value.NewArray(out), nil
	}})

	reg.Register(&native.Entry{Name: "hashSetNew", Arity: 0, Kind: "pure", Fn: func(ctx *native.Context, args []value.Value) (value.Value, *span.Diagnostic) {
		return value.NewHashSet(), nil
	}})
	reg.Register(&native.Entry{Name: "hashSetAdd", Arity: 2, Kind: "pure", Fn: func(ctx *native.Context, args []value.Value) (value.Value, *span.Diagnostic) {
		s := args[0].Data.(*value.HashSet)
		return value.Bool(s.Add(args[1])), nil
	}})
	reg.Register(&native.Entry{Name: "hashSetHas", Arity: 2, Kind: "pure", Fn: func(ctx *native.Context, args []value.Value) (value.Value, *span.Diagnostic) {
		s := args[0].Data.(*value.HashSet)
		return value.Bool(s.Has(args[1])), nil
	}})
	reg.Register(&native.Entry{Name: "hashSetDelete", Arity: 2, Kind: "pure", Fn: func(ctx *native.Context, args []value.Value) (value.Value, *span.Diagnostic) {
		s := args[0].Data.(*value.HashSet)
		return value.Bool(s.Remove(args[1])), nil
	}})
	reg.Register(&native.Entry{Name: "hashSetSize", Arity: 1, Kind: "pure", Fn: func(ctx *native.Context, args []value.Value) (value.Value, *span.Diagnostic) {
		s := args[0].Data.(*value.HashSet)
		return value.Number(float64(s.Size())), nil
	}})

	reg.Register(&native.Entry{Name: "queueNew", Arity: 0, Kind: "pure", Fn: func(ctx *native.Context, args []value.Value) (value.Value, *span.Diagnostic) {
		return value.NewQueue(), nil
	}})
	reg.Register(&native.Entry{Name: "queuePush", Arity: 2, Kind: "pure", Fn: func(ctx *native.Context, args []value.Value) (value.Value, *span.Diagnostic) {
		q := args[0].Data.(*value.Queue)
		q.Enqueue(args[1])
		return value.Null, nil
	}})
	reg.Register(&native.Entry{Name: "queuePop", Arity: 1, Kind: "pure", Fn: func(ctx *native.Context, args []value.Value) (value.Value, *span.Diagnostic) {
		q := args[0].Data.(*value.Queue)
		v, ok := q.Dequeue()
		if !ok {
			return value.None(), nil
		}
		return value.Some(v), nil
	}})
	reg.Register(&native.Entry{Name: "queueSize", Arity: 1, Kind: "pure", Fn: func(ctx *native.Context, args []value.Value) (value.Value, *span.Diagnostic) {
		q := args[0].Data.(*value.Queue)
		return value.Number(float64(q.Size())), nil
	}})

	reg.Register(&native.Entry{Name: "stackNew", Arity: 0, Kind: "pure", Fn: func(ctx *native.Context, args []value.Value) (value.Value, *span.Diagnostic) {
		return value.NewStack(), nil
	}})
	reg.Register(&native.Entry{Name: "stackPush", Arity: 2, Kind: "pure", Fn: func(ctx *native.Context, args []value.Value) (value.Value, *span.Diagnostic) {
		s := args[0].Data.(*value.Stack)
		s.Push(args[1])
		return value.Null, nil
	}})
	reg.Register(&native.Entry{Name: "stackPop", Arity: 1, Kind: "pure", Fn: func(ctx *native.Context, args []value.Value) (value.Value, *span.Diagnostic) {
		s := args[0].Data.(*value.Stack)
		v, ok := s.Pop()
		if !ok {
			return value.None(), nil
		}
		return value.Some(v), nil
	}})
	reg.Register(&native.Entry{Name: "stackSize", Arity: 1, Kind: "pure", Fn: func(ctx *native.Context, args []value.Value) (value.Value, *span.Diagnostic) {
		s := args[0].Data.(*value.Stack)
		return value.Number(float64(s.Size())), nil
	}})
}
