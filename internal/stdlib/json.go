package stdlib

import (
	"encoding/json"

	"github.com/atlas-lang/atlas/internal/native"
	"github.com/atlas-lang/atlas/internal/span"
	"github.com/atlas-lang/atlas/internal/value"
	"github.com/tidwall/gjson"
)

// registerJSON installs Json value operations on top of gjson,
// grounded on the teacher's internal/jsonvalue Kind+Value pair
// (Object/Array/String/Number/Bool/Null), represented here as an
// opaque string-backed Value.KindJson payload that gjson parses
// lazily per access rather than materializing a parallel tree.
func registerJSON(reg *native.Registry) {
	reg.Register(&native.Entry{Name: "jsonParse", Arity: 1, Kind: "pure", Fn: func(ctx *native.Context, args []value.Value) (value.Value, *span.Diagnostic) {
		text, ok := args[0].Data.(string)
		if !ok {
			return value.Null, wrongType("'jsonParse' requires a string")
		}
		if !gjson.Valid(text) {
			return value.Null, span.New(span.ErrRuntimeGeneric).Message("invalid JSON text").Build()
		}
		return value.Value{Kind: value.KindJson, Data: text}, nil
	}})

	reg.Register(&native.Entry{Name: "jsonStringify", Arity: 1, Kind: "pure", Fn: func(ctx *native.Context, args []value.Value) (value.Value, *span.Diagnostic) {
		if args[0].Kind == value.KindJson {
			return value.String(args[0].Data.(string)), nil
		}
		raw, err := json.Marshal(jsonify(args[0]))
		if err != nil {
			return value.Null, span.New(span.ErrRuntimeGeneric).Message("jsonStringify: " + err.Error()).Build()
		}
		return value.String(string(raw)), nil
	}})

	reg.Register(&native.Entry{Name: "jsonGet", Arity: 2, Kind: "pure", Fn: func(ctx *native.Context, args []value.Value) (value.Value, *span.Diagnostic) {
		doc, ok := args[0].Data.(string)
		if args[0].Kind != value.KindJson || !ok {
			return value.Null, wrongType("'jsonGet' requires a Json value")
		}
		path, ok := args[1].Data.(string)
		if !ok {
			return value.Null, wrongType("'jsonGet' requires a string path")
		}
		res := gjson.Get(doc, path)
		if !res.Exists() {
			return value.None(), nil
		}
		return value.Some(fromGJSON(res)), nil
	}})
}

// jsonify converts an Atlas Value into a plain Go value encoding/json
// can marshal.
func jsonify(v value.Value) any {
	switch v.Kind {
	case value.KindNull:
		return nil
	case value.KindBool:
		return v.Data.(bool)
	case value.KindNumber:
		return v.Data.(float64)
	case value.KindString:
		return v.Data.(string)
	case value.KindArray:
		arr := v.Data.(*value.Array)
		out := make([]any, len(arr.Elems))
		for i, e := range arr.Elems {
			out[i] = jsonify(e)
		}
		return out
	default:
		return value.Inspect(v)
	}
}

// fromGJSON converts a gjson.Result into an Atlas Value, boxing
// objects/arrays back into the opaque KindJson string form so nested
// access continues through jsonGet rather than materializing a
// parallel struct hierarchy.
func fromGJSON(res gjson.Result) value.Value {
	switch res.Type {
	case gjson.Null:
		return value.Null
	case gjson.True, gjson.False:
		return value.Bool(res.Bool())
	case gjson.Number:
		return value.Number(res.Float())
	case gjson.String:
		return value.String(res.String())
	default:
		if res.IsArray() || res.IsObject() {
			return value.Value{Kind: value.KindJson, Data: res.Raw}
		}
		return value.String(res.Raw)
	}
}
