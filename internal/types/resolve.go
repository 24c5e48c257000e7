package types

import "github.com/atlas-lang/atlas/internal/ast"

// namedTypes maps the closed set of annotation spellings from spec §6
// to their Type. Anything else resolves to Unknown so that unresolved
// annotations defer checking instead of hard-failing (spec §4.4).
var namedTypes = map[string]Type{
	"number": Number,
	"string": String,
	"bool":   Bool,
	"void":   Void,
	"null":   Null,
	"Json":   Json,
}

// ResolveTypeRef turns a parsed TypeRef into a Type, per
// resolve_type_ref (spec §4.3).
func ResolveTypeRef(ref ast.TypeRef) Type {
	switch t := ref.(type) {
	case nil:
		return Unknown
	case *ast.NamedType:
		if resolved, ok := namedTypes[t.Name]; ok {
			return resolved
		}
		return Unknown
	case *ast.ArrayType:
		return NewArray(ResolveTypeRef(t.Elem))
	default:
		return Unknown
	}
}
