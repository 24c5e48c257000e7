// Package types implements the closed static type system described in
// spec §3/§4.4, grounded on the teacher's internal/types registry
// generalized from DWScript's open class hierarchy down to Atlas's
// closed set.
package types

import "fmt"

// Kind tags which member of the closed type set a Type is.
type Kind int

const (
	KindUnknown Kind = iota
	KindNumber
	KindString
	KindBool
	KindVoid
	KindNull
	KindArray
	KindFunction
	KindOption
	KindResult
	KindJson
)

// Type is an immutable static type value.
type Type struct {
	Kind Kind

	Elem *Type // Array(T), Option(T)

	Params []Type // Function params
	Return *Type  // Function return

	Ok  *Type // Result(Ok, Err)
	Err *Type
}

var (
	Number  = Type{Kind: KindNumber}
	String  = Type{Kind: KindString}
	Bool    = Type{Kind: KindBool}
	Void    = Type{Kind: KindVoid}
	Null    = Type{Kind: KindNull}
	Json    = Type{Kind: KindJson}
	Unknown = Type{Kind: KindUnknown}
)

// NewArray builds Array(elem).
func NewArray(elem Type) Type {
	e := elem
	return Type{Kind: KindArray, Elem: &e}
}

// NewFunction builds Function{params, return}.
func NewFunction(params []Type, ret Type) Type {
	r := ret
	return Type{Kind: KindFunction, Params: params, Return: &r}
}

// NewOption builds Option(T).
func NewOption(t Type) Type {
	e := t
	return Type{Kind: KindOption, Elem: &e}
}

// NewResult builds Result(Ok, Err).
func NewResult(ok, err Type) Type {
	o, e := ok, err
	return Type{Kind: KindResult, Ok: &o, Err: &e}
}

// String renders the type the way Atlas source would spell it.
func (t Type) String() string {
	switch t.Kind {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindVoid:
		return "void"
	case KindNull:
		return "null"
	case KindJson:
		return "Json"
	case KindUnknown:
		return "Unknown"
	case KindArray:
		return t.Elem.String() + "[]"
	case KindOption:
		return fmt.Sprintf("Option(%s)", t.Elem.String())
	case KindResult:
		return fmt.Sprintf("Result(%s, %s)", t.Ok.String(), t.Err.String())
	case KindFunction:
		return "Function"
	default:
		return "?"
	}
}

// Equal reports whether t and other denote the same type. Unknown is
// equal only to Unknown, not to other types (callers that want Unknown
// as a wildcard use IsAssignable).
func (t Type) Equal(other Type) bool {
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case KindArray:
		return t.Elem.Equal(*other.Elem)
	case KindOption:
		return t.Elem.Equal(*other.Elem)
	case KindResult:
		return t.Ok.Equal(*other.Ok) && t.Err.Equal(*other.Err)
	case KindFunction:
		if len(t.Params) != len(other.Params) || !t.Return.Equal(*other.Return) {
			return false
		}
		for i := range t.Params {
			if !t.Params[i].Equal(other.Params[i]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// IsAssignable reports whether a value of type `from` may be used
// where `to` is expected. Unknown is compatible with anything in
// either position, per spec §3's subtyping rule, so that the checker
// can defer judgement without cascading errors.
func IsAssignable(from, to Type) bool {
	if from.Kind == KindUnknown || to.Kind == KindUnknown {
		return true
	}
	return from.Equal(to)
}

// IsNumeric reports whether t is Number.
func (t Type) IsNumeric() bool { return t.Kind == KindNumber }

// IsOrdered reports whether t supports <, <=, >, >= (spec §4.4).
func (t Type) IsOrdered() bool { return t.Kind == KindNumber || t.Kind == KindString }
