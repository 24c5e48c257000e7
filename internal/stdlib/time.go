package stdlib

import (
	"time"

	"github.com/atlas-lang/atlas/internal/native"
	"github.com/atlas-lang/atlas/internal/span"
	"github.com/atlas-lang/atlas/internal/value"
)

// registerTime installs dateTimeNow, flagged nondeterministic (spec
// §8): two runs of the same program may observe different results, so
// no golden program calls it.
func registerTime(reg *native.Registry) {
	reg.Register(&native.Entry{Name: "dateTimeNow", Arity: 0, Kind: "pure", Fn: func(ctx *native.Context, args []value.Value) (value.Value, *span.Diagnostic) {
		return value.Value{Kind: value.KindDateTime, Data: time.Now().UTC()}, nil
	}})
}
