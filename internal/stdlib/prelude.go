// Package stdlib is the reference prelude described in SPEC_FULL.md
// §15: a concrete set of native functions registered behind the same
// boundary internal/native defines, the way the teacher ships
// internal/builtins alongside go-dws's core engine. It is not part of
// the closed core — a façade may swap it out via
// pkg/atlas.WithoutDefaultPrelude().
package stdlib

import "github.com/atlas-lang/atlas/internal/native"

// Register installs every prelude native into reg.
func Register(reg *native.Registry) {
	registerCore(reg)
	registerArray(reg)
	registerCollections(reg)
	registerOptionResult(reg)
	registerJSON(reg)
	registerTime(reg)
	registerIO(reg)
}
