// Command atlas is the thin embedding CLI described in SPEC_FULL.md §0:
// run and eval only, no REPL, formatter, or language server (spec
// Non-goals).
package main

import (
	"fmt"
	"os"

	"github.com/atlas-lang/atlas/cmd/atlas/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
