package cmd

import (
	"fmt"

	"github.com/atlas-lang/atlas/internal/span"
	"github.com/atlas-lang/atlas/internal/value"
	"github.com/spf13/cobra"
)

var callFn string

var evalCmd = &cobra.Command{
	Use:   "eval <source>",
	Short: "Evaluate an inline Atlas expression or program",
	Long: `Evaluate Atlas source passed as an argument rather than a file.

Examples:
  atlas eval "print(1 + 2);"
  atlas eval --call main "fn main() -> number { return 42; }"`,
	Args: cobra.ExactArgs(1),
	RunE: evalSource,
}

func init() {
	evalCmd.Flags().StringVar(&callFn, "call", "", "after evaluating, call this top-level function and print its result")
	rootCmd.AddCommand(evalCmd)
}

func evalSource(_ *cobra.Command, args []string) error {
	rt := newRuntime()
	result := rt.Eval("<eval>", args[0])
	if err := reportDiagnostics(result.Diagnostics); err != nil {
		return err
	}
	if callFn == "" {
		return nil
	}
	v, diag := rt.CallFunction(callFn)
	if diag != nil {
		return reportDiagnostics([]*span.Diagnostic{diag})
	}
	fmt.Println(value.Inspect(v))
	return nil
}
