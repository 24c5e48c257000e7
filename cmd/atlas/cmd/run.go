package cmd

import (
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Run an Atlas script file",
	Long: `Execute an Atlas program from a file.

Examples:
  atlas run script.atl
  atlas run --vm script.atl
  atlas run --trust --config atlas.yaml script.atl`,
	Args: cobra.ExactArgs(1),
	RunE: runFile,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runFile(_ *cobra.Command, args []string) error {
	rt := newRuntime()
	result := rt.EvalFile(args[0])
	return reportDiagnostics(result.Diagnostics)
}
