package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version is set by build flags.
	Version = "0.1.0-dev"
)

var rootCmd = &cobra.Command{
	Use:     "atlas",
	Short:   "Atlas scripting language runtime",
	Long:    `atlas embeds and runs Atlas programs: a small, closed-type-set, dynamically-typed scripting language with an interpreter and a bytecode VM that agree on every observable outcome.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("atlas version %s\n", Version))
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to an atlas.yaml config overlay")
	rootCmd.PersistentFlags().BoolVar(&useVM, "vm", false, "run on the bytecode VM instead of the tree-walking interpreter")
	rootCmd.PersistentFlags().BoolVar(&trustAll, "trust", false, "grant every native capability (filesystem, network, process, ffi, env, reflection)")
	rootCmd.PersistentFlags().IntVar(&maxCallDepth, "max-call-depth", 0, "override the call-stack recursion ceiling (0 = default)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "human", "diagnostic output format: human or json")
}

var (
	configPath   string
	useVM        bool
	trustAll     bool
	maxCallDepth int
	outputFormat string
)
