package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/teranos/codecomplete/cmd/codecomplete/commands"
	"github.com/teranos/codecomplete/logger"
)

var rootCmd = &cobra.Command{
	Use:   "codecomplete",
	Short: "Code completion from the command line",
	Long: `codecomplete - code completion candidates from a language server.

Resolves the source text and compiler arguments for a file, asks an
analysis service (sourcekit-lsp by default) for completions at an offset,
and prints the ranked candidates.

Available commands:
  complete - Generate code completion options
  modules  - List Swift package modules for --module
  config   - Show and validate configuration
  version  - Show version information

Examples:
  codecomplete complete --file Foo.swift --offset 120
  codecomplete complete --text 'struct Foo { func bar() {} }' --offset 29
  codecomplete config show`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonLogs, _ := cmd.Flags().GetBool("log-json")
		if err := logger.Initialize(logger.Options{Verbosity: verbosity, JSON: jsonLogs}); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger.Debugw("Logger initialized", "verbosity", logger.LevelName(verbosity), "json", jsonLogs)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase log verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Write logs to stderr as JSON")

	rootCmd.AddCommand(commands.CompleteCmd)
	rootCmd.AddCommand(commands.ModulesCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		commands.ReportError(os.Stderr, err)
		os.Exit(1)
	}
}
