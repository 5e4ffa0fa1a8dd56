// Package cmd provides the CLI commands for the coverscope tool.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/coverscope/coverscope/internal/logging"
)

var logConfig = logging.LogConfig{ //nolint:gochecknoglobals // CLI flag target
	Level:  "info",
	Format: "text",
}

var rootCmd = &cobra.Command{ //nolint:gochecknoglobals // CLI command
	Use:   "coverscope",
	Short: "Merge coverage and test-failure data into reports",
	Long: `coverscope correlates line-level coverage traces with test-failure
locations and renders the merged result as HTML, Markdown, and JSON
reports plus an idempotent pull request comment.`,
	SilenceUsage: true,
}

// Execute runs the root command. Errors are printed by cobra; the caller
// sets the process exit status.
func Execute() error {
	return rootCmd.Execute()
}

func init() { //nolint:gochecknoinits // CLI command initialization
	rootCmd.PersistentFlags().StringVar(&logConfig.Level, "log-level", "info", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logConfig.Format, "log-format", "text", "Log format (text, json)")

	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(commentCmd)
	rootCmd.AddCommand(badgeCmd)
}
