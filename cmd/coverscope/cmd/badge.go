package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/coverscope/coverscope/internal/badge"
	"github.com/coverscope/coverscope/internal/output"
	"github.com/coverscope/coverscope/internal/summary"
)

var badgeCmd = &cobra.Command{ //nolint:gochecknoglobals // CLI command
	Use:   "badge",
	Short: "Generate an SVG coverage badge",
	Long: `Read the coverage summary and render a flat-style SVG badge for the
line-coverage percentage.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		summaryFile, _ := cmd.Flags().GetString("summary")
		outputFile, _ := cmd.Flags().GetString("output")
		label, _ := cmd.Flags().GetString("label")

		sums, err := summary.Read(summaryFile)
		if err != nil {
			return fmt.Errorf("failed to read coverage summary: %w", err)
		}

		generator := badge.NewWithConfig(&badge.Config{
			Label: label,
			ThresholdConfig: badge.ThresholdConfig{
				Excellent:  90.0,
				Good:       80.0,
				Acceptable: 70.0,
				Low:        60.0,
			},
		})
		svg := generator.Generate(sums.Total.Lines.Pct)

		if err := os.WriteFile(outputFile, svg, 0o600); err != nil {
			return fmt.Errorf("failed to write badge: %w", err)
		}

		out := output.NewColoredWriter(cmd.OutOrStdout(), cmd.ErrOrStderr())
		out.Successf("Badge written to %s (%.1f%%)", outputFile, sums.Total.Lines.Pct)
		return nil
	},
}

func init() { //nolint:gochecknoinits // CLI command initialization
	badgeCmd.Flags().StringP("summary", "s", "coverage/coverage-summary.json", "Coverage summary file")
	badgeCmd.Flags().StringP("output", "o", "coverage.svg", "Output SVG file")
	badgeCmd.Flags().String("label", "coverage", "Badge label text")
}
