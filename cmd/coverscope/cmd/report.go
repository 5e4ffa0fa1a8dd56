package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/coverscope/coverscope/internal/actions"
	"github.com/coverscope/coverscope/internal/badge"
	"github.com/coverscope/coverscope/internal/config"
	"github.com/coverscope/coverscope/internal/failures"
	"github.com/coverscope/coverscope/internal/github"
	"github.com/coverscope/coverscope/internal/lcov"
	"github.com/coverscope/coverscope/internal/logging"
	"github.com/coverscope/coverscope/internal/output"
	"github.com/coverscope/coverscope/internal/report"
	"github.com/coverscope/coverscope/internal/summary"
)

var reportCmd = &cobra.Command{ //nolint:gochecknoglobals // CLI command
	Use:   "report",
	Short: "Run the full coverage report pipeline",
	Long: `Parse the coverage trace, read the coverage summary, extract failure
locations from test results, render all report artifacts, and publish
the PR comment when running in a pull request context.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("configuration validation failed: %w", err)
		}

		logger := logging.New(&logConfig, cmd.ErrOrStderr())
		out := output.NewColoredWriter(cmd.OutOrStdout(), cmd.ErrOrStderr())

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		// Step 1: mandatory inputs.
		tracePath := resolve(cfg.RepoRoot, cfg.TraceFile)
		summaryPath := resolve(cfg.RepoRoot, cfg.SummaryFile)

		profile, err := lcov.New(cfg.RepoRoot).ParseFile(ctx, tracePath)
		if err != nil {
			return fmt.Errorf("failed to parse coverage trace: %w", err)
		}
		logger.WithField(logging.StandardFields.Component, "lcov").
			Debugf("parsed %d instrumented files", len(profile))

		sums, err := summary.Read(summaryPath)
		if err != nil {
			return fmt.Errorf("failed to read coverage summary: %w", err)
		}

		// Step 2: optional failure enrichment.
		var locations failures.Locations
		if cfg.ResultsFile != "" {
			locations = failures.ExtractFile(resolve(cfg.RepoRoot, cfg.ResultsFile), cfg.RepoRoot)
			if len(locations) == 0 {
				out.Warn("No failure locations extracted; report renders without failure enrichment")
			}
		}

		// Step 3: merge and render.
		records := report.AssembleRecords(cfg.RepoRoot, profile, locations, sums)

		builder := report.NewWithConfig(&report.Config{
			Title:           cfg.Title,
			Threshold:       cfg.Threshold,
			MaxFiles:        cfg.MaxFiles,
			MaxLinesPerFile: cfg.MaxLinesPerFile,
		})
		artifacts, err := builder.Build(ctx, &report.Input{
			Title:       cfg.Title,
			TracePath:   tracePath,
			SummaryPath: summaryPath,
			ResultsPath: cfg.ResultsFile,
			Totals:      sums.Total,
			Files:       records,
		})
		if err != nil {
			return err
		}

		// Step 4: write artifacts.
		outputDir := resolve(cfg.RepoRoot, cfg.OutputDir)
		if err := os.MkdirAll(outputDir, 0o750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		htmlPath := filepath.Join(outputDir, "index.html")
		files := map[string][]byte{
			htmlPath:                                 artifacts.HTML,
			filepath.Join(outputDir, "report.json"):  artifacts.JSON,
			filepath.Join(outputDir, "summary.md"):   artifacts.Markdown,
			filepath.Join(outputDir, "coverage.svg"): badge.New().Generate(sums.Total.Lines.Pct),
		}
		for path, content := range files {
			if err := os.WriteFile(path, content, 0o600); err != nil {
				return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
			}
		}
		out.Successf("Report written to %s", outputDir)

		// Step 5: CI sinks.
		if err := actions.AppendStepSummary(cfg.StepSummaryFile, artifacts.StepSummary); err != nil {
			return err
		}
		pairs := []actions.Pair{
			{Key: "report-dir", Value: outputDir},
			{Key: "html-report", Value: htmlPath},
			{Key: "lines", Value: fmt.Sprintf("%.2f", sums.Total.Lines.Pct)},
			{Key: "branches", Value: fmt.Sprintf("%.2f", sums.Total.Branches.Pct)},
			{Key: "functions", Value: fmt.Sprintf("%.2f", sums.Total.Functions.Pct)},
			{Key: "statements", Value: fmt.Sprintf("%.2f", sums.Total.Statements.Pct)},
			{Key: "quality-gate", Value: string(artifacts.Gate.Status)},
		}
		if err := actions.AppendOutput(cfg.OutputFile, pairs); err != nil {
			return err
		}

		if artifacts.Gate.Status == report.GatePass {
			out.Successf("Quality gate: PASS (%.2f%% >= %.2f%%)", artifacts.Gate.Value, artifacts.Gate.Threshold)
		} else {
			// The gate verdict is informational output, not a failure
			// signal; the run still exits zero.
			out.Warnf("Quality gate: FAIL (%.2f%% < %.2f%%)", artifacts.Gate.Value, artifacts.Gate.Threshold)
		}

		// Step 6: PR comment.
		if cfg.IsPullRequestContext() {
			client := github.NewClient(&github.Config{
				Token:      cfg.GitHub.Token,
				Owner:      cfg.GitHub.Owner,
				Repository: cfg.GitHub.Repository,
				Timeout:    cfg.GitHub.Timeout,
			})
			sync := github.NewSynchronizer(client, "")
			strategy := github.ParseStrategy(cfg.GitHub.CommentStrategy)

			if err := sync.Upsert(ctx, cfg.GitHub.PullRequest, strategy, string(artifacts.Markdown)); err != nil {
				return fmt.Errorf("failed to publish PR comment: %w", err)
			}
			logger.WithField(logging.StandardFields.PRNumber, cfg.GitHub.PullRequest).
				Info("PR comment synchronized")
			out.Successf("PR comment synchronized on #%d", cfg.GitHub.PullRequest)
		}

		return nil
	},
}

// loadConfig assembles the run configuration: environment defaults, then
// the optional YAML file, then command-line flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Load()

	if configFile, _ := cmd.Flags().GetString("config"); configFile != "" {
		if err := cfg.LoadFile(configFile); err != nil {
			return nil, err
		}
	}

	flagString(cmd, "title", &cfg.Title)
	flagString(cmd, "repo-root", &cfg.RepoRoot)
	flagString(cmd, "trace", &cfg.TraceFile)
	flagString(cmd, "summary", &cfg.SummaryFile)
	flagString(cmd, "results", &cfg.ResultsFile)
	flagString(cmd, "output", &cfg.OutputDir)
	flagString(cmd, "token", &cfg.GitHub.Token)
	flagString(cmd, "strategy", &cfg.GitHub.CommentStrategy)

	if cmd.Flags().Changed("threshold") {
		cfg.Threshold, _ = cmd.Flags().GetFloat64("threshold")
	}
	if cmd.Flags().Changed("max-files") {
		cfg.MaxFiles, _ = cmd.Flags().GetInt("max-files")
	}
	if cmd.Flags().Changed("max-lines") {
		cfg.MaxLinesPerFile, _ = cmd.Flags().GetInt("max-lines")
	}
	if cmd.Flags().Changed("pr") {
		cfg.GitHub.PullRequest, _ = cmd.Flags().GetInt("pr")
	}

	return cfg, nil
}

func flagString(cmd *cobra.Command, name string, dst *string) {
	if cmd.Flags().Changed(name) {
		*dst, _ = cmd.Flags().GetString(name)
	}
}

// resolve joins path with the repository root unless it is already
// absolute.
func resolve(repoRoot, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(repoRoot, path)
}

func init() { //nolint:gochecknoinits // CLI command initialization
	reportCmd.Flags().String("config", "", "Optional YAML config file")
	reportCmd.Flags().String("title", "", "Report title")
	reportCmd.Flags().String("repo-root", "", "Repository root directory")
	reportCmd.Flags().StringP("trace", "t", "", "Coverage trace file (lcov.info)")
	reportCmd.Flags().StringP("summary", "s", "", "Coverage summary file (coverage-summary.json)")
	reportCmd.Flags().StringP("results", "r", "", "Test results file (jest-results.json)")
	reportCmd.Flags().StringP("output", "o", "", "Output directory")
	reportCmd.Flags().Float64("threshold", 80, "Quality gate line-coverage threshold")
	reportCmd.Flags().Int("max-files", 5, "Max files shown in capped views")
	reportCmd.Flags().Int("max-lines", 50, "Max lines per file in capped views")
	reportCmd.Flags().Int("pr", 0, "Pull request number")
	reportCmd.Flags().String("token", "", "GitHub API token")
	reportCmd.Flags().String("strategy", "", "Comment strategy (ADD, UPDATE, REMOVE)")
}
