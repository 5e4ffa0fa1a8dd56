package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/coverscope/coverscope/internal/github"
	"github.com/coverscope/coverscope/internal/logging"
	"github.com/coverscope/coverscope/internal/output"
)

// ErrNoPullRequest is returned when no pull request number can be resolved
// from flags or the environment.
var ErrNoPullRequest = errors.New("no pull request number resolved")

var commentCmd = &cobra.Command{ //nolint:gochecknoglobals // CLI command
	Use:   "comment",
	Short: "Synchronize a rendered report as a PR comment",
	Long: `Publish an already-rendered Markdown report as the marked pull request
comment, using the ADD, UPDATE, or REMOVE synchronization strategy.
UPDATE (the default) keeps at most one marked comment on the thread.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if pr, _ := cmd.Flags().GetInt("pr"); pr > 0 {
			cfg.GitHub.PullRequest = pr
		}
		if !cfg.IsPullRequestContext() {
			return ErrNoPullRequest
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("configuration validation failed: %w", err)
		}

		bodyFile, _ := cmd.Flags().GetString("body")
		body, err := os.ReadFile(bodyFile) //nolint:gosec // caller-supplied report path
		if err != nil {
			return fmt.Errorf("failed to read comment body: %w", err)
		}

		logger := logging.New(&logConfig, cmd.ErrOrStderr())
		out := output.NewColoredWriter(cmd.OutOrStdout(), cmd.ErrOrStderr())

		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()

		client := github.NewClient(&github.Config{
			Token:      cfg.GitHub.Token,
			Owner:      cfg.GitHub.Owner,
			Repository: cfg.GitHub.Repository,
			Timeout:    cfg.GitHub.Timeout,
		})
		marker, _ := cmd.Flags().GetString("marker")
		sync := github.NewSynchronizer(client, marker)
		strategy := github.ParseStrategy(cfg.GitHub.CommentStrategy)

		if err := sync.Upsert(ctx, cfg.GitHub.PullRequest, strategy, string(body)); err != nil {
			return fmt.Errorf("failed to publish PR comment: %w", err)
		}

		logger.WithField(logging.StandardFields.PRNumber, cfg.GitHub.PullRequest).
			WithField(logging.StandardFields.Status, strategy.String()).
			Info("PR comment synchronized")
		out.Successf("PR comment synchronized on #%d", cfg.GitHub.PullRequest)
		return nil
	},
}

func init() { //nolint:gochecknoinits // CLI command initialization
	commentCmd.Flags().String("config", "", "Optional YAML config file")
	commentCmd.Flags().StringP("body", "b", "", "Markdown file to publish as the comment body")
	commentCmd.Flags().Int("pr", 0, "Pull request number")
	commentCmd.Flags().String("token", "", "GitHub API token")
	commentCmd.Flags().String("strategy", "", "Comment strategy (ADD, UPDATE, REMOVE)")
	commentCmd.Flags().String("marker", "", "Override the hidden comment marker")
	_ = commentCmd.MarkFlagRequired("body")
}
