package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearRunEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"COVERSCOPE_TITLE", "COVERSCOPE_TRACE_FILE", "COVERSCOPE_SUMMARY_FILE",
		"COVERSCOPE_RESULTS_FILE", "COVERSCOPE_OUTPUT_DIR", "COVERSCOPE_THRESHOLD",
		"COVERSCOPE_MAX_FILES", "COVERSCOPE_MAX_LINES_PER_FILE",
		"COVERSCOPE_COMMENT_STRATEGY", "GITHUB_TOKEN", "GITHUB_REPOSITORY",
		"GITHUB_REF", "GITHUB_PR_NUMBER", "GITHUB_WORKSPACE",
		"GITHUB_STEP_SUMMARY", "GITHUB_OUTPUT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearRunEnv(t)

	cfg := Load()

	assert.Equal(t, "Coverage Report", cfg.Title)
	assert.Equal(t, "coverage/lcov.info", cfg.TraceFile)
	assert.Equal(t, "coverage/coverage-summary.json", cfg.SummaryFile)
	assert.Equal(t, "jest-results.json", cfg.ResultsFile)
	assert.Equal(t, "coverage-report", cfg.OutputDir)
	assert.InDelta(t, 80.0, cfg.Threshold, 0.001)
	assert.Equal(t, 5, cfg.MaxFiles)
	assert.Equal(t, 50, cfg.MaxLinesPerFile)
	assert.Equal(t, "UPDATE", cfg.GitHub.CommentStrategy)
	assert.Equal(t, 30*time.Second, cfg.GitHub.Timeout)
	assert.False(t, cfg.IsPullRequestContext())
}

func TestLoadFromEnvironment(t *testing.T) {
	clearRunEnv(t)
	t.Setenv("COVERSCOPE_TITLE", "My Run")
	t.Setenv("COVERSCOPE_THRESHOLD", "92.5")
	t.Setenv("GITHUB_REPOSITORY", "acme/widgets")
	t.Setenv("GITHUB_TOKEN", "tok")
	t.Setenv("GITHUB_PR_NUMBER", "17")
	t.Setenv("GITHUB_STEP_SUMMARY", "/tmp/summary")

	cfg := Load()

	assert.Equal(t, "My Run", cfg.Title)
	assert.InDelta(t, 92.5, cfg.Threshold, 0.001)
	assert.Equal(t, "acme", cfg.GitHub.Owner)
	assert.Equal(t, "widgets", cfg.GitHub.Repository)
	assert.Equal(t, 17, cfg.GitHub.PullRequest)
	assert.Equal(t, "/tmp/summary", cfg.StepSummaryFile)
	assert.True(t, cfg.IsPullRequestContext())
}

func TestPullRequestFromRef(t *testing.T) {
	clearRunEnv(t)
	t.Setenv("GITHUB_REF", "refs/pull/123/merge")

	cfg := Load()
	assert.Equal(t, 123, cfg.GitHub.PullRequest)
}

func TestLoadFile(t *testing.T) {
	clearRunEnv(t)
	path := filepath.Join(t.TempDir(), "coverscope.yml")
	content := `
title: File Title
threshold: 70
github:
  comment_strategy: REMOVE
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg := Load()
	require.NoError(t, cfg.LoadFile(path))

	assert.Equal(t, "File Title", cfg.Title)
	assert.InDelta(t, 70.0, cfg.Threshold, 0.001)
	assert.Equal(t, "REMOVE", cfg.GitHub.CommentStrategy)
	// Untouched fields keep their defaults.
	assert.Equal(t, "coverage/lcov.info", cfg.TraceFile)
}

func TestLoadFileTimeout(t *testing.T) {
	tests := []struct {
		name     string
		timeout  string
		expected time.Duration
		wantErr  bool
	}{
		{name: "duration string", timeout: "45s", expected: 45 * time.Second},
		{name: "compound duration", timeout: "1m30s", expected: 90 * time.Second},
		{name: "bare nanoseconds", timeout: "30000000000", expected: 30 * time.Second},
		{name: "garbage", timeout: "soon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearRunEnv(t)
			path := filepath.Join(t.TempDir(), "coverscope.yml")
			content := "github:\n  timeout: " + tt.timeout + "\n"
			require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

			cfg := Load()
			err := cfg.LoadFile(path)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "failed to parse github timeout")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg.GitHub.Timeout)
		})
	}
}

func TestLoadFileTimeoutOmitted(t *testing.T) {
	clearRunEnv(t)
	path := filepath.Join(t.TempDir(), "coverscope.yml")
	content := "github:\n  comment_strategy: ADD\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg := Load()
	require.NoError(t, cfg.LoadFile(path))

	assert.Equal(t, "ADD", cfg.GitHub.CommentStrategy)
	// The default timeout survives a file that does not mention it.
	assert.Equal(t, 30*time.Second, cfg.GitHub.Timeout)
}

func TestLoadFileErrors(t *testing.T) {
	clearRunEnv(t)
	cfg := Load()

	err := cfg.LoadFile(filepath.Join(t.TempDir(), "absent.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")

	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("title: [unclosed"), 0o600))
	err = cfg.LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			TraceFile:   "coverage/lcov.info",
			SummaryFile: "coverage/coverage-summary.json",
			OutputDir:   "out",
			Threshold:   80,
		}
	}

	require.NoError(t, valid().Validate())

	c := valid()
	c.Threshold = 101
	require.ErrorIs(t, c.Validate(), ErrInvalidThreshold)

	c = valid()
	c.TraceFile = ""
	require.ErrorIs(t, c.Validate(), ErrEmptyTraceFile)

	c = valid()
	c.SummaryFile = ""
	require.ErrorIs(t, c.Validate(), ErrEmptySummaryFile)

	c = valid()
	c.OutputDir = ""
	require.ErrorIs(t, c.Validate(), ErrEmptyOutputDir)

	c = valid()
	c.GitHub.PullRequest = 5
	require.ErrorIs(t, c.Validate(), ErrMissingToken)

	c.GitHub.Token = "tok"
	require.ErrorIs(t, c.Validate(), ErrMissingOwner)

	c.GitHub.Owner = "acme"
	require.ErrorIs(t, c.Validate(), ErrMissingRepository)

	c.GitHub.Repository = "widgets"
	require.NoError(t, c.Validate())
}
