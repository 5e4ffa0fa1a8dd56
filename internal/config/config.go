// Package config builds the single explicit configuration value for a run.
//
// Configuration is assembled once at the entry point from environment
// variables, an optional YAML file, and command-line flags, then passed by
// reference to every component; no component reads ambient environment
// state directly.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Static error definitions
var (
	ErrInvalidThreshold  = errors.New("coverage threshold must be between 0 and 100")
	ErrEmptyTraceFile    = errors.New("coverage trace file cannot be empty")
	ErrEmptySummaryFile  = errors.New("coverage summary file cannot be empty")
	ErrEmptyOutputDir    = errors.New("output directory cannot be empty")
	ErrMissingToken      = errors.New("GitHub token is required for comment publishing")
	ErrMissingOwner      = errors.New("GitHub repository owner is required for comment publishing")
	ErrMissingRepository = errors.New("GitHub repository name is required for comment publishing")
)

// Config holds the main configuration for one invocation.
type Config struct {
	// Report settings
	Title           string  `yaml:"title"`
	RepoRoot        string  `yaml:"repo_root"`
	TraceFile       string  `yaml:"trace_file"`
	SummaryFile     string  `yaml:"summary_file"`
	ResultsFile     string  `yaml:"results_file"`
	OutputDir       string  `yaml:"output_dir"`
	Threshold       float64 `yaml:"threshold"`
	MaxFiles        int     `yaml:"max_files"`
	MaxLinesPerFile int     `yaml:"max_lines_per_file"`

	// GitHub integration settings
	GitHub GitHubConfig `yaml:"github"`

	// CI sinks; empty disables the corresponding output.
	StepSummaryFile string `yaml:"step_summary_file"`
	OutputFile      string `yaml:"output_file"`
}

// GitHubConfig holds the comment-publishing settings.
type GitHubConfig struct {
	Token           string        `yaml:"token"`
	Owner           string        `yaml:"owner"`
	Repository      string        `yaml:"repository"`
	PullRequest     int           `yaml:"pull_request"`
	CommentStrategy string        `yaml:"comment_strategy"`
	Timeout         time.Duration `yaml:"timeout"`
}

// UnmarshalYAML accepts the timeout as a duration string ("30s", "1m30s")
// or a bare integer of nanoseconds, which is all a raw time.Duration field
// would take.
func (g *GitHubConfig) UnmarshalYAML(value *yaml.Node) error {
	var aux struct {
		Token           string `yaml:"token"`
		Owner           string `yaml:"owner"`
		Repository      string `yaml:"repository"`
		PullRequest     int    `yaml:"pull_request"`
		CommentStrategy string `yaml:"comment_strategy"`
		Timeout         string `yaml:"timeout"`
	}
	if err := value.Decode(&aux); err != nil {
		return err
	}

	g.Token = aux.Token
	g.Owner = aux.Owner
	g.Repository = aux.Repository
	g.PullRequest = aux.PullRequest
	g.CommentStrategy = aux.CommentStrategy

	if aux.Timeout == "" {
		return nil
	}
	d, err := time.ParseDuration(aux.Timeout)
	if err != nil {
		ns, intErr := strconv.ParseInt(aux.Timeout, 10, 64)
		if intErr != nil {
			return fmt.Errorf("failed to parse github timeout %q: %w", aux.Timeout, err)
		}
		d = time.Duration(ns)
	}
	g.Timeout = d
	return nil
}

// Load builds the configuration from environment variables with defaults.
// The GitHub Actions context variables are the only ambient state consulted,
// and only here.
func Load() *Config {
	owner, repo := splitRepository(os.Getenv("GITHUB_REPOSITORY"))

	return &Config{
		Title:           getEnvString("COVERSCOPE_TITLE", "Coverage Report"),
		RepoRoot:        getEnvString("GITHUB_WORKSPACE", "."),
		TraceFile:       getEnvString("COVERSCOPE_TRACE_FILE", "coverage/lcov.info"),
		SummaryFile:     getEnvString("COVERSCOPE_SUMMARY_FILE", "coverage/coverage-summary.json"),
		ResultsFile:     getEnvString("COVERSCOPE_RESULTS_FILE", "jest-results.json"),
		OutputDir:       getEnvString("COVERSCOPE_OUTPUT_DIR", "coverage-report"),
		Threshold:       getEnvFloat("COVERSCOPE_THRESHOLD", 80.0),
		MaxFiles:        getEnvInt("COVERSCOPE_MAX_FILES", 5),
		MaxLinesPerFile: getEnvInt("COVERSCOPE_MAX_LINES_PER_FILE", 50),
		GitHub: GitHubConfig{
			Token:           getEnvString("GITHUB_TOKEN", ""),
			Owner:           owner,
			Repository:      repo,
			PullRequest:     pullRequestFromEnv(),
			CommentStrategy: getEnvString("COVERSCOPE_COMMENT_STRATEGY", "UPDATE"),
			Timeout:         30 * time.Second,
		},
		StepSummaryFile: getEnvString("GITHUB_STEP_SUMMARY", ""),
		OutputFile:      getEnvString("GITHUB_OUTPUT", ""),
	}
}

// LoadFile merges settings from a YAML file over the receiver. Zero-valued
// fields in the file keep their current values.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // caller-supplied config path
	if err != nil {
		return fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var overlay Config
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("failed to parse config file %q: %w", path, err)
	}

	c.merge(&overlay)
	return nil
}

func (c *Config) merge(o *Config) {
	setString(&c.Title, o.Title)
	setString(&c.RepoRoot, o.RepoRoot)
	setString(&c.TraceFile, o.TraceFile)
	setString(&c.SummaryFile, o.SummaryFile)
	setString(&c.ResultsFile, o.ResultsFile)
	setString(&c.OutputDir, o.OutputDir)
	if o.Threshold != 0 {
		c.Threshold = o.Threshold
	}
	if o.MaxFiles != 0 {
		c.MaxFiles = o.MaxFiles
	}
	if o.MaxLinesPerFile != 0 {
		c.MaxLinesPerFile = o.MaxLinesPerFile
	}
	setString(&c.GitHub.Token, o.GitHub.Token)
	setString(&c.GitHub.Owner, o.GitHub.Owner)
	setString(&c.GitHub.Repository, o.GitHub.Repository)
	if o.GitHub.PullRequest != 0 {
		c.GitHub.PullRequest = o.GitHub.PullRequest
	}
	setString(&c.GitHub.CommentStrategy, o.GitHub.CommentStrategy)
	if o.GitHub.Timeout != 0 {
		c.GitHub.Timeout = o.GitHub.Timeout
	}
	setString(&c.StepSummaryFile, o.StepSummaryFile)
	setString(&c.OutputFile, o.OutputFile)
}

// Validate checks the configuration and returns the first violation found.
func (c *Config) Validate() error {
	if c.Threshold < 0 || c.Threshold > 100 {
		return fmt.Errorf("%w, got: %.1f", ErrInvalidThreshold, c.Threshold)
	}
	if c.TraceFile == "" {
		return ErrEmptyTraceFile
	}
	if c.SummaryFile == "" {
		return ErrEmptySummaryFile
	}
	if c.OutputDir == "" {
		return ErrEmptyOutputDir
	}

	if c.IsPullRequestContext() {
		if c.GitHub.Token == "" {
			return ErrMissingToken
		}
		if c.GitHub.Owner == "" {
			return ErrMissingOwner
		}
		if c.GitHub.Repository == "" {
			return ErrMissingRepository
		}
	}

	return nil
}

// IsPullRequestContext reports whether a PR comment will be attempted.
func (c *Config) IsPullRequestContext() bool {
	return c.GitHub.PullRequest > 0
}

// splitRepository splits the "owner/name" form of GITHUB_REPOSITORY.
func splitRepository(full string) (owner, repo string) {
	parts := strings.SplitN(full, "/", 2)
	if len(parts) != 2 {
		return "", ""
	}
	return parts[0], parts[1]
}

// pullRequestFromEnv resolves the PR number from GITHUB_PR_NUMBER or, when
// absent, from the "refs/pull/<n>/merge" shape of GITHUB_REF.
func pullRequestFromEnv() int {
	if n := getEnvInt("GITHUB_PR_NUMBER", 0); n > 0 {
		return n
	}

	ref := os.Getenv("GITHUB_REF")
	if !strings.HasPrefix(ref, "refs/pull/") {
		return 0
	}
	rest := strings.TrimPrefix(ref, "refs/pull/")
	if idx := strings.Index(rest, "/"); idx > 0 {
		if n, err := strconv.Atoi(rest[:idx]); err == nil {
			return n
		}
	}
	return 0
}

// Environment helpers

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
