// Package logging provides logging configuration for the CLI.
//
// A LogConfig is constructed once at the entry point and passed by
// dependency injection, avoiding global state and keeping components
// testable.
package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

// LogConfig holds the logging settings chosen on the command line.
type LogConfig struct {
	Level  string // trace, debug, info, warn, error
	Format string // "text" or "json"
}

// New creates a configured logrus logger writing to w.
func New(cfg *LogConfig, w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp: true,
		})
	}

	return logger
}

// Fields used consistently across components so log output stays easy to
// filter.
var StandardFields = struct {
	Component string
	FilePath  string
	PRNumber  string
	Status    string
}{
	Component: "component",
	FilePath:  "file_path",
	PRNumber:  "pr_number",
	Status:    "status",
}
