// Package output provides colored output functions for the CLI.
package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Writer defines the interface for user-facing progress output.
type Writer interface {
	Success(msg string)
	Successf(format string, args ...interface{})
	Info(msg string)
	Infof(format string, args ...interface{})
	Warn(msg string)
	Warnf(format string, args ...interface{})
	Error(msg string)
	Errorf(format string, args ...interface{})
}

// ColoredWriter implements Writer with colored output.
type ColoredWriter struct {
	successColor *color.Color
	infoColor    *color.Color
	warnColor    *color.Color
	errorColor   *color.Color
	stdout       io.Writer
	stderr       io.Writer
}

// NewColoredWriter creates a new ColoredWriter instance.
func NewColoredWriter(stdout, stderr io.Writer) *ColoredWriter {
	return &ColoredWriter{
		successColor: color.New(color.FgGreen, color.Bold),
		infoColor:    color.New(color.FgCyan),
		warnColor:    color.New(color.FgYellow),
		errorColor:   color.New(color.FgRed, color.Bold),
		stdout:       stdout,
		stderr:       stderr,
	}
}

// Success prints a success message in green.
func (w *ColoredWriter) Success(msg string) {
	_, _ = w.successColor.Fprintln(w.stdout, msg)
}

// Successf prints a formatted success message.
func (w *ColoredWriter) Successf(format string, args ...interface{}) {
	w.Success(fmt.Sprintf(format, args...))
}

// Info prints an info message in cyan.
func (w *ColoredWriter) Info(msg string) {
	_, _ = w.infoColor.Fprintln(w.stdout, msg)
}

// Infof prints a formatted info message.
func (w *ColoredWriter) Infof(format string, args ...interface{}) {
	w.Info(fmt.Sprintf(format, args...))
}

// Warn prints a warning message in yellow.
func (w *ColoredWriter) Warn(msg string) {
	_, _ = w.warnColor.Fprintln(w.stderr, msg)
}

// Warnf prints a formatted warning message.
func (w *ColoredWriter) Warnf(format string, args ...interface{}) {
	w.Warn(fmt.Sprintf(format, args...))
}

// Error prints an error message in red.
func (w *ColoredWriter) Error(msg string) {
	_, _ = w.errorColor.Fprintln(w.stderr, msg)
}

// Errorf prints a formatted error message.
func (w *ColoredWriter) Errorf(format string, args ...interface{}) {
	w.Error(fmt.Sprintf(format, args...))
}

var _ Writer = (*ColoredWriter)(nil)
