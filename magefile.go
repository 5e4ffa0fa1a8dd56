//go:build mage

// Magefile for coverscope development tasks
package main

import (
	"fmt"

	"github.com/magefile/mage/sh"
)

// Build compiles the coverscope binary.
func Build() error {
	fmt.Println("Building coverscope...")
	return sh.RunV("go", "build", "-o", "bin/coverscope", "./cmd/coverscope")
}

// Test runs the full test suite with race detection.
func Test() error {
	fmt.Println("Running tests...")
	return sh.RunV("go", "test", "-race", "-timeout=5m", "./...")
}

// Cover runs the test suite with coverage and prints the summary.
func Cover() error {
	fmt.Println("Running tests with coverage...")
	if err := sh.RunV("go", "test", "-coverprofile=coverage.out", "./..."); err != nil {
		return fmt.Errorf("tests failed: %w", err)
	}
	return sh.RunV("go", "tool", "cover", "-func=coverage.out")
}

// Lint runs the configured linters.
func Lint() error {
	fmt.Println("Running linters...")
	return sh.RunV("golangci-lint", "run", "./...")
}

// Fmt formats the source tree.
func Fmt() error {
	return sh.RunV("gofmt", "-s", "-w", ".")
}
