// Command coverscope merges LCOV coverage traces with test-failure
// locations and publishes the result as reports and a PR comment.
package main

import (
	"os"

	"github.com/coverscope/coverscope/cmd/coverscope/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
