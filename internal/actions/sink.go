// Package actions appends run outputs to the file sinks a CI runner
// provides: the step-summary HTML sink and the key=value output sink.
package actions

import (
	"fmt"
	"os"
)

// Pair is one key=value output line. Order is preserved as written.
type Pair struct {
	Key   string
	Value string
}

// AppendStepSummary appends an HTML fragment to the step-summary sink.
// An empty path means no sink is configured and is a no-op.
func AppendStepSummary(path string, fragment []byte) error {
	if path == "" {
		return nil
	}
	return appendFile(path, append(fragment, '\n'))
}

// AppendOutput appends key=value lines to the output sink. An empty path
// means no sink is configured and is a no-op.
func AppendOutput(path string, pairs []Pair) error {
	if path == "" {
		return nil
	}

	var buf []byte
	for _, pair := range pairs {
		buf = append(buf, fmt.Sprintf("%s=%s\n", pair.Key, pair.Value)...)
	}
	return appendFile(path, buf)
}

func appendFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec // CI-provided sink path
	if err != nil {
		return fmt.Errorf("failed to open output sink %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to append to output sink %q: %w", path, err)
	}
	return nil
}
