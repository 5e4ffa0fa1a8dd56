package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColoredWriterRouting(t *testing.T) {
	var stdout, stderr bytes.Buffer
	w := NewColoredWriter(&stdout, &stderr)

	w.Successf("wrote %d files", 3)
	w.Info("parsing trace")
	w.Warn("results file missing")
	w.Errorf("gate %s", "FAIL")

	assert.Contains(t, stdout.String(), "wrote 3 files")
	assert.Contains(t, stdout.String(), "parsing trace")
	assert.Contains(t, stderr.String(), "results file missing")
	assert.Contains(t, stderr.String(), "gate FAIL")
	assert.NotContains(t, stdout.String(), "gate FAIL")
}
