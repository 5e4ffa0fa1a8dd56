package summary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSummary(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "coverage-summary.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRead(t *testing.T) {
	path := writeSummary(t, `{
		"total": {
			"lines": {"total": 3, "covered": 2, "pct": 66.67},
			"branches": {"total": 4, "covered": 4, "pct": 100},
			"functions": {"total": 1, "covered": 1, "pct": 100},
			"statements": {"total": 3, "covered": 2, "pct": 66.67}
		},
		"/repo/src/a.js": {
			"lines": {"total": 3, "covered": 2, "pct": 66.67},
			"branches": {"total": 0, "covered": 0, "pct": 0},
			"functions": {"total": 1, "covered": 1, "pct": 100},
			"statements": {"total": 3, "covered": 2, "pct": 66.67}
		}
	}`)

	s, err := Read(path)
	require.NoError(t, err)

	assert.InDelta(t, 66.67, s.Total.Lines.Pct, 0.001)
	assert.Equal(t, 2, s.Total.Lines.Covered)
	assert.Equal(t, 3, s.Total.Lines.Total)
	assert.InDelta(t, 100.0, s.Total.Branches.Pct, 0.001)

	require.Contains(t, s.Files, "/repo/src/a.js")
	assert.InDelta(t, 66.67, s.Files["/repo/src/a.js"].Lines.Pct, 0.001)
}

func TestReadMissingSubObjectsDefaultToZero(t *testing.T) {
	path := writeSummary(t, `{
		"total": {"lines": {"total": 10, "covered": 5, "pct": 50}},
		"src/b.js": {}
	}`)

	s, err := Read(path)
	require.NoError(t, err)

	assert.Equal(t, Metric{}, s.Total.Branches)
	assert.Equal(t, Metric{}, s.Files["src/b.js"].Lines)
}

func TestReadComputesPctWhenAbsent(t *testing.T) {
	path := writeSummary(t, `{
		"total": {"lines": {"total": 4, "covered": 3}}
	}`)

	s, err := Read(path)
	require.NoError(t, err)
	assert.InDelta(t, 75.0, s.Total.Lines.Pct, 0.001)
}

func TestReadSkippedSpelling(t *testing.T) {
	path := writeSummary(t, `{
		"total": {"lines": {"covered": 8, "skipped": 2, "pct": 80}}
	}`)

	s, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, 10, s.Total.Lines.Total)
	assert.InDelta(t, 80.0, s.Total.Lines.Pct, 0.001)
}

func TestReadMissingFileIsFatal(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read coverage summary")
}

func TestReadMalformedIsFatal(t *testing.T) {
	path := writeSummary(t, `{"total": `)

	_, err := Read(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse coverage summary")
}
