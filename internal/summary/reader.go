// Package summary loads pre-aggregated coverage metrics from a
// coverage-summary JSON document.
package summary

import (
	"encoding/json"
	"fmt"
	"os"
)

// Metric holds covered/total counts and the derived percentage for one
// coverage dimension. Invariant: 0 <= Covered <= Total; Pct is 0 when
// Total is 0.
type Metric struct {
	Covered int     `json:"covered"`
	Total   int     `json:"total"`
	Pct     float64 `json:"pct"`
}

// Totals aggregates the four run-level metrics.
type Totals struct {
	Lines      Metric `json:"lines"`
	Branches   Metric `json:"branches"`
	Functions  Metric `json:"functions"`
	Statements Metric `json:"statements"`
}

// FileSummary holds the per-file metrics, keyed in the document by the
// coverage tool's own path representation (not yet normalized).
type FileSummary struct {
	Lines      Metric `json:"lines"`
	Branches   Metric `json:"branches"`
	Functions  Metric `json:"functions"`
	Statements Metric `json:"statements"`
}

// Summary is the parsed coverage-summary document.
type Summary struct {
	Total Totals
	Files map[string]FileSummary
}

// rawMetric tolerates the two count spellings coverage tools emit: Istanbul
// writes "total" plus "skipped" alongside "covered" and "pct".
type rawMetric struct {
	Covered *int     `json:"covered"`
	Total   *int     `json:"total"`
	Skipped *int     `json:"skipped"`
	Pct     *float64 `json:"pct"`
}

type rawFile struct {
	Lines      *rawMetric `json:"lines"`
	Branches   *rawMetric `json:"branches"`
	Functions  *rawMetric `json:"functions"`
	Statements *rawMetric `json:"statements"`
}

// Read loads and validates the summary document at path. The summary is a
// mandatory input; any read or parse failure is fatal to the run.
func Read(path string) (*Summary, error) {
	data, err := os.ReadFile(path) //nolint:gosec // caller-supplied input path
	if err != nil {
		return nil, fmt.Errorf("failed to read coverage summary %q: %w", path, err)
	}

	var raw map[string]rawFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse coverage summary %q: %w", path, err)
	}

	s := &Summary{Files: make(map[string]FileSummary)}

	for key, entry := range raw {
		if key == "total" {
			s.Total = Totals{
				Lines:      entry.Lines.metric(),
				Branches:   entry.Branches.metric(),
				Functions:  entry.Functions.metric(),
				Statements: entry.Statements.metric(),
			}
			continue
		}
		s.Files[key] = FileSummary{
			Lines:      entry.Lines.metric(),
			Branches:   entry.Branches.metric(),
			Functions:  entry.Functions.metric(),
			Statements: entry.Statements.metric(),
		}
	}

	return s, nil
}

// metric converts a raw metric sub-object, defaulting to all zeroes when
// the sub-object or individual fields are absent.
func (m *rawMetric) metric() Metric {
	if m == nil {
		return Metric{}
	}

	out := Metric{}
	if m.Covered != nil {
		out.Covered = *m.Covered
	}
	switch {
	case m.Total != nil:
		out.Total = *m.Total
	case m.Skipped != nil:
		out.Total = out.Covered + *m.Skipped
	}
	if m.Pct != nil {
		out.Pct = *m.Pct
	} else if out.Total > 0 {
		out.Pct = float64(out.Covered) / float64(out.Total) * 100
	}

	return out
}
