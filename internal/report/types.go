// Package report merges coverage hits, failure locations, and summary
// metrics into per-line classifications and renders them as HTML, Markdown,
// and JSON artifacts.
package report

import (
	"github.com/coverscope/coverscope/internal/summary"
)

// LineStatus is the three-way per-line classification. Every rendered line
// has exactly one status.
type LineStatus int

// Line classifications.
const (
	// Uncovered marks a line with no hits (or no instrumentation data).
	Uncovered LineStatus = iota
	// CoveredPassing marks an executed line not implicated by any failure.
	CoveredPassing
	// CoveredFailing marks an executed line implicated by a failure message.
	CoveredFailing
)

// CSSClass returns the stylesheet class used for this status in HTML
// renderings.
func (s LineStatus) CSSClass() string {
	switch s {
	case CoveredPassing:
		return "covered-passing"
	case CoveredFailing:
		return "covered-failing"
	default:
		return "uncovered"
	}
}

// Glyph returns the textual marker used for this status in Markdown and
// step-summary renderings. The vocabulary is fixed so the same semantics
// read identically across artifacts.
func (s LineStatus) Glyph() string {
	switch s {
	case CoveredPassing:
		return "✅"
	case CoveredFailing:
		return "💥"
	default:
		return "❌"
	}
}

// FileRecord is the merged per-file view of all three data sources.
// Records are immutable once assembled; rendering only reads them.
type FileRecord struct {
	// RelPath is the canonical repository-relative path, the unique key.
	RelPath string
	// SourceLines holds the file's text, 1-indexed by position. Nil when
	// the source was not readable under the repository root.
	SourceLines []string
	// LineHits maps 1-based line numbers to hit counts; sparse, only
	// instrumented lines are present.
	LineHits map[int]int
	// FailingLines holds 1-based line numbers implicated by failures.
	FailingLines map[int]struct{}
	// LinePct is the file's own line-coverage percentage from the summary,
	// nil when the file has no summary entry.
	LinePct *float64
}

// StatusOf classifies line n. The partition is strict: uncovered unless the
// line has hits, failing only when it has hits and is implicated.
func (r *FileRecord) StatusOf(n int) LineStatus {
	if r.LineHits[n] <= 0 {
		return Uncovered
	}
	if _, failing := r.FailingLines[n]; failing {
		return CoveredFailing
	}
	return CoveredPassing
}

// CoveredCount returns the number of instrumented lines with at least one
// hit.
func (r *FileRecord) CoveredCount() int {
	covered := 0
	for _, hits := range r.LineHits {
		if hits > 0 {
			covered++
		}
	}
	return covered
}

// GateStatus is a quality-gate verdict.
type GateStatus string

// Gate verdicts.
const (
	GatePass GateStatus = "PASS"
	GateFail GateStatus = "FAIL"
)

// Gate is the pass/fail verdict for one metric against a threshold.
// Immutable once computed for a run.
type Gate struct {
	Metric    string     `json:"metric"`
	Threshold float64    `json:"threshold"`
	Value     float64    `json:"value"`
	Status    GateStatus `json:"status"`
}

// NewGate computes the line-coverage quality gate. The gate passes iff
// value >= threshold.
func NewGate(threshold, value float64) Gate {
	status := GateFail
	if value >= threshold {
		status = GatePass
	}
	return Gate{
		Metric:    "lines",
		Threshold: threshold,
		Value:     value,
		Status:    status,
	}
}

// Input carries everything the builder needs for one run.
type Input struct {
	Title       string
	TracePath   string
	SummaryPath string
	ResultsPath string
	Totals      summary.Totals
	Files       []*FileRecord
}

// Artifacts holds the rendered outputs of one build.
type Artifacts struct {
	HTML        []byte
	Markdown    []byte
	JSON        []byte
	StepSummary []byte
	Gate        Gate
}
