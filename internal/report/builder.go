package report

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/coverscope/coverscope/internal/failures"
	"github.com/coverscope/coverscope/internal/lcov"
	"github.com/coverscope/coverscope/internal/pathutil"
	"github.com/coverscope/coverscope/internal/summary"
)

// Builder renders the report artifacts for one run.
type Builder struct {
	config *Config
}

// Config holds report generation settings.
type Config struct {
	// Title is the run title shown in every artifact.
	Title string
	// Threshold is the line-coverage percentage the quality gate requires.
	Threshold float64
	// MaxFiles caps the files shown in Markdown and step-summary views.
	MaxFiles int
	// MaxLinesPerFile caps rendered lines per file in capped views.
	MaxLinesPerFile int
}

// New creates a builder with default configuration.
func New() *Builder {
	return &Builder{
		config: &Config{
			Title:           "Coverage Report",
			Threshold:       80,
			MaxFiles:        5,
			MaxLinesPerFile: 50,
		},
	}
}

// NewWithConfig creates a builder with custom configuration. Zero caps fall
// back to the defaults. The caller's Config is copied, not retained.
func NewWithConfig(config *Config) *Builder {
	cfg := *config
	if cfg.MaxFiles <= 0 {
		cfg.MaxFiles = 5
	}
	if cfg.MaxLinesPerFile <= 0 {
		cfg.MaxLinesPerFile = 50
	}
	return &Builder{config: &cfg}
}

// AssembleRecords merges the parsed trace, the extracted failure locations,
// and the summary's per-file percentages into immutable file records, sorted
// by path. Source text is read from repoRoot when present; files whose
// source is unreadable still get a record so the data artifacts stay
// complete.
func AssembleRecords(repoRoot string, profile lcov.Profile, locations failures.Locations, s *summary.Summary) []*FileRecord {
	// Index summary entries by their normalized path once; summary keys use
	// the coverage tool's own path representation.
	linePcts := make(map[string]float64, len(s.Files))
	for toolPath, fileSummary := range s.Files {
		if rel, ok := pathutil.Normalize(repoRoot, toolPath); ok {
			linePcts[rel] = fileSummary.Lines.Pct
		}
	}

	paths := make([]string, 0, len(profile))
	for rel := range profile {
		paths = append(paths, rel)
	}
	sort.Strings(paths)

	records := make([]*FileRecord, 0, len(paths))
	for _, rel := range paths {
		record := &FileRecord{
			RelPath:      rel,
			LineHits:     profile[rel],
			FailingLines: map[int]struct{}(locations[rel]),
			SourceLines:  readSourceLines(repoRoot, rel),
		}
		if pct, ok := linePcts[rel]; ok {
			pctCopy := pct
			record.LinePct = &pctCopy
		}
		records = append(records, record)
	}

	return records
}

// readSourceLines loads the file's text from the repository root. A missing
// or unreadable file degrades to nil; rendering then falls back to
// instrumented line numbers only.
func readSourceLines(repoRoot, rel string) []string {
	data, err := os.ReadFile(filepath.Join(repoRoot, filepath.FromSlash(rel))) //nolint:gosec // repo-relative source path
	if err != nil {
		return nil
	}
	text := strings.TrimSuffix(string(data), "\n")
	return strings.Split(text, "\n")
}

// Build renders all artifacts from the assembled input.
func (b *Builder) Build(ctx context.Context, in *Input) (*Artifacts, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	gate := NewGate(b.config.Threshold, in.Totals.Lines.Pct)
	generatedAt := time.Now().UTC()

	htmlOut, err := b.renderHTML(in, gate, generatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to render HTML report: %w", err)
	}

	stepSummary, err := b.renderStepSummary(in, gate)
	if err != nil {
		return nil, fmt.Errorf("failed to render step summary: %w", err)
	}

	jsonOut, err := b.renderJSON(in, gate, generatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to render JSON artifact: %w", err)
	}

	return &Artifacts{
		HTML:        htmlOut,
		Markdown:    b.renderMarkdown(in, gate),
		JSON:        jsonOut,
		StepSummary: stepSummary,
		Gate:        gate,
	}, nil
}

// renderedLine is one line prepared for presentation.
type renderedLine struct {
	Number  int
	Content string
	Hits    int
	Status  LineStatus
}

// lineCount returns how many lines the record renders: the full source
// extended to the highest instrumented line, so a trace that outruns the
// source text (edited file, stale trace) still shows every instrumented
// line.
func lineCount(r *FileRecord) int {
	count := len(r.SourceLines)
	for n := range r.LineHits {
		if n > count {
			count = n
		}
	}
	return count
}

// renderLines prepares up to limit lines of the record; limit <= 0 renders
// everything. The second return is the count of lines truncated away.
func renderLines(r *FileRecord, limit int) ([]renderedLine, int) {
	total := lineCount(r)
	shown := total
	if limit > 0 && shown > limit {
		shown = limit
	}

	lines := make([]renderedLine, 0, shown)
	for n := 1; n <= shown; n++ {
		content := ""
		if r.SourceLines != nil && n <= len(r.SourceLines) {
			content = r.SourceLines[n-1]
		}
		lines = append(lines, renderedLine{
			Number:  n,
			Content: content,
			Hits:    r.LineHits[n],
			Status:  r.StatusOf(n),
		})
	}

	return lines, total - shown
}

// capFiles selects the records shown in capped views and the count left
// out.
func (b *Builder) capFiles(files []*FileRecord) ([]*FileRecord, int) {
	if len(files) <= b.config.MaxFiles {
		return files, 0
	}
	return files[:b.config.MaxFiles], len(files) - b.config.MaxFiles
}

// artifactJSON is the canonical machine-readable schema. The HTML and
// Markdown artifacts are presentation-only derivatives of the same data.
type artifactJSON struct {
	Title       string     `json:"title"`
	GeneratedAt time.Time  `json:"generated_at"`
	Inputs      inputsJSON `json:"inputs"`
	QualityGate Gate       `json:"quality_gate"`
	Totals      totalsJSON `json:"totals"`
	Files       []fileJSON `json:"files"`
}

type inputsJSON struct {
	Trace   string `json:"trace"`
	Summary string `json:"summary"`
	Results string `json:"results,omitempty"`
}

type totalsJSON struct {
	Lines      summary.Metric `json:"lines"`
	Branches   summary.Metric `json:"branches"`
	Functions  summary.Metric `json:"functions"`
	Statements summary.Metric `json:"statements"`
}

type fileJSON struct {
	Path              string   `json:"path"`
	LinePct           *float64 `json:"line_pct,omitempty"`
	FailingLines      int      `json:"failing_lines"`
	CoveredLines      int      `json:"covered_lines"`
	InstrumentedLines int      `json:"instrumented_lines"`
}

func (b *Builder) renderJSON(in *Input, gate Gate, generatedAt time.Time) ([]byte, error) {
	files := make([]fileJSON, 0, len(in.Files))
	for _, r := range in.Files {
		files = append(files, fileJSON{
			Path:              r.RelPath,
			LinePct:           r.LinePct,
			FailingLines:      len(r.FailingLines),
			CoveredLines:      r.CoveredCount(),
			InstrumentedLines: len(r.LineHits),
		})
	}

	artifact := artifactJSON{
		Title:       b.config.Title,
		GeneratedAt: generatedAt,
		Inputs: inputsJSON{
			Trace:   in.TracePath,
			Summary: in.SummaryPath,
			Results: in.ResultsPath,
		},
		QualityGate: gate,
		Totals: totalsJSON{
			Lines:      in.Totals.Lines,
			Branches:   in.Totals.Branches,
			Functions:  in.Totals.Functions,
			Statements: in.Totals.Statements,
		},
		Files: files,
	}

	out, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}
