// Package lcov parses LCOV line-coverage trace documents.
package lcov

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/coverscope/coverscope/internal/pathutil"
)

// FileHits maps a 1-based line number to its hit count. Only instrumented
// lines are present.
type FileHits map[int]int

// Profile maps a canonical repository-relative path to the hit counts of
// its instrumented lines.
type Profile map[string]FileHits

// Trace record markers.
const (
	sourceFilePrefix = "SF:"
	lineDataPrefix   = "DA:"
	endOfRecord      = "end_of_record"
)

// Parser reads LCOV traces. It is forgiving: a malformed line-data pair is
// skipped rather than aborting the parse, since partial or corrupted traces
// must not cost the whole report.
type Parser struct {
	repoRoot string
}

// New creates a parser that normalizes source-file paths against repoRoot.
func New(repoRoot string) *Parser {
	return &Parser{repoRoot: repoRoot}
}

// ParseFile parses the trace document at filename.
func (p *Parser) ParseFile(ctx context.Context, filename string) (Profile, error) {
	file, err := os.Open(filename) //nolint:gosec // caller-supplied input path
	if err != nil {
		return nil, fmt.Errorf("failed to open coverage trace %q: %w", filename, err)
	}
	defer func() { _ = file.Close() }()

	return p.Parse(ctx, file)
}

// Parse parses an LCOV trace from reader.
//
// The trace is line oriented: an SF: line opens a file section, DA: lines
// carry "lineNumber,hitCount" pairs, and end_of_record closes the section.
// A repeated SF: path augments the earlier section instead of replacing it.
// Lines matching none of these forms are ignored.
func (p *Parser) Parse(ctx context.Context, reader io.Reader) (Profile, error) {
	profile := make(Profile)
	scanner := bufio.NewScanner(reader)

	// Current section, nil while outside a record.
	var current FileHits

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		line := strings.TrimSpace(scanner.Text())

		switch {
		case strings.HasPrefix(line, sourceFilePrefix):
			rel, ok := pathutil.Normalize(p.repoRoot, strings.TrimPrefix(line, sourceFilePrefix))
			if !ok {
				current = nil
				continue
			}
			if profile[rel] == nil {
				profile[rel] = make(FileHits)
			}
			current = profile[rel]

		case strings.HasPrefix(line, lineDataPrefix):
			if current == nil {
				continue
			}
			lineNum, hits, ok := parseLineData(strings.TrimPrefix(line, lineDataPrefix))
			if !ok {
				continue
			}
			current[lineNum] += hits

		case line == endOfRecord:
			current = nil
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading coverage trace: %w", err)
	}

	return profile, nil
}

// parseLineData parses the "lineNumber,hitCount" payload of a DA: line.
func parseLineData(payload string) (lineNum, hits int, ok bool) {
	commaIdx := strings.Index(payload, ",")
	if commaIdx == -1 {
		return 0, 0, false
	}

	lineNum, err := strconv.Atoi(strings.TrimSpace(payload[:commaIdx]))
	if err != nil {
		return 0, 0, false
	}

	hits, err = strconv.Atoi(strings.TrimSpace(payload[commaIdx+1:]))
	if err != nil {
		return 0, 0, false
	}

	return lineNum, hits, true
}
