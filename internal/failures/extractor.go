// Package failures recovers source file locations from free-form test
// failure text.
//
// Extraction is best effort: the matchers cover the parenthesized
// "(path:line:col)" form and the "at frame path:line:col" stack-frame form
// emitted by common JavaScript runtimes. Traces formatted differently yield
// zero enrichment rather than an error; this is a known accuracy limitation,
// not a failure mode.
package failures

import (
	"encoding/json"
	"os"
	"regexp"
	"strconv"

	"github.com/coverscope/coverscope/internal/pathutil"
)

// LineSet is a set of 1-based line numbers implicated by failure messages.
type LineSet map[int]struct{}

// Locations maps a canonical repository-relative path to its implicated
// line set.
type Locations map[string]LineSet

// resultsDocument is the subset of a Jest results file we read. Every field
// is optional; absent fields decode to their zero value.
type resultsDocument struct {
	Message     string `json:"message"`
	TestResults []struct {
		Message          string `json:"message"`
		AssertionResults []struct {
			FailureMessages []string `json:"failureMessages"`
		} `json:"assertionResults"`
	} `json:"testResults"`
}

// matcher extracts (path, line) candidates from one failure string. The set
// is ordered and deliberately explicit so further trace shapes can be added
// without touching the scan loop.
type matcher struct {
	re      *regexp.Regexp
	pathIdx int
	lineIdx int
}

var matchers = []matcher{
	// Parenthesized reference: "(src/a.js:3:5)"
	{re: regexp.MustCompile(`\(([^()\s:]+):(\d+):(\d+)\)`), pathIdx: 1, lineIdx: 2},
	// Bare stack frame: "at Object.<anonymous> src/a.js:3:5"
	{re: regexp.MustCompile(`\bat\s+\S.*?\s([^()\s:]+):(\d+):(\d+)`), pathIdx: 1, lineIdx: 2},
}

// ExtractFile reads a test-results document and extracts failure locations.
//
// The document is optional enrichment: a missing or unparsable file yields
// an empty result and no error.
func ExtractFile(path, repoRoot string) Locations {
	if path == "" {
		return Locations{}
	}

	data, err := os.ReadFile(path) //nolint:gosec // caller-supplied input path
	if err != nil {
		return Locations{}
	}

	return Extract(data, repoRoot)
}

// Extract scans every failure-message string in doc and unions the matched
// locations into per-file line sets. Malformed JSON yields an empty result.
func Extract(doc []byte, repoRoot string) Locations {
	var results resultsDocument
	if err := json.Unmarshal(doc, &results); err != nil {
		return Locations{}
	}

	locations := make(Locations)

	scan := func(message string) {
		for _, m := range matchers {
			for _, groups := range m.re.FindAllStringSubmatch(message, -1) {
				rel, ok := pathutil.Normalize(repoRoot, groups[m.pathIdx])
				if !ok {
					continue
				}
				lineNum, err := strconv.Atoi(groups[m.lineIdx])
				if err != nil {
					continue
				}
				if locations[rel] == nil {
					locations[rel] = make(LineSet)
				}
				locations[rel][lineNum] = struct{}{}
			}
		}
	}

	scan(results.Message)
	for _, suite := range results.TestResults {
		scan(suite.Message)
		for _, assertion := range suite.AssertionResults {
			for _, message := range assertion.FailureMessages {
				scan(message)
			}
		}
	}

	return locations
}
