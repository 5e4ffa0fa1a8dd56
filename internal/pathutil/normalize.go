// Package pathutil maps tool-specific and stack-trace file paths onto a
// single canonical repository-relative form.
//
// Coverage tools and test runners emit paths rooted in containers, temp
// directories, or CI workspaces; the normalizer prefers recognizable
// project anchors over raw absolute prefixes so that the same source file
// always keys to one record.
package pathutil

import (
	"path"
	"strings"
)

// Anchor segments searched for, in order, when a path does not sit under
// the repository root.
var anchorSegments = []string{"/src/", "/tests/"}

// Normalize converts candidate into a repository-relative path.
//
// Resolution order, first match wins:
//  1. candidate sits under repoRoot: strip the root prefix.
//  2. candidate contains a /src/ segment: keep from the last occurrence on.
//  3. same for /tests/.
//  4. fall back to the bare file name.
//
// An empty candidate has no location; ok is false.
func Normalize(repoRoot, candidate string) (rel string, ok bool) {
	if candidate == "" {
		return "", false
	}

	p := toSlash(candidate)
	root := strings.TrimSuffix(toSlash(repoRoot), "/")

	if root != "" && strings.HasPrefix(p, root+"/") {
		return strings.TrimPrefix(p, root+"/"), true
	}

	// Search with a virtual leading separator so an already-relative
	// "src/..." path anchors at its own first segment, keeping the
	// function idempotent.
	anchored := "/" + strings.TrimPrefix(p, "/")
	for _, seg := range anchorSegments {
		if idx := strings.LastIndex(anchored, seg); idx != -1 {
			return anchored[idx+1:], true
		}
	}

	return path.Base(p), true
}

// toSlash normalizes path separators without depending on the host OS,
// since trace and stack-trace paths may come from a different platform.
func toSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
