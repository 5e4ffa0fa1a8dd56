package github

import (
	"context"
	"strings"
)

// Strategy selects how the synchronizer reconciles the marked comment.
type Strategy int

// Comment strategies.
const (
	// StrategyUpdate edits the existing marked comment in place,
	// preserving its identity and timestamps.
	StrategyUpdate Strategy = iota
	// StrategyAdd always creates a new comment.
	StrategyAdd
	// StrategyRemove deletes the existing marked comment and creates a
	// fresh one, so the comment surfaces as new activity.
	StrategyRemove
)

// ParseStrategy matches a strategy token case-insensitively. Unrecognized
// values fall through to update semantics.
func ParseStrategy(s string) Strategy {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ADD":
		return StrategyAdd
	case "REMOVE":
		return StrategyRemove
	default:
		return StrategyUpdate
	}
}

// String returns the canonical token for the strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyAdd:
		return "ADD"
	case StrategyRemove:
		return "REMOVE"
	default:
		return "UPDATE"
	}
}

// DefaultMarker is the idempotency key embedded in every published comment
// body. It distinguishes this tool's comment from any other on the request.
const DefaultMarker = "<!-- coverscope-report -->"

// Synchronizer keeps exactly one marked comment on a pull request across
// repeated runs.
type Synchronizer struct {
	api    CommentAPI
	marker string
}

// NewSynchronizer creates a synchronizer over the given API. An empty
// marker falls back to DefaultMarker.
func NewSynchronizer(api CommentAPI, marker string) *Synchronizer {
	if marker == "" {
		marker = DefaultMarker
	}
	return &Synchronizer{api: api, marker: marker}
}

// Upsert publishes body as the single marked comment on the pull request.
//
// The comment list is fetched once; the first comment containing the marker
// is "ours". ADD, or no existing marked comment, creates a new one. REMOVE
// deletes the existing comment before creating a fresh one. Otherwise the
// existing comment is edited in place. The list→act window assumes no
// concurrent writer; two parallel runs can race, which is an accepted
// limitation.
func (s *Synchronizer) Upsert(ctx context.Context, prNumber int, strategy Strategy, body string) error {
	if !strings.Contains(body, s.marker) {
		body = s.marker + "\n" + body
	}

	comments, err := s.api.ListComments(ctx, prNumber)
	if err != nil {
		return err
	}

	existing := s.findMarked(comments)

	switch {
	case strategy == StrategyAdd || existing == nil:
		if _, err := s.api.CreateComment(ctx, prNumber, body); err != nil {
			return err
		}

	case strategy == StrategyRemove:
		if err := s.api.DeleteComment(ctx, existing.ID); err != nil {
			return err
		}
		if _, err := s.api.CreateComment(ctx, prNumber, body); err != nil {
			return err
		}

	default:
		if _, err := s.api.UpdateComment(ctx, existing.ID, body); err != nil {
			return err
		}
	}

	return nil
}

// findMarked returns the first comment carrying the marker, or nil.
func (s *Synchronizer) findMarked(comments []Comment) *Comment {
	for i := range comments {
		if strings.Contains(comments[i].Body, s.marker) {
			return &comments[i]
		}
	}
	return nil
}

// Marker returns the synchronizer's idempotency marker.
func (s *Synchronizer) Marker() string {
	return s.marker
}

var _ CommentAPI = (*Client)(nil)
