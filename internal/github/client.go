// Package github publishes the rendered report as a pull request comment.
//
// The synchronization algorithm is written against a narrow CommentAPI
// capability interface so tests can substitute a fake for the HTTP client.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// ErrAPIError wraps every non-success response from the comment API.
var ErrAPIError = errors.New("GitHub API error")

// Comment is a pull request comment as returned by the issues API.
type Comment struct {
	ID        int    `json:"id"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// commentRequest is the create/update payload.
type commentRequest struct {
	Body string `json:"body"`
}

// CommentAPI is the capability surface the synchronizer needs: list the
// comments on a pull request and create, update, or delete one.
type CommentAPI interface {
	ListComments(ctx context.Context, prNumber int) ([]Comment, error)
	CreateComment(ctx context.Context, prNumber int, body string) (*Comment, error)
	UpdateComment(ctx context.Context, commentID int, body string) (*Comment, error)
	DeleteComment(ctx context.Context, commentID int) error
}

// Client implements CommentAPI over the GitHub REST API.
type Client struct {
	config     *Config
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Config holds GitHub client configuration.
type Config struct {
	Token      string        // API token
	BaseURL    string        // API base URL
	Owner      string        // Repository owner
	Repository string        // Repository name
	Timeout    time.Duration // Request timeout
	UserAgent  string        // User agent string
}

// listPageSize bounds the single-page comment fetch. There is deliberately
// no pagination loop: the marker-bearing comment is expected to be recent.
const listPageSize = 100

// NewClient creates a client with sensible defaults filled in. Requests are
// rate limited conservatively so repeated list/create/update calls cannot
// trip secondary limits.
func NewClient(config *Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = "https://api.github.com"
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.UserAgent == "" {
		config.UserAgent = "coverscope/1.0"
	}
	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(2), 4),
	}
}

// ListComments fetches one bounded page of comments on the pull request.
func (c *Client) ListComments(ctx context.Context, prNumber int) ([]Comment, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/issues/%d/comments?per_page=%d",
		c.config.BaseURL, c.config.Owner, c.config.Repository, prNumber, listPageSize)

	var comments []Comment
	if err := c.do(ctx, http.MethodGet, url, nil, &comments); err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// CreateComment posts a new comment on the pull request.
func (c *Client) CreateComment(ctx context.Context, prNumber int, body string) (*Comment, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/issues/%d/comments",
		c.config.BaseURL, c.config.Owner, c.config.Repository, prNumber)

	var comment Comment
	if err := c.do(ctx, http.MethodPost, url, &commentRequest{Body: body}, &comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return &comment, nil
}

// UpdateComment edits an existing comment's body in place.
func (c *Client) UpdateComment(ctx context.Context, commentID int, body string) (*Comment, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/issues/comments/%d",
		c.config.BaseURL, c.config.Owner, c.config.Repository, commentID)

	var comment Comment
	if err := c.do(ctx, http.MethodPatch, url, &commentRequest{Body: body}, &comment); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	return &comment, nil
}

// DeleteComment removes a comment.
func (c *Client) DeleteComment(ctx context.Context, commentID int) error {
	url := fmt.Sprintf("%s/repos/%s/%s/issues/comments/%d",
		c.config.BaseURL, c.config.Owner, c.config.Repository, commentID)

	if err := c.do(ctx, http.MethodDelete, url, nil, nil); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

// do executes one API request. Non-success responses surface as an error
// carrying the status code, status text, and response body; silent failures
// are not acceptable for a user-visible side effect.
func (c *Client) do(ctx context.Context, method, url string, payload, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var reqBody io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "token "+c.config.Token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", c.config.UserAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: %d %s: %s", ErrAPIError, resp.StatusCode, http.StatusText(resp.StatusCode), string(body))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
