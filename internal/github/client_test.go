package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(&Config{
		Token:      "test-token",
		BaseURL:    server.URL,
		Owner:      "acme",
		Repository: "widgets",
	})
}

func TestListComments(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/repos/acme/widgets/issues/42/comments", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		assert.Equal(t, "token test-token", r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode([]Comment{{ID: 1, Body: "hi"}})
	})

	comments, err := client.ListComments(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, 1, comments[0].ID)
}

func TestCreateComment(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/repos/acme/widgets/issues/42/comments", r.URL.Path)

		var req commentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "new body", req.Body)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(Comment{ID: 9, Body: req.Body})
	})

	comment, err := client.CreateComment(context.Background(), 42, "new body")
	require.NoError(t, err)
	assert.Equal(t, 9, comment.ID)
}

func TestUpdateComment(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/repos/acme/widgets/issues/comments/9", r.URL.Path)

		_ = json.NewEncoder(w).Encode(Comment{ID: 9, Body: "updated"})
	})

	comment, err := client.UpdateComment(context.Background(), 9, "updated")
	require.NoError(t, err)
	assert.Equal(t, "updated", comment.Body)
}

func TestDeleteComment(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/repos/acme/widgets/issues/comments/9", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.DeleteComment(context.Background(), 9))
}

func TestAPIErrorCarriesStatusAndBody(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"Resource not accessible"}`))
	})

	_, err := client.ListComments(context.Background(), 42)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrAPIError)
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "Forbidden")
	assert.Contains(t, err.Error(), "Resource not accessible")
}
