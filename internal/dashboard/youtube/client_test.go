package youtube

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type staticTokens struct {
	token string
}

func (s staticTokens) AccessToken() (string, bool) {
	return s.token, s.token != ""
}

func TestVideoDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/videos", r.URL.Path)
		require.Equal(t, "snippet,statistics,status,contentDetails", r.URL.Query().Get("part"))
		require.Equal(t, "vid-1", r.URL.Query().Get("id"))
		require.Equal(t, "test-key", r.URL.Query().Get("key"))
		require.Empty(t, r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{{
				"id": "vid-1",
				"snippet": map[string]any{
					"title":       "My video",
					"description": "About things",
					"publishedAt": "2025-06-01T12:00:00Z",
					"thumbnails": map[string]any{
						"high": map[string]any{"url": "https://img/high.jpg"},
					},
				},
				"statistics": map[string]any{
					"viewCount": "123456789012345",
					"likeCount": "42",
				},
				"status": map[string]any{
					"uploadStatus":  "processed",
					"privacyStatus": "unlisted",
				},
				"contentDetails": map[string]any{"duration": "PT10M1S"},
			}},
		})
	}))
	defer srv.Close()

	c := NewClient("test-key", staticTokens{}, WithBaseURL(srv.URL))

	v, err := c.VideoDetails(context.Background(), "vid-1")
	require.NoError(t, err)
	require.Equal(t, "My video", v.Title)
	require.Equal(t, "https://img/high.jpg", v.Thumbnail)
	// Counters stay strings to survive values beyond float precision.
	require.Equal(t, "123456789012345", v.Statistics.ViewCount)
	require.Equal(t, "PT10M1S", v.Duration)
	require.Equal(t, 2025, v.PublishedAt.Year())
}

func TestVideoDetailsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"items": []any{}})
	}))
	defer srv.Close()

	c := NewClient("k", staticTokens{}, WithBaseURL(srv.URL))
	_, err := c.VideoDetails(context.Background(), "ghost")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCommentThreadsClampAndPaging(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/commentThreads", r.URL.Path)
		require.Equal(t, "time", r.URL.Query().Get("order"))
		require.Equal(t, "100", r.URL.Query().Get("maxResults"))
		require.Equal(t, "page-2", r.URL.Query().Get("pageToken"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"nextPageToken": "page-3",
			"items": []map[string]any{{
				"id": "thread-1",
				"snippet": map[string]any{
					"videoId": "vid-1",
					"topLevelComment": map[string]any{
						"id": "c-1",
						"snippet": map[string]any{
							"authorDisplayName": "Alice",
							"textDisplay":       "First!",
							"likeCount":         3,
							"publishedAt":       "2025-06-01T12:00:00Z",
						},
					},
					"totalReplyCount": 1,
				},
				"replies": map[string]any{
					"comments": []map[string]any{{
						"id": "c-2",
						"snippet": map[string]any{
							"authorDisplayName": "Bob",
							"textDisplay":       "Welcome",
						},
					}},
				},
			}},
		})
	}))
	defer srv.Close()

	c := NewClient("k", staticTokens{}, WithBaseURL(srv.URL))

	threads, next, err := c.CommentThreads(context.Background(), "vid-1", 5000, "page-2")
	require.NoError(t, err)
	require.Equal(t, "page-3", next)
	require.Len(t, threads, 1)
	require.Equal(t, "Alice", threads[0].Comment.AuthorName)
	require.Len(t, threads[0].Replies, 1)
	require.Equal(t, "Bob", threads[0].Replies[0].AuthorName)
}

func TestWriteOperationsRequireToken(t *testing.T) {
	c := NewClient("k", staticTokens{}, WithBaseURL("http://unused.invalid"))

	_, err := c.InsertComment(context.Background(), "vid-1", "hello")
	require.ErrorIs(t, err, ErrNoAccessToken)

	err = c.DeleteComment(context.Background(), "c-1")
	require.ErrorIs(t, err, ErrNoAccessToken)
}

func TestInsertCommentSendsBearer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "Bearer oauth-token", r.Header.Get("Authorization"))
		require.Empty(t, r.URL.Query().Get("key"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": "thread-9",
			"snippet": map[string]any{
				"topLevelComment": map[string]any{
					"id": "c-9",
					"snippet": map[string]any{
						"authorDisplayName": "Me",
						"textDisplay":       "hello",
					},
				},
			},
		})
	}))
	defer srv.Close()

	c := NewClient("k", staticTokens{token: "oauth-token"}, WithBaseURL(srv.URL))

	comment, err := c.InsertComment(context.Background(), "vid-1", "hello")
	require.NoError(t, err)
	require.Equal(t, "c-9", comment.ID)
	require.Equal(t, "hello", comment.Text)
}

func TestErrorMapping(t *testing.T) {
	writeErr := func(w http.ResponseWriter, status int, reason, message string) {
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"code":    status,
				"message": message,
				"errors":  []map[string]any{{"reason": reason}},
			},
		})
	}

	cases := []struct {
		name   string
		status int
		reason string
		want   error
	}{
		{"quota beats status", http.StatusForbidden, "quotaExceeded", ErrQuotaExceeded},
		{"not found", http.StatusNotFound, "videoNotFound", ErrNotFound},
		{"unauthorized", http.StatusUnauthorized, "authError", ErrUnauthorized},
		{"forbidden", http.StatusForbidden, "insufficientPermissions", ErrForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeErr(w, tc.status, tc.reason, "boom")
			}))
			defer srv.Close()

			c := NewClient("k", staticTokens{}, WithBaseURL(srv.URL))
			_, err := c.VideoDetails(context.Background(), "vid-1")
			require.ErrorIs(t, err, tc.want)
		})
	}
}
