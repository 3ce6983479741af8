package youtube

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Comment is one flattened comment as presented to the dashboard.
type Comment struct {
	ID          string    `json:"id"`
	AuthorName  string    `json:"authorName"`
	AuthorImage string    `json:"authorImage"`
	Text        string    `json:"text"`
	LikeCount   int       `json:"likeCount"`
	PublishedAt time.Time `json:"publishedAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CommentThread is a top-level comment plus its replies.
type CommentThread struct {
	ID         string    `json:"id"`
	VideoID    string    `json:"videoId"`
	Comment    Comment   `json:"comment"`
	ReplyCount int       `json:"replyCount"`
	Replies    []Comment `json:"replies"`
}

// commentSnippet mirrors the API's comment snippet shape.
type commentSnippet struct {
	AuthorDisplayName     string `json:"authorDisplayName"`
	AuthorProfileImageURL string `json:"authorProfileImageUrl"`
	TextDisplay           string `json:"textDisplay"`
	LikeCount             int    `json:"likeCount"`
	PublishedAt           string `json:"publishedAt"`
	UpdatedAt             string `json:"updatedAt"`
}

type commentResource struct {
	ID      string         `json:"id"`
	Snippet commentSnippet `json:"snippet"`
}

func (r commentResource) toComment() Comment {
	published, _ := time.Parse(time.RFC3339, r.Snippet.PublishedAt)
	updated, _ := time.Parse(time.RFC3339, r.Snippet.UpdatedAt)
	return Comment{
		ID:          r.ID,
		AuthorName:  r.Snippet.AuthorDisplayName,
		AuthorImage: r.Snippet.AuthorProfileImageURL,
		Text:        r.Snippet.TextDisplay,
		LikeCount:   r.Snippet.LikeCount,
		PublishedAt: published,
		UpdatedAt:   updated,
	}
}

// CommentThreads lists a video's comment threads newest first. maxResults is
// clamped to the API's 1..100 window; nextPageToken is returned for paging.
func (c *Client) CommentThreads(ctx context.Context, videoID string, maxResults int, pageToken string) ([]CommentThread, string, error) {
	q := url.Values{}
	q.Set("part", "snippet,replies")
	q.Set("videoId", videoID)
	q.Set("order", "time")
	q.Set("maxResults", strconv.Itoa(clampMaxResults(maxResults)))
	if pageToken != "" {
		q.Set("pageToken", pageToken)
	}

	var resp struct {
		NextPageToken string `json:"nextPageToken"`
		Items         []struct {
			ID      string `json:"id"`
			Snippet struct {
				VideoID         string          `json:"videoId"`
				TopLevelComment commentResource `json:"topLevelComment"`
				TotalReplyCount int             `json:"totalReplyCount"`
			} `json:"snippet"`
			Replies struct {
				Comments []commentResource `json:"comments"`
			} `json:"replies"`
		} `json:"items"`
	}
	if err := c.doRequest(ctx, http.MethodGet, "/commentThreads", q, nil, &resp, false); err != nil {
		return nil, "", err
	}

	threads := make([]CommentThread, 0, len(resp.Items))
	for _, it := range resp.Items {
		replies := make([]Comment, 0, len(it.Replies.Comments))
		for _, rc := range it.Replies.Comments {
			replies = append(replies, rc.toComment())
		}
		threads = append(threads, CommentThread{
			ID:         it.ID,
			VideoID:    it.Snippet.VideoID,
			Comment:    it.Snippet.TopLevelComment.toComment(),
			ReplyCount: it.Snippet.TotalReplyCount,
			Replies:    replies,
		})
	}
	return threads, resp.NextPageToken, nil
}

// InsertComment posts a new top-level comment on a video.
func (c *Client) InsertComment(ctx context.Context, videoID, text string) (Comment, error) {
	q := url.Values{}
	q.Set("part", "snippet")

	body := map[string]any{
		"snippet": map[string]any{
			"videoId": videoID,
			"topLevelComment": map[string]any{
				"snippet": map[string]any{
					"textOriginal": text,
				},
			},
		},
	}

	var resp struct {
		ID      string `json:"id"`
		Snippet struct {
			TopLevelComment commentResource `json:"topLevelComment"`
		} `json:"snippet"`
	}
	if err := c.doRequest(ctx, http.MethodPost, "/commentThreads", q, body, &resp, true); err != nil {
		return Comment{}, err
	}
	return resp.Snippet.TopLevelComment.toComment(), nil
}

// ReplyComment posts a reply under an existing comment.
func (c *Client) ReplyComment(ctx context.Context, parentID, text string) (Comment, error) {
	q := url.Values{}
	q.Set("part", "snippet")

	body := map[string]any{
		"snippet": map[string]any{
			"parentId":     parentID,
			"textOriginal": text,
		},
	}

	var resp commentResource
	if err := c.doRequest(ctx, http.MethodPost, "/comments", q, body, &resp, true); err != nil {
		return Comment{}, err
	}
	return resp.toComment(), nil
}

// DeleteComment removes a comment the operator owns or moderates.
func (c *Client) DeleteComment(ctx context.Context, commentID string) error {
	q := url.Values{}
	q.Set("id", commentID)
	return c.doRequest(ctx, http.MethodDelete, "/comments", q, nil, nil, true)
}
