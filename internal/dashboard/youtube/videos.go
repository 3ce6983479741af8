package youtube

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gautamkumarcode/youtube-video-management/internal/dashboard/domain"
)

// videoResource mirrors the parts of the videos.list response we consume.
type videoResource struct {
	ID      string `json:"id"`
	Snippet struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		PublishedAt string `json:"publishedAt"`
		CategoryID  string `json:"categoryId"`
		Thumbnails  struct {
			High struct {
				URL string `json:"url"`
			} `json:"high"`
			Default struct {
				URL string `json:"url"`
			} `json:"default"`
		} `json:"thumbnails"`
	} `json:"snippet"`
	Statistics struct {
		ViewCount    string `json:"viewCount"`
		LikeCount    string `json:"likeCount"`
		CommentCount string `json:"commentCount"`
	} `json:"statistics"`
	Status struct {
		UploadStatus  string `json:"uploadStatus"`
		PrivacyStatus string `json:"privacyStatus"`
	} `json:"status"`
	ContentDetails struct {
		Duration string `json:"duration"`
	} `json:"contentDetails"`
}

type videoListResponse struct {
	Items []videoResource `json:"items"`
}

func (r videoResource) toDomain() domain.Video {
	thumb := r.Snippet.Thumbnails.High.URL
	if thumb == "" {
		thumb = r.Snippet.Thumbnails.Default.URL
	}

	published, _ := time.Parse(time.RFC3339, r.Snippet.PublishedAt)

	return domain.Video{
		YouTubeID:   r.ID,
		Title:       r.Snippet.Title,
		Description: r.Snippet.Description,
		Thumbnail:   thumb,
		Duration:    r.ContentDetails.Duration,
		PublishedAt: published,
		Statistics: domain.VideoStatistics{
			ViewCount:    r.Statistics.ViewCount,
			LikeCount:    r.Statistics.LikeCount,
			CommentCount: r.Statistics.CommentCount,
		},
		Status: domain.VideoStatus{
			UploadStatus:  r.Status.UploadStatus,
			PrivacyStatus: r.Status.PrivacyStatus,
		},
	}
}

// VideoDetails fetches full metadata for one video.
func (c *Client) VideoDetails(ctx context.Context, videoID string) (domain.Video, error) {
	q := url.Values{}
	q.Set("part", "snippet,statistics,status,contentDetails")
	q.Set("id", videoID)

	var resp videoListResponse
	if err := c.doRequest(ctx, http.MethodGet, "/videos", q, nil, &resp, false); err != nil {
		return domain.Video{}, err
	}
	if len(resp.Items) == 0 {
		return domain.Video{}, ErrNotFound
	}
	return resp.Items[0].toDomain(), nil
}

// UpdateVideo changes a video's title and description. The API requires the
// snippet's categoryId on update, so the current snippet is fetched first
// and carried over.
func (c *Client) UpdateVideo(ctx context.Context, videoID, title, description string) (domain.Video, error) {
	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("id", videoID)

	var current videoListResponse
	if err := c.doRequest(ctx, http.MethodGet, "/videos", q, nil, &current, false); err != nil {
		return domain.Video{}, err
	}
	if len(current.Items) == 0 {
		return domain.Video{}, ErrNotFound
	}

	body := map[string]any{
		"id": videoID,
		"snippet": map[string]any{
			"title":       title,
			"description": description,
			"categoryId":  current.Items[0].Snippet.CategoryID,
		},
	}

	updateQ := url.Values{}
	updateQ.Set("part", "snippet")

	var updated videoResource
	if err := c.doRequest(ctx, http.MethodPut, "/videos", updateQ, body, &updated, true); err != nil {
		return domain.Video{}, err
	}

	v := updated.toDomain()
	// The update response omits statistics, status and contentDetails.
	base := current.Items[0].toDomain()
	v.Statistics = base.Statistics
	v.Status = base.Status
	v.Duration = base.Duration
	return v, nil
}

// SearchItem is one hit from search.list.
type SearchItem struct {
	VideoID     string    `json:"videoId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Thumbnail   string    `json:"thumbnail"`
	PublishedAt time.Time `json:"publishedAt"`
}

// Search runs a keyword search for videos.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]SearchItem, error) {
	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("type", "video")
	q.Set("q", query)
	q.Set("maxResults", strconv.Itoa(clampMaxResults(maxResults)))

	var resp struct {
		Items []struct {
			ID struct {
				VideoID string `json:"videoId"`
			} `json:"id"`
			Snippet struct {
				Title       string `json:"title"`
				Description string `json:"description"`
				PublishedAt string `json:"publishedAt"`
				Thumbnails  struct {
					High struct {
						URL string `json:"url"`
					} `json:"high"`
				} `json:"thumbnails"`
			} `json:"snippet"`
		} `json:"items"`
	}
	if err := c.doRequest(ctx, http.MethodGet, "/search", q, nil, &resp, false); err != nil {
		return nil, err
	}

	items := make([]SearchItem, 0, len(resp.Items))
	for _, it := range resp.Items {
		published, _ := time.Parse(time.RFC3339, it.Snippet.PublishedAt)
		items = append(items, SearchItem{
			VideoID:     it.ID.VideoID,
			Title:       it.Snippet.Title,
			Description: it.Snippet.Description,
			Thumbnail:   it.Snippet.Thumbnails.High.URL,
			PublishedAt: published,
		})
	}
	return items, nil
}

// TestPermissions verifies that the stored OAuth token can act on the
// operator's channel. Returns the channel title when access works.
func (c *Client) TestPermissions(ctx context.Context) (string, error) {
	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("mine", "true")

	var resp struct {
		Items []struct {
			Snippet struct {
				Title string `json:"title"`
			} `json:"snippet"`
		} `json:"items"`
	}
	if err := c.doRequest(ctx, http.MethodGet, "/channels", q, nil, &resp, true); err != nil {
		return "", err
	}
	if len(resp.Items) == 0 {
		return "", ErrForbidden
	}
	return resp.Items[0].Snippet.Title, nil
}
