package domain

import "time"

// Video is the locally cached copy of a YouTube video's metadata. The cache
// is refreshed from the YouTube API on read; statistics are best-effort.
type Video struct {
	YouTubeID   string          `json:"youtubeId"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Thumbnail   string          `json:"thumbnail"`
	Duration    string          `json:"duration"`
	PublishedAt time.Time       `json:"publishedAt"`
	Statistics  VideoStatistics `json:"statistics"`
	Status      VideoStatus     `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// VideoStatistics keeps the counters as strings, matching the YouTube API
// wire format (the values can exceed float-safe integer ranges).
type VideoStatistics struct {
	ViewCount    string `json:"viewCount"`
	LikeCount    string `json:"likeCount"`
	CommentCount string `json:"commentCount"`
}

type VideoStatus struct {
	UploadStatus  string `json:"uploadStatus"`
	PrivacyStatus string `json:"privacyStatus"`
}
