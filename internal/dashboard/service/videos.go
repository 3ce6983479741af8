package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gautamkumarcode/youtube-video-management/internal/dashboard/domain"
	"github.com/gautamkumarcode/youtube-video-management/internal/dashboard/store"
	"github.com/gautamkumarcode/youtube-video-management/internal/dashboard/youtube"
	"github.com/gautamkumarcode/youtube-video-management/pkg/slogx"
)

var ErrValidation = errors.New("validation_failed")

const (
	videoMaxTitleLength       = 100
	videoMaxDescriptionLength = 5000
	commentMaxLength          = 10000
)

// VideoService fronts the YouTube API with a local cache. Reads serve the
// cached document when one exists, refreshing its statistics from the live
// API best effort; a cache miss fetches the full document.
type VideoService struct {
	YouTube *youtube.Client
	Store   store.Store
}

// GetVideo returns the video's metadata, cache first. A cached copy is
// served even when the live statistics refresh fails.
func (s *VideoService) GetVideo(ctx context.Context, videoID string) (domain.Video, error) {
	if videoID == "" {
		return domain.Video{}, fmt.Errorf("%w: video id is required", ErrValidation)
	}

	l := slogx.FromContext(ctx)

	cached, cacheErr := s.Store.Videos().GetVideo(ctx, videoID)
	if cacheErr == nil {
		live, err := s.YouTube.VideoDetails(ctx, videoID)
		if err != nil {
			l.Warn("serving cached video, statistics refresh failed",
				"video_id", videoID, "error", err)
			return cached, nil
		}
		if err := s.Store.Videos().UpdateVideoStatistics(ctx, videoID, live.Statistics); err != nil {
			l.Error("failed to refresh cached statistics", "video_id", videoID, "error", err)
		}
		cached.Statistics = live.Statistics
		return cached, nil
	}
	if !errors.Is(cacheErr, store.ErrNotFound) {
		l.Error("video cache read failed", "video_id", videoID, "error", cacheErr)
	}

	v, err := s.YouTube.VideoDetails(ctx, videoID)
	if err != nil {
		return domain.Video{}, err
	}
	if err := s.Store.Videos().UpsertVideo(ctx, v); err != nil {
		l.Error("failed to cache video", "video_id", videoID, "error", err)
	}
	return v, nil
}

// UpdateVideo pushes a new title and description to YouTube and mirrors the
// change into the cache.
func (s *VideoService) UpdateVideo(ctx context.Context, videoID, title, description string) (domain.Video, error) {
	title = strings.TrimSpace(title)
	switch {
	case videoID == "":
		return domain.Video{}, fmt.Errorf("%w: video id is required", ErrValidation)
	case title == "":
		return domain.Video{}, fmt.Errorf("%w: title is required", ErrValidation)
	case len(title) > videoMaxTitleLength:
		return domain.Video{}, fmt.Errorf("%w: title exceeds %d characters", ErrValidation, videoMaxTitleLength)
	case len(description) > videoMaxDescriptionLength:
		return domain.Video{}, fmt.Errorf("%w: description exceeds %d characters", ErrValidation, videoMaxDescriptionLength)
	}

	v, err := s.YouTube.UpdateVideo(ctx, videoID, title, description)
	if err != nil {
		return domain.Video{}, err
	}

	if err := s.Store.Videos().UpdateVideoMetadata(ctx, videoID, v.Title, v.Description); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			err = s.Store.Videos().UpsertVideo(ctx, v)
		}
		if err != nil {
			slogx.FromContext(ctx).Error("failed to cache updated video", "video_id", videoID, "error", err)
		}
	}
	return v, nil
}

// Search proxies a keyword search to the YouTube API.
func (s *VideoService) Search(ctx context.Context, query string, maxResults int) ([]youtube.SearchItem, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: search query is required", ErrValidation)
	}
	return s.YouTube.Search(ctx, query, maxResults)
}

// Comments lists a video's comment threads, newest first.
func (s *VideoService) Comments(ctx context.Context, videoID string, maxResults int, pageToken string) ([]youtube.CommentThread, string, error) {
	if videoID == "" {
		return nil, "", fmt.Errorf("%w: video id is required", ErrValidation)
	}
	return s.YouTube.CommentThreads(ctx, videoID, maxResults, pageToken)
}

// AddComment posts a top-level comment on a video.
func (s *VideoService) AddComment(ctx context.Context, videoID, text string) (youtube.Comment, error) {
	text = strings.TrimSpace(text)
	switch {
	case videoID == "":
		return youtube.Comment{}, fmt.Errorf("%w: video id is required", ErrValidation)
	case text == "":
		return youtube.Comment{}, fmt.Errorf("%w: comment text is required", ErrValidation)
	case len(text) > commentMaxLength:
		return youtube.Comment{}, fmt.Errorf("%w: comment exceeds %d characters", ErrValidation, commentMaxLength)
	}
	return s.YouTube.InsertComment(ctx, videoID, text)
}

// ReplyComment posts a reply under an existing comment.
func (s *VideoService) ReplyComment(ctx context.Context, parentID, text string) (youtube.Comment, error) {
	text = strings.TrimSpace(text)
	switch {
	case parentID == "":
		return youtube.Comment{}, fmt.Errorf("%w: parent comment id is required", ErrValidation)
	case text == "":
		return youtube.Comment{}, fmt.Errorf("%w: reply text is required", ErrValidation)
	case len(text) > commentMaxLength:
		return youtube.Comment{}, fmt.Errorf("%w: reply exceeds %d characters", ErrValidation, commentMaxLength)
	}
	return s.YouTube.ReplyComment(ctx, parentID, text)
}

// DeleteComment removes a comment.
func (s *VideoService) DeleteComment(ctx context.Context, commentID string) error {
	if commentID == "" {
		return fmt.Errorf("%w: comment id is required", ErrValidation)
	}
	return s.YouTube.DeleteComment(ctx, commentID)
}

// TestPermissions checks that the stored OAuth credentials can manage the
// operator's channel.
func (s *VideoService) TestPermissions(ctx context.Context) (string, error) {
	return s.YouTube.TestPermissions(ctx)
}

// RefreshStatistics re-fetches a video's counters into the cache without
// returning the full document.
func (s *VideoService) RefreshStatistics(ctx context.Context, videoID string) error {
	if videoID == "" {
		return fmt.Errorf("%w: video id is required", ErrValidation)
	}
	v, err := s.YouTube.VideoDetails(ctx, videoID)
	if err != nil {
		return err
	}
	if err := s.Store.Videos().UpdateVideoStatistics(ctx, videoID, v.Statistics); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return s.Store.Videos().UpsertVideo(ctx, v)
		}
		return err
	}
	return nil
}
