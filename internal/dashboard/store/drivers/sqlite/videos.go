package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/gautamkumarcode/youtube-video-management/internal/dashboard/domain"
	"github.com/gautamkumarcode/youtube-video-management/internal/dashboard/store"
)

type videosRepo struct {
	db dbtx
}

func (r *videosRepo) UpsertVideo(ctx context.Context, v domain.Video) error {
	now := time.Now().UTC()
	if v.CreatedAt.IsZero() {
		v.CreatedAt = now
	}
	if v.UpdatedAt.IsZero() {
		v.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO videos (
			youtube_id, title, description, thumbnail, duration, published_at,
			view_count, like_count, comment_count, upload_status, privacy_status,
			created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (youtube_id) DO UPDATE SET
			title          = excluded.title,
			description    = excluded.description,
			thumbnail      = excluded.thumbnail,
			duration       = excluded.duration,
			published_at   = excluded.published_at,
			view_count     = excluded.view_count,
			like_count     = excluded.like_count,
			comment_count  = excluded.comment_count,
			upload_status  = excluded.upload_status,
			privacy_status = excluded.privacy_status,
			updated_at     = excluded.updated_at;
	`,
		v.YouTubeID, v.Title, v.Description, v.Thumbnail, v.Duration, nullTime(v.PublishedAt),
		v.Statistics.ViewCount, v.Statistics.LikeCount, v.Statistics.CommentCount,
		v.Status.UploadStatus, v.Status.PrivacyStatus,
		v.CreatedAt, v.UpdatedAt,
	)
	return err
}

func (r *videosRepo) GetVideo(ctx context.Context, youtubeID string) (domain.Video, error) {
	var (
		v           domain.Video
		publishedAt sql.NullTime
	)

	err := r.db.QueryRowContext(ctx, `
		SELECT youtube_id, title, description, thumbnail, duration, published_at,
		       view_count, like_count, comment_count, upload_status, privacy_status,
		       created_at, updated_at
		FROM videos WHERE youtube_id = ?;
	`, youtubeID).Scan(
		&v.YouTubeID, &v.Title, &v.Description, &v.Thumbnail, &v.Duration, &publishedAt,
		&v.Statistics.ViewCount, &v.Statistics.LikeCount, &v.Statistics.CommentCount,
		&v.Status.UploadStatus, &v.Status.PrivacyStatus,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return domain.Video{}, mapNotFound(err)
	}

	if publishedAt.Valid {
		v.PublishedAt = publishedAt.Time.UTC()
	}
	v.CreatedAt = v.CreatedAt.UTC()
	v.UpdatedAt = v.UpdatedAt.UTC()
	return v, nil
}

func (r *videosRepo) UpdateVideoMetadata(ctx context.Context, youtubeID, title, description string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE videos SET title = ?, description = ?, updated_at = ?
		WHERE youtube_id = ?;
	`, title, description, time.Now().UTC(), youtubeID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *videosRepo) UpdateVideoStatistics(ctx context.Context, youtubeID string, stats domain.VideoStatistics) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE videos SET view_count = ?, like_count = ?, comment_count = ?, updated_at = ?
		WHERE youtube_id = ?;
	`, stats.ViewCount, stats.LikeCount, stats.CommentCount, time.Now().UTC(), youtubeID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
