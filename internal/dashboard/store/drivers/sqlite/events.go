package sqlite

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gautamkumarcode/youtube-video-management/internal/dashboard/domain"
)

type eventsRepo struct {
	db dbtx
}

func (r *eventsRepo) InsertEvent(ctx context.Context, e domain.EventLog) error {
	details := "{}"
	if len(e.Details) > 0 {
		raw, err := json.Marshal(e.Details)
		if err != nil {
			return err
		}
		details = string(raw)
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO event_logs (
			id, event_type, video_id, comment_id, note_id, details,
			user_agent, ip_address, success, error_message, duration_ms, created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`,
		e.ID, e.EventType, e.VideoID, e.CommentID, e.NoteID, details,
		e.UserAgent, e.IPAddress, e.Success, e.ErrorMessage, e.DurationMS, e.CreatedAt.UTC(),
	)
	return err
}

func (r *eventsRepo) ListEvents(ctx context.Context, f domain.EventFilter) ([]domain.EventLog, error) {
	query := `
		SELECT id, event_type, video_id, comment_id, note_id, details,
		       user_agent, ip_address, success, error_message, duration_ms, created_at
		FROM event_logs WHERE 1 = 1`
	args := []any{}

	if f.EventType != "" {
		query += ` AND event_type = ?`
		args = append(args, f.EventType)
	}
	if f.VideoID != "" {
		query += ` AND video_id = ?`
		args = append(args, f.VideoID)
	}
	if f.Success != nil {
		query += ` AND success = ?`
		args = append(args, *f.Success)
	}

	query += ` ORDER BY created_at DESC`
	if f.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, f.Limit, f.Offset)
	}
	query += `;`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []domain.EventLog{}
	for rows.Next() {
		var (
			e       domain.EventLog
			details string
		)
		err := rows.Scan(
			&e.ID, &e.EventType, &e.VideoID, &e.CommentID, &e.NoteID, &details,
			&e.UserAgent, &e.IPAddress, &e.Success, &e.ErrorMessage, &e.DurationMS, &e.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if details != "" && details != "{}" {
			if err := json.Unmarshal([]byte(details), &e.Details); err != nil {
				// A malformed blob should not sink the whole listing.
				e.Details = map[string]any{"_raw": details}
			}
		}
		e.CreatedAt = e.CreatedAt.UTC()
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventsRepo) DeleteEventsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM event_logs WHERE created_at < ?;`, cutoff.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
