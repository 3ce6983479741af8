package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/gautamkumarcode/youtube-video-management/internal/dashboard/domain"
	"github.com/gautamkumarcode/youtube-video-management/internal/dashboard/store"
)

type notesRepo struct {
	db dbtx
}

// Tags are stored as a comma-joined string. Individual tags are validated
// upstream to never contain commas.
func joinTags(tags []string) string { return strings.Join(tags, ",") }

func splitTags(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}

func (r *notesRepo) CreateNote(ctx context.Context, n domain.Note) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notes (id, video_id, title, content, category, priority, is_completed, tags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`,
		n.ID, n.VideoID, n.Title, n.Content, n.Category, n.Priority,
		n.IsCompleted, joinTags(n.Tags), n.CreatedAt.UTC(), n.UpdatedAt.UTC(),
	)
	return err
}

func (r *notesRepo) GetNote(ctx context.Context, id string) (domain.Note, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, video_id, title, content, category, priority, is_completed, tags, created_at, updated_at
		FROM notes WHERE id = ?;
	`, id)
	return scanNote(row)
}

func (r *notesRepo) UpdateNote(ctx context.Context, n domain.Note) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE notes SET
			title = ?, content = ?, category = ?, priority = ?,
			is_completed = ?, tags = ?, updated_at = ?
		WHERE id = ?;
	`,
		n.Title, n.Content, n.Category, n.Priority,
		n.IsCompleted, joinTags(n.Tags), n.UpdatedAt.UTC(), n.ID,
	)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *notesRepo) DeleteNote(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?;`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *notesRepo) ListNotesByVideo(ctx context.Context, videoID string, f store.NoteFilter) ([]domain.Note, error) {
	query := `
		SELECT id, video_id, title, content, category, priority, is_completed, tags, created_at, updated_at
		FROM notes WHERE video_id = ?`
	args := []any{videoID}

	if f.Category != "" {
		query += ` AND category = ?`
		args = append(args, f.Category)
	}
	if f.Priority != "" {
		query += ` AND priority = ?`
		args = append(args, f.Priority)
	}
	if f.IsCompleted != nil {
		query += ` AND is_completed = ?`
		args = append(args, *f.IsCompleted)
	}

	query += ` ORDER BY ` + noteSortColumn(f.SortBy)
	if f.SortDesc {
		query += ` DESC`
	} else {
		query += ` ASC`
	}
	query += `;`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectNotes(rows)
}

func (r *notesRepo) SearchNotes(ctx context.Context, s store.NoteSearch) ([]domain.Note, error) {
	query := `
		SELECT id, video_id, title, content, category, priority, is_completed, tags, created_at, updated_at
		FROM notes WHERE 1 = 1`
	args := []any{}

	if s.Query != "" {
		like := "%" + escapeLike(s.Query) + "%"
		query += ` AND (title LIKE ? ESCAPE '\' OR content LIKE ? ESCAPE '\' OR tags LIKE ? ESCAPE '\')`
		args = append(args, like, like, like)
	}
	if s.VideoID != "" {
		query += ` AND video_id = ?`
		args = append(args, s.VideoID)
	}
	if s.Category != "" {
		query += ` AND category = ?`
		args = append(args, s.Category)
	}
	if s.Priority != "" {
		query += ` AND priority = ?`
		args = append(args, s.Priority)
	}

	query += ` ORDER BY created_at DESC`
	if s.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, s.Limit, s.Offset)
	}
	query += `;`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectNotes(rows)
}

// noteSortColumn whitelists sortable columns; anything unknown falls back to
// created_at so user input can never reach the ORDER BY clause directly.
func noteSortColumn(sortBy string) string {
	switch sortBy {
	case "updated_at", "priority", "title":
		return sortBy
	default:
		return "created_at"
	}
}

func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (domain.Note, error) {
	var (
		n    domain.Note
		tags string
	)
	err := row.Scan(
		&n.ID, &n.VideoID, &n.Title, &n.Content, &n.Category, &n.Priority,
		&n.IsCompleted, &tags, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		return domain.Note{}, mapNotFound(err)
	}
	n.Tags = splitTags(tags)
	n.CreatedAt = n.CreatedAt.UTC()
	n.UpdatedAt = n.UpdatedAt.UTC()
	return n, nil
}

func collectNotes(rows *sql.Rows) ([]domain.Note, error) {
	notes := []domain.Note{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}
