package store

import (
	"context"
	"errors"
	"time"

	"github.com/gautamkumarcode/youtube-video-management/internal/dashboard/domain"
)

var ErrNotFound = errors.New("store: not found")

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Tokens() Tokens
	Videos() Videos
	Notes() Notes
	Events() Events

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// Tokens is the single-record OAuth credential table. The design is
// deliberately single-tenant: one operator, one record, fixed key.
type Tokens interface {
	// SaveTokenRecord overwrites the current record wholesale.
	SaveTokenRecord(ctx context.Context, rec domain.TokenRecord) error

	// GetTokenRecord returns the current record or ErrNotFound.
	GetTokenRecord(ctx context.Context) (domain.TokenRecord, error)

	// DeleteTokenRecord removes the record. Deleting an absent record is not
	// an error.
	DeleteTokenRecord(ctx context.Context) error
}

// Videos caches YouTube video documents keyed by the platform video id.
type Videos interface {
	// UpsertVideo inserts or replaces the cached document for v.YouTubeID.
	UpsertVideo(ctx context.Context, v domain.Video) error

	// GetVideo returns the cached document or ErrNotFound.
	GetVideo(ctx context.Context, youtubeID string) (domain.Video, error)

	// UpdateVideoMetadata sets title/description and bumps updated_at.
	UpdateVideoMetadata(ctx context.Context, youtubeID, title, description string) error

	// UpdateVideoStatistics refreshes the counters and bumps updated_at.
	UpdateVideoStatistics(ctx context.Context, youtubeID string, stats domain.VideoStatistics) error
}

// NoteFilter narrows a per-video note listing.
type NoteFilter struct {
	Category    string
	Priority    string
	IsCompleted *bool
	SortBy      string // created_at (default), updated_at, priority, title
	SortDesc    bool
}

// NoteSearch describes a cross-video note search.
type NoteSearch struct {
	Query    string
	VideoID  string
	Category string
	Priority string
	Limit    int
	Offset   int
}

type Notes interface {
	// CreateNote inserts a new note (id is provided by app via ULID).
	CreateNote(ctx context.Context, n domain.Note) error

	// GetNote returns a note by id or ErrNotFound.
	GetNote(ctx context.Context, id string) (domain.Note, error)

	// UpdateNote overwrites the mutable fields of an existing note.
	// Returns ErrNotFound if the note does not exist.
	UpdateNote(ctx context.Context, n domain.Note) error

	// DeleteNote removes a note. Returns ErrNotFound if absent.
	DeleteNote(ctx context.Context, id string) error

	// ListNotesByVideo returns a video's notes matching the filter.
	ListNotesByVideo(ctx context.Context, videoID string, f NoteFilter) ([]domain.Note, error)

	// SearchNotes matches the query against title, content and tags.
	SearchNotes(ctx context.Context, s NoteSearch) ([]domain.Note, error)
}

type Events interface {
	// InsertEvent appends an activity-log entry.
	InsertEvent(ctx context.Context, e domain.EventLog) error

	// ListEvents returns entries matching the filter, newest first.
	ListEvents(ctx context.Context, f domain.EventFilter) ([]domain.EventLog, error)

	// DeleteEventsBefore prunes entries created before cutoff and reports
	// how many were removed.
	DeleteEventsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
