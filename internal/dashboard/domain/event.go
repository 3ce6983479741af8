package domain

import (
	"slices"
	"time"
)

// Event types recorded in the activity log.
const (
	EventVideoFetched   = "video_fetched"
	EventVideoUpdated   = "video_updated"
	EventCommentAdded   = "comment_added"
	EventCommentReplied = "comment_replied"
	EventCommentDeleted = "comment_deleted"
	EventNoteCreated    = "note_created"
	EventNoteUpdated    = "note_updated"
	EventNoteDeleted    = "note_deleted"
	EventAPIError       = "api_error"
	EventUserAction     = "user_action"
)

// Field caps for stored entries. Giant client-supplied strings get cut off
// rather than rejected.
const (
	EventMaxUserAgentLength    = 500
	EventMaxErrorMessageLength = 1000
)

var EventTypes = []string{
	EventVideoFetched,
	EventVideoUpdated,
	EventCommentAdded,
	EventCommentReplied,
	EventCommentDeleted,
	EventNoteCreated,
	EventNoteUpdated,
	EventNoteDeleted,
	EventAPIError,
	EventUserAction,
}

// EventLog is one activity-log entry, captured by the event middleware
// around every API route.
type EventLog struct {
	ID           string         `json:"id"`
	EventType    string         `json:"eventType"`
	VideoID      string         `json:"videoId,omitempty"`
	CommentID    string         `json:"commentId,omitempty"`
	NoteID       string         `json:"noteId,omitempty"`
	Details      map[string]any `json:"details"`
	UserAgent    string         `json:"userAgent"`
	IPAddress    string         `json:"ipAddress"`
	Success      bool           `json:"success"`
	ErrorMessage string         `json:"errorMessage,omitempty"`
	DurationMS   int64          `json:"duration"`
	CreatedAt    time.Time      `json:"createdAt"`
}

// ValidEventType reports whether t is one of the known event types.
func ValidEventType(t string) bool {
	return slices.Contains(EventTypes, t)
}

// EventFilter narrows an event-log listing.
type EventFilter struct {
	EventType string
	VideoID   string
	Success   *bool
	Limit     int
	Offset    int
}
