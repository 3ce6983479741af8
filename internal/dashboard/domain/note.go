package domain

import (
	"slices"
	"time"
)

// Note categories and priorities. Values outside these sets are rejected at
// validation time.
const (
	NoteCategoryImprovement = "improvement"
	NoteCategoryIdeas       = "ideas"
	NoteCategoryFeedback    = "feedback"
	NoteCategoryGeneral     = "general"

	NotePriorityLow    = "low"
	NotePriorityMedium = "medium"
	NotePriorityHigh   = "high"

	NoteMaxTitleLength   = 200
	NoteMaxContentLength = 10000
	NoteMaxTagLength     = 50
)

var (
	NoteCategories = []string{
		NoteCategoryImprovement,
		NoteCategoryIdeas,
		NoteCategoryFeedback,
		NoteCategoryGeneral,
	}
	NotePriorities = []string{NotePriorityLow, NotePriorityMedium, NotePriorityHigh}
)

// Note is a private annotation attached to a video.
type Note struct {
	ID          string    `json:"id"`
	VideoID     string    `json:"videoId"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Category    string    `json:"category"`
	Priority    string    `json:"priority"`
	IsCompleted bool      `json:"isCompleted"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ValidNoteCategory reports whether c is one of the known categories.
func ValidNoteCategory(c string) bool {
	return slices.Contains(NoteCategories, c)
}

// ValidNotePriority reports whether p is one of the known priorities.
func ValidNotePriority(p string) bool {
	return slices.Contains(NotePriorities, p)
}
