package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gautamkumarcode/youtube-video-management/internal/dashboard/domain"
	"github.com/gautamkumarcode/youtube-video-management/internal/dashboard/store"
	"github.com/gautamkumarcode/youtube-video-management/pkg/idx"
)

// NoteService manages per-video annotations. All writes validate and
// sanitise input before touching the store; ids are ULIDs minted here.
type NoteService struct {
	Store store.Store
}

// NoteInput carries the caller-supplied fields for create and update.
type NoteInput struct {
	Title    string
	Content  string
	Category string
	Priority string
	Tags     []string
}

func (s *NoteService) Create(ctx context.Context, videoID string, in NoteInput) (domain.Note, error) {
	n := domain.Note{
		ID:       idx.New().String(),
		VideoID:  strings.TrimSpace(videoID),
		Category: domain.NoteCategoryGeneral,
		Priority: domain.NotePriorityMedium,
	}
	if n.VideoID == "" {
		return domain.Note{}, fmt.Errorf("%w: video id is required", ErrValidation)
	}
	if err := applyNoteInput(&n, in); err != nil {
		return domain.Note{}, err
	}

	now := time.Now().UTC()
	n.CreatedAt = now
	n.UpdatedAt = now

	if err := s.Store.Notes().CreateNote(ctx, n); err != nil {
		return domain.Note{}, err
	}
	return n, nil
}

func (s *NoteService) Get(ctx context.Context, id string) (domain.Note, error) {
	return s.Store.Notes().GetNote(ctx, id)
}

func (s *NoteService) Update(ctx context.Context, id string, in NoteInput) (domain.Note, error) {
	n, err := s.Store.Notes().GetNote(ctx, id)
	if err != nil {
		return domain.Note{}, err
	}
	if err := applyNoteInput(&n, in); err != nil {
		return domain.Note{}, err
	}
	n.UpdatedAt = time.Now().UTC()

	if err := s.Store.Notes().UpdateNote(ctx, n); err != nil {
		return domain.Note{}, err
	}
	return n, nil
}

// ToggleCompleted flips the note's completion flag.
func (s *NoteService) ToggleCompleted(ctx context.Context, id string) (domain.Note, error) {
	n, err := s.Store.Notes().GetNote(ctx, id)
	if err != nil {
		return domain.Note{}, err
	}
	n.IsCompleted = !n.IsCompleted
	n.UpdatedAt = time.Now().UTC()

	if err := s.Store.Notes().UpdateNote(ctx, n); err != nil {
		return domain.Note{}, err
	}
	return n, nil
}

func (s *NoteService) Delete(ctx context.Context, id string) error {
	return s.Store.Notes().DeleteNote(ctx, id)
}

func (s *NoteService) ListByVideo(ctx context.Context, videoID string, f store.NoteFilter) ([]domain.Note, error) {
	if videoID == "" {
		return nil, fmt.Errorf("%w: video id is required", ErrValidation)
	}
	if f.Category != "" && !domain.ValidNoteCategory(f.Category) {
		return nil, fmt.Errorf("%w: unknown category %q", ErrValidation, f.Category)
	}
	if f.Priority != "" && !domain.ValidNotePriority(f.Priority) {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrValidation, f.Priority)
	}
	return s.Store.Notes().ListNotesByVideo(ctx, videoID, f)
}

func (s *NoteService) Search(ctx context.Context, q store.NoteSearch) ([]domain.Note, error) {
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 50
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	return s.Store.Notes().SearchNotes(ctx, q)
}

// applyNoteInput validates and copies the mutable fields onto n. Empty
// category and priority keep the note's current values.
func applyNoteInput(n *domain.Note, in NoteInput) error {
	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)

	switch {
	case title == "":
		return fmt.Errorf("%w: title is required", ErrValidation)
	case len(title) > domain.NoteMaxTitleLength:
		return fmt.Errorf("%w: title exceeds %d characters", ErrValidation, domain.NoteMaxTitleLength)
	case content == "":
		return fmt.Errorf("%w: content is required", ErrValidation)
	case len(content) > domain.NoteMaxContentLength:
		return fmt.Errorf("%w: content exceeds %d characters", ErrValidation, domain.NoteMaxContentLength)
	}

	if in.Category != "" {
		if !domain.ValidNoteCategory(in.Category) {
			return fmt.Errorf("%w: unknown category %q", ErrValidation, in.Category)
		}
		n.Category = in.Category
	}
	if in.Priority != "" {
		if !domain.ValidNotePriority(in.Priority) {
			return fmt.Errorf("%w: unknown priority %q", ErrValidation, in.Priority)
		}
		n.Priority = in.Priority
	}

	tags := make([]string, 0, len(in.Tags))
	for _, t := range in.Tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if len(t) > domain.NoteMaxTagLength {
			return fmt.Errorf("%w: tag exceeds %d characters", ErrValidation, domain.NoteMaxTagLength)
		}
		if strings.Contains(t, ",") {
			return fmt.Errorf("%w: tags must not contain commas", ErrValidation)
		}
		tags = append(tags, t)
	}

	n.Title = title
	n.Content = content
	n.Tags = tags
	return nil
}
