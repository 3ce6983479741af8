package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gautamkumarcode/youtube-video-management/internal/dashboard/domain"
	"github.com/gautamkumarcode/youtube-video-management/internal/dashboard/service"
	"github.com/gautamkumarcode/youtube-video-management/internal/dashboard/store"
)

// NoteHandler serves the per-video annotation CRUD.
type NoteHandler struct {
	NoteService *service.NoteService
	Events      *service.EventService
}

type noteBody struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Priority string   `json:"priority"`
	Tags     []string `json:"tags"`
}

func (b noteBody) toInput() service.NoteInput {
	return service.NoteInput{
		Title:    b.Title,
		Content:  b.Content,
		Category: b.Category,
		Priority: b.Priority,
		Tags:     b.Tags,
	}
}

func (h *NoteHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var body noteBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", "INVALID_BODY")
		return
	}

	n, err := h.NoteService.Create(r.Context(), r.PathValue("id"), body.toInput())
	if err != nil {
		writeNoteError(w, err)
		return
	}
	setEventContext(r, domain.EventNoteCreated, n.VideoID, "", n.ID)
	respondData(w, http.StatusCreated, n, "Note created")
}

func (h *NoteHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	n, err := h.NoteService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeNoteError(w, err)
		return
	}
	respondData(w, http.StatusOK, n, "")
}

func (h *NoteHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var body noteBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", "INVALID_BODY")
		return
	}

	n, err := h.NoteService.Update(r.Context(), r.PathValue("id"), body.toInput())
	if err != nil {
		writeNoteError(w, err)
		return
	}
	setEventContext(r, domain.EventNoteUpdated, n.VideoID, "", n.ID)
	respondData(w, http.StatusOK, n, "Note updated")
}

func (h *NoteHandler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	n, err := h.NoteService.ToggleCompleted(r.Context(), r.PathValue("id"))
	if err != nil {
		writeNoteError(w, err)
		return
	}
	setEventContext(r, domain.EventNoteUpdated, n.VideoID, "", n.ID)
	respondData(w, http.StatusOK, n, "Note toggled")
}

func (h *NoteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.NoteService.Delete(r.Context(), id); err != nil {
		writeNoteError(w, err)
		return
	}
	setEventContext(r, domain.EventNoteDeleted, "", "", id)
	respondData(w, http.StatusOK, nil, "Note deleted")
}

func (h *NoteHandler) HandleListByVideo(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	f := store.NoteFilter{
		Category: q.Get("category"),
		Priority: q.Get("priority"),
		SortBy:   q.Get("sortBy"),
		SortDesc: q.Get("order") != "asc",
	}
	if v := q.Get("completed"); v != "" {
		completed := v == "true"
		f.IsCompleted = &completed
	}

	notes, err := h.NoteService.ListByVideo(r.Context(), r.PathValue("id"), f)
	if err != nil {
		writeNoteError(w, err)
		return
	}
	respondData(w, http.StatusOK, notes, "")
}

func (h *NoteHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	notes, err := h.NoteService.Search(r.Context(), store.NoteSearch{
		Query:    q.Get("q"),
		VideoID:  q.Get("videoId"),
		Category: q.Get("category"),
		Priority: q.Get("priority"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		writeNoteError(w, err)
		return
	}
	respondData(w, http.StatusOK, notes, "")
}

func writeNoteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		respondError(w, http.StatusBadRequest, err.Error(), "VALIDATION_FAILED")
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, "Note not found", "NOT_FOUND")
	default:
		respondError(w, http.StatusInternalServerError, "Failed to process note", "NOTE_ERROR")
	}
}
