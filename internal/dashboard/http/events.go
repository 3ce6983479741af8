package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gautamkumarcode/youtube-video-management/internal/dashboard/domain"
	"github.com/gautamkumarcode/youtube-video-management/internal/dashboard/service"
)

// EventHandler serves the activity-log listing.
type EventHandler struct {
	EventService *service.EventService
}

func (h *EventHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	f := domain.EventFilter{
		EventType: q.Get("eventType"),
		VideoID:   q.Get("videoId"),
		Limit:     limit,
		Offset:    offset,
	}
	if v := q.Get("success"); v != "" {
		success := v == "true"
		f.Success = &success
	}

	events, err := h.EventService.List(r.Context(), f)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			respondError(w, http.StatusBadRequest, err.Error(), "VALIDATION_FAILED")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to list events", "EVENT_ERROR")
		return
	}
	respondData(w, http.StatusOK, events, "")
}
