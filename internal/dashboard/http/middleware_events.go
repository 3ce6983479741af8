package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gautamkumarcode/youtube-video-management/internal/dashboard/domain"
	"github.com/gautamkumarcode/youtube-video-management/internal/dashboard/service"
	"github.com/gautamkumarcode/youtube-video-management/pkg/httpx"
)

type eventCtxKey struct{}

// eventInfo is mutated by handlers via setEventContext so the middleware can
// classify the request after it completes.
type eventInfo struct {
	eventType string
	videoID   string
	commentID string
	noteID    string
}

// setEventContext tags the in-flight request with the activity it performed.
// A handler that never calls this still gets logged as user_action.
func setEventContext(r *http.Request, eventType, videoID, commentID, noteID string) {
	info, ok := r.Context().Value(eventCtxKey{}).(*eventInfo)
	if !ok {
		return
	}
	info.eventType = eventType
	info.videoID = videoID
	info.commentID = commentID
	info.noteID = noteID
}

// EventMiddleware records an activity-log entry for every request it wraps.
// Success is derived from the response status; the write itself is async so
// it adds no response latency.
func EventMiddleware(events *service.EventService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			info := &eventInfo{eventType: domain.EventUserAction}

			ctx := context.WithValue(r.Context(), eventCtxKey{}, info)
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r.WithContext(ctx))

			entry := domain.EventLog{
				EventType: info.eventType,
				VideoID:   info.videoID,
				CommentID: info.commentID,
				NoteID:    info.noteID,
				Details: map[string]any{
					"method": r.Method,
					"path":   r.URL.Path,
					"status": sw.status,
				},
				UserAgent:  r.UserAgent(),
				IPAddress:  httpx.IPKeyExtractor(r),
				Success:    sw.status < http.StatusBadRequest,
				DurationMS: time.Since(start).Milliseconds(),
			}
			if !entry.Success {
				entry.EventType = domain.EventAPIError
				entry.ErrorMessage = "HTTP " + strconv.Itoa(sw.status)
			}

			events.Record(entry)
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}
