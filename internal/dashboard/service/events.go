package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gautamkumarcode/youtube-video-management/internal/dashboard/domain"
	"github.com/gautamkumarcode/youtube-video-management/internal/dashboard/store"
	"github.com/gautamkumarcode/youtube-video-management/pkg/idx"
)

// EventService records and queries the activity log. Recording is
// fire-and-forget: the write happens on a background goroutine so a slow
// database never adds latency to an API response.
type EventService struct {
	Store  store.Store
	Logger *slog.Logger
}

// Record persists one activity entry asynchronously. Unknown event types
// are coerced to user_action rather than dropped; the log is a diagnostic
// aid and should err on the side of recording.
func (s *EventService) Record(e domain.EventLog) {
	if !domain.ValidEventType(e.EventType) {
		e.EventType = domain.EventUserAction
	}
	if e.ID == "" {
		e.ID = idx.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	e.IPAddress = NormalizeIP(e.IPAddress)
	e.UserAgent = truncate(e.UserAgent, domain.EventMaxUserAgentLength)
	e.ErrorMessage = truncate(e.ErrorMessage, domain.EventMaxErrorMessageLength)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.Store.Events().InsertEvent(ctx, e); err != nil {
			s.Logger.Error("failed to record event",
				"event_type", e.EventType, "error", err)
		}
	}()
}

// List returns activity entries matching the filter, newest first.
func (s *EventService) List(ctx context.Context, f domain.EventFilter) ([]domain.EventLog, error) {
	if f.EventType != "" && !domain.ValidEventType(f.EventType) {
		return nil, fmt.Errorf("%w: unknown event type %q", ErrValidation, f.EventType)
	}
	if f.Limit <= 0 || f.Limit > 500 {
		f.Limit = 100
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return s.Store.Events().ListEvents(ctx, f)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// NormalizeIP strips the IPv6 wrapping that proxies and the Go listener put
// around IPv4 addresses, so log entries group by the address users expect.
func NormalizeIP(ip string) string {
	ip = strings.TrimSpace(ip)
	switch {
	case ip == "" || ip == "::1":
		return "127.0.0.1"
	case strings.HasPrefix(ip, "::ffff:"):
		return strings.TrimPrefix(ip, "::ffff:")
	}
	return ip
}
