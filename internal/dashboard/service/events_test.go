package service

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/gautamkumarcode/youtube-video-management/internal/dashboard/domain"
	"github.com/gautamkumarcode/youtube-video-management/internal/dashboard/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func newEventService(t *testing.T) *EventService {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	return &EventService{Store: st, Logger: slog.Default()}
}

func TestNormalizeIP(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"":                     "127.0.0.1",
		"::1":                  "127.0.0.1",
		"::ffff:10.0.0.5":      "10.0.0.5",
		"  203.0.113.9 ":       "203.0.113.9",
		"2001:db8::1":          "2001:db8::1",
		"::ffff:192.168.1.100": "192.168.1.100",
	}
	for in, want := range cases {
		require.Equal(t, want, NormalizeIP(in), "input %q", in)
	}
}

func TestEventRecordAndList(t *testing.T) {
	ctx := context.Background()
	svc := newEventService(t)

	svc.Record(domain.EventLog{
		EventType: domain.EventVideoFetched,
		VideoID:   "vid-1",
		IPAddress: "::ffff:10.1.2.3",
		Success:   true,
	})
	// Unknown types are coerced rather than dropped.
	svc.Record(domain.EventLog{EventType: "made_up_type", Success: true})

	require.Eventually(t, func() bool {
		events, err := svc.List(ctx, domain.EventFilter{})
		return err == nil && len(events) == 2
	}, 2*time.Second, 10*time.Millisecond)

	events, err := svc.List(ctx, domain.EventFilter{EventType: domain.EventVideoFetched})
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, "10.1.2.3", events[0].IPAddress)
	require.NotEmpty(t, events[0].ID)
	require.False(t, events[0].CreatedAt.IsZero())

	events, err = svc.List(ctx, domain.EventFilter{EventType: domain.EventUserAction})
	require.NoError(t, err)
	require.Len(t, events, 1)
}

func TestEventRecordCapsClientStrings(t *testing.T) {
	ctx := context.Background()
	svc := newEventService(t)

	hugeUA := strings.Repeat("u", domain.EventMaxUserAgentLength+200)
	hugeErr := strings.Repeat("e", domain.EventMaxErrorMessageLength+200)
	svc.Record(domain.EventLog{
		EventType:    domain.EventAPIError,
		UserAgent:    hugeUA,
		ErrorMessage: hugeErr,
	})

	require.Eventually(t, func() bool {
		events, err := svc.List(ctx, domain.EventFilter{})
		return err == nil && len(events) == 1
	}, 2*time.Second, 10*time.Millisecond)

	events, err := svc.List(ctx, domain.EventFilter{})
	require.NoError(t, err)
	require.Len(t, events[0].UserAgent, domain.EventMaxUserAgentLength)
	require.Len(t, events[0].ErrorMessage, domain.EventMaxErrorMessageLength)
	require.Equal(t, hugeUA[:domain.EventMaxUserAgentLength], events[0].UserAgent)
}

func TestEventListRejectsUnknownTypeFilter(t *testing.T) {
	ctx := context.Background()
	svc := newEventService(t)

	_, err := svc.List(ctx, domain.EventFilter{EventType: "nonsense"})
	require.ErrorIs(t, err, ErrValidation)
}

func TestHousekeepingPrunesOldEvents(t *testing.T) {
	ctx := context.Background()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	old := domain.EventLog{
		ID:        "01OLDOLDOLDOLDOLDOLDOLDOLD",
		EventType: domain.EventUserAction,
		CreatedAt: time.Now().Add(-48 * time.Hour).UTC(),
	}
	fresh := domain.EventLog{
		ID:        "01NEWNEWNEWNEWNEWNEWNEWNEW",
		EventType: domain.EventUserAction,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, st.Events().InsertEvent(ctx, old))
	require.NoError(t, st.Events().InsertEvent(ctx, fresh))

	hk := NewHousekeepingService(st, slog.Default(), time.Hour, 24*time.Hour)
	hk.Start()
	hk.Stop()

	events, err := st.Events().ListEvents(ctx, domain.EventFilter{Limit: 10})
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, fresh.ID, events[0].ID)
}
