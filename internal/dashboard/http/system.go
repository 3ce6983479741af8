package http

import (
	"net/http"
	"time"

	"github.com/gautamkumarcode/youtube-video-management/internal/dashboard/store"
)

// HealthzHandler reports liveness plus database reachability.
func HealthzHandler(st store.Store, startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		code := http.StatusOK
		if err := st.Ping(r.Context()); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		respondData(w, code, map[string]any{
			"status":  status,
			"uptime":  time.Since(startTime).String(),
			"version": version,
		}, "")
	}
}

// RootHandler identifies the service for anyone poking at the base URL.
func RootHandler(version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondData(w, http.StatusOK, map[string]any{
			"service": "youtube-video-management",
			"version": version,
		}, "")
	}
}

// NotFoundHandler keeps unknown paths inside the JSON envelope instead of
// the stdlib's plain-text 404.
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusNotFound, "Route not found: "+r.Method+" "+r.URL.Path, "ROUTE_NOT_FOUND")
}
