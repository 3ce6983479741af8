package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gautamkumarcode/youtube-video-management/internal/dashboard/service"
	"github.com/gautamkumarcode/youtube-video-management/internal/dashboard/store/drivers/sqlite"
	"github.com/gautamkumarcode/youtube-video-management/internal/dashboard/youtube"
	"github.com/gautamkumarcode/youtube-video-management/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*Router, *jwtx.Signer) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	signer, err := jwtx.NewSigner([]byte(testSecret), testIssuer)
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifier([]byte(testSecret), testIssuer)
	require.NoError(t, err)

	tokens := service.NewTokenStore(st, slog.Default())

	r := NewRouter(verifier, "test", st, slog.Default(), []string{"http://localhost:5173"})
	r.AuthService = &service.AuthService{
		Provider:   &scriptedProvider{},
		Guard:      service.NewCodeGuard(),
		Tokens:     tokens,
		Signer:     signer,
		SessionTTL: time.Hour,
	}
	r.VideoService = &service.VideoService{
		YouTube: youtube.NewClient("key", tokens),
		Store:   st,
	}
	r.NoteService = &service.NoteService{Store: st}
	r.EventService = &service.EventService{Store: st, Logger: slog.Default()}
	r.TokenStore = tokens
	r.ApplyRoutes()

	return r, signer
}

func sessionToken(t *testing.T, signer *jwtx.Signer) string {
	t.Helper()
	claims := jwtx.NewSessionClaims("u-1", "u@example.com", "U", "", testIssuer, time.Hour, time.Now())
	token, err := signer.Sign(claims)
	require.NoError(t, err)
	return token
}

func TestRouterAuthenticationBoundary(t *testing.T) {
	r, signer := newTestRouter(t)

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/videos/vid-1"},
		{http.MethodGet, "/api/videos/vid-1/notes"},
		{http.MethodGet, "/api/notes/search"},
		{http.MethodGet, "/api/events"},
		{http.MethodGet, "/api/auth/token-debug"},
		{http.MethodPost, "/api/auth/logout"},
	}

	t.Run("rejects missing bearer token", func(t *testing.T) {
		for _, route := range protected {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(route.method, route.path, nil))
			require.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", route.method, route.path)
		}
	})

	t.Run("rejects garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("accepts a valid session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
		req.Header.Set("Authorization", "Bearer "+sessionToken(t, signer))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("me endpoint reflects session claims", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+sessionToken(t, signer))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var env envelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
		data := env.Data.(map[string]any)
		require.Equal(t, "u-1", data["id"])
		require.Equal(t, "u@example.com", data["email"])
	})
}

func TestRouterSystemEndpoints(t *testing.T) {
	r, _ := newTestRouter(t)

	t.Run("healthz", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var env envelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
		require.True(t, env.Success)
	})

	t.Run("unknown route returns json 404", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope/nothing", nil))
		require.Equal(t, http.StatusNotFound, rec.Code)

		var env envelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
		require.False(t, env.Success)
		require.Equal(t, "ROUTE_NOT_FOUND", env.Error)
	})

	t.Run("cors preflight allowed for configured origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/events", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}
