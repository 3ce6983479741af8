package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gautamkumarcode/youtube-video-management/internal/dashboard/domain"
	"github.com/gautamkumarcode/youtube-video-management/internal/dashboard/google"
	"github.com/gautamkumarcode/youtube-video-management/internal/dashboard/service"
	"github.com/gautamkumarcode/youtube-video-management/internal/dashboard/store/drivers/sqlite"
	"github.com/gautamkumarcode/youtube-video-management/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "handler-test-secret"
	testIssuer = "yt-dashboard-test"
)

type scriptedProvider struct {
	exchangeErr error
}

func (p *scriptedProvider) AuthCodeURL(state string) string {
	return "https://accounts.example.com/consent?state=" + state
}

func (p *scriptedProvider) Exchange(ctx context.Context, code string) (domain.ProviderTokens, error) {
	if p.exchangeErr != nil {
		return domain.ProviderTokens{}, p.exchangeErr
	}
	return domain.ProviderTokens{
		AccessToken:  "access-" + code,
		RefreshToken: "refresh-secret-value",
		Expiry:       time.Now().Add(time.Hour),
	}, nil
}

func (p *scriptedProvider) FetchProfile(ctx context.Context, accessToken string) (domain.Profile, error) {
	return domain.Profile{ID: "u-1", Email: "u@example.com", Name: "U"}, nil
}

func newAuthHandler(t *testing.T, provider *scriptedProvider) *AuthHandler {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	signer, err := jwtx.NewSigner([]byte(testSecret), testIssuer)
	require.NoError(t, err)

	tokens := service.NewTokenStore(st, slog.Default())

	return &AuthHandler{
		AuthService: &service.AuthService{
			Provider:   provider,
			Guard:      service.NewCodeGuard(),
			Tokens:     tokens,
			Signer:     signer,
			SessionTTL: time.Hour,
		},
		TokenStore: tokens,
		Logger:     slog.Default(),
	}
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestHandleLoginReturnsConsentURL(t *testing.T) {
	h := newAuthHandler(t, &scriptedProvider{})

	rec := httptest.NewRecorder()
	h.HandleLogin(rec, httptest.NewRequest(http.MethodGet, "/api/auth/google", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			AuthURL string `json:"authUrl"`
			State   string `json:"state"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.NotEmpty(t, resp.Data.State)
	require.Contains(t, resp.Data.AuthURL, "accounts.example.com/consent?state="+resp.Data.State)
}

func TestHandleCallback(t *testing.T) {
	t.Run("success returns session token and user", func(t *testing.T) {
		h := newAuthHandler(t, &scriptedProvider{})

		req := httptest.NewRequest(http.MethodPost, "/api/auth/google/callback",
			strings.NewReader(`{"code":"good-code"}`))
		rec := httptest.NewRecorder()
		h.HandleCallback(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

		env := decodeEnvelope(t, rec)
		require.True(t, env.Success)
		data, ok := env.Data.(map[string]any)
		require.True(t, ok)
		require.NotEmpty(t, data["token"])
	})

	t.Run("missing code", func(t *testing.T) {
		h := newAuthHandler(t, &scriptedProvider{})

		req := httptest.NewRequest(http.MethodPost, "/api/auth/google/callback",
			strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		h.HandleCallback(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		require.False(t, env.Success)
		require.Equal(t, "MISSING_CODE", env.Error)
	})

	t.Run("empty body treated as missing code", func(t *testing.T) {
		h := newAuthHandler(t, &scriptedProvider{})

		req := httptest.NewRequest(http.MethodPost, "/api/auth/google/callback", nil)
		rec := httptest.NewRecorder()
		h.HandleCallback(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "MISSING_CODE", decodeEnvelope(t, rec).Error)
	})

	t.Run("duplicate code", func(t *testing.T) {
		h := newAuthHandler(t, &scriptedProvider{})

		body := `{"code":"reused-code"}`
		rec := httptest.NewRecorder()
		h.HandleCallback(rec, httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(body)))
		require.Equal(t, http.StatusOK, rec.Code)

		rec = httptest.NewRecorder()
		h.HandleCallback(rec, httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(body)))
		require.Equal(t, http.StatusBadRequest, rec.Code)

		env := decodeEnvelope(t, rec)
		require.False(t, env.Success)
		require.Equal(t, "CODE_ALREADY_USED", env.Error)
		require.Contains(t, env.Message, "already been used")
	})

	t.Run("expired code", func(t *testing.T) {
		h := newAuthHandler(t, &scriptedProvider{exchangeErr: google.ErrInvalidGrant})

		req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"code":"stale"}`))
		rec := httptest.NewRecorder()
		h.HandleCallback(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "EXPIRED_AUTH_CODE", decodeEnvelope(t, rec).Error)
	})

	t.Run("exchange failure", func(t *testing.T) {
		h := newAuthHandler(t, &scriptedProvider{exchangeErr: context.DeadlineExceeded})

		req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"code":"unlucky"}`))
		rec := httptest.NewRecorder()
		h.HandleCallback(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		require.Equal(t, "TOKEN_EXCHANGE_FAILED", env.Error)
		require.Contains(t, env.Message, context.DeadlineExceeded.Error())
	})
}

func TestHandleTokenDebugOmitsValues(t *testing.T) {
	h := newAuthHandler(t, &scriptedProvider{})

	rec := httptest.NewRecorder()
	h.HandleCallback(rec, httptest.NewRequest(http.MethodPost, "/x",
		strings.NewReader(`{"code":"debug-code"}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.HandleTokenDebug(rec, httptest.NewRequest(http.MethodGet, "/api/auth/token-debug", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	require.NotContains(t, body, "access-debug-code")
	require.NotContains(t, body, "refresh-secret-value")

	env := decodeEnvelope(t, rec)
	data, ok := env.Data.(map[string]any)
	require.True(t, ok)
	require.Equal(t, true, data["hasTokens"])
}

func TestHandleLogoutClearsTokens(t *testing.T) {
	h := newAuthHandler(t, &scriptedProvider{})

	rec := httptest.NewRecorder()
	h.HandleCallback(rec, httptest.NewRequest(http.MethodPost, "/x",
		strings.NewReader(`{"code":"bye-code"}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, h.TokenStore.HasTokens())

	rec = httptest.NewRecorder()
	h.HandleLogout(rec, httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.False(t, h.TokenStore.HasTokens())
}
