package http

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gautamkumarcode/youtube-video-management/internal/dashboard/service"
	"github.com/gautamkumarcode/youtube-video-management/pkg/httpx"
	"github.com/gautamkumarcode/youtube-video-management/pkg/slogx"
)

// AuthHandler serves the Google login flow and session endpoints.
type AuthHandler struct {
	AuthService *service.AuthService
	TokenStore  *service.TokenStore
	Logger      *slog.Logger
}

// HandleLogin hands the SPA the Google consent URL. The state parameter is
// random per request; the SPA carries it through the redirect and checks it
// on return.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	state := newState()
	respondData(w, http.StatusOK, map[string]string{
		"authUrl": h.AuthService.AuthURL(state),
		"state":   state,
	}, "")
}

// HandleCallback completes the login: the SPA posts the authorization code
// it received from Google and gets a session token back.
func (h *AuthHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Code string `json:"code"`
	}
	// An empty body falls through as a missing code, which yields the
	// clearer MISSING_CODE response.
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "Invalid request body", "INVALID_BODY")
		return
	}

	session, err := h.AuthService.CompleteLogin(r.Context(), body.Code)
	if err != nil {
		h.writeLoginError(w, r, err)
		return
	}

	httpx.NoCache(w)
	respondData(w, http.StatusOK, map[string]any{
		"token": session.Token,
		"user":  session.User,
	}, "Login successful")
}

func (h *AuthHandler) writeLoginError(w http.ResponseWriter, r *http.Request, err error) {
	l := slogx.FromContext(r.Context())

	switch {
	case errors.Is(err, service.ErrMissingCode):
		respondError(w, http.StatusBadRequest, "Authorization code is required", "MISSING_CODE")
	case errors.Is(err, service.ErrCodeAlreadyUsed):
		respondError(w, http.StatusBadRequest,
			"This authorization code has already been used. Please sign in again.", "CODE_ALREADY_USED")
	case errors.Is(err, service.ErrExpiredAuthCode):
		respondError(w, http.StatusBadRequest,
			"The authorization code has expired. Please sign in again.", "EXPIRED_AUTH_CODE")
	case errors.Is(err, service.ErrTokenExchange):
		// The wrapped error carries the provider's diagnostic message.
		respondError(w, http.StatusBadRequest,
			"Failed to exchange authorization code: "+err.Error(), "TOKEN_EXCHANGE_FAILED")
	case errors.Is(err, service.ErrProfileFetch):
		respondError(w, http.StatusInternalServerError, "Failed to fetch user profile", "PROFILE_FETCH_FAILED")
	default:
		l.Error("login failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Authentication failed", "AUTH_FAILED")
	}
}

// HandleLogout drops the stored OAuth credentials.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.AuthService.Logout(r.Context())
	respondData(w, http.StatusOK, nil, "Logged out")
}

// HandleMe returns the profile embedded in the verified session token.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := httpx.SessionFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "No session", "NO_SESSION")
		return
	}
	respondData(w, http.StatusOK, map[string]any{
		"id":      claims.Subject,
		"email":   claims.Email,
		"name":    claims.Name,
		"picture": claims.Picture,
	}, "")
}

// HandleTokenDebug reports token presence and lengths for troubleshooting.
// Raw token values are never included.
func (h *AuthHandler) HandleTokenDebug(w http.ResponseWriter, r *http.Request) {
	httpx.NoCache(w)
	respondData(w, http.StatusOK, h.TokenStore.Status(r.Context()), "")
}

func newState() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
