package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gautamkumarcode/youtube-video-management/internal/dashboard/domain"
	"github.com/gautamkumarcode/youtube-video-management/internal/dashboard/store"
)

// TokenStore holds the operator's OAuth credentials: an in-memory mirror for
// request-path reads plus a persisted record that survives restarts.
//
// Every method is deliberately infallible from the caller's point of view.
// Persistence failures are logged and reported as booleans; YouTube request
// paths must never break because the credential store hiccuped.
type TokenStore struct {
	Store  store.Store
	Logger *slog.Logger

	mu      sync.RWMutex
	current *domain.TokenRecord

	now func() time.Time
}

func NewTokenStore(st store.Store, logger *slog.Logger) *TokenStore {
	return &TokenStore{
		Store:  st,
		Logger: logger,
		now:    time.Now,
	}
}

// Save records a fresh credential pair, replacing whatever was held before
// (last write wins). An empty refresh token keeps the previously stored one;
// Google omits the refresh token on repeat consents. A missing access token
// is rejected outright: neither the mirror nor the record is touched.
// Returns false when the record could not be persisted; the in-memory mirror
// is updated regardless so the current process can keep working.
func (s *TokenStore) Save(ctx context.Context, tokens domain.ProviderTokens) bool {
	if tokens.AccessToken == "" {
		s.Logger.Warn("refusing to save oauth tokens without an access token")
		return false
	}

	scope := tokens.Scope
	if scope == "" {
		scope = domain.DefaultTokenScope
	}

	s.mu.Lock()
	refresh := tokens.RefreshToken
	if refresh == "" && s.current != nil {
		refresh = s.current.RefreshToken
	}
	rec := domain.TokenRecord{
		AccessToken:  tokens.AccessToken,
		RefreshToken: refresh,
		Expiry:       tokens.Expiry,
		Scope:        scope,
		SavedAt:      s.now().UTC(),
	}
	s.current = &rec
	s.mu.Unlock()

	if err := s.Store.Tokens().SaveTokenRecord(ctx, rec); err != nil {
		s.Logger.Error("failed to persist oauth tokens", "error", err)
		return false
	}

	s.Logger.Info("oauth tokens saved",
		"access_token_length", len(rec.AccessToken),
		"has_refresh_token", rec.RefreshToken != "",
	)
	return true
}

// Load restores the persisted record into the memory mirror. Called once at
// startup so a restart does not force a fresh login. Returns false when no
// usable record exists; a record missing either token is structurally
// invalid and is ignored.
func (s *TokenStore) Load(ctx context.Context) bool {
	rec, err := s.Store.Tokens().GetTokenRecord(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.Logger.Error("failed to load oauth tokens", "error", err)
		}
		return false
	}
	if rec.AccessToken == "" || rec.RefreshToken == "" {
		s.Logger.Warn("ignoring incomplete persisted token record")
		return false
	}

	s.mu.Lock()
	s.current = &rec
	s.mu.Unlock()

	s.Logger.Info("oauth tokens restored", "saved_at", rec.SavedAt)
	return true
}

// Clear wipes both the memory mirror and the persisted record. The mirror is
// cleared even when the delete fails, so the running process always forgets.
func (s *TokenStore) Clear(ctx context.Context) bool {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	if err := s.Store.Tokens().DeleteTokenRecord(ctx); err != nil {
		s.Logger.Error("failed to delete oauth tokens", "error", err)
		return false
	}
	return true
}

// HasTokens reports whether a complete credential pair is currently held.
// Both tokens are required: an access token alone expires within the hour
// and cannot be renewed.
func (s *TokenStore) HasTokens() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil && s.current.AccessToken != "" && s.current.RefreshToken != ""
}

// AccessToken returns the current access token for API calls. Satisfies the
// YouTube client's token source.
func (s *TokenStore) AccessToken() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil || s.current.AccessToken == "" {
		return "", false
	}
	return s.current.AccessToken, true
}

// Status assembles the diagnostic snapshot for the token-debug endpoint.
// Lengths and presence flags only; token values never leave this package.
func (s *TokenStore) Status(ctx context.Context) domain.TokenStatus {
	var status domain.TokenStatus

	s.mu.RLock()
	if s.current != nil {
		status.MemoryTokens = domain.TokenLengths{
			AccessTokenLength:  len(s.current.AccessToken),
			RefreshTokenLength: len(s.current.RefreshToken),
		}
		status.HasTokens = s.current.AccessToken != "" && s.current.RefreshToken != ""
	}
	s.mu.RUnlock()

	rec, err := s.Store.Tokens().GetTokenRecord(ctx)
	if err == nil {
		status.FileInfo = &domain.TokenRecordMeta{
			SavedAt:         rec.SavedAt,
			Scope:           rec.Scope,
			HasRefreshToken: rec.RefreshToken != "",
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		s.Logger.Error("failed to read persisted token record", "error", err)
	}

	return status
}
