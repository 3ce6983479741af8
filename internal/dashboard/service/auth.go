package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gautamkumarcode/youtube-video-management/internal/dashboard/domain"
	"github.com/gautamkumarcode/youtube-video-management/internal/dashboard/google"
	"github.com/gautamkumarcode/youtube-video-management/pkg/jwtx"
	"github.com/gautamkumarcode/youtube-video-management/pkg/slogx"
)

var (
	ErrMissingCode     = errors.New("missing_authorization_code")
	ErrCodeAlreadyUsed = errors.New("authorization_code_already_used")
	ErrExpiredAuthCode = errors.New("authorization_code_expired")
	ErrTokenExchange   = errors.New("token_exchange_failed")
	ErrProfileFetch    = errors.New("profile_fetch_failed")
)

// AuthService drives the Google login flow: guard the authorization code
// against replay, exchange it, fetch the profile, persist the credentials
// and mint a session token.
type AuthService struct {
	Provider   google.Provider
	Guard      *CodeGuard
	Tokens     *TokenStore
	Signer     *jwtx.Signer
	SessionTTL time.Duration
}

// AuthURL returns the Google consent URL for the given CSRF state.
func (s *AuthService) AuthURL(state string) string {
	return s.Provider.AuthCodeURL(state)
}

// CompleteLogin runs the full callback flow for an authorization code.
//
// The guard reserves the code before anything touches the network, so two
// concurrent callbacks with the same code produce exactly one exchange; the
// loser gets ErrCodeAlreadyUsed. When the exchange itself fails the code is
// released again so the user can restart the flow without the guard
// rejecting the retry.
func (s *AuthService) CompleteLogin(ctx context.Context, code string) (domain.Session, error) {
	l := slogx.FromContext(ctx)

	code = strings.TrimSpace(code)
	if code == "" {
		return domain.Session{}, ErrMissingCode
	}

	if !s.Guard.CheckAndReserve(code) {
		l.Warn("duplicate authorization code rejected")
		return domain.Session{}, ErrCodeAlreadyUsed
	}

	tokens, err := s.Provider.Exchange(ctx, code)
	if err != nil {
		s.Guard.Release(code)
		if errors.Is(err, google.ErrInvalidGrant) {
			l.Info("authorization code rejected by provider", slog.String("reason", "invalid_grant"))
			return domain.Session{}, ErrExpiredAuthCode
		}
		l.Error("token exchange failed", "error", err)
		return domain.Session{}, fmt.Errorf("%w: %v", ErrTokenExchange, err)
	}

	// The code stays reserved from here on: the provider already issued
	// tokens for it and would reject a replay anyway.
	profile, err := s.Provider.FetchProfile(ctx, tokens.AccessToken)
	if err != nil {
		l.Error("profile fetch failed", "error", err)
		return domain.Session{}, ErrProfileFetch
	}

	// Best effort: a persistence failure is logged inside Save and must not
	// abort a login that already redeemed the code.
	s.Tokens.Save(ctx, tokens)

	claims := jwtx.NewSessionClaims(
		profile.ID, profile.Email, profile.Name, profile.Picture,
		s.Signer.Issuer(), s.SessionTTL, time.Now(),
	)
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return domain.Session{}, err
	}

	l.Info("login completed", slog.String("user_id", profile.ID))
	return domain.Session{User: profile, Token: token}, nil
}

// Logout drops the stored OAuth credentials. Session tokens are stateless
// and simply expire; revoking the provider tokens is what matters.
func (s *AuthService) Logout(ctx context.Context) bool {
	return s.Tokens.Clear(ctx)
}
