// Package google wraps the Google OAuth2 endpoints used by the dashboard:
// the authorization-code exchange and the userinfo profile fetch.
package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/gautamkumarcode/youtube-video-management/internal/dashboard/domain"
)

const userinfoEndpoint = "https://www.googleapis.com/oauth2/v2/userinfo"

// Scopes requested during login. YouTube management requires the full
// youtube scope; profile and email feed the session claims.
var Scopes = []string{
	"https://www.googleapis.com/auth/youtube",
	"https://www.googleapis.com/auth/userinfo.profile",
	"https://www.googleapis.com/auth/userinfo.email",
}

var (
	// ErrInvalidGrant is returned when the token endpoint rejects the
	// authorization code as expired, revoked or already redeemed.
	ErrInvalidGrant = errors.New("google: invalid_grant")

	// ErrProfileFetch is returned when the userinfo request fails after a
	// successful token exchange.
	ErrProfileFetch = errors.New("google: profile fetch failed")
)

// Provider is the identity-provider surface the auth service depends on.
// The production implementation is Client; tests substitute fakes.
type Provider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (domain.ProviderTokens, error)
	FetchProfile(ctx context.Context, accessToken string) (domain.Profile, error)
}

// Client talks to Google's real OAuth2 and userinfo endpoints.
type Client struct {
	cfg        *oauth2.Config
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for userinfo requests and,
// via the oauth2 context, for the token exchange. Used in tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithEndpoint overrides the OAuth2 endpoint URLs. Used in tests.
func WithEndpoint(ep oauth2.Endpoint) Option {
	return func(c *Client) { c.cfg.Endpoint = ep }
}

func NewClient(clientID, clientSecret, redirectURI string, opts ...Option) *Client {
	c := &Client{
		cfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURI,
			Scopes:       Scopes,
			Endpoint:     google.Endpoint,
		},
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AuthCodeURL builds the consent-screen URL. Offline access plus a forced
// consent prompt is the only combination that reliably yields a refresh
// token from Google.
func (c *Client) AuthCodeURL(state string) string {
	return c.cfg.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

// Exchange redeems an authorization code for tokens. An invalid_grant
// response from Google maps to ErrInvalidGrant so callers can distinguish
// burned or expired codes from transport failures.
func (c *Client) Exchange(ctx context.Context, code string) (domain.ProviderTokens, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)

	tok, err := c.cfg.Exchange(ctx, code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.ErrorCode == "invalid_grant" {
			return domain.ProviderTokens{}, fmt.Errorf("%w: %s", ErrInvalidGrant, retrieveErr.ErrorDescription)
		}
		return domain.ProviderTokens{}, fmt.Errorf("google: token exchange: %w", err)
	}

	scope, _ := tok.Extra("scope").(string)
	if scope == "" {
		scope = domain.DefaultTokenScope
	}

	return domain.ProviderTokens{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		Expiry:       tok.Expiry,
		Scope:        scope,
	}, nil
}

// FetchProfile loads the Google profile for the freshly exchanged access
// token. Any failure maps to ErrProfileFetch; by that point the tokens are
// already held, so callers decide whether the login proceeds.
func (c *Client) FetchProfile(ctx context.Context, accessToken string) (domain.Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, userinfoEndpoint, nil)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("%w: %v", ErrProfileFetch, err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("%w: %v", ErrProfileFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return domain.Profile{}, fmt.Errorf("%w: status %d: %s", ErrProfileFetch, resp.StatusCode, body)
	}

	var payload struct {
		ID      string `json:"id"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.Profile{}, fmt.Errorf("%w: decode: %v", ErrProfileFetch, err)
	}

	return domain.Profile{
		ID:      payload.ID,
		Email:   payload.Email,
		Name:    payload.Name,
		Picture: payload.Picture,
	}, nil
}
