// Package youtube is a thin client for the YouTube Data API v3 surface the
// dashboard uses. Read operations authenticate with the API key; write
// operations require the operator's OAuth access token.
package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://www.googleapis.com/youtube/v3"

var (
	ErrNotFound      = errors.New("youtube: resource not found")
	ErrUnauthorized  = errors.New("youtube: unauthorized")
	ErrForbidden     = errors.New("youtube: forbidden")
	ErrQuotaExceeded = errors.New("youtube: quota exceeded")
	ErrNoAccessToken = errors.New("youtube: no access token available")
)

// TokenSource yields the operator's current OAuth access token. The second
// return is false when no login has completed yet.
type TokenSource interface {
	AccessToken() (string, bool)
}

type Client struct {
	baseURL    string
	apiKey     string
	tokens     TokenSource
	httpClient *http.Client
}

type Option func(*Client)

// WithBaseURL points the client at a different API root. Used in tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func NewClient(apiKey string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		tokens:     tokens,
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// apiError is the envelope Google wraps failures in.
type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Errors  []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"error"`
}

// doRequest performs one API call. When authed is true the operator's OAuth
// bearer token is attached; otherwise the API key is appended to the query.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, query url.Values, body, result any, authed bool) error {
	if query == nil {
		query = url.Values{}
	}
	if !authed {
		query.Set("key", c.apiKey)
	}
	apiURL := c.baseURL + endpoint + "?" + query.Encode()

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("youtube: encode request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, reqBody)
	if err != nil {
		return fmt.Errorf("youtube: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if authed {
		token, ok := c.tokens.AccessToken()
		if !ok {
			return ErrNoAccessToken
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("youtube: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.mapError(resp)
	}

	if result != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("youtube: decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) mapError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var payload apiError
	_ = json.Unmarshal(raw, &payload)

	for _, e := range payload.Error.Errors {
		if e.Reason == "quotaExceeded" || e.Reason == "dailyLimitExceeded" {
			return fmt.Errorf("%w: %s", ErrQuotaExceeded, payload.Error.Message)
		}
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, payload.Error.Message)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, payload.Error.Message)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, payload.Error.Message)
	}
	return fmt.Errorf("youtube: API error: status %d: %s", resp.StatusCode, payload.Error.Message)
}

// clampMaxResults keeps maxResults inside the API's accepted 1..100 window.
func clampMaxResults(n int) int {
	if n < 1 {
		return 20
	}
	if n > 100 {
		return 100
	}
	return n
}
