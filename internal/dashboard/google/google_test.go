package google

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/oauth2"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, tokenHandler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()

	mux := http.NewServeMux()
	if tokenHandler != nil {
		mux.HandleFunc("/token", tokenHandler)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := NewClient("client-id", "client-secret", "https://app.example.com/callback",
		WithHTTPClient(srv.Client()),
		WithEndpoint(oauth2.Endpoint{
			AuthURL:  srv.URL + "/auth",
			TokenURL: srv.URL + "/token",
		}),
	)
	return c, srv
}

func TestAuthCodeURL(t *testing.T) {
	c, _ := newTestClient(t, nil)

	u := c.AuthCodeURL("state-xyz")
	require.Contains(t, u, "state=state-xyz")
	require.Contains(t, u, "access_type=offline")
	require.Contains(t, u, "prompt=consent")
	require.Contains(t, u, "client_id=client-id")
}

func TestExchange(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			require.Equal(t, "auth-code-1", r.Form.Get("code"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"access_token": "at-1",
				"refresh_token": "rt-1",
				"token_type": "Bearer",
				"expires_in": 3600,
				"scope": "https://www.googleapis.com/auth/youtube"
			}`))
		})

		tokens, err := c.Exchange(context.Background(), "auth-code-1")
		require.NoError(t, err)
		require.Equal(t, "at-1", tokens.AccessToken)
		require.Equal(t, "rt-1", tokens.RefreshToken)
		require.False(t, tokens.Expiry.IsZero())
	})

	t.Run("invalid grant maps to sentinel", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"Code was already redeemed."}`))
		})

		_, err := c.Exchange(context.Background(), "burned-code")
		require.ErrorIs(t, err, ErrInvalidGrant)
	})

	t.Run("other oauth errors are not invalid grant", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"invalid_client"}`))
		})

		_, err := c.Exchange(context.Background(), "any-code")
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrInvalidGrant)
	})
}

func TestFetchProfile(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "Bearer at-1", r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"u-9","email":"e@example.com","name":"E","picture":"https://img/e.png"}`))
		}))
		defer srv.Close()

		c := NewClient("id", "secret", "https://cb", WithHTTPClient(srv.Client()))
		// Point the userinfo call at the fake by intercepting transport.
		c.httpClient.Transport = rewriteHost(srv)

		profile, err := c.FetchProfile(context.Background(), "at-1")
		require.NoError(t, err)
		require.Equal(t, "u-9", profile.ID)
		require.Equal(t, "e@example.com", profile.Email)
	})

	t.Run("non-200 maps to sentinel", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		c := NewClient("id", "secret", "https://cb", WithHTTPClient(srv.Client()))
		c.httpClient.Transport = rewriteHost(srv)

		_, err := c.FetchProfile(context.Background(), "bad-token")
		require.ErrorIs(t, err, ErrProfileFetch)
	})
}

// rewriteHost redirects every request to the test server regardless of the
// original URL.
func rewriteHost(srv *httptest.Server) http.RoundTripper {
	return roundTripFunc(func(req *http.Request) (*http.Response, error) {
		req = req.Clone(req.Context())
		req.URL.Scheme = "http"
		req.URL.Host = srv.Listener.Addr().String()
		return http.DefaultTransport.RoundTrip(req)
	})
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
