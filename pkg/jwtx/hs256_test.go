package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testIssuer = "yt-dashboard"

var testSecret = []byte("test-secret-please-rotate")

func TestSignVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	signer, err := NewSigner(testSecret, testIssuer)
	require.NoError(t, err)
	verifier, err := NewVerifier(testSecret, testIssuer)
	require.NoError(t, err)

	now := time.Now().UTC()
	claims := NewSessionClaims("u1", "u@example.com", "U", "http://avatar", testIssuer, DefaultSessionTTL, now)

	raw, err := signer.Sign(claims)
	require.NoError(t, err)

	got, err := verifier.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, "u1", got.Subject)
	require.Equal(t, "u@example.com", got.Email)
	require.Equal(t, "U", got.Name)
	require.Equal(t, "http://avatar", got.Picture)
	require.WithinDuration(t, now.Add(DefaultSessionTTL), got.ExpiresAt.Time, time.Second)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	signer, err := NewSigner(testSecret, testIssuer)
	require.NoError(t, err)
	verifier, err := NewVerifier(testSecret, testIssuer)
	require.NoError(t, err)

	issued := time.Now().UTC().Add(-8 * 24 * time.Hour)
	claims := NewSessionClaims("u1", "u@example.com", "U", "", testIssuer, DefaultSessionTTL, issued)

	raw, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = verifier.Verify(raw)
	require.ErrorIs(t, err, ErrExpired)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	signer, err := NewSigner(testSecret, testIssuer)
	require.NoError(t, err)
	verifier, err := NewVerifier([]byte("other-secret"), testIssuer)
	require.NoError(t, err)

	claims := NewSessionClaims("u1", "u@example.com", "U", "", testIssuer, DefaultSessionTTL, time.Now().UTC())
	raw, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = verifier.Verify(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	t.Parallel()

	signer, err := NewSigner(testSecret, "someone-else")
	require.NoError(t, err)
	verifier, err := NewVerifier(testSecret, testIssuer)
	require.NoError(t, err)

	claims := NewSessionClaims("u1", "u@example.com", "U", "", "someone-else", DefaultSessionTTL, time.Now().UTC())
	raw, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = verifier.Verify(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	t.Parallel()

	verifier, err := NewVerifier(testSecret, testIssuer)
	require.NoError(t, err)

	_, err = verifier.Verify("not.a.token")
	require.ErrorIs(t, err, ErrInvalidToken)
}
