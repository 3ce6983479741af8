package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is the default lifetime of an application session token.
const DefaultSessionTTL = 7 * 24 * time.Hour

// SessionClaims are the claims embedded in the application session token.
// The subject is the Google account id of the authenticated user; the
// remaining fields mirror the profile returned by the identity provider so
// handlers can render the user without a storage round-trip.
type SessionClaims struct {
	jwt.RegisteredClaims

	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
}

// NewSessionClaims builds minimally-correct session claims.
func NewSessionClaims(subject, email, name, picture, issuer string, ttl time.Duration, now time.Time) SessionClaims {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        newJTI(),
		},
		Email:   email,
		Name:    name,
		Picture: picture,
	}
}

// newJTI returns a URL-safe random identifier for the "jti" claim.
func newJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
