package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken reports a malformed, tampered or mis-signed token.
	ErrInvalidToken = errors.New("jwtx: invalid token")

	// ErrExpired reports a token outside its validity window.
	ErrExpired = errors.New("jwtx: token expired")
)

// Signer issues HS256-signed session tokens. A single shared secret is
// enough here: the service both mints and verifies its own sessions, no
// third party needs to validate them.
type Signer struct {
	secret []byte
	issuer string
}

func NewSigner(secret []byte, issuer string) (*Signer, error) {
	if len(secret) == 0 {
		return nil, errors.New("jwtx: empty signing secret")
	}
	return &Signer{secret: secret, issuer: issuer}, nil
}

// Issuer returns the issuer stamped into minted tokens.
func (s *Signer) Issuer() string { return s.issuer }

// Sign serialises and signs the claims.
func (s *Signer) Sign(claims SessionClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign session token: %w", err)
	}
	return signed, nil
}

// Verifier validates session tokens minted by the matching Signer.
type Verifier struct {
	secret []byte
	issuer string
}

func NewVerifier(secret []byte, issuer string) (*Verifier, error) {
	if len(secret) == 0 {
		return nil, errors.New("jwtx: empty verification secret")
	}
	return &Verifier{secret: secret, issuer: issuer}, nil
}

// Verify parses raw, checks the signature, expiry and issuer, and returns
// the embedded claims.
func (v *Verifier) Verify(raw string) (SessionClaims, error) {
	var claims SessionClaims

	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("jwtx: unexpected signing method %q", t.Method.Alg())
		}
		return v.secret, nil
	}, jwt.WithIssuer(v.issuer), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return SessionClaims{}, ErrExpired
		}
		return SessionClaims{}, ErrInvalidToken
	}

	if !token.Valid {
		return SessionClaims{}, ErrInvalidToken
	}

	return claims, nil
}
