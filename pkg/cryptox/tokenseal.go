package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/crypto/chacha20poly1305"
)

// ErrSealedTokenInvalid reports ciphertext that is truncated, corrupted or
// was sealed with a different key.
var ErrSealedTokenInvalid = errors.New("cryptox: sealed token invalid")

var (
	sealKeyOnce sync.Once
	sealKey     []byte
	sealKeyErr  error
	sealKeyPath string = "" // Can be set via SetSealKeyPath before first use
)

// SetSealKeyPath configures where to load the token sealing key from.
// This must be called before any Seal/Open operations.
// If not set, the key will be loaded from the TOKEN_SEAL_KEY environment variable.
func SetSealKeyPath(path string) {
	sealKeyPath = path
}

// loadSealKey loads and derives a 32-byte key from either:
// 1. File specified by sealKeyPath (if set)
// 2. TOKEN_SEAL_KEY environment variable
// 3. Generates an ephemeral key for development (sealed tokens won't survive restart)
func loadSealKey() ([]byte, error) {
	var keyMaterial []byte

	if sealKeyPath != "" {
		data, err := os.ReadFile(sealKeyPath)
		if err != nil {
			return nil, fmt.Errorf("cryptox: read seal key file: %w", err)
		}
		keyMaterial = data
	} else if envKey := os.Getenv("TOKEN_SEAL_KEY"); envKey != "" {
		keyMaterial = []byte(envKey)
	} else {
		// Development fallback - previously sealed records become unreadable
		// after restart, which the token store treats as "no tokens".
		keyMaterial = make([]byte, 32)
		if _, err := rand.Read(keyMaterial); err != nil {
			return nil, fmt.Errorf("cryptox: generate ephemeral seal key: %w", err)
		}
	}

	// Derive a proper 32-byte key using SHA-256
	hash := sha256.Sum256(keyMaterial)
	return hash[:], nil
}

func getSealKey() ([]byte, error) {
	sealKeyOnce.Do(func() {
		sealKey, sealKeyErr = loadSealKey()
	})
	return sealKey, sealKeyErr
}

// SealToken encrypts an OAuth token value for storage at rest using
// ChaCha20-Poly1305. Output is base64(nonce || ciphertext || tag).
func SealToken(plaintext string) (string, error) {
	key, err := getSealKey()
	if err != nil {
		return "", err
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return "", fmt.Errorf("cryptox: create aead: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("cryptox: generate nonce: %w", err)
	}

	sealed := aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// OpenToken decrypts a value produced by SealToken.
func OpenToken(sealed string) (string, error) {
	key, err := getSealKey()
	if err != nil {
		return "", err
	}

	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", ErrSealedTokenInvalid
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return "", fmt.Errorf("cryptox: create aead: %w", err)
	}

	if len(raw) < aead.NonceSize() {
		return "", ErrSealedTokenInvalid
	}

	nonce, ciphertext := raw[:aead.NonceSize()], raw[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", ErrSealedTokenInvalid
	}

	return string(plaintext), nil
}
