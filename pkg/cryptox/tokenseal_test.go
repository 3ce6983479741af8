package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSealOpenRoundTrip(t *testing.T) {
	sealed, err := SealToken("ya29.access-token-value")
	require.NoError(t, err)
	require.NotEqual(t, "ya29.access-token-value", sealed)

	plain, err := OpenToken(sealed)
	require.NoError(t, err)
	require.Equal(t, "ya29.access-token-value", plain)
}

func TestSealProducesUniqueCiphertexts(t *testing.T) {
	a, err := SealToken("same-value")
	require.NoError(t, err)
	b, err := SealToken("same-value")
	require.NoError(t, err)

	// Random nonce per call
	require.NotEqual(t, a, b)
}

func TestOpenRejectsTamperedCiphertext(t *testing.T) {
	sealed, err := SealToken("refresh-token")
	require.NoError(t, err)

	tampered := []byte(sealed)
	tampered[len(tampered)/2] ^= 'x'

	_, err = OpenToken(string(tampered))
	require.ErrorIs(t, err, ErrSealedTokenInvalid)
}

func TestOpenRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "!!!", "dG9vc2hvcnQ="} {
		_, err := OpenToken(input)
		require.ErrorIs(t, err, ErrSealedTokenInvalid)
	}
}
