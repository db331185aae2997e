package crypto_test

import (
	"strings"
	"testing"

	"github.com/goldloom/jewelshop_backend/pkg/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecretBoxRoundTrip(t *testing.T) {
	box, err := crypto.NewSecretBox("test-passphrase")
	require.NoError(t, err)

	stored, err := box.Encrypt("tally-api-key-123")
	require.NoError(t, err)

	parts := strings.SplitN(stored, ":", 2)
	require.Len(t, parts, 2, "stored form must be ivHex:cipherHex")
	assert.Len(t, parts[0], 32, "IV must be 16 bytes hex encoded")
	assert.NotContains(t, stored, "tally-api-key-123")

	plain, err := box.Decrypt(stored)
	require.NoError(t, err)
	assert.Equal(t, "tally-api-key-123", plain)
}

func TestSecretBoxFreshIVPerEncryption(t *testing.T) {
	box, err := crypto.NewSecretBox("test-passphrase")
	require.NoError(t, err)

	first, err := box.Encrypt("same-secret")
	require.NoError(t, err)
	second, err := box.Encrypt("same-secret")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestSecretBoxEmptyStoredValue(t *testing.T) {
	box, err := crypto.NewSecretBox("test-passphrase")
	require.NoError(t, err)

	plain, err := box.Decrypt("")
	require.NoError(t, err)
	assert.Empty(t, plain)
}

func TestSecretBoxMalformedCiphertext(t *testing.T) {
	box, err := crypto.NewSecretBox("test-passphrase")
	require.NoError(t, err)

	for _, stored := range []string{"no-separator", "zz:aabb", "aabb:zz", "aa:bb"} {
		_, err := box.Decrypt(stored)
		assert.ErrorIs(t, err, crypto.ErrMalformedCiphertext, "input %q", stored)
	}
}

func TestNewSecretBoxRejectsEmptyPassphrase(t *testing.T) {
	_, err := crypto.NewSecretBox("")
	assert.Error(t, err)
}
