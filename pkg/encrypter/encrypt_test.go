package encrypter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "0123456789abcdef0123456789abcdef"

func TestNewRejectsBadKey(t *testing.T) {
	_, err := New("short")
	assert.ErrorIs(t, err, ErrInvalidKeyLength)
}

func TestEncryptDecrypt(t *testing.T) {
	e, err := New(testKey)
	require.NoError(t, err)

	a, err := e.Encrypt("whsec_123")
	require.NoError(t, err)
	b, err := e.Encrypt("whsec_123")
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "nonce must differ per call")

	plain, err := e.Decrypt(a)
	require.NoError(t, err)
	assert.Equal(t, "whsec_123", plain)
}

func TestDecryptWithOtherKeyFails(t *testing.T) {
	e1, _ := New(testKey)
	e2, _ := New("fedcba9876543210fedcba9876543210")

	sealed, err := e1.Encrypt("secret")
	require.NoError(t, err)

	_, err = e2.Decrypt(sealed)
	assert.ErrorIs(t, err, ErrDecryptionFailed)

	_, err = e1.Decrypt("AAAA")
	assert.ErrorIs(t, err, ErrCiphertextTooShort)
}
