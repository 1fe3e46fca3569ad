package encrypter

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"
)

var (
	ErrInvalidKeyLength   = errors.New("encryption key must be 16, 24, or 32 bytes long")
	ErrCiphertextTooShort = errors.New("ciphertext is too short")
	ErrDecryptionFailed   = errors.New("decryption failed: invalid ciphertext or key")
)

// Encrypter seals short secrets (webhook signing keys) at rest with AES-GCM.
type Encrypter interface {
	// Encrypt returns base64(nonce || ciphertext).
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

type implEncrypter struct {
	gcm cipher.AEAD
}

// New validates key and prepares the AEAD once.
func New(key string) (Encrypter, error) {
	k := []byte(key)
	if n := len(k); n != 16 && n != 24 && n != 32 {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidKeyLength, n)
	}

	block, err := aes.NewCipher(k)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return &implEncrypter{gcm: gcm}, nil
}
