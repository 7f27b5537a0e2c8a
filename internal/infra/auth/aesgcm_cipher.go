// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"

	"github.com/pkg/errors"

	"almacen/config"
	"almacen/internal/domain/service"
)

// aesgcmCipher implements the CredentialCipher interface with AES-256-GCM.
// The configured cipher key string is stretched to a 32-byte key via
// SHA-256; a fresh 12-byte nonce is generated per encryption and prepended
// to the ciphertext, so the stored value is self-contained.
type aesgcmCipher struct {
	aead cipher.AEAD
}

// NewAESGCMCipher is the constructor for aesgcmCipher. It fails when no
// cipher key is configured, which aborts application startup.
func NewAESGCMCipher(cfg *config.Config) (service.CredentialCipher, error) {
	if cfg.SecretKey.Cipher == "" {
		return nil, errors.New("cipher key must be provided")
	}

	key := sha256.Sum256([]byte(cfg.SecretKey.Cipher))

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, errors.Wrap(err, "failed to create AES cipher")
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create GCM")
	}

	return &aesgcmCipher{aead: aead}, nil
}

// Encrypt seals plaintext under a fresh random nonce.
func (c *aesgcmCipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", errors.Wrap(err, "failed to generate nonce")
	}

	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)

	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens a ciphertext produced by Encrypt. Any tampering, or input
// produced under a different key, fails with ErrInvalidCiphertext.
func (c *aesgcmCipher) Decrypt(ciphertext string) (string, error) {
	sealed, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", service.ErrInvalidCiphertext
	}

	nonceSize := c.aead.NonceSize()
	if len(sealed) < nonceSize {
		return "", service.ErrInvalidCiphertext
	}

	plaintext, err := c.aead.Open(nil, sealed[:nonceSize], sealed[nonceSize:], nil)
	if err != nil {
		return "", service.ErrInvalidCiphertext
	}

	return string(plaintext), nil
}
