// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"

	"github.com/pkg/errors"
	"golang.org/x/crypto/argon2"

	"almacen/internal/domain/service"
)

// Argon2id parameters. Changing these invalidates stored digests, so they
// are fixed rather than configurable.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	saltLen      = 16
)

// argon2Hasher is a concrete implementation of the PasswordHasher interface
// using Argon2id with an explicit salt, stored alongside the digest.
type argon2Hasher struct{}

// NewArgon2Hasher is the constructor for argon2Hasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewArgon2Hasher() service.PasswordHasher {
	return &argon2Hasher{}
}

// Hash derives a digest from plaintext under a new random 16-byte salt.
func (h *argon2Hasher) Hash(plaintext string) (string, string, error) {
	if plaintext == "" {
		return "", "", service.ErrEmptyPlaintext
	}

	rawSalt := make([]byte, saltLen)
	if _, err := rand.Read(rawSalt); err != nil {
		return "", "", errors.Wrap(err, "failed to generate salt")
	}

	salt := base64.StdEncoding.EncodeToString(rawSalt)
	digest := deriveDigest(plaintext, rawSalt)

	return digest, salt, nil
}

// HashWith re-derives the digest under a stored salt (verification path).
func (h *argon2Hasher) HashWith(plaintext, salt string) (string, error) {
	if plaintext == "" {
		return "", service.ErrEmptyPlaintext
	}

	rawSalt, err := base64.StdEncoding.DecodeString(salt)
	if err != nil {
		return "", errors.Wrap(err, "stored salt is not valid base64")
	}

	return deriveDigest(plaintext, rawSalt), nil
}

// Verify compares the recomputed digest with the stored one in constant time.
func (h *argon2Hasher) Verify(plaintext, digest, salt string) bool {
	candidate, err := h.HashWith(plaintext, salt)
	if err != nil {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(candidate), []byte(digest)) == 1
}

func deriveDigest(plaintext string, rawSalt []byte) string {
	key := argon2.IDKey([]byte(plaintext), rawSalt, argonTime, argonMemory, argonThreads, argonKeyLen)

	return base64.StdEncoding.EncodeToString(key)
}
