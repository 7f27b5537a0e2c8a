// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

import "errors"

// ErrEmptyPlaintext is returned when a hash is requested for an empty secret.
var ErrEmptyPlaintext = errors.New("plaintext must not be empty")

// PasswordHasher derives salted one-way digests and verifies candidates
// against a stored digest+salt pair. The raw secret is never stored;
// verification is equality of digests, not of plaintexts.
type PasswordHasher interface {
	// Hash derives a digest from plaintext under a freshly generated
	// random salt and returns both. Fails with ErrEmptyPlaintext when
	// plaintext is empty.
	Hash(plaintext string) (digest, salt string, err error)

	// HashWith re-derives the digest for plaintext under a previously
	// stored salt (the verification path). Deterministic: the same
	// (plaintext, salt) pair always yields the same digest.
	HashWith(plaintext, salt string) (digest string, err error)

	// Verify reports whether plaintext matches the stored digest+salt
	// pair. The digest comparison is constant-time.
	Verify(plaintext, digest, salt string) bool
}
