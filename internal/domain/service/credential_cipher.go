package service

import "errors"

// ErrInvalidCiphertext is returned by Decrypt when the input was not
// produced by this key and scheme, or was tampered with in storage.
var ErrInvalidCiphertext = errors.New("ciphertext is invalid or was tampered with")

// CredentialCipher reversibly encrypts secrets under a server-held
// symmetric key configured at process start. It backs the legacy
// "recoverable password" storage mode: because the server can decrypt,
// this mode is weaker than hashing and exists only for backward
// compatibility with deployments created before the hashed mode.
type CredentialCipher interface {
	// Encrypt returns an authenticated ciphertext for plaintext.
	// Encrypting the same plaintext twice yields different ciphertexts.
	Encrypt(plaintext string) (string, error)

	// Decrypt recovers the plaintext. Fails with ErrInvalidCiphertext on
	// tampered or foreign input rather than returning garbage.
	Decrypt(ciphertext string) (string, error)
}
