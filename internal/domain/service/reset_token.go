package service

// ResetTokenGenerator produces single-use password-reset tokens.
// Tokens must be cryptographically random, carry at least 122 bits of
// entropy, and be safe to embed in a URL path segment without escaping.
type ResetTokenGenerator interface {
	Generate() (string, error)
}
