// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/pkg/errors"

	"almacen/internal/domain/service"
)

// resetTokenBytes is the entropy of a reset token. 16 random bytes encode
// to a 22-character URL-safe string; collisions are negligible.
const resetTokenBytes = 16

// resetTokenGenerator implements the ResetTokenGenerator interface with
// crypto/rand and unpadded URL-safe base64, so tokens can be embedded in a
// link path segment without escaping.
type resetTokenGenerator struct{}

// NewResetTokenGenerator is the constructor for resetTokenGenerator.
func NewResetTokenGenerator() service.ResetTokenGenerator {
	return &resetTokenGenerator{}
}

// Generate returns a new random URL-safe token.
func (g *resetTokenGenerator) Generate() (string, error) {
	raw := make([]byte, resetTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", errors.Wrap(err, "failed to generate reset token")
	}

	return base64.RawURLEncoding.EncodeToString(raw), nil
}
