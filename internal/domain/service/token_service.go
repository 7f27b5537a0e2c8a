package service

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims defines the identity claims carried by a signed bearer token.
type Claims struct {
	Email string
	jwt.RegisteredClaims
}

// TokenService mints and validates signed bearer tokens. Issuance is
// side-effect-free: nothing is persisted, the token itself carries the
// identity claims and expiration.
type TokenService interface {
	// Issue signs a token for the given account email, with any extra
	// opaque claims merged into the payload.
	Issue(email string, extra map[string]any) (string, error)

	// Validate parses and verifies a token string, rejecting invalid
	// signatures, expired tokens and malformed input.
	Validate(tokenString string) (*Claims, error)
}
