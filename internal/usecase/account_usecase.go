// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"almacen/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
// Mode is optional; when empty the configured default storage mode is used.
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Mode     string `json:"mode" validate:"omitempty,oneof=hashed encrypted"`
}

// CredentialsInput defines the data for login and verification requests.
type CredentialsInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RequestResetInput defines the data required to request a password-reset link.
type RequestResetInput struct {
	Email string `json:"email" validate:"required,email"`
}

// ConfirmResetInput defines the data required to consume a reset link.
type ConfirmResetInput struct {
	Email    string `json:"email" validate:"required,email"`
	Token    string `json:"link" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// --- Output DTOs ---

// RegisterOutput returns a summary of the created account.
// It never carries the secret in any representation.
type RegisterOutput struct {
	Email     string                `json:"email"`
	Mode      entity.CredentialMode `json:"mode"`
	CreatedAt time.Time             `json:"createdAt"`
}

// LoginOutput returns the signed bearer token after a successful login.
type LoginOutput struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

// RequestResetOutput returns the opaque reset token. The delivery layer,
// not the usecase, embeds it in a URL for out-of-band delivery.
type RequestResetOutput struct {
	Token string `json:"-"`
}

// AccountUsecase defines the interface for credential-lifecycle operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AccountUsecase interface {
	// Register creates an account with an initial credential in the
	// requested storage mode.
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)

	// Login verifies the credentials and issues a signed bearer token.
	Login(ctx context.Context, input *CredentialsInput) (*LoginOutput, error)

	// Verify checks the credentials without issuing a token.
	Verify(ctx context.Context, input *CredentialsInput) error

	// RequestPasswordReset issues a single-use reset token for the account,
	// superseding any earlier outstanding token.
	RequestPasswordReset(ctx context.Context, input *RequestResetInput) (*RequestResetOutput, error)

	// CheckResetLink reports whether some account currently holds the
	// token. Read-only; does not consume it.
	CheckResetLink(ctx context.Context, token string) (bool, error)

	// ConfirmPasswordReset consumes the reset token exactly once,
	// installing a freshly hashed credential and clearing the token in a
	// single atomic update.
	ConfirmPasswordReset(ctx context.Context, input *ConfirmResetInput) error
}
