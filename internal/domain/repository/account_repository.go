// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"almacen/internal/domain/entity"
)

// Domain-specific errors for account persistence.
// This allows the application layer to handle specific outcomes without depending on database-specific errors.
var (
	// ErrAccountNotFound is returned when no account matches the lookup key.
	ErrAccountNotFound = errors.New("account not found")

	// ErrDuplicateEmail is returned when creation would violate email uniqueness.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrResetMismatch is returned by ConsumeResetToken when no row matches
	// the (email, token) pair, either because the token was never issued,
	// was superseded, or was already consumed.
	ErrResetMismatch = errors.New("reset token does not match account")
)

// AccountRepository is the credential store boundary. Implementations must
// enforce email uniqueness at the storage layer and provide the
// compare-and-swap semantics documented on SetResetToken and
// ConsumeResetToken, so that concurrent resets cannot both succeed.
type AccountRepository interface {
	// Create persists a new account. Returns ErrDuplicateEmail when the
	// email is already taken; under concurrent registration exactly one
	// caller wins.
	Create(ctx context.Context, account *entity.Account) error

	// FindByEmail retrieves a single account by its email address.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// FindByResetToken retrieves the account that currently holds the
	// given reset token, if any. Read-only; does not consume the token.
	FindByResetToken(ctx context.Context, token string) (*entity.Account, error)

	// SetResetToken installs token as the account's outstanding reset
	// token in a single atomic update, replacing any earlier token (last
	// writer wins). Returns ErrAccountNotFound when the email is unknown.
	SetResetToken(ctx context.Context, email, token string) error

	// ConsumeResetToken atomically replaces the account's credential and
	// clears its reset token, guarded by the (email, token) pair: the
	// update applies only to the row whose reset_token still equals token.
	// Returns ErrResetMismatch when no row matched, which also covers a
	// second consumption of the same token.
	ConsumeResetToken(ctx context.Context, email, token string, credential entity.Credential) error
}
