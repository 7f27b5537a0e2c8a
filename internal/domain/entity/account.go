// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// CredentialMode selects how an account's secret is stored.
// A deployment picks one mode and sticks with it; mixing modes per
// account is not supported.
type CredentialMode string

const (
	// CredentialModeHashed stores a salted one-way digest of the password.
	// This is the preferred mode: the plaintext cannot be recovered.
	CredentialModeHashed CredentialMode = "hashed"

	// CredentialModeEncrypted stores the password encrypted under a
	// server-held key. Kept for backward compatibility with legacy
	// deployments; the server can recover the plaintext, which is a known
	// weakness of this mode.
	CredentialModeEncrypted CredentialMode = "encrypted"
)

// Valid reports whether the mode is one of the supported credential modes.
func (m CredentialMode) Valid() bool {
	return m == CredentialModeHashed || m == CredentialModeEncrypted
}

// Credential is a tagged union over the two storage representations.
// Exactly one representation is populated, selected by Mode: Digest+Salt
// for hashed credentials, Ciphertext for encrypted ones.
type Credential struct {
	Mode       CredentialMode
	Digest     string // one-way digest, hashed mode only
	Salt       string // random salt paired with Digest, hashed mode only
	Ciphertext string // authenticated ciphertext, encrypted mode only
}

// NewHashedCredential builds a credential in hashed mode.
func NewHashedCredential(digest, salt string) Credential {
	return Credential{Mode: CredentialModeHashed, Digest: digest, Salt: salt}
}

// NewEncryptedCredential builds a credential in encrypted (legacy) mode.
func NewEncryptedCredential(ciphertext string) Credential {
	return Credential{Mode: CredentialModeEncrypted, Ciphertext: ciphertext}
}

// Account represents a registered user of the inventory application.
// Email is the identity key, unique and case-sensitive as stored.
type Account struct {
	ID         uuid.UUID
	Email      string
	Credential Credential

	// ResetToken is non-nil only while a password-reset link is
	// outstanding. It is set by a reset request, superseded by a later
	// request and cleared when consumed. Unique across all accounts.
	ResetToken *string

	// ResetRequestedAt records when the outstanding token was issued.
	// Tokens currently have no expiry; the timestamp is stored so a TTL
	// can be introduced without a schema change.
	ResetRequestedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasActiveReset reports whether a reset link is currently outstanding.
func (a *Account) HasActiveReset() bool {
	return a.ResetToken != nil && *a.ResetToken != ""
}
