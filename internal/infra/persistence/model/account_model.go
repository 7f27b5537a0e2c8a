// Package model contains the GORM persistence models.
package model

import (
	"time"

	"github.com/google/uuid"
)

// AccountModel mirrors the 'accounts' table. The credential union is
// flattened into nullable columns; CredentialMode tags which set is in
// use. ResetToken carries a unique index so an outstanding link maps to
// exactly one account.
type AccountModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Email          string    `gorm:"type:varchar(255);unique;not null"`
	CredentialMode string    `gorm:"type:varchar(20);not null"`

	// Hashed representation.
	PasswordDigest *string `gorm:"type:varchar(255)"`
	PasswordSalt   *string `gorm:"type:varchar(64)"`

	// Encrypted (legacy) representation.
	PasswordCiphertext *string `gorm:"type:varchar(500)"`

	ResetToken       *string `gorm:"type:varchar(64);uniqueIndex"`
	ResetRequestedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}
