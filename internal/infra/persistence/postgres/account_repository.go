package postgres

import (
	"context"
	"time"

	"almacen/internal/domain/entity"
	domainerrors "almacen/internal/domain/errors"
	"almacen/internal/domain/repository"
	"almacen/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// accountRepository implements the domain.AccountRepository interface using GORM.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository is the constructor for accountRepository.
// It returns the repository as a repository.AccountRepository interface, adhering to dependency inversion.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// Create persists a new account. The unique constraint on email decides
// registration races: the second concurrent insert fails here rather than
// overwriting the first.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	accountM := fromAccountDomain(account)

	if err := repo.db.WithContext(ctx).Create(accountM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateEmail
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create account")
	}

	// Update the entity with generated values.
	account.ID = accountM.ID
	account.CreatedAt = accountM.CreatedAt
	account.UpdatedAt = accountM.UpdatedAt

	return nil
}

// FindByEmail retrieves a single account by its email address.
func (repo *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	var accountM model.AccountModel

	err := repo.db.WithContext(ctx).
		Where("email = ?", email).
		First(&accountM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by email")
	}

	return toAccountDomain(&accountM), nil
}

// FindByResetToken retrieves the account currently holding the token.
func (repo *accountRepository) FindByResetToken(ctx context.Context, token string) (*entity.Account, error) {
	var accountM model.AccountModel

	err := repo.db.WithContext(ctx).
		Where("reset_token = ?", token).
		First(&accountM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by reset token")
	}

	return toAccountDomain(&accountM), nil
}

// SetResetToken installs the token with a single UPDATE keyed by email.
// Last writer wins: an earlier outstanding token is overwritten, which
// silently invalidates it.
func (repo *accountRepository) SetResetToken(ctx context.Context, email, token string) error {
	now := time.Now()

	result := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("email = ?", email).
		Updates(map[string]any{
			"reset_token":        token,
			"reset_requested_at": now,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to set reset token")
	}

	if result.RowsAffected == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

// ConsumeResetToken performs the check-and-clear as one conditional
// UPDATE: the row must still match both email and token for any change to
// apply, giving compare-and-swap semantics without a read-modify-write.
// Credential replacement and token clearing land in the same statement,
// so no partial state is possible.
func (repo *accountRepository) ConsumeResetToken(ctx context.Context, email, token string, credential entity.Credential) error {
	accountM := fromAccountDomain(&entity.Account{Credential: credential})

	result := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("email = ? AND reset_token = ?", email, token).
		Updates(map[string]any{
			"credential_mode":     accountM.CredentialMode,
			"password_digest":     accountM.PasswordDigest,
			"password_salt":       accountM.PasswordSalt,
			"password_ciphertext": accountM.PasswordCiphertext,
			"reset_token":         nil,
			"reset_requested_at":  nil,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to consume reset token")
	}

	if result.RowsAffected == 0 {
		return repository.ErrResetMismatch
	}

	return nil
}

// --- Mapper Functions ---

// toAccountDomain converts a GORM AccountModel to a domain Account entity.
func toAccountDomain(data *model.AccountModel) *entity.Account {
	if data == nil {
		return nil
	}

	credential := entity.Credential{Mode: entity.CredentialMode(data.CredentialMode)}
	if data.PasswordDigest != nil {
		credential.Digest = *data.PasswordDigest
	}
	if data.PasswordSalt != nil {
		credential.Salt = *data.PasswordSalt
	}
	if data.PasswordCiphertext != nil {
		credential.Ciphertext = *data.PasswordCiphertext
	}

	return &entity.Account{
		ID:               data.ID,
		Email:            data.Email,
		Credential:       credential,
		ResetToken:       data.ResetToken,
		ResetRequestedAt: data.ResetRequestedAt,
		CreatedAt:        data.CreatedAt,
		UpdatedAt:        data.UpdatedAt,
	}
}

// fromAccountDomain converts a domain Account entity to a GORM AccountModel.
// Columns of the representation not in use stay NULL, preserving the
// invariant that salt is present iff the hashed mode is used.
func fromAccountDomain(data *entity.Account) *model.AccountModel {
	if data == nil {
		return nil
	}

	accountM := &model.AccountModel{
		ID:               data.ID,
		Email:            data.Email,
		CredentialMode:   string(data.Credential.Mode),
		ResetToken:       data.ResetToken,
		ResetRequestedAt: data.ResetRequestedAt,
	}

	switch data.Credential.Mode {
	case entity.CredentialModeHashed:
		digest, salt := data.Credential.Digest, data.Credential.Salt
		accountM.PasswordDigest = &digest
		accountM.PasswordSalt = &salt
	case entity.CredentialModeEncrypted:
		ciphertext := data.Credential.Ciphertext
		accountM.PasswordCiphertext = &ciphertext
	}

	return accountM
}
