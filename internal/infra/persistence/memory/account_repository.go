// Package memory provides a mutex-guarded in-memory AccountRepository.
// It honors the same atomicity contracts as the postgres implementation
// and backs the usecase tests without a database.
package memory

import (
	"context"
	"sync"
	"time"

	"almacen/internal/domain/entity"
	"almacen/internal/domain/repository"

	"github.com/google/uuid"
)

type accountRepository struct {
	mu       sync.Mutex
	accounts map[string]*entity.Account // keyed by email
}

// NewAccountRepository is the constructor for the in-memory repository.
func NewAccountRepository() repository.AccountRepository {
	return &accountRepository{accounts: make(map[string]*entity.Account)}
}

func (repo *accountRepository) Create(_ context.Context, account *entity.Account) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, exists := repo.accounts[account.Email]; exists {
		return repository.ErrDuplicateEmail
	}

	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	now := time.Now()
	account.CreatedAt = now
	account.UpdatedAt = now

	stored := *account
	repo.accounts[account.Email] = &stored

	return nil
}

func (repo *accountRepository) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	stored, exists := repo.accounts[email]
	if !exists {
		return nil, repository.ErrAccountNotFound
	}

	found := *stored

	return &found, nil
}

func (repo *accountRepository) FindByResetToken(_ context.Context, token string) (*entity.Account, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, stored := range repo.accounts {
		if stored.ResetToken != nil && *stored.ResetToken == token {
			found := *stored

			return &found, nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

func (repo *accountRepository) SetResetToken(_ context.Context, email, token string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	stored, exists := repo.accounts[email]
	if !exists {
		return repository.ErrAccountNotFound
	}

	now := time.Now()
	stored.ResetToken = &token
	stored.ResetRequestedAt = &now
	stored.UpdatedAt = now

	return nil
}

func (repo *accountRepository) ConsumeResetToken(_ context.Context, email, token string, credential entity.Credential) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	stored, exists := repo.accounts[email]
	if !exists || stored.ResetToken == nil || *stored.ResetToken != token {
		return repository.ErrResetMismatch
	}

	stored.Credential = credential
	stored.ResetToken = nil
	stored.ResetRequestedAt = nil
	stored.UpdatedAt = time.Now()

	return nil
}
