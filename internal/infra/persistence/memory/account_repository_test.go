package memory

import (
	"context"
	"sync"
	"testing"

	"almacen/internal/domain/entity"
	"almacen/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAccount(t *testing.T, repo repository.AccountRepository, email string) *entity.Account {
	t.Helper()

	account := &entity.Account{
		Email:      email,
		Credential: entity.NewHashedCredential("digest", "salt"),
	}
	require.NoError(t, repo.Create(context.Background(), account))

	return account
}

func TestAccountRepository_CreateAndFind(t *testing.T) {
	repo := NewAccountRepository()
	ctx := context.Background()

	created := seedAccount(t, repo, "user@example.com")
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	found, err := repo.FindByEmail(ctx, "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, entity.CredentialModeHashed, found.Credential.Mode)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)
}

func TestAccountRepository_DuplicateEmail(t *testing.T) {
	repo := NewAccountRepository()
	ctx := context.Background()

	seedAccount(t, repo, "user@example.com")

	err := repo.Create(ctx, &entity.Account{
		Email:      "user@example.com",
		Credential: entity.NewHashedCredential("other", "salt"),
	})
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestAccountRepository_SetAndFindResetToken(t *testing.T) {
	repo := NewAccountRepository()
	ctx := context.Background()

	seedAccount(t, repo, "user@example.com")

	require.NoError(t, repo.SetResetToken(ctx, "user@example.com", "token-1"))

	found, err := repo.FindByResetToken(ctx, "token-1")
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", found.Email)
	require.NotNil(t, found.ResetRequestedAt)

	// Overwriting invalidates the previous token.
	require.NoError(t, repo.SetResetToken(ctx, "user@example.com", "token-2"))
	_, err = repo.FindByResetToken(ctx, "token-1")
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)

	assert.ErrorIs(t,
		repo.SetResetToken(ctx, "nobody@example.com", "token-3"),
		repository.ErrAccountNotFound,
	)
}

func TestAccountRepository_ConsumeResetToken(t *testing.T) {
	repo := NewAccountRepository()
	ctx := context.Background()

	seedAccount(t, repo, "user@example.com")
	require.NoError(t, repo.SetResetToken(ctx, "user@example.com", "token-1"))

	fresh := entity.NewHashedCredential("new-digest", "new-salt")

	// Wrong token or wrong email changes nothing.
	assert.ErrorIs(t,
		repo.ConsumeResetToken(ctx, "user@example.com", "wrong", fresh),
		repository.ErrResetMismatch,
	)
	assert.ErrorIs(t,
		repo.ConsumeResetToken(ctx, "other@example.com", "token-1", fresh),
		repository.ErrResetMismatch,
	)

	require.NoError(t, repo.ConsumeResetToken(ctx, "user@example.com", "token-1", fresh))

	account, err := repo.FindByEmail(ctx, "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, "new-digest", account.Credential.Digest)
	assert.Nil(t, account.ResetToken)
	assert.Nil(t, account.ResetRequestedAt)

	// Replay after consumption fails.
	assert.ErrorIs(t,
		repo.ConsumeResetToken(ctx, "user@example.com", "token-1", fresh),
		repository.ErrResetMismatch,
	)
}

func TestAccountRepository_ConcurrentConsumeIsExactlyOnce(t *testing.T) {
	repo := NewAccountRepository()
	ctx := context.Background()

	seedAccount(t, repo, "user@example.com")
	require.NoError(t, repo.SetResetToken(ctx, "user@example.com", "token-1"))

	const attempts = 16

	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- repo.ConsumeResetToken(ctx, "user@example.com", "token-1",
				entity.NewHashedCredential("new-digest", "new-salt"))
		}()
	}
	wg.Wait()
	close(results)

	var succeeded int
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, repository.ErrResetMismatch)
		}
	}
	assert.Equal(t, 1, succeeded)
}

func TestAccountRepository_FindReturnsCopies(t *testing.T) {
	repo := NewAccountRepository()
	ctx := context.Background()

	seedAccount(t, repo, "user@example.com")

	found, err := repo.FindByEmail(ctx, "user@example.com")
	require.NoError(t, err)

	found.Credential.Digest = "mutated"

	again, err := repo.FindByEmail(ctx, "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, "digest", again.Credential.Digest)
}
