// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	"almacen/config"
	deliverycontext "almacen/internal/delivery/context"
	"almacen/internal/domain/entity"
	domainerrors "almacen/internal/domain/errors"
	"almacen/internal/domain/repository"
	"almacen/internal/domain/service"
	"almacen/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	accountRepo repository.AccountRepository
	hasher      service.PasswordHasher
	cipher      service.CredentialCipher
	tokens      service.TokenService
	resetTokens service.ResetTokenGenerator
	defaultMode entity.CredentialMode
	logger      *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	AccountRepo repository.AccountRepository
	Hasher      service.PasswordHasher
	Cipher      service.CredentialCipher
	Tokens      service.TokenService
	ResetTokens service.ResetTokenGenerator
	Config      *config.Config
	Logger      *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	defaultMode := entity.CredentialModeHashed
	if params.Config != nil && params.Config.Auth != nil {
		if mode := entity.CredentialMode(params.Config.Auth.DefaultCredentialMode); mode.Valid() {
			defaultMode = mode
		}
	}

	return &accountService{
		accountRepo: params.AccountRepo,
		hasher:      params.Hasher,
		cipher:      params.Cipher,
		tokens:      params.Tokens,
		resetTokens: params.ResetTokens,
		defaultMode: defaultMode,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates an account with an initial credential in the requested
// storage mode. The response never carries the secret.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	mode, err := srv.resolveMode(input.Mode)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email), slog.Any("mode", mode))

	credential, err := srv.buildCredential(mode, input.Password)
	if err != nil {
		srv.log(ctx).Warn("Failed to build credential during registration", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	account := &entity.Account{
		Email:      input.Email,
		Credential: credential,
	}

	if err := srv.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			srv.log(ctx).Warn("Registration conflict", slog.String("email", input.Email))

			return nil, errors.Wrap(domainerrors.ErrDuplicateEmail, "registration failed")
		}

		return nil, errors.Wrap(err, "failed to create account")
	}

	srv.log(ctx).Debug("Registration completed", slog.String("email", account.Email))

	return &usecase.RegisterOutput{
		Email:     account.Email,
		Mode:      account.Credential.Mode,
		CreatedAt: account.CreatedAt,
	}, nil
}

// Login verifies the credentials and issues a signed bearer token.
// Unknown email and wrong password surface as the same failure so account
// existence does not leak.
func (srv *accountService) Login(ctx context.Context, input *usecase.CredentialsInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("email", input.Email))

	if err := srv.Verify(ctx, input); err != nil {
		return nil, err
	}

	token, err := srv.tokens.Issue(input.Email, nil)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue token")
	}

	srv.log(ctx).Debug("Login succeeded", slog.String("email", input.Email))

	return &usecase.LoginOutput{
		Token: token,
		Email: input.Email,
	}, nil
}

// Verify checks the credentials without issuing a token.
func (srv *accountService) Verify(ctx context.Context, input *usecase.CredentialsInput) error {
	account, err := srv.accountRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			srv.log(ctx).Warn("Verification failed", slog.String("email", input.Email))

			return errors.Wrap(domainerrors.ErrUnauthorized, "verification failed")
		}

		return errors.Wrap(err, "failed to find account")
	}

	if !srv.credentialMatches(account.Credential, input.Password) {
		srv.log(ctx).Warn("Verification failed", slog.String("email", input.Email))

		return errors.Wrap(domainerrors.ErrUnauthorized, "verification failed")
	}

	return nil
}

// RequestPasswordReset issues a single-use reset token, superseding any
// earlier outstanding token for the account in one atomic update.
func (srv *accountService) RequestPasswordReset(ctx context.Context, input *usecase.RequestResetInput) (*usecase.RequestResetOutput, error) {
	srv.log(ctx).Info("Requesting password reset", slog.String("email", input.Email))

	token, err := srv.resetTokens.Generate()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate reset token")
	}

	if err := srv.accountRepo.SetResetToken(ctx, input.Email, token); err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			// Unknown accounts are reported distinctly here, unlike
			// login; see ErrUnknownAccount.
			srv.log(ctx).Warn("Reset requested for unknown account", slog.String("email", input.Email))

			return nil, errors.Wrap(domainerrors.ErrUnknownAccount, "reset request failed")
		}

		return nil, errors.Wrap(err, "failed to store reset token")
	}

	srv.log(ctx).Info("Reset link issued", slog.String("email", input.Email))

	return &usecase.RequestResetOutput{Token: token}, nil
}

// CheckResetLink reports whether some account currently holds the token.
func (srv *accountService) CheckResetLink(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	if _, err := srv.accountRepo.FindByResetToken(ctx, token); err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return false, nil
		}

		return false, errors.Wrap(err, "failed to look up reset token")
	}

	return true, nil
}

// ConfirmPasswordReset consumes the reset token exactly once. The new
// credential is always stored hashed, regardless of the account's previous
// mode, and the token is cleared in the same atomic update.
func (srv *accountService) ConfirmPasswordReset(ctx context.Context, input *usecase.ConfirmResetInput) error {
	srv.log(ctx).Info("Confirming password reset", slog.String("email", input.Email))

	digest, salt, err := srv.hasher.Hash(input.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmptyPlaintext) {
			return errors.Wrap(domainerrors.ErrInvalidInput.WithDetails("password must not be empty"), "reset failed")
		}

		return errors.Wrap(domainerrors.ErrCredentialProcessing, "failed to hash new password")
	}

	credential := entity.NewHashedCredential(digest, salt)

	if err := srv.accountRepo.ConsumeResetToken(ctx, input.Email, input.Token, credential); err != nil {
		if errors.Is(err, repository.ErrResetMismatch) {
			srv.log(ctx).Warn("Reset consumption rejected", slog.String("email", input.Email))

			return errors.Wrap(domainerrors.ErrResetUnauthorized, "reset failed")
		}

		return errors.Wrap(err, "failed to consume reset token")
	}

	srv.log(ctx).Info("Password reset completed", slog.String("email", input.Email))

	return nil
}

// resolveMode maps the request's mode field onto a credential mode,
// falling back to the configured default when empty.
func (srv *accountService) resolveMode(raw string) (entity.CredentialMode, error) {
	if raw == "" {
		return srv.defaultMode, nil
	}

	mode := entity.CredentialMode(raw)
	if !mode.Valid() {
		return "", errors.Wrap(domainerrors.ErrInvalidInput.WithDetails("mode must be 'hashed' or 'encrypted'"), "invalid credential mode")
	}

	return mode, nil
}

// buildCredential produces the stored representation for a plaintext
// secret in the given mode.
func (srv *accountService) buildCredential(mode entity.CredentialMode, plaintext string) (entity.Credential, error) {
	if plaintext == "" {
		return entity.Credential{}, errors.Wrap(domainerrors.ErrInvalidInput.WithDetails("password must not be empty"), "invalid credential")
	}

	switch mode {
	case entity.CredentialModeEncrypted:
		ciphertext, err := srv.cipher.Encrypt(plaintext)
		if err != nil {
			return entity.Credential{}, errors.Wrap(domainerrors.ErrCredentialProcessing, "failed to encrypt password")
		}

		return entity.NewEncryptedCredential(ciphertext), nil
	default:
		digest, salt, err := srv.hasher.Hash(plaintext)
		if err != nil {
			return entity.Credential{}, errors.Wrap(domainerrors.ErrCredentialProcessing, "failed to hash password")
		}

		return entity.NewHashedCredential(digest, salt), nil
	}
}

// credentialMatches dispatches verification on the credential's mode.
// A decryption failure in encrypted mode counts as a mismatch.
func (srv *accountService) credentialMatches(credential entity.Credential, plaintext string) bool {
	switch credential.Mode {
	case entity.CredentialModeHashed:
		return srv.hasher.Verify(plaintext, credential.Digest, credential.Salt)
	case entity.CredentialModeEncrypted:
		stored, err := srv.cipher.Decrypt(credential.Ciphertext)
		if err != nil {
			return false
		}

		return stored == plaintext
	default:
		return false
	}
}
