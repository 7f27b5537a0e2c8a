// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"almacen/internal/delivery/http/response"
	"almacen/internal/domain/entity"
	"almacen/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AccountHandler holds dependencies for account-related handlers.
type AccountHandler struct {
	uc     usecase.AccountUsecase
	logger *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		uc:     uc,
		logger: logger,
	}
}

// RegisterHashed handles registration with the digest+salt storage mode.
func (h *AccountHandler) RegisterHashed(c echo.Context) error {
	return h.register(c, entity.CredentialModeHashed)
}

// RegisterEncrypted handles registration with the recoverable ciphertext
// storage mode.
func (h *AccountHandler) RegisterEncrypted(c echo.Context) error {
	return h.register(c, entity.CredentialModeEncrypted)
}

func (h *AccountHandler) register(c echo.Context, mode entity.CredentialMode) error {
	var input *usecase.RegisterInput
	if err := c.Bind(&input); err != nil || input == nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	input.Mode = string(mode)
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Register(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Account registered successfully")
}

// Login handles the login request and returns a signed bearer token.
func (h *AccountHandler) Login(c echo.Context) error {
	var input *usecase.CredentialsInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Login(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Login successful")
}

// Verify checks credentials without issuing a token.
func (h *AccountHandler) Verify(c echo.Context) error {
	var input *usecase.CredentialsInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid verification input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.Verify(c.Request().Context(), input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"email": input.Email}, "Credentials verified")
}

// RequestResetLink issues a single-use password-reset link for the account.
func (h *AccountHandler) RequestResetLink(c echo.Context) error {
	var input *usecase.RequestResetInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid reset request input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.RequestPasswordReset(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	// The token travels only inside the composed link, never in logs.
	link := "/changepassword/" + output.Token

	return response.Success(c, http.StatusOK, map[string]string{"link": link}, "Reset link created")
}

// CheckResetLink reports whether the link is currently valid. Read-only;
// the token stays outstanding afterwards.
func (h *AccountHandler) CheckResetLink(c echo.Context) error {
	token := c.Param("token")
	if token == "" {
		return response.BindingError(c, "INVALID_INPUT", "Reset token is required")
	}

	valid, err := h.uc.CheckResetLink(c.Request().Context(), token)
	if err != nil {
		return errors.WithStack(err)
	}

	if !valid {
		return response.Error(c, http.StatusBadRequest, "INVALID_RESET_LINK", "Reset link is not valid", "")
	}

	return response.Success(c, http.StatusOK, map[string]bool{"valid": true}, "Reset link is valid")
}

// ConfirmPasswordReset consumes the reset link and installs the new password.
func (h *AccountHandler) ConfirmPasswordReset(c echo.Context) error {
	var input *usecase.ConfirmResetInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid password change input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.ConfirmPasswordReset(c.Request().Context(), input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"email": input.Email}, "Password changed successfully")
}

// GetProfile returns the identity carried by the bearer token. It exists
// to exercise the authentication middleware.
func (h *AccountHandler) GetProfile(c echo.Context) error {
	emailVal := c.Get("email")
	email, ok := emailVal.(string)
	if !ok || email == "" {
		return response.Unauthorized(c, "UNAUTHORIZED", "Invalid identity in token")
	}

	return response.Success(c, http.StatusOK, map[string]string{"email": email}, "Profile retrieved successfully")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
