package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"almacen/config"
	"almacen/internal/delivery/http/middleware"
	"almacen/internal/delivery/http/validator"
	"almacen/internal/infra/auth"
	"almacen/internal/infra/persistence/memory"
	"almacen/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEnv(t *testing.T) (*echo.Echo, *AccountHandler) {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.JWT = "handler-test-signing-key"
	cfg.SecretKey.Cipher = "handler-test-cipher-key"
	cfg.Auth = &config.AuthConfig{DefaultCredentialMode: "hashed"}

	cipher, err := auth.NewAESGCMCipher(cfg)
	require.NoError(t, err)
	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	uc := impl.NewAccountService(impl.AccountServiceParams{
		AccountRepo: memory.NewAccountRepository(),
		Hasher:      auth.NewArgon2Hasher(),
		Cipher:      cipher,
		Tokens:      tokens,
		ResetTokens: auth.NewResetTokenGenerator(),
		Config:      cfg,
		Logger:      logger,
	})

	e := echo.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(logger).HandleHTTPError

	return e, NewAccountHandler(uc, logger)
}

func postJSON(e *echo.Echo, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func TestAccountHandler_RegisterAndLogin(t *testing.T) {
	e, h := newTestEnv(t)
	e.POST("/api/accounts/hash/register", h.RegisterHashed)
	e.POST("/api/accounts/login", h.Login)

	rec := postJSON(e, "/api/accounts/hash/register",
		`{"email":"user@example.com","password":"pass123"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"mode":"hashed"`)
	// The secret never appears in any representation of the response.
	assert.NotContains(t, rec.Body.String(), "pass123")

	rec = postJSON(e, "/api/accounts/login",
		`{"email":"user@example.com","password":"pass123"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Success bool `json:"success"`
		Data    struct {
			Token string `json:"token"`
			Email string `json:"email"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.NotEmpty(t, envelope.Data.Token)
	assert.Equal(t, "user@example.com", envelope.Data.Email)
}

func TestAccountHandler_LoginFailureShape(t *testing.T) {
	e, h := newTestEnv(t)
	e.POST("/api/accounts/hash/register", h.RegisterHashed)
	e.POST("/api/accounts/login", h.Login)

	rec := postJSON(e, "/api/accounts/hash/register",
		`{"email":"user@example.com","password":"pass123"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	wrongPassword := postJSON(e, "/api/accounts/login",
		`{"email":"user@example.com","password":"wrong"}`)
	unknownEmail := postJSON(e, "/api/accounts/login",
		`{"email":"nobody@example.com","password":"pass123"}`)

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	// Identical bodies: the response must not reveal which part failed.
	assert.JSONEq(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestAccountHandler_DuplicateRegistrationConflict(t *testing.T) {
	e, h := newTestEnv(t)
	e.POST("/api/accounts/hash/register", h.RegisterHashed)

	first := postJSON(e, "/api/accounts/hash/register",
		`{"email":"user@example.com","password":"pass123"}`)
	require.Equal(t, http.StatusCreated, first.Code)

	second := postJSON(e, "/api/accounts/hash/register",
		`{"email":"user@example.com","password":"other"}`)
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Contains(t, second.Body.String(), "DUPLICATE_EMAIL")
}

func TestAccountHandler_ValidationFailures(t *testing.T) {
	e, h := newTestEnv(t)
	e.POST("/api/accounts/hash/register", h.RegisterHashed)

	for name, body := range map[string]string{
		"missing email": `{"password":"pass123"}`,
		"bad email":     `{"email":"not-an-email","password":"pass123"}`,
		"missing pass":  `{"email":"user@example.com"}`,
	} {
		t.Run(name, func(t *testing.T) {
			rec := postJSON(e, "/api/accounts/hash/register", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestAccountHandler_ResetLinkFlow(t *testing.T) {
	e, h := newTestEnv(t)
	e.POST("/api/accounts/hash/register", h.RegisterHashed)
	e.POST("/api/accounts/resetlink", h.RequestResetLink)
	e.GET("/changepassword/:token", h.CheckResetLink)
	e.POST("/api/accounts/changepassword", h.ConfirmPasswordReset)
	e.POST("/api/accounts/login", h.Login)

	rec := postJSON(e, "/api/accounts/hash/register",
		`{"email":"user@example.com","password":"old-pass"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(e, "/api/accounts/resetlink", `{"email":"user@example.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data struct {
			Link string `json:"link"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.True(t, strings.HasPrefix(envelope.Data.Link, "/changepassword/"))
	token := strings.TrimPrefix(envelope.Data.Link, "/changepassword/")
	require.NotEmpty(t, token)

	probe := httptest.NewRequest(http.MethodGet, envelope.Data.Link, nil)
	probeRec := httptest.NewRecorder()
	e.ServeHTTP(probeRec, probe)
	assert.Equal(t, http.StatusOK, probeRec.Code)

	rec = postJSON(e, "/api/accounts/changepassword",
		`{"email":"user@example.com","link":"`+token+`","password":"new-pass"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Consumed link is now invalid.
	probe = httptest.NewRequest(http.MethodGet, envelope.Data.Link, nil)
	probeRec = httptest.NewRecorder()
	e.ServeHTTP(probeRec, probe)
	assert.Equal(t, http.StatusBadRequest, probeRec.Code)

	// Replay is rejected.
	rec = postJSON(e, "/api/accounts/changepassword",
		`{"email":"user@example.com","link":"`+token+`","password":"again"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = postJSON(e, "/api/accounts/login",
		`{"email":"user@example.com","password":"new-pass"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAccountHandler_ResetLinkForUnknownAccount(t *testing.T) {
	e, h := newTestEnv(t)
	e.POST("/api/accounts/resetlink", h.RequestResetLink)

	rec := postJSON(e, "/api/accounts/resetlink", `{"email":"nobody@example.com"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "UNKNOWN_ACCOUNT")
}

func TestAccountHandler_ProfileRequiresBearerToken(t *testing.T) {
	e, h := newTestEnv(t)

	cfg := &config.Config{}
	cfg.SecretKey.JWT = "handler-test-signing-key"
	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	authMW := middleware.NewAuthMiddleware(tokens)
	e.GET("/api/profile", h.GetProfile, authMW.Authenticate)

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, err := tokens.Issue("user@example.com", nil)
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "user@example.com")
}

func TestAccountHandler_VerifyDoesNotIssueToken(t *testing.T) {
	e, h := newTestEnv(t)
	e.POST("/api/accounts/hash/register", h.RegisterHashed)
	e.POST("/api/accounts/hash/verify", h.Verify)

	rec := postJSON(e, "/api/accounts/hash/register",
		`{"email":"user@example.com","password":"pass123"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(e, "/api/accounts/hash/verify",
		`{"email":"user@example.com","password":"pass123"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "token")
}
