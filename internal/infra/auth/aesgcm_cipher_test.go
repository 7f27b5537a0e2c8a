package auth

import (
	"testing"

	"almacen/config"
	"almacen/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCipher(t *testing.T, key string) service.CredentialCipher {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Cipher = key

	cipher, err := NewAESGCMCipher(cfg)
	require.NoError(t, err)

	return cipher
}

func TestAESGCMCipher_RoundTrip(t *testing.T) {
	cipher := newTestCipher(t, "unit-test-cipher-key")

	ciphertext, err := cipher.Encrypt("my plaintext password")
	require.NoError(t, err)
	require.NotEmpty(t, ciphertext)
	assert.NotContains(t, ciphertext, "my plaintext password")

	plaintext, err := cipher.Decrypt(ciphertext)
	require.NoError(t, err)
	assert.Equal(t, "my plaintext password", plaintext)
}

func TestAESGCMCipher_EncryptionsDiverge(t *testing.T) {
	cipher := newTestCipher(t, "unit-test-cipher-key")

	first, err := cipher.Encrypt("same input")
	require.NoError(t, err)
	second, err := cipher.Encrypt("same input")
	require.NoError(t, err)

	// Fresh nonce per call: identical plaintexts must not share ciphertext.
	assert.NotEqual(t, first, second)
}

func TestAESGCMCipher_TamperedCiphertextRejected(t *testing.T) {
	cipher := newTestCipher(t, "unit-test-cipher-key")

	ciphertext, err := cipher.Encrypt("payload")
	require.NoError(t, err)

	tampered := "A" + ciphertext[1:]
	if tampered == ciphertext {
		tampered = "B" + ciphertext[1:]
	}

	_, err = cipher.Decrypt(tampered)
	assert.ErrorIs(t, err, service.ErrInvalidCiphertext)
}

func TestAESGCMCipher_MalformedInputRejected(t *testing.T) {
	cipher := newTestCipher(t, "unit-test-cipher-key")

	for _, input := range []string{"", "not base64 at all!!", "c2hvcnQ="} {
		_, err := cipher.Decrypt(input)
		assert.ErrorIs(t, err, service.ErrInvalidCiphertext)
	}
}

func TestAESGCMCipher_DifferentKeyCannotDecrypt(t *testing.T) {
	cipherA := newTestCipher(t, "key-a")
	cipherB := newTestCipher(t, "key-b")

	ciphertext, err := cipherA.Encrypt("cross-key payload")
	require.NoError(t, err)

	_, err = cipherB.Decrypt(ciphertext)
	assert.ErrorIs(t, err, service.ErrInvalidCiphertext)
}

func TestAESGCMCipher_MissingKeyFailsConstruction(t *testing.T) {
	_, err := NewAESGCMCipher(&config.Config{})
	assert.Error(t, err)
}
