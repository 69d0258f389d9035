package fieldcrypt

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(t *testing.T) string {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return base64.StdEncoding.EncodeToString(key)
}

func TestNewProviderRejectsBadKeys(t *testing.T) {
	_, err := NewProvider("not-base64!!")
	assert.Error(t, err)

	short := base64.StdEncoding.EncodeToString([]byte("too short"))
	_, err = NewProvider(short)
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	provider, err := NewProvider(testKey(t))
	require.NoError(t, err)

	var sealed []byte
	err = provider.WithKey(func(c *Cipher) error {
		sealed, err = c.Encrypt("990101-14-5678")
		return err
	})
	require.NoError(t, err)

	// Ciphertext must not contain the plaintext.
	assert.NotContains(t, string(sealed), "990101-14-5678")
	assert.Greater(t, len(sealed), 12)

	var opened string
	err = provider.WithKey(func(c *Cipher) error {
		opened, err = c.Decrypt(sealed)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, "990101-14-5678", opened)
}

func TestCipherUnusableOutsideScope(t *testing.T) {
	provider, err := NewProvider(testKey(t))
	require.NoError(t, err)

	var leaked *Cipher
	err = provider.WithKey(func(c *Cipher) error {
		leaked = c
		return nil
	})
	require.NoError(t, err)

	_, err = leaked.Encrypt("anything")
	assert.Error(t, err)
	_, err = leaked.Decrypt([]byte("anything"))
	assert.Error(t, err)
}

func TestKeyReleasedOnErrorPath(t *testing.T) {
	provider, err := NewProvider(testKey(t))
	require.NoError(t, err)

	boom := errors.New("boom")
	var leaked *Cipher
	err = provider.WithKey(func(c *Cipher) error {
		leaked = c
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, leaked.key)
}

func TestDecryptRejectsGarbage(t *testing.T) {
	provider, err := NewProvider(testKey(t))
	require.NoError(t, err)

	err = provider.WithKey(func(c *Cipher) error {
		_, derr := c.Decrypt([]byte("short"))
		assert.ErrorIs(t, derr, ErrInvalidCiphertext)

		_, derr = c.Decrypt([]byte(strings.Repeat("x", 64)))
		assert.ErrorIs(t, derr, ErrInvalidCiphertext)
		return nil
	})
	require.NoError(t, err)
}
