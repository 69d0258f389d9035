package fieldcrypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
)

// Errors returned by the field encryption layer.
var (
	ErrInvalidKey        = errors.New("encryption key must be 32 bytes (base64 encoded)")
	ErrInvalidCiphertext = errors.New("invalid ciphertext")
)

// Provider holds the managed secret for symmetric field encryption and hands
// out short-lived Cipher values. Key material is only unlocked inside WithKey
// and wiped again on every exit path, mirroring an open-use-close key
// discipline at the store.
type Provider struct {
	key []byte
}

// NewProvider decodes and validates the base64 encoded 256-bit key.
func NewProvider(encodedKey string) (*Provider, error) {
	key, err := base64.StdEncoding.DecodeString(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode encryption key: %w", err)
	}
	if len(key) != 32 {
		return nil, ErrInvalidKey
	}
	return &Provider{key: key}, nil
}

// Cipher performs AES-256-GCM encryption of individual field values. It is
// only valid inside the WithKey closure that produced it.
type Cipher struct {
	key []byte
}

// WithKey unlocks the key for the duration of fn. The working copy of the
// key is zeroized before WithKey returns, whether fn succeeds, fails or
// panics.
func (p *Provider) WithKey(fn func(c *Cipher) error) error {
	working := make([]byte, len(p.key))
	copy(working, p.key)
	c := &Cipher{key: working}

	defer func() {
		for i := range working {
			working[i] = 0
		}
		c.key = nil
	}()

	return fn(c)
}

// Encrypt seals a plaintext field value. The nonce is prepended to the
// returned ciphertext.
func (c *Cipher) Encrypt(plaintext string) ([]byte, error) {
	if c.key == nil {
		return nil, errors.New("cipher used outside WithKey scope")
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	return gcm.Seal(nonce, nonce, []byte(plaintext), nil), nil
}

// Decrypt opens a sealed field value.
func (c *Cipher) Decrypt(ciphertext []byte) (string, error) {
	if c.key == nil {
		return "", errors.New("cipher used outside WithKey scope")
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("failed to create GCM: %w", err)
	}

	if len(ciphertext) < gcm.NonceSize() {
		return "", ErrInvalidCiphertext
	}

	nonce, sealed := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", ErrInvalidCiphertext
	}

	return string(plaintext), nil
}
