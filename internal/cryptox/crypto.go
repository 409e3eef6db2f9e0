// Package cryptox implements at-rest protection for locally persisted
// credentials: ChaCha20-Poly1305 sealing of JSON-serializable values under a
// random machine-local key.
package cryptox

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/avelichko/snipcli/internal/common"
)

// KeySize is the length of the machine-local key in bytes.
const KeySize = chacha20poly1305.KeySize

// ErrCiphertextTooShort is returned by Open when the sealed blob cannot even
// hold a nonce.
var ErrCiphertextTooShort = errors.New("ciphertext too short")

// LoadOrCreateKey reads the key file at path, creating it with a fresh random
// key (mode 0600) when it does not exist yet.
func LoadOrCreateKey(path string) ([]byte, error) {
	key, err := os.ReadFile(path)
	if err == nil {
		if len(key) != KeySize {
			return nil, fmt.Errorf("key file %s: unexpected length %d", path, len(key))
		}
		return key, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read key file: %w", err)
	}

	key = common.GenerateRandByteArray(KeySize)
	if err := os.WriteFile(path, key, 0o600); err != nil {
		return nil, fmt.Errorf("write key file: %w", err)
	}
	return key, nil
}

// Seal serializes v to JSON and encrypts it under key.
// The returned blob is nonce||ciphertext.
func Seal(v any, key []byte) ([]byte, error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}

	nonce := common.GenerateRandByteArray(aead.NonceSize())
	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open decrypts a blob produced by Seal and unmarshals the JSON into v.
func Open(sealed []byte, key []byte, v any) error {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return err
	}

	if len(sealed) < aead.NonceSize() {
		return ErrCiphertextTooShort
	}

	plaintext, err := aead.Open(nil, sealed[:aead.NonceSize()], sealed[aead.NonceSize():], nil)
	if err != nil {
		return err
	}

	return json.Unmarshal(plaintext, v)
}
