// Copyright (c) 2026 BuyPy Team
// BuyPy Backoffice - shop administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package credstore

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

var errSealedTooShort = errors.New("sealed value shorter than nonce")

// Strict so that flipped trailing bits are rejected, not silently dropped.
var encoding = base64.RawURLEncoding.Strict()

func newAEAD(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrKeyCorrupt, len(key), KeySize)
	}
	return chacha20poly1305.NewX(key)
}

// seal encrypts plaintext bound to field (used as additional data, so values
// cannot be swapped between entries) and returns base64url(nonce||ciphertext).
func seal(aead cipher.AEAD, field string, plaintext []byte) (string, error) {
	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plaintext)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	out := aead.Seal(nonce, nonce, plaintext, []byte(field))
	return encoding.EncodeToString(out), nil
}

// open reverses seal. Any decoding or authentication problem is an error.
func open(aead cipher.AEAD, field, sealed string) ([]byte, error) {
	raw, err := encoding.DecodeString(sealed)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", field, err)
	}
	if len(raw) < aead.NonceSize() {
		return nil, fmt.Errorf("decode %s: %w", field, errSealedTooShort)
	}
	nonce, ciphertext := raw[:aead.NonceSize()], raw[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, []byte(field))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", field, err)
	}
	return plaintext, nil
}
