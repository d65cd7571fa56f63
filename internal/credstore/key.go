// Copyright (c) 2026 BuyPy Team
// BuyPy Backoffice - shop administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package credstore

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/buypy/backoffice/internal/logging"
	"golang.org/x/crypto/chacha20poly1305"
)

// KeySize is the length in bytes of the symmetric key kept in the key file.
const KeySize = chacha20poly1305.KeySize

var (
	// ErrKeyUnreadable is returned when a key file exists but cannot be read.
	ErrKeyUnreadable = errors.New("credential key file is unreadable")
	// ErrKeyCorrupt is returned when a key file exists but does not hold a valid key.
	ErrKeyCorrupt = errors.New("credential key file is corrupt")
	// ErrKeyWrite is returned when a new key cannot be persisted.
	ErrKeyWrite = errors.New("credential key file could not be written")
)

// ObtainKey returns the key stored at path, generating and persisting a new one
// when the file does not exist yet.
func ObtainKey(path string) ([]byte, error) {
	key, err := os.ReadFile(path)
	switch {
	case err == nil:
		if len(key) != KeySize {
			return nil, fmt.Errorf("%w: %s holds %d bytes, want %d", ErrKeyCorrupt, path, len(key), KeySize)
		}
		return key, nil
	case errors.Is(err, fs.ErrNotExist):
		return createKey(path)
	default:
		return nil, fmt.Errorf("%w: %w", ErrKeyUnreadable, err)
	}
}

func createKey(path string) ([]byte, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeyWrite, err)
	}

	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}

	// O_EXCL: if another process created the file in the meantime, use theirs.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if errors.Is(err, fs.ErrExist) {
		return ObtainKey(path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeyWrite, err)
	}

	if _, err := f.Write(key); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, fmt.Errorf("%w: %w", ErrKeyWrite, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("%w: %w", ErrKeyWrite, err)
	}
	// The umask can only narrow the mode; set it explicitly anyway.
	if err := os.Chmod(path, 0o600); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeyWrite, err)
	}

	logging.Infof("generated new credential key at %s", path)
	return key, nil
}
