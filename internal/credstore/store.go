// Copyright (c) 2026 BuyPy Team
// BuyPy Backoffice - shop administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package credstore

import (
	"crypto/cipher"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/buypy/backoffice/internal/logging"
	"github.com/buypy/backoffice/internal/security"
	"gopkg.in/ini.v1"
)

// SectionName is the INI section that holds the sealed operator credentials.
const SectionName = "Operator"

const (
	usernameKey = "username"
	passwordKey = "password"
)

// Credentials is a decrypted operator credential pair.
type Credentials struct {
	Username string
	Password security.Secret
}

// Store reads and writes the sealed credentials file.
type Store struct {
	path string
	aead cipher.AEAD
}

// Open obtains the key at keyPath (creating it on first use) and returns a
// Store for the credentials file at path. Key errors are returned as-is and
// should be treated as fatal by the caller.
func Open(keyPath, path string) (*Store, error) {
	key, err := ObtainKey(keyPath)
	if err != nil {
		return nil, err
	}
	return NewWithKey(key, path)
}

// NewWithKey returns a Store sealing with the given key.
func NewWithKey(key []byte, path string) (*Store, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}
	return &Store{path: path, aead: aead}, nil
}

// Path returns the location of the credentials file.
func (s *Store) Path() string { return s.path }

// Save seals both fields and replaces the credentials file. Both values are
// encrypted before anything is written; the file is swapped in with a rename.
func (s *Store) Save(username string, password security.Secret) error {
	sealedUser, err := seal(s.aead, usernameKey, []byte(username))
	if err != nil {
		return err
	}
	sealedPass, err := seal(s.aead, passwordKey, password)
	if err != nil {
		return err
	}

	file := ini.Empty()
	section, err := file.NewSection(SectionName)
	if err != nil {
		return err
	}
	if _, err := section.NewKey(usernameKey, sealedUser); err != nil {
		return err
	}
	if _, err := section.NewKey(passwordKey, sealedPass); err != nil {
		return err
	}

	return s.writeFile(file)
}

func (s *Store) writeFile(file *ini.File) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("could not create credentials directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".credentials-*.ini")
	if err != nil {
		return fmt.Errorf("could not write credentials: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := file.WriteTo(tmp); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("could not write credentials: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("could not write credentials: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("could not write credentials: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		cleanup()
		return fmt.Errorf("could not write credentials: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		cleanup()
		return fmt.Errorf("could not write credentials: %w", err)
	}
	return nil
}

// Load returns the cached credentials. ok is false when there is nothing
// usable on disk, whatever the reason; the reason is only logged.
func (s *Store) Load() (creds Credentials, ok bool) {
	file, err := ini.Load(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logging.Debugf("no cached credentials at %s", s.path)
		} else {
			logging.Warnf("ignoring unreadable credentials file %s: %v", s.path, err)
		}
		return Credentials{}, false
	}

	section, err := file.GetSection(SectionName)
	if err != nil {
		logging.Warnf("credentials file %s has no [%s] section", s.path, SectionName)
		return Credentials{}, false
	}
	if !section.HasKey(usernameKey) || !section.HasKey(passwordKey) {
		logging.Warnf("credentials file %s is incomplete", s.path)
		return Credentials{}, false
	}

	user, err := open(s.aead, usernameKey, section.Key(usernameKey).String())
	if err != nil {
		logging.Warnf("ignoring cached credentials: %v", err)
		return Credentials{}, false
	}
	pass, err := open(s.aead, passwordKey, section.Key(passwordKey).String())
	if err != nil {
		logging.Warnf("ignoring cached credentials: %v", err)
		return Credentials{}, false
	}

	return Credentials{Username: string(user), Password: security.Secret(pass)}, true
}

// Clear removes the credentials file. A missing file is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("could not remove credentials: %w", err)
	}
	return nil
}
