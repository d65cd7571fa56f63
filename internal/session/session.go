// Copyright (c) 2026 BuyPy Team
// BuyPy Backoffice - shop administration console
// This source code is licensed under the MIT license found in the LICENSE file.

// Package session decides, at startup and after each login attempt, whether the
// operator has a live database session. It ties the credential store to a dialer
// and keeps the login state on the Bootstrapper value itself.
package session // import "github.com/buypy/backoffice/internal/session"

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/buypy/backoffice/internal/credstore"
	"github.com/buypy/backoffice/internal/logging"
	"github.com/buypy/backoffice/internal/security"
)

// State is a step of the login state machine.
type State int

const (
	// NeedCredentials means no session is open and the operator must log in.
	NeedCredentials State = iota
	// Authenticating means a dial is in progress.
	Authenticating
	// Authenticated means a session is open.
	Authenticated
	// Ended is terminal: the operator logged out or the session could not be kept.
	Ended
)

func (s State) String() string {
	switch s {
	case NeedCredentials:
		return "need-credentials"
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	case Ended:
		return "ended"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var (
	// ErrNoStoredCredentials is returned by Resume when nothing usable is cached.
	ErrNoStoredCredentials = errors.New("no stored credentials")
	// ErrLoginFailed wraps the dialer error of a failed login.
	ErrLoginFailed = errors.New("login failed")
	// ErrPersistCredentials is returned when a login succeeded but the
	// credentials could not be saved. The session is closed and ended.
	ErrPersistCredentials = errors.New("could not save credentials")
	// ErrEmptyCredentials is returned when username or password is blank.
	ErrEmptyCredentials = errors.New("username and password are required")
	// ErrNotAuthenticated is returned by Logout without an open session.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrSessionEnded is returned by any transition attempted after Ended.
	ErrSessionEnded = errors.New("session has ended")
	// ErrBusy is returned when a transition is attempted while authenticating.
	ErrBusy = errors.New("login already in progress")
)

// CredentialStore is the subset of *credstore.Store used here.
type CredentialStore interface {
	Load() (credstore.Credentials, bool)
	Save(username string, password security.Secret) error
	Clear() error
}

// Conn is anything the dialer opens and Logout must close.
type Conn interface {
	Close() error
}

// Dialer opens a session with exactly the given credentials.
type Dialer[C Conn] func(ctx context.Context, username string, password security.Secret) (C, error)

// Bootstrapper drives the login state machine for one operator.
type Bootstrapper[C Conn] struct {
	store CredentialStore
	dial  Dialer[C]

	mu       sync.Mutex
	state    State
	conn     C
	username string
}

// New returns a Bootstrapper in NeedCredentials.
func New[C Conn](store CredentialStore, dial Dialer[C]) *Bootstrapper[C] {
	return &Bootstrapper[C]{store: store, dial: dial, state: NeedCredentials}
}

// State returns the current state.
func (b *Bootstrapper[C]) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Session returns the open connection and true when Authenticated.
func (b *Bootstrapper[C]) Session() (C, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != Authenticated {
		var zero C
		return zero, false
	}
	return b.conn, true
}

// Username returns the operator of the open session, or "".
func (b *Bootstrapper[C]) Username() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != Authenticated {
		return ""
	}
	return b.username
}

// begin moves NeedCredentials to Authenticating. An already open session is
// returned with done set.
func (b *Bootstrapper[C]) begin() (conn C, done bool, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch b.state {
	case Authenticated:
		return b.conn, true, nil
	case Authenticating:
		return conn, false, ErrBusy
	case Ended:
		return conn, false, ErrSessionEnded
	}
	b.state = Authenticating
	return conn, false, nil
}

func (b *Bootstrapper[C]) finish(state State, conn C, username string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = state
	b.conn = conn
	b.username = username
}

// Resume tries the cached credentials without prompting. It returns
// ErrNoStoredCredentials when the store has nothing usable and ErrLoginFailed
// when the cached pair was rejected; both leave the state in NeedCredentials.
func (b *Bootstrapper[C]) Resume(ctx context.Context) (C, error) {
	var zero C
	conn, done, err := b.begin()
	if err != nil || done {
		return conn, err
	}

	creds, ok := b.store.Load()
	if !ok {
		b.finish(NeedCredentials, zero, "")
		return zero, ErrNoStoredCredentials
	}

	conn, err = b.dial(ctx, creds.Username, creds.Password)
	if err != nil {
		logging.Warnf("stored credentials for %s were not accepted: %v", creds.Username, err)
		b.finish(NeedCredentials, zero, "")
		return zero, fmt.Errorf("%w: %w", ErrLoginFailed, err)
	}

	logging.Infof("resumed session for %s", creds.Username)
	b.finish(Authenticated, conn, creds.Username)
	return conn, nil
}

// Login dials with the entered credentials. On success the pair replaces
// whatever was cached. On a dial failure the state returns to NeedCredentials
// and the caller is expected to prompt again.
func (b *Bootstrapper[C]) Login(ctx context.Context, username string, password security.Secret) (C, error) {
	var zero C
	username = strings.TrimSpace(username)
	if username == "" || password.IsEmpty() {
		return zero, ErrEmptyCredentials
	}

	conn, done, err := b.begin()
	if err != nil || done {
		return conn, err
	}

	conn, err = b.dial(ctx, username, password)
	if err != nil {
		logging.Warnf("login for %s failed: %v", username, err)
		b.finish(NeedCredentials, zero, "")
		return zero, fmt.Errorf("%w: %w", ErrLoginFailed, err)
	}

	if err := b.store.Save(username, password); err != nil {
		if cerr := conn.Close(); cerr != nil {
			logging.Warnf("closing session after save failure: %v", cerr)
		}
		b.finish(Ended, zero, "")
		return zero, fmt.Errorf("%w: %w", ErrPersistCredentials, err)
	}

	logging.Infof("logged in as %s", username)
	b.finish(Authenticated, conn, username)
	return conn, nil
}

// Logout clears the cached credentials and closes the session. The state is
// Ended afterwards even if one of the two steps failed.
func (b *Bootstrapper[C]) Logout() error {
	b.mu.Lock()
	if b.state != Authenticated {
		b.mu.Unlock()
		return ErrNotAuthenticated
	}
	conn, username := b.conn, b.username
	var zero C
	b.state, b.conn, b.username = Ended, zero, ""
	b.mu.Unlock()

	var errs []error
	if err := b.store.Clear(); err != nil {
		errs = append(errs, err)
	}
	if err := conn.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close session: %w", err))
	}
	logging.Infof("logged out %s", username)
	return errors.Join(errs...)
}
