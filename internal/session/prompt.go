// Copyright (c) 2026 BuyPy Team
// BuyPy Backoffice - shop administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package session

import (
	"context"
	"errors"

	"github.com/buypy/backoffice/internal/security"
)

// DefaultAttempts is how many interactive logins Run allows.
const DefaultAttempts = 3

// Prompter asks the operator for credentials. lastErr is the error of the
// previous attempt, nil on the first prompt.
type Prompter interface {
	Credentials(ctx context.Context, attempt int, lastErr error) (username string, password security.Secret, err error)
}

// PrompterFunc adapts a function to Prompter.
type PrompterFunc func(ctx context.Context, attempt int, lastErr error) (string, security.Secret, error)

// Credentials implements Prompter.
func (f PrompterFunc) Credentials(ctx context.Context, attempt int, lastErr error) (string, security.Secret, error) {
	return f(ctx, attempt, lastErr)
}

// Run resumes from the store and falls back to prompting up to attempts times.
// Prompt errors and ErrPersistCredentials stop the loop immediately.
func (b *Bootstrapper[C]) Run(ctx context.Context, p Prompter, attempts int) (C, error) {
	if attempts <= 0 {
		attempts = DefaultAttempts
	}

	conn, err := b.Resume(ctx)
	if err == nil {
		return conn, nil
	}
	if !errors.Is(err, ErrNoStoredCredentials) && !errors.Is(err, ErrLoginFailed) {
		return conn, err
	}

	var lastErr error
	if errors.Is(err, ErrLoginFailed) {
		lastErr = err
	}
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return conn, err
		}
		username, password, perr := p.Credentials(ctx, attempt, lastErr)
		if perr != nil {
			return conn, perr
		}
		conn, err = b.Login(ctx, username, password)
		password.Zero()
		if err == nil {
			return conn, nil
		}
		if !errors.Is(err, ErrLoginFailed) && !errors.Is(err, ErrEmptyCredentials) {
			return conn, err
		}
		lastErr = err
	}
	return conn, lastErr
}
