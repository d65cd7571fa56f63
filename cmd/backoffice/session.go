// Copyright (c) 2026 BuyPy Team
// BuyPy Backoffice - shop administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/buypy/backoffice/internal/config"
	"github.com/buypy/backoffice/internal/credstore"
	"github.com/buypy/backoffice/internal/db"
	"github.com/buypy/backoffice/internal/security"
	"github.com/buypy/backoffice/internal/session"
	"github.com/buypy/backoffice/internal/tui"
)

// connectFunc opens the operator connection. Replaced in tests.
var connectFunc = db.Connect

// dbOptions builds the connection options for one operator login.
func dbOptions(cfg config.Config, username string, password security.Secret) db.Options {
	return db.Options{
		Driver:   cfg.Database.Driver,
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		Database: cfg.Database.Name,
		Username: username,
		Password: password,
		Timeout:  cfg.Database.Timeout,
	}
}

// newBootstrapper ties the credential store of cfg to a database dialer.
func newBootstrapper(cfg config.Config) (*session.Bootstrapper[*db.Gateway], error) {
	store, err := credstore.Open(cfg.Credentials.KeyFile, cfg.Credentials.File)
	if err != nil {
		return nil, fmt.Errorf("credential store: %w", err)
	}
	dial := func(ctx context.Context, username string, password security.Secret) (*db.Gateway, error) {
		return connectFunc(ctx, dbOptions(cfg, username, password))
	}
	return session.New[*db.Gateway](store, dial), nil
}

// openBackend opens a session for a subcommand: cached credentials first,
// then up to three prompts. The returned release func closes the connection
// and keeps the cached credentials. Replaced in tests.
var openBackend = func(cmd *cobra.Command) (tui.Backend, func(), error) {
	boot, err := newBootstrapper(appConfig)
	if err != nil {
		return nil, nil, err
	}
	g, err := boot.Run(cmd.Context(), newTerminalPrompter(cmd), session.DefaultAttempts)
	if err != nil {
		return nil, nil, err
	}
	return g, func() { _ = g.Close() }, nil
}

// withBackend runs fn with an open session.
func withBackend(cmd *cobra.Command, fn func(ctx context.Context, b tui.Backend) error) error {
	b, release, err := openBackend(cmd)
	if err != nil {
		return err
	}
	defer release()
	return fn(cmd.Context(), b)
}
