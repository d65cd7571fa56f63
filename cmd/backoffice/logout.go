// Copyright (c) 2026 BuyPy Team
// BuyPy Backoffice - shop administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/buypy/backoffice/internal/credstore"
	"github.com/buypy/backoffice/internal/i18n"
	"github.com/buypy/backoffice/internal/logging"
)

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the cached login",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := credstore.Open(appConfig.Credentials.KeyFile, appConfig.Credentials.File)
			if err != nil {
				return fmt.Errorf("credential store: %w", err)
			}
			if err := store.Clear(); err != nil {
				return err
			}
			logging.Infof("cached credentials cleared")
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.logout.done"))
			return nil
		},
	}
}
