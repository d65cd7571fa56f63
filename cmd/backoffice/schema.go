// Copyright (c) 2026 BuyPy Team
// BuyPy Backoffice - shop administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/buypy/backoffice/internal/db"
	"github.com/buypy/backoffice/internal/i18n"
	"github.com/buypy/backoffice/internal/logging"
	"github.com/buypy/backoffice/internal/security"
	"github.com/buypy/backoffice/internal/sqlscript"
)

func newSchemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Database administration",
	}

	var adminUser, adminDB string
	apply := &cobra.Command{
		Use:   "apply FILE",
		Short: "Run a SQL script (DELIMITER aware) with administrator credentials",
		Long: `Runs every statement of FILE in order, continuing past failures, and
reports how many statements failed. The administrator credentials are
asked for on every run and are never cached.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			p := newTerminalPrompter(cmd)
			if adminUser == "" {
				fmt.Fprint(p.out, i18n.T("cli.schema.admin_user")+" ")
				if adminUser, err = p.readLine(); err != nil {
					return err
				}
				adminUser = strings.TrimSpace(adminUser)
			}
			fmt.Fprint(p.out, i18n.T("cli.schema.admin_password")+" ")
			var pw security.Secret
			if p.isTerm() {
				raw, rerr := p.readPw()
				fmt.Fprintln(p.out)
				if rerr != nil {
					return rerr
				}
				pw = security.Secret(raw)
			} else {
				line, rerr := p.readLine()
				if rerr != nil {
					return rerr
				}
				pw = security.FromString(line)
			}
			defer pw.Zero()

			opts := dbOptions(appConfig, adminUser, pw)
			if opts.Driver != db.DriverSQLite {
				opts.Database = adminDB
			}
			g, err := connectFunc(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer g.Close()

			res, err := sqlscript.NewRunner(g).Apply(cmd.Context(), f)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.schema.summary", res.Executed, res.Total, len(res.Failed)))
			if !res.OK() {
				for _, se := range res.Failed {
					fmt.Fprintf(cmd.ErrOrStderr(), "  #%d %s: %v\n", se.Index+1, sqlscript.Summary(se.Statement, 60), se.Err)
				}
				return fmt.Errorf("%d of %d statements failed", len(res.Failed), res.Total)
			}
			logging.Infof("applied %s (%d statements)", args[0], res.Total)
			return nil
		},
	}
	apply.Flags().StringVarP(&adminUser, "admin-user", "u", "", "administrator user (prompted when empty)")
	apply.Flags().StringVar(&adminDB, "database", "sys", "schema to connect to before the script runs (mysql)")

	cmd.AddCommand(apply)
	return cmd
}
