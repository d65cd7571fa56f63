// Copyright (c) 2026 BuyPy Team
// BuyPy Backoffice - shop administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/buypy/backoffice/internal/i18n"
	"github.com/buypy/backoffice/internal/logging"
	"github.com/buypy/backoffice/internal/model"
	"github.com/buypy/backoffice/internal/tui"
)

func customerRow(c model.Customer) []string {
	return []string{strconv.FormatInt(c.ID, 10), c.FullName(), c.Email, c.City, string(c.Status)}
}

var customerHeaders = []string{"ID", "Name", "Email", "City", "Status"}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q is not a valid id", model.ErrInvalid, arg)
	}
	return id, nil
}

func newCustomersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "customers",
		Aliases: []string{"users"},
		Short:   "Look up, block and unblock customers",
	}

	var id int64
	var email string
	show := &cobra.Command{
		Use:   "show",
		Short: "Show a customer by --id or --email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withBackend(cmd, func(ctx context.Context, b tui.Backend) error {
				var c *model.Customer
				var err error
				if cmd.Flags().Changed("id") {
					c, err = b.CustomerByID(ctx, id)
				} else {
					c, err = b.CustomerByEmail(ctx, email)
				}
				if err != nil {
					return err
				}
				printFields(cmd.OutOrStdout(), [][2]string{
					{"ID", strconv.FormatInt(c.ID, 10)},
					{"Name", c.FullName()},
					{"Email", c.Email},
					{"Address", c.Address},
					{"Postal code", c.PostalCode},
					{"City", c.City},
					{"Country", c.Country},
					{"Phone", c.Phone},
					{"Status", string(c.Status)},
				})
				return nil
			})
		},
	}
	show.Flags().Int64Var(&id, "id", 0, "customer id")
	show.Flags().StringVar(&email, "email", "", "customer email")
	show.MarkFlagsMutuallyExclusive("id", "email")
	show.MarkFlagsOneRequired("id", "email")

	setStatus := func(status model.CustomerStatus) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withBackend(cmd, func(ctx context.Context, b tui.Backend) error {
				changed, err := b.SetCustomerStatus(ctx, id, status)
				if err != nil {
					return err
				}
				if !changed {
					return errors.New(i18n.T("cli.customers.unchanged", id))
				}
				logging.Infof("customer %d status changed to %s", id, status)
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T("customers.status_changed", id, string(status)))
				return nil
			})
		}
	}

	block := &cobra.Command{
		Use:   "block ID",
		Short: "Block a customer",
		Args:  cobra.ExactArgs(1),
		RunE:  setStatus(model.StatusBlocked),
	}
	unblock := &cobra.Command{
		Use:   "unblock ID",
		Short: "Unblock a customer",
		Args:  cobra.ExactArgs(1),
		RunE:  setStatus(model.StatusActive),
	}

	blocked := &cobra.Command{
		Use:   "blocked",
		Short: "List blocked customers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withBackend(cmd, func(ctx context.Context, b tui.Backend) error {
				cs, err := b.BlockedCustomers(ctx)
				if err != nil {
					return err
				}
				if len(cs) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), i18n.T("blocked.empty"))
					return nil
				}
				rows := make([][]string, 0, len(cs))
				for _, c := range cs {
					rows = append(rows, customerRow(c))
				}
				printTable(cmd.OutOrStdout(), customerHeaders, rows)
				return nil
			})
		},
	}

	cmd.AddCommand(show, block, unblock, blocked)
	return cmd
}
