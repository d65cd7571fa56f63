// Copyright (c) 2026 BuyPy Team
// BuyPy Backoffice - shop administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/buypy/backoffice/internal/export"
	"github.com/buypy/backoffice/internal/i18n"
	"github.com/buypy/backoffice/internal/logging"
	"github.com/buypy/backoffice/internal/model"
	"github.com/buypy/backoffice/internal/tui"
)

var (
	orderHeaders     = []string{"Order", "Customer", "Date", "Status"}
	orderItemHeaders = []string{"Product", "Description", "Qty", "Price"}
)

// nowFunc is replaced in tests.
var nowFunc = time.Now

// parseDay reads a --date value; empty means today.
func parseDay(value string) (time.Time, error) {
	if value == "" {
		now := nowFunc()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local), nil
	}
	d, err := time.ParseInLocation(dateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: --date must be YYYY-MM-DD", model.ErrInvalid)
	}
	return d, nil
}

func newOrdersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Review orders",
	}

	var date string
	daily := &cobra.Command{
		Use:   "daily",
		Short: "List the orders of one day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := parseDay(date)
			if err != nil {
				return err
			}
			return withBackend(cmd, func(ctx context.Context, b tui.Backend) error {
				orders, err := b.DailyOrders(ctx, day)
				if err != nil {
					return err
				}
				if len(orders) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), i18n.T("orders.empty", day.Format(dateLayout)))
					return nil
				}
				rows := make([][]string, 0, len(orders))
				for _, o := range orders {
					rows = append(rows, []string{
						strconv.FormatInt(o.ID, 10),
						fmt.Sprintf("%d - %s", o.CustomerID, o.CardHolderName),
						o.OrderedAt.Format("2006-01-02 15:04"),
						o.Status,
					})
				}
				printTable(cmd.OutOrStdout(), orderHeaders, rows)
				return nil
			})
		},
	}
	daily.Flags().StringVar(&date, "date", "", "day to list (YYYY-MM-DD, default today)")

	show := &cobra.Command{
		Use:   "show ID",
		Short: "Show an order with its total and items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withBackend(cmd, func(ctx context.Context, b tui.Backend) error {
				return showOrder(ctx, cmd, b, id)
			})
		},
	}

	var exportDate, out string
	exp := &cobra.Command{
		Use:   "export",
		Short: "Write the orders of one day to a CSV file (.zst compresses it)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := parseDay(exportDate)
			if err != nil {
				return err
			}
			if out == "" {
				out = "orders-" + day.Format(dateLayout) + ".csv"
			}
			return withBackend(cmd, func(ctx context.Context, b tui.Backend) error {
				orders, err := b.DailyOrders(ctx, day)
				if err != nil {
					return err
				}
				n, err := export.OrdersToFile(out, orders)
				if err != nil {
					return err
				}
				logging.Infof("exported %d orders of %s to %s", n, day.Format(dateLayout), out)
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.orders.exported", n, out))
				return nil
			})
		},
	}
	exp.Flags().StringVar(&exportDate, "date", "", "day to export (YYYY-MM-DD, default today)")
	exp.Flags().StringVarP(&out, "out", "o", "", "output file (default orders-<date>.csv)")

	cmd.AddCommand(daily, show, exp)
	return cmd
}

func showOrder(ctx context.Context, cmd *cobra.Command, b tui.Backend, id int64) error {
	o, err := b.Order(ctx, id)
	if err != nil {
		return err
	}
	total, err := b.OrderTotal(ctx, id)
	if err != nil {
		return err
	}
	items, err := b.OrderItems(ctx, id)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	printFields(w, [][2]string{
		{i18n.T("orders.detail.id"), strconv.FormatInt(o.ID, 10)},
		{i18n.T("orders.detail.customer"), o.CustomerName()},
		{i18n.T("orders.detail.date"), o.OrderedAt.Format("2006-01-02 15:04:05")},
		{i18n.T("orders.detail.status"), o.Status},
		{i18n.T("orders.detail.shipping"), o.ShippingMethod},
		{i18n.T("orders.detail.payment"), o.Payment()},
		{i18n.T("orders.detail.total"), model.FormatEuro(total)},
	})
	if len(items) == 0 {
		fmt.Fprintln(w, i18n.T("orders.items.empty"))
		return nil
	}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			strconv.FormatInt(it.ProductID, 10),
			it.Description,
			strconv.Itoa(it.Quantity),
			model.FormatEuro(it.Price),
		})
	}
	printTable(w, orderItemHeaders, rows)
	return nil
}
