// Copyright (c) 2026 BuyPy Team
// BuyPy Backoffice - shop administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/buypy/backoffice/internal/model"
	"github.com/buypy/backoffice/internal/tui"
)

// fakeShop implements the Backend methods the commands use. Calling any
// other method panics through the nil embedded interface.
type fakeShop struct {
	tui.Backend

	customer   *model.Customer
	statusIDs  []int64
	statuses   []model.CustomerStatus
	statusOK   bool
	blocked    []model.Customer
	filters    []model.ProductFilter
	products   []model.ProductSummary
	books      []model.NewBook
	elecs      []model.NewElectronics
	days       []string
	orders     []model.OrderSummary
	detail     *model.OrderDetail
	total      decimal.Decimal
	orderItems []model.OrderItem
}

func (f *fakeShop) CustomerByID(_ context.Context, id int64) (*model.Customer, error) {
	c := *f.customer
	c.ID = id
	return &c, nil
}

func (f *fakeShop) CustomerByEmail(_ context.Context, email string) (*model.Customer, error) {
	c := *f.customer
	c.Email = email
	return &c, nil
}

func (f *fakeShop) SetCustomerStatus(_ context.Context, id int64, s model.CustomerStatus) (bool, error) {
	f.statusIDs = append(f.statusIDs, id)
	f.statuses = append(f.statuses, s)
	return f.statusOK, nil
}

func (f *fakeShop) BlockedCustomers(context.Context) ([]model.Customer, error) {
	return f.blocked, nil
}

func (f *fakeShop) Products(_ context.Context, filter model.ProductFilter) ([]model.ProductSummary, error) {
	f.filters = append(f.filters, filter)
	return f.products, nil
}

func (f *fakeShop) AddBook(_ context.Context, b model.NewBook) error {
	f.books = append(f.books, b)
	return nil
}

func (f *fakeShop) AddElectronics(_ context.Context, e model.NewElectronics) error {
	f.elecs = append(f.elecs, e)
	return nil
}

func (f *fakeShop) DailyOrders(_ context.Context, day time.Time) ([]model.OrderSummary, error) {
	f.days = append(f.days, day.Format(dateLayout))
	return f.orders, nil
}

func (f *fakeShop) Order(_ context.Context, id int64) (*model.OrderDetail, error) {
	d := *f.detail
	d.ID = id
	return &d, nil
}

func (f *fakeShop) OrderTotal(context.Context, int64) (decimal.Decimal, error) {
	return f.total, nil
}

func (f *fakeShop) OrderItems(context.Context, int64) ([]model.OrderItem, error) {
	return f.orderItems, nil
}

// isolate points every user path at a temporary directory.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("HOME", dir)
	t.Cleanup(closeLogFile)
	return dir
}

// useShop makes every subcommand talk to shop. The returned counter tracks
// how often a session was opened.
func useShop(t *testing.T, shop tui.Backend) *int {
	t.Helper()
	opened := 0
	prev := openBackend
	openBackend = func(*cobra.Command) (tui.Backend, func(), error) {
		opened++
		return shop, func() {}, nil
	}
	t.Cleanup(func() { openBackend = prev })
	return &opened
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	dir := isolate(t)
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{
		"--key-file", filepath.Join(dir, "key"),
		"--cred-file", filepath.Join(dir, "credentials.ini"),
		"--log-file", filepath.Join(dir, "backoffice.log"),
	}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}
