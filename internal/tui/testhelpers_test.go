// Copyright (c) 2026 BuyPy Team
// BuyPy Backoffice - shop administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/buypy/backoffice/internal/i18n"
	"github.com/buypy/backoffice/internal/model"
	"github.com/buypy/backoffice/internal/security"
)

// fakeBackend records calls and returns canned results.
type fakeBackend struct {
	customer    *model.Customer
	customerErr error

	statusCalls []model.CustomerStatus
	statusIDs   []int64
	statusOK    bool
	statusErr   error

	toggleTo      model.CustomerStatus
	toggleChanged bool
	toggleErr     error
	toggled       []int64

	blocked    []model.Customer
	blockedErr error

	products   []model.ProductSummary
	productErr error
	filters    []model.ProductFilter

	books    []model.NewBook
	elecs    []model.NewElectronics
	addErr   error
	days     []string
	orders   []model.OrderSummary
	orderErr error

	detail   *model.OrderDetail
	total    decimal.Decimal
	totalErr error
	items    []model.OrderItem
}

func (f *fakeBackend) CustomerByID(_ context.Context, id int64) (*model.Customer, error) {
	if f.customerErr != nil {
		return nil, f.customerErr
	}
	if f.customer == nil {
		return nil, errors.New("no customer configured")
	}
	c := *f.customer
	c.ID = id
	return &c, nil
}

func (f *fakeBackend) CustomerByEmail(_ context.Context, email string) (*model.Customer, error) {
	if f.customerErr != nil {
		return nil, f.customerErr
	}
	c := *f.customer
	c.Email = email
	return &c, nil
}

func (f *fakeBackend) SetCustomerStatus(_ context.Context, id int64, status model.CustomerStatus) (bool, error) {
	f.statusIDs = append(f.statusIDs, id)
	f.statusCalls = append(f.statusCalls, status)
	return f.statusOK, f.statusErr
}

func (f *fakeBackend) ToggleBlocked(_ context.Context, c *model.Customer) (model.CustomerStatus, bool, error) {
	f.toggled = append(f.toggled, c.ID)
	return f.toggleTo, f.toggleChanged, f.toggleErr
}

func (f *fakeBackend) BlockedCustomers(context.Context) ([]model.Customer, error) {
	return f.blocked, f.blockedErr
}

func (f *fakeBackend) Products(_ context.Context, filter model.ProductFilter) ([]model.ProductSummary, error) {
	f.filters = append(f.filters, filter)
	return f.products, f.productErr
}

func (f *fakeBackend) AddBook(_ context.Context, b model.NewBook) error {
	f.books = append(f.books, b)
	return f.addErr
}

func (f *fakeBackend) AddElectronics(_ context.Context, e model.NewElectronics) error {
	f.elecs = append(f.elecs, e)
	return f.addErr
}

func (f *fakeBackend) DailyOrders(_ context.Context, day time.Time) ([]model.OrderSummary, error) {
	f.days = append(f.days, day.Format(dateLayout))
	return f.orders, f.orderErr
}

func (f *fakeBackend) Order(_ context.Context, id int64) (*model.OrderDetail, error) {
	if f.detail == nil {
		return nil, errors.New("no order configured")
	}
	d := *f.detail
	d.ID = id
	return &d, nil
}

func (f *fakeBackend) OrderTotal(context.Context, int64) (decimal.Decimal, error) {
	return f.total, f.totalErr
}

func (f *fakeBackend) OrderItems(context.Context, int64) ([]model.OrderItem, error) {
	return f.items, nil
}

// fakeAuth is an Authenticator backed by a fakeBackend.
type fakeAuth struct {
	backend   Backend
	resumeErr error
	loginErr  error
	user      string
	password  string
	logouts   int
	logoutErr error
}

func (a *fakeAuth) Resume(context.Context) (Backend, error) {
	if a.resumeErr != nil {
		return nil, a.resumeErr
	}
	return a.backend, nil
}

func (a *fakeAuth) Login(_ context.Context, username string, password security.Secret) (Backend, error) {
	a.user = username
	a.password = password.Reveal()
	if a.loginErr != nil {
		return nil, a.loginErr
	}
	return a.backend, nil
}

func (a *fakeAuth) Logout() error {
	a.logouts++
	return a.logoutErr
}

func (a *fakeAuth) Username() string { return a.user }

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+f":
		return tea.KeyMsg{Type: tea.KeyCtrlF}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// run executes cmd and returns its message, failing on a nil command.
func run(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected a command, got nil")
	}
	return cmd()
}

// stubClipboard captures clipboard writes for the duration of the test.
func stubClipboard(t *testing.T, err error) *[]string {
	t.Helper()
	var got []string
	prev := writeClipboard
	writeClipboard = func(s string) error {
		got = append(got, s)
		return err
	}
	t.Cleanup(func() { writeClipboard = prev })
	return &got
}

func init() {
	i18n.Init("en")
}
