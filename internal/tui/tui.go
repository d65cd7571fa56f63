// Copyright (c) 2026 BuyPy Team
// BuyPy Backoffice - shop administration console
// This source code is licensed under the MIT license found in the LICENSE file.

// package tui provides the terminal user interface of the backoffice.
// This file, tui.go, holds the top-level model that acts as a router to
// the login form, the main menu and every management view.
package tui // import "github.com/buypy/backoffice/internal/tui"

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/buypy/backoffice/internal/i18n"
	"github.com/buypy/backoffice/internal/logging"
	"github.com/buypy/backoffice/internal/model"
	"github.com/buypy/backoffice/internal/security"
	"github.com/buypy/backoffice/internal/session"
)

// Backend is the shop database as seen by the views. *db.Gateway satisfies it.
type Backend interface {
	CustomerByID(ctx context.Context, id int64) (*model.Customer, error)
	CustomerByEmail(ctx context.Context, email string) (*model.Customer, error)
	SetCustomerStatus(ctx context.Context, id int64, status model.CustomerStatus) (bool, error)
	ToggleBlocked(ctx context.Context, c *model.Customer) (model.CustomerStatus, bool, error)
	BlockedCustomers(ctx context.Context) ([]model.Customer, error)
	Products(ctx context.Context, f model.ProductFilter) ([]model.ProductSummary, error)
	AddBook(ctx context.Context, b model.NewBook) error
	AddElectronics(ctx context.Context, e model.NewElectronics) error
	DailyOrders(ctx context.Context, day time.Time) ([]model.OrderSummary, error)
	Order(ctx context.Context, id int64) (*model.OrderDetail, error)
	OrderTotal(ctx context.Context, id int64) (decimal.Decimal, error)
	OrderItems(ctx context.Context, id int64) ([]model.OrderItem, error)
}

// Authenticator opens and ends the operator session.
type Authenticator interface {
	Resume(ctx context.Context) (Backend, error)
	Login(ctx context.Context, username string, password security.Secret) (Backend, error)
	Logout() error
	Username() string
}

// BackendConn is a Backend that can be closed by the session.
type BackendConn interface {
	Backend
	session.Conn
}

type bootstrapAuth[C BackendConn] struct {
	b *session.Bootstrapper[C]
}

// FromBootstrapper adapts a session bootstrapper to the Authenticator the
// TUI expects.
func FromBootstrapper[C BackendConn](b *session.Bootstrapper[C]) Authenticator {
	return bootstrapAuth[C]{b: b}
}

func (a bootstrapAuth[C]) Resume(ctx context.Context) (Backend, error) {
	c, err := a.b.Resume(ctx)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (a bootstrapAuth[C]) Login(ctx context.Context, username string, password security.Secret) (Backend, error) {
	c, err := a.b.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (a bootstrapAuth[C]) Logout() error    { return a.b.Logout() }
func (a bootstrapAuth[C]) Username() string { return a.b.Username() }

// viewState represents which part of the UI is currently active.
type viewState int

const (
	startingView viewState = iota
	loginView
	menuView
	customersView
	blockedView
	productsView
	productFormView
	ordersView
)

// resumeMsg carries the outcome of the startup login with cached credentials.
type resumeMsg struct {
	backend Backend
	err     error
}

// loginResultMsg carries the outcome of a login attempt.
type loginResultMsg struct {
	backend Backend
	err     error
}

// backToMenuMsg is sent by a view when the operator leaves it.
type backToMenuMsg struct{}

// logoutMsg is sent once the session has been closed.
type logoutMsg struct{ err error }

// mainModel is the top-level model. It routes updates and rendering to the
// active sub-model.
type mainModel struct {
	ctx      context.Context
	auth     Authenticator
	backend  Backend
	state    viewState
	login    loginModel
	menu     menuModel
	active   tea.Model
	width    int
	height   int
	status   string
	err      error
	quitting bool
}

func newMainModel(ctx context.Context, auth Authenticator) mainModel {
	return mainModel{
		ctx:   ctx,
		auth:  auth,
		state: startingView,
		login: newLoginModel(ctx, auth),
		menu:  newMenuModel(),
	}
}

func (m mainModel) Init() tea.Cmd {
	auth, ctx := m.auth, m.ctx
	return func() tea.Msg {
		b, err := auth.Resume(ctx)
		return resumeMsg{backend: b, err: err}
	}
}

func (m mainModel) operator() string {
	return m.auth.Username()
}

func (m mainModel) welcomeTitle() string {
	return i18n.T("app.window_title", m.operator())
}

// enterMenu switches to the main menu after a successful login.
func (m mainModel) enterMenu(b Backend) (tea.Model, tea.Cmd) {
	m.backend = b
	m.state = menuView
	m.active = nil
	m.status = ""
	logging.Infof("operator %s logged in", m.operator())
	return m, tea.SetWindowTitle(m.welcomeTitle())
}

// open builds the sub-model for the chosen menu entry.
func (m mainModel) open(target viewState) (tea.Model, tea.Cmd) {
	var sub tea.Model
	switch target {
	case customersView:
		sub = newCustomersModel(m.ctx, m.backend)
	case blockedView:
		sub = newBlockedModel(m.ctx, m.backend)
	case productsView:
		sub = newProductsModel(m.ctx, m.backend)
	case productFormView:
		sub = newProductFormModel(m.ctx, m.backend)
	case ordersView:
		sub = newOrdersModel(m.ctx, m.backend, time.Now())
	default:
		return m, nil
	}
	m.state = target
	m.active = sub
	m.status = ""
	cmds := []tea.Cmd{sub.Init()}
	if m.width > 0 {
		var cmd tea.Cmd
		m.active, cmd = m.active.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m mainModel) logout() tea.Cmd {
	auth := m.auth
	return func() tea.Msg {
		return logoutMsg{err: auth.Logout()}
	}
}

func (m mainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case resumeMsg:
		if msg.err != nil {
			if !errors.Is(msg.err, session.ErrNoStoredCredentials) {
				logging.Warnf("stored credentials rejected: %v", msg.err)
			}
			m.state = loginView
			return m, m.login.Init()
		}
		return m.enterMenu(msg.backend)
	case loginResultMsg:
		if msg.err != nil {
			var cmd tea.Cmd
			m.login, cmd = m.login.failed(msg.err)
			if errors.Is(msg.err, session.ErrPersistCredentials) || errors.Is(msg.err, session.ErrSessionEnded) {
				m.err = msg.err
				m.quitting = true
				return m, tea.Quit
			}
			return m, cmd
		}
		return m.enterMenu(msg.backend)
	case loginCancelledMsg:
		m.quitting = true
		return m, tea.Quit
	case backToMenuMsg:
		m.state = menuView
		m.active = nil
		return m, nil
	case openViewMsg:
		if msg.target == logoutAction {
			return m, m.logout()
		}
		return m.open(msg.target)
	case logoutMsg:
		if msg.err != nil {
			logging.Errorf("logout: %v", msg.err)
			m.err = msg.err
		} else {
			logging.Infof("operator logged out")
		}
		m.quitting = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	switch m.state {
	case loginView:
		m.login, cmd = m.login.Update(msg)
	case menuView:
		m.menu, cmd = m.menu.Update(msg)
	default:
		if m.active != nil {
			m.active, cmd = m.active.Update(msg)
		}
	}
	return m, cmd
}

func (m mainModel) View() string {
	if m.quitting {
		return ""
	}
	var body string
	switch m.state {
	case startingView:
		body = helpStyle.Render(i18n.T("app.connecting"))
	case loginView:
		body = m.login.View()
	case menuView:
		body = lipgloss.JoinVertical(lipgloss.Left,
			mainTitleStyle.Render(i18n.T("menu.welcome", m.operator())),
			m.menu.View(),
			"",
			statusLine(i18n.T("menu.help"), m.operator(), m.width),
		)
	default:
		if m.active != nil {
			body = m.active.View()
		}
	}
	return docStyle.Render(body)
}

// Err returns the error that ended the program, if any.
func (m mainModel) Err() error { return m.err }

// Run starts the TUI and blocks until the operator quits.
func Run(ctx context.Context, auth Authenticator, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(newMainModel(ctx, auth), opts...)
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(mainModel); ok {
		return fm.Err()
	}
	return nil
}
