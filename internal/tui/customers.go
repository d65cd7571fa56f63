// Copyright (c) 2026 BuyPy Team
// BuyPy Backoffice - shop administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/buypy/backoffice/internal/db"
	"github.com/buypy/backoffice/internal/i18n"
	"github.com/buypy/backoffice/internal/logging"
	"github.com/buypy/backoffice/internal/model"
)

type searchMode int

const (
	searchByID searchMode = iota
	searchByEmail
)

type customerFoundMsg struct {
	customer *model.Customer
	err      error
}

type customerToggledMsg struct {
	id      int64
	status  model.CustomerStatus
	changed bool
	err     error
}

// customersModel looks a customer up by ID or email and toggles blocking.
type customersModel struct {
	ctx      context.Context
	backend  Backend
	mode     searchMode
	input    textinput.Model
	table    table.Model
	customer *model.Customer
	query    string // last submitted query, used to refresh
	status   string
	err      string
	width    int
}

func newCustomersModel(ctx context.Context, b Backend) *customersModel {
	ti := textinput.New()
	ti.Cursor.Style = focusedStyle
	ti.CharLimit = 128
	ti.Width = 40
	ti.Focus()
	m := &customersModel{ctx: ctx, backend: b, input: ti}
	m.setPrompt()
	m.table = newTable([]table.Column{
		{Title: i18n.T("customers.header.id"), Width: 8},
		{Title: i18n.T("customers.header.name"), Width: 24},
		{Title: i18n.T("customers.header.email"), Width: 30},
		{Title: i18n.T("customers.header.city"), Width: 16},
		{Title: i18n.T("customers.header.status"), Width: 10},
	}, 3)
	return m
}

func (m *customersModel) setPrompt() {
	if m.mode == searchByID {
		m.input.Prompt = i18n.T("customers.prompt.id") + " "
		m.input.Placeholder = "42"
	} else {
		m.input.Prompt = i18n.T("customers.prompt.email") + " "
		m.input.Placeholder = "name@example.com"
	}
}

func (m *customersModel) Init() tea.Cmd { return textinput.Blink }

// search validates the query and starts the lookup.
func (m *customersModel) search(query string) tea.Cmd {
	query = strings.TrimSpace(query)
	ctx, b := m.ctx, m.backend
	if m.mode == searchByID {
		if query == "" {
			m.err = i18n.T("customers.error.empty_id")
			return nil
		}
		id, err := strconv.ParseInt(query, 10, 64)
		if err != nil {
			m.err = i18n.T("customers.error.id_not_number")
			return nil
		}
		m.query, m.err = query, ""
		return func() tea.Msg {
			c, err := b.CustomerByID(ctx, id)
			return customerFoundMsg{customer: c, err: err}
		}
	}
	if query == "" {
		m.err = i18n.T("customers.error.empty_email")
		return nil
	}
	m.query, m.err = query, ""
	return func() tea.Msg {
		c, err := b.CustomerByEmail(ctx, query)
		return customerFoundMsg{customer: c, err: err}
	}
}

func (m *customersModel) toggle() tea.Cmd {
	if m.customer == nil {
		return nil
	}
	ctx, b := m.ctx, m.backend
	c := *m.customer
	return func() tea.Msg {
		status, changed, err := b.ToggleBlocked(ctx, &c)
		return customerToggledMsg{id: c.ID, status: status, changed: changed, err: err}
	}
}

func (m *customersModel) showCustomer(c *model.Customer) {
	m.customer = c
	if c == nil {
		m.table.SetRows(nil)
		return
	}
	m.table.SetRows([]table.Row{{
		strconv.FormatInt(c.ID, 10),
		c.FullName(),
		c.Email,
		c.City,
		string(c.Status),
	}})
}

func (m *customersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case customerFoundMsg:
		if msg.err != nil {
			m.showCustomer(nil)
			if errors.Is(msg.err, db.ErrNotFound) {
				m.err = i18n.T("customers.not_found")
			} else {
				m.err = describeError(msg.err)
			}
			return m, nil
		}
		m.showCustomer(msg.customer)
		m.input.Blur()
		return m, nil
	case customerToggledMsg:
		if msg.err != nil {
			m.err = describeError(msg.err)
			return m, nil
		}
		if !msg.changed {
			m.err = i18n.T("customers.error.update_failed")
			return m, nil
		}
		logging.Infof("customer %d status changed to %s", msg.id, msg.status)
		m.status = i18n.T("customers.status_changed", msg.id, string(msg.status))
		return m, m.search(m.query)
	case tea.KeyMsg:
		if m.input.Focused() {
			switch msg.String() {
			case "esc":
				return m, backToMenu
			case "tab", "shift+tab":
				if m.mode == searchByID {
					m.mode = searchByEmail
				} else {
					m.mode = searchByID
				}
				m.input.SetValue("")
				m.setPrompt()
				m.err = ""
				return m, nil
			case "enter":
				m.status = ""
				return m, m.search(m.input.Value())
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "esc", "q":
			return m, backToMenu
		case "/", "s":
			m.status = ""
			return m, m.input.Focus()
		case "b":
			m.status = ""
			return m, m.toggle()
		case "y":
			if m.customer != nil {
				line, ok := copyToClipboard(m.customer.Email)
				if ok {
					m.status, m.err = line, ""
				} else {
					m.err = line
				}
			}
			return m, nil
		}
	}
	return m, nil
}

func (m *customersModel) View() string {
	items := []string{titleStyle.Render(i18n.T("customers.title")), m.input.View()}
	if m.customer != nil {
		items = append(items, "", m.table.View())
		action := i18n.T("customers.action.block")
		if m.customer.Status == model.StatusBlocked {
			action = i18n.T("customers.action.unblock")
		}
		items = append(items, specialStyle.Render(action))
	}
	if m.status != "" {
		items = append(items, "", successStyle.Render(m.status))
	}
	if m.err != "" {
		items = append(items, "", errorStyle.Render(m.err))
	}
	help := i18n.T("customers.help.input")
	if !m.input.Focused() {
		help = i18n.T("customers.help.result")
	}
	items = append(items, "", helpStyle.Render(help))
	return lipgloss.JoinVertical(lipgloss.Left, items...)
}
