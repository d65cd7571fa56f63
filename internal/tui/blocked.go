// Copyright (c) 2026 BuyPy Team
// BuyPy Backoffice - shop administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/buypy/backoffice/internal/i18n"
	"github.com/buypy/backoffice/internal/logging"
	"github.com/buypy/backoffice/internal/model"
)

type blockedLoadedMsg struct {
	customers []model.Customer
	err       error
}

type unblockedMsg struct {
	id      int64
	changed bool
	err     error
}

// blockedModel lists blocked customers and unblocks them one at a time.
type blockedModel struct {
	ctx       context.Context
	backend   Backend
	table     table.Model
	customers []model.Customer
	loading   bool
	status    string
	err       string
}

func newBlockedModel(ctx context.Context, b Backend) *blockedModel {
	return &blockedModel{
		ctx:     ctx,
		backend: b,
		loading: true,
		table: newTable([]table.Column{
			{Title: i18n.T("customers.header.id"), Width: 8},
			{Title: i18n.T("customers.header.name"), Width: 24},
			{Title: i18n.T("customers.header.email"), Width: 30},
			{Title: i18n.T("customers.header.city"), Width: 16},
			{Title: i18n.T("customers.header.postal_code"), Width: 10},
		}, 12),
	}
}

func (m *blockedModel) load() tea.Msg {
	cs, err := m.backend.BlockedCustomers(m.ctx)
	return blockedLoadedMsg{customers: cs, err: err}
}

func (m *blockedModel) Init() tea.Cmd { return m.load }

func (m *blockedModel) selected() *model.Customer {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.customers) {
		return nil
	}
	return &m.customers[i]
}

func (m *blockedModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetHeight(clampHeight(msg.Height-12, 5))
		return m, nil
	case blockedLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = describeError(msg.err)
			return m, nil
		}
		m.err = ""
		m.customers = msg.customers
		rows := make([]table.Row, 0, len(msg.customers))
		for _, c := range msg.customers {
			rows = append(rows, table.Row{strconv.FormatInt(c.ID, 10), c.FullName(), c.Email, c.City, c.PostalCode})
		}
		m.table.SetRows(rows)
		if m.table.Cursor() >= len(rows) {
			m.table.GotoTop()
		}
		return m, nil
	case unblockedMsg:
		if msg.err != nil {
			m.err = describeError(msg.err)
			return m, nil
		}
		if !msg.changed {
			m.err = i18n.T("customers.error.update_failed")
			return m, nil
		}
		logging.Infof("customer %d unblocked", msg.id)
		m.status = i18n.T("blocked.unblocked", msg.id)
		m.loading = true
		return m, m.load
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return m, backToMenu
		case "r":
			m.loading = true
			m.status = ""
			return m, m.load
		case "u":
			c := m.selected()
			if c == nil {
				return m, nil
			}
			id, ctx, b := c.ID, m.ctx, m.backend
			m.status = ""
			return m, func() tea.Msg {
				changed, err := b.SetCustomerStatus(ctx, id, model.StatusActive)
				return unblockedMsg{id: id, changed: changed, err: err}
			}
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *blockedModel) View() string {
	items := []string{titleStyle.Render(i18n.T("blocked.title"))}
	switch {
	case m.loading:
		items = append(items, helpStyle.Render(i18n.T("app.loading")))
	case len(m.customers) == 0 && m.err == "":
		items = append(items, helpStyle.Render(i18n.T("blocked.empty")))
	default:
		items = append(items, m.table.View())
	}
	if m.status != "" {
		items = append(items, "", successStyle.Render(m.status))
	}
	if m.err != "" {
		items = append(items, "", errorStyle.Render(m.err))
	}
	items = append(items, "", helpStyle.Render(i18n.T("blocked.help")))
	return lipgloss.JoinVertical(lipgloss.Left, items...)
}
