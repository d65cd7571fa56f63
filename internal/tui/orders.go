// Copyright (c) 2026 BuyPy Team
// BuyPy Backoffice - shop administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/buypy/backoffice/internal/i18n"
	"github.com/buypy/backoffice/internal/model"
)

type ordersLoadedMsg struct {
	day    time.Time
	orders []model.OrderSummary
	err    error
}

type orderDetailMsg struct {
	order *model.OrderDetail
	total decimal.Decimal
	items []model.OrderItem
	err   error
}

// ordersModel lists the orders of one day and shows the details of one.
type ordersModel struct {
	ctx     context.Context
	backend Backend
	input   textinput.Model
	table   table.Model
	orders  []model.OrderSummary
	day     time.Time
	loaded  bool

	detail     *model.OrderDetail
	total      decimal.Decimal
	items      table.Model
	itemsCount int

	status string
	err    string
}

func newOrdersModel(ctx context.Context, b Backend, today time.Time) *ordersModel {
	ti := textinput.New()
	ti.Cursor.Style = focusedStyle
	ti.CharLimit = 10
	ti.Width = 12
	ti.Prompt = i18n.T("orders.prompt.date") + " "
	ti.Placeholder = dateLayout
	ti.SetValue(today.Format(dateLayout))
	ti.Focus()

	m := &ordersModel{ctx: ctx, backend: b, input: ti}
	m.table = newTable([]table.Column{
		{Title: i18n.T("orders.header.id"), Width: 10},
		{Title: i18n.T("orders.header.customer"), Width: 32},
		{Title: i18n.T("orders.header.date"), Width: 18},
		{Title: i18n.T("orders.header.status"), Width: 12},
	}, 10)
	m.items = newTable([]table.Column{
		{Title: i18n.T("orders.items.product"), Width: 10},
		{Title: i18n.T("orders.items.description"), Width: 36},
		{Title: i18n.T("orders.items.quantity"), Width: 8},
		{Title: i18n.T("orders.items.price"), Width: 14},
	}, 8)
	return m
}

// Init loads today's orders right away.
func (m *ordersModel) Init() tea.Cmd {
	return m.search()
}

func (m *ordersModel) search() tea.Cmd {
	day, err := time.ParseInLocation(dateLayout, strings.TrimSpace(m.input.Value()), time.Local)
	if err != nil {
		m.err = i18n.T("orders.error.date")
		return nil
	}
	m.err, m.status = "", ""
	ctx, b := m.ctx, m.backend
	return func() tea.Msg {
		orders, err := b.DailyOrders(ctx, day)
		return ordersLoadedMsg{day: day, orders: orders, err: err}
	}
}

func (m *ordersModel) selected() *model.OrderSummary {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.orders) {
		return nil
	}
	return &m.orders[i]
}

func loadOrderDetail(ctx context.Context, b Backend, id int64) tea.Cmd {
	return func() tea.Msg {
		o, err := b.Order(ctx, id)
		if err != nil {
			return orderDetailMsg{err: err}
		}
		total, err := b.OrderTotal(ctx, id)
		if err != nil {
			return orderDetailMsg{err: err}
		}
		items, err := b.OrderItems(ctx, id)
		if err != nil {
			return orderDetailMsg{err: err}
		}
		return orderDetailMsg{order: o, total: total, items: items}
	}
}

func (m *ordersModel) copyID(id int64) {
	line, ok := copyToClipboard(strconv.FormatInt(id, 10))
	if ok {
		m.status, m.err = line, ""
	} else {
		m.err = line
	}
}

func (m *ordersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetHeight(clampHeight(msg.Height-14, 5))
		m.items.SetHeight(clampHeight(msg.Height-22, 4))
		return m, nil
	case ordersLoadedMsg:
		m.loaded = true
		m.day = msg.day
		if msg.err != nil {
			m.orders = nil
			m.table.SetRows(nil)
			m.err = describeError(msg.err)
			return m, nil
		}
		m.orders = msg.orders
		rows := make([]table.Row, 0, len(msg.orders))
		for _, o := range msg.orders {
			rows = append(rows, table.Row{
				strconv.FormatInt(o.ID, 10),
				fmt.Sprintf("%d - %s", o.CustomerID, o.CardHolderName),
				o.OrderedAt.Format("2006-01-02 15:04"),
				o.Status,
			})
		}
		m.table.SetRows(rows)
		m.table.GotoTop()
		if len(rows) > 0 {
			m.input.Blur()
		}
		return m, nil
	case orderDetailMsg:
		if msg.err != nil {
			m.err = describeError(msg.err)
			return m, nil
		}
		m.detail = msg.order
		m.total = msg.total
		m.itemsCount = len(msg.items)
		rows := make([]table.Row, 0, len(msg.items))
		for _, it := range msg.items {
			rows = append(rows, table.Row{
				strconv.FormatInt(it.ProductID, 10),
				it.Description,
				strconv.Itoa(it.Quantity),
				model.FormatEuro(it.Price),
			})
		}
		m.items.SetRows(rows)
		m.items.GotoTop()
		return m, nil
	case tea.KeyMsg:
		if m.detail != nil {
			return m.updateDetail(msg)
		}
		if m.input.Focused() {
			switch msg.String() {
			case "esc":
				return m, backToMenu
			case "enter":
				return m, m.search()
			case "tab", "down":
				if len(m.orders) > 0 {
					m.input.Blur()
				}
				return m, nil
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "esc", "q":
			return m, backToMenu
		case "tab", "/":
			return m, m.input.Focus()
		case "r":
			return m, m.search()
		case "y":
			if o := m.selected(); o != nil {
				m.copyID(o.ID)
			}
			return m, nil
		case "enter":
			if o := m.selected(); o != nil {
				m.status = ""
				return m, loadOrderDetail(m.ctx, m.backend, o.ID)
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *ordersModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "backspace":
		m.detail = nil
		m.status = ""
		return m, nil
	case "y":
		m.copyID(m.detail.ID)
		return m, nil
	}
	var cmd tea.Cmd
	m.items, cmd = m.items.Update(msg)
	return m, cmd
}

func (m *ordersModel) detailView() string {
	o := m.detail
	rows := [][2]string{
		{i18n.T("orders.detail.id"), strconv.FormatInt(o.ID, 10)},
		{i18n.T("orders.detail.customer"), o.CustomerName()},
		{i18n.T("orders.detail.date"), o.OrderedAt.Format("2006-01-02 15:04:05")},
		{i18n.T("orders.detail.status"), o.Status},
		{i18n.T("orders.detail.shipping"), o.ShippingMethod},
		{i18n.T("orders.detail.payment"), o.Payment()},
		{i18n.T("orders.detail.total"), model.FormatEuro(m.total)},
	}
	var b strings.Builder
	for i, r := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("%-16s %s", r[0]+":", r[1]))
	}
	items := []string{
		titleStyle.Render(i18n.T("orders.detail.title", o.ID)),
		infoBoxStyle.Render(b.String()),
		"",
	}
	if m.itemsCount == 0 {
		items = append(items, helpStyle.Render(i18n.T("orders.items.empty")))
	} else {
		items = append(items, m.items.View())
	}
	if m.status != "" {
		items = append(items, "", successStyle.Render(m.status))
	}
	if m.err != "" {
		items = append(items, "", errorStyle.Render(m.err))
	}
	items = append(items, "", helpStyle.Render(i18n.T("orders.detail.help")))
	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

func (m *ordersModel) View() string {
	if m.detail != nil {
		return m.detailView()
	}
	items := []string{titleStyle.Render(i18n.T("orders.title")), m.input.View(), ""}
	switch {
	case !m.loaded:
		items = append(items, helpStyle.Render(i18n.T("app.loading")))
	case len(m.orders) == 0 && m.err == "":
		items = append(items, helpStyle.Render(i18n.T("orders.empty", m.day.Format(dateLayout))))
	case len(m.orders) > 0:
		items = append(items, m.table.View())
	}
	if m.status != "" {
		items = append(items, "", successStyle.Render(m.status))
	}
	if m.err != "" {
		items = append(items, "", errorStyle.Render(m.err))
	}
	help := i18n.T("orders.help.input")
	if !m.input.Focused() {
		help = i18n.T("orders.help.table")
	}
	items = append(items, "", helpStyle.Render(help))
	return lipgloss.JoinVertical(lipgloss.Left, items...)
}
