// Copyright (c) 2026 BuyPy Team
// BuyPy Backoffice - shop administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/buypy/backoffice/internal/i18n"
	"github.com/buypy/backoffice/internal/model"
)

var productTypes = []model.ProductType{model.ProductAll, model.ProductBook, model.ProductElectronics}

type productsLoadedMsg struct {
	products []model.ProductSummary
	err      error
}

const (
	filterMinQty = iota
	filterMaxQty
	filterMinPrice
	filterMaxPrice
)

// productsModel is the filter form plus the product table.
// Focus order: type selector, the four bounds, search button, table.
type productsModel struct {
	ctx        context.Context
	backend    Backend
	typeIndex  int
	inputs     []textinput.Model
	focusIndex int
	table      table.Model
	products   []model.ProductSummary
	searched   bool
	err        string
}

func newProductsModel(ctx context.Context, b Backend) *productsModel {
	m := &productsModel{ctx: ctx, backend: b, inputs: make([]textinput.Model, 4)}
	prompts := []string{"products.filter.min_qty", "products.filter.max_qty", "products.filter.min_price", "products.filter.max_price"}
	for i := range m.inputs {
		t := textinput.New()
		t.Cursor.Style = focusedStyle
		t.CharLimit = 12
		t.Width = 12
		t.Prompt = fmt.Sprintf("%-12s ", i18n.T(prompts[i]))
		t.Placeholder = "0"
		m.inputs[i] = t
	}
	m.table = newTable([]table.Column{
		{Title: i18n.T("products.header.id"), Width: 8},
		{Title: i18n.T("products.header.type"), Width: 12},
		{Title: i18n.T("products.header.description"), Width: 36},
		{Title: i18n.T("products.header.price"), Width: 12},
		{Title: i18n.T("products.header.quantity"), Width: 8},
	}, 10)
	m.table.Blur()
	return m
}

func (m *productsModel) Init() tea.Cmd { return nil }

func (m *productsModel) buttonIndex() int { return len(m.inputs) + 1 }
func (m *productsModel) tableIndex() int  { return len(m.inputs) + 2 }

func (m *productsModel) lastIndex() int {
	if len(m.products) > 0 {
		return m.tableIndex()
	}
	return m.buttonIndex()
}

func (m *productsModel) setFocus(i int) tea.Cmd {
	m.focusIndex = i
	var cmd tea.Cmd
	for j := range m.inputs {
		if j+1 == i {
			cmd = m.inputs[j].Focus()
			m.inputs[j].TextStyle = focusedStyle
			continue
		}
		m.inputs[j].Blur()
		m.inputs[j].TextStyle = lipgloss.NewStyle()
	}
	if i == m.tableIndex() {
		m.table.Focus()
	} else {
		m.table.Blur()
	}
	return cmd
}

// parseProductFilter turns the form values into a filter. Empty bounds and
// zero bounds are not applied.
func parseProductFilter(t model.ProductType, minQty, maxQty, minPrice, maxPrice string) (model.ProductFilter, error) {
	f := model.ProductFilter{Type: t}
	var err error
	if f.MinQty, err = parseBound(minQty); err != nil {
		return f, err
	}
	if f.MaxQty, err = parseBound(maxQty); err != nil {
		return f, err
	}
	if f.MinPrice, err = parsePriceBound(minPrice); err != nil {
		return f, err
	}
	if f.MaxPrice, err = parsePriceBound(maxPrice); err != nil {
		return f, err
	}
	return f, nil
}

func parseBound(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, errors.New(i18n.T("products.error.quantity", s))
	}
	return n, nil
}

func parsePriceBound(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.Replace(s, ",", ".", 1))
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero, errors.New(i18n.T("products.error.price", s))
	}
	return d, nil
}

func (m *productsModel) search() tea.Cmd {
	f, err := parseProductFilter(productTypes[m.typeIndex],
		m.inputs[filterMinQty].Value(), m.inputs[filterMaxQty].Value(),
		m.inputs[filterMinPrice].Value(), m.inputs[filterMaxPrice].Value())
	if err != nil {
		m.err = err.Error()
		return nil
	}
	m.err = ""
	ctx, b := m.ctx, m.backend
	return func() tea.Msg {
		ps, err := b.Products(ctx, f)
		return productsLoadedMsg{products: ps, err: err}
	}
}

func (m *productsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetHeight(clampHeight(msg.Height-20, 5))
		return m, nil
	case productsLoadedMsg:
		m.searched = true
		if msg.err != nil {
			m.err = describeError(msg.err)
			return m, nil
		}
		m.products = msg.products
		rows := make([]table.Row, 0, len(msg.products))
		for _, p := range msg.products {
			rows = append(rows, table.Row{
				strconv.FormatInt(p.ID, 10),
				p.Type.String(),
				p.Description,
				p.Price.StringFixed(2),
				strconv.Itoa(p.Quantity),
			})
		}
		m.table.SetRows(rows)
		m.table.GotoTop()
		return m, nil
	case tea.KeyMsg:
		s := msg.String()
		switch s {
		case "esc":
			return m, backToMenu
		case "tab", "shift+tab":
			i := m.focusIndex + 1
			if s == "shift+tab" {
				i = m.focusIndex - 1
			}
			if i > m.lastIndex() {
				i = 0
			} else if i < 0 {
				i = m.lastIndex()
			}
			return m, m.setFocus(i)
		case "enter":
			if m.focusIndex == m.tableIndex() {
				return m, nil
			}
			return m, m.search()
		}
		if m.focusIndex == 0 {
			switch s {
			case "left", "h":
				m.typeIndex = (m.typeIndex - 1 + len(productTypes)) % len(productTypes)
			case "right", "l", " ":
				m.typeIndex = (m.typeIndex + 1) % len(productTypes)
			case "down":
				return m, m.setFocus(1)
			}
			return m, nil
		}
		if m.focusIndex == m.tableIndex() {
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}
		switch s {
		case "up":
			return m, m.setFocus(m.focusIndex - 1)
		case "down":
			if m.focusIndex < m.buttonIndex() {
				return m, m.setFocus(m.focusIndex + 1)
			}
			return m, nil
		}
	}

	if i := m.focusIndex - 1; i >= 0 && i < len(m.inputs) {
		var cmd tea.Cmd
		m.inputs[i], cmd = m.inputs[i].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *productsModel) View() string {
	typeLine := fmt.Sprintf("%-12s ‹ %s ›", i18n.T("products.filter.type"), productTypes[m.typeIndex])
	if m.focusIndex == 0 {
		typeLine = formSelectedItemStyle.Render(typeLine)
	}
	items := []string{titleStyle.Render(i18n.T("products.title")), typeLine}
	for i := range m.inputs {
		items = append(items, m.inputs[i].View())
	}
	button := formItemStyle.Render(i18n.T("products.search"))
	if m.focusIndex == m.buttonIndex() {
		button = formSelectedItemStyle.Render(i18n.T("products.search"))
	}
	items = append(items, "", button, "")
	switch {
	case len(m.products) > 0:
		items = append(items, m.table.View(), helpStyle.Render(i18n.T("products.count", len(m.products))))
	case m.searched && m.err == "":
		items = append(items, helpStyle.Render(i18n.T("products.empty")))
	}
	if m.err != "" {
		items = append(items, "", errorStyle.Render(m.err))
	}
	items = append(items, "", helpStyle.Render(i18n.T("products.help")))
	return lipgloss.JoinVertical(lipgloss.Left, items...)
}
