// Copyright (c) 2026 BuyPy Team
// BuyPy Backoffice - shop administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/buypy/backoffice/internal/i18n"
)

// logoutAction is the menu target that ends the session.
const logoutAction viewState = -1

// openViewMsg asks the router to open a view.
type openViewMsg struct{ target viewState }

type menuItem struct {
	label  string // i18n message id
	target viewState
}

type menuTab struct {
	title string // i18n message id
	items []menuItem
}

// menuModel is the tabbed main menu. Every tab ends with the logout entry.
type menuModel struct {
	tabs   []menuTab
	tab    int
	cursor int
}

func newMenuModel() menuModel {
	return menuModel{
		tabs: []menuTab{
			{title: "menu.tab.users", items: []menuItem{
				{label: "menu.users.search", target: customersView},
				{label: "menu.users.blocked", target: blockedView},
			}},
			{title: "menu.tab.products", items: []menuItem{
				{label: "menu.products.list", target: productsView},
				{label: "menu.products.add", target: productFormView},
			}},
			{title: "menu.tab.orders", items: []menuItem{
				{label: "menu.orders.manage", target: ordersView},
			}},
		},
	}
}

// entries returns the items of the current tab followed by logout.
func (m menuModel) entries() []menuItem {
	items := append([]menuItem(nil), m.tabs[m.tab].items...)
	return append(items, menuItem{label: "menu.logout", target: logoutAction})
}

func (m menuModel) Update(msg tea.Msg) (menuModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "right", "l", "tab":
		m.tab = (m.tab + 1) % len(m.tabs)
		m.cursor = 0
	case "left", "h", "shift+tab":
		m.tab = (m.tab - 1 + len(m.tabs)) % len(m.tabs)
		m.cursor = 0
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.entries())-1 {
			m.cursor++
		}
	case "enter":
		target := m.entries()[m.cursor].target
		return m, func() tea.Msg { return openViewMsg{target: target} }
	}
	return m, nil
}

func (m menuModel) View() string {
	tabs := make([]string, len(m.tabs))
	for i, t := range m.tabs {
		if i == m.tab {
			tabs[i] = activeTabStyle.Render(i18n.T(t.title))
		} else {
			tabs[i] = tabStyle.Render(i18n.T(t.title))
		}
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")
	for i, it := range m.entries() {
		label := i18n.T(it.label)
		if i == m.cursor {
			b.WriteString(selectedItemStyle.Render("» " + label))
		} else {
			b.WriteString(itemStyle.Render("  " + label))
		}
		b.WriteString("\n")
	}
	return b.String()
}
