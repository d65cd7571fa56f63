// Copyright (c) 2026 BuyPy Team
// BuyPy Backoffice - shop administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// AlignFooter returns a single line with left at the start and right flush
// against width. When width is too small a single space separates them.
func AlignFooter(left, right string, width int) string {
	spaces := width - lipgloss.Width(left) - lipgloss.Width(right)
	if spaces < 1 {
		spaces = 1
	}
	return left + strings.Repeat(" ", spaces) + right
}

// statusLine renders the shared footer: key help on the left, the operator
// on the right.
func statusLine(help, operator string, width int) string {
	right := ""
	if operator != "" {
		right = statusMessageStyle.Render(operator)
	}
	if width <= 0 {
		width = 80
	}
	return AlignFooter(helpStyle.Render(help), right, width-4)
}
