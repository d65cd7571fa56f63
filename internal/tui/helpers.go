// Copyright (c) 2026 BuyPy Team
// BuyPy Backoffice - shop administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"errors"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/buypy/backoffice/internal/db"
	"github.com/buypy/backoffice/internal/i18n"
	"github.com/buypy/backoffice/internal/logging"
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// copyToClipboard copies text and returns the status line to show.
func copyToClipboard(text string) (string, bool) {
	if err := writeClipboard(text); err != nil {
		logging.Warnf("clipboard: %v", err)
		return i18n.T("clipboard.failed", err.Error()), false
	}
	return i18n.T("clipboard.copied", text), true
}

func backToMenu() tea.Msg { return backToMenuMsg{} }

// describeError turns a backend error into a line for the operator.
func describeError(err error) string {
	switch {
	case errors.Is(err, db.ErrNotFound):
		return i18n.T("error.not_found")
	case errors.Is(err, db.ErrDuplicate):
		return i18n.T("error.duplicate")
	case errors.Is(err, db.ErrUnsupported):
		return i18n.T("error.unsupported")
	case errors.Is(err, db.ErrAccessDenied):
		return i18n.T("error.access_denied")
	default:
		return i18n.T("error.database", err.Error())
	}
}

// clampHeight keeps tables usable on small terminals.
func clampHeight(h, min int) int {
	if h < min {
		return min
	}
	return h
}
