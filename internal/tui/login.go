// Copyright (c) 2026 BuyPy Team
// BuyPy Backoffice - shop administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/buypy/backoffice/internal/i18n"
	"github.com/buypy/backoffice/internal/security"
	"github.com/buypy/backoffice/internal/session"
)

// loginCancelledMsg is sent when the operator leaves the login form.
type loginCancelledMsg struct{}

const (
	loginUser = iota
	loginPassword
)

// loginModel asks for the database username and password. The form stays on
// screen after a failed attempt so the operator can retry.
type loginModel struct {
	ctx        context.Context
	auth       Authenticator
	inputs     []textinput.Model
	focusIndex int
	busy       bool
	err        string
}

func newLoginModel(ctx context.Context, auth Authenticator) loginModel {
	m := loginModel{ctx: ctx, auth: auth, inputs: make([]textinput.Model, 2)}
	for i := range m.inputs {
		t := textinput.New()
		t.Cursor.Style = focusedStyle
		t.CharLimit = 64
		t.Width = 32
		switch i {
		case loginUser:
			t.Prompt = i18n.T("login.username") + " "
			t.Focus()
			t.TextStyle = focusedStyle
		case loginPassword:
			t.Prompt = i18n.T("login.password") + " "
			t.EchoMode = textinput.EchoPassword
			t.EchoCharacter = '•'
		}
		m.inputs[i] = t
	}
	return m
}

func (m loginModel) Init() tea.Cmd {
	return textinput.Blink
}

// failed records a rejected attempt and clears the password.
func (m loginModel) failed(err error) (loginModel, tea.Cmd) {
	m.busy = false
	switch {
	case errors.Is(err, session.ErrEmptyCredentials):
		m.err = i18n.T("login.error.empty")
	case errors.Is(err, session.ErrLoginFailed):
		m.err = i18n.T("login.error.invalid")
	default:
		m.err = err.Error()
	}
	m.inputs[loginPassword].SetValue("")
	return m, m.focus(loginPassword)
}

func (m *loginModel) focus(i int) tea.Cmd {
	m.focusIndex = i
	var cmd tea.Cmd
	for j := range m.inputs {
		if j == i {
			cmd = m.inputs[j].Focus()
			m.inputs[j].TextStyle = focusedStyle
			continue
		}
		m.inputs[j].Blur()
		m.inputs[j].TextStyle = lipgloss.NewStyle()
	}
	return cmd
}

func (m loginModel) submit() (loginModel, tea.Cmd) {
	username := strings.TrimSpace(m.inputs[loginUser].Value())
	password := security.FromString(m.inputs[loginPassword].Value())
	if username == "" || password.IsEmpty() {
		m.err = i18n.T("login.error.empty")
		return m, nil
	}
	m.busy = true
	m.err = ""
	ctx, auth := m.ctx, m.auth
	return m, func() tea.Msg {
		b, err := auth.Login(ctx, username, password)
		password.Zero()
		return loginResultMsg{backend: b, err: err}
	}
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		if m.busy {
			return m, nil
		}
		switch key.String() {
		case "esc":
			return m, func() tea.Msg { return loginCancelledMsg{} }
		case "enter":
			if m.focusIndex == len(m.inputs) || m.focusIndex == loginPassword {
				return m.submit()
			}
			return m, m.focus(m.focusIndex + 1)
		case "tab", "down":
			return m, m.focus((m.focusIndex + 1) % (len(m.inputs) + 1))
		case "shift+tab", "up":
			i := m.focusIndex - 1
			if i < 0 {
				i = len(m.inputs)
			}
			return m, m.focus(i)
		}
	}

	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return m, tea.Batch(cmds...)
}

func (m loginModel) View() string {
	items := []string{titleStyle.Render(i18n.T("login.title")), ""}
	for i := range m.inputs {
		items = append(items, m.inputs[i].View())
	}
	button := formItemStyle.Render(i18n.T("login.submit"))
	if m.focusIndex == len(m.inputs) {
		button = formSelectedItemStyle.Render(i18n.T("login.submit"))
	}
	items = append(items, "", button)
	if m.busy {
		items = append(items, "", helpStyle.Render(i18n.T("app.connecting")))
	}
	if m.err != "" {
		items = append(items, "", errorStyle.Render(m.err))
	}
	items = append(items, "", helpStyle.Render(i18n.T("login.help")))
	return lipgloss.JoinVertical(lipgloss.Left, items...)
}
