// Copyright (c) 2026 BuyPy Team
// BuyPy Backoffice - shop administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/buypy/backoffice/internal/db"
	"github.com/buypy/backoffice/internal/model"
)

func sampleCustomer() *model.Customer {
	return &model.Customer{
		FirstName:  "Ana",
		LastName:   "Silva",
		Email:      "ana@example.com",
		City:       "Lisboa",
		PostalCode: "1000-001",
		Status:     model.StatusActive,
	}
}

func TestCustomers_Validation(t *testing.T) {
	m := newCustomersModel(context.Background(), &fakeBackend{})

	if _, cmd := m.Update(key("enter")); cmd != nil || m.err != "Please enter a valid user ID" {
		t.Fatalf("empty id: cmd=%v err=%q", cmd != nil, m.err)
	}

	m.input.SetValue("abc")
	if _, cmd := m.Update(key("enter")); cmd != nil || m.err != "User ID must be a number" {
		t.Fatalf("non-numeric id: cmd=%v err=%q", cmd != nil, m.err)
	}

	m.Update(key("tab"))
	if m.mode != searchByEmail {
		t.Fatalf("expected tab to switch to email search")
	}
	if m.input.Value() != "" {
		t.Fatalf("expected the input to be cleared when switching mode")
	}
	if _, cmd := m.Update(key("enter")); cmd != nil || m.err != "Please enter a username" {
		t.Fatalf("empty email: cmd=%v err=%q", cmd != nil, m.err)
	}
}

func TestCustomers_SearchByIDAndToggle(t *testing.T) {
	fb := &fakeBackend{customer: sampleCustomer(), toggleTo: model.StatusBlocked, toggleChanged: true}
	m := newCustomersModel(context.Background(), fb)
	m.input.SetValue("42")

	_, cmd := m.Update(key("enter"))
	m.Update(run(t, cmd))
	if m.customer == nil || m.customer.ID != 42 {
		t.Fatalf("expected customer 42, got %#v", m.customer)
	}
	if m.input.Focused() {
		t.Fatalf("expected input to be blurred after a hit")
	}
	if rows := m.table.Rows(); len(rows) != 1 || rows[0][1] != "Ana Silva" {
		t.Fatalf("unexpected rows %v", rows)
	}

	_, cmd = m.Update(key("b"))
	msg := run(t, cmd)
	if len(fb.toggled) != 1 || fb.toggled[0] != 42 {
		t.Fatalf("expected toggle for 42, got %v", fb.toggled)
	}
	_, cmd = m.Update(msg)
	if m.status != "User 42 status changed to blocked" {
		t.Fatalf("unexpected status %q", m.status)
	}
	if _, ok := run(t, cmd).(customerFoundMsg); !ok {
		t.Fatalf("expected the customer to be reloaded")
	}
}

func TestCustomers_ToggleUnchanged(t *testing.T) {
	m := newCustomersModel(context.Background(), &fakeBackend{})
	m.Update(customerToggledMsg{id: 1, changed: false})
	if m.err != "Failed to update user status" {
		t.Fatalf("unexpected error %q", m.err)
	}
	m.Update(customerToggledMsg{id: 1, err: db.ErrAccessDenied})
	if m.err != "Access denied for this operator" {
		t.Fatalf("unexpected error %q", m.err)
	}
}

func TestCustomers_NotFound(t *testing.T) {
	fb := &fakeBackend{customerErr: db.ErrNotFound}
	m := newCustomersModel(context.Background(), fb)
	m.Update(key("tab"))
	m.input.SetValue("nobody@example.com")
	_, cmd := m.Update(key("enter"))
	m.Update(run(t, cmd))
	if m.customer != nil {
		t.Fatalf("expected no customer")
	}
	if m.err != "No users found matching the criteria" {
		t.Fatalf("unexpected error %q", m.err)
	}
	if !m.input.Focused() {
		t.Fatalf("expected the input to keep focus")
	}
}

func TestCustomers_CopyEmail(t *testing.T) {
	got := stubClipboard(t, nil)
	m := newCustomersModel(context.Background(), &fakeBackend{})
	m.Update(customerFoundMsg{customer: sampleCustomer()})

	m.Update(key("y"))
	if len(*got) != 1 || (*got)[0] != "ana@example.com" {
		t.Fatalf("unexpected clipboard writes %v", *got)
	}
	if !strings.Contains(m.status, "ana@example.com") {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestCustomers_CopyFailureIsShown(t *testing.T) {
	stubClipboard(t, errors.New("no display"))
	m := newCustomersModel(context.Background(), &fakeBackend{})
	m.Update(customerFoundMsg{customer: sampleCustomer()})
	m.Update(key("y"))
	if !strings.Contains(m.err, "no display") {
		t.Fatalf("unexpected error %q", m.err)
	}
}

func TestCustomers_BackAndRefocus(t *testing.T) {
	m := newCustomersModel(context.Background(), &fakeBackend{})
	m.Update(customerFoundMsg{customer: sampleCustomer()})
	if !strings.Contains(m.View(), "b: Block") {
		t.Fatalf("expected block action in view")
	}

	m.Update(key("/"))
	if !m.input.Focused() {
		t.Fatalf("expected / to refocus the input")
	}
	_, cmd := m.Update(key("esc"))
	if _, ok := run(t, cmd).(backToMenuMsg); !ok {
		t.Fatalf("expected backToMenuMsg")
	}
}

func TestBlocked_LoadAndUnblock(t *testing.T) {
	fb := &fakeBackend{
		blocked: []model.Customer{
			{ID: 5, FirstName: "Rui", Email: "rui@example.com", Status: model.StatusBlocked},
			{ID: 9, FirstName: "Eva", Email: "eva@example.com", Status: model.StatusBlocked},
		},
		statusOK: true,
	}
	m := newBlockedModel(context.Background(), fb)
	if !strings.Contains(m.View(), "Loading") {
		t.Fatalf("expected loading view before the first result")
	}
	m.Update(run(t, m.Init()))
	if len(m.table.Rows()) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(m.table.Rows()))
	}

	_, cmd := m.Update(key("u"))
	msg := run(t, cmd)
	if len(fb.statusIDs) != 1 || fb.statusIDs[0] != 5 || fb.statusCalls[0] != model.StatusActive {
		t.Fatalf("unexpected status calls %v %v", fb.statusIDs, fb.statusCalls)
	}
	_, cmd = m.Update(msg)
	if m.status != "User 5 unblocked" {
		t.Fatalf("unexpected status %q", m.status)
	}
	if _, ok := run(t, cmd).(blockedLoadedMsg); !ok {
		t.Fatalf("expected a reload after unblocking")
	}
}

func TestBlocked_EmptyAndErrors(t *testing.T) {
	m := newBlockedModel(context.Background(), &fakeBackend{})
	m.Update(blockedLoadedMsg{})
	if !strings.Contains(m.View(), "No blocked users") {
		t.Fatalf("expected empty message, got %q", m.View())
	}
	if _, cmd := m.Update(key("u")); cmd != nil {
		t.Fatalf("expected no command without a selection")
	}

	m.Update(blockedLoadedMsg{err: db.ErrUnsupported})
	if m.err != "This operation needs the MySQL shop database" {
		t.Fatalf("unexpected error %q", m.err)
	}

	m.Update(unblockedMsg{id: 3})
	if m.err != "Failed to update user status" {
		t.Fatalf("unexpected error %q", m.err)
	}

	var cmd tea.Cmd
	_, cmd = m.Update(key("r"))
	if _, ok := run(t, cmd).(blockedLoadedMsg); !ok {
		t.Fatalf("expected r to reload")
	}
}
