// Copyright (c) 2026 BuyPy Team
// BuyPy Backoffice - shop administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/buypy/backoffice/internal/model"
)

func TestCustomerByID_Sqlite(t *testing.T) {
	g := newSqliteGateway(t)
	c, err := g.CustomerByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("CustomerByID: %v", err)
	}
	if c.Email != "ana@example.com" || c.FullName() != "Ana Silva" || c.Status != model.StatusActive {
		t.Fatalf("unexpected customer: %+v", c)
	}
	if c.City != "Lisboa" || c.PostalCode != "1000-001" || c.Country != "PT" {
		t.Fatalf("address fields not scanned: %+v", c)
	}
}

func TestCustomerByID_NotFound(t *testing.T) {
	g := newSqliteGateway(t)
	_, err := g.CustomerByID(context.Background(), 999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCustomerByEmail_Sqlite(t *testing.T) {
	g := newSqliteGateway(t)
	c, err := g.CustomerByEmail(context.Background(), "  rui@example.com ")
	if err != nil {
		t.Fatalf("CustomerByEmail: %v", err)
	}
	if c.ID != 2 || c.Status != model.StatusBlocked {
		t.Fatalf("unexpected customer: %+v", c)
	}
	if _, err := g.CustomerByEmail(context.Background(), "nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSetCustomerStatus_Sqlite(t *testing.T) {
	g := newSqliteGateway(t)
	ctx := context.Background()

	changed, err := g.SetCustomerStatus(ctx, 3, model.StatusBlocked)
	if err != nil || !changed {
		t.Fatalf("SetCustomerStatus = %v, %v", changed, err)
	}
	c, err := g.CustomerByID(ctx, 3)
	if err != nil {
		t.Fatalf("CustomerByID: %v", err)
	}
	if c.Status != model.StatusBlocked {
		t.Fatalf("status = %s", c.Status)
	}

	changed, err = g.SetCustomerStatus(ctx, 999, model.StatusActive)
	if err != nil || changed {
		t.Fatalf("unknown id: changed=%v err=%v", changed, err)
	}
}

func TestSetCustomerStatus_RejectsUnknownStatusWithoutQuery(t *testing.T) {
	g, mock := newMockGateway(t)
	_, err := g.SetCustomerStatus(context.Background(), 1, model.CustomerStatus("banned"))
	if !errors.Is(err, model.ErrInvalid) {
		t.Fatalf("expected model.ErrInvalid, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestSetCustomerStatus_MySQL(t *testing.T) {
	g, mock := newMockGateway(t)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE Customer SET status = 'blocked' WHERE customer_id = 7")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	changed, err := g.SetCustomerStatus(context.Background(), 7, model.StatusBlocked)
	if err != nil || !changed {
		t.Fatalf("SetCustomerStatus = %v, %v", changed, err)
	}
	expectationsMet(t, mock)
}

func TestToggleBlocked_Sqlite(t *testing.T) {
	g := newSqliteGateway(t)
	ctx := context.Background()

	blocked, err := g.CustomerByID(ctx, 2)
	if err != nil {
		t.Fatalf("CustomerByID: %v", err)
	}
	status, changed, err := g.ToggleBlocked(ctx, blocked)
	if err != nil || !changed || status != model.StatusActive || blocked.Status != model.StatusActive {
		t.Fatalf("unblock: status=%s changed=%v err=%v", status, changed, err)
	}

	inactive, err := g.CustomerByID(ctx, 3)
	if err != nil {
		t.Fatalf("CustomerByID: %v", err)
	}
	status, _, err = g.ToggleBlocked(ctx, inactive)
	if err != nil || status != model.StatusBlocked {
		t.Fatalf("block inactive: status=%s err=%v", status, err)
	}
}

func TestBlockedCustomers_Sqlite(t *testing.T) {
	g := newSqliteGateway(t)
	ctx := context.Background()

	list, err := g.BlockedCustomers(ctx)
	if err != nil {
		t.Fatalf("BlockedCustomers: %v", err)
	}
	if len(list) != 1 || list[0].ID != 2 || list[0].City != "Porto" {
		t.Fatalf("unexpected blocked list: %+v", list)
	}

	if _, err := g.SetCustomerStatus(ctx, 2, model.StatusActive); err != nil {
		t.Fatalf("unblock: %v", err)
	}
	list, err = g.BlockedCustomers(ctx)
	if err != nil {
		t.Fatalf("BlockedCustomers: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %+v", list)
	}
}
