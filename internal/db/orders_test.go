// Copyright (c) 2026 BuyPy Team
// BuyPy Backoffice - shop administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
)

func TestDailyOrders_CallsProcedure(t *testing.T) {
	g, mock := newMockGateway(t)
	placed := time.Date(2024, 5, 1, 14, 30, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"order_id", "customer_id", "card_holder_name", "order_datetime", "status", "extra"}).
		AddRow(int64(11), int64(2), "RUI COSTA", placed, "open", "ignored").
		AddRow(int64(12), int64(1), "ANA SILVA", placed.Add(time.Hour), "shipped", "ignored")
	mock.ExpectQuery(regexp.QuoteMeta("CALL DailyOrders('2024-05-01')")).WillReturnRows(rows)

	orders, err := g.DailyOrders(context.Background(), placed)
	if err != nil {
		t.Fatalf("DailyOrders: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	if orders[0].ID != 11 || orders[0].CardHolderName != "RUI COSTA" || !orders[0].OrderedAt.Equal(placed) {
		t.Fatalf("unexpected order: %+v", orders[0])
	}
	expectationsMet(t, mock)
}

func TestDailyOrders_Empty(t *testing.T) {
	g, mock := newMockGateway(t)
	mock.ExpectQuery(`CALL DailyOrders`).WillReturnRows(sqlmock.NewRows([]string{"order_id"}))

	orders, err := g.DailyOrders(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("DailyOrders: %v", err)
	}
	if len(orders) != 0 {
		t.Fatalf("expected no orders, got %+v", orders)
	}
}

func TestOrder_MasksCardNumber(t *testing.T) {
	g, mock := newMockGateway(t)
	placed := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"order_id", "customer_id", "order_datetime", "status", "shipping_method",
		"card_holder_name", "card_number", "first_name", "last_name", "email",
	}).AddRow(int64(11), int64(2), placed, "open", "regular", "RUI COSTA", "4111111111111234", "Rui", "Costa", "rui@example.com")
	mock.ExpectQuery("FROM `Order` o JOIN Customer c ON o\\.customer_id = c\\.customer_id WHERE o\\.order_id = 11").WillReturnRows(rows)

	o, err := g.Order(context.Background(), 11)
	if err != nil {
		t.Fatalf("Order: %v", err)
	}
	if o.CardLast4 != "1234" {
		t.Fatalf("CardLast4 = %q", o.CardLast4)
	}
	if o.Payment() != "RUI COSTA (****1234)" || o.CustomerName() != "Rui Costa (rui@example.com)" {
		t.Fatalf("unexpected display: %q / %q", o.Payment(), o.CustomerName())
	}
	if o.ShippingMethod != "regular" || !o.OrderedAt.Equal(placed) {
		t.Fatalf("unexpected order: %+v", o)
	}
	expectationsMet(t, mock)
}

func TestOrder_NotFound(t *testing.T) {
	g, mock := newMockGateway(t)
	mock.ExpectQuery("FROM `Order`").WillReturnRows(sqlmock.NewRows([]string{"order_id"}))

	if _, err := g.Order(context.Background(), 404); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOrderTotal_ReadsProcedureResultSet(t *testing.T) {
	g, mock := newMockGateway(t)
	mock.ExpectQuery(regexp.QuoteMeta("CALL GetOrderTotal(9, @order_total)")).
		WillReturnRows(sqlmock.NewRows([]string{"order_total", "currency"}).AddRow("123.45", "EUR"))

	total, err := g.OrderTotal(context.Background(), 9)
	if err != nil {
		t.Fatalf("OrderTotal: %v", err)
	}
	if !total.Equal(decimal.RequireFromString("123.45")) {
		t.Fatalf("total = %s", total)
	}
	expectationsMet(t, mock)
}

func TestOrderTotal_FallsBackToSessionVariable(t *testing.T) {
	g, mock := newMockGateway(t)
	mock.ExpectQuery(regexp.QuoteMeta("CALL GetOrderTotal(9, @order_total)")).
		WillReturnRows(sqlmock.NewRows([]string{"order_total"}))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT @order_total")).
		WillReturnRows(sqlmock.NewRows([]string{"@order_total"}).AddRow("88.10"))

	total, err := g.OrderTotal(context.Background(), 9)
	if err != nil {
		t.Fatalf("OrderTotal: %v", err)
	}
	if !total.Equal(decimal.RequireFromString("88.10")) {
		t.Fatalf("total = %s", total)
	}
	expectationsMet(t, mock)
}

func TestOrderTotal_NullIsNotFound(t *testing.T) {
	g, mock := newMockGateway(t)
	mock.ExpectQuery(`CALL GetOrderTotal`).WillReturnRows(sqlmock.NewRows([]string{"order_total"}))
	mock.ExpectQuery(`SELECT @order_total`).WillReturnRows(sqlmock.NewRows([]string{"@order_total"}).AddRow(nil))

	if _, err := g.OrderTotal(context.Background(), 404); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestOrderTotal_NullRowIsNotFound(t *testing.T) {
	g, mock := newMockGateway(t)
	mock.ExpectQuery(`CALL GetOrderTotal`).WillReturnRows(sqlmock.NewRows([]string{"order_total"}).AddRow(nil))

	if _, err := g.OrderTotal(context.Background(), 405); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestOrderTotal_ProcedureError(t *testing.T) {
	g, mock := newMockGateway(t)
	mock.ExpectQuery(`CALL GetOrderTotal`).WillReturnError(errors.New("PROCEDURE BuyPay.GetOrderTotal does not exist"))

	if _, err := g.OrderTotal(context.Background(), 1); err == nil {
		t.Fatal("expected error")
	}
	expectationsMet(t, mock)
}

func TestOrderItems(t *testing.T) {
	g, mock := newMockGateway(t)
	rows := sqlmock.NewRows([]string{"product_id", "quantity", "price", "description"}).
		AddRow(int64(1), int64(2), "19.99", "Clean Code").
		AddRow(int64(2), int64(1), "599.00", "Acme X1")
	mock.ExpectQuery(`FROM Ordered_Item oi .* WHERE oi\.order_id = 11`).WillReturnRows(rows)

	items, err := g.OrderItems(context.Background(), 11)
	if err != nil {
		t.Fatalf("OrderItems: %v", err)
	}
	if len(items) != 2 || items[0].Description != "Clean Code" || items[0].Quantity != 2 {
		t.Fatalf("unexpected items: %+v", items)
	}
	if !items[1].Price.Equal(decimal.NewFromInt(599)) {
		t.Fatalf("price = %s", items[1].Price)
	}
	expectationsMet(t, mock)
}
