// Copyright (c) 2026 BuyPy Team
// BuyPy Backoffice - shop administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/buypy/backoffice/internal/model"
	"github.com/shopspring/decimal"
)

// DayLayout is the date format the DailyOrders procedure expects.
const DayLayout = "2006-01-02"

// DailyOrders returns the orders placed on day, as reported by the
// DailyOrders procedure.
func (g *Gateway) DailyOrders(ctx context.Context, day time.Time) ([]model.OrderSummary, error) {
	if err := g.requireProcedures("DailyOrders"); err != nil {
		return nil, err
	}
	var out []model.OrderSummary
	if err := QueryRawInto(ctx, g.bun, &out, "CALL DailyOrders(?)", day.Format(DayLayout)); err != nil {
		return nil, fmt.Errorf("orders for %s: %w", day.Format(DayLayout), MapDBError(err))
	}
	return out, nil
}

type orderRow struct {
	ID             int64     `bun:"order_id"`
	CustomerID     int64     `bun:"customer_id"`
	OrderedAt      time.Time `bun:"order_datetime"`
	Status         string    `bun:"status"`
	ShippingMethod string    `bun:"shipping_method"`
	CardHolderName string    `bun:"card_holder_name"`
	CardNumber     string    `bun:"card_number"`
	FirstName      string    `bun:"first_name"`
	LastName       string    `bun:"last_name"`
	Email          string    `bun:"email"`
}

// Order returns one order joined with its customer, or ErrNotFound.
func (g *Gateway) Order(ctx context.Context, id int64) (*model.OrderDetail, error) {
	var row orderRow
	q := "SELECT o.order_id, o.customer_id, o.order_datetime, o.status, o.shipping_method, " +
		"o.card_holder_name, o.card_number, c.first_name, c.last_name, c.email " +
		"FROM `Order` o JOIN Customer c ON o.customer_id = c.customer_id WHERE o.order_id = ?"
	if err := QueryRawInto(ctx, g.bun, &row, q, id); err != nil {
		return nil, fmt.Errorf("order %d: %w", id, MapDBError(err))
	}
	return &model.OrderDetail{
		ID:             row.ID,
		CustomerID:     row.CustomerID,
		FirstName:      row.FirstName,
		LastName:       row.LastName,
		Email:          row.Email,
		OrderedAt:      row.OrderedAt,
		Status:         row.Status,
		ShippingMethod: row.ShippingMethod,
		CardHolderName: row.CardHolderName,
		CardLast4:      model.LastDigits(row.CardNumber, 4),
	}, nil
}

// OrderTotal asks the GetOrderTotal procedure for the order total. The total
// is read from the first column of the procedure's result set; when the
// procedure only assigns its OUT parameter, the session variable is read
// instead. Both statements run on one pinned connection.
func (g *Gateway) OrderTotal(ctx context.Context, id int64) (decimal.Decimal, error) {
	if err := g.requireProcedures("GetOrderTotal"); err != nil {
		return decimal.Zero, err
	}
	conn, err := g.bun.Conn(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("order %d total: %w", id, MapDBError(err))
	}
	defer func() { _ = conn.Close() }()

	rows, err := conn.QueryContext(ctx, "CALL GetOrderTotal(?, @order_total)", id)
	if err != nil {
		return decimal.Zero, fmt.Errorf("order %d total: %w", id, MapDBError(err))
	}
	total, found, err := scanFirstDecimal(rows)
	if err != nil {
		return decimal.Zero, fmt.Errorf("order %d total: %w", id, MapDBError(err))
	}
	if !found {
		if err := QueryRawInto(ctx, conn, &total, "SELECT @order_total"); err != nil {
			return decimal.Zero, fmt.Errorf("order %d total: %w", id, MapDBError(err))
		}
	}
	if !total.Valid {
		return decimal.Zero, fmt.Errorf("order %d total: %w", id, ErrNotFound)
	}
	return total.Decimal, nil
}

// scanFirstDecimal reads the first column of the first row and closes rows.
// found is false when the result set is empty.
func scanFirstDecimal(rows *sql.Rows) (v decimal.NullDecimal, found bool, err error) {
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		return v, false, rows.Err()
	}
	cols, err := rows.Columns()
	if err != nil {
		return v, false, err
	}
	dest := make([]any, len(cols))
	dest[0] = &v
	for i := 1; i < len(dest); i++ {
		dest[i] = new(any)
	}
	if err := rows.Scan(dest...); err != nil {
		return v, false, err
	}
	return v, true, nil
}

// OrderItems lists the lines of one order.
func (g *Gateway) OrderItems(ctx context.Context, id int64) ([]model.OrderItem, error) {
	var out []model.OrderItem
	q := `SELECT oi.product_id, oi.quantity, p.price,
       COALESCE(b.title, CONCAT(e.brand, ' ', e.model)) AS description
FROM Ordered_Item oi
JOIN Product p ON oi.product_id = p.product_id
LEFT JOIN Book b ON p.product_id = b.product_id
LEFT JOIN Electronics e ON p.product_id = e.product_id
WHERE oi.order_id = ?
ORDER BY oi.product_id`
	if err := QueryRawInto(ctx, g.bun, &out, q, id); err != nil {
		return nil, fmt.Errorf("order %d items: %w", id, MapDBError(err))
	}
	return out, nil
}
