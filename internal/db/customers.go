// Copyright (c) 2026 BuyPy Team
// BuyPy Backoffice - shop administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/buypy/backoffice/internal/model"
)

const customerColumns = `customer_id, first_name, last_name, email, address, postal_code,
       city, country, phone, status`

// CustomerByID returns the customer with the given id or ErrNotFound.
func (g *Gateway) CustomerByID(ctx context.Context, id int64) (*model.Customer, error) {
	var c model.Customer
	q := "SELECT " + customerColumns + " FROM Customer WHERE customer_id = ?"
	if err := QueryRawInto(ctx, g.bun, &c, q, id); err != nil {
		return nil, fmt.Errorf("customer %d: %w", id, MapDBError(err))
	}
	return &c, nil
}

// CustomerByEmail returns the customer registered with email or ErrNotFound.
func (g *Gateway) CustomerByEmail(ctx context.Context, email string) (*model.Customer, error) {
	email = strings.TrimSpace(email)
	var c model.Customer
	q := "SELECT " + customerColumns + " FROM Customer WHERE email = ?"
	if err := QueryRawInto(ctx, g.bun, &c, q, email); err != nil {
		return nil, fmt.Errorf("customer %q: %w", email, MapDBError(err))
	}
	return &c, nil
}

// SetCustomerStatus updates the status of one customer. changed is false when
// no row was touched (unknown id or status already set).
func (g *Gateway) SetCustomerStatus(ctx context.Context, id int64, status model.CustomerStatus) (changed bool, err error) {
	if !status.Valid() {
		return false, fmt.Errorf("%w: unknown customer status %q", model.ErrInvalid, status)
	}
	res, err := ExecRaw(ctx, g.bun, "UPDATE Customer SET status = ? WHERE customer_id = ?", string(status), id)
	if err != nil {
		return false, fmt.Errorf("update customer %d: %w", id, MapDBError(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update customer %d: %w", id, err)
	}
	dbLogf("db: customer %d status -> %s (%d rows)", id, status, n)
	return n > 0, nil
}

// ToggleBlocked flips a customer between blocked and active and returns the
// new status.
func (g *Gateway) ToggleBlocked(ctx context.Context, c *model.Customer) (model.CustomerStatus, bool, error) {
	next := c.Status.Toggled()
	changed, err := g.SetCustomerStatus(ctx, c.ID, next)
	if err != nil {
		return c.Status, false, err
	}
	if changed {
		c.Status = next
	}
	return c.Status, changed, nil
}

// BlockedCustomers lists every customer whose status is blocked.
func (g *Gateway) BlockedCustomers(ctx context.Context) ([]model.Customer, error) {
	var out []model.Customer
	q := `SELECT customer_id, first_name, last_name, email, city, postal_code, status
FROM Customer
WHERE status = ?
ORDER BY customer_id`
	if err := QueryRawInto(ctx, g.bun, &out, q, string(model.StatusBlocked)); err != nil {
		return nil, fmt.Errorf("blocked customers: %w", MapDBError(err))
	}
	return out, nil
}
