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

const productsQuery = `SELECT p.product_id, p.price, p.quantity, p.active,
       CASE WHEN b.isbn IS NOT NULL THEN 'Book' ELSE 'Electronics' END AS product_type,
       COALESCE(b.title, CONCAT(e.brand, ' ', e.model)) AS description
FROM Product p
LEFT JOIN Book b ON p.product_id = b.product_id
LEFT JOIN Electronics e ON p.product_id = e.product_id
WHERE 1=1`

// buildProductsQuery appends one condition per non-zero filter bound.
func buildProductsQuery(f model.ProductFilter) (string, []any) {
	var sb strings.Builder
	sb.WriteString(productsQuery)
	var args []any

	switch f.Type {
	case model.ProductBook:
		sb.WriteString(" AND b.isbn IS NOT NULL")
	case model.ProductElectronics:
		sb.WriteString(" AND e.serial_number IS NOT NULL")
	}
	if f.MinQty > 0 {
		sb.WriteString(" AND p.quantity >= ?")
		args = append(args, f.MinQty)
	}
	if f.MaxQty > 0 {
		sb.WriteString(" AND p.quantity <= ?")
		args = append(args, f.MaxQty)
	}
	if f.MinPrice.IsPositive() {
		sb.WriteString(" AND p.price >= ?")
		args = append(args, f.MinPrice.String())
	}
	if f.MaxPrice.IsPositive() {
		sb.WriteString(" AND p.price <= ?")
		args = append(args, f.MaxPrice.String())
	}
	sb.WriteString(" ORDER BY p.product_id")
	return sb.String(), args
}

// Products lists products matching the filter.
func (g *Gateway) Products(ctx context.Context, f model.ProductFilter) ([]model.ProductSummary, error) {
	q, args := buildProductsQuery(f)
	var out []model.ProductSummary
	if err := QueryRawInto(ctx, g.bun, &out, q, args...); err != nil {
		return nil, fmt.Errorf("products: %w", MapDBError(err))
	}
	return out, nil
}

// AddBook validates b and creates the product through the AddBook procedure.
func (g *Gateway) AddBook(ctx context.Context, b model.NewBook) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if err := g.requireProcedures("AddBook"); err != nil {
		return err
	}
	_, err := ExecRaw(ctx, g.bun, "CALL AddBook(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		b.Quantity, b.Price.StringFixed(2), b.VATRate.String(), b.Popularity, b.ImagePath,
		b.ISBN, b.Title, b.Genre, b.Publisher, b.Author, b.PublicationDate.Format("2006-01-02"))
	if err != nil {
		return fmt.Errorf("add book %q: %w", b.Title, MapDBError(err))
	}
	dbLogf("db: added book %q", b.Title)
	return nil
}

// AddElectronics validates e and creates the product through the AddElec procedure.
func (g *Gateway) AddElectronics(ctx context.Context, e model.NewElectronics) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if err := g.requireProcedures("AddElec"); err != nil {
		return err
	}
	_, err := ExecRaw(ctx, g.bun, "CALL AddElec(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		e.Quantity, e.Price.StringFixed(2), e.VATRate.String(), e.Popularity, e.ImagePath,
		e.SerialNumber, e.Brand, e.Model, e.TechSpecs, e.Kind)
	if err != nil {
		return fmt.Errorf("add electronics %s %s: %w", e.Brand, e.Model, MapDBError(err))
	}
	dbLogf("db: added electronics %s %s", e.Brand, e.Model)
	return nil
}
