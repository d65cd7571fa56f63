// Copyright (c) 2026 BuyPy Team
// BuyPy Backoffice - shop administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderSummary is one row of the DailyOrders procedure.
type OrderSummary struct {
	ID             int64     `bun:"order_id" json:"order_id"`
	CustomerID     int64     `bun:"customer_id" json:"customer_id"`
	CardHolderName string    `bun:"card_holder_name" json:"card_holder_name"`
	OrderedAt      time.Time `bun:"order_datetime" json:"order_datetime"`
	Status         string    `bun:"status" json:"status"`
}

// OrderDetail is an order joined with its customer. The card number is
// reduced to its last four digits before it leaves the database layer.
type OrderDetail struct {
	ID             int64     `json:"order_id"`
	CustomerID     int64     `json:"customer_id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	OrderedAt      time.Time `json:"order_datetime"`
	Status         string    `json:"status"`
	ShippingMethod string    `json:"shipping_method"`
	CardHolderName string    `json:"card_holder_name"`
	CardLast4      string    `json:"card_last4"`
}

// CustomerName returns "First Last (email)".
func (o OrderDetail) CustomerName() string {
	name := FullName(o.FirstName, o.LastName)
	if o.Email == "" {
		return name
	}
	return name + " (" + o.Email + ")"
}

// Payment returns "holder (****1234)".
func (o OrderDetail) Payment() string {
	return o.CardHolderName + " (" + MaskedCard(o.CardLast4) + ")"
}

// OrderItem is one line of an order.
type OrderItem struct {
	ProductID   int64           `bun:"product_id" json:"product_id"`
	Description string          `bun:"description" json:"description"`
	Quantity    int             `bun:"quantity" json:"quantity"`
	Price       decimal.Decimal `bun:"price" json:"price"`
}
