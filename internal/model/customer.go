// Copyright (c) 2026 BuyPy Team
// BuyPy Backoffice - shop administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package model

import (
	"fmt"
	"strings"
)

// CustomerStatus is the account state of a shop customer.
type CustomerStatus string

const (
	// StatusActive customers can log in and order.
	StatusActive CustomerStatus = "active"
	// StatusInactive customers have not activated or have closed their account.
	StatusInactive CustomerStatus = "inactive"
	// StatusBlocked customers were locked out by an operator.
	StatusBlocked CustomerStatus = "blocked"
)

// Valid reports whether s is one of the known statuses.
func (s CustomerStatus) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusBlocked:
		return true
	}
	return false
}

// Toggled returns the status an operator's block toggle moves to:
// blocked customers become active, everyone else becomes blocked.
func (s CustomerStatus) Toggled() CustomerStatus {
	if s == StatusBlocked {
		return StatusActive
	}
	return StatusBlocked
}

// ParseCustomerStatus accepts a status name in any case.
func ParseCustomerStatus(in string) (CustomerStatus, error) {
	s := CustomerStatus(strings.ToLower(strings.TrimSpace(in)))
	if !s.Valid() {
		return "", fmt.Errorf("%w: unknown customer status %q", ErrInvalid, in)
	}
	return s, nil
}

// Customer is a row of the Customer table.
type Customer struct {
	ID         int64          `bun:"customer_id" json:"customer_id"`
	FirstName  string         `bun:"first_name" json:"first_name"`
	LastName   string         `bun:"last_name" json:"last_name"`
	Email      string         `bun:"email" json:"email"`
	Address    string         `bun:"address" json:"address"`
	PostalCode string         `bun:"postal_code" json:"postal_code"`
	City       string         `bun:"city" json:"city"`
	Country    string         `bun:"country" json:"country"`
	Phone      string         `bun:"phone" json:"phone"`
	Status     CustomerStatus `bun:"status" json:"status"`
}

// FullName joins first and last name, skipping empty parts.
func (c Customer) FullName() string {
	return FullName(c.FirstName, c.LastName)
}

// FullName joins the non-empty name parts with a single space.
func FullName(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}
