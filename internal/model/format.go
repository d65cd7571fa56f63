// Copyright (c) 2026 BuyPy Team
// BuyPy Backoffice - shop administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// LastDigits returns the last n characters of a card number with spaces and
// dashes removed. Shorter input is returned whole.
func LastDigits(card string, n int) string {
	card = strings.NewReplacer(" ", "", "-", "").Replace(card)
	if len(card) <= n {
		return card
	}
	return card[len(card)-n:]
}

// MaskedCard renders a card number as "****" followed by its last four digits.
func MaskedCard(card string) string {
	return "****" + LastDigits(card, 4)
}

// FormatEuro renders an amount as "€ 1234.50".
func FormatEuro(d decimal.Decimal) string {
	return "€ " + d.StringFixed(2)
}
