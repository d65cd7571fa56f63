// Copyright (c) 2026 BuyPy Team
// BuyPy Backoffice - shop administration console
// This source code is licensed under the MIT license found in the LICENSE file.

// package model defines the shop records the backoffice reads and writes:
// customers, products and orders, plus the validated input for new products.
package model // import "github.com/buypy/backoffice/internal/model"
