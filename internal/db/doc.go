// Copyright (c) 2026 BuyPy Team
// BuyPy Backoffice - shop administration console
// This source code is licensed under the MIT license found in the LICENSE file.

// Package db is the database gateway of the backoffice.
//
// A Gateway wraps one Bun-managed connection to the shop database and exposes
// the customer, product and order operations the operator tools need. Every
// operation takes a context and returns package-level sentinel errors
// (ErrNotFound, ErrDuplicate, ErrUnsupported, ErrAccessDenied) wrapped around
// the driver error, so callers can use errors.Is.
//
// Drivers
//   - "mysql" is the production driver. Product creation, the daily order
//     report and order totals are stored procedures on the server.
//   - "sqlite" opens a local file (or ":memory:") and is used for offline work
//     and tests. Stored procedures are not available there and the matching
//     operations return ErrUnsupported.
//
// Testing notes
//   - Dialect-agnostic queries are tested against in-memory sqlite.
//   - Stored procedures and MySQL-only SQL are tested with go-sqlmock through
//     NewGateway.
package db // import "github.com/buypy/backoffice/internal/db"
