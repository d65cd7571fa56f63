// Copyright (c) 2026 BuyPy Team
// BuyPy Backoffice - shop administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

// newMockGateway returns a MySQL gateway backed by sqlmock. The MySQL dialect
// asks for the server version while the gateway is built; that query is
// answered here, so expectations registered afterwards start clean.
func newMockGateway(t *testing.T) (*Gateway, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	mock.ExpectQuery(regexp.QuoteMeta("SELECT version()")).
		WillReturnRows(sqlmock.NewRows([]string{"version()"}).AddRow("8.0.36"))
	g := NewGateway(sqlDB, DriverMySQL)
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("version query: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return g, mock
}

func expectationsMet(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

const testSchema = `CREATE TABLE Customer (
	customer_id INTEGER PRIMARY KEY,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	address TEXT NOT NULL DEFAULT '',
	postal_code TEXT NOT NULL DEFAULT '',
	city TEXT NOT NULL DEFAULT '',
	country TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'active'
)`

// newSqliteGateway opens an in-memory sqlite gateway with a Customer table
// and three customers, one of them blocked.
func newSqliteGateway(t *testing.T) *Gateway {
	t.Helper()
	ctx := context.Background()
	g, err := Connect(ctx, Options{Driver: DriverSQLite, Database: ":memory:"})
	if err != nil {
		t.Fatalf("Connect sqlite: %v", err)
	}
	t.Cleanup(func() { _ = g.Close() })

	stmts := []string{
		testSchema,
		`INSERT INTO Customer (customer_id, first_name, last_name, email, city, postal_code, country, status)
		 VALUES (1, 'Ana', 'Silva', 'ana@example.com', 'Lisboa', '1000-001', 'PT', 'active')`,
		`INSERT INTO Customer (customer_id, first_name, last_name, email, city, postal_code, country, status)
		 VALUES (2, 'Rui', 'Costa', 'rui@example.com', 'Porto', '4000-001', 'PT', 'blocked')`,
		`INSERT INTO Customer (customer_id, first_name, last_name, email, city, postal_code, country, status)
		 VALUES (3, 'Eva', 'Lopes', 'eva@example.com', 'Faro', '8000-001', 'PT', 'inactive')`,
	}
	for _, s := range stmts {
		if _, err := g.ExecStatement(ctx, s); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return g
}
