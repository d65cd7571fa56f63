// Copyright (c) 2026 BuyPy Team
// BuyPy Backoffice - shop administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when attempting to insert a record that already exists.
	ErrDuplicate = errors.New("duplicate record")
	// ErrConnect wraps every failure to open or ping the database.
	ErrConnect = errors.New("could not connect to database")
	// ErrAccessDenied is returned when the server rejects the operator's credentials.
	ErrAccessDenied = errors.New("access denied")
	// ErrUnsupported is returned for operations the current driver cannot run.
	ErrUnsupported = errors.New("operation not supported by this database driver")
)

// MySQL server error numbers that map to sentinels.
const (
	mysqlErrDBAccessDenied = 1044
	mysqlErrAccessDenied   = 1045
	mysqlErrDupEntry       = 1062
)

// MapDBError inspects low-level driver errors and maps common failures to
// package-level sentinel errors. The original error stays in the chain.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlErrDupEntry:
			return fmt.Errorf("%w: %w", ErrDuplicate, err)
		case mysqlErrAccessDenied, mysqlErrDBAccessDenied:
			return fmt.Errorf("%w: %w", ErrAccessDenied, err)
		}
		return err
	}

	// SQLite reports constraint violations only as text.
	le := strings.ToLower(err.Error())
	if strings.Contains(le, "unique constraint failed") || strings.Contains(le, "duplicate entry") {
		return fmt.Errorf("%w: %w", ErrDuplicate, err)
	}
	return err
}
