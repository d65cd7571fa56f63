// Copyright (c) 2026 BuyPy Team
// BuyPy Backoffice - shop administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/buypy/backoffice/internal/security"
	"github.com/go-sql-driver/mysql"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Supported driver names.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Connection defaults for the shop database.
const (
	DefaultHost     = "localhost"
	DefaultPort     = 3306
	DefaultDatabase = "BuyPay"
	DefaultTimeout  = 10 * time.Second
)

// sqlOpenFunc allows tests to override database opening behavior.
var sqlOpenFunc = sql.Open

// Options describes one operator connection.
type Options struct {
	Driver   string          // mysql (default) or sqlite
	Host     string          // mysql only
	Port     int             // mysql only
	Database string          // schema name, or file path for sqlite
	Username string          // mysql only
	Password security.Secret // mysql only
	Timeout  time.Duration   // dial and ping timeout
}

func (o Options) withDefaults() Options {
	if o.Driver == "" {
		o.Driver = DriverMySQL
	}
	if o.Host == "" {
		o.Host = DefaultHost
	}
	if o.Port == 0 {
		o.Port = DefaultPort
	}
	if o.Database == "" {
		o.Database = DefaultDatabase
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	return o
}

// DSN renders the driver data source name. For MySQL the password is part of
// the result, so it must never be logged.
func (o Options) DSN() (string, error) {
	o = o.withDefaults()
	switch o.Driver {
	case DriverMySQL:
		cfg := mysql.NewConfig()
		cfg.User = o.Username
		cfg.Passwd = o.Password.Reveal()
		cfg.Net = "tcp"
		cfg.Addr = net.JoinHostPort(o.Host, strconv.Itoa(o.Port))
		cfg.DBName = o.Database
		cfg.ParseTime = true
		cfg.Timeout = o.Timeout
		return cfg.FormatDSN(), nil
	case DriverSQLite:
		return o.Database, nil
	default:
		return "", fmt.Errorf("%w: unknown driver %q", ErrUnsupported, o.Driver)
	}
}

// Gateway is the operator's single database session.
type Gateway struct {
	bun    *bun.DB
	driver string
}

// Connect opens exactly one connection and pings it before returning. Every
// failure wraps ErrConnect; rejected credentials also wrap ErrAccessDenied.
func Connect(ctx context.Context, opts Options) (*Gateway, error) {
	opts = opts.withDefaults()
	dsn, err := opts.DSN()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	sqlDB, err := sqlOpenFunc(opts.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}
	// One session, one connection: session variables must survive between
	// statements and there is never concurrent work.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	pingCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("%w: %w", ErrConnect, MapDBError(err))
	}

	dbLogf("db: connected to %s %s@%s:%d/%s in %s", opts.Driver, opts.Username, opts.Host, opts.Port, opts.Database, time.Since(start))
	return NewGateway(sqlDB, opts.Driver), nil
}

// NewGateway wraps an already opened *sql.DB.
func NewGateway(sqlDB *sql.DB, driver string) *Gateway {
	return &Gateway{bun: createBunDB(sqlDB, driver), driver: driver}
}

// createBunDB constructs a *bun.DB for the provided *sql.DB and driver.
// Procedure result sets may carry more columns than the scanned struct.
func createBunDB(sqlDB *sql.DB, driver string) *bun.DB {
	switch driver {
	case DriverMySQL:
		return bun.NewDB(sqlDB, mysqldialect.New(), bun.WithDiscardUnknownColumns())
	default:
		return bun.NewDB(sqlDB, sqlitedialect.New(), bun.WithDiscardUnknownColumns())
	}
}

// Driver returns the driver name the gateway was opened with.
func (g *Gateway) Driver() string { return g.driver }

// Close releases the connection. It is safe on a nil or closed Gateway.
func (g *Gateway) Close() error {
	if g == nil || g.bun == nil {
		return nil
	}
	err := g.bun.Close()
	g.bun = nil
	if errors.Is(err, sql.ErrConnDone) {
		return nil
	}
	return err
}

// Ping checks that the session is still alive.
func (g *Gateway) Ping(ctx context.Context) error {
	if g == nil || g.bun == nil {
		return sql.ErrConnDone
	}
	return MapDBError(g.bun.PingContext(ctx))
}

// ExecStatement runs one statement verbatim, without Bun's placeholder
// formatting, and returns the affected row count. Used by script runners.
func (g *Gateway) ExecStatement(ctx context.Context, stmt string) (int64, error) {
	res, err := g.bun.DB.ExecContext(ctx, stmt)
	if err != nil {
		return 0, MapDBError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return n, nil
}

func (g *Gateway) requireProcedures(name string) error {
	if g.driver != DriverMySQL {
		return fmt.Errorf("%w: %s needs stored procedures (driver %s)", ErrUnsupported, name, g.driver)
	}
	return nil
}
