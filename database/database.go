package database

import (
	"context"
	"database/sql"

	"github.com/Konsultn-Engineering/sqlmigrate/dialect"
)

// Database pairs a dialect with the connection pool statements run against.
type Database interface {
	dialect.Dialect

	// DB returns the underlying pool.
	DB() *sql.DB

	// Conn acquires a single connection. The caller must close it.
	Conn(ctx context.Context) (*sql.Conn, error)

	PingContext(ctx context.Context) error
	Close() error
	SetMaxOpenConns(n int)
	SetMaxIdleConns(n int)
}
