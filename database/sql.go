package database

import (
	"context"
	"database/sql"

	"github.com/Konsultn-Engineering/sqlmigrate/dialect"
	"github.com/pkg/errors"
)

// SqlDatabase implements Database for *sql.DB.
type SqlDatabase struct {
	dialect.Dialect
	db *sql.DB
}

// NewSqlDatabase creates a new SqlDatabase.
func NewSqlDatabase(db *sql.DB, d dialect.Dialect) *SqlDatabase {
	return &SqlDatabase{Dialect: d, db: db}
}

// DB returns the wrapped pool.
func (s *SqlDatabase) DB() *sql.DB { return s.db }

// Conn acquires a dedicated connection from the pool.
func (s *SqlDatabase) Conn(ctx context.Context) (*sql.Conn, error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "acquire connection")
	}
	return conn, nil
}

// PingContext verifies the connection to the database is alive.
func (s *SqlDatabase) PingContext(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database.
func (s *SqlDatabase) Close() error { return s.db.Close() }

// SetMaxOpenConns sets the maximum number of open connections.
func (s *SqlDatabase) SetMaxOpenConns(n int) { s.db.SetMaxOpenConns(n) }

// SetMaxIdleConns sets the maximum number of idle connections.
func (s *SqlDatabase) SetMaxIdleConns(n int) { s.db.SetMaxIdleConns(n) }

// Assert that SqlDatabase implements the Database interface.
var _ Database = (*SqlDatabase)(nil)
