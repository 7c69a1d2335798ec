package statement

import (
	"context"
	"database/sql"

	"github.com/Konsultn-Engineering/sqlmigrate/database"
	"github.com/Konsultn-Engineering/sqlmigrate/dialect"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// DefaultTerminator ends every statement in a generated script.
const DefaultTerminator = ";"

// LiteralSQL is SQL text with every value inlined. Values are not escaped,
// so it is only fit for display and dry-run scripts, never for execution.
type LiteralSQL string

func (l LiteralSQL) String() string { return string(l) }

// SqlStatement renders itself as literal SQL.
type SqlStatement interface {
	SqlStatement(d dialect.Dialect) LiteralSQL
	EndDelimiter(d dialect.Dialect) string
	SupportsDatabase(d dialect.Dialect) bool
}

// PreparedSqlStatement renders itself as parameterized SQL for execution.
type PreparedSqlStatement interface {
	BoundSQL(d dialect.Dialect) (string, []any, error)
	CreateBoundStatement(ctx context.Context, db database.Database) (*BoundStatement, error)
	SupportsDatabase(d dialect.Dialect) bool
}

// BoundStatement is a prepared statement together with its arguments and the
// connection it was prepared on. Close releases both.
type BoundStatement struct {
	sql  string
	args []any
	conn *sql.Conn
	stmt *sql.Stmt
}

func prepare(ctx context.Context, db database.Database, query string, args []any) (*BoundStatement, error) {
	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, err
	}

	stmt, err := conn.PrepareContext(ctx, query)
	if err != nil {
		return nil, multierr.Append(errors.Wrapf(err, "prepare %q", query), conn.Close())
	}

	return &BoundStatement{sql: query, args: args, conn: conn, stmt: stmt}, nil
}

// SQL returns the parameterized statement text.
func (b *BoundStatement) SQL() string { return b.sql }

// Args returns the bound arguments in placeholder order.
func (b *BoundStatement) Args() []any { return b.args }

// ExecContext executes the statement with its bound arguments.
func (b *BoundStatement) ExecContext(ctx context.Context) (sql.Result, error) {
	res, err := b.stmt.ExecContext(ctx, b.args...)
	if err != nil {
		return nil, errors.Wrapf(err, "exec %q", b.sql)
	}
	return res, nil
}

// Close closes the prepared statement and returns the connection to the pool.
func (b *BoundStatement) Close() error {
	return multierr.Combine(b.stmt.Close(), b.conn.Close())
}
