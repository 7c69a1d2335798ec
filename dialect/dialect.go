package dialect

import (
	"time"

	"github.com/Konsultn-Engineering/sqlmigrate/types"
)

// Dialect describes how a database engine spells identifiers, literals and
// bind parameters.
type Dialect interface {
	// Name returns the short dialect name ("postgres", "mysql", ...).
	Name() string

	// DriverName returns the database/sql driver registered for the dialect.
	DriverName() string

	// BindType returns the sqlx bind style used for positional parameters.
	BindType() int

	// QuoteIdentifier wraps a single identifier in dialect-specific quoting.
	QuoteIdentifier(name string) string

	// EscapeTableName renders a possibly schema-qualified table reference.
	// An empty schema means the connection's default schema.
	EscapeTableName(schema, table string) string

	// ShouldQuoteValue reports whether a string value needs single quotes
	// when rendered as a literal.
	ShouldQuoteValue(value string) bool

	// DateLiteral renders t as a literal the engine accepts.
	DateLiteral(t time.Time) string

	TrueLiteral() string
	FalseLiteral() string

	// NativeType maps a logical type code to the code the engine stores.
	NativeType(code types.Code) types.Code
}
