package dialect

import (
	"strings"
	"time"

	"github.com/Konsultn-Engineering/sqlmigrate/types"
	"github.com/jmoiron/sqlx"
)

// SQLite has no schemas beyond attached databases, so a schema name is
// rendered as the attached database qualifier.
type SQLite struct{}

func NewSQLiteDialect() Dialect {
	return &SQLite{}
}

var sqliteTypes = map[types.Code]types.Code{
	types.Boolean:     types.Integer,
	types.Bit:         types.Integer,
	types.TinyInt:     types.Integer,
	types.SmallInt:    types.Integer,
	types.BigInt:      types.Integer,
	types.Float:       types.Real,
	types.Double:      types.Real,
	types.Char:        types.Varchar,
	types.LongVarchar: types.Varchar,
	types.Clob:        types.Varchar,
	types.UUID:        types.Varchar,
	types.Binary:      types.Blob,
	types.VarBinary:   types.Blob,
}

func (SQLite) Name() string       { return "sqlite" }
func (SQLite) DriverName() string { return "sqlite" }
func (SQLite) BindType() int      { return sqlx.QUESTION }

func (SQLite) QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (s SQLite) EscapeTableName(schema, table string) string {
	return qualify(schema, table, s.QuoteIdentifier)
}

func (SQLite) ShouldQuoteValue(value string) bool {
	return !isFunctionValue(value, "CURRENT_TIMESTAMP", "CURRENT_DATE", "CURRENT_TIME")
}

func (SQLite) DateLiteral(t time.Time) string {
	return isoDateLiteral(t)
}

func (SQLite) TrueLiteral() string  { return "1" }
func (SQLite) FalseLiteral() string { return "0" }

func (SQLite) NativeType(code types.Code) types.Code {
	return mapType(code, sqliteTypes)
}
