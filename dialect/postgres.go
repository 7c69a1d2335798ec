package dialect

import (
	"time"

	"github.com/Konsultn-Engineering/sqlmigrate/types"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type Postgres struct{}

func NewPostgresDialect() Dialect {
	return &Postgres{}
}

var postgresTypes = map[types.Code]types.Code{
	types.TinyInt:     types.SmallInt,
	types.Bit:         types.Boolean,
	types.Clob:        types.Varchar,
	types.LongVarchar: types.Varchar,
	types.Binary:      types.Blob,
	types.VarBinary:   types.Blob,
	types.Float:       types.Double,
}

func (Postgres) Name() string       { return "postgres" }
func (Postgres) DriverName() string { return "pgx" }
func (Postgres) BindType() int      { return sqlx.DOLLAR }

func (Postgres) QuoteIdentifier(name string) string {
	return pq.QuoteIdentifier(name)
}

func (p Postgres) EscapeTableName(schema, table string) string {
	return qualify(schema, table, p.QuoteIdentifier)
}

func (Postgres) ShouldQuoteValue(value string) bool {
	return !isFunctionValue(value, "NOW()", "CURRENT_TIMESTAMP", "CURRENT_DATE")
}

func (Postgres) DateLiteral(t time.Time) string {
	return isoDateLiteral(t)
}

func (Postgres) TrueLiteral() string  { return "TRUE" }
func (Postgres) FalseLiteral() string { return "FALSE" }

func (Postgres) NativeType(code types.Code) types.Code {
	return mapType(code, postgresTypes)
}
