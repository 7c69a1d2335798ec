package dialect

import (
	"strings"
	"time"

	"github.com/Konsultn-Engineering/sqlmigrate/types"
	"github.com/jmoiron/sqlx"
)

type MySQL struct{}

func NewMySQLDialect() Dialect {
	return &MySQL{}
}

var mysqlTypes = map[types.Code]types.Code{
	types.Boolean: types.TinyInt,
	types.Bit:     types.TinyInt,
	types.Clob:    types.LongVarchar,
	types.UUID:    types.Char,
	types.Real:    types.Float,
}

func (m MySQL) Name() string       { return "mysql" }
func (m MySQL) DriverName() string { return "mysql" }
func (m MySQL) BindType() int      { return sqlx.QUESTION }

func (m MySQL) QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func (m MySQL) EscapeTableName(schema, table string) string {
	return qualify(schema, table, m.QuoteIdentifier)
}

func (m MySQL) ShouldQuoteValue(value string) bool {
	return !isFunctionValue(value, "NOW()", "CURRENT_TIMESTAMP", "CURRENT_DATE")
}

func (m MySQL) DateLiteral(t time.Time) string {
	return isoDateLiteral(t)
}

func (m MySQL) TrueLiteral() string  { return "1" }
func (m MySQL) FalseLiteral() string { return "0" }

func (m MySQL) NativeType(code types.Code) types.Code {
	return mapType(code, mysqlTypes)
}
