package statement

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Konsultn-Engineering/sqlmigrate/database"
	"github.com/Konsultn-Engineering/sqlmigrate/dialect"
	"github.com/Konsultn-Engineering/sqlmigrate/types"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

var ErrNoColumnValues = errors.New("update statement has no column values")

// Assignment is a pending column value.
type Assignment struct {
	Column string
	Value  any
	Type   types.Code
}

// Parameter is a value bound to one '?' of the WHERE clause.
type Parameter struct {
	Value any
	Type  types.Code
}

// UpdateStatement builds a single UPDATE. It is not safe for concurrent
// mutation.
type UpdateStatement struct {
	schemaName  string
	tableName   string
	columns     *orderedmap.OrderedMap[string, Assignment]
	whereClause string
	whereParams []Parameter
}

// NewUpdateStatement targets schemaName.tableName. An empty schemaName means
// the default schema.
func NewUpdateStatement(schemaName, tableName string) *UpdateStatement {
	return &UpdateStatement{
		schemaName: schemaName,
		tableName:  tableName,
		columns:    orderedmap.New[string, Assignment](),
	}
}

func (u *UpdateStatement) SchemaName() string  { return u.schemaName }
func (u *UpdateStatement) TableName() string   { return u.tableName }
func (u *UpdateStatement) WhereClause() string { return u.whereClause }

// AddNewColumnValue sets column to value. Setting a column again replaces
// its value and type but keeps its position.
func (u *UpdateStatement) AddNewColumnValue(column string, value any, code types.Code) *UpdateStatement {
	u.columns.Set(column, Assignment{Column: column, Value: value, Type: code})
	return u
}

// SetWhereClause replaces the WHERE fragment. It may contain '?' placeholders
// filled by AddWhereParameter in order.
func (u *UpdateStatement) SetWhereClause(clause string) *UpdateStatement {
	u.whereClause = clause
	return u
}

func (u *UpdateStatement) AddWhereParameter(value any, code types.Code) *UpdateStatement {
	u.whereParams = append(u.whereParams, Parameter{Value: value, Type: code})
	return u
}

// NewColumnValues returns the assignments in render order.
func (u *UpdateStatement) NewColumnValues() []Assignment {
	out := make([]Assignment, 0, u.columns.Len())
	for pair := u.columns.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

func (u *UpdateStatement) WhereParameters() []Parameter {
	out := make([]Parameter, len(u.whereParams))
	copy(out, u.whereParams)
	return out
}

func (u *UpdateStatement) SupportsDatabase(dialect.Dialect) bool {
	return true
}

func (u *UpdateStatement) EndDelimiter(dialect.Dialect) string {
	return DefaultTerminator
}

// SqlStatement renders the update with every value inlined. String values
// and WHERE parameters are not escaped.
func (u *UpdateStatement) SqlStatement(d dialect.Dialect) LiteralSQL {
	var sb strings.Builder
	sb.WriteString("UPDATE ")
	sb.WriteString(d.EscapeTableName(u.schemaName, u.tableName))
	sb.WriteString(" SET ")

	sets := make([]string, 0, u.columns.Len())
	for pair := u.columns.Oldest(); pair != nil; pair = pair.Next() {
		sets = append(sets, pair.Key+" = "+literal(d, pair.Value.Value))
	}
	sb.WriteString(strings.Join(sets, ", "))

	if u.whereClause != "" {
		sb.WriteString(" WHERE ")
		sb.WriteString(inlineParameters(u.whereClause, u.whereParams))
	}

	return LiteralSQL(sb.String())
}

// BoundSQL renders the parameterized update and its arguments. Column values
// come first, then WHERE parameters, each converted to the dialect's native
// type.
func (u *UpdateStatement) BoundSQL(d dialect.Dialect) (string, []any, error) {
	if u.columns.Len() == 0 {
		return "", nil, ErrNoColumnValues
	}

	var sb strings.Builder
	sb.WriteString("UPDATE ")
	sb.WriteString(d.EscapeTableName(u.schemaName, u.tableName))
	sb.WriteString(" SET ")

	bindType := d.BindType()
	sets := make([]string, 0, u.columns.Len())
	args := make([]any, 0, u.columns.Len()+len(u.whereParams))
	for pair := u.columns.Oldest(); pair != nil; pair = pair.Next() {
		a := pair.Value
		arg, err := types.Bind(d.NativeType(a.Type), a.Value)
		if err != nil {
			return "", nil, errors.Wrapf(err, "column %s", a.Column)
		}
		args = append(args, arg)
		sets = append(sets, a.Column+" = "+placeholder(bindType, len(args)))
	}
	sb.WriteString(strings.Join(sets, ", "))

	if u.whereClause != "" {
		clause, _ := bindClause(u.whereClause, bindType, len(args)+1)
		sb.WriteString(" where ")
		sb.WriteString(clause)
	}

	for i, p := range u.whereParams {
		arg, err := types.Bind(d.NativeType(p.Type), p.Value)
		if err != nil {
			return "", nil, errors.Wrapf(err, "where parameter %d", i+1)
		}
		args = append(args, arg)
	}

	return sb.String(), args, nil
}

// CreateBoundStatement prepares the update on a connection acquired from db.
// The caller must Close the result.
func (u *UpdateStatement) CreateBoundStatement(ctx context.Context, db database.Database) (*BoundStatement, error) {
	query, args, err := u.BoundSQL(db)
	if err != nil {
		return nil, err
	}
	return prepare(ctx, db, query, args)
}

func literal(d dialect.Dialect, v any) string {
	if types.IsNil(v) {
		return "NULL"
	}
	switch val := types.Indirect(v).(type) {
	case string:
		if d.ShouldQuoteValue(val) {
			return "'" + val + "'"
		}
		return val
	case time.Time:
		return d.DateLiteral(val)
	case bool:
		if val {
			return d.TrueLiteral()
		}
		return d.FalseLiteral()
	default:
		return fmt.Sprint(val)
	}
}

// inlineParameters replaces '?' left to right with quoted parameter values.
// Placeholders without a parameter are kept; extra parameters are ignored.
func inlineParameters(clause string, params []Parameter) string {
	if len(params) == 0 {
		return clause
	}

	var sb strings.Builder
	next := 0
	for _, r := range clause {
		if r == '?' && next < len(params) {
			sb.WriteString(quoteParameter(params[next].Value))
			next++
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// quoteParameter quotes v verbatim. A nil parameter renders as an unquoted
// NULL rather than the quoted text 'null'.
func quoteParameter(v any) string {
	if types.IsNil(v) {
		return "NULL"
	}
	return "'" + fmt.Sprint(types.Indirect(v)) + "'"
}

// placeholder returns the n-th (1-based) bind marker for an sqlx bind style.
func placeholder(bindType, n int) string {
	switch bindType {
	case sqlx.DOLLAR:
		return "$" + strconv.Itoa(n)
	case sqlx.AT:
		return "@p" + strconv.Itoa(n)
	case sqlx.NAMED:
		return ":arg" + strconv.Itoa(n)
	default:
		return "?"
	}
}

// bindClause rewrites the '?' markers of a raw WHERE clause, numbering them
// from next. Markers inside single- or double-quoted spans are left alone.
// It returns the rewritten clause and the number following the last marker.
func bindClause(clause string, bindType, next int) (string, int) {
	var (
		sb    strings.Builder
		quote rune
	)
	for _, r := range clause {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		case r == '?':
			sb.WriteString(placeholder(bindType, next))
			next++
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String(), next
}

var (
	_ SqlStatement         = (*UpdateStatement)(nil)
	_ PreparedSqlStatement = (*UpdateStatement)(nil)
)
